package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/ambient"
	"github.com/Zachkp/folio/internal/seo"
	"github.com/Zachkp/folio/internal/theme"
)

const schemeHint = "Sec-CH-Prefers-Color-Scheme"

// currentTheme loads the visitor's preference and resolves it against the
// color scheme client hint. Without the hint a system preference resolves
// to Unknown and the page script settles it after load.
func (s *Server) currentTheme(c *gin.Context) (theme.Preference, theme.Resolved) {
	c.Header("Accept-CH", schemeHint)
	c.Header("Vary", schemeHint)
	scheme := theme.ParseScheme(c.GetHeader(schemeHint))

	session := sessionID(c)
	if session == "" {
		raw, _ := c.Cookie(themeCookie)
		p, err := theme.ParsePreference(raw)
		if err != nil {
			p = theme.System
		}
		return p, theme.Resolve(p, scheme)
	}

	p, r, err := s.themes.Resolved(c.Request.Context(), session, scheme)
	if err != nil {
		s.logger.Error("loading theme preference", "err", err)
	}
	return p, r
}

func (s *Server) handleIndex(c *gin.Context) {
	pref, resolved := s.currentTheme(c)
	snap, def, threshold := s.panelAttrs()
	contact := s.content.Contact()
	linkedIn, hasLinkedIn := contact.LinkByIcon("linkedin")

	c.HTML(http.StatusOK, "index.html", gin.H{
		"meta":        s.meta,
		"jsonLD":      s.jsonLD,
		"theme":       newThemeView(pref, resolved),
		"hero":        s.content.Hero(),
		"navItems":    s.content.NavItems(),
		"experience":  s.content.Experience(),
		"projects":    projectViews(s.content.Projects(), resolved),
		"contact":     contact,
		"linkedIn":    linkedIn,
		"hasLinkedIn": hasLinkedIn,
		"particles":   ambient.Particles(nil, ambient.DefaultCount),
		"snapPoints":  snap,
		"defaultW":    def,
		"closePx":     threshold,
	})
}

// handleExperience returns the detail fragment loaded into the side panel
// or the mobile drawer.
func (s *Server) handleExperience(c *gin.Context) {
	exp, ok := s.content.ExperienceByID(c.Param("id"))
	if !ok {
		c.HTML(http.StatusNotFound, "error.html", gin.H{
			"error": "That role could not be found.",
		})
		return
	}
	c.HTML(http.StatusOK, "experience.html", gin.H{
		"exp": exp,
	})
}

func (s *Server) handleGetTheme(c *gin.Context) {
	pref, resolved := s.currentTheme(c)
	c.JSON(http.StatusOK, gin.H{
		"preference": pref,
		"resolved":   resolved,
	})
}

// handleSetTheme accepts either preference=light|dark|system or
// action=toggle with the currently rendered theme in resolved.
func (s *Server) handleSetTheme(c *gin.Context) {
	var pref theme.Preference
	if c.PostForm("action") == "toggle" {
		current := theme.ParseScheme(c.PostForm("resolved"))
		if current == theme.Unknown {
			_, current = s.currentTheme(c)
		}
		pref = theme.Toggle(current)
	} else {
		p, err := theme.ParsePreference(c.PostForm("preference"))
		if err != nil {
			s.themeError(c, http.StatusBadRequest, err)
			return
		}
		pref = p
	}

	if session := sessionID(c); session != "" {
		if err := s.themes.SetPreference(c.Request.Context(), session, pref); err != nil {
			s.themeError(c, http.StatusInternalServerError, err)
			return
		}
	}
	// Readable by the page script for the first paint on the next load.
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(themeCookie, string(pref), cookieMaxAge, "/", "", c.Request.TLS != nil, false)

	resolved := theme.Resolve(pref, theme.ParseScheme(c.GetHeader(schemeHint)))
	if !isHTMX(c) {
		c.JSON(http.StatusOK, gin.H{"preference": pref, "resolved": resolved})
		return
	}
	c.Header("HX-Trigger", `{"themeChanged":"`+string(pref)+`"}`)
	c.HTML(http.StatusOK, "theme-toggle.html", gin.H{
		"theme": newThemeView(pref, resolved),
	})
}

func (s *Server) themeError(c *gin.Context, status int, err error) {
	msg := "Sorry, the theme could not be saved. Please try again."
	if errors.Is(err, theme.ErrInvalidPreference) {
		msg = "Unknown theme. Choose light, dark or system."
	} else {
		s.logger.Error("saving theme preference", "err", err)
	}
	if isHTMX(c) {
		c.HTML(status, "error.html", gin.H{"error": msg})
		return
	}
	c.JSON(status, gin.H{"error": msg})
}

func (s *Server) handleSitemap(c *gin.Context) {
	c.Data(http.StatusOK, "application/xml; charset=utf-8", s.sitemap)
}

func (s *Server) handleRobots(c *gin.Context) {
	c.Data(http.StatusOK, "text/plain; charset=utf-8", seo.Robots(s.cfg.BaseURL()))
}

func (s *Server) handleManifest(c *gin.Context) {
	c.Data(http.StatusOK, "application/manifest+json", s.manifest)
}

func (s *Server) handleSocialCard(c *gin.Context) {
	s.cardOnce.Do(func() {
		s.card, s.cardErr = s.renderSocialCard()
	})
	if s.cardErr != nil {
		s.logger.Error("rendering social card", "err", s.cardErr)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", s.card)
}
