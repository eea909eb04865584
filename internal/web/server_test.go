package web

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/seo"
	"github.com/Zachkp/folio/internal/store"
	"github.com/Zachkp/folio/internal/theme"
)

func newTestServer(t *testing.T, themes theme.Store) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Mode = gin.TestMode
	cfg.SiteURL = "https://zach.dev"
	cfg.ImagesDir = t.TempDir()

	data, err := content.Default()
	require.NoError(t, err)

	s, err := New(Options{
		Config:  cfg,
		Content: data,
		Themes:  themes,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:     func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) },
	})
	require.NoError(t, err)
	return s
}

func do(s *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestNew_RejectsInvalidPanelConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Mode = gin.TestMode
	cfg.Sheet.DefaultWidthPercent = 55
	data, err := content.Default()
	require.NoError(t, err)

	_, err = New(Options{Config: cfg, Content: data, Themes: theme.NewMemoryStore()})
	assert.Error(t, err)
}

func TestIndex(t *testing.T) {
	s := newTestServer(t, theme.NewMemoryStore())
	w := do(s, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)

	assert.Equal(t, "Zach Kordas-Potter | Software Engineer", doc.Find("title").Text())
	canonical, _ := doc.Find(`link[rel="canonical"]`).Attr("href")
	assert.Equal(t, "https://zach.dev", canonical)
	assert.Equal(t, 1, doc.Find(`script[type="application/ld+json"]`).Length())

	for _, id := range []string{"hero", "experience", "projects", "contact"} {
		assert.Equal(t, 1, doc.Find("section#"+id).Length(), id)
	}
	assert.Equal(t, 2, doc.Find("[data-experience-id]").Length())
	assert.Equal(t, 4, doc.Find(".project-card").Length())
	assert.Equal(t, 40, doc.Find(".particle").Length())

	sheet := doc.Find("#sheet")
	snap, _ := sheet.Attr("data-snap-points")
	def, _ := sheet.Attr("data-default-width")
	closePx, _ := sheet.Attr("data-close-threshold")
	assert.Equal(t, "[40,50,70]", snap)
	assert.Equal(t, "50", def)
	assert.Equal(t, "200", closePx)

	session := cookieNamed(w, sessionCookie)
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)
	assert.Equal(t, schemeHint, w.Header().Get("Accept-CH"))
}

func TestIndex_ResolvesThemeFromClientHint(t *testing.T) {
	s := newTestServer(t, theme.NewMemoryStore())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(schemeHint, `"dark"`)
	w := do(s, req)
	require.Equal(t, http.StatusOK, w.Code)

	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	assert.True(t, doc.Find("html").HasClass("dark"))

	// mail-tui has a dark variant.
	src, _ := doc.Find(".project-card img.project-image").First().Attr("src")
	assert.Contains(t, src, "dark")
}

func TestIndex_DoNotTrackGetsNoSession(t *testing.T) {
	s := newTestServer(t, theme.NewMemoryStore())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("DNT", "1")
	w := do(s, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, cookieNamed(w, sessionCookie))
}

func TestIndex_ReusesValidSession(t *testing.T) {
	s := newTestServer(t, theme.NewMemoryStore())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "6f1c5b0e-8f0a-4c55-9d1b-1f8d3c2a7e44"})
	w := do(s, req)
	assert.Nil(t, cookieNamed(w, sessionCookie))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "not-a-uuid"})
	w = do(s, req)
	assert.NotNil(t, cookieNamed(w, sessionCookie))
}

func TestExperienceFragment(t *testing.T) {
	s := newTestServer(t, theme.NewMemoryStore())

	w := do(s, httptest.NewRequest(http.MethodGet, "/experience/target", nil))
	require.Equal(t, http.StatusOK, w.Code)
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	assert.Equal(t, "Presentation Expert", doc.Find(".sheet-title").Text())
	assert.Equal(t, "Target", doc.Find(".sheet-company").Text())
	assert.Positive(t, doc.Find(".tag").Length())

	w = do(s, httptest.NewRequest(http.MethodGet, "/experience/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "could not be found")
}

func TestSetTheme_JSON(t *testing.T) {
	themes := theme.NewMemoryStore()
	s := newTestServer(t, themes)

	w := do(s, postForm("/theme", url.Values{"preference": {"dark"}}))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "dark", body["preference"])
	assert.Equal(t, "dark", body["resolved"])

	session := cookieNamed(w, sessionCookie)
	require.NotNil(t, session)
	p, ok, err := themes.Preference(context.Background(), session.Value)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, theme.Dark, p)

	cookie := cookieNamed(w, themeCookie)
	require.NotNil(t, cookie)
	assert.Equal(t, "dark", cookie.Value)
	assert.False(t, cookie.HttpOnly)
}

func TestSetTheme_PersistsAcrossRequests(t *testing.T) {
	s := newTestServer(t, theme.NewMemoryStore())
	w := do(s, postForm("/theme", url.Values{"preference": {"light"}}))
	require.Equal(t, http.StatusOK, w.Code)
	session := cookieNamed(w, sessionCookie)
	require.NotNil(t, session)

	req := httptest.NewRequest(http.MethodGet, "/theme", nil)
	req.AddCookie(session)
	req.Header.Set(schemeHint, "dark")
	w = do(s, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"preference":"light","resolved":"light"}`, w.Body.String())
}

func TestGetTheme_SystemFollowsHint(t *testing.T) {
	s := newTestServer(t, theme.NewMemoryStore())

	w := do(s, httptest.NewRequest(http.MethodGet, "/theme", nil))
	assert.JSONEq(t, `{"preference":"system","resolved":""}`, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/theme", nil)
	req.Header.Set(schemeHint, "dark")
	w = do(s, req)
	assert.JSONEq(t, `{"preference":"system","resolved":"dark"}`, w.Body.String())
}

func TestSetTheme_HTMXToggle(t *testing.T) {
	s := newTestServer(t, theme.NewMemoryStore())

	req := postForm("/theme", url.Values{"action": {"toggle"}, "resolved": {"dark"}})
	req.Header.Set("HX-Request", "true")
	w := do(s, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"themeChanged":"light"}`, w.Header().Get("HX-Trigger"))

	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	pref, _ := doc.Find(".theme-button").Attr("data-preference")
	assert.Equal(t, "light", pref)

	req = postForm("/theme", url.Values{"action": {"toggle"}, "resolved": {"light"}})
	w = do(s, req)
	assert.JSONEq(t, `{"preference":"dark","resolved":"dark"}`, w.Body.String())
}

func TestSetTheme_ToggleWithUnknownThemeGoesDark(t *testing.T) {
	s := newTestServer(t, theme.NewMemoryStore())
	w := do(s, postForm("/theme", url.Values{"action": {"toggle"}}))
	assert.JSONEq(t, `{"preference":"dark","resolved":"dark"}`, w.Body.String())
}

func TestSetTheme_InvalidPreference(t *testing.T) {
	themes := theme.NewMemoryStore()
	s := newTestServer(t, themes)

	w := do(s, postForm("/theme", url.Values{"preference": {"sepia"}}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unknown theme")
	assert.Nil(t, cookieNamed(w, themeCookie))

	req := postForm("/theme", url.Values{"preference": {"sepia"}})
	req.Header.Set("HX-Request", "true")
	w = do(s, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `role="alert"`)
}

func TestSetTheme_DoNotTrackUsesCookieOnly(t *testing.T) {
	themes := theme.NewMemoryStore()
	s := newTestServer(t, themes)

	req := postForm("/theme", url.Values{"preference": {"dark"}})
	req.Header.Set("DNT", "1")
	w := do(s, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, cookieNamed(w, sessionCookie))
	cookie := cookieNamed(w, themeCookie)
	require.NotNil(t, cookie)

	get := httptest.NewRequest(http.MethodGet, "/theme", nil)
	get.Header.Set("DNT", "1")
	get.AddCookie(cookie)
	w = do(s, get)
	assert.JSONEq(t, `{"preference":"dark","resolved":"dark"}`, w.Body.String())
}

func TestSetTheme_SQLiteStore(t *testing.T) {
	db, err := store.OpenMemory(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	s := newTestServer(t, db)
	require.NotNil(t, s.pruner)

	w := do(s, postForm("/theme", url.Values{"preference": {"system"}}))
	require.Equal(t, http.StatusOK, w.Code)

	n, err := db.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSEOFiles(t *testing.T) {
	s := newTestServer(t, theme.NewMemoryStore())

	w := do(s, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")
	assert.Contains(t, w.Body.String(), "<loc>https://zach.dev</loc>")
	assert.Contains(t, w.Body.String(), "<lastmod>2025-01-02T03:04:05Z</lastmod>")

	w = do(s, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sitemap: https://zach.dev/sitemap.xml")

	w = do(s, httptest.NewRequest(http.MethodGet, "/manifest.json", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	assert.Equal(t, "Zach", m["short_name"])
}

func TestSocialCard(t *testing.T) {
	s := newTestServer(t, theme.NewMemoryStore())
	for _, path := range []string{"/opengraph-image", "/twitter-image"} {
		w := do(s, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

		img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, seo.SocialCardSize, img.Bounds().Dx())
		assert.Equal(t, seo.SocialCardSize, img.Bounds().Dy())
	}
}

func TestStaticAndHealth(t *testing.T) {
	s := newTestServer(t, theme.NewMemoryStore())

	w := do(s, httptest.NewRequest(http.MethodGet, "/static/sheet.js", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(s, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRender(t *testing.T) {
	s := newTestServer(t, theme.NewMemoryStore())
	for _, f := range s.ExportFiles() {
		body, err := s.Render(f.Path)
		require.NoError(t, err, f.Path)
		assert.NotEmpty(t, body, f.Path)
	}

	_, err := s.Render("/experience/nowhere")
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	s := newTestServer(t, theme.NewMemoryStore())
	require.NoError(t, os.MkdirAll(filepath.Join(s.cfg.ImagesDir, "projects"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(s.cfg.ImagesDir, "projects", "mail.png"), []byte("png"), 0o644))

	out := t.TempDir()
	written, err := s.Export(out)
	require.NoError(t, err)

	for _, name := range []string{
		"index.html",
		"opengraph-image",
		"twitter-image",
		"experience/target/index.html",
		"experience/jasons-catered-events/index.html",
		"static/site.css",
		"static/sheet-machine.js",
		"static/sheet.js",
		"images/projects/mail.png",
	} {
		assert.Contains(t, written, name)
		_, err := os.Stat(filepath.Join(out, filepath.FromSlash(name)))
		assert.NoError(t, err, name)
	}

	fragment, err := os.ReadFile(filepath.Join(out, "experience", "target", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(fragment), "Presentation Expert")

	// A second run overwrites in place.
	_, err = s.Export(out)
	assert.NoError(t, err)
}

func TestIndex_MobileMenus(t *testing.T) {
	s := newTestServer(t, theme.NewMemoryStore())
	w := do(s, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)

	menu := doc.Find("#menu-button")
	require.Equal(t, 1, menu.Length())
	target, _ := menu.Attr("data-drawer")
	assert.Equal(t, "nav-drawer", target)
	expanded, _ := menu.Attr("aria-expanded")
	assert.Equal(t, "false", expanded)

	drawer := doc.Find("#nav-drawer")
	require.Equal(t, 1, drawer.Length())
	_, hidden := drawer.Attr("hidden")
	assert.True(t, hidden)
	links := drawer.Find("a.drawer-link")
	assert.Equal(t, 5, links.Length())
	assert.Equal(t, 4, links.Filter("[data-section]").Length())
	external, _ := links.Last().Attr("target")
	assert.Equal(t, "_blank", external)
	assert.Equal(t, 1, doc.Find("#drawer-backdrop").Length())

	opener, _ := doc.Find(".theme-menu-button").Attr("data-drawer")
	assert.Equal(t, "theme-drawer", opener)
	var choices []string
	doc.Find("#theme-drawer [data-theme-choice]").Each(func(_ int, b *goquery.Selection) {
		v, _ := b.Attr("data-theme-choice")
		choices = append(choices, v)
	})
	assert.Equal(t, []string{"light", "dark", "system"}, choices)
	checked, _ := doc.Find(`#theme-drawer [data-theme-choice="system"]`).Attr("aria-checked")
	assert.Equal(t, "true", checked)
}

func TestTemplateFuncsAreUsed(t *testing.T) {
	entries, err := templateFS.ReadDir("templates")
	require.NoError(t, err)
	var all strings.Builder
	for _, e := range entries {
		b, err := templateFS.ReadFile("templates/" + e.Name())
		require.NoError(t, err)
		all.Write(b)
	}
	for name := range templateFuncs() {
		assert.Contains(t, all.String(), "{{"+name+" ", name)
	}
}
