package web

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookie = "folio_session"
	themeCookie   = "folio_theme"
	sessionKey    = "session"
	cookieMaxAge  = 3600 * 24 * 365
)

// requestLogger logs one line per request through slog.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/static/") || strings.HasPrefix(path, "/images/") {
			return
		}
		logger.LogAttrs(c.Request.Context(), slog.LevelInfo, "request",
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}

// sessionMiddleware gives each visitor an anonymous session ID so their theme
// preference can be stored server-side. Visitors sending DNT get no session;
// their preference lives only in the theme cookie.
func sessionMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		id, err := c.Cookie(sessionCookie)
		if err == nil {
			if _, perr := uuid.Parse(id); perr != nil {
				logger.Debug("discarding malformed session cookie")
				id = ""
			}
		}
		if id == "" {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookie, id, cookieMaxAge, "/", "", c.Request.TLS != nil, true)
		}
		c.Set(sessionKey, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}
