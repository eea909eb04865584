// Package web serves the portfolio page and its HTMX fragments with gin.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/seo"
	"github.com/Zachkp/folio/internal/sheet"
	"github.com/Zachkp/folio/internal/theme"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Pruner removes stale persisted preferences.
type Pruner interface {
	Prune(ctx context.Context, maxAge time.Duration) (int64, error)
}

// Options are the dependencies of a Server.
type Options struct {
	Config  *config.Config
	Content *content.Store
	Themes  theme.Store
	Logger  *slog.Logger
	// Now stamps the sitemap; defaults to time.Now at construction.
	Now func() time.Time
}

// Server is the portfolio HTTP server.
type Server struct {
	cfg     *config.Config
	content *content.Store
	themes  *theme.Controller
	pruner  Pruner
	logger  *slog.Logger

	panel    sheet.Config
	meta     seo.Metadata
	jsonLD   template.JS
	sitemap  []byte
	manifest []byte

	cardOnce sync.Once
	card     []byte
	cardErr  error

	engine *gin.Engine
}

// New builds the server and its routes.
func New(opts Options) (*Server, error) {
	if opts.Config == nil || opts.Content == nil || opts.Themes == nil {
		return nil, errors.New("web: config, content and theme store are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	panel := opts.Config.Sheet.Panel()
	if err := panel.Validate(); err != nil {
		return nil, err
	}

	site := seo.Site{URL: opts.Config.BaseURL(), TwitterHandle: opts.Config.TwitterHandle}
	ld, err := seo.JSONLD(site, opts.Content)
	if err != nil {
		return nil, fmt.Errorf("building structured data: %w", err)
	}
	sitemap, err := seo.Sitemap(site.URL, now())
	if err != nil {
		return nil, err
	}
	manifest, err := seo.Manifest(opts.Content)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:      opts.Config,
		content:  opts.Content,
		themes:   theme.NewController(opts.Themes),
		logger:   logger,
		panel:    panel,
		meta:     seo.Build(site, opts.Content),
		jsonLD:   template.JS(ld),
		sitemap:  sitemap,
		manifest: manifest,
	}
	if p, ok := opts.Themes.(Pruner); ok {
		s.pruner = p
	}
	if err := s.routes(); err != nil {
		return nil, err
	}
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) routes() error {
	gin.SetMode(s.cfg.Mode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))

	tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return fmt.Errorf("parsing templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return err
	}
	r.StaticFS("/static", http.FS(static))
	if dir := s.cfg.ImagesDir; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			r.Static("/images", dir)
		}
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/sitemap.xml", s.handleSitemap)
	r.GET("/robots.txt", s.handleRobots)
	r.GET("/manifest.json", s.handleManifest)
	r.GET("/opengraph-image", s.handleSocialCard)
	r.GET("/twitter-image", s.handleSocialCard)

	pages := r.Group("/", sessionMiddleware(s.logger))
	pages.GET("/", s.handleIndex)
	pages.GET("/experience/:id", s.handleExperience)
	pages.GET("/theme", s.handleGetTheme)
	pages.POST("/theme", s.handleSetTheme)

	s.engine = r
	return nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if s.pruner != nil && s.cfg.SessionTTLDays > 0 {
		go s.pruneSessions(ctx)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", srv.Addr, "site_url", s.cfg.SiteURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) pruneSessions(ctx context.Context) {
	maxAge := time.Duration(s.cfg.SessionTTLDays) * 24 * time.Hour
	if _, err := s.pruner.Prune(ctx, maxAge); err != nil {
		s.logger.Error("pruning theme preferences", "err", err)
	}
}

// panelAttrs is the sheet configuration handed to the page script.
func (s *Server) panelAttrs() (snapJSON string, def, threshold float64) {
	raw, _ := json.Marshal(s.panel.SnapPoints)
	return string(raw), s.panel.DefaultWidthPercent, s.panel.CloseThreshold
}

// profileImage loads the hero picture from the images directory when the
// hero image is served from there.
func (s *Server) profileImage() ([]byte, error) {
	img := s.content.Hero().Image
	if s.cfg.ImagesDir == "" || !strings.HasPrefix(img, "/images/") {
		return nil, os.ErrNotExist
	}
	rel := filepath.FromSlash(strings.TrimPrefix(img, "/images/"))
	return os.ReadFile(filepath.Join(s.cfg.ImagesDir, rel))
}
