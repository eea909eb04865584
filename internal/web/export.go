package web

import (
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sort"
)

// ExportFile is one route of a static copy of the site and the file it is
// written to, relative to the output directory.
type ExportFile struct {
	Path string
	File string
}

// Static hosts serve extensionless files as-is, so the social card is also
// written under the exact URL the metadata and manifest point at.
var siteFiles = []ExportFile{
	{Path: "/", File: "index.html"},
	{Path: "/sitemap.xml", File: "sitemap.xml"},
	{Path: "/robots.txt", File: "robots.txt"},
	{Path: "/manifest.json", File: "manifest.json"},
	{Path: "/opengraph-image", File: "opengraph-image.png"},
	{Path: "/opengraph-image", File: "opengraph-image"},
	{Path: "/twitter-image", File: "twitter-image"},
}

// ExportFiles lists every rendered route of a static copy. Experience
// fragments become directory indexes so a static host answers the same
// URL the page requests.
func (s *Server) ExportFiles() []ExportFile {
	files := slices.Clone(siteFiles)
	for _, e := range s.content.Experience() {
		files = append(files, ExportFile{
			Path: "/experience/" + e.ID,
			File: path.Join("experience", e.ID, "index.html"),
		})
	}
	return files
}

// Render serves one GET request in-process and returns the body. Requests
// carry DNT so no session is minted.
func (s *Server) Render(route string) ([]byte, error) {
	req := httptest.NewRequest(http.MethodGet, route, nil)
	req.Header.Set("DNT", "1")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		return nil, fmt.Errorf("rendering %s: status %d", route, w.Code)
	}
	return w.Body.Bytes(), nil
}

// Export writes a static copy of the site into dir: the rendered routes,
// the embedded assets under static/ and the images directory under
// images/. It returns the written files relative to dir, sorted.
func (s *Server) Export(dir string) ([]string, error) {
	var written []string
	write := func(name string, body []byte) error {
		if !fs.ValidPath(name) {
			return fmt.Errorf("refusing to write %q outside the output directory", name)
		}
		dst := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(dst), err)
		}
		if err := os.WriteFile(dst, body, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", dst, err)
		}
		written = append(written, name)
		return nil
	}

	for _, f := range s.ExportFiles() {
		body, err := s.Render(f.Path)
		if err != nil {
			return nil, err
		}
		if err := write(f.File, body); err != nil {
			return nil, err
		}
	}

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}
	if err := copyTree(static, "static", write); err != nil {
		return nil, err
	}

	if images := s.cfg.ImagesDir; images != "" {
		if info, err := os.Stat(images); err == nil && info.IsDir() {
			if err := copyTree(os.DirFS(images), "images", write); err != nil {
				return nil, err
			}
		} else {
			s.logger.Warn("images directory not exported", "dir", images)
		}
	}

	sort.Strings(written)
	return written, nil
}

func copyTree(src fs.FS, prefix string, write func(string, []byte) error) error {
	return fs.WalkDir(src, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		body, err := fs.ReadFile(src, name)
		if err != nil {
			return fmt.Errorf("reading %s: %w", name, err)
		}
		return write(path.Join(prefix, name), body)
	})
}
