package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/folio/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yml")

	out, err := execute(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)

	_, err = execute(t, "config", "init", "--config", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, "config", "init", "--config", path, "--force")
	assert.NoError(t, err)
	forceInit = false
}

func TestConfigShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9090\n"), 0o644))

	out, err := execute(t, "config", "show", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "port: 9090")
	assert.Contains(t, out, "snap_points:")
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	images := filepath.Join(dir, "images")
	for _, name := range []string{
		"profile.png", "resume.pdf",
		"projects/mail.png", "projects/mail-dark.png", "projects/music.png",
		"projects/games.png", "projects/games-light.png", "projects/folio.png",
	} {
		p := filepath.Join(images, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(name), 0o644))
	}

	cfgPath := filepath.Join(dir, "folio.yml")
	cfg := config.DefaultConfig()
	cfg.Mode = "test"
	cfg.SiteURL = "https://zach.dev"
	cfg.ImagesDir = images
	require.NoError(t, cfg.Save(cfgPath))

	outDir := filepath.Join(dir, "dist")
	out, err := execute(t, "export", "--config", cfgPath, "--out", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(outDir, "static", "sheet.js"))

	for _, name := range []string{"index.html", "sitemap.xml", "robots.txt", "manifest.json", "opengraph-image.png"} {
		info, err := os.Stat(filepath.Join(outDir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}
	robots, err := os.ReadFile(filepath.Join(outDir, "robots.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(robots), "https://zach.dev/sitemap.xml")

	// Every same-site reference in the page must be served by the copy.
	index, err := os.Open(filepath.Join(outDir, "index.html"))
	require.NoError(t, err)
	defer index.Close()
	doc, err := goquery.NewDocumentFromReader(index)
	require.NoError(t, err)

	var refs []string
	for _, attr := range []string{"href", "src", "hx-get"} {
		doc.Find("[" + attr + "]").Each(func(_ int, s *goquery.Selection) {
			v, _ := s.Attr(attr)
			if strings.HasPrefix(v, "/") && !strings.HasPrefix(v, "//") {
				refs = append(refs, v)
			}
		})
	}
	require.NotEmpty(t, refs)
	assert.Contains(t, refs, "/experience/target")

	for _, ref := range refs {
		assert.True(t, servedBy(outDir, ref), "%s is not in the export", ref)
	}
}

// servedBy reports whether a static host rooted at dir answers ref, either
// with the file itself or with a directory index.
func servedBy(dir, ref string) bool {
	name := filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(ref, "/")))
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return true
	}
	_, err := os.Stat(filepath.Join(name, "index.html"))
	return err == nil
}

func TestInvalidConfigIsRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yml")
	require.NoError(t, os.WriteFile(path, []byte("port: 0\n"), 0o644))

	_, err := execute(t, "export", "--config", path, "--out", t.TempDir())
	assert.ErrorContains(t, err, "invalid config")
}
