package seo

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/Zachkp/folio/internal/content"
)

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// Sitemap renders sitemap.xml. A single-page site lists only its root URL;
// section fragments are not valid sitemap entries.
func Sitemap(siteURL string, lastModified time.Time) ([]byte, error) {
	base, _, _ := strings.Cut(siteURL, "#")
	base = strings.TrimRight(base, "/")
	set := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{{
			Loc:        base,
			LastMod:    lastModified.UTC().Format(time.RFC3339),
			ChangeFreq: "monthly",
			Priority:   "1.0",
		}},
	}
	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding sitemap: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

// Robots renders robots.txt allowing everything and pointing at the sitemap.
func Robots(siteURL string) []byte {
	base := strings.TrimRight(siteURL, "/")
	return []byte("User-agent: *\nAllow: /\n\nSitemap: " + base + "/sitemap.xml\n")
}

type manifestIcon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type"`
}

type manifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	Description     string         `json:"description"`
	StartURL        string         `json:"start_url"`
	Display         string         `json:"display"`
	BackgroundColor string         `json:"background_color"`
	ThemeColor      string         `json:"theme_color"`
	Icons           []manifestIcon `json:"icons"`
}

// Manifest renders the web app manifest.
func Manifest(s *content.Store) ([]byte, error) {
	hero := s.Hero()
	m := manifest{
		Name:            hero.Name + " - Portfolio",
		ShortName:       hero.FirstName(),
		Description:     Description(s),
		StartURL:        "/",
		Display:         "standalone",
		BackgroundColor: "#0f172a",
		ThemeColor:      "#0f172a",
		Icons: []manifestIcon{{
			Src:   "/opengraph-image",
			Sizes: fmt.Sprintf("%dx%d", SocialCardSize, SocialCardSize),
			Type:  "image/png",
		}},
	}
	out, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	return out, nil
}
