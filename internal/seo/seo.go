// Package seo builds the search and social-sharing metadata of the page.
package seo

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/Zachkp/folio/internal/content"
)

// Site carries the deployment-specific inputs.
type Site struct {
	URL           string
	TwitterHandle string
	Locale        string
}

// Image is an Open Graph or Twitter image.
type Image struct {
	URL    string
	Width  int
	Height int
	Alt    string
}

// Metadata is everything rendered into <head>.
type Metadata struct {
	Title         string
	TitleTemplate string
	Description   string
	Keywords      []string
	Author        string
	AuthorURL     string
	Canonical     string
	Robots        string
	GoogleBot     string
	ThemeColors   map[string]string

	OGType     string
	OGLocale   string
	OGSiteName string
	OGTitle    string
	OGImages   []Image

	TwitterCard    string
	TwitterSite    string
	TwitterCreator string
	TwitterImages  []string

	// Other holds extra author profile metas such as "github:author".
	Other map[string]string
}

// PageTitle renders a sub-page title through the template.
func (m Metadata) PageTitle(page string) string {
	if page == "" {
		return m.Title
	}
	return fmt.Sprintf(m.TitleTemplate, page)
}

// SocialCardSize is the edge of the square share image.
const SocialCardSize = 1200

// Build derives the page metadata from the content.
func Build(site Site, s *content.Store) Metadata {
	base := strings.TrimRight(site.URL, "/")
	hero := s.Hero()
	locale := site.Locale
	if locale == "" {
		locale = "en_US"
	}

	title := hero.Name
	if hero.Headline != "" {
		title = hero.Name + " | " + hero.Headline
	}
	description := Description(s)
	alt := strings.TrimSpace(hero.Name + " - " + hero.Headline)

	m := Metadata{
		Title:         title,
		TitleTemplate: "%s | " + hero.Name,
		Description:   description,
		Keywords:      Keywords(s),
		Author:        hero.Name,
		AuthorURL:     base,
		Canonical:     base,
		Robots:        "index, follow",
		GoogleBot:     "index, follow, max-video-preview:-1, max-image-preview:large, max-snippet:-1",
		ThemeColors: map[string]string{
			"(prefers-color-scheme: light)": "#f8fafc",
			"(prefers-color-scheme: dark)":  "#0f172a",
		},
		OGType:      "website",
		OGLocale:    locale,
		OGSiteName:  hero.Name + " - Portfolio",
		OGTitle:     title,
		TwitterCard: "summary_large_image",
		Other:       map[string]string{},
	}

	m.OGImages = append(m.OGImages, Image{URL: base + "/opengraph-image", Width: SocialCardSize, Height: SocialCardSize, Alt: alt})
	m.TwitterImages = append(m.TwitterImages, base+"/twitter-image")
	if hero.Image != "" {
		m.OGImages = append(m.OGImages, Image{URL: absolute(base, hero.Image), Width: SocialCardSize, Height: SocialCardSize, Alt: alt})
		m.TwitterImages = append(m.TwitterImages, absolute(base, hero.Image))
	}

	if site.TwitterHandle != "" {
		handle := "@" + strings.TrimPrefix(site.TwitterHandle, "@")
		m.TwitterSite = handle
		m.TwitterCreator = handle
	}
	for _, l := range hero.SocialLinks {
		switch l.Icon {
		case "github", "linkedin":
			m.Other[l.Icon+":author"] = l.URL
		}
	}
	return m
}

// Description summarizes the hero for search snippets.
func Description(s *content.Store) string {
	hero := s.Hero()
	parts := []string{hero.Name}
	if hero.Headline != "" {
		parts[0] += " - " + hero.Headline
	}
	if exp := s.Experience(); len(exp) > 0 {
		parts = append(parts, fmt.Sprintf("%s at %s", exp[0].Role, exp[0].Company))
	}
	if tech := technologies(s); len(tech) > 0 {
		if len(tech) > 6 {
			tech = tech[:6]
		}
		parts = append(parts, "Works with "+strings.Join(tech, ", "))
	}
	return strings.Join(parts, ". ") + "."
}

// Keywords lists name variants, roles and technologies without duplicates.
func Keywords(s *content.Store) []string {
	hero := s.Hero()
	var out []string
	add := func(k string) {
		k = strings.TrimSpace(k)
		if k != "" && !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	add(hero.Name)
	add(hero.FirstName())
	add(hero.Name + " portfolio")
	add(hero.Headline)
	for _, e := range s.Experience() {
		add(e.Role)
		add(hero.Name + " " + e.Company)
	}
	for _, t := range technologies(s) {
		add(t)
	}
	return out
}

func technologies(s *content.Store) []string {
	var out []string
	for _, e := range s.Experience() {
		for _, t := range e.Technologies {
			if !slices.Contains(out, t) {
				out = append(out, t)
			}
		}
	}
	for _, p := range s.Projects() {
		for _, t := range p.Technologies {
			if !slices.Contains(out, t) {
				out = append(out, t)
			}
		}
	}
	return out
}

// JSONLD returns the structured-data graph: the person, the website, the
// professional service and the breadcrumb trail.
func JSONLD(site Site, s *content.Store) ([]byte, error) {
	base := strings.TrimRight(site.URL, "/")
	hero := s.Hero()
	personID := base + "/#person"
	description := Description(s)

	var sameAs []string
	for _, l := range hero.SocialLinks {
		sameAs = append(sameAs, l.URL)
	}
	sameAs = append(sameAs, base)

	person := map[string]any{
		"@context":    "https://schema.org",
		"@type":       []string{"Person", "SoftwareDeveloper"},
		"@id":         personID,
		"name":        hero.Name,
		"url":         base,
		"jobTitle":    hero.Headline,
		"description": description,
		"sameAs":      sameAs,
		"knowsAbout":  technologies(s),
	}
	if given, family, ok := strings.Cut(hero.Name, " "); ok {
		person["givenName"] = given
		person["familyName"] = family
	}
	if hero.Image != "" {
		person["image"] = map[string]any{
			"@type":  "ImageObject",
			"url":    absolute(base, hero.Image),
			"width":  400,
			"height": 400,
		}
	}
	if email := s.Contact().Email; email != "" {
		person["email"] = email
	}
	if exp := s.Experience(); len(exp) > 0 {
		person["worksFor"] = map[string]any{"@type": "Organization", "name": exp[0].Company}
	}

	website := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"@id":         base + "/#website",
		"url":         base,
		"name":        hero.Name + " - Portfolio",
		"description": description,
		"publisher":   map[string]string{"@id": personID},
		"inLanguage":  "en-US",
	}
	service := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "ProfessionalService",
		"@id":         base + "/#service",
		"name":        hero.Name + " - Software Engineering Services",
		"description": description,
		"provider":    map[string]string{"@id": personID},
		"areaServed":  "Worldwide",
	}
	breadcrumb := map[string]any{
		"@context": "https://schema.org",
		"@type":    "BreadcrumbList",
		"itemListElement": []map[string]any{{
			"@type":    "ListItem",
			"position": 1,
			"name":     "Home",
			"item":     base,
		}},
	}

	return json.Marshal([]any{person, website, service, breadcrumb})
}

func absolute(base, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return base + "/" + strings.TrimPrefix(path, "/")
}
