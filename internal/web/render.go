package web

import (
	"bytes"
	"html/template"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/theme"
)

// Raw HTML in content is escaped; only markdown formatting comes through.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
)

func renderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"markdown": renderMarkdown,
		"join":     strings.Join,
		"num": func(f float64) string {
			return strconv.FormatFloat(f, 'f', -1, 64)
		},
		"delay": func(i int, step float64) string {
			return strconv.FormatFloat(float64(i)*step, 'f', 2, 64)
		},
	}
}

// projectView is a project with its theme-dependent image and primary link
// resolved for one render.
type projectView struct {
	content.Project
	Img        string
	Primary    content.ProjectLink
	HasPrimary bool
}

func projectViews(projects []content.Project, resolved theme.Resolved) []projectView {
	out := make([]projectView, len(projects))
	for i, p := range projects {
		primary, ok := p.PrimaryLink()
		out[i] = projectView{
			Project:    p,
			Img:        p.ImageFor(string(resolved)),
			Primary:    primary,
			HasPrimary: ok,
		}
	}
	return out
}

// themeView drives the toggle button.
type themeView struct {
	Preference theme.Preference
	Resolved   theme.Resolved
	Options    []theme.Preference
}

func newThemeView(p theme.Preference, r theme.Resolved) themeView {
	return themeView{Preference: p, Resolved: r, Options: theme.Preferences}
}
