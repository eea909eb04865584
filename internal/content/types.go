package content

import "strings"

// SocialLink is an external profile shown in the hero and contact sections.
type SocialLink struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
	Icon string `json:"icon" yaml:"icon"`
}

// Hero is the introduction at the top of the page.
type Hero struct {
	Name        string       `json:"name" yaml:"name"`
	Headline    string       `json:"headline" yaml:"headline"`
	Description string       `json:"description" yaml:"description"`
	Image       string       `json:"image" yaml:"image"`
	SocialLinks []SocialLink `json:"socialLinks" yaml:"socialLinks"`
	ResumeURL   string       `json:"resumeUrl,omitempty" yaml:"resumeUrl,omitempty"`
}

// FirstName is the first word of the name, used by the navbar logo.
func (h Hero) FirstName() string {
	first, _, _ := strings.Cut(strings.TrimSpace(h.Name), " ")
	return first
}

// Experience is one entry of the work timeline.
type Experience struct {
	ID           string   `json:"id" yaml:"id"`
	Company      string   `json:"company" yaml:"company"`
	Role         string   `json:"role" yaml:"role"`
	Period       string   `json:"period" yaml:"period"`
	Location     string   `json:"location" yaml:"location"`
	Type         string   `json:"type" yaml:"type"`
	Description  string   `json:"description" yaml:"description"`
	Highlights   []string `json:"highlights" yaml:"highlights"`
	Technologies []string `json:"technologies" yaml:"technologies"`
}

// LinkType classifies a project link.
type LinkType string

const (
	LinkGitHub LinkType = "github"
	LinkLive   LinkType = "live"
	LinkDemo   LinkType = "demo"
)

// ProjectLink points at a project's source, live site or demo.
type ProjectLink struct {
	Type LinkType `json:"type" yaml:"type"`
	URL  string   `json:"url" yaml:"url"`
}

// Project is one entry of the project showcase. ImageDark and ImageLight are
// optional theme-specific variants of Image.
type Project struct {
	ID           string        `json:"id" yaml:"id"`
	Title        string        `json:"title" yaml:"title"`
	Description  string        `json:"description" yaml:"description"`
	Image        string        `json:"image" yaml:"image"`
	ImageDark    string        `json:"imageDark,omitempty" yaml:"imageDark,omitempty"`
	ImageLight   string        `json:"imageLight,omitempty" yaml:"imageLight,omitempty"`
	Technologies []string      `json:"technologies" yaml:"technologies"`
	Links        []ProjectLink `json:"links" yaml:"links"`
}

// ImageFor picks the image for a rendered theme ("dark", "light", or ""
// when the theme is not known yet), falling back to Image.
func (p Project) ImageFor(theme string) string {
	switch theme {
	case "dark":
		if p.ImageDark != "" {
			return p.ImageDark
		}
	case "light":
		if p.ImageLight != "" {
			return p.ImageLight
		}
	}
	return p.Image
}

// PrimaryLink returns the live link, else the demo link, else the first one.
func (p Project) PrimaryLink() (ProjectLink, bool) {
	for _, want := range []LinkType{LinkLive, LinkDemo} {
		for _, l := range p.Links {
			if l.Type == want {
				return l, true
			}
		}
	}
	if len(p.Links) > 0 {
		return p.Links[0], true
	}
	return ProjectLink{}, false
}

// Contact is the closing call to action.
type Contact struct {
	Email       string       `json:"email" yaml:"email"`
	Message     string       `json:"message" yaml:"message"`
	SocialLinks []SocialLink `json:"socialLinks" yaml:"socialLinks"`
}

// LinkByIcon finds a social link by its icon name.
func (c Contact) LinkByIcon(icon string) (SocialLink, bool) {
	for _, l := range c.SocialLinks {
		if l.Icon == icon {
			return l, true
		}
	}
	return SocialLink{}, false
}

// NavItem is a navbar entry. Internal items link to a section anchor.
type NavItem struct {
	Label      string `json:"label" yaml:"label"`
	Href       string `json:"href" yaml:"href"`
	IsExternal bool   `json:"isExternal,omitempty" yaml:"isExternal,omitempty"`
}

// Anchor returns the section ID an internal item points at.
func (n NavItem) Anchor() string {
	if n.IsExternal {
		return ""
	}
	return strings.TrimPrefix(n.Href, "#")
}

// Portfolio is the whole content file.
type Portfolio struct {
	Hero       Hero         `json:"hero" yaml:"hero"`
	Experience []Experience `json:"experience" yaml:"experience"`
	Projects   []Project    `json:"projects" yaml:"projects"`
	Contact    Contact      `json:"contact" yaml:"contact"`
	NavItems   []NavItem    `json:"navItems" yaml:"navItems"`
}
