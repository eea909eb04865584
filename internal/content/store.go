// Package content loads the portfolio data file and serves it read-only.
package content

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data.json
var defaultData []byte

// ErrUnknownFormat is returned for data files that are neither JSON nor YAML.
var ErrUnknownFormat = errors.New("content: unknown data format")

// Format is the encoding of a data file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf infers the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Store is an immutable view of a Portfolio. Accessors return copies so
// callers cannot reach back into the loaded data.
type Store struct {
	data Portfolio
}

// Default returns the store for the embedded data file.
func Default() (*Store, error) {
	return Parse(defaultData, FormatJSON)
}

// Load reads the data file at path. An empty path loads the embedded default.
func Load(path string) (*Store, error) {
	if path == "" {
		return Default()
	}
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content %s: %w", path, err)
	}
	s, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing content %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes data in the given format.
func Parse(data []byte, format Format) (*Store, error) {
	var p Portfolio
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&p); err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return &Store{data: p}, nil
}

func (s *Store) Hero() Hero {
	h := s.data.Hero
	h.SocialLinks = slices.Clone(h.SocialLinks)
	return h
}

func (s *Store) Experience() []Experience {
	out := make([]Experience, len(s.data.Experience))
	for i, e := range s.data.Experience {
		out[i] = cloneExperience(e)
	}
	return out
}

// ExperienceByID finds an experience entry by ID.
func (s *Store) ExperienceByID(id string) (Experience, bool) {
	for _, e := range s.data.Experience {
		if e.ID == id {
			return cloneExperience(e), true
		}
	}
	return Experience{}, false
}

func (s *Store) Projects() []Project {
	out := make([]Project, len(s.data.Projects))
	for i, p := range s.data.Projects {
		p.Technologies = slices.Clone(p.Technologies)
		p.Links = slices.Clone(p.Links)
		out[i] = p
	}
	return out
}

func (s *Store) Contact() Contact {
	c := s.data.Contact
	c.SocialLinks = slices.Clone(c.SocialLinks)
	return c
}

func (s *Store) NavItems() []NavItem {
	return slices.Clone(s.data.NavItems)
}

// Sections returns the anchors of the internal nav items in page order.
func (s *Store) Sections() []string {
	var out []string
	for _, n := range s.data.NavItems {
		if a := n.Anchor(); a != "" {
			out = append(out, a)
		}
	}
	return out
}

// Portfolio returns a deep copy of the whole record.
func (s *Store) Portfolio() Portfolio {
	return Portfolio{
		Hero:       s.Hero(),
		Experience: s.Experience(),
		Projects:   s.Projects(),
		Contact:    s.Contact(),
		NavItems:   s.NavItems(),
	}
}

func cloneExperience(e Experience) Experience {
	e.Highlights = slices.Clone(e.Highlights)
	e.Technologies = slices.Clone(e.Technologies)
	return e
}
