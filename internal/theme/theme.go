// Package theme tracks the visitor's light/dark preference and resolves it
// against the operating system's color scheme.
package theme

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrInvalidPreference is returned when parsing an unrecognized preference.
var ErrInvalidPreference = errors.New("theme: invalid preference")

// Preference is what the visitor picked.
type Preference string

const (
	Light  Preference = "light"
	Dark   Preference = "dark"
	System Preference = "system"
)

// Preferences lists the choices in menu order.
var Preferences = []Preference{Light, Dark, System}

// ParsePreference parses a stored or submitted preference. An empty string
// means the visitor never chose and maps to System.
func ParsePreference(s string) (Preference, error) {
	switch p := Preference(strings.ToLower(strings.TrimSpace(s))); p {
	case Light, Dark, System:
		return p, nil
	case "":
		return System, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPreference, s)
	}
}

// Resolved is the theme actually rendered. Unknown is legitimate for the
// first render, before the OS color scheme has been observed.
type Resolved string

const (
	Unknown       Resolved = ""
	ResolvedLight Resolved = "light"
	ResolvedDark  Resolved = "dark"
)

// ParseScheme reads an OS color scheme signal such as the value of the
// Sec-CH-Prefers-Color-Scheme client hint.
func ParseScheme(s string) Resolved {
	switch strings.Trim(strings.ToLower(strings.TrimSpace(s)), `"`) {
	case "dark":
		return ResolvedDark
	case "light":
		return ResolvedLight
	default:
		return Unknown
	}
}

// Resolve maps a preference onto the rendered theme.
func Resolve(p Preference, scheme Resolved) Resolved {
	switch p {
	case Light:
		return ResolvedLight
	case Dark:
		return ResolvedDark
	default:
		return scheme
	}
}

// Toggle is the one-click switch: dark goes light, anything else goes dark.
func Toggle(current Resolved) Preference {
	if current == ResolvedDark {
		return Light
	}
	return Dark
}

// Store persists preferences per session.
type Store interface {
	Preference(ctx context.Context, session string) (Preference, bool, error)
	SetPreference(ctx context.Context, session string, p Preference) error
}

// Controller reads and writes preferences through a Store.
type Controller struct {
	store Store
}

func NewController(store Store) *Controller {
	return &Controller{store: store}
}

// Preference returns the stored preference, System when none was saved.
func (c *Controller) Preference(ctx context.Context, session string) (Preference, error) {
	if session == "" {
		return System, nil
	}
	p, ok, err := c.store.Preference(ctx, session)
	if err != nil {
		return System, fmt.Errorf("loading theme preference: %w", err)
	}
	if !ok {
		return System, nil
	}
	return p, nil
}

// SetPreference saves p for the session.
func (c *Controller) SetPreference(ctx context.Context, session string, p Preference) error {
	if _, err := ParsePreference(string(p)); err != nil {
		return err
	}
	if session == "" {
		return errors.New("theme: empty session")
	}
	if err := c.store.SetPreference(ctx, session, p); err != nil {
		return fmt.Errorf("saving theme preference: %w", err)
	}
	return nil
}

// Resolved returns the stored preference together with the theme it
// resolves to under the given OS scheme.
func (c *Controller) Resolved(ctx context.Context, session string, scheme Resolved) (Preference, Resolved, error) {
	p, err := c.Preference(ctx, session)
	if err != nil {
		return p, Resolve(p, scheme), err
	}
	return p, Resolve(p, scheme), nil
}

// MemoryStore keeps preferences in a map.
type MemoryStore struct {
	mu    sync.RWMutex
	prefs map[string]Preference
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{prefs: make(map[string]Preference)}
}

func (m *MemoryStore) Preference(_ context.Context, session string) (Preference, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.prefs[session]
	return p, ok, nil
}

func (m *MemoryStore) SetPreference(_ context.Context, session string, p Preference) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs[session] = p
	return nil
}
