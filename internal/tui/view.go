package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/scrollspy"
	"github.com/Zachkp/folio/internal/theme"
)

// Terminals show markdown emphasis as plain text.
var plain = strings.NewReplacer("**", "", "__", "", "`", "")

func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	body := m.main.View()
	if m.panel.IsOpen() {
		if m.resizable() {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.panelView())
		} else {
			body = m.panelView()
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), body, m.footerView())
}

func (m Model) headerView() string {
	s := m.styles
	first := m.content.Hero().FirstName()
	active := m.activeSection()

	parts := []string{s.Accent.Render("<") + s.Logo.Render(first) + s.Accent.Render("/>")}
	for _, n := range m.content.NavItems() {
		switch {
		case n.IsExternal:
			parts = append(parts, s.Nav.Render(n.Label+" ↗"))
		case n.Anchor() == active:
			parts = append(parts, s.NavActive.Render(n.Label))
		default:
			parts = append(parts, s.Nav.Render(n.Label))
		}
	}
	bar := s.Bar.MaxWidth(m.width).Render(" " + strings.Join(parts, "   "))

	rule := strings.Repeat(" ", m.width)
	if m.main.YOffset > 0 {
		rule = s.Rule.Render(strings.Repeat("─", m.width))
	}
	return bar + "\n" + rule
}

func (m Model) footerView() string {
	s := m.styles
	left := m.help.View(m.keys)

	var right string
	switch {
	case m.err != nil:
		right = s.Error.Render(m.err.Error())
	case m.panel.Dragging():
		right = s.Status.Render(fmt.Sprintf("width %.0f%%", m.panel.Width()))
	case m.mouse.dismissed:
		right = s.Status.Render("panel closed")
	case m.pref == theme.System:
		right = s.Status.Render(fmt.Sprintf("theme system (%s)", m.resolved))
	default:
		right = s.Status.Render("theme " + string(m.pref))
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		return " " + left
	}
	return " " + left + strings.Repeat(" ", gap) + right + " "
}

func (m Model) panelView() string {
	style := m.styles.Panel
	if m.panel.Dragging() {
		style = m.styles.PanelDragging
	}
	return style.
		Width(m.panelWidth() - 1).
		Height(m.bodyHeight()).
		MaxHeight(m.bodyHeight()).
		Render(m.detail.View())
}

// renderDocument lays out the page sections for the given width and
// returns the section offsets and experience entry spans in lines.
func (m Model) renderDocument(width int) (string, []scrollspy.Section, []span) {
	s := m.styles
	page := s.Page.Width(width)

	var (
		b        strings.Builder
		line     int
		sections []scrollspy.Section
		roles    []span
	)
	write := func(block string) {
		b.WriteString(block)
		b.WriteByte('\n')
		line += lipgloss.Height(block)
	}
	blank := func() { write("") }
	section := func(id, title string) {
		sections = append(sections, scrollspy.Section{ID: id, Top: float64(line)})
		if title != "" {
			blank()
			write(page.Render(s.Section.Render(title)))
			blank()
		}
	}

	hero := m.content.Hero()
	section("hero", "")
	blank()
	write(page.Render(s.Title.Render(hero.Name)))
	write(page.Render(s.Headline.Render(hero.Headline)))
	blank()
	write(page.Render(plain.Replace(hero.Description)))
	if links := socialNames(hero.SocialLinks); links != "" {
		blank()
		write(page.Render(s.Muted.Render(links)))
	}

	section("experience", "Experience")
	for i, e := range m.content.Experience() {
		marker := "  "
		title := s.Title.Render(e.Role + " · " + e.Company)
		if i == m.cursor {
			marker = s.Cursor.Render("▸ ")
			title = s.Cursor.Render(e.Role + " · " + e.Company)
		}
		start := line
		write(page.Render(marker + title))
		write(page.Render("  " + s.Muted.Render(e.Period)))
		write(page.Render(plain.Replace(e.Description)))
		if len(e.Technologies) > 0 {
			write(page.Render(m.tags(e.Technologies)))
		}
		roles = append(roles, span{id: e.ID, start: start, end: line})
		blank()
	}

	section("projects", "Projects")
	for _, p := range m.content.Projects() {
		write(page.Render(s.Title.Render(p.Title)))
		if l, ok := p.PrimaryLink(); ok {
			write(page.Render(s.Accent.Render(l.URL)))
		}
		write(page.Render(plain.Replace(p.Description)))
		if len(p.Technologies) > 0 {
			write(page.Render(m.tags(p.Technologies)))
		}
		blank()
	}

	contact := m.content.Contact()
	section("contact", "Contact")
	write(page.Render(contact.Message))
	blank()
	if contact.Email != "" {
		write(page.Render(s.Accent.Render(contact.Email)))
	}
	if l, ok := contact.LinkByIcon("linkedin"); ok {
		write(page.Render(s.Accent.Render(l.URL)))
	}

	return strings.TrimSuffix(b.String(), "\n"), sections, roles
}

// renderDetail is the panel body for one experience entry.
func (m Model) renderDetail(id string, width int) string {
	s := m.styles
	e, ok := m.content.ExperienceByID(id)
	if !ok {
		return s.Error.Render("That role could not be found.")
	}
	block := s.Body.Width(width)

	var out []string
	out = append(out,
		"",
		block.Render(s.PanelTitle.Render(e.Role)),
		block.Render(s.Title.Render(e.Company)),
		"",
		block.Render(s.Muted.Render(joinNonEmpty(" · ", e.Period, e.Location, e.Type))),
		"",
		block.Render(plain.Replace(e.Description)),
	)
	if len(e.Highlights) > 0 {
		out = append(out, "", block.Render(s.Section.Render("Key Achievements")))
		for _, h := range e.Highlights {
			out = append(out, block.Render("• "+h))
		}
	}
	if len(e.Technologies) > 0 {
		out = append(out, "", block.Render(s.Section.Render("Technologies")), block.Render(m.tags(e.Technologies)))
	}
	return strings.Join(out, "\n")
}

func (m Model) tags(names []string) string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = m.styles.Tag.Render("[" + n + "]")
	}
	return "  " + strings.Join(out, " ")
}

func socialNames(links []content.SocialLink) string {
	names := make([]string, len(links))
	for i, l := range links {
		names[i] = l.Name
	}
	return strings.Join(names, " · ")
}

func joinNonEmpty(sep string, parts ...string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
