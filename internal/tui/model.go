// Package tui is the terminal edition of the portfolio: the same sections
// and the same resizable detail panel, driven by keys and the mouse.
package tui

import (
	"context"
	"errors"
	"math"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/scrollspy"
	"github.com/Zachkp/folio/internal/sheet"
	"github.com/Zachkp/folio/internal/theme"
)

// DefaultSession keys the terminal's stored theme preference.
const DefaultSession = "terminal"

const (
	headerHeight = 2
	// Terminals narrower than this get a full-width drawer that cannot be
	// resized.
	minResizableWidth = 80
	handleSlop        = 1
	wheelStep         = 3
	// border plus horizontal padding of the panel
	panelChrome = 3
)

var spyOptions = scrollspy.Options{Lookahead: 2}

// Options configure a Model.
type Options struct {
	Content *content.Store
	Themes  theme.Store
	// Session keys the stored preference; defaults to DefaultSession.
	Session string
	// Panel thresholds are in terminal cells.
	Panel    sheet.Config
	Renderer *lipgloss.Renderer
	Context  context.Context
}

// mouseTracker turns the panel's drag listener into terminal mouse mode
// switches: all motion is reported only while a drag is in progress.
type mouseTracker struct {
	pending   tea.Cmd
	dismissed bool
}

func (t *mouseTracker) Attach() { t.pending = tea.EnableMouseAllMotion }
func (t *mouseTracker) Detach() { t.pending = tea.EnableMouseCellMotion }

func (t *mouseTracker) closed(sheet.CloseReason) { t.dismissed = true }

func (t *mouseTracker) take() tea.Cmd {
	cmd := t.pending
	t.pending = nil
	return cmd
}

// span is the document line range of one experience entry.
type span struct {
	id         string
	start, end int
}

type themeLoadedMsg struct {
	pref theme.Preference
	err  error
}

type themeSavedMsg struct{ err error }

// Model is the bubbletea model of the terminal portfolio.
type Model struct {
	ctx     context.Context
	content *content.Store
	themes  *theme.Controller
	session string

	panel *sheet.Panel
	mouse *mouseTracker

	renderer   *lipgloss.Renderer
	styles     styles
	systemDark bool
	pref       theme.Preference
	resolved   theme.Resolved

	keys   keyMap
	help   help.Model
	main   viewport.Model
	detail viewport.Model

	width, height int
	sections      []scrollspy.Section
	roles         []span
	cursor        int
	err           error
}

// New builds the model. The system color scheme is read from the renderer
// before any preference is applied.
func New(opts Options) (Model, error) {
	if opts.Content == nil || opts.Themes == nil {
		return Model{}, errors.New("tui: content and theme store are required")
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	r := opts.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	session := opts.Session
	if session == "" {
		session = DefaultSession
	}

	mouse := &mouseTracker{}
	panel, err := sheet.New(opts.Panel, sheet.WithListener(mouse), sheet.WithCloseFunc(mouse.closed))
	if err != nil {
		return Model{}, err
	}

	m := Model{
		ctx:        ctx,
		content:    opts.Content,
		themes:     theme.NewController(opts.Themes),
		session:    session,
		panel:      panel,
		mouse:      mouse,
		renderer:   r,
		systemDark: r.HasDarkBackground(),
		keys:       newKeyMap(),
		help:       help.New(),
		main:       viewport.New(0, 0),
		detail:     viewport.New(0, 0),
	}
	m.applyPreference(theme.System)
	return m, nil
}

// Run starts the program and blocks until the user quits or ctx ends.
func Run(ctx context.Context, opts Options) error {
	opts.Context = ctx
	m, err := New(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	themes, ctx, session := m.themes, m.ctx, m.session
	return func() tea.Msg {
		p, err := themes.Preference(ctx, session)
		return themeLoadedMsg{pref: p, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.relayout()
		return m, nil

	case themeLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.applyPreference(msg.pref)
		return m, nil

	case themeSavedMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		if m.panel.IsOpen() {
			m.panel.Close()
			m.relayout()
		}
		return m, m.mouse.take()

	case key.Matches(msg, m.keys.Quit):
		if msg.String() == "q" && m.panel.IsOpen() {
			m.panel.Close()
			m.relayout()
			return m, m.mouse.take()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Open):
		if len(m.roles) > 0 {
			m.openRole(m.roles[m.cursor].id)
		}
		return m, m.mouse.take()

	case key.Matches(msg, m.keys.NextRole):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevRole):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keys.NextSection):
		m.jumpTo(m.sectionIndex(m.activeSection()) + 1)
		return m, nil

	case key.Matches(msg, m.keys.PrevSection):
		m.jumpTo(m.sectionIndex(m.activeSection()) - 1)
		return m, nil

	case key.Matches(msg, m.keys.Jump):
		m.jumpTo(int(msg.String()[0] - '1'))
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		next := theme.Toggle(m.resolved)
		m.applyPreference(next)
		return m, m.saveTheme(next)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.relayout()
		return m, nil
	}

	var cmd tea.Cmd
	if m.panel.IsOpen() {
		m.detail, cmd = m.detail.Update(msg)
	} else {
		m.main, cmd = m.main.Update(msg)
	}
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scroll(msg.X, -wheelStep)
		case tea.MouseButtonWheelDown:
			m.scroll(msg.X, wheelStep)
		case tea.MouseButtonLeft:
			m.press(msg.X, msg.Y)
		}

	case tea.MouseActionMotion:
		if m.panel.Dragging() {
			m.panel.Drag(float64(msg.X), float64(m.width))
			m.relayout()
		}

	case tea.MouseActionRelease:
		if m.panel.Dragging() {
			m.panel.EndDrag()
			m.relayout()
		}
	}
	return m, m.mouse.take()
}

func (m *Model) press(x, y int) {
	if !m.inBody(y) {
		return
	}
	if m.panel.IsOpen() && m.resizable() && abs(x-m.mainWidth()) <= handleSlop {
		if m.panel.BeginDrag(float64(x)) {
			m.relayout()
		}
		return
	}
	if m.panel.IsOpen() && x >= m.mainWidth() {
		return
	}

	line := m.main.YOffset + y - headerHeight
	for i, r := range m.roles {
		if line >= r.start && line < r.end {
			m.cursor = i
			m.openRole(r.id)
			return
		}
	}
	// Clicking the page behind the panel dismisses it.
	if m.panel.IsOpen() {
		m.panel.Close()
		m.relayout()
	}
}

func (m *Model) scroll(x, delta int) {
	vp := &m.main
	if m.panel.IsOpen() && x >= m.mainWidth() {
		vp = &m.detail
	}
	if delta < 0 {
		vp.LineUp(-delta)
	} else {
		vp.LineDown(delta)
	}
}

func (m *Model) openRole(id string) {
	m.mouse.dismissed = false
	m.panel.Open(id)
	for i, r := range m.roles {
		if r.id == id {
			m.cursor = i
		}
	}
	m.relayout()
	m.detail.GotoTop()
}

func (m *Model) moveCursor(delta int) {
	if len(m.roles) == 0 {
		return
	}
	m.cursor = max(0, min(len(m.roles)-1, m.cursor+delta))
	m.relayout()
	r := m.roles[m.cursor]
	switch {
	case r.start < m.main.YOffset:
		m.main.SetYOffset(r.start)
	case r.end > m.main.YOffset+m.main.Height:
		m.main.SetYOffset(r.end - m.main.Height)
	}
}

func (m *Model) jumpTo(i int) {
	if i < 0 || i >= len(m.sections) {
		return
	}
	m.main.SetYOffset(int(m.sections[i].Top))
}

func (m Model) sectionIndex(id string) int {
	for i, s := range m.sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// activeSection is the section the navbar highlights.
func (m Model) activeSection() string {
	return scrollspy.Active(m.sections, scrollspy.View{
		ScrollY:        float64(m.main.YOffset),
		ViewportHeight: float64(m.main.Height),
		DocumentHeight: float64(m.main.TotalLineCount()),
	}, spyOptions)
}

func (m *Model) applyPreference(p theme.Preference) {
	scheme := theme.ResolvedLight
	if m.systemDark {
		scheme = theme.ResolvedDark
	}
	m.pref = p
	m.resolved = theme.Resolve(p, scheme)
	m.renderer.SetHasDarkBackground(m.resolved == theme.ResolvedDark)
	m.styles = newStyles(m.renderer)
	m.relayout()
}

func (m Model) saveTheme(p theme.Preference) tea.Cmd {
	themes, ctx, session := m.themes, m.ctx, m.session
	return func() tea.Msg {
		return themeSavedMsg{err: themes.SetPreference(ctx, session, p)}
	}
}

func (m Model) resizable() bool { return m.width >= minResizableWidth }

// panelWidth is the panel's width in cells, 0 when closed.
func (m Model) panelWidth() int {
	if !m.panel.IsOpen() {
		return 0
	}
	if !m.resizable() {
		return m.width
	}
	w := int(math.Round(m.panel.AbsoluteWidth(float64(m.width))))
	return max(panelChrome+1, min(w, m.width-1))
}

func (m Model) mainWidth() int { return m.width - m.panelWidth() }

func (m Model) bodyHeight() int {
	return max(m.height-headerHeight-lipgloss.Height(m.footerView()), 1)
}

func (m Model) inBody(y int) bool {
	return y >= headerHeight && y < headerHeight+m.bodyHeight()
}

// relayout re-renders the page and the panel for the current size, theme
// and panel width, keeping the scroll position.
func (m *Model) relayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	bodyH := m.bodyHeight()

	docWidth := m.width
	if m.resizable() {
		docWidth = m.mainWidth()
	}
	doc, sections, roles := m.renderDocument(docWidth)
	offset := m.main.YOffset
	m.main.Width, m.main.Height = docWidth, bodyH
	m.main.SetContent(doc)
	m.main.SetYOffset(offset)
	m.sections, m.roles = sections, roles
	if m.cursor >= len(roles) {
		m.cursor = max(len(roles)-1, 0)
	}

	if id, ok := m.panel.Selected(); ok {
		offset := m.detail.YOffset
		m.detail.Width = max(m.panelWidth()-panelChrome, 1)
		m.detail.Height = bodyH
		m.detail.SetContent(m.renderDetail(id, m.detail.Width))
		m.detail.SetYOffset(offset)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
