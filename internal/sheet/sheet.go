// Package sheet implements the resizable side panel that shows the detail of
// a selected experience entry.
//
// The panel is anchored to the right edge of the viewport. Dragging its left
// edge to the left widens it. Width is tracked as a percentage of the
// viewport and settles on one of the configured snap points when the drag
// ends. Dragging it narrower than the close threshold dismisses it.
//
// A Panel is not safe for concurrent use; it is driven synchronously by the
// input events of a single UI.
package sheet

import (
	"fmt"
	"math"
)

// State is the lifecycle state of a Panel.
type State int

const (
	Closed State = iota
	OpenIdle
	OpenDragging
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case OpenIdle:
		return "open"
	case OpenDragging:
		return "dragging"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Listener receives the global pointer move/up subscription of a drag
// session. Attach is called when a drag starts and Detach exactly once when
// it ends, whatever the exit path.
type Listener interface {
	Attach()
	Detach()
}

// CloseReason tells a close observer why the panel closed itself.
type CloseReason int

const (
	// CloseThreshold means the panel was dragged narrower than the close threshold.
	CloseThreshold CloseReason = iota + 1
)

// Option configures a Panel.
type Option func(*Panel)

// WithListener sets the listener bound for the duration of each drag.
func WithListener(l Listener) Option {
	return func(p *Panel) { p.listener = l }
}

// WithCloseFunc registers fn to be called when the panel dismisses itself.
// Closes requested through Close or Open("") do not invoke it.
func WithCloseFunc(fn func(CloseReason)) Option {
	return func(p *Panel) { p.onClose = fn }
}

type dragSession struct {
	startX     float64
	startWidth float64
}

// Panel is the drag-to-resize state machine.
type Panel struct {
	cfg      Config
	minWidth float64
	maxWidth float64

	state    State
	selected string
	width    float64
	drag     *dragSession

	listener Listener
	onClose  func(CloseReason)
}

// New returns a closed Panel.
func New(cfg Config, opts ...Option) (*Panel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.normalized()
	p := &Panel{
		cfg:      cfg,
		minWidth: cfg.MinWidth(),
		maxWidth: cfg.MaxWidth(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Config returns the normalized configuration.
func (p *Panel) Config() Config { return p.cfg }

// State returns the current state.
func (p *Panel) State() State { return p.state }

// IsOpen reports whether the panel is visible.
func (p *Panel) IsOpen() bool { return p.state != Closed }

// Dragging reports whether a drag session is active.
func (p *Panel) Dragging() bool { return p.state == OpenDragging }

// Animated reports whether width changes should go through the eased
// transition. It is false while dragging so the panel follows the pointer.
func (p *Panel) Animated() bool { return p.state == OpenIdle }

// Selected returns the ID of the entry shown in the panel.
func (p *Panel) Selected() (string, bool) {
	return p.selected, p.state != Closed
}

// Width returns the current width in percent, or 0 when closed.
func (p *Panel) Width() float64 {
	if p.state == Closed {
		return 0
	}
	return p.width
}

// AbsoluteWidth converts the current width to the unit of viewportWidth.
func (p *Panel) AbsoluteWidth(viewportWidth float64) float64 {
	if viewportWidth <= 0 {
		return 0
	}
	return p.Width() / 100 * viewportWidth
}

// Open shows the panel for the entry with the given ID. Selecting another
// entry while open resets the width to the default; an empty ID closes it.
func (p *Panel) Open(id string) {
	if id == "" {
		p.Close()
		return
	}
	p.endSession()
	p.selected = id
	p.width = p.cfg.DefaultWidthPercent
	p.state = OpenIdle
}

// Close dismisses the panel, dropping any drag session.
func (p *Panel) Close() {
	p.endSession()
	p.reset()
}

// BeginDrag starts a drag session at pointer position x. It reports whether
// a session was started; it is ignored unless the panel is idle and open.
func (p *Panel) BeginDrag(x float64) bool {
	if p.state != OpenIdle {
		return false
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return false
	}
	p.drag = &dragSession{startX: x, startWidth: p.width}
	p.state = OpenDragging
	if p.listener != nil {
		p.listener.Attach()
	}
	return true
}

// Drag moves the pointer to x on a viewport viewportWidth units wide. The
// returned state is Closed when the drag pushed the panel under the close
// threshold.
func (p *Panel) Drag(x, viewportWidth float64) State {
	if p.state != OpenDragging {
		return p.state
	}
	candidate := candidateWidth(p.drag.startWidth, p.drag.startX, x, viewportWidth)

	if viewportWidth > 0 && candidate/100*viewportWidth < p.cfg.CloseThreshold {
		p.endSession()
		p.reset()
		if p.onClose != nil {
			p.onClose(CloseThreshold)
		}
		return Closed
	}

	p.width = Clamp(candidate, p.minWidth, p.maxWidth)
	return p.state
}

// EndDrag finishes the drag session and snaps the width to the nearest
// snap point.
func (p *Panel) EndDrag() {
	if p.state != OpenDragging {
		return
	}
	p.endSession()
	p.width = NearestSnap(p.cfg.SnapPoints, p.width)
	p.state = OpenIdle
}

func (p *Panel) endSession() {
	if p.drag == nil {
		return
	}
	p.drag = nil
	if p.state == OpenDragging {
		p.state = OpenIdle
	}
	if p.listener != nil {
		p.listener.Detach()
	}
}

func (p *Panel) reset() {
	p.state = Closed
	p.selected = ""
	p.width = 0
}

// candidateWidth computes the unclamped width for a pointer at x. A zero
// viewport or a non-finite result leaves the width at its baseline.
func candidateWidth(startWidth, startX, x, viewportWidth float64) float64 {
	if viewportWidth <= 0 || math.IsInf(viewportWidth, 0) || math.IsNaN(viewportWidth) {
		return startWidth
	}
	w := startWidth + (startX-x)/viewportWidth*100
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return startWidth
	}
	return w
}
