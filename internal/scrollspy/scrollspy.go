// Package scrollspy decides which page section the navbar highlights.
package scrollspy

// Section is a page anchor and the offset of its top edge.
type Section struct {
	ID  string
	Top float64
}

// View describes the scroll state of the document.
type View struct {
	ScrollY        float64
	ViewportHeight float64
	DocumentHeight float64
}

// Options tune the active-section rule.
type Options struct {
	// Lookahead is added to the scroll position so a section becomes active
	// slightly before its top reaches the viewport edge.
	Lookahead float64
	// BottomSlack is how close to the end of the document counts as the
	// bottom, where the last section always wins.
	BottomSlack float64
}

// DefaultOptions matches the fixed navbar of the web page.
var DefaultOptions = Options{Lookahead: 100, BottomSlack: 50}

// ScrolledThreshold is the scroll offset past which the header turns opaque.
const ScrolledThreshold = 20

// DesktopMinWidth is the narrowest viewport that gets the resizable side
// panel instead of the bottom drawer.
const DesktopMinWidth = 1024

// Active returns the ID of the active section: the last section whose top
// is at or above the scroll position plus lookahead. At the bottom of the
// document the last section is active regardless of offsets. Sections must
// be in document order. An empty list yields "".
func Active(sections []Section, v View, opts Options) string {
	if len(sections) == 0 {
		return ""
	}
	if v.DocumentHeight > 0 && v.ViewportHeight+v.ScrollY >= v.DocumentHeight-opts.BottomSlack {
		return sections[len(sections)-1].ID
	}
	pos := v.ScrollY + opts.Lookahead
	active := sections[0].ID
	for _, s := range sections {
		if s.Top > pos {
			break
		}
		active = s.ID
	}
	return active
}

// Scrolled reports whether the header should switch to its scrolled style.
func Scrolled(scrollY float64) bool {
	return scrollY > ScrolledThreshold
}

// IsDesktop reports whether the viewport is wide enough for the side panel.
func IsDesktop(viewportWidth float64) bool {
	return viewportWidth >= DesktopMinWidth
}
