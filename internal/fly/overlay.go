package fly

import (
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
)

// OverlayControl is the terminal host's native control: it tracks
// visibility and anchoring for one element and composites that
// element's rendering over a base view.
type OverlayControl struct {
	element   Element
	visible   bool
	anchor    *Anchor
	placement Placement
	alignment Alignment
	listeners map[string][]func()
	mu        sync.Mutex
}

// NewOverlayControl creates a hidden control for el.
func NewOverlayControl(el Element) *OverlayControl {
	return &OverlayControl{
		element:   el,
		listeners: make(map[string][]func()),
	}
}

// Show makes the control visible at anchor and fires "aftershow".
func (o *OverlayControl) Show(anchor *Anchor) error {
	o.mu.Lock()
	if anchor != nil {
		o.anchor = anchor
	}
	o.visible = true
	fns := append([]func(){}, o.listeners["aftershow"]...)
	o.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return nil
}

// Hide makes the control invisible and fires "afterhide".
func (o *OverlayControl) Hide() {
	o.mu.Lock()
	o.visible = false
	fns := append([]func(){}, o.listeners["afterhide"]...)
	o.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Visible reports whether the control is currently shown.
func (o *OverlayControl) Visible() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.visible
}

// SetAnchor updates the anchor cell.
func (o *OverlayControl) SetAnchor(a *Anchor) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.anchor = a
}

// Anchor returns the current anchor, which may be nil.
func (o *OverlayControl) Anchor() *Anchor {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.anchor
}

// SetPlacement updates which side of the anchor the overlay opens
// toward.
func (o *OverlayControl) SetPlacement(p Placement) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.placement = p
}

// Placement returns the current placement.
func (o *OverlayControl) Placement() Placement {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.placement
}

// SetAlignment updates the alignment along the placement edge.
func (o *OverlayControl) SetAlignment(a Alignment) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.alignment = a
}

// Alignment returns the current alignment.
func (o *OverlayControl) Alignment() Alignment {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.alignment
}

// On registers fn for a control event.
func (o *OverlayControl) On(event string, fn func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.listeners[event] = append(o.listeners[event], fn)
}

// CompositeOnto paints the element over base when visible. base is a
// line-based grid of the given dimensions; the overlay's top-left
// corner derives from the anchor, placement and alignment, clamped so
// the overlay stays inside the grid. A hidden control returns base
// unchanged.
func (o *OverlayControl) CompositeOnto(base string, width, height int) string {
	o.mu.Lock()
	visible := o.visible
	anchor := o.anchor
	placement := o.placement
	alignment := o.alignment
	o.mu.Unlock()

	if !visible || anchor == nil {
		return base
	}

	overlay := o.element.Render()
	overlayLines := splitLines(overlay)
	ow := maxLineWidth(overlayLines)
	oh := len(overlayLines)

	x, y := overlayOrigin(anchor, placement, alignment, ow, oh)

	// Clamp into the grid.
	if x+ow > width {
		x = width - ow
	}
	if x < 0 {
		x = 0
	}
	if y+oh > height {
		y = height - oh
	}
	if y < 0 {
		y = 0
	}

	return overlayAt(base, overlay, x, y, width, height)
}

// overlayOrigin computes the overlay's top-left corner relative to the
// anchor cell. PlacementAuto behaves as bottom.
func overlayOrigin(anchor *Anchor, placement Placement, alignment Alignment, ow, oh int) (int, int) {
	x, y := anchor.X, anchor.Y

	switch placement {
	case PlacementTop:
		y -= oh
	case PlacementLeft:
		x -= ow
	case PlacementRight:
		x++
	default: // auto, bottom
		y++
	}

	horizontal := placement == PlacementTop || placement == PlacementBottom || placement == PlacementAuto
	switch alignment {
	case AlignCenter:
		if horizontal {
			x -= ow / 2
		} else {
			y -= oh / 2
		}
	case AlignEnd:
		if horizontal {
			x -= ow - 1
		} else {
			y -= oh - 1
		}
	}
	return x, y
}

// overlayAt composites overlay on top of base at character position
// (x, y), treating both as line-based grids.
func overlayAt(base, overlay string, x, y, width, height int) string {
	baseLines := splitLines(base)
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}
	overlayLines := splitLines(overlay)
	ow := maxLineWidth(overlayLines)

	for i, line := range overlayLines {
		row := y + i
		if row < 0 || row >= len(baseLines) || row >= height {
			continue
		}
		target := padRight(baseLines[row], width)
		left := ansi.Truncate(target, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}

		overlayLine := padRight(line, ow)
		pos := x + ansi.StringWidth(overlayLine)
		right := ""
		if width > 0 {
			right = ansi.TruncateLeft(target, pos, "")
			gap := width - pos - ansi.StringWidth(right)
			if gap > 0 {
				right = strings.Repeat(" ", gap) + right
			}
		}

		baseLines[row] = left + overlayLine + right
	}
	return strings.Join(baseLines, "\n")
}

// splitLines splits on newlines, returning at least one element.
func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

// maxLineWidth returns the visual width of the widest line.
func maxLineWidth(lines []string) int {
	m := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > m {
			m = w
		}
	}
	return m
}

// padRight pads s with spaces so its visual width equals width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
