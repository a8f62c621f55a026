package fly

// Visibility is the host toolkit's visibility primitive.
type Visibility interface {
	SetVisible(el Element, visible bool) error
}

// Showable attaches show/hide behavior to any type that embeds it,
// delegating to a Visibility capability for a fixed element. It is
// pure delegation and holds no state of its own.
type Showable struct {
	vis Visibility
	el  Element
}

// NewShowable binds vis and the presenter's element.
func NewShowable(vis Visibility, el Element) Showable {
	return Showable{vis: vis, el: el}
}

// Show makes the element visible.
func (s Showable) Show() error {
	return s.vis.SetVisible(s.el, true)
}

// Hide makes the element invisible.
func (s Showable) Hide() error {
	return s.vis.SetVisible(s.el, false)
}
