// Package fly builds transient anchored overlay components ("flyouts")
// by wiring a presenter-produced root element to a native control
// handle. The host toolkit's widgets are abstracted behind capability
// interfaces so component logic stays host-agnostic.
package fly

import "errors"

var (
	// ErrNoAnchor is returned by Show when no anchor was established
	// via constructor option, setter, or argument.
	ErrNoAnchor = errors.New("fly: no anchor established")

	// ErrNotProcessed is returned by Show and Hide before Process has
	// completed. Ordering is caller-enforced; there is no internal
	// wait.
	ErrNotProcessed = errors.New("fly: component not processed")

	// ErrBadOptions is returned by a constructor when the options
	// argument is neither an Options value nor an options function.
	ErrBadOptions = errors.New("fly: options must be Options or OptionsFunc")
)

// Anchor is the position a flyout attaches to. For the terminal host
// this is a cell coordinate; the factory treats it as opaque.
type Anchor struct {
	X int
	Y int
}

// Placement directs which side of the anchor the flyout opens toward.
type Placement int

const (
	PlacementAuto Placement = iota
	PlacementTop
	PlacementBottom
	PlacementLeft
	PlacementRight
)

// String makes Placement satisfy the fmt.Stringer interface.
func (p Placement) String() string {
	switch p {
	case PlacementTop:
		return "top"
	case PlacementBottom:
		return "bottom"
	case PlacementLeft:
		return "left"
	case PlacementRight:
		return "right"
	default:
		return "auto"
	}
}

// Alignment positions the flyout along the placement edge.
type Alignment int

const (
	AlignStart Alignment = iota
	AlignCenter
	AlignEnd
)

// Element is a renderable root produced by a presenter.
type Element interface {
	// Render returns the element's current visual representation.
	Render() string

	// ID identifies the element for the lifetime of its component.
	ID() string
}

// Control is the native widget handle attached to a root element.
type Control interface {
	// Show makes the control visible at the given anchor.
	Show(anchor *Anchor) error

	// Hide makes the control invisible.
	Hide()

	// SetAnchor, SetPlacement and SetAlignment adjust where the
	// control opens. Safe to call whether or not it is visible.
	SetAnchor(a *Anchor)
	SetPlacement(p Placement)
	SetAlignment(a Alignment)

	// On registers fn for a control event. The events every control
	// must support are "aftershow" and "afterhide".
	On(event string, fn func())
}

// Presenter renders a component's markup, yielding the root element
// and the native control attached to it. Present is synchronous.
type Presenter interface {
	Present(opts Options) (Element, Control, error)
}

// Plugin post-processes a root element once during construction.
type Plugin interface {
	Process(root Element) error
}

// Options configures one component instance.
type Options struct {
	Anchor    *Anchor
	Placement Placement
	Alignment Alignment
	Plugins   []Plugin

	// Presenter inputs.
	Title   string
	Content string
	Width   int
}

// OptionsFunc computes Options from the extra constructor arguments,
// for callers that bind options at construction time.
type OptionsFunc func(extra ...any) Options

// resolveOptions accepts an Options value, an OptionsFunc, or nil.
func resolveOptions(opts any, extra []any) (Options, error) {
	switch o := opts.(type) {
	case nil:
		return Options{}, nil
	case Options:
		return o, nil
	case OptionsFunc:
		return o(extra...), nil
	case func(extra ...any) Options:
		return o(extra...), nil
	default:
		return Options{}, ErrBadOptions
	}
}
