package fly

import (
	"fmt"
	"sync"
)

// Constructor builds a component of some kind. opts is either an
// Options value or an OptionsFunc; extra is passed through to an
// OptionsFunc.
type Constructor func(opts any, extra ...any) (*Component, error)

// NewKind produces a constructor for a component kind backed by the
// given presenter. Flyout is the one kind shipped; other kinds supply
// their own presenter.
func NewKind(p Presenter) Constructor {
	return func(opts any, extra ...any) (*Component, error) {
		resolved, err := resolveOptions(opts, extra)
		if err != nil {
			return nil, err
		}

		root, control, err := p.Present(resolved)
		if err != nil {
			return nil, fmt.Errorf("presenting component: %w", err)
		}

		return &Component{
			opts:    resolved,
			root:    root,
			control: control,
			anchor:  resolved.Anchor,
		}, nil
	}
}

// Component is one presenter/root-element/control triple. Instances
// are independent; nothing is shared between components.
type Component struct {
	opts    Options
	root    Element
	control Control

	anchor    *Anchor
	processed bool
	mu        sync.Mutex

	afterShow []func()
	afterHide []func()
}

// Anchor returns the current anchor, which may be nil.
func (c *Component) Anchor() *Anchor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.anchor
}

// SetAnchor updates the anchor. Valid before or after Process; once
// processed the change propagates to the control immediately.
func (c *Component) SetAnchor(a *Anchor) {
	c.mu.Lock()
	c.anchor = a
	processed := c.processed
	c.mu.Unlock()

	if processed {
		c.control.SetAnchor(a)
	}
}

// Render returns the root element.
func (c *Component) Render() Element {
	return c.root
}

// Control returns the native control handle, for hosts that need to
// integrate it with their own drawing (e.g. overlay compositing).
func (c *Component) Control() Control {
	return c.control
}

// Process finishes construction: propagates anchor, placement and
// alignment to the control, runs the plugin pipeline over the root in
// order, and registers the control's aftershow/afterhide listeners.
// Process is idempotent; later calls return the root immediately.
func (c *Component) Process() (Element, error) {
	c.mu.Lock()
	if c.processed {
		c.mu.Unlock()
		return c.root, nil
	}
	anchor := c.anchor
	c.mu.Unlock()

	if anchor != nil {
		c.control.SetAnchor(anchor)
	}
	if c.opts.Placement != PlacementAuto {
		c.control.SetPlacement(c.opts.Placement)
	}
	if c.opts.Alignment != AlignStart {
		c.control.SetAlignment(c.opts.Alignment)
	}

	for i, p := range c.opts.Plugins {
		if err := p.Process(c.root); err != nil {
			return nil, fmt.Errorf("plugin %d: %w", i, err)
		}
	}

	c.control.On("aftershow", c.fireAfterShow)
	c.control.On("afterhide", c.fireAfterHide)

	c.mu.Lock()
	c.processed = true
	c.mu.Unlock()
	return c.root, nil
}

// Show makes the component visible. An anchor argument wins over one
// set earlier; with no anchor from any source the call fails with
// ErrNoAnchor and the control is not touched. Show assumes Process has
// completed.
func (c *Component) Show(anchor ...*Anchor) error {
	c.mu.Lock()
	if !c.processed {
		c.mu.Unlock()
		return ErrNotProcessed
	}
	target := c.anchor
	if len(anchor) > 0 && anchor[0] != nil {
		target = anchor[0]
		c.anchor = target
	}
	c.mu.Unlock()

	if target == nil {
		return ErrNoAnchor
	}
	return c.control.Show(target)
}

// Hide makes the component invisible.
func (c *Component) Hide() error {
	c.mu.Lock()
	processed := c.processed
	c.mu.Unlock()
	if !processed {
		return ErrNotProcessed
	}
	c.control.Hide()
	return nil
}

// OnAfterShow registers fn to run after the control becomes visible.
func (c *Component) OnAfterShow(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.afterShow = append(c.afterShow, fn)
}

// OnAfterHide registers fn to run after the control becomes hidden.
func (c *Component) OnAfterHide(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.afterHide = append(c.afterHide, fn)
}

func (c *Component) fireAfterShow() {
	c.mu.Lock()
	fns := append([]func(){}, c.afterShow...)
	c.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (c *Component) fireAfterHide() {
	c.mu.Lock()
	fns := append([]func(){}, c.afterHide...)
	c.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
