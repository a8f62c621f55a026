package fly

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeElement struct {
	id      string
	content string
}

func (e *fakeElement) ID() string     { return e.id }
func (e *fakeElement) Render() string { return e.content }

type fakeControl struct {
	anchor     *Anchor
	placement  Placement
	alignment  Alignment
	showCalls  int
	hideCalls  int
	shownAt    *Anchor
	showErr    error
	setAnchors int
	listeners  map[string][]func()
}

func newFakeControl() *fakeControl {
	return &fakeControl{listeners: make(map[string][]func())}
}

func (c *fakeControl) Show(anchor *Anchor) error {
	if c.showErr != nil {
		return c.showErr
	}
	c.showCalls++
	c.shownAt = anchor
	for _, fn := range c.listeners["aftershow"] {
		fn()
	}
	return nil
}

func (c *fakeControl) Hide() {
	c.hideCalls++
	for _, fn := range c.listeners["afterhide"] {
		fn()
	}
}

func (c *fakeControl) SetAnchor(a *Anchor) {
	c.anchor = a
	c.setAnchors++
}

func (c *fakeControl) SetPlacement(p Placement) { c.placement = p }
func (c *fakeControl) SetAlignment(a Alignment) { c.alignment = a }

func (c *fakeControl) On(event string, fn func()) {
	c.listeners[event] = append(c.listeners[event], fn)
}

type fakePresenter struct {
	element    *fakeElement
	control    *fakeControl
	presentErr error
	lastOpts   Options
}

func (p *fakePresenter) Present(opts Options) (Element, Control, error) {
	if p.presentErr != nil {
		return nil, nil, p.presentErr
	}
	p.lastOpts = opts
	return p.element, p.control, nil
}

type orderedPlugin struct {
	name  string
	log   *[]string
	roots *[]Element
	err   error
}

func (p *orderedPlugin) Process(root Element) error {
	if p.err != nil {
		return p.err
	}
	*p.log = append(*p.log, p.name)
	*p.roots = append(*p.roots, root)
	return nil
}

func newFakeKind() (*fakePresenter, Constructor) {
	p := &fakePresenter{
		element: &fakeElement{id: "root-1", content: "hello"},
		control: newFakeControl(),
	}
	return p, NewKind(p)
}

func TestConstructor_OptionsValue(t *testing.T) {
	p, construct := newFakeKind()

	c, err := construct(Options{Title: "t"})
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "t", p.lastOpts.Title)
}

func TestConstructor_OptionsFunc(t *testing.T) {
	p, construct := newFakeKind()

	fn := OptionsFunc(func(extra ...any) Options {
		require.Equal(t, []any{"a", 7}, extra)
		return Options{Title: "computed"}
	})

	_, err := construct(fn, "a", 7)
	require.NoError(t, err)
	assert.Equal(t, "computed", p.lastOpts.Title)
}

func TestConstructor_NilOptions(t *testing.T) {
	_, construct := newFakeKind()

	c, err := construct(nil)
	require.NoError(t, err)
	assert.Nil(t, c.Anchor())
}

func TestConstructor_BadOptions(t *testing.T) {
	_, construct := newFakeKind()

	_, err := construct(42)
	assert.ErrorIs(t, err, ErrBadOptions)
}

func TestConstructor_PresenterError(t *testing.T) {
	boom := errors.New("boom")
	p := &fakePresenter{presentErr: boom}
	construct := NewKind(p)

	_, err := construct(Options{})
	assert.ErrorIs(t, err, boom)
}

func TestComponent_ProcessPropagatesAnchor(t *testing.T) {
	p, construct := newFakeKind()
	a := &Anchor{X: 3, Y: 5}

	c, err := construct(Options{Anchor: a})
	require.NoError(t, err)

	// Nothing reaches the control before Process.
	assert.Nil(t, p.control.anchor)

	root, err := c.Process()
	require.NoError(t, err)
	assert.Same(t, p.element, root)
	assert.Equal(t, a, p.control.anchor)
}

func TestComponent_ProcessPropagatesPlacementAndAlignment(t *testing.T) {
	p, construct := newFakeKind()

	c, err := construct(Options{Placement: PlacementTop, Alignment: AlignCenter})
	require.NoError(t, err)

	_, err = c.Process()
	require.NoError(t, err)
	assert.Equal(t, PlacementTop, p.control.placement)
	assert.Equal(t, AlignCenter, p.control.alignment)
}

func TestComponent_ProcessRunsPluginsInOrder(t *testing.T) {
	p, construct := newFakeKind()

	var log []string
	var roots []Element
	p1 := &orderedPlugin{name: "p1", log: &log, roots: &roots}
	p2 := &orderedPlugin{name: "p2", log: &log, roots: &roots}

	c, err := construct(Options{Plugins: []Plugin{p1, p2}})
	require.NoError(t, err)

	_, err = c.Process()
	require.NoError(t, err)

	assert.Equal(t, []string{"p1", "p2"}, log)
	require.Len(t, roots, 2)
	assert.Same(t, p.element, roots[0])
	assert.Same(t, p.element, roots[1])

	// Idempotent: plugins do not run again.
	_, err = c.Process()
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, log)
}

func TestComponent_PluginError(t *testing.T) {
	_, construct := newFakeKind()

	boom := errors.New("plugin failed")
	var log []string
	var roots []Element
	good := &orderedPlugin{name: "good", log: &log, roots: &roots}
	bad := &orderedPlugin{err: boom}

	c, err := construct(Options{Plugins: []Plugin{good, bad}})
	require.NoError(t, err)

	_, err = c.Process()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"good"}, log)
}

func TestComponent_Render(t *testing.T) {
	p, construct := newFakeKind()

	c, err := construct(Options{})
	require.NoError(t, err)
	// Render is synchronous and valid before Process.
	assert.Same(t, p.element, c.Render())
}

func TestComponent_ShowRequiresProcess(t *testing.T) {
	p, construct := newFakeKind()

	c, err := construct(Options{Anchor: &Anchor{X: 1, Y: 1}})
	require.NoError(t, err)

	assert.ErrorIs(t, c.Show(), ErrNotProcessed)
	assert.ErrorIs(t, c.Hide(), ErrNotProcessed)
	assert.Equal(t, 0, p.control.showCalls)
}

func TestComponent_ShowWithoutAnchorFails(t *testing.T) {
	p, construct := newFakeKind()

	c, err := construct(Options{})
	require.NoError(t, err)
	_, err = c.Process()
	require.NoError(t, err)

	assert.ErrorIs(t, c.Show(), ErrNoAnchor)
	assert.Equal(t, 0, p.control.showCalls)
}

func TestComponent_ShowWithConstructorAnchor(t *testing.T) {
	p, construct := newFakeKind()
	a := &Anchor{X: 2, Y: 4}

	c, err := construct(Options{Anchor: a})
	require.NoError(t, err)
	_, err = c.Process()
	require.NoError(t, err)

	require.NoError(t, c.Show())
	assert.Equal(t, 1, p.control.showCalls)
	assert.Equal(t, a, p.control.shownAt)
}

func TestComponent_ShowWithAnchorArgument(t *testing.T) {
	p, construct := newFakeKind()

	c, err := construct(Options{})
	require.NoError(t, err)
	_, err = c.Process()
	require.NoError(t, err)

	arg := &Anchor{X: 9, Y: 9}
	require.NoError(t, c.Show(arg))
	assert.Equal(t, arg, p.control.shownAt)
	// The argument also establishes the anchor for later calls.
	assert.Equal(t, arg, c.Anchor())
	require.NoError(t, c.Show())
}

func TestComponent_SetAnchorAfterProcess(t *testing.T) {
	p, construct := newFakeKind()

	c, err := construct(Options{})
	require.NoError(t, err)
	_, err = c.Process()
	require.NoError(t, err)

	a := &Anchor{X: 1, Y: 2}
	c.SetAnchor(a)
	// Propagates immediately once processed.
	assert.Equal(t, a, p.control.anchor)
	require.NoError(t, c.Show())
}

func TestComponent_SetAnchorBeforeProcess(t *testing.T) {
	p, construct := newFakeKind()

	c, err := construct(Options{})
	require.NoError(t, err)

	a := &Anchor{X: 1, Y: 2}
	c.SetAnchor(a)
	assert.Nil(t, p.control.anchor)

	_, err = c.Process()
	require.NoError(t, err)
	assert.Equal(t, a, p.control.anchor)
}

func TestComponent_Hide(t *testing.T) {
	p, construct := newFakeKind()

	c, err := construct(Options{Anchor: &Anchor{}})
	require.NoError(t, err)
	_, err = c.Process()
	require.NoError(t, err)

	require.NoError(t, c.Show())
	require.NoError(t, c.Hide())
	assert.Equal(t, 1, p.control.hideCalls)
}

func TestComponent_AfterShowAfterHideListeners(t *testing.T) {
	_, construct := newFakeKind()

	c, err := construct(Options{Anchor: &Anchor{}})
	require.NoError(t, err)

	var events []string
	c.OnAfterShow(func() { events = append(events, "shown") })
	c.OnAfterHide(func() { events = append(events, "hidden") })

	_, err = c.Process()
	require.NoError(t, err)

	require.NoError(t, c.Show())
	require.NoError(t, c.Hide())
	assert.Equal(t, []string{"shown", "hidden"}, events)
}

func TestComponent_ShowErrorPropagates(t *testing.T) {
	p, construct := newFakeKind()
	boom := errors.New("native show failed")
	p.control.showErr = boom

	c, err := construct(Options{Anchor: &Anchor{}})
	require.NoError(t, err)
	_, err = c.Process()
	require.NoError(t, err)

	assert.ErrorIs(t, c.Show(), boom)
}

func TestPlacement_String(t *testing.T) {
	assert.Equal(t, "auto", PlacementAuto.String())
	assert.Equal(t, "top", PlacementTop.String())
	assert.Equal(t, "bottom", PlacementBottom.String())
	assert.Equal(t, "left", PlacementLeft.String())
	assert.Equal(t, "right", PlacementRight.String())
}
