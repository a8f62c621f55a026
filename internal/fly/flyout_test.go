package fly

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFlyout_BacksOntoOverlayControl(t *testing.T) {
	c, err := NewFlyout(Options{Title: "Info", Content: "body", Anchor: &Anchor{X: 1, Y: 1}})
	require.NoError(t, err)

	_, err = c.Process()
	require.NoError(t, err)

	require.NoError(t, c.Show())
	ctl, ok := c.control.(*OverlayControl)
	require.True(t, ok)
	assert.True(t, ctl.Visible())
	assert.Equal(t, &Anchor{X: 1, Y: 1}, ctl.Anchor())

	require.NoError(t, c.Hide())
	assert.False(t, ctl.Visible())
}

func TestFlyoutElement_RenderFramesContent(t *testing.T) {
	el := &flyoutElement{id: "f", title: "Title", content: "line one\nline two"}
	out := el.Render()

	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "line one")
	assert.Contains(t, out, "line two")
	// Rounded border from the flyout style.
	assert.Contains(t, out, "╭")
	assert.Contains(t, out, "╰")
}

func TestFlyoutElement_WidthClamping(t *testing.T) {
	narrow := &flyoutElement{id: "n", content: "x"}
	wide := &flyoutElement{id: "w", content: strings.Repeat("y", 200)}

	narrowLines := strings.Split(narrow.Render(), "\n")
	wideLines := strings.Split(wide.Render(), "\n")

	// Frames never collapse below the minimum or blow past the maximum.
	assert.GreaterOrEqual(t, len([]rune(narrowLines[0])), 16)
	assert.LessOrEqual(t, len([]rune(wideLines[0])), 64)
}

func TestFlyoutElement_DistinctIDs(t *testing.T) {
	a, err := NewFlyout(Options{Title: "a"})
	require.NoError(t, err)
	b, err := NewFlyout(Options{Title: "b"})
	require.NoError(t, err)

	assert.NotEqual(t, a.Render().ID(), b.Render().ID())
}
