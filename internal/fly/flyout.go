package fly

import (
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"

	"glide/internal/design"
)

// NewFlyout is the constructor for the flyout component kind: a
// transient anchored overlay framed in the toolkit's flyout style and
// backed by an OverlayControl.
var NewFlyout = NewKind(flyoutPresenter{})

// flyoutPresenter renders the flyout frame and attaches its control.
type flyoutPresenter struct{}

func (flyoutPresenter) Present(opts Options) (Element, Control, error) {
	el := &flyoutElement{
		id:      uuid.NewString(),
		title:   opts.Title,
		content: opts.Content,
		width:   opts.Width,
	}
	return el, NewOverlayControl(el), nil
}

// flyoutElement is the root element of a flyout: a framed title plus
// content block.
type flyoutElement struct {
	id      string
	title   string
	content string
	width   int
}

func (e *flyoutElement) ID() string { return e.id }

func (e *flyoutElement) Render() string {
	width := e.width
	if width <= 0 {
		width = e.naturalWidth()
	}
	if width < design.MinFlyoutWidth {
		width = design.MinFlyoutWidth
	}
	if width > design.MaxFlyoutWidth {
		width = design.MaxFlyoutWidth
	}

	var body strings.Builder
	if e.title != "" {
		body.WriteString(design.TitleStyle.Render(runewidth.Truncate(e.title, width, "…")))
		if e.content != "" {
			body.WriteString("\n")
		}
	}
	if e.content != "" {
		body.WriteString(design.TextStyle.Render(e.content))
	}

	return design.FlyoutStyle.Width(width).Render(body.String())
}

// naturalWidth sizes the frame to the widest line of title or content.
func (e *flyoutElement) naturalWidth() int {
	w := runewidth.StringWidth(e.title)
	for _, line := range strings.Split(e.content, "\n") {
		if lw := runewidth.StringWidth(line); lw > w {
			w = lw
		}
	}
	return w
}
