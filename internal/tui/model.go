package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"glide/internal/config"
	"glide/internal/design"
	"glide/internal/fly"
	"glide/internal/observable"
	"glide/internal/source"
	"glide/pkg/logging"
)

const subsystem = "tui"

// taskItem adapts a sourced item to the bubbles list control.
type taskItem struct {
	item source.Item[Task, string]
}

func (i taskItem) Title() string {
	if i.item.Data.Done {
		return "✓ " + i.item.Data.Title
	}
	return i.item.Data.Title
}

func (i taskItem) Description() string { return "key " + i.item.Key }
func (i taskItem) FilterValue() string { return i.item.Data.Title }

// Model is the demo application: an observable vector of tasks viewed
// through a virtualized list source. Key handling mutates the vector
// only; the list control updates exclusively through the notification
// path.
type Model struct {
	cfg config.Config

	vector *observable.Vector[Task]
	src    *source.ListSource[Task, string]
	list   list.Model
	flyout *fly.Component

	logCh    <-chan logging.Entry
	logLines []string

	width   int
	height  int
	nextID  int
	status  string
	syncing bool
}

// NewModel seeds the vector, builds the list source and an empty list
// control. The notification handler is attached by the program once a
// send function exists.
func NewModel(cfg config.Config, logCh <-chan logging.Entry) *Model {
	vector := observable.NewVector[Task]()
	for i := 0; i < cfg.Demo.SeedItems; i++ {
		vector.Append(Task{
			ID:    fmt.Sprintf("task-%d", i+1),
			Title: fmt.Sprintf("Sample task %d", i+1),
		})
	}

	src := source.New(vector, func(t Task) string { return t.ID })

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = design.SelectedRowStyle
	l := list.New(nil, delegate, 0, 0)
	l.Title = "Tasks"
	l.SetShowStatusBar(false)

	return &Model{
		cfg:    cfg,
		vector: vector,
		src:    src,
		list:   l,
		logCh:  logCh,
		nextID: cfg.Demo.SeedItems + 1,
	}
}

// Source exposes the list source so the program can attach the binder.
func (m *Model) Source() *source.ListSource[Task, string] {
	return m.src
}

// Init starts the log channel listener.
func (m *Model) Init() tea.Cmd {
	return m.waitForLog()
}

func (m *Model) waitForLog() tea.Cmd {
	if m.logCh == nil {
		return nil
	}
	return func() tea.Msg {
		entry, ok := <-m.logCh
		if !ok {
			return nil
		}
		return logEntryMsg{line: fmt.Sprintf("[%s] %s: %s", entry.Level, entry.Subsystem, entry.Message)}
	}
}

// Update handles input, window sizing and the translated notification
// stream.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case beginNotificationsMsg:
		m.syncing = true
		return m, nil

	case endNotificationsMsg:
		m.syncing = false
		m.status = fmt.Sprintf("synced %d items", m.src.Count())
		return m, nil

	case insertedMsg:
		cmd := m.list.InsertItem(msg.index, taskItem{item: msg.item})
		return m, cmd

	case removedMsg:
		m.list.RemoveItem(msg.index)
		return m, nil

	case changedMsg:
		// Changed notifications carry no index, so locate by key.
		for i, it := range m.list.Items() {
			if ti, ok := it.(taskItem); ok && ti.item.Key == msg.item.Key {
				cmd := m.list.SetItem(i, taskItem{item: msg.item})
				return m, cmd
			}
		}
		return m, nil

	case reloadMsg:
		return m, m.reloadAll()

	case logEntryMsg:
		m.logLines = append(m.logLines, msg.line)
		if len(m.logLines) > 50 {
			m.logLines = m.logLines[len(m.logLines)-50:]
		}
		return m, m.waitForLog()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the flyout is open, it owns the keys.
	if m.flyoutVisible() {
		switch msg.String() {
		case "esc", "enter", "q":
			if err := m.flyout.Hide(); err != nil {
				logging.Error(subsystem, err, "hiding flyout")
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.src.Close()
		return m, tea.Quit

	case "a":
		task := Task{
			ID:    fmt.Sprintf("task-%d", m.nextID),
			Title: fmt.Sprintf("New task %d", m.nextID),
		}
		m.nextID++
		m.vector.Append(task)
		logging.Info(subsystem, "appended %s", task.ID)
		return m, nil

	case "i":
		idx := m.list.Index()
		task := Task{
			ID:    fmt.Sprintf("task-%d", m.nextID),
			Title: fmt.Sprintf("Wedged task %d", m.nextID),
		}
		m.nextID++
		if err := m.vector.InsertAt(idx, task); err != nil {
			logging.Error(subsystem, err, "inserting at %d", idx)
		}
		return m, nil

	case "d":
		idx := m.list.Index()
		if _, err := m.vector.RemoveAt(idx); err != nil {
			logging.Error(subsystem, err, "removing at %d", idx)
		}
		return m, nil

	case "t":
		idx := m.list.Index()
		task, err := m.vector.At(idx)
		if err != nil {
			logging.Error(subsystem, err, "toggling at %d", idx)
			return m, nil
		}
		task.Done = !task.Done
		if err := m.vector.SetAt(idx, task); err != nil {
			logging.Error(subsystem, err, "toggling at %d", idx)
		}
		return m, nil

	case "r":
		seed := make([]Task, m.cfg.Demo.SeedItems)
		for i := range seed {
			seed[i] = Task{ID: fmt.Sprintf("task-%d", i+1), Title: fmt.Sprintf("Sample task %d", i+1)}
		}
		m.nextID = len(seed) + 1
		m.vector.Replace(seed)
		return m, nil

	case "c":
		if it, ok := m.list.SelectedItem().(taskItem); ok {
			if err := clipboard.WriteAll(it.item.Key); err != nil {
				logging.Error(subsystem, err, "copying key to clipboard")
				m.status = "clipboard unavailable"
			} else {
				m.status = "copied " + it.item.Key
			}
		}
		return m, nil

	case "enter":
		return m, m.openFlyout()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// openFlyout builds a detail flyout for the selected row, anchored
// next to the cursor.
func (m *Model) openFlyout() tea.Cmd {
	it, ok := m.list.SelectedItem().(taskItem)
	if !ok {
		return nil
	}

	idx := m.list.Index()
	res, err := m.src.ItemsFromIndex(idx, m.cfg.Demo.WindowBefore, m.cfg.Demo.WindowAfter)
	if err != nil {
		logging.Error(subsystem, err, "fetching window at %d", idx)
		return nil
	}

	state := "pending"
	if it.item.Data.Done {
		state = "done"
	}
	content := fmt.Sprintf("state: %s\nposition: %d of %d", state, res.AbsoluteIndex+1, res.TotalCount)
	if nearby := nearbyTitles(res); len(nearby) > 0 {
		content += "\nnearby: " + strings.Join(nearby, ", ")
	}

	flyout, err := fly.NewFlyout(fly.Options{
		Title:     it.item.Data.Title,
		Content:   content,
		Width:     m.cfg.Flyout.MaxWidth,
		Anchor:    m.anchorForRow(idx),
		Placement: parsePlacement(m.cfg.Flyout.Placement),
		Alignment: parseAlignment(m.cfg.Flyout.Alignment),
	})
	if err != nil {
		logging.Error(subsystem, err, "constructing flyout")
		return nil
	}
	if _, err := flyout.Process(); err != nil {
		logging.Error(subsystem, err, "processing flyout")
		return nil
	}
	if err := flyout.Show(); err != nil {
		logging.Error(subsystem, err, "showing flyout")
		return nil
	}
	m.flyout = flyout
	return nil
}

// anchorForRow approximates the screen cell of a list row: below the
// list title, offset by the row's position on the current page.
func (m *Model) anchorForRow(idx int) *fly.Anchor {
	rowOnPage := idx
	if per := m.list.Paginator.PerPage; per > 0 {
		rowOnPage = idx % per
	}
	return &fly.Anchor{X: 4, Y: 2 + rowOnPage*3}
}

func (m *Model) flyoutVisible() bool {
	if m.flyout == nil {
		return false
	}
	ctl, ok := m.flyout.Control().(*fly.OverlayControl)
	return ok && ctl.Visible()
}

// reloadAll refetches the whole window after a reset notification.
func (m *Model) reloadAll() tea.Cmd {
	count := m.src.Count()
	if count == 0 {
		return m.list.SetItems(nil)
	}
	res, err := m.src.ItemsFromStart(count)
	if err != nil {
		logging.Error(subsystem, err, "reloading items")
		return nil
	}
	items := make([]list.Item, len(res.Items))
	for i, it := range res.Items {
		items[i] = taskItem{item: it}
	}
	return m.list.SetItems(items)
}

// View renders the list with the status bar, then composites the
// flyout overlay if one is visible.
func (m *Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	status := m.status
	if m.syncing {
		status = "syncing..."
	}
	if status == "" {
		status = "a add · i insert · d delete · t toggle · r reset · enter details · c copy key · q quit"
	}

	base := lipgloss.JoinVertical(lipgloss.Left,
		m.list.View(),
		design.StatusBarStyle.Render(truncateLine(status, m.width)),
	)

	if m.flyout != nil {
		if ctl, ok := m.flyout.Control().(*fly.OverlayControl); ok {
			base = ctl.CompositeOnto(base, m.width, m.height)
		}
	}
	return base
}

// nearbyTitles lists the titles of the window's neighbors, skipping
// the anchor row itself.
func nearbyTitles(res source.FetchResult[Task, string]) []string {
	var titles []string
	for i, item := range res.Items {
		if i == res.Offset {
			continue
		}
		titles = append(titles, item.Data.Title)
	}
	return titles
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "")
}

func parsePlacement(s string) fly.Placement {
	switch strings.ToLower(s) {
	case "top":
		return fly.PlacementTop
	case "bottom":
		return fly.PlacementBottom
	case "left":
		return fly.PlacementLeft
	case "right":
		return fly.PlacementRight
	default:
		return fly.PlacementAuto
	}
}

func parseAlignment(s string) fly.Alignment {
	switch strings.ToLower(s) {
	case "center":
		return fly.AlignCenter
	case "end":
		return fly.AlignEnd
	default:
		return fly.AlignStart
	}
}
