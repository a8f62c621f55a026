package tui

import "glide/internal/source"

// Task is the demo's element type: a small unit of work with a durable
// ID used as the list source key.
type Task struct {
	ID    string
	Title string
	Done  bool
}

// Notification messages forwarded from the list source's handler into
// the bubbletea update loop.
type (
	reloadMsg struct{}

	insertedMsg struct {
		item    source.Item[Task, string]
		prevKey *string
		nextKey *string
		index   int
	}

	removedMsg struct {
		key   *string
		index int
	}

	changedMsg struct {
		item source.Item[Task, string]
	}

	beginNotificationsMsg struct{}
	endNotificationsMsg   struct{}
)

// logEntryMsg wraps a logging.Entry drained from the log channel.
type logEntryMsg struct {
	line string
}
