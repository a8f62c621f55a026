package tui

import (
	"glide/internal/source"
)

// listBinder is the demo's NotificationHandler. It runs on the list
// source's queue goroutine, so it does no model mutation itself; every
// notification is forwarded into the bubbletea loop as a message and
// applied there. This keeps the one-directional flow visible: vector
// mutations are the only writes, the list control only ever reacts.
type listBinder struct {
	send func(msg any)
}

func newListBinder(send func(msg any)) *listBinder {
	return &listBinder{send: send}
}

func (b *listBinder) Reload() {
	b.send(reloadMsg{})
}

func (b *listBinder) Inserted(item source.Item[Task, string], prevKey, nextKey *string, index int) {
	b.send(insertedMsg{item: item, prevKey: prevKey, nextKey: nextKey, index: index})
}

func (b *listBinder) Removed(key *string, index int) {
	b.send(removedMsg{key: key, index: index})
}

func (b *listBinder) Changed(item source.Item[Task, string]) {
	b.send(changedMsg{item: item})
}

func (b *listBinder) BeginNotifications() {
	b.send(beginNotificationsMsg{})
}

func (b *listBinder) EndNotifications() {
	b.send(endNotificationsMsg{})
}
