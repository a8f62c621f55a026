// Package source adapts an observable vector into a virtualized,
// read-only list data source. Fetches return a window of keyed items
// around a requested index; every vector mutation is translated into
// exactly one handler notification, delivered on a queue so consumers
// never observe a notification inside the mutation that caused it.
package source

import (
	"errors"
	"sync"

	"glide/internal/observable"
)

// ErrDoesNotExist is returned by fetch operations when the requested
// index refers to no element.
var ErrDoesNotExist = errors.New("source: item does not exist")

// Item is one element of a fetch window: the (possibly mapped)
// element data together with its durable key.
type Item[T any, K comparable] struct {
	Data T
	Key  K
}

// FetchResult is a window into the vector anchored at a requested index.
type FetchResult[T any, K comparable] struct {
	// Items holds the window contents in vector order.
	Items []Item[T, K]
	// AbsoluteIndex is the requested anchor index.
	AbsoluteIndex int
	// Offset is the anchor's position within Items.
	Offset int
	// AtStart is true when the window includes index 0.
	AtStart bool
	// AtEnd is true when the window includes the last index.
	AtEnd bool
	// TotalCount is the vector length at fetch time.
	TotalCount int
}

// NotificationHandler receives the translated change stream. At most
// one handler is attached to a list source at a time.
type NotificationHandler[T any, K comparable] interface {
	// Reload signals that the whole collection changed and any cached
	// window is stale.
	Reload()

	// Inserted reports a new element. prevKey and nextKey identify the
	// neighbors at delivery time; either is nil at a boundary.
	Inserted(item Item[T, K], prevKey, nextKey *K, index int)

	// Removed reports the removal of the element that was at index.
	// key is always nil: the triggering event does not carry the
	// removed element, so consumers that need the key must track it
	// from earlier Inserted calls.
	Removed(key *K, index int)

	// Changed reports an in-place replacement.
	Changed(item Item[T, K])

	// BeginNotifications and EndNotifications bracket the replay of
	// existing contents after a handler is attached.
	BeginNotifications()
	EndNotifications()
}

// ListSource presents a Source as a windowed, key-tracked, read-only
// data source. T is the element type, K the key type produced by the
// key selector.
type ListSource[T any, K comparable] struct {
	src     observable.Source[T]
	keyOf   func(T) K
	mapFn   func(T) T
	queue   Queue
	owned   *SerialQueue
	sub     *observable.Subscription
	handler NotificationHandler[T, K]
	mu      sync.RWMutex
}

// Option configures a ListSource.
type Option[T any, K comparable] func(*ListSource[T, K])

// WithMapping sets a presentation mapping applied to element data in
// fetch results and notifications. Keys are always selected from the
// unmapped element.
func WithMapping[T any, K comparable](fn func(T) T) Option[T, K] {
	return func(ls *ListSource[T, K]) {
		ls.mapFn = fn
	}
}

// WithQueue sets the deferral queue. The default is a fresh serial
// queue owned by the list source.
func WithQueue[T any, K comparable](q Queue) Option[T, K] {
	return func(ls *ListSource[T, K]) {
		ls.queue = q
	}
}

// New creates a list source over src. keyOf must return a durable key,
// unique within the vector and stable across the element's lifetime.
func New[T any, K comparable](src observable.Source[T], keyOf func(T) K, opts ...Option[T, K]) *ListSource[T, K] {
	ls := &ListSource[T, K]{
		src:   src,
		keyOf: keyOf,
	}
	for _, opt := range opts {
		opt(ls)
	}
	if ls.mapFn == nil {
		ls.mapFn = func(v T) T { return v }
	}
	if ls.queue == nil {
		ls.owned = NewQueue()
		ls.queue = ls.owned
	}
	ls.sub = src.Subscribe(ls.onChange)
	return ls
}

// Count returns the number of elements currently in the vector.
func (ls *ListSource[T, K]) Count() int {
	return ls.src.Len()
}

// ItemsFromIndex returns a window covering
// [max(0, index-countBefore), min(len-1, index+countAfter)], clamped at
// both ends. It fails with ErrDoesNotExist when index is outside
// [0, len).
func (ls *ListSource[T, K]) ItemsFromIndex(index, countBefore, countAfter int) (FetchResult[T, K], error) {
	items := ls.src.Items()
	n := len(items)
	if index < 0 || index >= n {
		return FetchResult[T, K]{}, ErrDoesNotExist
	}

	lo := index - countBefore
	if lo < 0 {
		lo = 0
	}
	hi := index + countAfter
	if hi > n-1 {
		hi = n - 1
	}

	window := make([]Item[T, K], 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		window = append(window, Item[T, K]{
			Data: ls.mapFn(items[i]),
			Key:  ls.keyOf(items[i]),
		})
	}

	return FetchResult[T, K]{
		Items:         window,
		AbsoluteIndex: index,
		Offset:        index - lo,
		AtStart:       lo == 0,
		AtEnd:         hi == n-1,
		TotalCount:    n,
	}, nil
}

// ItemsFromStart returns the first count elements.
func (ls *ListSource[T, K]) ItemsFromStart(count int) (FetchResult[T, K], error) {
	return ls.ItemsFromIndex(0, 0, count-1)
}

// ItemsFromEnd returns the last count elements.
func (ls *ListSource[T, K]) ItemsFromEnd(count int) (FetchResult[T, K], error) {
	return ls.ItemsFromIndex(ls.src.Len()-1, count-1, 0)
}

// SetHandler attaches h, replacing any previously attached handler; a
// nil h detaches. If the vector is non-empty when the deferred replay
// runs, h receives BeginNotifications, one Inserted per existing
// element in ascending index order, then EndNotifications. The replay
// is skipped if h has been replaced by then.
func (ls *ListSource[T, K]) SetHandler(h NotificationHandler[T, K]) {
	ls.mu.Lock()
	ls.handler = h
	ls.mu.Unlock()

	if h == nil {
		return
	}

	ls.queue.Defer(func() {
		ls.mu.RLock()
		current := ls.handler
		ls.mu.RUnlock()
		if current != h {
			return
		}

		items := ls.src.Items()
		if len(items) == 0 {
			return
		}

		h.BeginNotifications()
		for i := range items {
			h.Inserted(ls.itemAt(items, i), ls.keyBefore(items, i), ls.keyAfter(items, i), i)
		}
		h.EndNotifications()
	})
}

// Close detaches the vector subscription and, when the list source
// created its own queue, drains and stops it. Pending deferred
// notifications still run; new vector changes are no longer observed.
// A caller-supplied queue stays with its owner.
func (ls *ListSource[T, K]) Close() {
	ls.sub.Close()
	if ls.owned != nil {
		ls.owned.Close()
	}
}

// onChange translates one vector change into one deferred handler
// call. The item and its neighbor keys are captured at event time,
// while the vector still reflects the mutation that fired the event;
// later mutations must not lose or alter notifications already
// queued.
func (ls *ListSource[T, K]) onChange(c observable.Change) {
	var deliver func(NotificationHandler[T, K])

	switch c.Kind {
	case observable.Reset:
		deliver = func(h NotificationHandler[T, K]) { h.Reload() }
	case observable.ItemInserted:
		items := ls.src.Items()
		if c.Index < 0 || c.Index >= len(items) {
			// Malformed event from the source.
			return
		}
		item := ls.itemAt(items, c.Index)
		prev := ls.keyBefore(items, c.Index)
		next := ls.keyAfter(items, c.Index)
		deliver = func(h NotificationHandler[T, K]) { h.Inserted(item, prev, next, c.Index) }
	case observable.ItemRemoved:
		// The change event does not carry the removed element, so no
		// key is supplied.
		deliver = func(h NotificationHandler[T, K]) { h.Removed(nil, c.Index) }
	case observable.ItemChanged:
		items := ls.src.Items()
		if c.Index < 0 || c.Index >= len(items) {
			return
		}
		item := ls.itemAt(items, c.Index)
		deliver = func(h NotificationHandler[T, K]) { h.Changed(item) }
	default:
		return
	}

	ls.queue.Defer(func() {
		ls.mu.RLock()
		h := ls.handler
		ls.mu.RUnlock()
		if h == nil {
			return
		}
		deliver(h)
	})
}

func (ls *ListSource[T, K]) itemAt(items []T, i int) Item[T, K] {
	return Item[T, K]{Data: ls.mapFn(items[i]), Key: ls.keyOf(items[i])}
}

func (ls *ListSource[T, K]) keyBefore(items []T, i int) *K {
	if i-1 < 0 {
		return nil
	}
	k := ls.keyOf(items[i-1])
	return &k
}

func (ls *ListSource[T, K]) keyAfter(items []T, i int) *K {
	if i+1 >= len(items) {
		return nil
	}
	k := ls.keyOf(items[i+1])
	return &k
}
