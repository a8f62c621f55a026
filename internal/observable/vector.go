package observable

import (
	"sync"

	"github.com/google/uuid"
)

// Subscription represents one subscriber's registration with a Vector.
type Subscription struct {
	ID     string
	fn     func(Change)
	closed bool
	mu     sync.RWMutex
}

// Close detaches the subscription. Closing twice is a no-op.
func (s *Subscription) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// IsClosed returns whether the subscription has been closed.
func (s *Subscription) IsClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// Stats tracks publication counters for a vector.
type Stats struct {
	TotalSubscriptions  int
	ActiveSubscriptions int
	EventsPublished     int64
	EventsDelivered     int64
}

// Vector is an ordered, index-addressable, mutation-notifying collection.
// Each mutator emits exactly one Change to every live subscriber before
// returning. Vector is safe for concurrent use, though the intended host
// is a single-goroutine UI loop.
type Vector[T any] struct {
	items []T
	subs  map[string]*Subscription
	order []string
	stats Stats
	mu    sync.RWMutex
}

// NewVector creates a vector seeded with the given items.
func NewVector[T any](items ...T) *Vector[T] {
	v := &Vector[T]{
		subs: make(map[string]*Subscription),
	}
	v.items = append(v.items, items...)
	return v
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.items)
}

// At returns the element at index i.
func (v *Vector[T]) At(i int) (T, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if i < 0 || i >= len(v.items) {
		var zero T
		return zero, ErrIndexOutOfRange
	}
	return v.items[i], nil
}

// Items returns a copy of the current contents in order.
func (v *Vector[T]) Items() []T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]T, len(v.items))
	copy(out, v.items)
	return out
}

// Subscribe registers fn for change delivery and returns its subscription.
func (v *Vector[T]) Subscribe(fn func(Change)) *Subscription {
	v.mu.Lock()
	defer v.mu.Unlock()

	sub := &Subscription{
		ID: uuid.NewString(),
		fn: fn,
	}
	v.subs[sub.ID] = sub
	v.order = append(v.order, sub.ID)
	v.stats.TotalSubscriptions++
	v.stats.ActiveSubscriptions++
	return sub
}

// Unsubscribe closes and removes a subscription.
func (v *Vector[T]) Unsubscribe(sub *Subscription) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.subs[sub.ID]; ok {
		sub.Close()
		v.removeSubLocked(sub.ID)
	}
}

// Stats returns a copy of the vector's publication counters.
func (v *Vector[T]) Stats() Stats {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.stats
}

// Append adds an element at the end.
func (v *Vector[T]) Append(item T) {
	v.mu.Lock()
	v.items = append(v.items, item)
	idx := len(v.items) - 1
	v.mu.Unlock()
	v.publish(Change{Kind: ItemInserted, Index: idx})
}

// InsertAt inserts an element so that it occupies index i. Inserting at
// Len() is equivalent to Append.
func (v *Vector[T]) InsertAt(i int, item T) error {
	v.mu.Lock()
	if i < 0 || i > len(v.items) {
		v.mu.Unlock()
		return ErrIndexOutOfRange
	}
	var zero T
	v.items = append(v.items, zero)
	copy(v.items[i+1:], v.items[i:])
	v.items[i] = item
	v.mu.Unlock()
	v.publish(Change{Kind: ItemInserted, Index: i})
	return nil
}

// RemoveAt removes and returns the element at index i.
func (v *Vector[T]) RemoveAt(i int) (T, error) {
	v.mu.Lock()
	if i < 0 || i >= len(v.items) {
		v.mu.Unlock()
		var zero T
		return zero, ErrIndexOutOfRange
	}
	item := v.items[i]
	v.items = append(v.items[:i], v.items[i+1:]...)
	v.mu.Unlock()
	v.publish(Change{Kind: ItemRemoved, Index: i})
	return item, nil
}

// SetAt replaces the element at index i in place.
func (v *Vector[T]) SetAt(i int, item T) error {
	v.mu.Lock()
	if i < 0 || i >= len(v.items) {
		v.mu.Unlock()
		return ErrIndexOutOfRange
	}
	v.items[i] = item
	v.mu.Unlock()
	v.publish(Change{Kind: ItemChanged, Index: i})
	return nil
}

// Replace swaps the entire contents and emits a single Reset.
func (v *Vector[T]) Replace(items []T) {
	v.mu.Lock()
	v.items = make([]T, len(items))
	copy(v.items, items)
	v.mu.Unlock()
	v.publish(Change{Kind: Reset, Index: -1})
}

// publish delivers a change to every live subscriber in subscription
// order, pruning closed subscriptions as it goes.
func (v *Vector[T]) publish(c Change) {
	v.mu.Lock()
	var targets []*Subscription
	for _, id := range v.order {
		sub, ok := v.subs[id]
		if !ok {
			continue
		}
		if sub.IsClosed() {
			v.removeSubLocked(id)
			continue
		}
		targets = append(targets, sub)
	}
	v.stats.EventsPublished++
	v.stats.EventsDelivered += int64(len(targets))
	v.mu.Unlock()

	for _, sub := range targets {
		sub.fn(c)
	}
}

// removeSubLocked deletes a subscription entry; caller holds v.mu.
func (v *Vector[T]) removeSubLocked(id string) {
	delete(v.subs, id)
	for i, oid := range v.order {
		if oid == id {
			v.order = append(v.order[:i], v.order[i+1:]...)
			break
		}
	}
	v.stats.ActiveSubscriptions--
}
