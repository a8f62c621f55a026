package observable

import "errors"

// ErrIndexOutOfRange is returned by index-addressed operations when the
// index does not refer to an element of the collection.
var ErrIndexOutOfRange = errors.New("observable: index out of range")

// ChangeKind identifies what a single mutation did to the collection.
type ChangeKind int

const (
	// Reset means the collection was replaced wholesale; Index is -1.
	Reset ChangeKind = iota
	// ItemInserted means one element was inserted at Index.
	ItemInserted
	// ItemRemoved means the element at Index was removed.
	ItemRemoved
	// ItemChanged means the element at Index was replaced in place.
	ItemChanged
)

// String makes ChangeKind satisfy the fmt.Stringer interface.
func (k ChangeKind) String() string {
	switch k {
	case Reset:
		return "reset"
	case ItemInserted:
		return "inserted"
	case ItemRemoved:
		return "removed"
	case ItemChanged:
		return "changed"
	default:
		return "unknown"
	}
}

// Change describes exactly one mutation of an observable collection.
// Every mutator emits exactly one Change; there is no batching.
type Change struct {
	Kind  ChangeKind
	Index int
}

// Source is the read-plus-subscribe surface a collection presents to
// consumers such as list source adapters. Consumers must never mutate
// the underlying collection; mutation flows collection -> adapter ->
// handler only.
type Source[T any] interface {
	// Len returns the number of elements.
	Len() int

	// At returns the element at index i, or ErrIndexOutOfRange.
	At(i int) (T, error)

	// Items returns a copy of the current contents in order.
	Items() []T

	// Subscribe registers fn to be called once per mutation, in the
	// order mutations happen. Delivery is synchronous with the
	// mutation; subscribers needing deferral must queue themselves.
	Subscribe(fn func(Change)) *Subscription
}
