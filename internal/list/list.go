// Package list provides an intrusive circular doubly-linked list.
//
// An entry embeds a Link by value and threads itself into a ring anchored by
// a sentinel Link. The sentinel carries no owner and marks both the position
// before the first entry and the position after the last one, so head and
// tail operations never need nil checks:
//
//	type item struct {
//		value string
//		link  list.Link[item]
//	}
//
//	var head list.Link[item]
//	head.Init()
//	it := &item{value: "a"}
//	it.link.Bind(it)
//	list.AddTail(&it.link, &head)
//
// The list does no allocation and keeps no counter. Functions in this package
// are not safe for concurrent use.
package list

import "errors"

// ErrCorrupt is returned by Verify when a next/prev pair does not match.
var ErrCorrupt = errors.New("list: ring corrupt")

// Link is the next/prev pair embedded in every entry.
type Link[T any] struct {
	next  *Link[T]
	prev  *Link[T]
	owner *T
}

// Init makes l an empty ring that points at itself.
func (l *Link[T]) Init() {
	l.next = l
	l.prev = l
}

// Bind records the entry that embeds l.
func (l *Link[T]) Bind(owner *T) {
	l.owner = owner
}

// Owner returns the entry that embeds l, or nil for a sentinel.
func (l *Link[T]) Owner() *T {
	return l.owner
}

// Next returns the following link in the ring.
func (l *Link[T]) Next() *Link[T] {
	return l.next
}

// Prev returns the preceding link in the ring.
func (l *Link[T]) Prev() *Link[T] {
	return l.prev
}

// Empty reports whether the ring anchored at head has no entries.
func (l *Link[T]) Empty() bool {
	return l.next == l
}

// Linked reports whether l is currently part of a ring.
func (l *Link[T]) Linked() bool {
	return l.next != nil
}

// First returns the first entry link after head, or nil if the ring is empty.
func (l *Link[T]) First() *Link[T] {
	if l.Empty() {
		return nil
	}
	return l.next
}

// Last returns the last entry link before head, or nil if the ring is empty.
func (l *Link[T]) Last() *Link[T] {
	if l.Empty() {
		return nil
	}
	return l.prev
}

func splice[T any](n, prev, next *Link[T]) {
	next.prev = n
	n.next = next
	n.prev = prev
	prev.next = n
}

// Add inserts n immediately after head.
func Add[T any](n, head *Link[T]) {
	splice(n, head, head.next)
}

// AddTail inserts n immediately before head, which is the tail position.
func AddTail[T any](n, head *Link[T]) {
	splice(n, head.prev, head)
}

// Del unlinks n from its ring and clears its neighbours.
func Del[T any](n *Link[T]) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.next = nil
	n.prev = nil
}

// Move unlinks n and reinserts it immediately after head.
func Move[T any](n, head *Link[T]) {
	Del(n)
	Add(n, head)
}

// Each calls fn for every entry in forward order. fn may Del the link it is
// given; the successor is read before the call.
func Each[T any](head *Link[T], fn func(l *Link[T])) {
	for cur, next := head.next, head.next.next; cur != head; cur, next = next, next.next {
		fn(cur)
	}
}

// Verify walks the ring anchored at head and checks that every prev pointer
// is the inverse of its neighbour's next pointer and that no entry link is
// owner-less. It returns the number of entries.
func Verify[T any](head *Link[T]) (int, error) {
	if head.next == nil || head.prev == nil {
		return 0, ErrCorrupt
	}
	n := 0
	for cur := head; ; cur = cur.next {
		if cur.next == nil || cur.next.prev != cur {
			return n, ErrCorrupt
		}
		if cur.next == head {
			break
		}
		if cur.next.owner == nil {
			return n, ErrCorrupt
		}
		n++
	}
	// Same count walking backwards.
	back := 0
	for cur := head.prev; cur != head; cur = cur.prev {
		back++
		if back > n {
			return n, ErrCorrupt
		}
	}
	if back != n {
		return n, ErrCorrupt
	}
	return n, nil
}
