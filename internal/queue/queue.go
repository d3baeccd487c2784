// Package queue provides a string queue built on an intrusive circular
// doubly-linked list.
//
// Every Element embeds the link that threads it into the ring, and the Queue
// embeds the sentinel link. Besides insertion and removal at both ends the
// queue offers a set of in-place algorithms that work purely by relinking:
//   - DeleteMid: tortoise/hare walk, removes the element at index n/2
//   - DeleteDup: drops every value that occurs more than once in a sorted queue
//   - Swap: exchanges the positions of each adjacent pair
//   - Reverse: inverts the order without allocating
//   - Sort: stable merge sort by lexicographic order
//   - Shuffle: Fisher-Yates over the payloads
//
// # Ownership
//
// RemoveHead and RemoveTail only unlink. The returned Element belongs to the
// caller, who must call Release on it. Free releases everything still linked.
//
// # Failure reporting
//
// Operations report failure with a false or nil result, never a panic. A nil
// *Queue is accepted by every method and behaves as an invalid queue.
// Allocation failures come from the configured Allocator and are rolled back
// before the call returns.
//
// # Concurrency (IMPORTANT)
//
// A Queue has no internal synchronization. Only one goroutine may use a
// Queue at a time.
package queue

import (
	"errors"
	"strings"
	"unsafe"

	"github.com/randomizedcoder/ringqueue/internal/list"
)

var (
	// ErrNilQueue describes an operation attempted on a nil queue.
	ErrNilQueue = errors.New("queue: nil queue")
	// ErrEmpty describes a removal attempted on an empty queue.
	ErrEmpty = errors.New("queue: queue is empty")
	// ErrAllocation describes an allocation refused by the Allocator.
	ErrAllocation = errors.New("queue: allocation failed")
)

var (
	queueSize   = int(unsafe.Sizeof(Queue{}))
	elementSize = int(unsafe.Sizeof(Element{}))
)

// Element is a queue entry: an owned string plus its embedded link.
type Element struct {
	Value string

	link  list.Link[Element]
	alloc Allocator
	size  int // bytes allocated for the string copy
}

// Next returns the following element, or nil at the tail.
func (e *Element) Next() *Element {
	if e == nil || !e.link.Linked() {
		return nil
	}
	return e.link.Next().Owner()
}

// Prev returns the preceding element, or nil at the head.
func (e *Element) Prev() *Element {
	if e == nil || !e.link.Linked() {
		return nil
	}
	return e.link.Prev().Owner()
}

// Release returns the element and its string to the allocator. It must only
// be called on an element the caller owns, i.e. one that has been removed.
// Releasing twice is a no-op.
func (e *Element) Release() {
	if e == nil || e.alloc == nil {
		return
	}
	e.alloc.Free(e.size)
	e.alloc.Free(elementSize)
	e.Value = ""
	e.alloc = nil
	e.size = 0
}

// Queue is the sentinel of a ring of Elements.
type Queue struct {
	head  list.Link[Element]
	alloc Allocator
	rand  Source
}

// New creates an empty queue. It returns nil if the allocator refuses the
// allocation.
func New(opts ...Option) *Queue {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if !o.alloc.Alloc(queueSize) {
		return nil
	}

	q := &Queue{
		alloc: o.alloc,
		rand:  o.rand,
	}
	q.head.Init()
	return q
}

// Free releases every element still in the queue and then the queue itself.
// A nil queue is a no-op. The queue is left empty.
func (q *Queue) Free() {
	if q == nil || !q.head.Linked() {
		return
	}

	list.Each(&q.head, func(l *list.Link[Element]) {
		list.Del(l)
		l.Owner().Release()
	})
	q.alloc.Free(queueSize)
	q.head = list.Link[Element]{}
}

func (q *Queue) newElement(s string) *Element {
	if !q.alloc.Alloc(elementSize) {
		return nil
	}
	e := &Element{alloc: q.alloc}
	e.link.Bind(e)

	if !q.alloc.Alloc(len(s) + 1) {
		q.alloc.Free(elementSize)
		return nil
	}
	e.Value = strings.Clone(s)
	e.size = len(s) + 1
	return e
}

// InsertHead adds a copy of s at the head of the queue.
// Returns false if q is nil or the allocation fails.
func (q *Queue) InsertHead(s string) bool {
	if !q.valid() {
		return false
	}
	e := q.newElement(s)
	if e == nil {
		return false
	}
	list.Add(&e.link, &q.head)
	return true
}

// InsertTail adds a copy of s at the tail of the queue.
// Returns false if q is nil or the allocation fails.
func (q *Queue) InsertTail(s string) bool {
	if !q.valid() {
		return false
	}
	e := q.newElement(s)
	if e == nil {
		return false
	}
	list.AddTail(&e.link, &q.head)
	return true
}

// RemoveHead unlinks the first element and hands it to the caller.
//
// If sp is non-empty, up to len(sp)-1 bytes of the value are copied into it
// followed by a zero byte; the rest of sp is zeroed. Longer values are
// truncated. Returns nil if q is nil or empty.
func (q *Queue) RemoveHead(sp []byte) *Element {
	if !q.valid() || q.head.Empty() {
		return nil
	}
	return q.remove(q.head.Next(), sp)
}

// RemoveTail is RemoveHead for the last element.
func (q *Queue) RemoveTail(sp []byte) *Element {
	if !q.valid() || q.head.Empty() {
		return nil
	}
	return q.remove(q.head.Prev(), sp)
}

func (q *Queue) remove(l *list.Link[Element], sp []byte) *Element {
	list.Del(l)
	e := l.Owner()
	copyOut(sp, e.Value)
	return e
}

func copyOut(sp []byte, s string) {
	if len(sp) == 0 {
		return
	}
	n := copy(sp[:len(sp)-1], s)
	clear(sp[n:])
}

// Size counts the elements by walking the ring. Returns 0 for a nil queue.
func (q *Queue) Size() int {
	if !q.valid() {
		return 0
	}
	n := 0
	for cur := q.head.Next(); cur != &q.head; cur = cur.Next() {
		n++
	}
	return n
}

// Front returns the first element without removing it, or nil.
func (q *Queue) Front() *Element {
	if !q.valid() {
		return nil
	}
	if l := q.head.First(); l != nil {
		return l.Owner()
	}
	return nil
}

// Back returns the last element without removing it, or nil.
func (q *Queue) Back() *Element {
	if !q.valid() {
		return nil
	}
	if l := q.head.Last(); l != nil {
		return l.Owner()
	}
	return nil
}

// Values returns a copy of the payloads in queue order.
func (q *Queue) Values() []string {
	if !q.valid() {
		return nil
	}
	var out []string
	for e := q.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value)
	}
	return out
}

// Verify checks the ring invariants and returns the element count.
func (q *Queue) Verify() (int, error) {
	if !q.valid() {
		return 0, ErrNilQueue
	}
	return list.Verify(&q.head)
}

func (q *Queue) valid() bool {
	return q != nil && q.head.Linked()
}
