package queue

import (
	"strings"

	"github.com/randomizedcoder/ringqueue/internal/list"
)

func compareValue(a, b *Element) int {
	return strings.Compare(a.Value, b.Value)
}

// Sort orders the queue ascending by value. Equal values keep their
// relative order.
func (q *Queue) Sort() {
	if !q.valid() {
		return
	}
	list.Sort(&q.head, compareValue)
}

// Sorted reports whether the values are in non-decreasing order.
func (q *Queue) Sorted() bool {
	for e := q.Front(); e != nil; e = e.Next() {
		if next := e.Next(); next != nil && next.Value < e.Value {
			return false
		}
	}
	return true
}

// Distinct reports whether no two adjacent elements share a value.
func (q *Queue) Distinct() bool {
	for e := q.Front(); e != nil; e = e.Next() {
		if next := e.Next(); next != nil && next.Value == e.Value {
			return false
		}
	}
	return true
}
