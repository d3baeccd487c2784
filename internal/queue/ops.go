package queue

import "github.com/randomizedcoder/ringqueue/internal/list"

// DeleteMid removes and releases the middle element, the one at index n/2
// counting from zero at the head. With six elements that is the fourth.
// Returns false if q is nil or empty.
func (q *Queue) DeleteMid() bool {
	if !q.valid() || q.head.Empty() {
		return false
	}

	head := &q.head
	fast, slow := head.Next(), head.Next()
	for fast != head && fast.Next() != head {
		fast = fast.Next().Next()
		slow = slow.Next()
	}

	list.Del(slow)
	slow.Owner().Release()
	return true
}

// DeleteDup removes every element whose value occurs more than once,
// leaving only values that were unique. The queue must already be sorted;
// on unsorted input only adjacent runs are detected.
// Returns false if q is nil.
func (q *Queue) DeleteDup() bool {
	if !q.valid() {
		return false
	}

	head := &q.head
	inRun := false
	list.Each(head, func(cur *list.Link[Element]) {
		next := cur.Next()
		switch {
		case next != head && cur.Owner().Value == next.Owner().Value:
			inRun = true
		case inRun:
			inRun = false
		default:
			return
		}
		list.Del(cur)
		cur.Owner().Release()
	})
	return true
}

// Swap exchanges the positions of every two adjacent elements. With an odd
// count the last element stays at the tail.
func (q *Queue) Swap() {
	if !q.valid() {
		return
	}

	head := &q.head
	var held *list.Link[Element]
	list.Each(head, func(cur *list.Link[Element]) {
		if held == nil {
			list.Del(cur)
			held = cur
			return
		}
		list.Add(held, cur)
		held = nil
	})
	if held != nil {
		list.AddTail(held, head)
	}
}

// Reverse inverts the order of the elements by relinking them. Nothing is
// allocated or released.
func (q *Queue) Reverse() {
	if !q.valid() {
		return
	}

	head := &q.head
	list.Each(head, func(cur *list.Link[Element]) {
		list.Move(cur, head)
	})
}
