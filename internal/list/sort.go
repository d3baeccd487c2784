package list

// Sort orders the ring anchored at head with a top-down merge sort. cmp
// returns a negative number when a sorts before b. Entries that compare equal
// keep their relative order.
//
// The ring is opened into a nil-terminated chain for the duration of the sort
// and prev pointers are rebuilt afterwards, so no entry is allocated or moved
// out of the list.
func Sort[T any](head *Link[T], cmp func(a, b *T) int) {
	if head.Empty() || head.next.next == head {
		return
	}

	head.prev.next = nil
	first := mergeSort(head.next, cmp)

	prev := head
	for cur := first; cur != nil; cur = cur.next {
		cur.prev = prev
		prev.next = cur
		prev = cur
	}
	prev.next = head
	head.prev = prev
}

func mergeSort[T any](first *Link[T], cmp func(a, b *T) int) *Link[T] {
	if first == nil || first.next == nil {
		return first
	}

	// Hare moves two links per step, so slow stops at the end of the left half.
	slow, fast := first, first.next
	for fast != nil && fast.next != nil {
		slow = slow.next
		fast = fast.next.next
	}
	second := slow.next
	slow.next = nil

	return merge(mergeSort(first, cmp), mergeSort(second, cmp), cmp)
}

func merge[T any](left, right *Link[T], cmp func(a, b *T) int) *Link[T] {
	var stub Link[T]
	tail := &stub
	for left != nil && right != nil {
		if cmp(right.owner, left.owner) < 0 {
			tail.next = right
			right = right.next
		} else {
			tail.next = left
			left = left.next
		}
		tail = tail.next
	}

	if left != nil {
		tail.next = left
	} else {
		tail.next = right
	}
	return stub.next
}
