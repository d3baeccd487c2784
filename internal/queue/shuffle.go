package queue

// Shuffle permutes the values uniformly at random. Values move between
// elements; the links stay where they are.
//
// Walking back from the tail, the element at the end of the remaining
// prefix of length L swaps its value with a uniformly chosen element among
// the first L.
func (q *Queue) Shuffle() {
	if !q.valid() {
		return
	}

	head := &q.head
	cur := head.Prev()
	for remaining := q.Size(); remaining > 1; remaining-- {
		pick := head.Next()
		for i := q.rand.IntN(remaining); i > 0; i-- {
			pick = pick.Next()
		}

		a, b := cur.Owner(), pick.Owner()
		a.Value, b.Value = b.Value, a.Value
		a.size, b.size = b.size, a.size
		cur = cur.Prev()
	}
}
