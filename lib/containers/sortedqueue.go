package containers

import (
	"fmt"
)

// ValueNode is an entry in a SortedQueue: a distinct key, the number
// of times it was inserted, and its neighbours in ascending order.
//
// Unlike an entry of an append-only linked list, a ValueNode is not
// always spliced onto an end of its owning list; SortedQueue maintains
// it at whatever position keeps the list ascending.
type ValueNode[K Ordered[K]] struct {
	Queue      *SortedQueue[K]
	Prev, Next *ValueNode[K]
	Key        K
	Count      int
}

// Cmp compares a ValueNode's key to a raw key of the same domain,
// satisfying Ordered so a ValueNode and a bare key can be compared
// interchangeably by callers doing lookups.
func (n *ValueNode[K]) Cmp(other K) int {
	return n.Key.Cmp(other)
}

// SortedQueue is a doubly-linked list of ValueNodes maintained in
// strictly ascending key order. Unlike an append/move-to-end linked
// list, it supports splicing a new entry in next to any existing
// anchor, which is what lets the owning tree insert a key without
// re-sorting the whole list.
type SortedQueue[K Ordered[K]] struct {
	Min, Max *ValueNode[K]
	len      int // count of distinct nodes, not Σ Count
}

// Len returns the number of distinct keys in the queue.
func (q *SortedQueue[K]) Len() int {
	return q.len
}

// IsEmpty reports whether the queue holds no keys.
func (q *SortedQueue[K]) IsEmpty() bool {
	return q.Min == nil
}

// AddFirst creates the first ValueNode in an empty queue.
//
// It is invalid (runtime-panic) to call AddFirst on a non-empty
// queue.
func (q *SortedQueue[K]) AddFirst(key K) *ValueNode[K] {
	if q.Min != nil || q.Max != nil {
		panic(fmt.Errorf("containers.SortedQueue.AddFirst: queue is not empty"))
	}
	node := &ValueNode[K]{Queue: q, Key: key}
	node.Count = 1
	q.Min = node
	q.Max = node
	q.len++
	return node
}

// AddNeighbour creates a ValueNode for key and splices it in next to
// anchor, before it if key sorts earlier than anchor's key, after it
// otherwise. The caller (the owning TreeNode) is responsible for
// anchor being a correct immediate neighbour of key in the final
// ascending order.
//
// It is invalid (runtime-panic) to call AddNeighbour with an anchor
// that isn't a member of this queue.
func (q *SortedQueue[K]) AddNeighbour(key K, anchor *ValueNode[K]) *ValueNode[K] {
	if anchor == nil || anchor.Queue != q {
		panic(fmt.Errorf("containers.SortedQueue.AddNeighbour: anchor %p not in queue", anchor))
	}
	node := &ValueNode[K]{Queue: q, Key: key}
	node.Count = 1
	q.len++
	if key.Cmp(anchor.Key) < 0 {
		q.linkBefore(node, anchor)
	} else {
		q.linkAfter(node, anchor)
	}
	return node
}

func (q *SortedQueue[K]) linkAfter(node, anchor *ValueNode[K]) {
	node.Prev = anchor
	if anchor.Next != nil {
		node.Next = anchor.Next
		anchor.Next.Prev = node
	} else {
		q.Max = node
	}
	anchor.Next = node
}

func (q *SortedQueue[K]) linkBefore(node, anchor *ValueNode[K]) {
	node.Next = anchor
	if anchor.Prev != nil {
		node.Prev = anchor.Prev
		anchor.Prev.Next = node
	} else {
		q.Min = node
	}
	anchor.Prev = node
}

// Delete unlinks node from the queue, patching its neighbours
// together and advancing Min/Max if node was an endpoint.
//
// It is invalid (runtime-panic) to call Delete on a node that isn't a
// member of this queue.
func (q *SortedQueue[K]) Delete(node *ValueNode[K]) {
	if node.Queue != q {
		panic(fmt.Errorf("containers.SortedQueue.Delete: node %p not in queue", node))
	}
	if node == q.Max {
		q.Max = node.Prev
	}
	if node == q.Min {
		q.Min = node.Next
	}
	if node.Next != nil {
		node.Next.Prev = node.Prev
	}
	if node.Prev != nil {
		node.Prev.Next = node.Next
	}
	q.len--

	node.Queue = nil
	node.Prev = nil
	node.Next = nil
}

// QueueIterator is a lazy, restartable, finite walk over a
// SortedQueue from one endpoint to the other.
type QueueIterator[K Ordered[K]] struct {
	cur     *ValueNode[K]
	reverse bool
}

// Next returns the next ValueNode in the walk, or (nil, false) once
// the walk is exhausted.
func (it *QueueIterator[K]) Next() (*ValueNode[K], bool) {
	if it.cur == nil {
		return nil, false
	}
	node := it.cur
	if it.reverse {
		it.cur = node.Prev
	} else {
		it.cur = node.Next
	}
	return node, true
}

// Iterate returns a fresh ascending walk from Min to Max.
func (q *SortedQueue[K]) Iterate() *QueueIterator[K] {
	return &QueueIterator[K]{cur: q.Min}
}

// ReverseIterate returns a fresh descending walk from Max to Min.
func (q *SortedQueue[K]) ReverseIterate() *QueueIterator[K] {
	return &QueueIterator[K]{cur: q.Max, reverse: true}
}
