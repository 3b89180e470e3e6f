package asa

import (
	"github.com/MaciejGeldon/agds/lib/containers"
)

// Sum returns Σ(key × count) over every key in e, or (zero, false) if
// e is empty. It requires a Numeric key type: summing a
// string-keyed Engine is a compile error, not a runtime one.
func Sum[K containers.Numeric[K]](e *Engine[K]) (K, bool) {
	it := e.Iterate()
	node, ok := it.Next()
	if !ok {
		var zero K
		return zero, false
	}
	total := node.Key.Scale(node.Count)
	for {
		node, ok := it.Next()
		if !ok {
			break
		}
		total = total.Plus(node.Key.Scale(node.Count))
	}
	return total, true
}

// Mean returns the arithmetic mean of every key in e (each key
// weighted by its multiplicity), or (0, false) if e is empty.
func Mean[K containers.Numeric[K]](e *Engine[K]) (float64, bool) {
	sum, ok := Sum(e)
	if !ok {
		return 0, false
	}
	weight := 0
	it := e.Iterate()
	for node, ok := it.Next(); ok; node, ok = it.Next() {
		weight += node.Count
	}
	return sum.Float() / float64(weight), true
}

// Median returns the median key (averaging the two central keys when
// the total multiplicity is even), or (0, false) if e is empty. It
// walks the queue from both ends inward, tracking the running
// difference in multiplicity already consumed from each side, so it
// costs O(n) rather than a second O(log n) rank search.
func Median[K containers.Numeric[K]](e *Engine[K]) (float64, bool) {
	left, ok := e.Min()
	if !ok {
		return 0, false
	}
	right, _ := e.Max()
	if left == right {
		return left.Key.Float(), true
	}

	balance := left.Count - right.Count
	for left != right && left.Next != right {
		switch {
		case balance > 0:
			right = right.Prev
			balance -= right.Count
		case balance < 0:
			left = left.Next
			balance += left.Count
		default:
			left = left.Next
			right = right.Prev
			balance = left.Count - right.Count
		}
	}
	if left == right {
		// An odd total multiplicity converges the walk onto a
		// single node before left.Next == right ever holds.
		return left.Key.Float(), true
	}

	switch {
	case balance > 0:
		return left.Key.Float(), true
	case balance < 0:
		return right.Key.Float(), true
	default:
		return (left.Key.Float() + right.Key.Float()) / 2, true
	}
}
