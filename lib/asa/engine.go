package asa

import (
	"fmt"

	"github.com/MaciejGeldon/agds/lib/containers"
)

// Engine is one ASA instance: a 2-3 tree over keys of type K, with
// every key also threaded through a containers.SortedQueue so that
// Min/Max/aggregate queries never have to walk the tree.
//
// The zero value is an empty, ready-to-use Engine.
type Engine[K containers.Ordered[K]] struct {
	root  *TreeNode[K]
	queue containers.SortedQueue[K]
}

// Len returns the number of distinct keys held.
func (e *Engine[K]) Len() int {
	return e.queue.Len()
}

// Insert adds key, or bumps its multiplicity if already present, and
// returns the (possibly pre-existing) containers.ValueNode backing
// it.
func (e *Engine[K]) Insert(key K) *containers.ValueNode[K] {
	if e.root == nil {
		e.root = &TreeNode[K]{Leaf: true}
		return e.root.AddNew(key, &e.queue)
	}
	return e.insert(key, e.root)
}

func (e *Engine[K]) insert(key K, node *TreeNode[K]) *containers.ValueNode[K] {
	if node.Leaf {
		v := node.AddNew(key, &e.queue)
		if node.Overflow() {
			e.splitAndPropagate(node)
		}
		return v
	}
	for _, k := range node.Keys {
		if key.Cmp(k.Key) == 0 {
			k.Count++
			return k
		}
	}
	return e.insert(key, node.Children[descendIndex(key, node)])
}

// descendIndex returns the index of the child to recurse into when
// key is not an exact match for any of node's Keys: the index of the
// first key strictly greater than key, or len(node.Keys) (the
// rightmost child) if none is greater.
func descendIndex[K containers.Ordered[K]](key K, node *TreeNode[K]) int {
	for i, k := range node.Keys {
		if key.Cmp(k.Key) < 0 {
			return i
		}
	}
	return len(node.Keys)
}

func (e *Engine[K]) splitAndPropagate(node *TreeNode[K]) {
	promoted, left, right := split(node)
	parent := node.Parent
	if parent == nil {
		newRoot := &TreeNode[K]{
			Keys:     []*containers.ValueNode[K]{promoted},
			Children: []*TreeNode[K]{left, right},
		}
		left.Parent = newRoot
		right.Parent = newRoot
		e.root = newRoot
		return
	}

	idx := indexOfChild(parent, node)
	left.Parent = parent
	right.Parent = parent
	parent.Children[idx] = left
	parent.Children = insertChildAt(parent.Children, idx+1, right)
	parent.AddPromoted(promoted)

	if parent.Overflow() {
		e.splitAndPropagate(parent)
	}
}

// Search looks up key and, if present, returns its ValueNode and the
// leaf or internal TreeNode currently holding it.
func (e *Engine[K]) Search(key K) (*containers.ValueNode[K], *TreeNode[K]) {
	if e.root == nil {
		return nil, nil
	}
	return search(key, e.root)
}

func search[K containers.Ordered[K]](key K, node *TreeNode[K]) (*containers.ValueNode[K], *TreeNode[K]) {
	for {
		for _, k := range node.Keys {
			if key.Cmp(k.Key) == 0 {
				return k, node
			}
		}
		if node.Leaf {
			return nil, nil
		}
		node = node.Children[descendIndex(key, node)]
	}
}

// Min returns the smallest key's ValueNode, or (nil, false) if empty.
func (e *Engine[K]) Min() (*containers.ValueNode[K], bool) {
	if e.queue.Min == nil {
		return nil, false
	}
	return e.queue.Min, true
}

// Max returns the largest key's ValueNode, or (nil, false) if empty.
func (e *Engine[K]) Max() (*containers.ValueNode[K], bool) {
	if e.queue.Max == nil {
		return nil, false
	}
	return e.queue.Max, true
}

// Iterate returns a fresh ascending walk of every distinct key.
func (e *Engine[K]) Iterate() *containers.QueueIterator[K] {
	return e.queue.Iterate()
}

// ReverseIterate returns a fresh descending walk of every distinct key.
func (e *Engine[K]) ReverseIterate() *containers.QueueIterator[K] {
	return e.queue.ReverseIterate()
}

// Delete removes one occurrence of key: if its multiplicity is above
// one, the count is decremented in place; otherwise the Value Node is
// removed from both the tree and the queue, and the tree is
// rebalanced if needed. It reports whether key was found at all.
//
// Go's static typing collapses what the original's delete returns as
// one of {false, true, the Value Node} into a single bool: the
// three-way distinction there is an implementation convenience for a
// dynamically-typed caller, never a semantic one, so a plain
// found/not-found result loses nothing.
func (e *Engine[K]) Delete(key K) bool {
	v, node := e.Search(key)
	if v == nil {
		return false
	}
	if v.Count > 1 {
		v.Count--
		return true
	}

	if node.Leaf {
		removeKeyAt(node, indexOfKey(node, v))
		e.queue.Delete(v)
		if len(node.Keys) == 0 {
			e.rebalanceFromEmptyLeaf(node)
		}
		return true
	}

	emptyLeaf := e.replaceWithLeafCandidate(v, node)
	if emptyLeaf != nil {
		e.rebalanceFromEmptyLeaf(emptyLeaf)
	}
	return true
}

// replaceWithLeafCandidate implements the internal-node delete case
// (§4.D case D2): v sits in an internal node, so it is swapped for a
// leaf key adjacent to it in sorted order (its predecessor or
// successor in the queue), which is always safe to remove from a
// leaf directly. It returns the leaf that donated the replacement, if
// that leaf is now empty and needs rebalancing, or nil if the donor
// leaf still holds keys.
//
// Per this module's resolution of the "replace-with-leaf-candidate
// tie-break" question: the predecessor donor is always preferred over
// the successor donor when both qualify, and it is used even when
// it's the only option left with exactly one key (never an ambiguous
// rank comparison).
func (e *Engine[K]) replaceWithLeafCandidate(v *containers.ValueNode[K], node *TreeNode[K]) *TreeNode[K] {
	var predNode, succNode *TreeNode[K]
	pred, succ := v.Prev, v.Next
	if pred != nil {
		_, predNode = e.Search(pred.Key)
	}
	if succ != nil {
		_, succNode = e.Search(succ.Key)
	}

	donate := func(donor *containers.ValueNode[K], donorNode *TreeNode[K]) {
		node.Keys[indexOfKey(node, v)] = donor
		removeKeyAt(donorNode, indexOfKey(donorNode, donor))
		e.queue.Delete(v)
	}

	switch {
	case predNode != nil && len(predNode.Keys) > 1:
		donate(pred, predNode)
		return nil
	case succNode != nil && len(succNode.Keys) > 1:
		donate(succ, succNode)
		return nil
	case predNode != nil:
		donate(pred, predNode)
		return predNode
	case succNode != nil:
		donate(succ, succNode)
		return succNode
	default:
		panic(fmt.Errorf("asa: internal node key has neither predecessor nor successor leaf"))
	}
}

// rebalanceFromEmptyLeaf restores the tree's shape invariants after a
// leaf E has dropped to zero keys, following the R1/R2/R3 ladder:
// borrow a key from an adjacent sibling, else absorb a separator into
// an adjacent sibling when the parent can spare one, else collapse E
// and its sibling into their parent and rebalance that level instead.
func (e *Engine[K]) rebalanceFromEmptyLeaf(E *TreeNode[K]) {
	parent := E.Parent
	if parent == nil {
		// E was the root; the tree is now empty.
		e.root = nil
		return
	}
	if e.borrowFromSibling(E) {
		return
	}
	if e.parentAbsorption(E) {
		return
	}
	collapsed := e.collapse(E)
	if collapsed.Parent == nil {
		return
	}
	e.rebalanceCascade(collapsed)
}

// borrowFromSibling is rebalancing case R1: if an adjacent sibling of
// E holds more than the minimum number of keys, rotate one key
// through the parent separator into E.
func (e *Engine[K]) borrowFromSibling(E *TreeNode[K]) bool {
	parent := E.Parent
	emptyIdx := indexOfChild(parent, E)
	for _, candIdx := range adjacentIndices(emptyIdx, len(parent.Children)) {
		candidate := parent.Children[candIdx]
		if len(candidate.Keys) <= 1 {
			continue
		}
		fromLeft := candIdx < emptyIdx
		var drawn *containers.ValueNode[K]
		if fromLeft {
			drawn = candidate.Keys[len(candidate.Keys)-1]
			candidate.Keys = candidate.Keys[:len(candidate.Keys)-1]
		} else {
			drawn = candidate.Keys[0]
			candidate.Keys = candidate.Keys[1:]
		}
		sepIdx := min(candIdx, emptyIdx)
		sep := parent.Keys[sepIdx]
		parent.Keys[sepIdx] = drawn
		E.Keys = append(E.Keys, sep)
		return true
	}
	return false
}

// parentAbsorption is rebalancing case R2: when both of E's siblings
// hold exactly the minimum number of keys but the parent has a spare
// separator (2 keys, 3 children), the separator next to E is pushed
// down into the other sibling and E is dropped from the parent
// outright.
func (e *Engine[K]) parentAbsorption(E *TreeNode[K]) bool {
	parent := E.Parent
	if len(parent.Keys) != 2 {
		return false
	}
	switch indexOfChild(parent, E) {
	case 1:
		left := parent.Children[0]
		left.Keys = append(left.Keys, parent.Keys[0])
		parent.Keys = parent.Keys[1:]
	case 0:
		mid := parent.Children[1]
		mid.Keys = insertKeyAt(mid.Keys, 0, parent.Keys[0])
		parent.Keys = parent.Keys[1:]
	default: // 2
		mid := parent.Children[1]
		mid.Keys = append(mid.Keys, parent.Keys[1])
		parent.Keys = parent.Keys[:1]
	}
	parent.Children = removeChild(parent.Children, E)
	return true
}

// collapse is rebalancing case R3's first step: when the parent has
// only the minimum one key and E's one sibling also has only the
// minimum one key, both keys merge into the parent itself, which
// becomes a 2-key leaf one level higher than before. The caller must
// still check whether that shrinks the tree's height, which
// rebalanceCascade handles.
func (e *Engine[K]) collapse(E *TreeNode[K]) *TreeNode[K] {
	parent := E.Parent
	eIdx := indexOfChild(parent, E)
	sibling := parent.Children[1-eIdx]
	if len(parent.Keys) != 1 || len(sibling.Keys) != 1 {
		panic(fmt.Errorf("asa: collapse invariant violated: parent has %d key(s), sibling has %d key(s)", len(parent.Keys), len(sibling.Keys)))
	}
	if eIdx == 0 {
		// E was the left child; its sibling (the right child) sorts
		// after the parent's existing separator.
		parent.Keys = append(parent.Keys, sibling.Keys[0])
	} else {
		parent.Keys = insertKeyAt(parent.Keys, 0, sibling.Keys[0])
	}
	parent.Children = nil
	parent.Leaf = true
	return parent
}

// rebalanceCascade restores balance one level up after collapse
// shrank a subtree's height by one: it first tries to borrow a child
// from an adjacent, richer uncle (wrapping c one level deeper to
// match), and failing that merges c into an adjacent uncle, which may
// shrink the tree's height again and require recursing further up.
func (e *Engine[K]) rebalanceCascade(c *TreeNode[K]) {
	if e.borrowFromUncle(c) {
		return
	}
	next := e.joinWithUncle(c)
	if next != nil {
		e.rebalanceCascade(next)
	}
}

func (e *Engine[K]) borrowFromUncle(c *TreeNode[K]) bool {
	parent := c.Parent
	cIdx := indexOfChild(parent, c)
	for _, candIdx := range adjacentIndices(cIdx, len(parent.Children)) {
		candidate := parent.Children[candIdx]
		if len(candidate.Keys) <= 1 {
			continue
		}
		fromLeft := candIdx < cIdx
		var drawn *containers.ValueNode[K]
		var movedChild *TreeNode[K]
		if fromLeft {
			drawn = candidate.Keys[len(candidate.Keys)-1]
			candidate.Keys = candidate.Keys[:len(candidate.Keys)-1]
			movedChild = candidate.Children[len(candidate.Children)-1]
			candidate.Children = candidate.Children[:len(candidate.Children)-1]
		} else {
			drawn = candidate.Keys[0]
			candidate.Keys = candidate.Keys[1:]
			movedChild = candidate.Children[0]
			candidate.Children = candidate.Children[1:]
		}
		sepIdx := min(candIdx, cIdx)
		sep := parent.Keys[sepIdx]
		parent.Keys[sepIdx] = drawn

		wrapper := &TreeNode[K]{Parent: parent, Keys: []*containers.ValueNode[K]{sep}}
		parent.Children[cIdx] = wrapper
		c.Parent = wrapper
		movedChild.Parent = wrapper
		if fromLeft {
			wrapper.Children = []*TreeNode[K]{movedChild, c}
		} else {
			wrapper.Children = []*TreeNode[K]{c, movedChild}
		}
		return true
	}
	return false
}

// joinWithUncle merges c into its one remaining sibling under parent,
// pulling the separator between them down as the merge point. If
// parent is left with no keys of its own, it has become redundant and
// is spliced out of the tree (or, if parent was the root, the merged
// sibling becomes the new root); in that case the caller must keep
// rebalancing from the node that took parent's place.
func (e *Engine[K]) joinWithUncle(c *TreeNode[K]) *TreeNode[K] {
	parent := c.Parent
	reducedIdx := indexOfChild(parent, c)

	var siblingIdx, parentKeyIdx int
	switch reducedIdx {
	case 0:
		siblingIdx, parentKeyIdx = 1, 0
	case 1:
		siblingIdx, parentKeyIdx = 0, 0
	default:
		siblingIdx, parentKeyIdx = 1, 1
	}
	insertAtEnd := reducedIdx > siblingIdx
	sibling := parent.Children[siblingIdx]
	sep := parent.Keys[parentKeyIdx]
	parent.Children = removeChild(parent.Children, c)
	parent.Keys = append(parent.Keys[:parentKeyIdx], parent.Keys[parentKeyIdx+1:]...)

	c.Parent = sibling
	if insertAtEnd {
		sibling.Keys = append(sibling.Keys, sep)
		sibling.Children = append(sibling.Children, c)
	} else {
		sibling.Keys = insertKeyAt(sibling.Keys, 0, sep)
		sibling.Children = insertChildAt(sibling.Children, 0, c)
	}

	if len(parent.Keys) > 0 {
		return nil
	}

	grandparent := parent.Parent
	if grandparent == nil {
		e.root = sibling
		sibling.Parent = nil
		return nil
	}
	parentIdx := indexOfChild(grandparent, parent)
	grandparent.Children[parentIdx] = sibling
	sibling.Parent = grandparent
	return sibling
}
