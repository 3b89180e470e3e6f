// Package asa implements the Aggregating Sorted Associative structure:
// a 2-3 tree (B-tree of minimum degree 1) whose leaves and internal
// keys are shared Value Nodes of a containers.SortedQueue, giving
// O(log n) insert/search/delete alongside O(1) min/max and O(n)
// sum/mean/median over the same key set.
package asa

import (
	"fmt"

	"github.com/MaciejGeldon/agds/lib/containers"
)

// t is the tree's fixed minimum degree: every non-root node holds
// between t and 2t keys (1-2 keys, 2-3 children when internal), and
// splits at 2t+1 keys. The structure is not generalized to other
// degrees; see the module notes on scope.
const t = 1

// TreeNode is a node of the 2-3 tree. Its Keys are shared
// *containers.ValueNode[K] pointers: the same node a caller holds
// after Insert also threads through the SortedQueue, so tree
// rebalancing never has to touch queue order and queue deletion never
// has to touch tree shape.
type TreeNode[K containers.Ordered[K]] struct {
	Parent   *TreeNode[K]
	Keys     []*containers.ValueNode[K]
	Children []*TreeNode[K]
	Leaf     bool
}

// Overflow reports whether node has accumulated one key more than the
// maximum (2t), the transient state Insert corrects by splitting.
func (n *TreeNode[K]) Overflow() bool {
	return len(n.Keys) >= 2*t+1
}

// AddPromoted inserts a key promoted from a child split into an
// internal node's Keys in sorted position. It does not touch
// Children; the caller splices the new child in separately.
func (n *TreeNode[K]) AddPromoted(v *containers.ValueNode[K]) {
	idx := len(n.Keys)
	for i, k := range n.Keys {
		if v.Key.Cmp(k.Key) < 0 {
			idx = i
			break
		}
	}
	n.Keys = insertKeyAt(n.Keys, idx, v)
}

// AddNew inserts key into a leaf, creating its containers.ValueNode
// and threading it into queue at the correct sorted position, or
// bumping an existing node's multiplicity if key is already present.
//
// It is invalid (runtime-panic) to call AddNew on a non-leaf.
func (n *TreeNode[K]) AddNew(key K, queue *containers.SortedQueue[K]) *containers.ValueNode[K] {
	if !n.Leaf {
		panic(fmt.Errorf("asa.TreeNode.AddNew: called on a non-leaf"))
	}
	if len(n.Keys) == 0 {
		v := queue.AddFirst(key)
		n.Keys = append(n.Keys, v)
		return v
	}
	for _, k := range n.Keys {
		if key.Cmp(k.Key) == 0 {
			k.Count++
			return k
		}
	}
	idx := len(n.Keys)
	for i, k := range n.Keys {
		if key.Cmp(k.Key) < 0 {
			idx = i
			break
		}
	}
	var anchor *containers.ValueNode[K]
	if idx < len(n.Keys) {
		anchor = n.Keys[idx]
	} else {
		anchor = n.Keys[idx-1]
	}
	v := queue.AddNeighbour(key, anchor)
	n.Keys = insertKeyAt(n.Keys, idx, v)
	return v
}

// split breaks an overflowing (2t+1 = 3 key) node into two siblings
// of t keys each plus the single key promoted to the parent, per the
// deterministic three-way split every B-tree of this degree performs.
//
// It is invalid (runtime-panic) to call split on a node that isn't
// overflowing.
func split[K containers.Ordered[K]](node *TreeNode[K]) (promoted *containers.ValueNode[K], left, right *TreeNode[K]) {
	if len(node.Keys) != 2*t+1 {
		panic(fmt.Errorf("asa: split called on a node with %d keys, want %d", len(node.Keys), 2*t+1))
	}
	left = &TreeNode[K]{Leaf: node.Leaf}
	right = &TreeNode[K]{Leaf: node.Leaf}

	promoted = node.Keys[t]
	left.Keys = append([]*containers.ValueNode[K]{}, node.Keys[:t]...)
	right.Keys = append([]*containers.ValueNode[K]{}, node.Keys[t+1:]...)

	if !node.Leaf {
		left.Children = append([]*TreeNode[K]{}, node.Children[:t+1]...)
		for _, c := range left.Children {
			c.Parent = left
		}
		right.Children = append([]*TreeNode[K]{}, node.Children[t+1:]...)
		for _, c := range right.Children {
			c.Parent = right
		}
	}
	return promoted, left, right
}

func insertKeyAt[K containers.Ordered[K]](keys []*containers.ValueNode[K], idx int, key *containers.ValueNode[K]) []*containers.ValueNode[K] {
	keys = append(keys, nil)
	copy(keys[idx+1:], keys[idx:])
	keys[idx] = key
	return keys
}

func insertChildAt[K containers.Ordered[K]](children []*TreeNode[K], idx int, child *TreeNode[K]) []*TreeNode[K] {
	children = append(children, nil)
	copy(children[idx+1:], children[idx:])
	children[idx] = child
	return children
}

func removeChild[K containers.Ordered[K]](children []*TreeNode[K], target *TreeNode[K]) []*TreeNode[K] {
	for i, c := range children {
		if c == target {
			return append(children[:i], children[i+1:]...)
		}
	}
	panic(fmt.Errorf("asa: child %p not found among parent.Children", target))
}

func indexOfChild[K containers.Ordered[K]](parent, child *TreeNode[K]) int {
	for i, c := range parent.Children {
		if c == child {
			return i
		}
	}
	panic(fmt.Errorf("asa: child %p not found among parent.Children", child))
}

func indexOfKey[K containers.Ordered[K]](node *TreeNode[K], v *containers.ValueNode[K]) int {
	for i, k := range node.Keys {
		if k == v {
			return i
		}
	}
	panic(fmt.Errorf("asa: key %p not found among node.Keys", v))
}

func removeKeyAt[K containers.Ordered[K]](node *TreeNode[K], idx int) {
	node.Keys = append(node.Keys[:idx], node.Keys[idx+1:]...)
}

// adjacentIndices returns the valid sibling indices immediately next
// to idx in a slice of length n, predecessor first.
func adjacentIndices(idx, n int) []int {
	var out []int
	if idx-1 >= 0 {
		out = append(out, idx-1)
	}
	if idx+1 < n {
		out = append(out, idx+1)
	}
	return out
}
