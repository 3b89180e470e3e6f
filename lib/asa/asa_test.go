package asa

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MaciejGeldon/agds/lib/containers"
)

func ins(e *Engine[containers.NumericKey[int]], v int) {
	e.Insert(containers.NumericKey[int]{Val: v})
}

func del(e *Engine[containers.NumericKey[int]], v int) bool {
	return e.Delete(containers.NumericKey[int]{Val: v})
}

// keysOf returns the int values of a node's Keys, for shape assertions.
func keysOf(node *TreeNode[containers.NumericKey[int]]) []int {
	out := make([]int, len(node.Keys))
	for i, k := range node.Keys {
		out[i] = k.Key.Val
	}
	return out
}

// iterOf collects every distinct key, ascending, by walking the queue.
func iterOf(e *Engine[containers.NumericKey[int]]) []int {
	var out []int
	it := e.Iterate()
	for node, ok := it.Next(); ok; node, ok = it.Next() {
		out = append(out, node.Key.Val)
	}
	return out
}

// checkInvariants re-verifies P1/P3/P4/P5 from scratch against a
// reference multiset built from insert/delete counts.
func checkInvariants(t *testing.T, e *Engine[containers.NumericKey[int]], want map[int]int) {
	t.Helper()

	// P1: sortedness.
	got := iterOf(e)
	for i := 1; i < len(got); i++ {
		require.Less(t, got[i-1], got[i], "queue not strictly ascending: %v", got)
	}

	// P2/P3: every expected key appears with the right multiplicity,
	// and is reachable identically from both tree and queue.
	gotCounts := map[int]int{}
	it := e.Iterate()
	for node, ok := it.Next(); ok; node, ok = it.Next() {
		gotCounts[node.Key.Val] = node.Count
		v, treeNode := e.Search(node.Key)
		require.Same(t, node, v, "queue node for %d not reachable via search", node.Key.Val)
		require.Contains(t, treeNode.Keys, node)
	}
	require.Equal(t, want, gotCounts)

	if e.root == nil {
		return
	}

	// P4: equal leaf depth. P5: node occupancy.
	var depths []int
	var walk func(node *TreeNode[containers.NumericKey[int]], depth int, isRoot bool)
	walk = func(node *TreeNode[containers.NumericKey[int]], depth int, isRoot bool) {
		if isRoot {
			require.True(t, len(node.Keys) == 1 || len(node.Keys) == 2, "root has %d keys", len(node.Keys))
		} else {
			require.True(t, len(node.Keys) == 1 || len(node.Keys) == 2, "non-root node has %d keys", len(node.Keys))
		}
		if node.Leaf {
			depths = append(depths, depth)
			return
		}
		require.Equal(t, len(node.Keys)+1, len(node.Children))
		for _, c := range node.Children {
			require.Same(t, node, c.Parent)
			walk(c, depth+1, false)
		}
	}
	walk(e.root, 0, true)
	for i := range depths {
		require.Equal(t, depths[0], depths[i], "unequal leaf depths: %v", depths)
	}
}

// Scenario 1: Overflow -> two-level.
func TestOverflowTwoLevel(t *testing.T) {
	var e Engine[containers.NumericKey[int]]
	ins(&e, 5)
	ins(&e, 10)
	ins(&e, 2)

	require.Equal(t, []int{5}, keysOf(e.root))
	require.Len(t, e.root.Children, 2)
	require.Equal(t, []int{2}, keysOf(e.root.Children[0]))
	require.Equal(t, []int{10}, keysOf(e.root.Children[1]))

	min, ok := e.Min()
	require.True(t, ok)
	require.Equal(t, 2, min.Key.Val)
	max, ok := e.Max()
	require.True(t, ok)
	require.Equal(t, 10, max.Key.Val)
}

// Scenario 2: Three-level structure.
func TestThreeLevelStructure(t *testing.T) {
	var e Engine[containers.NumericKey[int]]
	for _, v := range []int{2, 9, 1, 4, 5, 3, 6, 10} {
		ins(&e, v)
	}

	require.Equal(t, []int{5}, keysOf(e.root))
	require.Len(t, e.root.Children, 2)

	left, right := e.root.Children[0], e.root.Children[1]
	require.Equal(t, []int{2}, keysOf(left))
	require.Equal(t, []int{1}, keysOf(left.Children[0]))
	require.Equal(t, []int{3, 4}, keysOf(left.Children[1]))

	require.Equal(t, []int{9}, keysOf(right))
	require.Equal(t, []int{6}, keysOf(right.Children[0]))
	require.Equal(t, []int{10}, keysOf(right.Children[1]))

	min, _ := e.Min()
	max, _ := e.Max()
	require.Equal(t, 1, min.Key.Val)
	require.Equal(t, 10, max.Key.Val)

	sum, ok := Sum(&e)
	require.True(t, ok)
	require.Equal(t, 40, sum.Val)

	mean, ok := Mean(&e)
	require.True(t, ok)
	require.Equal(t, 5.0, mean)

	median, ok := Median(&e)
	require.True(t, ok)
	require.Equal(t, 4.5, median)
}

// Scenario 3: Duplicates collapse.
func TestDuplicatesCollapse(t *testing.T) {
	var e Engine[containers.NumericKey[float64]]
	for _, v := range []float64{5.1, 4.9, 4.7, 4.6, 5.0, 5.4, 4.6, 5.0, 4.4, 4.9, 5.4} {
		e.Insert(containers.NumericKey[float64]{Val: v})
	}

	type kc struct {
		k float64
		c int
	}
	want := []kc{{4.4, 1}, {4.6, 2}, {4.7, 1}, {4.9, 2}, {5.0, 2}, {5.1, 1}, {5.4, 2}}
	var got []kc
	it := e.Iterate()
	for node, ok := it.Next(); ok; node, ok = it.Next() {
		got = append(got, kc{node.Key.Val, node.Count})
	}
	require.Equal(t, want, got)
}

// Scenario 4: Replace-with-leaf-candidate.
func TestReplaceWithLeafCandidate(t *testing.T) {
	var e Engine[containers.NumericKey[float64]]
	for v := 0; v <= 12; v++ {
		e.Insert(containers.NumericKey[float64]{Val: float64(v)})
	}
	e.Insert(containers.NumericKey[float64]{Val: 6.5})

	sevenVal, sevenNode := e.Search(containers.NumericKey[float64]{Val: 7})
	require.NotNil(t, sevenVal)
	require.False(t, sevenNode.Leaf, "scenario assumes 7 sits in an internal node before deletion")

	_, donorLeaf := e.Search(containers.NumericKey[float64]{Val: 6.5})
	require.True(t, donorLeaf.Leaf)
	donorKeysBefore := len(donorLeaf.Keys)

	require.True(t, e.Delete(containers.NumericKey[float64]{Val: 7}))

	require.Nil(t, func() *containers.ValueNode[containers.NumericKey[float64]] {
		v, _ := e.Search(containers.NumericKey[float64]{Val: 7})
		return v
	}())

	v, node := e.Search(containers.NumericKey[float64]{Val: 6.5})
	require.NotNil(t, v)
	require.False(t, node.Leaf, "6.5 should have been promoted out of its leaf")
	require.Equal(t, donorKeysBefore-1, len(donorLeaf.Keys))

	want := map[float64]int{}
	for v := 0.0; v <= 12; v++ {
		want[v] = 1
	}
	want[6.5] = 1
	delete(want, 7)
	got := map[float64]int{}
	it := e.Iterate()
	for n, ok := it.Next(); ok; n, ok = it.Next() {
		got[n.Key.Val] = n.Count
	}
	require.Equal(t, want, got)
}

// Scenario 5: Parent absorption. Inserting [0..4] builds root.keys =
// [1,3] with leaves [0],[2],[4]; deleting 0 empties the leftmost leaf,
// no sibling has a spare key to rotate (R1), but the parent has a
// spare separator (R2): the [1] separator drops into the middle leaf
// and the empty leaf is dropped from root.Children outright, leaving
// a two-child root.
func TestParentAbsorption(t *testing.T) {
	var e Engine[containers.NumericKey[int]]
	for v := 0; v <= 4; v++ {
		ins(&e, v)
	}
	require.True(t, del(&e, 0))

	require.Equal(t, []int{1, 2, 3, 4}, iterOf(&e))
	require.Len(t, e.root.Keys, 1)
	require.Len(t, e.root.Children, 2)

	var vals []int
	vals = append(vals, keysOf(e.root.Children[0])...)
	vals = append(vals, e.root.Keys[0].Key.Val)
	vals = append(vals, keysOf(e.root.Children[1])...)
	require.Equal(t, []int{1, 2, 3, 4}, vals)

	checkInvariants(t, &e, map[int]int{1: 1, 2: 1, 3: 1, 4: 1})
}

// Scenario 6: Recursive merge to root.
func TestRecursiveMergeToRoot(t *testing.T) {
	var e Engine[containers.NumericKey[int]]
	for v := 0; v <= 14; v++ {
		ins(&e, v)
	}
	require.True(t, del(&e, 12))

	require.Equal(t, []int{3, 7}, keysOf(e.root))

	want := map[int]int{}
	for v := 0; v <= 14; v++ {
		if v != 12 {
			want[v] = 1
		}
	}
	checkInvariants(t, &e, want)
}

// Supplemental scenario (SPEC_FULL §C): deleting down to a single
// element collapses the tree to a single leaf root.
func TestDeleteDownToOneElement(t *testing.T) {
	var e Engine[containers.NumericKey[int]]
	ins(&e, 1)
	ins(&e, 2)
	ins(&e, 3)

	require.True(t, del(&e, 1))
	require.True(t, del(&e, 2))

	require.True(t, e.root.Leaf)
	require.Equal(t, []int{3}, keysOf(e.root))
	require.Equal(t, []int{3}, iterOf(&e))

	require.True(t, del(&e, 3))
	require.Nil(t, e.root)
	require.Equal(t, 0, e.Len())
}

// Supplemental scenario (SPEC_FULL §C): median on an even-count,
// duplicate-heavy multiset.
func TestMedianEvenDuplicateHeavy(t *testing.T) {
	var e Engine[containers.NumericKey[int]]
	// multiset {1,1,1,2,2,3,3,3}: total weight 8, so the median
	// averages the 4th and 5th order statistics (both 2).
	for _, v := range []int{1, 1, 1, 2, 2, 3, 3, 3} {
		ins(&e, v)
	}
	median, ok := Median(&e)
	require.True(t, ok)
	require.Equal(t, 2.0, median)
}

func TestEmptyEngineAggregatesAreNone(t *testing.T) {
	var e Engine[containers.NumericKey[int]]
	_, ok := e.Min()
	require.False(t, ok)
	_, ok = e.Max()
	require.False(t, ok)
	_, ok = Sum(&e)
	require.False(t, ok)
	_, ok = Mean(&e)
	require.False(t, ok)
	_, ok = Median(&e)
	require.False(t, ok)
	require.False(t, e.Delete(containers.NumericKey[int]{Val: 1}))
	v, node := e.Search(containers.NumericKey[int]{Val: 1})
	require.Nil(t, v)
	require.Nil(t, node)
}

func TestSingleKeyAllDuplicates(t *testing.T) {
	var e Engine[containers.NumericKey[int]]
	for i := 0; i < 5; i++ {
		ins(&e, 42)
	}
	require.Equal(t, 1, e.Len())
	median, ok := Median(&e)
	require.True(t, ok)
	require.Equal(t, 42.0, median)

	require.True(t, del(&e, 42))
	require.True(t, del(&e, 42))
	require.Equal(t, 1, e.Len())
	v, _ := e.Search(containers.NumericKey[int]{Val: 42})
	require.Equal(t, 3, v.Count)
}

func TestStrictlyIncreasingThenDecreasingDeletes(t *testing.T) {
	var e Engine[containers.NumericKey[int]]
	for v := 0; v < 30; v++ {
		ins(&e, v)
	}
	want := map[int]int{}
	for v := 0; v < 30; v++ {
		want[v] = 1
	}
	checkInvariants(t, &e, want)

	for v := 29; v >= 0; v-- {
		require.True(t, del(&e, v))
		delete(want, v)
		checkInvariants(t, &e, want)
	}
	require.Nil(t, e.root)
}

func TestStrictlyDecreasingInsertInterleavedDeletes(t *testing.T) {
	var e Engine[containers.NumericKey[int]]
	want := map[int]int{}
	for v := 29; v >= 0; v-- {
		ins(&e, v)
		want[v] = 1
		if v%3 == 0 && v != 29 {
			victim := v + 1
			if _, present := want[victim]; present {
				require.True(t, del(&e, victim))
				delete(want, victim)
			}
		}
		checkInvariants(t, &e, want)
	}
}

// Strings are a valid key domain for insert/search/delete, but cannot
// be summed or averaged: containers.Ordered is enough for the Engine
// itself, and Sum/Mean/Median simply aren't callable without a
// Numeric key type, so there's nothing to assert here beyond
// insert/search/delete working.
func TestStringKeyedEngine(t *testing.T) {
	var e Engine[containers.NativeOrdered[string]]
	for _, s := range []string{"pear", "apple", "banana"} {
		e.Insert(containers.NativeOrdered[string]{Val: s})
	}
	min, ok := e.Min()
	require.True(t, ok)
	require.Equal(t, "apple", min.Key.Val)
	max, ok := e.Max()
	require.True(t, ok)
	require.Equal(t, "pear", max.Key.Val)

	require.True(t, e.Delete(containers.NativeOrdered[string]{Val: "banana"}))
	require.False(t, e.Delete(containers.NativeOrdered[string]{Val: "banana"}))
}
