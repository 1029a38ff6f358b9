package sumtree

// FromItems builds a tree from items in a single bottom-up pass.
//
// The resulting sequence equals inserting the items left to right, but
// construction costs O(n) instead of O(n log n). Summaries and cached sizes
// are computed while the levels are assembled.
func FromItems[I SummarizedItem[S], S any](cfg Config[S], items []I) (*Tree[I, S], error) {
	tree, err := New[I, S](cfg)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return tree, nil
	}
	level := make([]treeNode[I, S], 0, (len(items)+MaxLeafItems-1)/MaxLeafItems)
	pos := 0
	for _, count := range splitCounts(len(items), MaxLeafItems) {
		level = append(level, tree.makeLeaf(items[pos:pos+count]))
		pos += count
	}
	height := 1
	for len(level) > 1 {
		parents := make([]treeNode[I, S], 0, (len(level)+MaxChildren-1)/MaxChildren)
		pos = 0
		for _, count := range splitCounts(len(level), MaxChildren) {
			parents = append(parents, tree.makeInternal(level[pos:pos+count]...))
			pos += count
		}
		level = parents
		height++
	}
	tree.root = level[0]
	tree.height = height
	return tree, nil
}

// splitCounts partitions n into the smallest number of groups of at most max,
// sized as evenly as possible.
//
// Even sizing keeps every group at or above half of max whenever more than
// one group is needed, which satisfies the occupancy bounds for non-root
// nodes.
func splitCounts(n, max int) []int {
	assert(n > 0, "splitCounts requires a positive item count")
	assert(max > 1, "splitCounts requires a group capacity above 1")
	groups := (n + max - 1) / max
	counts := make([]int, groups)
	base := n / groups
	rest := n % groups
	for i := range counts {
		counts[i] = base
		if i < rest {
			counts[i]++
		}
	}
	return counts
}
