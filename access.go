package sumtree

import "fmt"

// At returns the leaf item at item index.
func (t *Tree[I, S]) At(index int) (I, error) {
	var zero I
	if t == nil || t.root == nil {
		return zero, ErrIndexOutOfBounds
	}
	if index < 0 || index >= t.Len() {
		return zero, ErrIndexOutOfBounds
	}
	return t.atNode(t.root, t.height, index)
}

func (t *Tree[I, S]) atNode(n treeNode[I, S], height int, index int) (I, error) {
	var zero I
	assert(n != nil, "atNode called with nil node")
	assert(height > 0, "atNode called with non-positive height")
	if height == 1 {
		leaf := n.(*leafNode[I, S])
		if index < 0 || index >= len(leaf.items) {
			return zero, ErrIndexOutOfBounds
		}
		return leaf.items[index], nil
	}
	inner := n.(*innerNode[I, S])
	remaining := index
	for _, child := range inner.children {
		childItems := t.countItems(child)
		if remaining < childItems {
			return t.atNode(child, height-1, remaining)
		}
		remaining -= childItems
	}
	assert(false, "atNode index routing exceeded subtree size")
	return zero, ErrIndexOutOfBounds
}

// UpdateAt replaces the item at index and returns a new tree.
//
// Item counts are unchanged, so no rebalancing occurs; only summaries along
// the touched path are recomputed.
func (t *Tree[I, S]) UpdateAt(index int, item I) (*Tree[I, S], error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil tree", ErrInvalidConfig)
	}
	if index < 0 || index >= t.Len() {
		return nil, ErrIndexOutOfBounds
	}
	cloned := t.Clone()
	cloned.root = t.updateNode(t.root, t.height, index, item)
	return cloned, nil
}

func (t *Tree[I, S]) updateNode(n treeNode[I, S], height, index int, item I) treeNode[I, S] {
	assert(n != nil, "updateNode called with nil node")
	assert(height > 0, "updateNode called with non-positive height")
	if height == 1 {
		leaf := n.(*leafNode[I, S])
		assert(index >= 0 && index < len(leaf.items), "updateNode leaf index out of range")
		cloned := t.cloneLeaf(leaf)
		cloned.items[index] = item
		t.recomputeLeafSummary(cloned)
		return cloned
	}
	inner := n.(*innerNode[I, S])
	cloned := t.cloneInner(inner)
	remaining := index
	for slot, child := range cloned.children {
		childItems := t.countItems(child)
		if remaining < childItems {
			cloned.children[slot] = t.updateNode(child, height-1, remaining, item)
			t.recomputeInnerSummary(cloned)
			return cloned
		}
		remaining -= childItems
	}
	assert(false, "updateNode index routing exceeded subtree size")
	return nil
}

// PrefixSummary returns the aggregated summary of the first count items.
//
// Aggregation descends one root-to-leaf path and adds whole-subtree summaries
// along the way, so the cost is O(log n) monoid additions.
func (t *Tree[I, S]) PrefixSummary(count int) (S, error) {
	var zero S
	if t == nil {
		return zero, fmt.Errorf("%w: nil tree", ErrInvalidConfig)
	}
	if count < 0 || count > t.Len() {
		return zero, ErrIndexOutOfBounds
	}
	sum := t.cfg.Monoid.Zero()
	if count == 0 {
		return sum, nil
	}
	node := t.root
	remaining := count
	for h := t.height; h > 1; h-- {
		inner := node.(*innerNode[I, S])
		for _, child := range inner.children {
			childItems := t.countItems(child)
			if remaining >= childItems {
				sum = t.cfg.Monoid.Add(sum, child.Summary())
				remaining -= childItems
				if remaining == 0 {
					return sum, nil
				}
				continue
			}
			node = child
			break
		}
	}
	leaf := node.(*leafNode[I, S])
	assert(remaining <= len(leaf.items), "prefix routing exceeded leaf size")
	for i := range remaining {
		sum = t.cfg.Monoid.Add(sum, leaf.items[i].Summary())
	}
	return sum, nil
}
