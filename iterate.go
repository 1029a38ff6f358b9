package sumtree

import "iter"

// ForEachItem walks leaf items in-order.
//
// Iteration stops early if callback returns false.
func (t *Tree[I, S]) ForEachItem(fn func(item I) bool) {
	if t == nil || t.root == nil || fn == nil {
		return
	}
	t.forEachItemNode(t.root, fn)
}

func (t *Tree[I, S]) forEachItemNode(n treeNode[I, S], fn func(item I) bool) bool {
	assert(n != nil, "forEachItemNode called with nil node")
	if n.isLeaf() {
		leaf := n.(*leafNode[I, S])
		for _, item := range leaf.items {
			if !fn(item) {
				return false
			}
		}
		return true
	}
	inner := n.(*innerNode[I, S])
	for _, child := range inner.children {
		if !t.forEachItemNode(child, fn) {
			return false
		}
	}
	return true
}

// All returns an iterator over all items in sequence order.
func (t *Tree[I, S]) All() iter.Seq[I] {
	return func(yield func(I) bool) {
		t.ForEachItem(yield)
	}
}

// Backward returns an iterator over all items in reverse sequence order.
func (t *Tree[I, S]) Backward() iter.Seq[I] {
	return func(yield func(I) bool) {
		if t == nil || t.root == nil {
			return
		}
		t.backwardNode(t.root, yield)
	}
}

func (t *Tree[I, S]) backwardNode(n treeNode[I, S], yield func(I) bool) bool {
	assert(n != nil, "backwardNode called with nil node")
	if n.isLeaf() {
		leaf := n.(*leafNode[I, S])
		for i := len(leaf.items) - 1; i >= 0; i-- {
			if !yield(leaf.items[i]) {
				return false
			}
		}
		return true
	}
	inner := n.(*innerNode[I, S])
	for i := len(inner.children) - 1; i >= 0; i-- {
		if !t.backwardNode(inner.children[i], yield) {
			return false
		}
	}
	return true
}
