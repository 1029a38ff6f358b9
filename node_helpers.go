package sumtree

// makeLeaf materializes a new leaf from a copy of items and computes its
// summary.
func (t *Tree[I, S]) makeLeaf(items []I) *leafNode[I, S] {
	leaf := &leafNode[I, S]{
		items: append([]I(nil), items...),
	}
	leaf.summary = t.cfg.Monoid.Zero()
	for _, item := range leaf.items {
		leaf.summary = t.cfg.Monoid.Add(leaf.summary, item.Summary())
	}
	return leaf
}

// makeInternal materializes a new inner node and computes its summary and
// cached subtree size from the children.
func (t *Tree[I, S]) makeInternal(children ...treeNode[I, S]) *innerNode[I, S] {
	inner := &innerNode[I, S]{
		children: append([]treeNode[I, S](nil), children...),
	}
	inner.summary = t.cfg.Monoid.Zero()
	for _, child := range inner.children {
		inner.summary = t.cfg.Monoid.Add(inner.summary, child.Summary())
		inner.size += child.itemCount()
	}
	return inner
}
