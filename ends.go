package sumtree

// End operations specialize positional edits for the first and last item.
// Collections with queue or stack semantics use these instead of spelling out
// index arithmetic.

// First returns the first item of the sequence.
func (t *Tree[I, S]) First() (I, bool) {
	var zero I
	if t == nil || t.root == nil {
		return zero, false
	}
	n := t.root
	for !n.isLeaf() {
		inner := n.(*innerNode[I, S])
		assert(len(inner.children) > 0, "inner node must have children")
		n = inner.children[0]
	}
	leaf := n.(*leafNode[I, S])
	assert(len(leaf.items) > 0, "leaf node must have items")
	return leaf.items[0], true
}

// Last returns the last item of the sequence.
func (t *Tree[I, S]) Last() (I, bool) {
	var zero I
	if t == nil || t.root == nil {
		return zero, false
	}
	n := t.root
	for !n.isLeaf() {
		inner := n.(*innerNode[I, S])
		assert(len(inner.children) > 0, "inner node must have children")
		n = inner.children[len(inner.children)-1]
	}
	leaf := n.(*leafNode[I, S])
	assert(len(leaf.items) > 0, "leaf node must have items")
	return leaf.items[len(leaf.items)-1], true
}

// PushFirst returns a new tree with item prepended.
func (t *Tree[I, S]) PushFirst(item I) *Tree[I, S] {
	assert(t != nil, "PushFirst called on nil tree")
	cloned := t.Clone()
	err := cloned.insertOneAt(0, item)
	assert(err == nil, "push at index 0 cannot be out of bounds")
	return cloned
}

// PushLast returns a new tree with item appended.
func (t *Tree[I, S]) PushLast(item I) *Tree[I, S] {
	assert(t != nil, "PushLast called on nil tree")
	cloned := t.Clone()
	err := cloned.insertOneAt(t.Len(), item)
	assert(err == nil, "push at index Len cannot be out of bounds")
	return cloned
}

// ViewFirst returns the first item together with the tree without it.
//
// ok is false for an empty tree; the receiver is then returned unchanged.
func (t *Tree[I, S]) ViewFirst() (I, *Tree[I, S], bool) {
	var zero I
	if t == nil || t.root == nil {
		return zero, t, false
	}
	first, ok := t.First()
	assert(ok, "non-empty tree must have a first item")
	rest, err := t.DeleteAt(0)
	assert(err == nil, "delete at index 0 cannot be out of bounds")
	return first, rest, true
}

// ViewLast returns the last item together with the tree without it.
//
// ok is false for an empty tree; the receiver is then returned unchanged.
func (t *Tree[I, S]) ViewLast() (I, *Tree[I, S], bool) {
	var zero I
	if t == nil || t.root == nil {
		return zero, t, false
	}
	last, ok := t.Last()
	assert(ok, "non-empty tree must have a last item")
	rest, err := t.DeleteAt(t.Len() - 1)
	assert(err == nil, "delete at index Len-1 cannot be out of bounds")
	return last, rest, true
}
