package sumtree

import "fmt"

// Order locates records in a key-sorted tree.
//
// Dim accumulates summaries into a key bound for seeking, and Key projects a
// single record into the same key space. Both must describe the same ordering,
// and the merge operations below require their input trees to be sorted under
// it. Records with equal keys across two trees are called collisions; a
// combine callback decides what a collision merges into.
type Order[I SummarizedItem[S], S, K any] struct {
	Dim Dimension[S, K]
	Key func(item I) K
}

func (ord Order[I, S, K]) validate() error {
	if ord.Dim == nil {
		return fmt.Errorf("%w: order requires a dimension", ErrInvalidDimension)
	}
	if ord.Key == nil {
		return fmt.Errorf("%w: order requires a key projection", ErrInvalidDimension)
	}
	return nil
}

// compare orders two records by their projected keys.
func (ord Order[I, S, K]) compare(a, b I) int {
	return ord.Dim.Compare(ord.Key(a), ord.Key(b))
}

// splitAtKey splits a tree into records with keys below k and records with
// keys at or above k.
func splitAtKey[I SummarizedItem[S], S, K any](tree *Tree[I, S], ord Order[I, S, K], k K) (*Tree[I, S], *Tree[I, S], error) {
	cursor, err := NewCursor(tree, ord.Dim)
	if err != nil {
		return nil, nil, err
	}
	idx, _, err := cursor.Seek(k)
	if err != nil {
		return nil, nil, err
	}
	return tree.SplitAt(idx)
}

// UnionWith merges two key-sorted trees into one.
//
// The first tree is walked record by record; runs of the second tree between
// two walked keys are concatenated wholesale and stay shared with the input.
// For collisions, combine(left, right) supplies the merged record, or drops
// the pair when it returns false. With m = a.Len() and n = b.Len(), the cost
// is O(m log(n/m + 1)) tree operations.
func UnionWith[I SummarizedItem[S], S, K any](
	a, b *Tree[I, S],
	ord Order[I, S, K],
	combine func(left, right I) (I, bool),
) (*Tree[I, S], error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: nil tree", ErrInvalidConfig)
	}
	if err := ord.validate(); err != nil {
		return nil, err
	}
	if combine == nil {
		return nil, fmt.Errorf("%w: combine callback is required", ErrInvalidConfig)
	}
	if a.IsEmpty() {
		return b, nil
	}
	if b.IsEmpty() {
		return a, nil
	}
	out, err := New[I, S](a.cfg)
	if err != nil {
		return nil, err
	}
	rest := b
	for !a.IsEmpty() {
		head, aRest, ok := a.ViewFirst()
		assert(ok, "non-empty tree must yield a first record")
		below, atOrAbove, err := splitAtKey(rest, ord, ord.Key(head))
		if err != nil {
			return nil, err
		}
		out, err = out.Concat(below)
		if err != nil {
			return nil, err
		}
		if !atOrAbove.IsEmpty() {
			first, bRest, _ := atOrAbove.ViewFirst()
			if ord.compare(head, first) == 0 {
				merged, keep := combine(head, first)
				if keep {
					out = out.PushLast(merged)
				}
				a, rest = aRest, bRest
				continue
			}
		}
		out = out.PushLast(head)
		a, rest = aRest, atOrAbove
	}
	return out.Concat(rest)
}

// IntersectionWith keeps only collisions of two key-sorted trees.
//
// Each collision is resolved by combine(left, right); records whose key is
// missing from either tree are dropped. The first tree is the walked operand,
// as in UnionWith.
func IntersectionWith[I SummarizedItem[S], S, K any](
	a, b *Tree[I, S],
	ord Order[I, S, K],
	combine func(left, right I) (I, bool),
) (*Tree[I, S], error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: nil tree", ErrInvalidConfig)
	}
	if err := ord.validate(); err != nil {
		return nil, err
	}
	if combine == nil {
		return nil, fmt.Errorf("%w: combine callback is required", ErrInvalidConfig)
	}
	out, err := New[I, S](a.cfg)
	if err != nil {
		return nil, err
	}
	if a.IsEmpty() || b.IsEmpty() {
		return out, nil
	}
	rest := b
	for !a.IsEmpty() && !rest.IsEmpty() {
		head, aRest, ok := a.ViewFirst()
		assert(ok, "non-empty tree must yield a first record")
		_, atOrAbove, err := splitAtKey(rest, ord, ord.Key(head))
		if err != nil {
			return nil, err
		}
		if atOrAbove.IsEmpty() {
			break
		}
		first, bRest, _ := atOrAbove.ViewFirst()
		if ord.compare(head, first) == 0 {
			merged, keep := combine(head, first)
			if keep {
				out = out.PushLast(merged)
			}
			a, rest = aRest, bRest
			continue
		}
		a, rest = aRest, atOrAbove
	}
	return out, nil
}

// DifferenceWith removes the second tree's records from the first.
//
// The second tree is the walked operand here: runs of the first tree whose
// keys it never mentions survive as shared subtrees. Collisions are resolved
// by combine(left, right), which may keep an adjusted record or drop it.
func DifferenceWith[I SummarizedItem[S], S, K any](
	a, b *Tree[I, S],
	ord Order[I, S, K],
	combine func(left, right I) (I, bool),
) (*Tree[I, S], error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: nil tree", ErrInvalidConfig)
	}
	if err := ord.validate(); err != nil {
		return nil, err
	}
	if combine == nil {
		return nil, fmt.Errorf("%w: combine callback is required", ErrInvalidConfig)
	}
	if a.IsEmpty() || b.IsEmpty() {
		return a, nil
	}
	out, err := New[I, S](a.cfg)
	if err != nil {
		return nil, err
	}
	rest := a
	remove := b
	for !remove.IsEmpty() && !rest.IsEmpty() {
		bHead, bRest, ok := remove.ViewFirst()
		assert(ok, "non-empty tree must yield a first record")
		below, atOrAbove, err := splitAtKey(rest, ord, ord.Key(bHead))
		if err != nil {
			return nil, err
		}
		out, err = out.Concat(below)
		if err != nil {
			return nil, err
		}
		if atOrAbove.IsEmpty() {
			rest = atOrAbove
			break
		}
		first, aRest, _ := atOrAbove.ViewFirst()
		if ord.compare(first, bHead) == 0 {
			merged, keep := combine(first, bHead)
			if keep {
				out = out.PushLast(merged)
			}
			rest = aRest
		} else {
			rest = atOrAbove
		}
		remove = bRest
	}
	return out.Concat(rest)
}

// Disjoint reports whether two key-sorted trees share no key.
func Disjoint[I SummarizedItem[S], S, K any](a, b *Tree[I, S], ord Order[I, S, K]) (bool, error) {
	if a == nil || b == nil {
		return false, fmt.Errorf("%w: nil tree", ErrInvalidConfig)
	}
	if err := ord.validate(); err != nil {
		return false, err
	}
	if a.IsEmpty() || b.IsEmpty() {
		return true, nil
	}
	// Walk the smaller tree; disjointness is symmetric.
	if a.Len() > b.Len() {
		a, b = b, a
	}
	rest := b
	for !a.IsEmpty() && !rest.IsEmpty() {
		head, aRest, ok := a.ViewFirst()
		assert(ok, "non-empty tree must yield a first record")
		_, atOrAbove, err := splitAtKey(rest, ord, ord.Key(head))
		if err != nil {
			return false, err
		}
		if atOrAbove.IsEmpty() {
			return true, nil
		}
		first, fok := atOrAbove.First()
		assert(fok, "non-empty tree must have a first record")
		if ord.compare(head, first) == 0 {
			return false, nil
		}
		a, rest = aRest, atOrAbove
	}
	return true, nil
}

// SubsetOf reports whether every record of the first tree collides with a
// record of the second tree that admits it under within.
//
// within(left, right) is consulted once per collision, typically comparing
// record payloads such as multiplicities. A record without a collision makes
// the result false immediately.
func SubsetOf[I SummarizedItem[S], S, K any](
	a, b *Tree[I, S],
	ord Order[I, S, K],
	within func(left, right I) bool,
) (bool, error) {
	if a == nil || b == nil {
		return false, fmt.Errorf("%w: nil tree", ErrInvalidConfig)
	}
	if err := ord.validate(); err != nil {
		return false, err
	}
	if within == nil {
		return false, fmt.Errorf("%w: within callback is required", ErrInvalidConfig)
	}
	if a.IsEmpty() {
		return true, nil
	}
	// Each record of a needs its own collision in b, so record counts alone
	// can rule the subset out.
	if a.Len() > b.Len() {
		return false, nil
	}
	rest := b
	for !a.IsEmpty() {
		head, aRest, ok := a.ViewFirst()
		assert(ok, "non-empty tree must yield a first record")
		_, atOrAbove, err := splitAtKey(rest, ord, ord.Key(head))
		if err != nil {
			return false, err
		}
		if atOrAbove.IsEmpty() {
			return false, nil
		}
		first, bRest, _ := atOrAbove.ViewFirst()
		if ord.compare(head, first) != 0 {
			return false, nil
		}
		if !within(head, first) {
			return false, nil
		}
		a, rest = aRest, bRest
	}
	return true, nil
}
