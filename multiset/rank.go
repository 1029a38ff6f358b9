package multiset

import (
	"github.com/npillmayer/sumtree"
)

// Min returns the smallest element.
//
// ok is false for an empty multiset.
func (m MultiSet[T]) Min() (T, bool) {
	var zero T
	if m.tree == nil {
		return zero, false
	}
	rec, ok := m.tree.First()
	if !ok {
		return zero, false
	}
	return rec.value, true
}

// Max returns the largest element.
//
// ok is false for an empty multiset.
func (m MultiSet[T]) Max() (T, bool) {
	var zero T
	if m.tree == nil {
		return zero, false
	}
	rec, ok := m.tree.Last()
	if !ok {
		return zero, false
	}
	return rec.value, true
}

// KthSmallest returns the k-th smallest element counting duplicates, with
// k counting from 1: for a multiset {a a b}, ranks 1 and 2 are a and rank
// 3 is b.
//
// ok is false for ranks outside 1…Len(); out-of-range ranks are never
// clamped to the nearest element.
func (m MultiSet[T]) KthSmallest(k int) (T, bool) {
	var zero T
	if k < 1 || k > m.Len() {
		return zero, false
	}
	cursor, err := sumtree.NewCursor(m.tree, cardDimension[T]{})
	assert(err == nil, "KthSmallest: cannot open cursor")
	index, _, err := cursor.Seek(k)
	assert(err == nil, "KthSmallest: seek failed")
	rec, err := m.tree.At(index)
	assert(err == nil, "KthSmallest: rank position out of range")
	return rec.value, true
}

// KthLargest returns the k-th largest element counting duplicates.
// KthLargest(k) equals KthSmallest(Len()-k+1).
//
// ok is false for ranks outside 1…Len().
func (m MultiSet[T]) KthLargest(k int) (T, bool) {
	if k < 1 || k > m.Len() {
		var zero T
		return zero, false
	}
	return m.KthSmallest(m.Len() - k + 1)
}

// KthSmallestDistinct returns the k-th smallest distinct value. Every
// value counts once here, however often it occurs.
//
// ok is false for ranks outside 1…UniqueLen().
func (m MultiSet[T]) KthSmallestDistinct(k int) (T, bool) {
	var zero T
	if k < 1 || k > m.UniqueLen() {
		return zero, false
	}
	rec, err := m.tree.At(k - 1)
	assert(err == nil, "KthSmallestDistinct: rank escaped its bounds check")
	return rec.value, true
}

// KthLargestDistinct returns the k-th largest distinct value.
//
// ok is false for ranks outside 1…UniqueLen().
func (m MultiSet[T]) KthLargestDistinct(k int) (T, bool) {
	if k < 1 || k > m.UniqueLen() {
		var zero T
		return zero, false
	}
	return m.KthSmallestDistinct(m.UniqueLen() - k + 1)
}
