package multiset

import (
	"cmp"

	"github.com/npillmayer/sumtree"
)

// Union returns the additive union of a and b: each value occurs the sum
// of its occurrences in both, so Union(a, b).Len() is a.Len() + b.Len().
func Union[T cmp.Ordered](a, b MultiSet[T]) MultiSet[T] {
	at, err := treeFromSet(a)
	assert(err == nil, "Union: cannot materialize tree")
	bt, err := treeFromSet(b)
	assert(err == nil, "Union: cannot materialize tree")
	out, err := sumtree.UnionWith(at, bt, keyOrder[T](), func(left, right record[T]) (record[T], bool) {
		return changeMult(func(n int) int { return n + right.mult }, left)
	})
	assert(err == nil, "Union: merge failed")
	return setFromTree(out)
}

// MaxUnion returns the union of a and b with each value occurring the
// maximum of its occurrences in both. Together with Intersection it obeys
// the inclusion/exclusion identity
//
//	MaxUnion(a, b).Len() + Intersection(a, b).Len() == a.Len() + b.Len()
func MaxUnion[T cmp.Ordered](a, b MultiSet[T]) MultiSet[T] {
	at, err := treeFromSet(a)
	assert(err == nil, "MaxUnion: cannot materialize tree")
	bt, err := treeFromSet(b)
	assert(err == nil, "MaxUnion: cannot materialize tree")
	out, err := sumtree.UnionWith(at, bt, keyOrder[T](), func(left, right record[T]) (record[T], bool) {
		return changeMult(func(n int) int { return max(n, right.mult) }, left)
	})
	assert(err == nil, "MaxUnion: merge failed")
	return setFromTree(out)
}

// Intersection returns the intersection of a and b: each value occurs the
// minimum of its occurrences in both, values missing from either side drop.
func Intersection[T cmp.Ordered](a, b MultiSet[T]) MultiSet[T] {
	at, err := treeFromSet(a)
	assert(err == nil, "Intersection: cannot materialize tree")
	bt, err := treeFromSet(b)
	assert(err == nil, "Intersection: cannot materialize tree")
	out, err := sumtree.IntersectionWith(at, bt, keyOrder[T](), func(left, right record[T]) (record[T], bool) {
		return changeMult(func(n int) int { return min(n, right.mult) }, left)
	})
	assert(err == nil, "Intersection: merge failed")
	return setFromTree(out)
}

// Difference returns the difference of a and b: occurrences in b cancel
// occurrences in a, and values with no remaining occurrence drop.
func Difference[T cmp.Ordered](a, b MultiSet[T]) MultiSet[T] {
	at, err := treeFromSet(a)
	assert(err == nil, "Difference: cannot materialize tree")
	bt, err := treeFromSet(b)
	assert(err == nil, "Difference: cannot materialize tree")
	out, err := sumtree.DifferenceWith(at, bt, keyOrder[T](), func(left, right record[T]) (record[T], bool) {
		return changeMult(func(n int) int { return n - right.mult }, left)
	})
	assert(err == nil, "Difference: merge failed")
	return setFromTree(out)
}

// Disjoint reports whether a and b share no value.
func Disjoint[T cmp.Ordered](a, b MultiSet[T]) bool {
	at, err := treeFromSet(a)
	assert(err == nil, "Disjoint: cannot materialize tree")
	bt, err := treeFromSet(b)
	assert(err == nil, "Disjoint: cannot materialize tree")
	ok, err := sumtree.Disjoint(at, bt, keyOrder[T]())
	assert(err == nil, "Disjoint: comparison failed")
	return ok
}

// SubsetOf reports whether a is contained in b: every value of a occurs
// in b at least as often as in a.
func SubsetOf[T cmp.Ordered](a, b MultiSet[T]) bool {
	if a.Len() > b.Len() {
		return false
	}
	at, err := treeFromSet(a)
	assert(err == nil, "SubsetOf: cannot materialize tree")
	bt, err := treeFromSet(b)
	assert(err == nil, "SubsetOf: cannot materialize tree")
	ok, err := sumtree.SubsetOf(at, bt, keyOrder[T](), func(left, right record[T]) bool {
		return left.mult <= right.mult
	})
	assert(err == nil, "SubsetOf: comparison failed")
	return ok
}

// SupersetOf reports whether a contains b. It is SubsetOf with the
// operands flipped.
func SupersetOf[T cmp.Ordered](a, b MultiSet[T]) bool {
	return SubsetOf(b, a)
}

// Equal reports whether a and b hold exactly the same values with the
// same multiplicities. Equality is decided by content, never by tree
// structure: differently built multisets with equal content compare equal.
// Equal sizes make a single containment pass sufficient.
func Equal[T cmp.Ordered](a, b MultiSet[T]) bool {
	if a.Len() != b.Len() || a.UniqueLen() != b.UniqueLen() {
		return false
	}
	return SubsetOf(a, b)
}
