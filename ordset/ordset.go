package ordset

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/npillmayer/sumtree"
)

// element wraps a single set member for storage in the summarized tree.
type element[T cmp.Ordered] struct {
	value T
}

func (e element[T]) Summary() setMeasure[T] {
	return setMeasure[T]{count: 1, max: e.value, hasMax: true}
}

// setMeasure summarizes a subtree by its element count and its largest
// member. hasMax separates the empty summary from a summary whose maximum
// happens to be the zero value of T.
type setMeasure[T cmp.Ordered] struct {
	count  int
	max    T
	hasMax bool
}

type setMonoid[T cmp.Ordered] struct{}

func (setMonoid[T]) Zero() setMeasure[T] { return setMeasure[T]{} }

func (setMonoid[T]) Add(left, right setMeasure[T]) setMeasure[T] {
	out := setMeasure[T]{count: left.count + right.count, max: left.max, hasMax: left.hasMax}
	if right.hasMax {
		out.max = right.max
		out.hasMax = true
	}
	return out
}

// keyBound is the accumulator for value-directed seeks: the largest member
// of the prefix consumed so far. An invalid bound marks the empty prefix
// and compares below every probe.
type keyBound[T cmp.Ordered] struct {
	key   T
	valid bool
}

func boundFor[T cmp.Ordered](x T) keyBound[T] {
	return keyBound[T]{key: x, valid: true}
}

// keyDimension steers seeks by member value.
type keyDimension[T cmp.Ordered] struct{}

func (keyDimension[T]) Zero() keyBound[T] { return keyBound[T]{} }

func (keyDimension[T]) Add(acc keyBound[T], s setMeasure[T]) keyBound[T] {
	if !s.hasMax {
		return acc
	}
	return boundFor(s.max)
}

func (keyDimension[T]) Compare(acc, target keyBound[T]) int {
	if !acc.valid {
		if !target.valid {
			return 0
		}
		return -1
	}
	if !target.valid {
		return 1
	}
	return cmp.Compare(acc.key, target.key)
}

// order describes the sortedness of element trees to the engine's merge
// combinators.
func order[T cmp.Ordered]() sumtree.Order[element[T], setMeasure[T], keyBound[T]] {
	return sumtree.Order[element[T], setMeasure[T], keyBound[T]]{
		Dim: keyDimension[T]{},
		Key: func(e element[T]) keyBound[T] { return boundFor(e.value) },
	}
}

// Set is a persistent ordered set of distinct elements.
//
// A set created by
//
//	Set[int]{}
//
// is a valid object and behaves like an empty set.
//
// Operations return new sets and never modify their operands; versions
// share structure, so keeping old versions around is cheap.
//
//	Operation                      |  Set
//	-------------------------------+-------------
//	Len, IsEmpty                   |  O(1)
//	Contains, Insert, Delete       |  O(log n)
//	Min, Max, KthSmallest          |  O(log n)
//	Union, Intersection, ...       |  O(m log n)
//	FromDistinctSorted             |  O(n)
//	Of, FromSlice                  |  O(n log n)
type Set[T cmp.Ordered] struct {
	tree *sumtree.Tree[element[T], setMeasure[T]]
}

func newElementTree[T cmp.Ordered]() (*sumtree.Tree[element[T], setMeasure[T]], error) {
	cfg := sumtree.Config[setMeasure[T]]{Monoid: setMonoid[T]{}}
	return sumtree.New[element[T], setMeasure[T]](cfg)
}

func treeFromSet[T cmp.Ordered](s Set[T]) (*sumtree.Tree[element[T], setMeasure[T]], error) {
	if s.tree != nil {
		return s.tree, nil
	}
	return newElementTree[T]()
}

func setFromTree[T cmp.Ordered](tree *sumtree.Tree[element[T], setMeasure[T]]) Set[T] {
	if tree == nil || tree.IsEmpty() {
		return Set[T]{}
	}
	return Set[T]{tree: tree}
}

// locate returns the position of x in the tree and whether x is present.
// For an absent x the position is where an insert would keep the ascending
// order.
func locate[T cmp.Ordered](tree *sumtree.Tree[element[T], setMeasure[T]], x T) (int, bool) {
	cursor, err := sumtree.NewCursor(tree, keyDimension[T]{})
	assert(err == nil, "locate: cannot open cursor")
	index, _, err := cursor.Seek(boundFor(x))
	assert(err == nil, "locate: seek failed")
	if index >= tree.Len() {
		return index, false
	}
	item, err := tree.At(index)
	assert(err == nil, "locate: seek position out of range")
	return index, item.value == x
}

// Of builds the set of the given elements. Duplicates collapse.
func Of[T cmp.Ordered](xs ...T) Set[T] {
	return FromSlice(xs)
}

// FromSlice builds the set of the elements of xs. Duplicates collapse and
// the input slice is not retained.
func FromSlice[T cmp.Ordered](xs []T) Set[T] {
	if len(xs) == 0 {
		return Set[T]{}
	}
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	return FromDistinctSorted(slices.Compact(sorted))
}

// FromDistinctSorted builds a set from elements that are already sorted
// ascending and free of duplicates, in a single O(n) bottom-up pass.
//
// The precondition is not checked. Feeding unsorted input or duplicates
// silently corrupts the set's ordering.
func FromDistinctSorted[T cmp.Ordered](xs []T) Set[T] {
	if len(xs) == 0 {
		return Set[T]{}
	}
	items := make([]element[T], 0, len(xs))
	for _, x := range xs {
		items = append(items, element[T]{value: x})
	}
	tree, err := sumtree.FromItems(sumtree.Config[setMeasure[T]]{Monoid: setMonoid[T]{}}, items)
	assert(err == nil, "FromDistinctSorted: cannot build element tree")
	return setFromTree(tree)
}

// IsEmpty reports whether the set has no elements.
func (s Set[T]) IsEmpty() bool {
	return s.tree == nil || s.tree.IsEmpty()
}

// Len returns the number of elements.
func (s Set[T]) Len() int {
	if s.tree == nil {
		return 0
	}
	return s.tree.Len()
}

// Contains reports whether x is an element of the set.
func (s Set[T]) Contains(x T) bool {
	if s.IsEmpty() {
		return false
	}
	_, found := locate(s.tree, x)
	return found
}

// Insert returns a set that additionally holds x. Inserting an element
// that is already present returns the receiver unchanged.
func (s Set[T]) Insert(x T) Set[T] {
	tree, err := treeFromSet(s)
	assert(err == nil, "Insert: cannot materialize tree")
	index, found := locate(tree, x)
	if found {
		return s
	}
	out, err := tree.InsertAt(index, element[T]{value: x})
	assert(err == nil, "Insert: position from locate is invalid")
	return setFromTree(out)
}

// Delete returns a set without x. Deleting an absent element returns the
// receiver unchanged.
func (s Set[T]) Delete(x T) Set[T] {
	if s.IsEmpty() {
		return s
	}
	index, found := locate(s.tree, x)
	if !found {
		return s
	}
	out, err := s.tree.DeleteAt(index)
	assert(err == nil, "Delete: position from locate is invalid")
	return setFromTree(out)
}

// Min returns the smallest element.
//
// ok is false for an empty set.
func (s Set[T]) Min() (T, bool) {
	var zero T
	if s.tree == nil {
		return zero, false
	}
	item, ok := s.tree.First()
	if !ok {
		return zero, false
	}
	return item.value, true
}

// Max returns the largest element.
//
// ok is false for an empty set.
func (s Set[T]) Max() (T, bool) {
	var zero T
	if s.tree == nil {
		return zero, false
	}
	item, ok := s.tree.Last()
	if !ok {
		return zero, false
	}
	return item.value, true
}

// KthSmallest returns the k-th smallest element, counting from 1.
//
// ok is false for ranks outside 1…Len(); out-of-range ranks are never
// clamped to the nearest element.
func (s Set[T]) KthSmallest(k int) (T, bool) {
	var zero T
	if k < 1 || k > s.Len() {
		return zero, false
	}
	item, err := s.tree.At(k - 1)
	assert(err == nil, "KthSmallest: rank escaped its bounds check")
	return item.value, true
}

// Union returns the set of elements present in a, in b, or in both.
func Union[T cmp.Ordered](a, b Set[T]) Set[T] {
	at, err := treeFromSet(a)
	assert(err == nil, "Union: cannot materialize tree")
	bt, err := treeFromSet(b)
	assert(err == nil, "Union: cannot materialize tree")
	out, err := sumtree.UnionWith(at, bt, order[T](), func(left, _ element[T]) (element[T], bool) {
		return left, true
	})
	assert(err == nil, "Union: merge failed")
	return setFromTree(out)
}

// Intersection returns the set of elements present in both a and b.
func Intersection[T cmp.Ordered](a, b Set[T]) Set[T] {
	at, err := treeFromSet(a)
	assert(err == nil, "Intersection: cannot materialize tree")
	bt, err := treeFromSet(b)
	assert(err == nil, "Intersection: cannot materialize tree")
	out, err := sumtree.IntersectionWith(at, bt, order[T](), func(left, _ element[T]) (element[T], bool) {
		return left, true
	})
	assert(err == nil, "Intersection: merge failed")
	return setFromTree(out)
}

// Difference returns the set of elements of a that are not in b.
func Difference[T cmp.Ordered](a, b Set[T]) Set[T] {
	at, err := treeFromSet(a)
	assert(err == nil, "Difference: cannot materialize tree")
	bt, err := treeFromSet(b)
	assert(err == nil, "Difference: cannot materialize tree")
	out, err := sumtree.DifferenceWith(at, bt, order[T](), func(element[T], element[T]) (element[T], bool) {
		var drop element[T]
		return drop, false
	})
	assert(err == nil, "Difference: merge failed")
	return setFromTree(out)
}

// Disjoint reports whether a and b share no element.
func Disjoint[T cmp.Ordered](a, b Set[T]) bool {
	at, err := treeFromSet(a)
	assert(err == nil, "Disjoint: cannot materialize tree")
	bt, err := treeFromSet(b)
	assert(err == nil, "Disjoint: cannot materialize tree")
	ok, err := sumtree.Disjoint(at, bt, order[T]())
	assert(err == nil, "Disjoint: comparison failed")
	return ok
}

// SubsetOf reports whether every element of a is also an element of b.
func SubsetOf[T cmp.Ordered](a, b Set[T]) bool {
	at, err := treeFromSet(a)
	assert(err == nil, "SubsetOf: cannot materialize tree")
	bt, err := treeFromSet(b)
	assert(err == nil, "SubsetOf: cannot materialize tree")
	ok, err := sumtree.SubsetOf(at, bt, order[T](), func(element[T], element[T]) bool {
		return true
	})
	assert(err == nil, "SubsetOf: comparison failed")
	return ok
}

// Equal reports whether a and b hold exactly the same elements. Equality
// is decided by content, never by tree structure.
func Equal[T cmp.Ordered](a, b Set[T]) bool {
	return a.Len() == b.Len() && SubsetOf(a, b)
}

// ToSlice returns the elements in ascending order in a fresh slice.
func (s Set[T]) ToSlice() []T {
	if s.IsEmpty() {
		return nil
	}
	out := make([]T, 0, s.Len())
	s.tree.ForEachItem(func(e element[T]) bool {
		out = append(out, e.value)
		return true
	})
	return out
}

// All returns an iterator over the elements in ascending order.
func (s Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if s.tree == nil {
			return
		}
		for e := range s.tree.All() {
			if !yield(e.value) {
				return
			}
		}
	}
}

// String renders the set in ascending order, like "{1 2 3}".
func (s Set[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	sep := ""
	for x := range s.All() {
		sb.WriteString(sep)
		fmt.Fprintf(&sb, "%v", x)
		sep = " "
	}
	sb.WriteByte('}')
	return sb.String()
}
