package multiset

import (
	"cmp"
	"fmt"
	"iter"
	"strings"

	"github.com/npillmayer/sumtree"
)

// MultiSet is a persistent ordered multiset.
//
// A multiset created by
//
//	MultiSet[int]{}
//
// is a valid object and behaves like an empty multiset.
//
// Operations return new multisets and never modify their operands;
// versions share structure, so keeping old versions around is cheap.
// Len counts occurrences including duplicates, UniqueLen counts distinct
// values; n below is the number of distinct values.
//
//	Operation                          |  MultiSet
//	-----------------------------------+-------------
//	Len, UniqueLen, IsEmpty            |  O(1)
//	Count, Contains                    |  O(log n)
//	Insert, DeleteOnce, SetCount, ...  |  O(log n)
//	Min, Max, k-th smallest/largest    |  O(log n)
//	Union, Intersection, ...           |  O(m log n)
//	FromSorted, FromDistinctSorted     |  O(n)
//	Of, FromSlice                      |  O(n log n)
type MultiSet[T cmp.Ordered] struct {
	tree *sumtree.Tree[record[T], measure[T]]
}

func newRecordTree[T cmp.Ordered]() (*sumtree.Tree[record[T], measure[T]], error) {
	return sumtree.New[record[T], measure[T]](recordConfig[T]())
}

func treeFromSet[T cmp.Ordered](m MultiSet[T]) (*sumtree.Tree[record[T], measure[T]], error) {
	if m.tree != nil {
		return m.tree, nil
	}
	return newRecordTree[T]()
}

func setFromTree[T cmp.Ordered](tree *sumtree.Tree[record[T], measure[T]]) MultiSet[T] {
	if tree == nil || tree.IsEmpty() {
		return MultiSet[T]{}
	}
	return MultiSet[T]{tree: tree}
}

// locate returns the record position of x and whether a record for x
// exists. For an absent x the position is where an insert keeps the
// ascending value order.
func locate[T cmp.Ordered](tree *sumtree.Tree[record[T], measure[T]], x T) (int, bool) {
	cursor, err := sumtree.NewCursor(tree, keyDimension[T]{})
	assert(err == nil, "locate: cannot open cursor")
	index, _, err := cursor.Seek(boundFor(x))
	assert(err == nil, "locate: seek failed")
	if index >= tree.Len() {
		return index, false
	}
	rec, err := tree.At(index)
	assert(err == nil, "locate: seek position out of range")
	return index, rec.value == x
}

// modify routes every point mutation through the multiplicity choke-point:
// it applies f to the current count of x (0 if absent) and updates, inserts
// or deletes the record depending on the outcome. A result that changes
// nothing returns the receiver.
func (m MultiSet[T]) modify(x T, f func(int) int) MultiSet[T] {
	tree, err := treeFromSet(m)
	assert(err == nil, "modify: cannot materialize tree")
	index, found := locate(tree, x)
	if !found {
		changed, keep := changeMult(f, record[T]{value: x, mult: 0})
		if !keep {
			return m
		}
		out, err := tree.InsertAt(index, changed)
		assert(err == nil, "modify: insert position from locate is invalid")
		return setFromTree(out)
	}
	rec, err := tree.At(index)
	assert(err == nil, "modify: located record must be readable")
	changed, keep := changeMult(f, rec)
	if !keep {
		out, err := tree.DeleteAt(index)
		assert(err == nil, "modify: delete position from locate is invalid")
		return setFromTree(out)
	}
	if changed.mult == rec.mult {
		return m
	}
	out, err := tree.UpdateAt(index, changed)
	assert(err == nil, "modify: update position from locate is invalid")
	return setFromTree(out)
}

// IsEmpty reports whether the multiset has no elements.
func (m MultiSet[T]) IsEmpty() bool {
	return m.tree == nil || m.tree.IsEmpty()
}

// Len returns the number of elements, counting duplicates.
func (m MultiSet[T]) Len() int {
	if m.tree == nil {
		return 0
	}
	return m.tree.Summary().card
}

// UniqueLen returns the number of distinct values.
func (m MultiSet[T]) UniqueLen() int {
	if m.tree == nil {
		return 0
	}
	return m.tree.Len()
}

// Count returns how often x occurs, 0 for absent values.
func (m MultiSet[T]) Count(x T) int {
	if m.IsEmpty() {
		return 0
	}
	index, found := locate(m.tree, x)
	if !found {
		return 0
	}
	rec, err := m.tree.At(index)
	assert(err == nil, "Count: located record must be readable")
	return rec.mult
}

// Contains reports whether x occurs at least once.
func (m MultiSet[T]) Contains(x T) bool {
	return m.Count(x) > 0
}

// Insert returns a multiset with one more occurrence of x.
func (m MultiSet[T]) Insert(x T) MultiSet[T] {
	return m.modify(x, func(n int) int { return n + 1 })
}

// InsertMany returns a multiset with n more occurrences of x. For n of
// zero or less it returns the receiver unchanged.
func (m MultiSet[T]) InsertMany(x T, n int) MultiSet[T] {
	if n <= 0 {
		return m
	}
	return m.modify(x, func(c int) int { return c + n })
}

// DeleteOnce returns a multiset with one occurrence of x removed. Deleting
// an absent value returns the receiver unchanged.
func (m MultiSet[T]) DeleteOnce(x T) MultiSet[T] {
	if m.IsEmpty() {
		return m
	}
	return m.modify(x, func(n int) int { return n - 1 })
}

// DeleteAll returns a multiset without any occurrence of x. Deleting an
// absent value returns the receiver unchanged.
func (m MultiSet[T]) DeleteAll(x T) MultiSet[T] {
	if m.IsEmpty() {
		return m
	}
	return m.modify(x, func(int) int { return 0 })
}

// SetCount returns a multiset in which x occurs exactly n times. For n of
// zero or less the value is removed entirely.
func (m MultiSet[T]) SetCount(x T, n int) MultiSet[T] {
	return m.modify(x, func(int) int { return n })
}

// ToSlice returns all elements in ascending order, duplicates included,
// in a fresh slice.
func (m MultiSet[T]) ToSlice() []T {
	if m.IsEmpty() {
		return nil
	}
	out := make([]T, 0, m.Len())
	m.tree.ForEachItem(func(rec record[T]) bool {
		out = appendValues(out, rec)
		return true
	})
	return out
}

// Distinct returns the distinct values in ascending order.
func (m MultiSet[T]) Distinct() []T {
	if m.IsEmpty() {
		return nil
	}
	out := make([]T, 0, m.UniqueLen())
	m.tree.ForEachItem(func(rec record[T]) bool {
		out = append(out, rec.value)
		return true
	})
	return out
}

// All returns an iterator over (value, multiplicity) pairs in ascending
// value order.
func (m MultiSet[T]) All() iter.Seq2[T, int] {
	return func(yield func(T, int) bool) {
		if m.tree == nil {
			return
		}
		for rec := range m.tree.All() {
			if !yield(rec.value, rec.mult) {
				return
			}
		}
	}
}

// Values returns an iterator over all elements in ascending order, each
// value yielded as often as it occurs.
func (m MultiSet[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		if m.tree == nil {
			return
		}
		for rec := range m.tree.All() {
			for i := 0; i < rec.mult; i++ {
				if !yield(rec.value) {
					return
				}
			}
		}
	}
}

// String renders the multiset in ascending order with duplicates spelled
// out, like "{a b b c}".
func (m MultiSet[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	sep := ""
	for x := range m.Values() {
		sb.WriteString(sep)
		fmt.Fprintf(&sb, "%v", x)
		sep = " "
	}
	sb.WriteByte('}')
	return sb.String()
}
