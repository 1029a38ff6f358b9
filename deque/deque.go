package deque

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/npillmayer/sumtree"
)

// elem wraps a single queue element. Every element contributes 1 to the
// size summary, which is all the tree needs for positional routing.
type elem[T any] struct {
	value T
}

func (e elem[T]) Summary() int { return 1 }

type sizeMonoid struct{}

func (sizeMonoid) Zero() int { return 0 }

func (sizeMonoid) Add(left, right int) int { return left + right }

// Deque is a persistent double-ended queue.
//
// A deque created by
//
//	Deque[int]{}
//
// is a valid object and behaves like an empty queue.
//
// Operations return new deques and never modify the receiver; versions share
// structure, so keeping old versions around is cheap.
//
//	Operation     |  Deque          |  Slice
//	--------------+-----------------+--------
//	PushFront     |  O(log n)       |  O(n)
//	PushBack      |  O(log n)       |  O(1) amortized
//	ViewFront     |  O(log n)       |  O(n)
//	ViewBack      |  O(log n)       |  O(1)
//	Concat        |  O(log n)       |  O(n)
//	Len           |  O(1)           |  O(1)
type Deque[T any] struct {
	tree *sumtree.Tree[elem[T], int]
}

func newElemTree[T any]() (*sumtree.Tree[elem[T], int], error) {
	cfg := sumtree.Config[int]{Monoid: sizeMonoid{}}
	return sumtree.New[elem[T], int](cfg)
}

func treeFromDeque[T any](q Deque[T]) (*sumtree.Tree[elem[T], int], error) {
	if q.tree != nil {
		return q.tree, nil
	}
	return newElemTree[T]()
}

func dequeFromTree[T any](tree *sumtree.Tree[elem[T], int]) Deque[T] {
	if tree == nil || tree.IsEmpty() {
		return Deque[T]{}
	}
	return Deque[T]{tree: tree}
}

// Of builds a deque holding the given elements in order.
func Of[T any](xs ...T) Deque[T] {
	return FromSlice(xs)
}

// FromSlice builds a deque from a slice, preserving element order.
//
// Construction is a single O(n) bottom-up build; the input slice is not
// retained.
func FromSlice[T any](xs []T) Deque[T] {
	if len(xs) == 0 {
		return Deque[T]{}
	}
	items := make([]elem[T], 0, len(xs))
	for _, x := range xs {
		items = append(items, elem[T]{value: x})
	}
	tree, err := sumtree.FromItems(sumtree.Config[int]{Monoid: sizeMonoid{}}, items)
	assert(err == nil, "FromSlice: cannot build element tree")
	return dequeFromTree(tree)
}

// IsEmpty reports whether the deque has no elements.
func (q Deque[T]) IsEmpty() bool {
	return q.tree == nil || q.tree.IsEmpty()
}

// Len returns the number of elements.
func (q Deque[T]) Len() int {
	if q.tree == nil {
		return 0
	}
	return q.tree.Len()
}

// PushFront returns a new deque with x prepended.
func (q Deque[T]) PushFront(x T) Deque[T] {
	tree, err := treeFromDeque(q)
	assert(err == nil, "PushFront: cannot materialize tree")
	return dequeFromTree(tree.PushFirst(elem[T]{value: x}))
}

// PushBack returns a new deque with x appended.
func (q Deque[T]) PushBack(x T) Deque[T] {
	tree, err := treeFromDeque(q)
	assert(err == nil, "PushBack: cannot materialize tree")
	return dequeFromTree(tree.PushLast(elem[T]{value: x}))
}

// Front returns the first element without removing it.
//
// ok is false for an empty deque.
func (q Deque[T]) Front() (T, bool) {
	var zero T
	if q.tree == nil {
		return zero, false
	}
	item, ok := q.tree.First()
	if !ok {
		return zero, false
	}
	return item.value, true
}

// Back returns the last element without removing it.
//
// ok is false for an empty deque.
func (q Deque[T]) Back() (T, bool) {
	var zero T
	if q.tree == nil {
		return zero, false
	}
	item, ok := q.tree.Last()
	if !ok {
		return zero, false
	}
	return item.value, true
}

// ViewFront returns the first element together with the deque without it.
//
// ok is false for an empty deque; the receiver is then returned unchanged.
func (q Deque[T]) ViewFront() (T, Deque[T], bool) {
	var zero T
	if q.IsEmpty() {
		return zero, q, false
	}
	item, rest, ok := q.tree.ViewFirst()
	assert(ok, "non-empty deque must yield a front element")
	return item.value, dequeFromTree(rest), true
}

// ViewBack returns the last element together with the deque without it.
//
// ok is false for an empty deque; the receiver is then returned unchanged.
func (q Deque[T]) ViewBack() (T, Deque[T], bool) {
	var zero T
	if q.IsEmpty() {
		return zero, q, false
	}
	item, rest, ok := q.tree.ViewLast()
	assert(ok, "non-empty deque must yield a back element")
	return item.value, dequeFromTree(rest), true
}

// Concat concatenates deques left to right into a new deque.
func Concat[T any](first Deque[T], others ...Deque[T]) Deque[T] {
	base, err := treeFromDeque(first)
	assert(err == nil, "Concat: cannot materialize tree")
	for _, other := range others {
		if other.IsEmpty() {
			continue
		}
		base, err = base.Concat(other.tree)
		assert(err == nil, "Concat: tree concat failed")
	}
	return dequeFromTree(base)
}

// ToSlice returns the elements front to back in a fresh slice.
func (q Deque[T]) ToSlice() []T {
	if q.IsEmpty() {
		return nil
	}
	out := make([]T, 0, q.Len())
	q.tree.ForEachItem(func(item elem[T]) bool {
		out = append(out, item.value)
		return true
	})
	return out
}

// All returns an iterator over the elements from front to back.
func (q Deque[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if q.tree == nil {
			return
		}
		for item := range q.tree.All() {
			if !yield(item.value) {
				return
			}
		}
	}
}

// Backward returns an iterator over the elements from back to front.
func (q Deque[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		if q.tree == nil {
			return
		}
		for item := range q.tree.Backward() {
			if !yield(item.value) {
				return
			}
		}
	}
}

// Equal reports whether two deques hold the same elements in the same order.
func Equal[T comparable](a, b Deque[T]) bool {
	if a.Len() != b.Len() {
		return false
	}
	return slices.Equal(a.ToSlice(), b.ToSlice())
}

// String renders the deque front to back, like a slice.
func (q Deque[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	sep := ""
	for x := range q.All() {
		sb.WriteString(sep)
		fmt.Fprintf(&sb, "%v", x)
		sep = " "
	}
	sb.WriteByte(']')
	return sb.String()
}
