package multiset

import (
	"cmp"
	"slices"

	"github.com/npillmayer/sumtree"
)

// Of builds the multiset of the given values. Every occurrence counts.
func Of[T cmp.Ordered](xs ...T) MultiSet[T] {
	return FromSlice(xs)
}

// FromSlice builds the multiset of the elements of xs, in any order.
// Every occurrence counts, and the input slice is not retained.
func FromSlice[T cmp.Ordered](xs []T) MultiSet[T] {
	if len(xs) == 0 {
		return MultiSet[T]{}
	}
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	return FromSorted(sorted)
}

// FromSorted builds a multiset from values sorted ascending, in a single
// O(n) pass. Runs of adjacent equal values merge into one record.
//
// The ordering precondition is not checked. Only adjacent duplicates
// merge, so unsorted input silently corrupts the value order.
func FromSorted[T cmp.Ordered](xs []T) MultiSet[T] {
	if len(xs) == 0 {
		return MultiSet[T]{}
	}
	records := make([]record[T], 0, len(xs))
	for _, x := range xs {
		if n := len(records); n > 0 && records[n-1].value == x {
			records[n-1].mult++
			continue
		}
		records = append(records, record[T]{value: x, mult: 1})
	}
	return fromRecords(records)
}

// FromSortedDesc builds a multiset from values sorted descending, in a
// single O(n) pass. The same precondition caveats as for FromSorted apply.
func FromSortedDesc[T cmp.Ordered](xs []T) MultiSet[T] {
	if len(xs) == 0 {
		return MultiSet[T]{}
	}
	records := make([]record[T], 0, len(xs))
	for i := len(xs) - 1; i >= 0; i-- {
		x := xs[i]
		if n := len(records); n > 0 && records[n-1].value == x {
			records[n-1].mult++
			continue
		}
		records = append(records, record[T]{value: x, mult: 1})
	}
	return fromRecords(records)
}

// FromDistinctSorted builds a multiset from values that are sorted
// ascending and free of duplicates, one occurrence each, in O(n).
//
// The precondition is not checked. Feeding unsorted input or duplicates
// silently corrupts the value order.
func FromDistinctSorted[T cmp.Ordered](xs []T) MultiSet[T] {
	if len(xs) == 0 {
		return MultiSet[T]{}
	}
	records := make([]record[T], 0, len(xs))
	for _, x := range xs {
		records = append(records, record[T]{value: x, mult: 1})
	}
	return fromRecords(records)
}

// FromDistinctSortedDesc is FromDistinctSorted for descending input.
func FromDistinctSortedDesc[T cmp.Ordered](xs []T) MultiSet[T] {
	if len(xs) == 0 {
		return MultiSet[T]{}
	}
	records := make([]record[T], 0, len(xs))
	for i := len(xs) - 1; i >= 0; i-- {
		records = append(records, record[T]{value: xs[i], mult: 1})
	}
	return fromRecords(records)
}

// fromRecords bulk-builds a record tree bottom-up, trusting records to be
// strictly ascending by value with multiplicities of at least 1.
func fromRecords[T cmp.Ordered](records []record[T]) MultiSet[T] {
	if len(records) == 0 {
		return MultiSet[T]{}
	}
	tree, err := sumtree.FromItems(recordConfig[T](), records)
	assert(err == nil, "fromRecords: cannot build record tree")
	return setFromTree(tree)
}
