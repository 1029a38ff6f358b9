package multiset

import (
	"cmp"

	"github.com/npillmayer/sumtree/ordset"
)

// Map returns a multiset with f applied to every distinct value of m.
// Multiplicities follow their values, and when f maps several values to
// the same result their occurrences add up. Since f may reorder values
// freely, the result is rebuilt by insertion in O(n log n).
func Map[T, U cmp.Ordered](m MultiSet[T], f func(T) U) MultiSet[U] {
	if m.IsEmpty() {
		return MultiSet[U]{}
	}
	tracer().Debugf("multiset map rebuilds %d records by insertion", m.UniqueLen())
	out := MultiSet[U]{}
	for v, n := range m.All() {
		out = out.InsertMany(f(v), n)
	}
	return out
}

// MapMonotonic returns a multiset with f applied to every distinct value
// of m, rebuilt structurally in O(n).
//
// f must be strictly increasing over the values of m; this is not
// checked, and a non-monotonic f silently corrupts the value order. Use
// Map when in doubt.
func MapMonotonic[T, U cmp.Ordered](m MultiSet[T], f func(T) U) MultiSet[U] {
	if m.IsEmpty() {
		return MultiSet[U]{}
	}
	records := make([]record[U], 0, m.UniqueLen())
	m.tree.ForEachItem(func(rec record[T]) bool {
		records = append(records, mapRecord(f, rec))
		return true
	})
	return fromRecords(records)
}

// Filter returns the multiset of elements satisfying pred. Records are
// kept or dropped wholesale, so the value order survives structurally and
// the rebuild is O(n). A filter that drops nothing returns the receiver.
func (m MultiSet[T]) Filter(pred func(T) bool) MultiSet[T] {
	if m.IsEmpty() {
		return m
	}
	records := make([]record[T], 0, m.UniqueLen())
	m.tree.ForEachItem(func(rec record[T]) bool {
		if pred(rec.value) {
			records = append(records, rec)
		}
		return true
	})
	if len(records) == m.UniqueLen() {
		return m
	}
	return fromRecords(records)
}

// Support returns the distinct values as a plain ordered set. The record
// walk yields them sorted and free of duplicates, which is exactly the
// input the set's O(n) bulk constructor trusts.
func (m MultiSet[T]) Support() ordset.Set[T] {
	return ordset.FromDistinctSorted(m.Distinct())
}
