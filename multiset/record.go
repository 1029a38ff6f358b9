package multiset

import (
	"cmp"

	"github.com/npillmayer/sumtree"
)

// record is one distinct value together with its multiplicity. Records in
// a tree are strictly ascending by value, and mult is at least 1: a record
// for a value that does not occur never exists.
type record[T cmp.Ordered] struct {
	value T
	mult  int
}

func (r record[T]) Summary() measure[T] {
	return measure[T]{card: r.mult, support: 1, max: r.value, hasMax: true}
}

// measure summarizes a subtree of records: cardinality (occurrences
// including duplicates), support (distinct values) and the largest value.
// hasMax separates the empty summary from a summary whose maximum happens
// to be the zero value of T.
type measure[T cmp.Ordered] struct {
	card    int
	support int
	max     T
	hasMax  bool
}

type measureMonoid[T cmp.Ordered] struct{}

func (measureMonoid[T]) Zero() measure[T] { return measure[T]{} }

func (measureMonoid[T]) Add(left, right measure[T]) measure[T] {
	out := measure[T]{
		card:    left.card + right.card,
		support: left.support + right.support,
		max:     left.max,
		hasMax:  left.hasMax,
	}
	if right.hasMax {
		out.max = right.max
		out.hasMax = true
	}
	return out
}

func recordConfig[T cmp.Ordered]() sumtree.Config[measure[T]] {
	return sumtree.Config[measure[T]]{Monoid: measureMonoid[T]{}}
}

// changeMult is the single choke-point for multiplicity arithmetic. It
// applies f to the record's multiplicity; a result of zero or less reports
// the record as absent. Insert, delete, set and the algebra's combining
// callbacks are all spelled through it, so the "mult is at least 1"
// invariant has exactly one place to live.
func changeMult[T cmp.Ordered](f func(int) int, rec record[T]) (record[T], bool) {
	m := f(rec.mult)
	if m <= 0 {
		return record[T]{}, false
	}
	rec.mult = m
	return rec, true
}

// appendValues appends rec's value to dst, repeated mult times.
func appendValues[T cmp.Ordered](dst []T, rec record[T]) []T {
	for i := 0; i < rec.mult; i++ {
		dst = append(dst, rec.value)
	}
	return dst
}

// mapRecord applies f to the record's value; the multiplicity follows it
// unchanged.
func mapRecord[T, U cmp.Ordered](f func(T) U, rec record[T]) record[U] {
	return record[U]{value: f(rec.value), mult: rec.mult}
}

// cardDimension ranks records by accumulated cardinality, for k-th
// smallest queries that count duplicates. Distinct-rank queries need no
// dimension: every record is one distinct value, so positional indexing
// already is the distinct rank.
type cardDimension[T cmp.Ordered] struct{}

func (cardDimension[T]) Zero() int { return 0 }

func (cardDimension[T]) Add(acc int, s measure[T]) int { return acc + s.card }

func (cardDimension[T]) Compare(acc, target int) int { return cmp.Compare(acc, target) }

// keyBound is the accumulator for value-directed seeks: the largest value
// of the prefix consumed so far. An invalid bound marks the empty prefix
// and compares below every probe.
type keyBound[T cmp.Ordered] struct {
	key   T
	valid bool
}

func boundFor[T cmp.Ordered](x T) keyBound[T] {
	return keyBound[T]{key: x, valid: true}
}

// keyDimension steers seeks by record value.
type keyDimension[T cmp.Ordered] struct{}

func (keyDimension[T]) Zero() keyBound[T] { return keyBound[T]{} }

func (keyDimension[T]) Add(acc keyBound[T], s measure[T]) keyBound[T] {
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

// keyOrder describes the sortedness of record trees to the engine's merge
// combinators.
func keyOrder[T cmp.Ordered]() sumtree.Order[record[T], measure[T], keyBound[T]] {
	return sumtree.Order[record[T], measure[T], keyBound[T]]{
		Dim: keyDimension[T]{},
		Key: func(r record[T]) keyBound[T] { return boundFor(r.value) },
	}
}
