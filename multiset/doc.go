/*
Package multiset implements a persistent ordered multiset.

A multiset (or bag) holds values of an ordered element type and remembers
how often each value occurs. Iteration and folding enumerate values in
ascending order, duplicates included. All operations are persistent: they
leave their operands untouched and return a new multiset, with unchanged
parts of the underlying tree shared between versions.

The zero value

	multiset.MultiSet[int]{}

is a valid empty multiset.

Each distinct value is stored as one record in a summarized tree from the
root package, together with its multiplicity. Subtrees are summarized
along every axis the operations ask about: cardinality (occurrences
including duplicates), support (distinct values) and the largest value.
Counts and ranks read off cached summaries, membership and set algebra
steer by value.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package multiset

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'sumtree'
func tracer() tracing.Trace {
	return tracing.Select("sumtree")
}

// assert panics with msg if condition does not hold. It is used for internal
// invariants, not for input validation.
func assert(condition bool, msg string) {
	if !condition {
		panic("multiset: assertion failed: " + msg)
	}
}
