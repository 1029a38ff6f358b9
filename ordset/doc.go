/*
Package ordset implements a persistent ordered set.

A set keeps its elements sorted ascending and holds every value at most
once. All operations are persistent: they leave their operands untouched
and return a new set, with unchanged parts of the underlying tree shared
between versions.

The zero value

	ordset.Set[int]{}

is a valid empty set.

Elements are stored in a summarized tree from the root package. Subtrees
are summarized by their element count and their largest member, so
membership tests steer by value while ranks read off cached counts.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package ordset

// assert panics with msg if condition does not hold. It is used for internal
// invariants, not for input validation.
func assert(condition bool, msg string) {
	if !condition {
		panic("ordset: assertion failed: " + msg)
	}
}
