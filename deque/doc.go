/*
Package deque implements a persistent double-ended queue.

A deque keeps its elements in insertion order and supports pushing and
popping at both ends. All operations are persistent: they leave the
receiver untouched and return a new deque, with unchanged parts of the
underlying tree shared between versions.

The zero value

	deque.Deque[int]{}

is a valid empty deque.

Elements are stored in a summarized tree from the root package, with a
size-only summary. This gives O(1) Len and O(log n) pushes, pops and
concatenation.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package deque

// assert panics with msg if condition does not hold. It is used for internal
// invariants, not for input validation.
func assert(condition bool, msg string) {
	if !condition {
		panic("deque: assertion failed: " + msg)
	}
}
