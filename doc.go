/*
Package sumtree provides a persistent B+ sum-tree: an ordered sequence of
items with monoid summaries aggregated over every subtree.

The package is intentionally not a generic map/set container. It is a storage
engine for sequence-shaped collections with positional editing and persistent
(copy-on-write) updates. Collections built on top of it decide what an item
is and what its summary measures; the engine only requires that summaries
form a monoid. The subpackages deque, multiset and ordset are such
collections.

Model:
  - items implement `Summary() S`, linking item and summary at the type level,
  - a `SummaryMonoid[S]` aggregates summaries bottom-up through the tree,
  - distinct `leafNode` and `innerNode` representations,
  - every inner node caches the item count of its subtree, so positional
    routing and `Len` never touch the leaves,
  - summary-guided seek along pluggable `Dimension`s via `Cursor`,
  - prefix aggregation for summaries (`PrefixSummary`),
  - recursive path-copy insert with split propagation,
  - path-copy split with subtree sharing (structural-only),
  - structural, height-aware concat/join with path-copy updates,
  - order-based merge operations (union, intersection, difference) for trees
    that keep their items sorted under an `Order`.

All mutating operations return a new tree and leave the receiver untouched.
Unchanged subtrees are shared between the old and the new tree, so clients
may hold on to any number of versions at leaf-path cost per update.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package sumtree

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'sumtree'.
func tracer() tracing.Trace {
	return tracing.Select("sumtree")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
