package multiset

import (
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/arbitrary"
	"github.com/leanovate/gopter/gen"
)

var defaultGopterParameters = gopter.DefaultTestParameters()

// newIntArbitraries draws ints from a small range so that generated
// multisets carry plenty of duplicates and collisions, including negative
// values below int's zero value.
func newIntArbitraries() *arbitrary.Arbitraries {
	arbitraries := arbitrary.DefaultArbitraries()
	arbitraries.RegisterGen(gen.IntRange(-50, 50))
	return arbitraries
}

func TestFlatteningIsSortedCensus(t *testing.T) {
	t.Parallel()
	properties := gopter.NewProperties(defaultGopterParameters)
	arbitraries := newIntArbitraries()

	properties.Property("flattening is sorted and counts every occurrence",
		arbitraries.ForAll(
			func(xs []int) bool {
				m := FromSlice(xs)
				flat := m.ToSlice()
				if len(flat) != len(xs) {
					return false
				}
				want := slices.Clone(xs)
				slices.Sort(want)
				return slices.Equal(flat, want)
			}))
	properties.TestingRun(t)
}

func TestCardinalityConsistency(t *testing.T) {
	t.Parallel()
	properties := gopter.NewProperties(defaultGopterParameters)
	arbitraries := newIntArbitraries()

	properties.Property("size sums the counts over the support",
		arbitraries.ForAll(
			func(xs []int) bool {
				m := FromSlice(xs)
				sum := 0
				for _, v := range m.Support().ToSlice() {
					sum += m.Count(v)
				}
				return m.Len() == sum && m.Len() == len(m.ToSlice())
			}))
	properties.TestingRun(t)
}

func TestBuildRoutesAgree(t *testing.T) {
	t.Parallel()
	properties := gopter.NewProperties(defaultGopterParameters)
	arbitraries := newIntArbitraries()

	properties.Property("bulk build, descending build and repeated insert agree",
		arbitraries.ForAll(
			func(xs []int) bool {
				bulk := FromSlice(xs)
				var inserted MultiSet[int]
				for _, x := range xs {
					inserted = inserted.Insert(x)
				}
				desc := slices.Clone(xs)
				slices.Sort(desc)
				slices.Reverse(desc)
				return Equal(bulk, inserted) && Equal(bulk, FromSortedDesc(desc))
			}))
	properties.TestingRun(t)
}

func TestFlattenRebuildRoundTrip(t *testing.T) {
	t.Parallel()
	properties := gopter.NewProperties(defaultGopterParameters)
	arbitraries := newIntArbitraries()

	properties.Property("rebuilding from the flattening yields an equal multiset",
		arbitraries.ForAll(
			func(xs []int) bool {
				m := FromSlice(xs)
				return Equal(m, FromSlice(m.ToSlice()))
			}))
	properties.TestingRun(t)
}

func TestAlgebraSizeLaws(t *testing.T) {
	t.Parallel()
	properties := gopter.NewProperties(defaultGopterParameters)
	arbitraries := newIntArbitraries()

	properties.Property("union adds sizes",
		arbitraries.ForAll(
			func(as, bs []int) bool {
				a, b := FromSlice(as), FromSlice(bs)
				return Union(a, b).Len() == a.Len()+b.Len()
			}))
	properties.Property("max-union and intersection split the summed sizes",
		arbitraries.ForAll(
			func(as, bs []int) bool {
				a, b := FromSlice(as), FromSlice(bs)
				return MaxUnion(a, b).Len()+Intersection(a, b).Len() == a.Len()+b.Len()
			}))
	properties.Property("difference removes exactly the shared occurrences",
		arbitraries.ForAll(
			func(as, bs []int) bool {
				a, b := FromSlice(as), FromSlice(bs)
				return Difference(a, b).Len() == a.Len()-Intersection(a, b).Len()
			}))
	properties.TestingRun(t)
}

func TestContainmentLaws(t *testing.T) {
	t.Parallel()
	properties := gopter.NewProperties(defaultGopterParameters)
	arbitraries := newIntArbitraries()

	properties.Property("operands are subsets of their union",
		arbitraries.ForAll(
			func(as, bs []int) bool {
				a, b := FromSlice(as), FromSlice(bs)
				u := Union(a, b)
				return SubsetOf(a, u) && SubsetOf(b, u) && SupersetOf(u, a)
			}))
	properties.Property("the intersection is a subset of both operands",
		arbitraries.ForAll(
			func(as, bs []int) bool {
				a, b := FromSlice(as), FromSlice(bs)
				i := Intersection(a, b)
				return SubsetOf(i, a) && SubsetOf(i, b)
			}))
	properties.Property("subset and superset are dual",
		arbitraries.ForAll(
			func(as, bs []int) bool {
				a, b := FromSlice(as), FromSlice(bs)
				return SubsetOf(a, b) == SupersetOf(b, a)
			}))
	properties.TestingRun(t)
}

func TestDisjointMatchesEmptyIntersection(t *testing.T) {
	t.Parallel()
	properties := gopter.NewProperties(defaultGopterParameters)
	arbitraries := newIntArbitraries()

	properties.Property("disjointness is emptiness of the intersection",
		arbitraries.ForAll(
			func(as, bs []int) bool {
				a, b := FromSlice(as), FromSlice(bs)
				return Disjoint(a, b) == Intersection(a, b).IsEmpty()
			}))
	properties.TestingRun(t)
}

func TestRankLaws(t *testing.T) {
	t.Parallel()
	properties := gopter.NewProperties(defaultGopterParameters)
	arbitraries := newIntArbitraries()

	properties.Property("k-th largest mirrors k-th smallest",
		arbitraries.ForAll(
			func(xs []int) bool {
				m := FromSlice(xs)
				for k := 1; k <= m.Len(); k++ {
					lo, okLo := m.KthSmallest(m.Len() - k + 1)
					hi, okHi := m.KthLargest(k)
					if !okLo || !okHi || lo != hi {
						return false
					}
				}
				_, ok := m.KthSmallest(m.Len() + 1)
				return !ok
			}))
	properties.TestingRun(t)
}
