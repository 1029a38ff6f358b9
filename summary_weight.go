package sumtree

// WeightSummary is a default summary type for weighted sequences.
//
// It is intentionally small and additive so it can serve as a base for
// dimensioned cursor operations.
type WeightSummary struct {
	Count  uint64
	Weight uint64
}

// WeightedValue is a leaf item carrying an opaque label and a weight.
type WeightedValue struct {
	Label  string
	Weight uint64
}

// Weighted creates a weighted value item.
func Weighted(label string, weight uint64) WeightedValue {
	return WeightedValue{Label: label, Weight: weight}
}

// Summary returns count/weight for this item.
func (v WeightedValue) Summary() WeightSummary {
	return WeightSummary{
		Count:  1,
		Weight: v.Weight,
	}
}

// WeightMonoid aggregates WeightSummary values.
type WeightMonoid struct{}

// Zero returns the neutral summary.
func (WeightMonoid) Zero() WeightSummary {
	return WeightSummary{}
}

// Add combines two summaries.
func (WeightMonoid) Add(left, right WeightSummary) WeightSummary {
	return WeightSummary{
		Count:  left.Count + right.Count,
		Weight: left.Weight + right.Weight,
	}
}

// CountDimension seeks/accumulates by item count.
type CountDimension struct{}

// Zero returns 0 items.
func (CountDimension) Zero() uint64 { return 0 }

// Add adds the item count from summary into accumulator.
func (CountDimension) Add(acc uint64, summary WeightSummary) uint64 {
	return acc + summary.Count
}

// Compare compares dimension progress to target.
func (CountDimension) Compare(acc uint64, target uint64) int {
	switch {
	case acc < target:
		return -1
	case acc > target:
		return 1
	default:
		return 0
	}
}

// WeightDimension seeks/accumulates by total weight.
type WeightDimension struct{}

// Zero returns weight 0.
func (WeightDimension) Zero() uint64 { return 0 }

// Add adds the weight from summary into accumulator.
func (WeightDimension) Add(acc uint64, summary WeightSummary) uint64 {
	return acc + summary.Weight
}

// Compare compares dimension progress to target.
func (WeightDimension) Compare(acc uint64, target uint64) int {
	switch {
	case acc < target:
		return -1
	case acc > target:
		return 1
	default:
		return 0
	}
}
