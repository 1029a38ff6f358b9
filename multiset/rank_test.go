package multiset

import "testing"

func TestMinMax(t *testing.T) {
	m := Of(5, 1, 9, 3, 1)
	if lo, ok := m.Min(); !ok || lo != 1 {
		t.Errorf("Min() = %d ok=%v, want 1", lo, ok)
	}
	if hi, ok := m.Max(); !ok || hi != 9 {
		t.Errorf("Max() = %d ok=%v, want 9", hi, ok)
	}
	var empty MultiSet[int]
	if _, ok := empty.Min(); ok {
		t.Errorf("Min on empty multiset must be absent")
	}
	if _, ok := empty.Max(); ok {
		t.Errorf("Max on empty multiset must be absent")
	}
}

func TestKthSmallestCountsDuplicates(t *testing.T) {
	m := Of(3, 1, 2, 1)
	want := []int{1, 1, 2, 3}
	for k := 1; k <= len(want); k++ {
		x, ok := m.KthSmallest(k)
		if !ok {
			t.Fatalf("KthSmallest(%d) unexpectedly absent", k)
		}
		if x != want[k-1] {
			t.Errorf("KthSmallest(%d) = %d, want %d", k, x, want[k-1])
		}
	}
	if _, ok := m.KthSmallest(0); ok {
		t.Errorf("rank 0 must be absent, not clamped")
	}
	if _, ok := m.KthSmallest(5); ok {
		t.Errorf("rank past the size must be absent, not clamped")
	}
	if _, ok := (MultiSet[int]{}).KthSmallest(1); ok {
		t.Errorf("ranks on an empty multiset must be absent")
	}
}

func TestKthLargestMirrorsKthSmallest(t *testing.T) {
	m := Of(3, 1, 2, 1)
	want := []int{3, 2, 1, 1}
	for k := 1; k <= len(want); k++ {
		x, ok := m.KthLargest(k)
		if !ok {
			t.Fatalf("KthLargest(%d) unexpectedly absent", k)
		}
		if x != want[k-1] {
			t.Errorf("KthLargest(%d) = %d, want %d", k, x, want[k-1])
		}
		mirror, _ := m.KthSmallest(m.Len() - k + 1)
		if x != mirror {
			t.Errorf("KthLargest(%d) = %d, but KthSmallest(%d) = %d", k, x, m.Len()-k+1, mirror)
		}
	}
	if _, ok := m.KthLargest(0); ok {
		t.Errorf("rank 0 must be absent")
	}
	if _, ok := m.KthLargest(5); ok {
		t.Errorf("rank past the size must be absent")
	}
}

func TestDistinctRanks(t *testing.T) {
	m := Of(2, 2, 2, 5, 7, 7)
	if m.UniqueLen() != 3 {
		t.Fatalf("UniqueLen() = %d, want 3", m.UniqueLen())
	}
	wantAsc := []int{2, 5, 7}
	for k := 1; k <= 3; k++ {
		x, ok := m.KthSmallestDistinct(k)
		if !ok || x != wantAsc[k-1] {
			t.Errorf("KthSmallestDistinct(%d) = %d ok=%v, want %d", k, x, ok, wantAsc[k-1])
		}
	}
	wantDesc := []int{7, 5, 2}
	for k := 1; k <= 3; k++ {
		x, ok := m.KthLargestDistinct(k)
		if !ok || x != wantDesc[k-1] {
			t.Errorf("KthLargestDistinct(%d) = %d ok=%v, want %d", k, x, ok, wantDesc[k-1])
		}
	}
	if _, ok := m.KthSmallestDistinct(0); ok {
		t.Errorf("distinct rank 0 must be absent")
	}
	if _, ok := m.KthSmallestDistinct(4); ok {
		t.Errorf("distinct rank past the support must be absent")
	}
}

func TestRanksAgreeWithFlattening(t *testing.T) {
	var m MultiSet[int]
	for i := 0; i < 100; i++ {
		m = m.InsertMany(i, i%3+1)
	}
	flat := m.ToSlice()
	if len(flat) != m.Len() {
		t.Fatalf("flattening has %d elements, Len() says %d", len(flat), m.Len())
	}
	for k := 1; k <= len(flat); k++ {
		if x, ok := m.KthSmallest(k); !ok || x != flat[k-1] {
			t.Fatalf("KthSmallest(%d) = %d ok=%v, want %d", k, x, ok, flat[k-1])
		}
		if x, ok := m.KthLargest(k); !ok || x != flat[len(flat)-k] {
			t.Fatalf("KthLargest(%d) = %d ok=%v, want %d", k, x, ok, flat[len(flat)-k])
		}
	}
}
