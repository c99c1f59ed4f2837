package rlevec

import "testing"

func TestEmptyVectorAllZero(t *testing.T) {
	v := New(17, 1)
	for i := 0; i < 17; i++ {
		if got := v.Get(i); got != 0 {
			t.Fatalf("Get(%d) = %d, want 0", i, got)
		}
	}
	if v.CurrSize() != 1 {
		t.Fatalf("CurrSize() = %d, want 1 for the empty vector", v.CurrSize())
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	const n = 37
	v := New(n, 1)
	want := make([]int, n)
	sets := []int{0, 1, 5, 6, 7, 20, 36, 5}
	for _, i := range sets {
		v.Set(i)
		want[i] = 1
		for j := 0; j < n; j++ {
			if got := v.Get(j); got != want[j] {
				t.Fatalf("after Set(%d): Get(%d) = %d, want %d", i, j, got, want[j])
			}
		}
	}
}

func TestGroupWidthRoundTrip(t *testing.T) {
	const n = 64
	for _, k := range []int{1, 2, 4, 8} {
		v := New(n, k)
		want := make([]int, n)
		for _, i := range []int{0, 3, 8, 9, 10, 63} {
			v.Set(i)
			want[i] = 1
		}
		for j := 0; j < n; j++ {
			if got := v.Get(j); got != want[j] {
				t.Fatalf("k=%d: Get(%d) = %d, want %d", k, j, got, want[j])
			}
		}
	}
}

func TestMaxObservedSizeIsHighWaterMark(t *testing.T) {
	v := New(16, 1)
	v.Set(0)
	v.Set(2)
	v.Set(4)
	peak := v.MaxObservedSize()
	if peak < v.CurrSize() {
		t.Fatalf("MaxObservedSize() = %d, want >= CurrSize() = %d", peak, v.CurrSize())
	}
	// Filling in the gaps reduces the run count but must not reduce
	// the high-water mark.
	v.Set(1)
	v.Set(3)
	if v.MaxObservedSize() < peak {
		t.Fatalf("MaxObservedSize() dropped from %d to %d", peak, v.MaxObservedSize())
	}
}
