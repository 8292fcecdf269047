package model

import (
	"math"
	"testing"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestLinearSplinePaperReproduction(t *testing.T) {
	sortedKeys := []uint64{3, 5, 12, 13, 25, 35, 47, 57, 67, 72, 75, 80}
	m, err := NewLinearSpline(sortedKeys, 3)
	if err != nil {
		t.Fatalf("NewLinearSpline: %v", err)
	}

	cases := []struct {
		key  uint64
		want float64
	}{
		{12, 0.25},
		{35, 0.5},
		{67, 0.75},
		{80, 1.0},
		{6, 0.125},
	}
	for _, tc := range cases {
		if got := m.Predict(tc.key); !approxEqual(got, tc.want, 1e-6) {
			t.Errorf("Predict(%d) = %v, want %v", tc.key, got, tc.want)
		}
	}

	if dump := m.Dump(); dump == "" {
		t.Error("Dump() returned empty string")
	} else {
		t.Log(dump)
	}
}

func TestLinearSplineBoundaries(t *testing.T) {
	// R=3 so anchors[0].Key (20) is not the minimum input key (10): the
	// zero-guard must compare against the min input key, not anchors[0].
	sortedKeys := []uint64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	m, err := NewLinearSpline(sortedKeys, 3)
	if err != nil {
		t.Fatalf("NewLinearSpline: %v", err)
	}
	if m.anchors[0].Key == sortedKeys[0] {
		t.Fatalf("test setup invalid: anchors[0].Key must differ from the min input key")
	}

	if got := m.Predict(uint64(0)); got != 0.0 {
		t.Errorf("Predict(below min) = %v, want 0.0", got)
	}
	if got := m.Predict(uint64(10)); got != 0.0 {
		t.Errorf("Predict(min input key) = %v, want 0.0", got)
	}
	if got := m.Predict(uint64(15)); got <= 0.0 {
		t.Errorf("Predict(15) = %v, want > 0.0 (between min input key and anchors[0], on the leading segment)", got)
	}
	if got := m.Predict(uint64(100)); got != 1.0 {
		t.Errorf("Predict(max) = %v, want 1.0", got)
	}
	if got := m.Predict(uint64(9999)); got != 1.0 {
		t.Errorf("Predict(above max) = %v, want 1.0", got)
	}
}

func TestLinearSplineMonotone(t *testing.T) {
	const n = 5000
	sortedKeys := make([]uint64, n)
	for i := range sortedKeys {
		sortedKeys[i] = uint64(i * 7)
	}
	m, err := NewLinearSpline(sortedKeys, 50)
	if err != nil {
		t.Fatalf("NewLinearSpline: %v", err)
	}

	prev := m.Predict(sortedKeys[0])
	for i := 1; i < n; i++ {
		got := m.Predict(sortedKeys[i])
		if got < prev {
			t.Fatalf("non-monotone predict at index %d: predict(%d)=%v < predict(%d)=%v",
				i, sortedKeys[i], got, sortedKeys[i-1], prev)
		}
		prev = got
	}
}

func TestLinearSplineSingleKey(t *testing.T) {
	m, err := NewLinearSpline([]uint64{42}, 1)
	if err != nil {
		t.Fatalf("NewLinearSpline: %v", err)
	}
	if got := m.Predict(uint64(42)); got != 1.0 {
		t.Errorf("Predict(only key) = %v, want 1.0", got)
	}
}

func TestNewLinearSplineRejectsBadInput(t *testing.T) {
	if _, err := NewLinearSpline([]uint64{}, 1); err == nil {
		t.Error("expected error for empty key set")
	}
	if _, err := NewLinearSpline([]uint64{1, 2, 3}, 10); err == nil {
		t.Error("expected error for stride larger than key count")
	}
	if _, err := NewLinearSpline([]uint64{1, 2, 3}, 0); err == nil {
		t.Error("expected error for non-positive stride")
	}
}

func TestHybridSearchMatchesLinearScan(t *testing.T) {
	const n = 3000
	sortedKeys := make([]uint64, n)
	for i := range sortedKeys {
		sortedKeys[i] = uint64(i)
	}
	anchors, err := buildAnchors(sortedKeys, 7)
	if err != nil {
		t.Fatalf("buildAnchors: %v", err)
	}

	for _, query := range []uint64{0, 1, 500, 1999, 2998, 2999} {
		got := hybridSearch(anchors, query)

		want := len(anchors) - 1
		for i, a := range anchors {
			if a.Key >= query {
				want = i
				break
			}
		}
		if got != want {
			t.Errorf("hybridSearch(%d) = %d, want %d", query, got, want)
		}
	}
}
