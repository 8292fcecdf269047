package model

import (
	"fmt"

	"RangeFilter/keys"
)

// segment is a single affine piece: predict(key) = Slope*key + Bias.
type segment struct {
	Slope float64
	Bias  float64
}

// LinearSpline is the piecewise-linear CDF model: an ordered sequence of
// (slope, bias) segments, one per anchor: segment 0 is the leading
// segment from (0, 0) to anchors[0], and segment j joins anchors[j-1]
// to anchors[j]. grounded on
// original_source/include/models/linear_spline_model.hpp.
type LinearSpline[K keys.Integer] struct {
	minKey   K
	anchors  []Anchor[K]
	segments []segment
}

// NewLinearSpline builds a linear spline CDF model over sortedKeys,
// sampling one anchor every stride keys. sortedKeys must be non-empty and
// sorted ascending; stride must satisfy 1 <= stride <= len(sortedKeys).
func NewLinearSpline[K keys.Integer](sortedKeys []K, stride int) (*LinearSpline[K], error) {
	anchors, err := buildAnchors(sortedKeys, stride)
	if err != nil {
		return nil, err
	}

	segments := make([]segment, len(anchors))
	segments[0] = calcSegment(0, 0, keys.ToFloat64(anchors[0].Key), anchors[0].ECDF)
	for j := 1; j < len(anchors); j++ {
		segments[j] = calcSegment(
			keys.ToFloat64(anchors[j-1].Key), anchors[j-1].ECDF,
			keys.ToFloat64(anchors[j].Key), anchors[j].ECDF,
		)
	}

	return &LinearSpline[K]{minKey: sortedKeys[0], anchors: anchors, segments: segments}, nil
}

func calcSegment(k1, ecdf1, k2, ecdf2 float64) segment {
	slope := (ecdf2 - ecdf1) / (k2 - k1)
	bias := ecdf2 - slope*k2
	return segment{Slope: slope, Bias: bias}
}

// Predict returns the model's CDF estimate for key, clamped to [0,1].
// keys at or above the largest anchor (always the max input key, forced
// to eCDF 1.0) map to 1.0 - checked first so a single-key model, where
// min and max input key coincide, still satisfies predict(max_key) = 1.0.
// keys at or below the smallest input key map to 0.0. keys strictly
// between the smallest input key and the first anchor fall on the
// leading segment built from (0,0) to anchors[0], same as any other key
// below anchors[0].Key.
func (m *LinearSpline[K]) Predict(key K) float64 {
	last := len(m.anchors) - 1
	if key >= m.anchors[last].Key {
		return 1.0
	}
	if key <= m.minKey {
		return 0.0
	}

	seg := m.segments[hybridSearch(m.anchors, key)]
	value := seg.Slope*keys.ToFloat64(key) + seg.Bias

	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

// AnchorCount returns the number of sampled anchors (spline knots).
func (m *LinearSpline[K]) AnchorCount() int {
	return len(m.anchors)
}

// SizeBytes accounts for the anchor table and the segment array: each
// anchor is a key (8 bytes, the filter's keys are at most 64-bit wide)
// plus an eCDF float64, each segment a slope/bias float64 pair.
func (m *LinearSpline[K]) SizeBytes() int {
	const bytesPerAnchor = 16 // key + eCDF, both treated as 8 bytes
	const bytesPerSegment = 16
	return len(m.anchors)*bytesPerAnchor + len(m.segments)*bytesPerSegment
}

// Dump returns a human-readable rendering of the spline's anchors and
// segments, grounded on the reference implementation's print_model.
// used only by debugging and tests, never by the query path.
func (m *LinearSpline[K]) Dump() string {
	out := "anchors (key, ecdf):"
	for _, a := range m.anchors {
		out += fmt.Sprintf(" [%d, %.4f]", keys.ToUint64(a.Key), a.ECDF)
	}
	out += "\nsegments (slope, bias):"
	for _, s := range m.segments {
		out += fmt.Sprintf(" [%.6f, %.6f]", s.Slope, s.Bias)
	}
	return out
}
