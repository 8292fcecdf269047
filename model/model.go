// Package model implements the CDF model layer: predict: K -> [0,1],
// monotone non-decreasing on K, built from a sorted key set via eCDF
// sampling. linear.go has the concrete piecewise-linear spline; this
// file holds the shared contract - anchor-table construction from the
// sampled eCDF - grounded on original_source/include/models/base_model.hpp
// and base_spline_model.hpp.
package model

import (
	"errors"
	"fmt"

	"RangeFilter/keys"
)

// SearchLimit is where the hybrid anchor search drops from binary
// search to a linear scan. matches the reference implementation.
const SearchLimit = 10

// ErrEmptyKeySet is returned when a model is built over zero keys.
var ErrEmptyKeySet = errors.New("model: input key set is empty")

// ErrStrideTooLarge is returned when the requested sampling stride R
// exceeds the number of input keys.
var ErrStrideTooLarge = errors.New("model: stride R exceeds input key count")

// Predictor is what the filter facade needs from a CDF model: a
// monotone estimate of a key's position in [0,1], plus size accounting.
// linear spline is the only concrete implementation for now.
type Predictor[K keys.Integer] interface {
	Predict(key K) float64
	SizeBytes() int
	AnchorCount() int
}

// Anchor is a single sampled (key, eCDF) pair, a spline knot.
type Anchor[K keys.Integer] struct {
	Key  K
	ECDF float64
}

// buildAnchors samples S = ceil(N/R) anchor points from the sorted input
// keys. the j-th anchor (0-indexed) is the key at index
// floor((j+1)*N/S) - 1, with eCDF (idx+1)/N. the final anchor is forced
// to (max_key, 1.0) regardless of what the sampling formula lands on, so
// Predict(max_key) is always exactly 1.0.
func buildAnchors[K keys.Integer](sortedKeys []K, stride int) ([]Anchor[K], error) {
	n := len(sortedKeys)
	if n == 0 {
		return nil, ErrEmptyKeySet
	}
	if stride <= 0 {
		return nil, fmt.Errorf("model: stride R must be positive, got %d", stride)
	}
	if stride > n {
		return nil, ErrStrideTooLarge
	}

	s := (n + stride - 1) / stride
	anchors := make([]Anchor[K], s)

	for j := 0; j < s; j++ {
		idx := ((j+1)*n)/s - 1
		anchors[j] = Anchor[K]{
			Key:  sortedKeys[idx],
			ECDF: float64(idx+1) / float64(n),
		}
	}

	anchors[s-1] = Anchor[K]{
		Key:  sortedKeys[n-1],
		ECDF: 1.0,
	}

	return anchors, nil
}

// hybridSearch locates the first anchor whose key is >= query: binary
// search until the window is <= SearchLimit, then a linear scan.
// returns len(anchors)-1 if every anchor key is < query (Predict
// guards this case before calling in, so it shouldn't happen in practice).
func hybridSearch[K keys.Integer](anchors []Anchor[K], query K) int {
	left, right := 0, len(anchors)-1

	for (right - left) > SearchLimit {
		mid := left + (right-left)/2
		if anchors[mid].Key < query {
			left = mid
		} else {
			right = mid
		}
	}

	for i := left; i <= right; i++ {
		if anchors[i].Key >= query {
			return i
		}
	}

	return len(anchors) - 1
}
