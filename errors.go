package rangefilter

import "errors"

// Configuration errors are returned from Build; the filter is never
// partially constructed. Grounded on the teacher's pkg/arena error
// style: flat sentinels created with errors.New, wrapped with
// fmt.Errorf("...: %w", err) at call sites rather than custom error
// types.
var (
	// ErrEmptyKeySet is returned when Build is called with no keys.
	ErrEmptyKeySet = errors.New("rangefilter: input key set is empty")

	// ErrBitsPerKeyTooSmall is returned when Config.BitsPerKey <= 3.
	ErrBitsPerKeyTooSmall = errors.New("rangefilter: bits_per_key must be > 3")

	// ErrInvalidBlockSize is returned when Config.BlockSize <= 0.
	ErrInvalidBlockSize = errors.New("rangefilter: block_size must be positive")

	// ErrInvalidStride is returned when Config.Stride <= 0.
	ErrInvalidStride = errors.New("rangefilter: stride R must be positive")

	// ErrStrideTooLarge is returned when Config.Stride exceeds the
	// number of input keys.
	ErrStrideTooLarge = errors.New("rangefilter: stride R exceeds input key count")
)
