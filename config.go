package rangefilter

// Config carries the build-time tunables for a Filter. no config file,
// no env var, no CLI flag binding any of these - the teacher's own
// storage tunables (block size, memtable limit, max files per level) are
// likewise plain constructor arguments or package constants, never an
// external config source.
type Config struct {
	// BitsPerKey directly controls the target false-positive rate
	// 0.5^(BitsPerKey-3) and, through it, the Golomb divisor P and
	// remainder width w. Must be > 3.
	BitsPerKey float64

	// BlockSize is the nominal number of keys per Golomb-coded block.
	// Larger blocks compress better but make each block probe walk more
	// encoded keys, raising query latency. Must be >= 1.
	BlockSize int

	// Stride is the sampling interval R for the CDF model's anchor
	// table: every Stride-th key becomes a spline knot. Must satisfy
	// 1 <= Stride <= len(keys). Larger strides shrink the model at the
	// cost of prediction accuracy.
	Stride int
}
