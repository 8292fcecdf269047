// Package rangefilter implements a learned approximate range filter for
// sorted integer keys: given a static sorted key set, it answers "does
// any key lie in [lo, hi]?" with zero false negatives and a tunable,
// low false-positive rate, in roughly BitsPerKey bits per key. built
// once from a sorted slice, immutable and safe for concurrent readers
// after that.
//
// grounded on the teacher repo's facade package, kv: Filter.Build plays
// the role of kv.NewKVStore + kv.CreateSSTable (validate config, build
// owned sub-structures, partition sorted input into blocks), and
// Filter.RangeQuery plays the role of sstable.Reader.Get (filter-gated
// lookup, scanning only the blocks the filter says might hold a match).
package rangefilter

import (
	"fmt"
	"hash/crc32"
	"math"
	"sort"
	"time"

	"RangeFilter/block"
	"RangeFilter/internal/assert"
	"RangeFilter/internal/metrics"
	"RangeFilter/keys"
	"RangeFilter/model"
)

// Filter is the built, immutable range filter. It exclusively owns its
// CDF model and its block array; each block exclusively owns its bit
// buffer. There are no back-references between the two.
type Filter[K keys.Integer] struct {
	model  model.Predictor[K]
	blocks []*block.Block

	numKeys   int
	p         uint64 // scaling factor P = 2^w
	w         int    // remainder width in bits
	blockSize int
	maxPos    uint64 // N*P - 1, the largest valid virtual position
}

// Build constructs a Filter from sortedKeys (must already be sorted
// ascending) and cfg. fatal config errors - bits_per_key <= 3, an empty
// key set, or a stride larger than the key count - are reported as
// errors rather than panics. the filter is never partially built.
func Build[K keys.Integer](sortedKeys []K, cfg Config) (*Filter[K], error) {
	start := time.Now()

	n := len(sortedKeys)
	if n == 0 {
		return nil, ErrEmptyKeySet
	}
	if cfg.BitsPerKey <= 3 {
		return nil, ErrBitsPerKeyTooSmall
	}
	if cfg.BlockSize <= 0 {
		return nil, ErrInvalidBlockSize
	}
	if cfg.Stride <= 0 {
		return nil, ErrInvalidStride
	}
	if cfg.Stride > n {
		return nil, ErrStrideTooLarge
	}

	cdf, err := model.NewLinearSpline(sortedKeys, cfg.Stride)
	if err != nil {
		return nil, fmt.Errorf("rangefilter: building cdf model: %w", err)
	}
	if cdf.AnchorCount() == 1 {
		logDegenerateSpline(cdf.AnchorCount())
	}

	targetFPR := math.Pow(0.5, cfg.BitsPerKey-3.0)
	w := int(math.Ceil(math.Log2(1.0 / targetFPR)))
	p := uint64(1) << w
	totalBlocks := (n + cfg.BlockSize - 1) / cfg.BlockSize
	maxPos := uint64(n)*p - 1

	positions := make([]uint64, n)
	for i, key := range sortedKeys {
		positions[i] = scalePosition(cdf.Predict(key), n, p, maxPos)
	}
	// defensive sort: predict() is assumed monotone on sorted input, but
	// float rounding at segment boundaries can invert adjacent positions
	// by less than a ULP. see SPEC_FULL.md §5.4.
	sort.Slice(positions, func(i, j int) bool { return positions[i] < positions[j] })

	blockSpan := uint64(cfg.BlockSize) * p
	blocks := make([]*block.Block, totalBlocks)
	idx := 0
	for i := 0; i < totalBlocks; i++ {
		lower := uint64(i) * blockSpan
		upper := lower + blockSpan

		var batch []uint64
		for idx < n && positions[idx] >= lower && positions[idx] < upper {
			batch = append(batch, positions[idx]-lower)
			idx++
		}

		blocks[i] = block.Encode(batch, w, p, cfg.BlockSize)
		metrics.PositionsPerBlock.Observe(float64(len(batch)))
		if len(batch) > cfg.BlockSize {
			logBlockOverflow(i, len(batch), cfg.BlockSize)
		}
	}

	metrics.BuildDuration.Observe(time.Since(start).Seconds())
	metrics.FiltersBuiltTotal.Inc()

	return &Filter[K]{
		model:     cdf,
		blocks:    blocks,
		numKeys:   n,
		p:         p,
		w:         w,
		blockSize: cfg.BlockSize,
		maxPos:    maxPos,
	}, nil
}

// scalePosition maps a CDF estimate to a clamped position in
// [0, N*P - 1].
func scalePosition(cdfValue float64, n int, p uint64, maxPos uint64) uint64 {
	pos := uint64(math.Floor(cdfValue * float64(n) * float64(p)))
	if pos > maxPos {
		pos = maxPos
	}
	return pos
}

// RangeQuery answers whether any encoded key might lie in [lo, hi].
// returns false only if the true set definitely contains no key in the
// range; returns true if at least one encoded position falls in the
// predicted position range, which the caller must treat as a possibly
// false positive. lo must be <= hi - violating this is a programmer
// error, checked only in debug builds, never reported as an error value.
func (f *Filter[K]) RangeQuery(lo, hi K) bool {
	assert.Check(!(hi < lo), "rangefilter: RangeQuery requires lo <= hi")

	posLo := scalePosition(f.model.Predict(lo), f.numKeys, f.p, f.maxPos)
	posHi := scalePosition(f.model.Predict(hi), f.numKeys, f.p, f.maxPos)

	blockSpan := uint64(f.blockSize) * f.p
	blockLo := posLo / blockSpan
	blockHi := posHi / blockSpan
	if last := uint64(len(f.blocks) - 1); blockHi > last {
		blockHi = last
	}

	touched := 0
	for i := blockLo; i <= blockHi; i++ {
		touched++

		lower := uint64(0)
		if i == blockLo {
			lower = posLo - i*blockSpan
		}
		upper := blockSpan - 1
		if i == blockHi {
			upper = posHi - i*blockSpan
		}

		if f.blocks[i].RangeProbe(lower, upper, f.w, f.p) {
			metrics.BlocksTouchedPerQuery.Observe(float64(touched))
			metrics.QueriesTotal.WithLabelValues("hit").Inc()
			return true
		}
	}

	metrics.BlocksTouchedPerQuery.Observe(float64(touched))
	metrics.QueriesTotal.WithLabelValues("miss").Inc()
	return false
}

// SizeBytes returns the total space used by the filter's internal
// storage: the model, the per-block position counts, and every block's
// encoded buffer. grounded on SNARF::size_bytes in
// original_source/include/snarf.hpp.
func (f *Filter[K]) SizeBytes() int {
	size := f.model.SizeBytes()
	size += len(f.blocks) * 8 // n_i table, one int64-sized count per block
	size += 5 * 8             // numKeys, p, w, blockSize, maxPos
	for _, b := range f.blocks {
		size += b.SizeBytes()
	}
	return size
}

// Fingerprint folds a crc32 checksum over every block's encoded bytes
// and position count, in block-index order. two filters built from
// identical inputs with identical config produce identical
// fingerprints - the build-determinism property from spec.md §8.6 made
// concrete and cheap to assert on. grounded on the teacher's
// pkg/wal.WAL.Write checksum pattern, repurposed from integrity
// checking to determinism checking since persistence is out of scope.
func (f *Filter[K]) Fingerprint() uint32 {
	digest := crc32.NewIEEE()
	var buf [8]byte
	for _, b := range f.blocks {
		n := uint64(b.N())
		for i := 0; i < 8; i++ {
			buf[i] = byte(n >> (8 * i))
		}
		_, _ = digest.Write(buf[:])
		_, _ = digest.Write(b.Bytes())
	}
	return digest.Sum32()
}

// P returns the scaling factor, the Golomb divisor applied uniformly
// across every block.
func (f *Filter[K]) P() uint64 { return f.p }

// W returns the remainder width in bits (P = 2^W).
func (f *Filter[K]) W() int { return f.w }

// BlockCount returns the number of encoded blocks, M = ceil(N/B).
func (f *Filter[K]) BlockCount() int { return len(f.blocks) }

// NumKeys returns N, the number of keys the filter was built from.
func (f *Filter[K]) NumKeys() int { return f.numKeys }

// Stats is a debugging snapshot of a built filter's shape, grounded on
// the reference implementation's print_model debugging aid. never
// consulted on the query path.
type Stats struct {
	BlockCount      int
	AnchorCount     int
	AvgKeysPerBlock float64
	SizeBytes       int
}

// Stats returns a snapshot of the filter's internal shape.
func (f *Filter[K]) Stats() Stats {
	total := 0
	for _, b := range f.blocks {
		total += b.N()
	}
	avg := 0.0
	if len(f.blocks) > 0 {
		avg = float64(total) / float64(len(f.blocks))
	}
	return Stats{
		BlockCount:      len(f.blocks),
		AnchorCount:     f.model.AnchorCount(),
		AvgKeysPerBlock: avg,
		SizeBytes:       f.SizeBytes(),
	}
}
