// Package block implements the Golomb-coded block array: each block
// holds a sorted batch of positions drawn from [0, B*P) in a split
// layout, all w-bit remainders packed first then a single interleaved
// unary run of the quotients, and answers block-local range containment
// without decoding every position. grounded on
// original_source/include/snarf.hpp (_create_gcs_block,
// _range_query_in_block) and, for the Go shape of "batch of records ->
// one encoded buffer with a declared record count carried alongside
// it", on the teacher's sstable.Builder/Reader pair.
package block

import (
	"RangeFilter/bitbuffer"
)

// Block is a Golomb-coded encoding of a sorted batch of positions local
// to one block's coordinate range [0, B*P). It exclusively owns its
// backing BitBuffer.
type Block struct {
	buf *bitbuffer.BitBuffer
	n   int
}

// Encode builds a Block from batch, a non-decreasing sequence of
// block-local positions in [0, blockSize*p). w is the remainder width in
// bits and p = 2^w the Golomb divisor. The allocated buffer is
// (w+1)*len(batch) + blockSize bits, per the spec's block-size bound: the
// maximum possible quotient is blockSize-1, so the unary run can never
// exceed blockSize zeros plus len(batch) terminating ones.
func Encode(batch []uint64, w int, p uint64, blockSize int) *Block {
	n := len(batch)
	buf := bitbuffer.New((w+1)*n + blockSize)

	for i, x := range batch {
		buf.WriteBits(i*w, x%p, w)
	}

	offset := n * w
	prevQuotient := uint64(0)
	for _, x := range batch {
		quotient := x / p
		for prevQuotient < quotient {
			buf.WriteBits(offset, 0, 1)
			offset++
			prevQuotient++
		}
		buf.WriteBits(offset, 1, 1)
		offset++
	}

	return &Block{buf: buf, n: n}
}

// N returns the number of positions encoded in the block (n_i).
func (b *Block) N() int {
	return b.n
}

// SizeBytes returns the byte footprint of the block's backing buffer.
func (b *Block) SizeBytes() int {
	return b.buf.SizeBytes()
}

// Bytes returns a copy of the block's backing buffer, used to fold a
// built filter's contents into a determinism fingerprint. Not used on
// the query path.
func (b *Block) Bytes() []byte {
	return b.buf.Bytes()
}

// RangeProbe reports whether any encoded position falls within
// [lo, hi], both block-local coordinates. It walks the remainder and
// unary streams with two independent cursors (state machine: RunScan
// while consuming zeros, Emit on a terminating one), prefiltering on the
// running quotient z before ever reading a remainder, and short-circuits
// once z's scaled lower bound has passed hi.
func (b *Block) RangeProbe(lo, hi uint64, w int, p uint64) bool {
	offBin := 0
	offUn := b.n * w
	z := uint64(0)

	for i := 0; i < b.n; i++ {
		bit := b.buf.ReadBit(offUn)
		offUn++

		if !bit {
			z++
			i--
			if z*p > hi {
				return false
			}
			continue
		}

		if (z+1)*p >= lo && hi >= z*p {
			rem := b.buf.ReadBits(offBin, w)
			value := z*p + rem
			if value >= lo && value <= hi {
				return true
			}
		}
		offBin += w
	}

	return false
}
