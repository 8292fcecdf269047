package bitbuffer

import (
	"math/rand"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		offset int
		value  uint64
		k      int
	}{
		{"single bit set", 3, 1, 1},
		{"single bit clear", 3, 0, 1},
		{"byte aligned", 8, 0xAB, 8},
		{"crosses word boundary", 60, 0x3F, 8},
		{"full word", 0, 0xDEADBEEFCAFEBABE, 64},
		{"wide value truncated to k", 10, 0x1FF, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf := New(200)
			buf.WriteBits(tc.offset, tc.value, tc.k)
			got := buf.ReadBits(tc.offset, tc.k)
			want := tc.value
			if tc.k < 64 {
				want &= (uint64(1) << tc.k) - 1
			}
			if got != want {
				t.Fatalf("ReadBits(%d, %d) = %#x, want %#x", tc.offset, tc.k, got, want)
			}
		})
	}
}

func TestReadBit(t *testing.T) {
	buf := New(16)
	buf.WriteBits(5, 1, 1)
	for i := 0; i < 16; i++ {
		got := buf.ReadBit(i)
		want := i == 5
		if got != want {
			t.Fatalf("ReadBit(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestSizeBytes(t *testing.T) {
	cases := []struct {
		bits int
		want int
	}{
		{0, 0},
		{1, 1},
		{8, 1},
		{9, 2},
		{64, 8},
		{65, 9},
	}
	for _, tc := range cases {
		if got := New(tc.bits).SizeBytes(); got != tc.want {
			t.Fatalf("New(%d).SizeBytes() = %d, want %d", tc.bits, got, tc.want)
		}
	}
}

func TestRandomRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const L = 10000
	buf := New(L)

	type write struct {
		offset int
		value  uint64
		k      int
	}
	var writes []write

	offset := 0
	for offset < L {
		k := 1 + rng.Intn(64)
		if offset+k > L {
			k = L - offset
		}
		if k == 0 {
			break
		}
		value := rng.Uint64()
		buf.WriteBits(offset, value, k)
		writes = append(writes, write{offset, value, k})
		offset += k
	}

	for _, w := range writes {
		want := w.value
		if w.k < 64 {
			want &= (uint64(1) << w.k) - 1
		}
		if got := buf.ReadBits(w.offset, w.k); got != want {
			t.Fatalf("ReadBits(%d, %d) = %#x, want %#x", w.offset, w.k, got, want)
		}
	}
}

func TestWriteDoesNotClobberNeighbors(t *testing.T) {
	buf := New(128)
	buf.WriteBits(0, ^uint64(0), 64)
	buf.WriteBits(64, ^uint64(0), 64)

	buf.WriteBits(10, 0, 4)

	if got := buf.ReadBits(0, 10); got != (1<<10)-1 {
		t.Fatalf("bits before write clobbered: got %#x", got)
	}
	if got := buf.ReadBits(14, 50); got != (uint64(1)<<50)-1 {
		t.Fatalf("bits after write clobbered: got %#x", got)
	}
}
