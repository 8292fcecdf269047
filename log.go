package rangefilter

import "fmt"

// build-time diagnostics are printed directly, same way the teacher
// reports compaction and flush events. no structured logger wired in
// anywhere in the pack for a component at this layer.

func logBlockOverflow(blockIndex, n, blockSize int) {
	fmt.Printf("[Build] block %d holds %d keys, exceeds nominal block size %d\n", blockIndex, n, blockSize)
}

func logDegenerateSpline(anchorCount int) {
	fmt.Printf("[Build] cdf model has only %d anchor(s); predictions will be coarse\n", anchorCount)
}
