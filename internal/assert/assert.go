//go:build !debug

// Package assert gates contract-violation checks behind the "debug" build
// tag. In a release build (no tag) Check is a no-op: out-of-range bit
// offsets and lo > hi queries are undefined behavior, not checked errors,
// per the programmer-error contract in the filter's error design.
package assert

// Check is a no-op in release builds. Build with -tags debug to turn
// contract violations into panics instead of silently corrupting state.
func Check(cond bool, msg string) {}
