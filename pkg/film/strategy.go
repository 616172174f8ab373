package film

import "fmt"

// A bidirectional path of length k can be constructed by joining a light
// subpath with s vertices to an eye subpath with t vertices, for every
// t in [0, k+1] and s = k+1-t. That gives k+2 strategies at length k,
// so the slots for all lengths up to maxDepth pack densely into
//
//	sum(k+2, k=1..maxDepth) = maxDepth*(5+maxDepth)/2
//
// entries, with the block for length k starting at (k-1)*(k+4)/2.
// Writing above = s+t-2 = k-1, that block offset is above*(5+above)/2.

// StrategyCount returns the number of distinct sampling strategies for
// paths up to the given maximum depth, i.e. the size of a strategy bank.
func StrategyCount(maxDepth int) int {
	return maxDepth * (5 + maxDepth) / 2
}

// StrategyIndex maps a sampling strategy (s light vertices, t eye
// vertices) to its dense slot in a strategy bank. The caller must only
// pass strategies that are valid for the bank's configured depth; see
// ValidStrategy.
func StrategyIndex(s, t int) int {
	above := s + t - 2
	return s + above*(5+above)/2
}

// ValidStrategy reports whether (s, t) describes a constructible
// strategy for some path length in [1, maxDepth].
func ValidStrategy(s, t, maxDepth int) bool {
	if s < 0 || t < 0 {
		return false
	}
	length := s + t - 1
	return length >= 1 && length <= maxDepth
}

// checkStrategy panics when (s, t) is out of range for the configured
// depth. Deposit paths use it to fail fast on contract violations
// instead of silently corrupting a neighboring slot.
func checkStrategy(s, t, maxDepth int) {
	if !ValidStrategy(s, t, maxDepth) {
		panic(fmt.Sprintf("film: strategy (s=%d, t=%d) out of range for maxDepth=%d", s, t, maxDepth))
	}
}
