package film

import "testing"

// enumerateStrategies calls fn for every constructible (s, t) pair up
// to the given maximum depth, mirroring how the integrator iterates
// strategies: k+2 ways to split a path of length k between light and
// eye subpath vertices.
func enumerateStrategies(maxDepth int, fn func(s, t int)) {
	for k := 1; k <= maxDepth; k++ {
		for t := 0; t <= k+1; t++ {
			fn(k+1-t, t)
		}
	}
}

func TestStrategyIndexBijection(t *testing.T) {
	for _, maxDepth := range []int{1, 2, 3, 8} {
		size := StrategyCount(maxDepth)
		seen := make(map[int][2]int, size)

		enumerateStrategies(maxDepth, func(s, tt int) {
			if !ValidStrategy(s, tt, maxDepth) {
				t.Errorf("maxDepth=%d: (s=%d, t=%d) should be valid", maxDepth, s, tt)
				return
			}
			idx := StrategyIndex(s, tt)
			if idx < 0 || idx >= size {
				t.Errorf("maxDepth=%d: (s=%d, t=%d) maps to %d, outside [0, %d)", maxDepth, s, tt, idx, size)
				return
			}
			if prev, collision := seen[idx]; collision {
				t.Errorf("maxDepth=%d: (s=%d, t=%d) collides with (s=%d, t=%d) at slot %d",
					maxDepth, s, tt, prev[0], prev[1], idx)
			}
			seen[idx] = [2]int{s, tt}
		})

		// Injective into [0, size) with exactly size pairs means onto as well
		if len(seen) != size {
			t.Errorf("maxDepth=%d: %d distinct slots used, expected %d", maxDepth, len(seen), size)
		}
	}
}

func TestStrategyIndexBoundaryDepth(t *testing.T) {
	// With maxDepth=1 only the three splits of a length-1 path exist
	expected := map[[2]int]bool{
		{2, 0}: true,
		{1, 1}: true,
		{0, 2}: true,
	}

	if size := StrategyCount(1); size != 3 {
		t.Fatalf("Expected 3 slots for maxDepth=1, got %d", size)
	}

	used := make(map[int]bool)
	enumerateStrategies(1, func(s, tt int) {
		if !expected[[2]int{s, tt}] {
			t.Errorf("Unexpected strategy (s=%d, t=%d) at depth 1", s, tt)
		}
		idx := StrategyIndex(s, tt)
		if idx < 0 || idx >= 3 {
			t.Errorf("(s=%d, t=%d) maps to %d, outside [0, 3)", s, tt, idx)
		}
		used[idx] = true
	})
	if len(used) != 3 {
		t.Errorf("Expected slots [0, 3) fully covered, got %d distinct", len(used))
	}
}

func TestValidStrategy(t *testing.T) {
	tests := []struct {
		name     string
		s, t     int
		maxDepth int
		valid    bool
	}{
		{name: "negative s", s: -1, t: 3, maxDepth: 2, valid: false},
		{name: "negative t", s: 3, t: -1, maxDepth: 2, valid: false},
		{name: "too short", s: 1, t: 0, maxDepth: 2, valid: false},
		{name: "shortest path", s: 1, t: 1, maxDepth: 2, valid: true},
		{name: "deepest at limit", s: 0, t: 3, maxDepth: 2, valid: true},
		{name: "beyond limit", s: 0, t: 4, maxDepth: 2, valid: false},
		{name: "pure light path", s: 3, t: 0, maxDepth: 2, valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidStrategy(tt.s, tt.t, tt.maxDepth); got != tt.valid {
				t.Errorf("ValidStrategy(%d, %d, %d) = %v, expected %v", tt.s, tt.t, tt.maxDepth, got, tt.valid)
			}
		})
	}
}
