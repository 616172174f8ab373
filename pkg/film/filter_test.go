package film

import (
	"math"
	"testing"
)

func TestBoxFilter(t *testing.T) {
	f := NewBoxFilter(0.5)

	if f.Radius() != 0.5 {
		t.Errorf("Expected radius 0.5, got %v", f.Radius())
	}
	if w := f.Eval(0, 0); w != 1 {
		t.Errorf("Expected weight 1 at center, got %v", w)
	}
	if w := f.Eval(0.4, -0.4); w != 1 {
		t.Errorf("Expected weight 1 inside support, got %v", w)
	}
	if w := f.Eval(0.6, 0); w != 0 {
		t.Errorf("Expected weight 0 outside support, got %v", w)
	}
}

func TestTentFilter(t *testing.T) {
	f := NewTentFilter(1.0)

	if w := f.Eval(0, 0); w != 1 {
		t.Errorf("Expected weight 1 at center, got %v", w)
	}
	if w := f.Eval(1, 0); w != 0 {
		t.Errorf("Expected weight 0 at support edge, got %v", w)
	}
	if w := f.Eval(0.5, 0); math.Abs(w-0.5) > 1e-12 {
		t.Errorf("Expected weight 0.5 halfway out, got %v", w)
	}

	// Separable: falls off in both axes
	if w := f.Eval(0.5, 0.5); math.Abs(w-0.25) > 1e-12 {
		t.Errorf("Expected weight 0.25 at (0.5, 0.5), got %v", w)
	}
}

func TestGaussianFilter(t *testing.T) {
	f := NewGaussianFilter(2.0, 2.0)

	center := f.Eval(0, 0)
	if center <= 0 {
		t.Errorf("Expected positive weight at center, got %v", center)
	}

	// Monotonically decreasing toward the edge, exactly zero at it
	prev := center
	for _, d := range []float64{0.5, 1.0, 1.5} {
		w := f.Eval(d, 0)
		if w >= prev {
			t.Errorf("Expected weight to decrease at distance %v: %v >= %v", d, w, prev)
		}
		prev = w
	}
	if w := f.Eval(2.0, 0); w != 0 {
		t.Errorf("Expected weight 0 at support edge, got %v", w)
	}
}
