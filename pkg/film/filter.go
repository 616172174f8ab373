package film

import "math"

// Filter is a pixel reconstruction kernel. A point sample at distance
// (dx, dy) from a pixel center contributes Eval(dx, dy) of its value to
// that pixel; Eval is zero outside the square support [-Radius, Radius].
type Filter interface {
	// Radius returns the kernel's support radius in pixels.
	Radius() float64
	// Eval evaluates the kernel at the given offset from its center.
	Eval(dx, dy float64) float64
}

// BoxFilter weighs every sample inside its support equally. With radius
// 0.5 each sample lands in exactly one pixel.
type BoxFilter struct {
	radius float64
}

// NewBoxFilter creates a box filter with the given support radius.
func NewBoxFilter(radius float64) *BoxFilter {
	return &BoxFilter{radius: radius}
}

func (f *BoxFilter) Radius() float64 { return f.radius }

func (f *BoxFilter) Eval(dx, dy float64) float64 {
	if math.Abs(dx) > f.radius || math.Abs(dy) > f.radius {
		return 0
	}
	return 1
}

// TentFilter falls off linearly from the kernel center to the edge of
// its support.
type TentFilter struct {
	radius float64
}

// NewTentFilter creates a tent (triangle) filter with the given radius.
func NewTentFilter(radius float64) *TentFilter {
	return &TentFilter{radius: radius}
}

func (f *TentFilter) Radius() float64 { return f.radius }

func (f *TentFilter) Eval(dx, dy float64) float64 {
	return math.Max(0, f.radius-math.Abs(dx)) * math.Max(0, f.radius-math.Abs(dy))
}

// GaussianFilter is a truncated gaussian, offset so it reaches exactly
// zero at the edge of its support.
type GaussianFilter struct {
	radius float64
	alpha  float64
	edge   float64 // gaussian value at the support edge
}

// NewGaussianFilter creates a gaussian filter with the given radius and
// falloff rate alpha (2 is a common choice).
func NewGaussianFilter(radius, alpha float64) *GaussianFilter {
	return &GaussianFilter{
		radius: radius,
		alpha:  alpha,
		edge:   math.Exp(-alpha * radius * radius),
	}
}

func (f *GaussianFilter) Radius() float64 { return f.radius }

func (f *GaussianFilter) Eval(dx, dy float64) float64 {
	return f.eval1D(dx) * f.eval1D(dy)
}

func (f *GaussianFilter) eval1D(d float64) float64 {
	return math.Max(0, math.Exp(-f.alpha*d*d)-f.edge)
}
