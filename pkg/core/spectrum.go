package core

import "math"

// Spectrum represents a radiometric quantity as a fixed set of RGB channels
type Spectrum struct {
	R, G, B float64
}

// NewSpectrum creates a new Spectrum
func NewSpectrum(r, g, b float64) Spectrum {
	return Spectrum{R: r, G: g, B: b}
}

// Add returns the channel-wise sum of two spectra
func (s Spectrum) Add(other Spectrum) Spectrum {
	return Spectrum{s.R + other.R, s.G + other.G, s.B + other.B}
}

// Sub returns the channel-wise difference of two spectra
func (s Spectrum) Sub(other Spectrum) Spectrum {
	return Spectrum{s.R - other.R, s.G - other.G, s.B - other.B}
}

// Scale returns the spectrum scaled by a scalar
func (s Spectrum) Scale(factor float64) Spectrum {
	return Spectrum{s.R * factor, s.G * factor, s.B * factor}
}

// MulSpectrum returns the channel-wise product of two spectra
func (s Spectrum) MulSpectrum(other Spectrum) Spectrum {
	return Spectrum{s.R * other.R, s.G * other.G, s.B * other.B}
}

// IsZero reports whether every channel is exactly zero
func (s Spectrum) IsZero() bool {
	return s.R == 0 && s.G == 0 && s.B == 0
}

// IsValid reports whether no channel is NaN or infinite
func (s Spectrum) IsValid() bool {
	for _, c := range [3]float64{s.R, s.G, s.B} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// MaxChannel returns the largest channel value
func (s Spectrum) MaxChannel() float64 {
	return max(s.R, max(s.G, s.B))
}

// Clamp returns a spectrum with channels clamped to [min, max]
func (s Spectrum) Clamp(minVal, maxVal float64) Spectrum {
	return Spectrum{
		R: max(minVal, min(maxVal, s.R)),
		G: max(minVal, min(maxVal, s.G)),
		B: max(minVal, min(maxVal, s.B)),
	}
}

// Luminance returns the perceptual luminance of the spectrum
// Uses standard luminance weights: 0.299*R + 0.587*G + 0.114*B
func (s Spectrum) Luminance() float64 {
	return 0.299*s.R + 0.587*s.G + 0.114*s.B
}

// GammaCorrect applies gamma correction to color values
func (s Spectrum) GammaCorrect(gamma float64) Spectrum {
	invGamma := 1.0 / gamma
	return Spectrum{
		R: math.Pow(s.R, invGamma),
		G: math.Pow(s.G, invGamma),
		B: math.Pow(s.B, invGamma),
	}
}

// Point2 represents a continuous position in pixel space
type Point2 struct {
	X, Y float64
}

// NewPoint2 creates a new Point2
func NewPoint2(x, y float64) Point2 {
	return Point2{X: x, Y: y}
}
