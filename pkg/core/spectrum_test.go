package core

import (
	"math"
	"testing"
)

func TestSpectrum_Arithmetic(t *testing.T) {
	a := NewSpectrum(1, 2, 3)
	b := NewSpectrum(0.5, 0.25, 0.125)

	sum := a.Add(b)
	if sum != NewSpectrum(1.5, 2.25, 3.125) {
		t.Errorf("Expected (1.5, 2.25, 3.125), got %v", sum)
	}

	diff := sum.Sub(b)
	if diff != a {
		t.Errorf("Expected %v after subtracting back, got %v", a, diff)
	}

	scaled := a.Scale(2)
	if scaled != NewSpectrum(2, 4, 6) {
		t.Errorf("Expected (2, 4, 6), got %v", scaled)
	}

	prod := a.MulSpectrum(b)
	if prod != NewSpectrum(0.5, 0.5, 0.375) {
		t.Errorf("Expected (0.5, 0.5, 0.375), got %v", prod)
	}
}

func TestSpectrum_IsZero(t *testing.T) {
	if !(Spectrum{}).IsZero() {
		t.Error("Zero value should report IsZero")
	}
	if NewSpectrum(0, 1e-12, 0).IsZero() {
		t.Error("Non-zero channel should not report IsZero")
	}
}

func TestSpectrum_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		spectrum Spectrum
		valid    bool
	}{
		{name: "finite", spectrum: NewSpectrum(0.1, 0.2, 0.3), valid: true},
		{name: "NaN channel", spectrum: NewSpectrum(math.NaN(), 0, 0), valid: false},
		{name: "infinite channel", spectrum: NewSpectrum(0, math.Inf(1), 0), valid: false},
		{name: "negative finite", spectrum: NewSpectrum(-1, 0, 0), valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spectrum.IsValid(); got != tt.valid {
				t.Errorf("Expected IsValid=%v, got %v", tt.valid, got)
			}
		})
	}
}

func TestSpectrum_Luminance(t *testing.T) {
	white := NewSpectrum(1, 1, 1)
	const tolerance = 1e-9
	if math.Abs(white.Luminance()-1.0) > tolerance {
		t.Errorf("Expected luminance 1.0 for white, got %v", white.Luminance())
	}

	green := NewSpectrum(0, 1, 0)
	if math.Abs(green.Luminance()-0.587) > tolerance {
		t.Errorf("Expected luminance 0.587 for green, got %v", green.Luminance())
	}
}

func TestSpectrum_Clamp(t *testing.T) {
	s := NewSpectrum(-0.5, 0.5, 1.5)
	clamped := s.Clamp(0, 1)
	if clamped != NewSpectrum(0, 0.5, 1) {
		t.Errorf("Expected (0, 0.5, 1), got %v", clamped)
	}
}
