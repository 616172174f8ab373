package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-bidirectional-renderer/pkg/core"
	"github.com/df07/go-bidirectional-renderer/pkg/film"
)

// Develop converts an accumulated master work result into a displayable
// image: the weight-normalized camera plane plus, when present, the
// light plane scaled by 1/sampleCount (light-path contributions are
// averaged over the samples per pixel, not filter weights).
func Develop(wr *film.WorkResult) *image.RGBA {
	camera := wr.Camera()
	light := wr.Light()
	lightScale := 0.0
	if light != nil && wr.Config().SampleCount > 0 {
		lightScale = 1.0 / float64(wr.Config().SampleCount)
	}

	img := image.NewRGBA(image.Rect(0, 0, camera.Width(), camera.Height()))
	for y := 0; y < camera.Height(); y++ {
		for x := 0; x < camera.Width(); x++ {
			spec := camera.NormalizedValue(x, y)
			if light != nil {
				// The camera plane may be a sub-block of the frame;
				// map its pixel back to frame coordinates
				fx := x + camera.OffsetX()
				fy := y + camera.OffsetY()
				if fx < light.Width() && fy < light.Height() {
					spec = spec.Add(light.Value(fx, fy).Scale(lightScale))
				}
			}
			img.SetRGBA(x, y, spectrumToColor(spec))
		}
	}
	return img
}

// spectrumToColor applies gamma correction and converts to 8-bit color
func spectrumToColor(spec core.Spectrum) color.RGBA {
	c := spec.GammaCorrect(2.2).Clamp(0, 1)
	return color.RGBA{
		R: uint8(c.R * 255),
		G: uint8(c.G * 255),
		B: uint8(c.B * 255),
		A: 255,
	}
}
