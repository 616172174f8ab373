package film

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/df07/go-bidirectional-renderer/pkg/log"
)

var dumpLog = log.New("film")

// DumpStrategies decomposes the strategy banks into one image file per
// (depth, strategy) pair, scaled by 1/SampleCount, plus one composite
// image per depth accumulating all of that depth's strategies. Strategy
// slots whose average contribution is zero are skipped. The secondary
// bank is exported the same way, minus the composites.
//
// This is a read-only diagnostic export: per-file failures are logged
// and collected into the returned error, but never stop the remaining
// exports, so a failed dump cannot corrupt or abort the rendering job
// it inspects.
func (wr *WorkResult) DumpStrategies(dir, stem string) error {
	if wr.strategies == nil {
		return fmt.Errorf("film: work result was configured without strategy images")
	}

	scale := 1.0 / float64(wr.cfg.SampleCount)
	composite := NewPlane(wr.cfg.CropWidth, wr.cfg.CropHeight, wr.filter)

	var errs []error
	export := func(plane *Plane, name string) {
		path := filepath.Join(dir, name)
		if err := writePlanePNG(plane, scale, path); err != nil {
			dumpLog.Warningf("skipping strategy export %s: %v", name, err)
			errs = append(errs, err)
		}
	}

	for k := 1; k <= wr.cfg.MaxDepth; k++ {
		composite.Clear()
		for t := 0; t <= k+1; t++ {
			s := k + 1 - t
			plane := wr.strategies.planes[StrategyIndex(s, t)]
			if plane.Average().IsZero() {
				continue
			}
			if err := composite.Put(plane); err != nil {
				errs = append(errs, err)
				continue
			}
			export(plane, fmt.Sprintf("%s_%s_k%02d_s%02d_t%02d.png", stem, wr.strategies.tag, k, s, t))
		}
		export(composite, fmt.Sprintf("%s_%s_k%02d.png", stem, wr.strategies.tag, k))

		for t := 0; t <= k+1; t++ {
			s := k + 1 - t
			plane := wr.strategiesM.planes[StrategyIndex(s, t)]
			if plane.Average().IsZero() {
				continue
			}
			export(plane, fmt.Sprintf("%s_%s_k%02d_s%02d_t%02d.png", stem, wr.strategiesM.tag, k, s, t))
		}
	}

	return errors.Join(errs...)
}

// writePlanePNG exports a plane's raw accumulated values, scaled and
// gamma corrected, as an 8-bit PNG.
func writePlanePNG(plane *Plane, scale float64, path string) error {
	img := image.NewRGBA(image.Rect(0, 0, plane.Width(), plane.Height()))
	for y := 0; y < plane.Height(); y++ {
		for x := 0; x < plane.Width(); x++ {
			spec := plane.Value(x, y).Scale(scale).GammaCorrect(2.2).Clamp(0, 1)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(spec.R * 255),
				G: uint8(spec.G * 255),
				B: uint8(spec.B * 255),
				A: 255,
			})
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, img)
}
