package film

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/df07/go-bidirectional-renderer/pkg/core"
)

// pixel is one accumulation cell of a Plane
type pixel struct {
	Value  core.Spectrum // Accumulated filter-weighted spectral value
	Alpha  float64       // Accumulated filter-weighted alpha
	Weight float64       // Accumulated filter weight
}

const pixelFloats = 5 // R, G, B, alpha, weight

// Plane is a 2-D accumulation buffer of filter-weighted samples. It
// covers the pixel rectangle [OffsetX, OffsetX+Width) x [OffsetY,
// OffsetY+Height) of the output frame; splat positions are given in
// frame coordinates.
//
// A Plane is exclusively owned by the WorkResult that allocated it and
// is not safe for concurrent use.
type Plane struct {
	width, height    int
	offsetX, offsetY int
	filter           Filter
	pixels           []pixel // row-major
}

// NewPlane creates a cleared plane of the given size at offset (0, 0).
func NewPlane(width, height int, filter Filter) *Plane {
	return &Plane{
		width:  width,
		height: height,
		filter: filter,
		pixels: make([]pixel, width*height),
	}
}

func (p *Plane) Width() int   { return p.width }
func (p *Plane) Height() int  { return p.height }
func (p *Plane) OffsetX() int { return p.offsetX }
func (p *Plane) OffsetY() int { return p.offsetY }

// SetOffset repositions the plane within the output frame. Accumulated
// content is kept; only the frame-coordinate mapping changes.
func (p *Plane) SetOffset(x, y int) {
	p.offsetX = x
	p.offsetY = y
}

// SetSize resizes the plane and clears its contents.
func (p *Plane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.pixels = make([]pixel, width*height)
}

// Splat deposits one sample at a continuous frame-space position,
// distributing weight*spec over the pixels covered by the
// reconstruction filter. Positions outside the plane contribute only to
// the covered pixels that fall inside it.
func (p *Plane) Splat(pos core.Point2, spec core.Spectrum, alpha, weight float64) {
	radius := p.filter.Radius()

	// Convert to discrete coordinates: pixel (i, j) has its center at
	// (i+0.5, j+0.5) in continuous frame space.
	dx := pos.X - 0.5
	dy := pos.Y - 0.5

	x0 := max(int(math.Ceil(dx-radius)), p.offsetX)
	y0 := max(int(math.Ceil(dy-radius)), p.offsetY)
	x1 := min(int(math.Floor(dx+radius)), p.offsetX+p.width-1)
	y1 := min(int(math.Floor(dy+radius)), p.offsetY+p.height-1)

	for y := y0; y <= y1; y++ {
		row := (y - p.offsetY) * p.width
		for x := x0; x <= x1; x++ {
			fw := p.filter.Eval(float64(x)-dx, float64(y)-dy)
			if fw == 0 {
				continue
			}
			px := &p.pixels[row+x-p.offsetX]
			px.Value = px.Value.Add(spec.Scale(fw * weight))
			px.Alpha += alpha * fw * weight
			px.Weight += fw * weight
		}
	}
}

// Put adds another plane's accumulated contents into this one,
// pixel by pixel. The planes must have identical size and offset.
func (p *Plane) Put(other *Plane) error {
	if other.width != p.width || other.height != p.height ||
		other.offsetX != p.offsetX || other.offsetY != p.offsetY {
		return fmt.Errorf("film: cannot merge plane %s into %s", other, p)
	}
	for i := range p.pixels {
		p.pixels[i].Value = p.pixels[i].Value.Add(other.pixels[i].Value)
		p.pixels[i].Alpha += other.pixels[i].Alpha
		p.pixels[i].Weight += other.pixels[i].Weight
	}
	return nil
}

// Accumulate adds a smaller plane's contents into this one at the
// position given by the other plane's offset. The other plane's
// rectangle must lie entirely within this plane. Used by a coordinator
// folding per-block partial renders into a full-frame master; Put is
// the strict identical-shape merge for partials of the same block.
func (p *Plane) Accumulate(other *Plane) error {
	x0 := other.offsetX - p.offsetX
	y0 := other.offsetY - p.offsetY
	if x0 < 0 || y0 < 0 || x0+other.width > p.width || y0+other.height > p.height {
		return fmt.Errorf("film: %s does not fit inside %s", other, p)
	}
	for y := 0; y < other.height; y++ {
		dst := p.pixels[(y0+y)*p.width+x0:]
		src := other.pixels[y*other.width:]
		for x := 0; x < other.width; x++ {
			dst[x].Value = dst[x].Value.Add(src[x].Value)
			dst[x].Alpha += src[x].Alpha
			dst[x].Weight += src[x].Weight
		}
	}
	return nil
}

// Clear resets every pixel to the zero element.
func (p *Plane) Clear() {
	clear(p.pixels)
}

// Value returns the accumulated spectral value at local pixel (x, y).
func (p *Plane) Value(x, y int) core.Spectrum {
	return p.pixels[y*p.width+x].Value
}

// Alpha returns the accumulated alpha at local pixel (x, y).
func (p *Plane) Alpha(x, y int) float64 {
	return p.pixels[y*p.width+x].Alpha
}

// Weight returns the accumulated filter weight at local pixel (x, y).
func (p *Plane) Weight(x, y int) float64 {
	return p.pixels[y*p.width+x].Weight
}

// NormalizedValue returns the weight-normalized value at local pixel
// (x, y), the usual way to develop a camera plane.
func (p *Plane) NormalizedValue(x, y int) core.Spectrum {
	px := p.pixels[y*p.width+x]
	if px.Weight == 0 {
		return core.Spectrum{}
	}
	return px.Value.Scale(1 / px.Weight)
}

// Average returns the mean accumulated value over all pixels.
func (p *Plane) Average() core.Spectrum {
	var sum core.Spectrum
	for i := range p.pixels {
		sum = sum.Add(p.pixels[i].Value)
	}
	if len(p.pixels) == 0 {
		return sum
	}
	return sum.Scale(1 / float64(len(p.pixels)))
}

// planeHeader prefixes a plane's pixel payload on the wire
type planeHeader struct {
	Width, Height    int32
	OffsetX, OffsetY int32
}

// Save writes the plane's shape and accumulated pixels to a stream.
func (p *Plane) Save(w io.Writer) error {
	hdr := planeHeader{
		Width:   int32(p.width),
		Height:  int32(p.height),
		OffsetX: int32(p.offsetX),
		OffsetY: int32(p.offsetY),
	}
	if err := binary.Write(w, binary.LittleEndian, hdr); err != nil {
		return fmt.Errorf("film: writing plane header: %w", err)
	}

	payload := make([]float64, 0, len(p.pixels)*pixelFloats)
	for i := range p.pixels {
		px := &p.pixels[i]
		payload = append(payload, px.Value.R, px.Value.G, px.Value.B, px.Alpha, px.Weight)
	}
	if err := binary.Write(w, binary.LittleEndian, payload); err != nil {
		return fmt.Errorf("film: writing plane payload: %w", err)
	}
	return nil
}

// Load replaces the plane's accumulated pixels with content read from a
// stream. The stream's plane size must match this plane's size; a
// mismatch means the writer was configured differently and is reported
// as an error before any pixel data is consumed. The offset is adopted
// from the stream, since a worker's block position within the frame
// travels with its result.
func (p *Plane) Load(r io.Reader) error {
	var hdr planeHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("film: reading plane header: %w", err)
	}
	if int(hdr.Width) != p.width || int(hdr.Height) != p.height {
		return fmt.Errorf("film: stream plane is %dx%d, expected %s",
			hdr.Width, hdr.Height, p)
	}
	p.offsetX = int(hdr.OffsetX)
	p.offsetY = int(hdr.OffsetY)

	payload := make([]float64, len(p.pixels)*pixelFloats)
	if err := binary.Read(r, binary.LittleEndian, payload); err != nil {
		return fmt.Errorf("film: reading plane payload: %w", err)
	}
	for i := range p.pixels {
		v := payload[i*pixelFloats:]
		p.pixels[i] = pixel{
			Value:  core.Spectrum{R: v[0], G: v[1], B: v[2]},
			Alpha:  v[3],
			Weight: v[4],
		}
	}
	return nil
}

// String returns a short description of the plane's shape
func (p *Plane) String() string {
	return fmt.Sprintf("Plane[%dx%d at (%d,%d)]", p.width, p.height, p.offsetX, p.offsetY)
}
