package film

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/df07/go-bidirectional-renderer/pkg/core"
)

// strategyBank is a flat array of full-resolution planes, one per
// sampling strategy, addressed through StrategyIndex. The onWire
// attribute states explicitly whether the bank participates in
// Save/Load; keeping this a per-bank property means adding a bank can
// never silently change the fixed wire order of the others.
type strategyBank struct {
	tag    string // filename tag used by strategy dumps
	onWire bool
	planes []*Plane
}

func newStrategyBank(cfg Config, filter Filter, tag string, onWire bool) *strategyBank {
	bank := &strategyBank{
		tag:    tag,
		onWire: onWire,
		planes: make([]*Plane, StrategyCount(cfg.MaxDepth)),
	}
	for i := range bank.planes {
		bank.planes[i] = NewPlane(cfg.CropWidth, cfg.CropHeight, filter)
	}
	return bank
}

// WorkResult accumulates the partial render produced by one worker for
// one unit of rendering work. It owns a camera plane covering the
// worker's assigned block, optionally a full-resolution light plane for
// strategies that can deposit anywhere in the frame, and, when strategy
// analysis is enabled, two banks of per-strategy planes.
//
// A WorkResult is exclusively owned by one worker (or by the
// coordinator, for the master buffer) and provides no internal locking.
type WorkResult struct {
	cfg    Config
	filter Filter

	camera *Plane
	light  *Plane // nil unless cfg.LightImage

	// Primary strategy bank: raw per-strategy contributions, shipped on
	// the wire. The secondary bank holds an auxiliary analysis channel
	// that never leaves the worker.
	strategies  *strategyBank
	strategiesM *strategyBank
}

// NewWorkResult creates a cleared work result for the given job
// configuration. blockSize <= 0 means "use cfg.BlockSize". The camera
// plane starts at offset (0, 0); its position within the frame is set
// later, when the worker is assigned a block.
func NewWorkResult(cfg Config, filter Filter, blockSize int) *WorkResult {
	if blockSize <= 0 {
		blockSize = cfg.BlockSize
	}

	wr := &WorkResult{
		cfg:    cfg,
		filter: filter,
		camera: NewPlane(blockSize, blockSize, filter),
	}

	if cfg.LightImage {
		wr.light = NewPlane(cfg.CropWidth, cfg.CropHeight, filter)
	}

	if cfg.StrategyImages {
		wr.strategies = newStrategyBank(cfg, filter, "bdpt", true)
		wr.strategiesM = newStrategyBank(cfg, filter, "bdpt_nm", false)
	}

	return wr
}

// Config returns the job configuration this result was built for.
func (wr *WorkResult) Config() Config { return wr.cfg }

// Camera returns the camera plane.
func (wr *WorkResult) Camera() *Plane { return wr.camera }

// Light returns the light plane, or nil when none was configured.
func (wr *WorkResult) Light() *Plane { return wr.light }

// StrategyPlane returns the primary bank's plane for strategy (s, t),
// or nil when strategy analysis is disabled.
func (wr *WorkResult) StrategyPlane(s, t int) *Plane {
	if wr.strategies == nil {
		return nil
	}
	checkStrategy(s, t, wr.cfg.MaxDepth)
	return wr.strategies.planes[StrategyIndex(s, t)]
}

// SetSize resizes the camera plane, clearing it. Used for edge blocks
// smaller than the configured block size.
func (wr *WorkResult) SetSize(width, height int) {
	wr.camera.SetSize(width, height)
}

// SetOffset positions the camera plane within the output frame.
func (wr *WorkResult) SetOffset(x, y int) {
	wr.camera.SetOffset(x, y)
}

// PutSample deposits one camera-path sample into the camera plane.
func (wr *WorkResult) PutSample(pos core.Point2, spec core.Spectrum) {
	wr.camera.Splat(pos, spec, 1, 1)
}

// PutLightSample deposits one light-path sample into the light plane.
// Calling this on a result configured without a light image is a
// contract violation and panics; callers must check the configuration.
func (wr *WorkResult) PutLightSample(pos core.Point2, spec core.Spectrum) {
	if wr.light == nil {
		panic("film: PutLightSample on a work result configured without a light image")
	}
	wr.light.Splat(pos, spec, 1, 1)
}

// PutStrategySample deposits one sample into the primary bank's plane
// for strategy (s, t). A no-op when strategy analysis is disabled;
// panics when (s, t) is out of range for the configured depth.
func (wr *WorkResult) PutStrategySample(s, t int, pos core.Point2, spec core.Spectrum) {
	if wr.strategies == nil {
		return
	}
	checkStrategy(s, t, wr.cfg.MaxDepth)
	wr.strategies.planes[StrategyIndex(s, t)].Splat(pos, spec, 1, 1)
}

// PutStrategySampleM deposits one sample into the secondary analysis
// bank. Same contract as PutStrategySample.
func (wr *WorkResult) PutStrategySampleM(s, t int, pos core.Point2, spec core.Spectrum) {
	if wr.strategiesM == nil {
		return
	}
	checkStrategy(s, t, wr.cfg.MaxDepth)
	wr.strategiesM.planes[StrategyIndex(s, t)].Splat(pos, spec, 1, 1)
}

// Put accumulates another work result into this one, plane by plane.
// The two results must share a configuration: same optional planes,
// same bank sizes, same camera block shape.
func (wr *WorkResult) Put(other *WorkResult) error {
	if (wr.light == nil) != (other.light == nil) {
		return fmt.Errorf("film: cannot merge work results with mismatched light-image configuration")
	}
	if (wr.strategies == nil) != (other.strategies == nil) {
		return fmt.Errorf("film: cannot merge work results with mismatched strategy-image configuration")
	}

	if wr.strategies != nil {
		if len(wr.strategies.planes) != len(other.strategies.planes) {
			return fmt.Errorf("film: strategy bank size %d does not match %d",
				len(other.strategies.planes), len(wr.strategies.planes))
		}
		for i := range wr.strategies.planes {
			if err := wr.strategies.planes[i].Put(other.strategies.planes[i]); err != nil {
				return fmt.Errorf("strategy slot %d: %w", i, err)
			}
		}
		for i := range wr.strategiesM.planes {
			if err := wr.strategiesM.planes[i].Put(other.strategiesM.planes[i]); err != nil {
				return fmt.Errorf("strategy slot %d (M): %w", i, err)
			}
		}
	}

	if wr.light != nil {
		if err := wr.light.Put(other.light); err != nil {
			return fmt.Errorf("light plane: %w", err)
		}
	}

	if err := wr.camera.Put(other.camera); err != nil {
		return fmt.Errorf("camera plane: %w", err)
	}
	return nil
}

// Accumulate folds a block-sized partial render into this result at the
// partial's block offset. The full-resolution planes (light, strategy
// banks) merge one-to-one; only the camera planes may differ in shape,
// with the other's block rectangle contained in this camera plane.
// This is the coordinator-side reduction; Put is the identical-shape
// merge between partials of the same block.
func (wr *WorkResult) Accumulate(other *WorkResult) error {
	if (wr.light == nil) != (other.light == nil) {
		return fmt.Errorf("film: cannot accumulate work results with mismatched light-image configuration")
	}
	if (wr.strategies == nil) != (other.strategies == nil) {
		return fmt.Errorf("film: cannot accumulate work results with mismatched strategy-image configuration")
	}

	if wr.strategies != nil {
		if len(wr.strategies.planes) != len(other.strategies.planes) {
			return fmt.Errorf("film: strategy bank size %d does not match %d",
				len(other.strategies.planes), len(wr.strategies.planes))
		}
		for i := range wr.strategies.planes {
			if err := wr.strategies.planes[i].Put(other.strategies.planes[i]); err != nil {
				return fmt.Errorf("strategy slot %d: %w", i, err)
			}
		}
		for i := range wr.strategiesM.planes {
			if err := wr.strategiesM.planes[i].Put(other.strategiesM.planes[i]); err != nil {
				return fmt.Errorf("strategy slot %d (M): %w", i, err)
			}
		}
	}

	if wr.light != nil {
		if err := wr.light.Put(other.light); err != nil {
			return fmt.Errorf("light plane: %w", err)
		}
	}

	if err := wr.camera.Accumulate(other.camera); err != nil {
		return fmt.Errorf("camera plane: %w", err)
	}
	return nil
}

// Clear resets every owned plane to the zero element, making the result
// ready for reuse as a fresh partial render.
func (wr *WorkResult) Clear() {
	if wr.strategies != nil {
		for _, plane := range wr.strategies.planes {
			plane.Clear()
		}
		for _, plane := range wr.strategiesM.planes {
			plane.Clear()
		}
	}
	if wr.light != nil {
		wr.light.Clear()
	}
	wr.camera.Clear()
}

// Wire format: a fixed self-describing header followed by the planes in
// a fixed order both ends agree on: every on-wire strategy bank in slot
// order, then the light plane if configured, then the camera plane.
const (
	wireMagic   = 0x42445746 // "BDWF"
	wireVersion = 1

	flagLightImage     = 1 << 0
	flagStrategyImages = 1 << 1
)

type wireHeader struct {
	Magic       uint32
	Version     uint16
	Flags       uint16
	MaxDepth    int32
	CropWidth   int32
	CropHeight  int32
	BlockWidth  int32
	BlockHeight int32
	SampleCount int32
}

func (wr *WorkResult) header() wireHeader {
	var flags uint16
	if wr.light != nil {
		flags |= flagLightImage
	}
	if wr.strategies != nil {
		flags |= flagStrategyImages
	}
	return wireHeader{
		Magic:       wireMagic,
		Version:     wireVersion,
		Flags:       flags,
		MaxDepth:    int32(wr.cfg.MaxDepth),
		CropWidth:   int32(wr.cfg.CropWidth),
		CropHeight:  int32(wr.cfg.CropHeight),
		BlockWidth:  int32(wr.camera.Width()),
		BlockHeight: int32(wr.camera.Height()),
		SampleCount: int32(wr.cfg.SampleCount),
	}
}

// Save serializes the work result to a byte stream.
func (wr *WorkResult) Save(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, wr.header()); err != nil {
		return fmt.Errorf("film: writing work result header: %w", err)
	}

	for _, bank := range []*strategyBank{wr.strategies, wr.strategiesM} {
		if bank == nil || !bank.onWire {
			continue
		}
		for i, plane := range bank.planes {
			if err := plane.Save(w); err != nil {
				return fmt.Errorf("strategy slot %d: %w", i, err)
			}
		}
	}

	if wr.light != nil {
		if err := wr.light.Save(w); err != nil {
			return fmt.Errorf("light plane: %w", err)
		}
	}
	return wr.camera.Save(w)
}

// Load fills the work result with content read from a byte stream. The
// stream must have been written by a result of identical configuration;
// any mismatch is detected from the header before plane data is read.
func (wr *WorkResult) Load(r io.Reader) error {
	var hdr wireHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("film: reading work result header: %w", err)
	}
	if err := wr.checkHeader(hdr); err != nil {
		return err
	}

	for _, bank := range []*strategyBank{wr.strategies, wr.strategiesM} {
		if bank == nil || !bank.onWire {
			continue
		}
		for i, plane := range bank.planes {
			if err := plane.Load(r); err != nil {
				return fmt.Errorf("strategy slot %d: %w", i, err)
			}
		}
	}

	if wr.light != nil {
		if err := wr.light.Load(r); err != nil {
			return fmt.Errorf("light plane: %w", err)
		}
	}
	return wr.camera.Load(r)
}

func (wr *WorkResult) checkHeader(hdr wireHeader) error {
	if hdr.Magic != wireMagic {
		return fmt.Errorf("film: bad magic %#x in work result stream", hdr.Magic)
	}
	if hdr.Version != wireVersion {
		return fmt.Errorf("film: unsupported work result version %d", hdr.Version)
	}
	own := wr.header()
	if hdr.Flags != own.Flags {
		return fmt.Errorf("film: stream planes (flags %#x) do not match this configuration (flags %#x)",
			hdr.Flags, own.Flags)
	}
	if hdr.MaxDepth != own.MaxDepth {
		return fmt.Errorf("film: stream maxDepth %d does not match configured %d", hdr.MaxDepth, own.MaxDepth)
	}
	if hdr.CropWidth != own.CropWidth || hdr.CropHeight != own.CropHeight {
		return fmt.Errorf("film: stream crop %dx%d does not match configured %dx%d",
			hdr.CropWidth, hdr.CropHeight, own.CropWidth, own.CropHeight)
	}
	if hdr.BlockWidth != own.BlockWidth || hdr.BlockHeight != own.BlockHeight {
		return fmt.Errorf("film: stream block %dx%d does not match camera plane %dx%d",
			hdr.BlockWidth, hdr.BlockHeight, own.BlockWidth, own.BlockHeight)
	}
	return nil
}

// ReadResult constructs a work result from a stream's own header and
// fills it with the stream's planes. Used by tools that receive results
// without prior knowledge of the writer's configuration.
func ReadResult(r io.Reader, filter Filter) (*WorkResult, error) {
	var hdr wireHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("film: reading work result header: %w", err)
	}
	if hdr.Magic != wireMagic {
		return nil, fmt.Errorf("film: bad magic %#x in work result stream", hdr.Magic)
	}
	if hdr.Version != wireVersion {
		return nil, fmt.Errorf("film: unsupported work result version %d", hdr.Version)
	}

	cfg := Config{
		BlockSize:      int(hdr.BlockWidth),
		CropWidth:      int(hdr.CropWidth),
		CropHeight:     int(hdr.CropHeight),
		LightImage:     hdr.Flags&flagLightImage != 0,
		MaxDepth:       int(hdr.MaxDepth),
		SampleCount:    int(hdr.SampleCount),
		StrategyImages: hdr.Flags&flagStrategyImages != 0,
	}
	wr := NewWorkResult(cfg, filter, int(hdr.BlockWidth))
	wr.camera.SetSize(int(hdr.BlockWidth), int(hdr.BlockHeight))

	for _, bank := range []*strategyBank{wr.strategies, wr.strategiesM} {
		if bank == nil || !bank.onWire {
			continue
		}
		for i, plane := range bank.planes {
			if err := plane.Load(r); err != nil {
				return nil, fmt.Errorf("strategy slot %d: %w", i, err)
			}
		}
	}
	if wr.light != nil {
		if err := wr.light.Load(r); err != nil {
			return nil, fmt.Errorf("light plane: %w", err)
		}
	}
	if err := wr.camera.Load(r); err != nil {
		return nil, err
	}
	return wr, nil
}

// String returns a short human-readable summary for logging.
func (wr *WorkResult) String() string {
	banks := 0
	if wr.strategies != nil {
		banks = 2
	}
	return fmt.Sprintf("WorkResult[camera=%s, lightImage=%v, strategyBanks=%d]",
		wr.camera, wr.light != nil, banks)
}
