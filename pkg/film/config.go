package film

// Config describes the image planes a rendering job needs. It is shared
// by every worker of the job and by the coordinator's master buffer;
// serialized work results carry it on the wire so that a reader can
// detect a mismatched writer (see WorkResult.Load).
type Config struct {
	BlockSize int // Edge length of the camera-image block assigned to one work unit

	// CropWidth and CropHeight give the full output resolution. Light
	// and strategy planes always use the full crop: strategies with
	// t <= 1 can deposit to any pixel of the frame, not just the block
	// a worker was assigned.
	CropWidth  int
	CropHeight int

	LightImage bool // Whether light-subpath strategies deposit into a separate light plane

	MaxDepth    int // Maximum path depth; sizes the strategy banks
	SampleCount int // Samples per pixel; normalizes strategy dumps

	// StrategyImages enables the per-strategy analysis banks. This is a
	// construction-time switch, not a build variant: a buffer either
	// allocates the banks or it doesn't.
	StrategyImages bool
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		BlockSize:      32,
		CropWidth:      256,
		CropHeight:     256,
		LightImage:     true,
		MaxDepth:       5,
		SampleCount:    16,
		StrategyImages: false,
	}
}
