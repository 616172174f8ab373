package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"

	"github.com/df07/go-bidirectional-renderer/pkg/film"
	"github.com/df07/go-bidirectional-renderer/pkg/log"
)

// Config contains configuration for a distributed rendering job
type Config struct {
	Film       film.Config
	Passes     int // Number of progressive passes over the frame
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Film:       film.DefaultConfig(),
		Passes:     1,
		NumWorkers: 0,
	}
}

// Coordinator schedules camera blocks across a worker pool and reduces
// the workers' partial renders into one master work result. It is the
// single reduction point of a job: workers never share buffers, and
// every merge into the master happens on the coordinator's goroutine.
type Coordinator struct {
	cfg    Config
	filter film.Filter
	blocks []image.Rectangle
	pool   *WorkerPool
	master *film.WorkResult
	logger log.Logger
}

// NewCoordinator creates a coordinator for one rendering job. The
// master buffer's camera plane covers the full crop so that any block
// can be folded into it.
func NewCoordinator(cfg Config, filter film.Filter, source SampleSource) *Coordinator {
	master := film.NewWorkResult(cfg.Film, filter, 0)
	master.SetSize(cfg.Film.CropWidth, cfg.Film.CropHeight)

	return &Coordinator{
		cfg:    cfg,
		filter: filter,
		blocks: NewBlockGrid(cfg.Film.CropWidth, cfg.Film.CropHeight, cfg.Film.BlockSize),
		pool:   NewWorkerPool(cfg.Film, filter, source, cfg.NumWorkers),
		master: master,
		logger: log.New("coordinator"),
	}
}

// Master returns the accumulated master work result.
func (c *Coordinator) Master() *film.WorkResult {
	return c.master
}

// Render runs the configured number of passes over the frame and
// returns the master result. The master accumulates across passes, so
// every block receives Passes merges.
func (c *Coordinator) Render(ctx context.Context) (*film.WorkResult, RenderStats, error) {
	jobID := uuid.New()
	start := time.Now()
	stats := RenderStats{TotalBlocks: len(c.blocks)}

	c.logger.Infof("job %s: %d blocks, %d passes, %d workers",
		jobID, len(c.blocks), c.cfg.Passes, c.pool.GetNumWorkers())

	c.pool.Start()
	defer c.pool.Stop()

	for pass := 1; pass <= c.cfg.Passes; pass++ {
		select {
		case <-ctx.Done():
			c.logger.Warningf("job %s: cancelled before pass %d", jobID, pass)
			return nil, stats, ctx.Err()
		default:
		}

		passStart := time.Now()
		for i, bounds := range c.blocks {
			c.pool.SubmitTask(BlockTask{
				Bounds: bounds,
				TaskID: i,
				Seed:   int64(pass)*int64(len(c.blocks)) + int64(i),
			})
		}

		for range c.blocks {
			result, ok := c.pool.GetResult()
			if !ok {
				return nil, stats, fmt.Errorf("renderer: worker pool closed unexpectedly")
			}
			if result.Error != nil {
				return nil, stats, result.Error
			}
			if err := c.master.Accumulate(result.Result); err != nil {
				return nil, stats, fmt.Errorf("renderer: merging block %d: %w", result.TaskID, err)
			}
			stats.TotalSamples += result.Samples
		}

		stats.TotalPasses = pass
		c.logger.Infof("job %s: pass %d/%d completed in %v",
			jobID, pass, c.cfg.Passes, time.Since(passStart))
	}

	stats.finalize(c.cfg.Film.CropWidth, c.cfg.Film.CropHeight, start)
	c.logger.Noticef("job %s: done in %v (%.1f samples/pixel)", jobID, stats.Elapsed, stats.AverageSamples)
	return c.master, stats, nil
}

// NewBlockGrid splits the frame into camera blocks of at most
// blockSize x blockSize pixels, in scanline order.
func NewBlockGrid(width, height, blockSize int) []image.Rectangle {
	var blocks []image.Rectangle
	for y := 0; y < height; y += blockSize {
		for x := 0; x < width; x += blockSize {
			blocks = append(blocks, image.Rect(x, y, min(x+blockSize, width), min(y+blockSize, height)))
		}
	}
	return blocks
}
