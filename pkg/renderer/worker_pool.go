package renderer

import (
	"image"
	"math/rand"
	"runtime"
	"sync"

	"github.com/df07/go-bidirectional-renderer/pkg/film"
)

// SampleSource produces path samples for the pixels of one camera
// block. It is the external bidirectional path-sampling collaborator:
// implementations deposit each generated sample into the work result
// via PutSample / PutLightSample / PutStrategySample and return the
// number of camera samples taken.
type SampleSource interface {
	RenderBlock(block image.Rectangle, sampler *rand.Rand, wr *film.WorkResult) int
}

// BlockTask represents one camera block to render in one pass
type BlockTask struct {
	Bounds image.Rectangle
	TaskID int   // For deterministic ordering
	Seed   int64 // Per-task sampler seed
}

// BlockResult contains the partial render produced for one block
type BlockResult struct {
	TaskID  int
	Result  *film.WorkResult
	Samples int
	Error   error
}

// WorkerPool renders camera blocks in parallel. Each task gets its own
// freshly allocated work result, so no two goroutines ever touch the
// same buffer: ownership transfers to the coordinator on the result
// channel.
type WorkerPool struct {
	cfg         film.Config
	filter      film.Filter
	source      SampleSource
	taskQueue   chan BlockTask
	resultQueue chan BlockResult
	numWorkers  int
	wg          sync.WaitGroup
}

// NewWorkerPool creates a worker pool with the specified number of
// workers (0 means use the CPU count).
func NewWorkerPool(cfg film.Config, filter film.Filter, source SampleSource, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	maxBlocks := blocksPerFrame(cfg)
	return &WorkerPool{
		cfg:         cfg,
		filter:      filter,
		source:      source,
		taskQueue:   make(chan BlockTask, maxBlocks),
		resultQueue: make(chan BlockResult, maxBlocks),
		numWorkers:  numWorkers,
	}
}

func blocksPerFrame(cfg film.Config) int {
	bx := (cfg.CropWidth + cfg.BlockSize - 1) / cfg.BlockSize
	by := (cfg.CropHeight + cfg.BlockSize - 1) / cfg.BlockSize
	return bx * by
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run()
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a block task to the worker pool
func (wp *WorkerPool) SubmitTask(task BlockTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed block result
func (wp *WorkerPool) GetResult() (BlockResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (wp *WorkerPool) run() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		// Each task owns a fresh work result sized and positioned for
		// its block; edge blocks may be smaller than the configured
		// block size
		wr := film.NewWorkResult(wp.cfg, wp.filter, 0)
		wr.SetSize(task.Bounds.Dx(), task.Bounds.Dy())
		wr.SetOffset(task.Bounds.Min.X, task.Bounds.Min.Y)

		sampler := rand.New(rand.NewSource(task.Seed))
		samples := wp.source.RenderBlock(task.Bounds, sampler, wr)

		wp.resultQueue <- BlockResult{
			TaskID:  task.TaskID,
			Result:  wr,
			Samples: samples,
		}
	}
}
