package renderer

import (
	"context"
	"runtime"
	"sync"

	"github.com/pkg/errors"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile       Tile
	PixelStats [][]PixelStats // Shared pixel stats array to write to
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TileID   int
	WorkerID int
	Samples  int
	Error    error
}

// WorkerPool manages parallel tile rendering
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual tile rendering tasks
type Worker struct {
	ID          int
	renderer    *TileRenderer
	seed        int64
	taskQueue   chan TileTask
	resultQueue chan TileResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// queueSize bounds the number of tasks and results buffered at once.
func NewWorkerPool(renderer *TileRenderer, seed int64, numWorkers, queueSize int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, queueSize),
		resultQueue: make(chan TileResult, queueSize),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			renderer:    renderer,
			seed:        seed,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}
	return wp
}

// Start begins all workers. Once ctx is done, remaining tasks are drained
// and reported with the context error instead of being rendered.
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a tile task to the worker pool
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed tile result
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		result := TileResult{TileID: task.Tile.ID, WorkerID: w.ID}
		if err := ctx.Err(); err != nil {
			result.Error = err
		} else {
			result.Samples, result.Error = w.render(task)
		}
		w.resultQueue <- result
	}
}

// render renders one tile. Tiles have non-overlapping bounds, so writing to
// the shared pixel stats array needs no locking.
func (w *Worker) render(task TileTask) (samples int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("worker %d: tile %d panicked: %v", w.ID, task.Tile.ID, r)
		}
	}()
	return w.renderer.RenderTileBounds(task.Tile.Bounds, task.PixelStats, task.Tile.Sampler(w.seed)), nil
}
