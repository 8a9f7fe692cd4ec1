package renderer

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// PixelTask identifies one pixel to render
type PixelTask struct {
	X, Y int
}

// PixelResult contains the averaged linear color of a finished pixel
type PixelResult struct {
	X, Y  int
	Color core.Vec3
}

// WorkerPool renders pixels in parallel.
// Tasks flow in through a bounded queue and finished pixels flow out through the result queue,
// so only the consumer of the results ever touches the output image.
type WorkerPool struct {
	raytracer   *Raytracer
	world       geometry.Hittable
	taskQueue   chan PixelTask
	resultQueue chan PixelResult
	numWorkers  int
	group       errgroup.Group
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(raytracer *Raytracer, world geometry.Hittable, numWorkers, queueSize int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if queueSize <= 0 {
		queueSize = numWorkers * 64
	}

	return &WorkerPool{
		raytracer:   raytracer,
		world:       world,
		taskQueue:   make(chan PixelTask, queueSize),
		resultQueue: make(chan PixelResult, queueSize),
		numWorkers:  numWorkers,
	}
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.group.Go(wp.run)
	}
}

// Stop waits for queued tasks to drain and shuts down all workers.
// The result queue is closed once the last worker exits.
func (wp *WorkerPool) Stop() error {
	close(wp.taskQueue)
	err := wp.group.Wait()
	close(wp.resultQueue)
	return err
}

// SubmitTask submits a pixel task to the worker pool, blocking while the queue is full
func (wp *WorkerPool) SubmitTask(task PixelTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed pixel; ok is false once the pool has stopped and drained
func (wp *WorkerPool) GetResult() (PixelResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop. Each worker owns its sampler.
func (wp *WorkerPool) run() error {
	sampler := core.NewRandomSampler(0, 0)

	for task := range wp.taskQueue {
		wp.resultQueue <- PixelResult{
			X:     task.X,
			Y:     task.Y,
			Color: wp.raytracer.RenderPixel(task.X, task.Y, wp.world, sampler),
		}
	}

	return nil
}
