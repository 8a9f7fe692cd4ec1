package renderer

import (
	"image"
	"runtime"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// RenderConfig contains settings for parallel rendering
type RenderConfig struct {
	NumWorkers int // Number of parallel workers (0 = use CPU count)
	QueueSize  int // Capacity of the pixel and result queues (0 = derived from worker count)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		NumWorkers: runtime.NumCPU(),
		QueueSize:  0,
	}
}

// WithWorkers returns a copy of the config using n workers; n <= 0 keeps the current count
func (c RenderConfig) WithWorkers(n int) RenderConfig {
	if n > 0 {
		c.NumWorkers = n
	}
	return c
}

// ProgressFunc is called from the rendering goroutine after each finished pixel
type ProgressFunc func(done, total int)

// Raytracer handles the rendering process
type Raytracer struct {
	camera     *Camera
	integrator integrator.Integrator
	config     RenderConfig
	logger     core.Logger
	progress   ProgressFunc
}

// NewRaytracer creates a new raytracer that path traces against the camera's background
func NewRaytracer(camera *Camera, config RenderConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		camera:     camera,
		integrator: integrator.NewPathTracingIntegrator(camera.Config().Background),
		config:     config,
		logger:     logger,
	}
}

// SetProgressCallback registers a function notified after each finished pixel
func (rt *Raytracer) SetProgressCallback(progress ProgressFunc) {
	rt.progress = progress
}

// RenderPixel averages all samples for pixel (i, j).
// The sampler is reseeded from the pixel index, so the result does not depend on
// which worker renders the pixel or in what order.
func (rt *Raytracer) RenderPixel(i, j int, world geometry.Hittable, sampler *core.RandomSampler) core.Vec3 {
	sampler.Reseed(rt.camera.Config().Seed, uint64(j)*uint64(rt.camera.Width())+uint64(i))

	var stats PixelStats
	strata := rt.camera.StratumCount()
	perStratum := rt.camera.SamplesPerPixel() / (strata * strata)

	for sj := 0; sj < strata; sj++ {
		for si := 0; si < strata; si++ {
			for s := 0; s < perStratum; s++ {
				ray := rt.camera.GetRay(i, j, si, sj, sampler)
				stats.AddSample(rt.integrator.RayColor(ray, world, sampler))
			}
		}
	}

	return stats.GetColor()
}

// Render traces every pixel of the camera's image in parallel and returns the quantized image
func (rt *Raytracer) Render(world geometry.Hittable) (*image.RGBA, RenderStats) {
	width, height := rt.camera.Width(), rt.camera.Height()
	total := width * height
	start := time.Now()

	pool := NewWorkerPool(rt, world, rt.config.NumWorkers, rt.config.QueueSize)
	rt.logger.Printf("Rendering %dx%d at %d samples per pixel with %d workers\n",
		width, height, rt.camera.SamplesPerPixel(), pool.GetNumWorkers())

	pool.Start()
	go func() {
		for j := 0; j < height; j++ {
			for i := 0; i < width; i++ {
				pool.SubmitTask(PixelTask{X: i, Y: j})
			}
		}
		if err := pool.Stop(); err != nil {
			rt.logger.Printf("Worker pool stopped with error: %v\n", err)
		}
	}()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	done := 0
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		img.SetRGBA(result.X, result.Y, ColorToRGB(result.Color))
		done++
		if rt.progress != nil {
			rt.progress(done, total)
		}
	}

	stats := RenderStats{
		TotalPixels:     total,
		TotalSamples:    total * rt.camera.SamplesPerPixel(),
		SamplesPerPixel: rt.camera.SamplesPerPixel(),
		NumWorkers:      pool.GetNumWorkers(),
		Elapsed:         time.Since(start),
	}
	rt.logger.Printf("Rendered %d samples in %v\n", stats.TotalSamples, stats.Elapsed)

	return img, stats
}
