package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrInvalidConfig is returned (wrapped) for camera settings that cannot produce an image
var ErrInvalidConfig = errors.New("invalid camera configuration")

// CameraConfig contains all settings for the camera and the per-pixel sample loop
type CameraConfig struct {
	AspectRatio     float64   // Ratio of image width over height
	ImageWidth      int       // Rendered image width in pixels
	SamplesPerPixel int       // Number of rays per pixel
	MaxDepth        int       // Maximum ray bounce depth
	Background      core.Vec3 // Radiance of rays that escape the scene
	VFov            float64   // Vertical field of view in degrees
	LookFrom        core.Vec3 // Camera position
	LookAt          core.Vec3 // Point the camera looks at
	VUp             core.Vec3 // Camera-relative up direction
	FocusDist       float64   // Distance from the camera to the plane of perfect focus
	DefocusAngle    float64   // Variation angle of rays through each pixel, in degrees
	Stratified      bool      // Jitter samples within a sqrt(N) x sqrt(N) grid instead of uniformly
	Seed            uint64    // Seed for every random stream used by the render
}

// DefaultCameraConfig returns sensible default values
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		AspectRatio:     1.0,
		ImageWidth:      100,
		SamplesPerPixel: 10,
		MaxDepth:        10,
		Background:      core.NewVec3(0.7, 0.8, 1.0),
		VFov:            90,
		LookFrom:        core.NewVec3(0, 0, 0),
		LookAt:          core.NewVec3(0, 0, -1),
		VUp:             core.NewVec3(0, 1, 0),
		FocusDist:       10,
		DefocusAngle:    0,
	}
}

// ImageHeight returns the image height implied by the width and aspect ratio (at least 1)
func (c CameraConfig) ImageHeight() int {
	return max(1, int(float64(c.ImageWidth)/c.AspectRatio))
}

// Validate reports the first setting that would leave the camera undefined
func (c CameraConfig) Validate() error {
	switch {
	case c.ImageWidth < 1:
		return fmt.Errorf("%w: image width %d must be at least 1", ErrInvalidConfig, c.ImageWidth)
	case !(c.AspectRatio > 0) || math.IsInf(c.AspectRatio, 0):
		return fmt.Errorf("%w: aspect ratio %g must be positive", ErrInvalidConfig, c.AspectRatio)
	case c.SamplesPerPixel < 1:
		return fmt.Errorf("%w: samples per pixel %d must be at least 1", ErrInvalidConfig, c.SamplesPerPixel)
	case c.MaxDepth < 1:
		return fmt.Errorf("%w: max depth %d must be at least 1", ErrInvalidConfig, c.MaxDepth)
	case !(c.VFov > 0 && c.VFov < 180):
		return fmt.Errorf("%w: vertical field of view %g must be in (0, 180)", ErrInvalidConfig, c.VFov)
	case c.LookFrom == c.LookAt:
		return fmt.Errorf("%w: look-from and look-at are both %v", ErrInvalidConfig, c.LookFrom)
	case c.VUp.Cross(c.LookFrom.Subtract(c.LookAt)).NearZero():
		return fmt.Errorf("%w: up vector %v is parallel to the view direction", ErrInvalidConfig, c.VUp)
	case !(c.FocusDist > 0):
		return fmt.Errorf("%w: focus distance %g must be positive", ErrInvalidConfig, c.FocusDist)
	case c.DefocusAngle < 0:
		return fmt.Errorf("%w: defocus angle %g must not be negative", ErrInvalidConfig, c.DefocusAngle)
	}
	return nil
}

// Camera generates rays for rendering
type Camera struct {
	config      CameraConfig
	imageHeight int
	center      core.Vec3
	pixel00     core.Vec3 // Location of pixel 0, 0 (top left)
	pixelDeltaU core.Vec3 // Offset to pixel to the right
	pixelDeltaV core.Vec3 // Offset to pixel below
	u, v, w     core.Vec3 // Camera frame basis vectors
	defocusU    core.Vec3 // Defocus disk horizontal radius
	defocusV    core.Vec3 // Defocus disk vertical radius
	sqrtSpp     int       // Stratification grid size
}

// NewCamera validates config and precomputes the viewport
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &Camera{
		config:      config,
		imageHeight: config.ImageHeight(),
		center:      config.LookFrom,
		sqrtSpp:     max(1, int(math.Sqrt(float64(config.SamplesPerPixel)))),
	}

	// Determine viewport dimensions
	theta := config.VFov * math.Pi / 180
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * config.FocusDist
	viewportWidth := viewportHeight * float64(config.ImageWidth) / float64(c.imageHeight)

	// Calculate the orthonormal basis for the camera coordinate frame
	c.w = config.LookFrom.Subtract(config.LookAt).Normalize()
	c.u = config.VUp.Cross(c.w).Normalize()
	c.v = c.w.Cross(c.u)

	// Vectors across the horizontal and down the vertical viewport edges
	viewportU := c.u.Multiply(viewportWidth)
	viewportV := c.v.Multiply(-viewportHeight)

	c.pixelDeltaU = viewportU.Divide(float64(config.ImageWidth))
	c.pixelDeltaV = viewportV.Divide(float64(c.imageHeight))

	viewportUpperLeft := c.center.
		Subtract(c.w.Multiply(config.FocusDist)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	c.pixel00 = viewportUpperLeft.Add(c.pixelDeltaU.Add(c.pixelDeltaV).Multiply(0.5))

	defocusRadius := config.FocusDist * math.Tan(config.DefocusAngle*math.Pi/360)
	c.defocusU = c.u.Multiply(defocusRadius)
	c.defocusV = c.v.Multiply(defocusRadius)

	return c, nil
}

// Width returns the image width in pixels
func (c *Camera) Width() int {
	return c.config.ImageWidth
}

// Height returns the image height in pixels
func (c *Camera) Height() int {
	return c.imageHeight
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// SamplesPerPixel returns the number of rays actually traced per pixel.
// Stratified sampling rounds the requested count down to a square grid.
func (c *Camera) SamplesPerPixel() int {
	if c.config.Stratified {
		return c.sqrtSpp * c.sqrtSpp
	}
	return c.config.SamplesPerPixel
}

// StratumCount returns the number of strata along each side of a pixel (1 when not stratified)
func (c *Camera) StratumCount() int {
	if c.config.Stratified {
		return c.sqrtSpp
	}
	return 1
}

// GetRay returns a camera ray through pixel (i, j), where j=0 is the top row.
// si and sj select the stratum within the pixel; they are ignored without stratification.
// The ray starts on the defocus disk, carries a random shutter time and the full bounce budget.
func (c *Camera) GetRay(i, j, si, sj int, sampler core.Sampler) core.Ray {
	offset := c.sampleOffset(si, sj, sampler)
	pixelSample := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(i) + offset.X)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offset.Y))

	origin := c.center
	if c.config.DefocusAngle > 0 {
		p := core.SamplePointInUnitDisk(sampler.Get2D())
		origin = c.center.Add(c.defocusU.Multiply(p.X)).Add(c.defocusV.Multiply(p.Y))
	}

	return core.NewRayWithTime(origin, pixelSample.Subtract(origin), sampler.Get1D(), c.config.MaxDepth)
}

// sampleOffset returns a point in the [-0.5, 0.5] square around the pixel center
func (c *Camera) sampleOffset(si, sj int, sampler core.Sampler) core.Vec2 {
	jitter := sampler.Get2D()
	if !c.config.Stratified {
		return core.NewVec2(jitter.X-0.5, jitter.Y-0.5)
	}

	recip := 1.0 / float64(c.sqrtSpp)
	return core.NewVec2(
		(float64(si)+jitter.X)*recip-0.5,
		(float64(sj)+jitter.Y)*recip-0.5,
	)
}
