package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// TextureFilter selects how an image texture resolves a lookup between pixels
type TextureFilter int

const (
	FilterNearest TextureFilter = iota
	FilterBilinear
)

// missingTextureColor flags textures that were never given pixel data
var missingTextureColor = core.NewVec3(0, 1, 1)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major, top row first: Pixels[y*Width + x]
	Filter TextureFilter
}

// NewImageTexture creates a new image texture with nearest-pixel lookup
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// WithFilter returns a copy of the texture using the given filter
func (t *ImageTexture) WithFilter(filter TextureFilter) *ImageTexture {
	clone := *t
	clone.Filter = filter
	return &clone
}

// Evaluate samples the texture at given UV coordinates.
// UV is clamped to [0,1]; v=0 is the bottom row of the image.
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Width <= 0 || t.Height <= 0 || len(t.Pixels) < t.Width*t.Height {
		return missingTextureColor
	}

	unit := core.NewInterval(0, 1)
	u := unit.Clamp(uv.X)
	v := 1.0 - unit.Clamp(uv.Y)

	x := u * float64(t.Width-1)
	y := v * float64(t.Height-1)

	if t.Filter == FilterBilinear {
		return t.bilinear(x, y)
	}
	return t.pixel(int(x), int(y))
}

func (t *ImageTexture) bilinear(x, y float64) core.Vec3 {
	x0, y0 := int(math.Floor(x)), int(math.Floor(y))
	x1, y1 := min(x0+1, t.Width-1), min(y0+1, t.Height-1)
	fx, fy := x-float64(x0), y-float64(y0)

	top := t.pixel(x0, y0).Multiply(1 - fx).Add(t.pixel(x1, y0).Multiply(fx))
	bottom := t.pixel(x0, y1).Multiply(1 - fx).Add(t.pixel(x1, y1).Multiply(fx))
	return top.Multiply(1 - fy).Add(bottom.Multiply(fy))
}

func (t *ImageTexture) pixel(x, y int) core.Vec3 {
	return t.Pixels[y*t.Width+x]
}
