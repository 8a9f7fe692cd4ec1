package renderer

import (
	"image/color"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// intensity is the range linear channel values are clamped to before quantizing
var intensity = core.NewInterval(0, 0.999)

// linearToGamma applies gamma 2 correction
func linearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// ColorToRGB converts a linear Vec3 color to RGBA with gamma correction and clamping.
// NaN channels are treated as black.
func ColorToRGB(c core.Vec3) color.RGBA {
	quantize := func(x float64) uint8 {
		if math.IsNaN(x) {
			return 0
		}
		return uint8(256 * intensity.Clamp(linearToGamma(x)))
	}

	return color.RGBA{
		R: quantize(c.X),
		G: quantize(c.Y),
		B: quantize(c.Z),
		A: 255,
	}
}
