package scene

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ParseHexColor parses "#rrggbb" (the leading # is optional) into linear RGB
func ParseHexColor(hex string) (core.Vec3, error) {
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return core.Vec3{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return linear(c), nil
}

// linear converts an sRGB color to the renderer's linear space
func linear(c colorful.Color) core.Vec3 {
	r, g, b := c.Clamped().LinearRgb()
	return core.NewVec3(r, g, b)
}

// mustHex is for compile-time palette constants
func mustHex(hex string) core.Vec3 {
	c, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}
