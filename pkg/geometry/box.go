package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewBox creates the axis-aligned box with opposite corners a and b,
// made up of six outward-facing quads
func NewBox(a, b core.Vec3, material material.Material) *HittableList {
	minP := core.NewVec3(math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z))
	maxP := core.NewVec3(math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z))

	dx := core.NewVec3(maxP.X-minP.X, 0, 0)
	dy := core.NewVec3(0, maxP.Y-minP.Y, 0)
	dz := core.NewVec3(0, 0, maxP.Z-minP.Z)

	return NewHittableList(
		NewQuad(core.NewVec3(minP.X, minP.Y, maxP.Z), dx, dy, material),          // front
		NewQuad(core.NewVec3(maxP.X, minP.Y, maxP.Z), dz.Negate(), dy, material), // right
		NewQuad(core.NewVec3(maxP.X, minP.Y, minP.Z), dx.Negate(), dy, material), // back
		NewQuad(core.NewVec3(minP.X, minP.Y, minP.Z), dz, dy, material),          // left
		NewQuad(core.NewVec3(minP.X, maxP.Y, maxP.Z), dx, dz.Negate(), material), // top
		NewQuad(core.NewVec3(minP.X, minP.Y, minP.Z), dx, dz, material),          // bottom
	)
}
