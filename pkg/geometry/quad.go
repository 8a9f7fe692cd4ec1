package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewQuad creates a parallelogram from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, material material.Material) *Plane {
	return NewPlane(corner, u, v, ShapeQuad, material)
}

// NewPolygonQuad creates an arbitrary planar quadrilateral a-b-c-d
// as the two triangles (a, b, c) and (a, c, d)
func NewPolygonQuad(a, b, c, d core.Vec3, material material.Material) *HittableList {
	return NewHittableList(
		NewTriangle(a, b, c, material),
		NewTriangle(a, c, d, material),
	)
}
