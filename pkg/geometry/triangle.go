package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewTriangle creates a triangle from three vertices.
// The front face is the side from which a, b, c appear counter-clockwise.
func NewTriangle(a, b, c core.Vec3, material material.Material) *Plane {
	return NewPlane(a, b.Subtract(a), c.Subtract(a), ShapeTriangle, material)
}
