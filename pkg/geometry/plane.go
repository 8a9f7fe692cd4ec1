package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// PlaneShape selects which region of the plane spanned by U and V is solid
type PlaneShape int

const (
	// ShapeQuad is the parallelogram 0 <= alpha, beta <= 1
	ShapeQuad PlaneShape = iota
	// ShapeTriangle is the triangle alpha, beta >= 0, alpha + beta <= 1
	ShapeTriangle
)

// Plane is a flat primitive defined by a corner and two edge vectors
type Plane struct {
	Corner   core.Vec3 // One corner of the shape
	U        core.Vec3 // First edge vector
	V        core.Vec3 // Second edge vector
	Normal   core.Vec3 // Unit normal (U × V normalized)
	D        float64   // Plane equation constant: normal · p = D
	W        core.Vec3 // n / (n · n), used to recover planar coordinates
	Shape    PlaneShape
	Material material.Material
	bbox     core.AABB
}

// NewPlane creates a new planar primitive of the given shape
func NewPlane(corner, u, v core.Vec3, shape PlaneShape, material material.Material) *Plane {
	n := u.Cross(v)
	normal := n.Normalize()

	var bbox core.AABB
	if shape == ShapeTriangle {
		bbox = core.NewAABBFromPoints(corner, corner.Add(u), corner.Add(v))
	} else {
		diagonal1 := core.NewAABBFromPoints(corner, corner.Add(u).Add(v))
		diagonal2 := core.NewAABBFromPoints(corner.Add(u), corner.Add(v))
		bbox = diagonal1.Combine(diagonal2)
	}

	return &Plane{
		Corner:   corner,
		U:        u,
		V:        v,
		Normal:   normal,
		D:        normal.Dot(corner),
		W:        n.Multiply(1.0 / n.Dot(n)),
		Shape:    shape,
		Material: material,
		bbox:     bbox,
	}
}

// Hit tests if a ray intersects with the shape
func (p *Plane) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Ray is parallel to the plane
	if math.Abs(denominator) < 1e-8 {
		return nil, false
	}

	t := (p.D - ray.Origin.Dot(p.Normal)) / denominator
	if !rayT.Contains(t) {
		return nil, false
	}

	hitPoint := ray.At(t)

	// Planar coordinates of the hit point relative to the corner
	planarHit := hitPoint.Subtract(p.Corner)
	alpha := p.W.Dot(planarHit.Cross(p.V))
	beta := p.W.Dot(p.U.Cross(planarHit))

	if !p.isInterior(alpha, beta) {
		return nil, false
	}

	hitRecord := &material.HitRecord{
		T:        t,
		Point:    hitPoint,
		Material: p.Material,
		UV:       core.NewVec2(alpha, beta),
	}
	hitRecord.SetFaceNormal(ray, p.Normal)

	return hitRecord, true
}

func (p *Plane) isInterior(alpha, beta float64) bool {
	switch p.Shape {
	case ShapeTriangle:
		return alpha >= 0 && beta >= 0 && alpha+beta <= 1
	default:
		unit := core.NewInterval(0, 1)
		return unit.Contains(alpha) && unit.Contains(beta)
	}
}

// BoundingBox returns the axis-aligned bounding box of the shape
func (p *Plane) BoundingBox() core.AABB {
	return p.bbox
}
