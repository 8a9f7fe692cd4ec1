package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Sphere represents a sphere shape whose center may move linearly over the shutter interval
type Sphere struct {
	Center   core.Vec3 // Center at time 0
	Velocity core.Vec3 // Displacement of the center between time 0 and time 1
	Radius   float64
	Material material.Material
	bbox     core.AABB
}

// NewSphere creates a new stationary sphere
func NewSphere(center core.Vec3, radius float64, material material.Material) *Sphere {
	return NewMovingSphere(center, center, radius, material)
}

// NewMovingSphere creates a sphere travelling from center0 at time 0 to center1 at time 1
func NewMovingSphere(center0, center1 core.Vec3, radius float64, material material.Material) *Sphere {
	radius = math.Max(0, radius)
	s := &Sphere{
		Center:   center0,
		Velocity: center1.Subtract(center0),
		Radius:   radius,
		Material: material,
	}

	extent := core.NewVec3(radius, radius, radius)
	box0 := core.NewAABBFromPoints(center0.Subtract(extent), center0.Add(extent))
	box1 := core.NewAABBFromPoints(center1.Subtract(extent), center1.Add(extent))
	s.bbox = box0.Combine(box1)

	return s
}

// CenterAt returns the sphere center at the given shutter time
func (s *Sphere) CenterAt(time float64) core.Vec3 {
	return s.Center.Add(s.Velocity.Multiply(time))
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	center := s.CenterAt(ray.Time)

	// Quadratic with b = -2h: at² - 2ht + c = 0
	oc := center.Subtract(ray.Origin)
	a := ray.Direction.LengthSquared()
	h := ray.Direction.Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Find the nearest root strictly inside the acceptable range
	root := (h - sqrtD) / a
	if !rayT.Surrounds(root) {
		root = (h + sqrtD) / a
		if !rayT.Surrounds(root) {
			return nil, false
		}
	}

	hitRecord := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	outwardNormal := hitRecord.Point.Subtract(center).Multiply(1.0 / s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)
	hitRecord.UV = sphereUV(outwardNormal)

	return hitRecord, true
}

// BoundingBox returns the box swept by the sphere over the shutter interval
func (s *Sphere) BoundingBox() core.AABB {
	return s.bbox
}

// sphereUV maps a point on the unit sphere to texture coordinates.
// u runs around the Y axis starting from -X, v runs from -Y (0) to +Y (1).
func sphereUV(p core.Vec3) core.Vec2 {
	theta := math.Acos(math.Max(-1, math.Min(1, -p.Y)))
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}
