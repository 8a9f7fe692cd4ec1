package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Translation moves a wrapped object by a fixed offset
type Translation struct {
	Object Hittable
	Offset core.Vec3
	bbox   core.AABB
}

// NewTranslation wraps object so that it appears displaced by offset
func NewTranslation(object Hittable, offset core.Vec3) *Translation {
	return &Translation{
		Object: object,
		Offset: offset,
		bbox:   object.BoundingBox().Shift(offset),
	}
}

// Hit moves the ray into object space, tests the object, and moves the hit point back
func (tr *Translation) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	offsetRay := ray.WithOrigin(ray.Origin.Subtract(tr.Offset))

	hit, ok := tr.Object.Hit(offsetRay, rayT, sampler)
	if !ok {
		return nil, false
	}

	hit.Point = hit.Point.Add(tr.Offset)
	return hit, true
}

// BoundingBox returns the object's box shifted by the offset
func (tr *Translation) BoundingBox() core.AABB {
	return tr.bbox
}

// RotationY rotates a wrapped object about the Y axis
type RotationY struct {
	Object   Hittable
	sinTheta float64
	cosTheta float64
	bbox     core.AABB
}

// NewRotationY wraps object rotated by angle degrees about the Y axis
func NewRotationY(object Hittable, angle float64) *RotationY {
	radians := angle * math.Pi / 180
	r := &RotationY{
		Object:   object,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}

	// The rotated box is the extent of the eight rotated corners
	box := object.BoundingBox()
	corners := make([]core.Vec3, 0, 8)
	for _, x := range []float64{box.X.Min, box.X.Max} {
		for _, y := range []float64{box.Y.Min, box.Y.Max} {
			for _, z := range []float64{box.Z.Min, box.Z.Max} {
				corners = append(corners, r.toWorld(core.NewVec3(x, y, z)))
			}
		}
	}
	r.bbox = core.NewAABBFromPoints(corners...)

	return r
}

// toObject applies the inverse rotation
func (r *RotationY) toObject(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X-r.sinTheta*v.Z,
		v.Y,
		r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// toWorld applies the forward rotation
func (r *RotationY) toWorld(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X+r.sinTheta*v.Z,
		v.Y,
		-r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// Hit rotates the ray into object space, tests the object, and rotates the hit back
func (r *RotationY) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	rotated := ray
	rotated.Origin = r.toObject(ray.Origin)
	rotated.Direction = r.toObject(ray.Direction)

	hit, ok := r.Object.Hit(rotated, rayT, sampler)
	if !ok {
		return nil, false
	}

	hit.Point = r.toWorld(hit.Point)
	hit.Normal = r.toWorld(hit.Normal)
	return hit, true
}

// BoundingBox returns the axis-aligned box around the rotated object
func (r *RotationY) BoundingBox() core.AABB {
	return r.bbox
}
