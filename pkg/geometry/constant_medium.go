package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// boundaryProbeOffset separates the exit probe from the entry hit
const boundaryProbeOffset = 1e-4

// ConstantMedium is a homogeneous participating medium such as smoke or fog.
// The boundary must be closed and convex for the entry/exit probe to be meaningful.
type ConstantMedium struct {
	Boundary      Hittable
	NegInvDensity float64
	PhaseFunction material.Material
}

// NewConstantMedium creates a medium of the given density scattering with a solid albedo
func NewConstantMedium(boundary Hittable, density float64, albedo core.Vec3) *ConstantMedium {
	return NewTexturedConstantMedium(boundary, density, material.NewSolidColor(albedo))
}

// NewTexturedConstantMedium creates a medium whose albedo comes from a texture
func NewTexturedConstantMedium(boundary Hittable, density float64, albedo material.Texture) *ConstantMedium {
	return &ConstantMedium{
		Boundary:      boundary,
		NegInvDensity: -1.0 / density,
		PhaseFunction: material.NewTexturedIsotropic(albedo),
	}
}

// Hit samples a free-flight distance through the medium and reports a scattering
// event if it falls before the ray leaves the boundary
func (cm *ConstantMedium) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	entry, ok := cm.Boundary.Hit(ray, core.UniverseInterval(), sampler)
	if !ok {
		return nil, false
	}

	exit, ok := cm.Boundary.Hit(ray, core.NewInterval(entry.T+boundaryProbeOffset, math.Inf(1)), sampler)
	if !ok {
		return nil, false
	}

	tEntry := math.Max(math.Max(entry.T, rayT.Min), 0)
	tExit := math.Min(exit.T, rayT.Max)
	if tEntry >= tExit {
		return nil, false
	}

	rayLength := ray.Direction.Length()
	distanceInsideBoundary := (tExit - tEntry) * rayLength
	hitDistance := cm.NegInvDensity * math.Log(sampler.Get1D())

	if hitDistance > distanceInsideBoundary {
		return nil, false
	}

	t := tEntry + hitDistance/rayLength
	return &material.HitRecord{
		T:         t,
		Point:     ray.At(t),
		Normal:    core.NewVec3(1, 0, 0), // arbitrary
		FrontFace: true,
		Material:  cm.PhaseFunction,
	}, true
}

// BoundingBox returns the boundary's bounding box
func (cm *ConstantMedium) BoundingBox() core.AABB {
	return cm.Boundary.BoundingBox()
}
