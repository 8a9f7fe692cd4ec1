package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// shadowAcneEpsilon keeps scattered rays from re-hitting the surface they left
const shadowAcneEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing.
// Paths end when the ray's bounce budget runs out, the ray escapes, or a material absorbs it.
// There is no Russian roulette: light still in flight at the depth limit is dropped.
type PathTracingIntegrator struct {
	Background core.Vec3 // Radiance of rays that escape the scene
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(background core.Vec3) *PathTracingIntegrator {
	return &PathTracingIntegrator{Background: background}
}

// RayColor computes the color for a single ray.
// It unrolls color(r) = emitted + attenuation * color(scattered) into a loop,
// carrying the product of attenuations so far as the path throughput.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler) core.Vec3 {
	radiance := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)

	for {
		// If we've exceeded the ray bounce limit, no more light is gathered
		if ray.Depth <= 0 {
			return radiance
		}

		hit, isHit := world.Hit(ray, core.NewInterval(shadowAcneEpsilon, math.Inf(1)), sampler)
		if !isHit {
			return radiance.Add(throughput.MultiplyVec(pt.Background))
		}

		radiance = radiance.Add(throughput.MultiplyVec(material.Emitted(*hit)))

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			return radiance
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}
}
