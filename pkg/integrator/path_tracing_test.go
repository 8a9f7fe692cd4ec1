package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

func vecClose(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance && math.Abs(a.Y-b.Y) <= tolerance && math.Abs(a.Z-b.Z) <= tolerance
}

// TestPathTracingDepthTermination tests that ray depth is properly limited
func TestPathTracingDepthTermination(t *testing.T) {
	background := core.NewVec3(0.7, 0.8, 1.0)
	integrator := NewPathTracingIntegrator(background)
	world := geometry.NewSphere(core.NewVec3(0, 0, -2), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	sampler := core.NewRandomSampler(42, 0)

	tests := []struct {
		name     string
		ray      core.Ray
		expected core.Vec3
	}{
		{"no budget", core.NewRayWithTime(core.Vec3{}, core.NewVec3(0, 1, 0), 0, 0), core.Vec3{}},
		{"escape with budget", core.NewRayWithTime(core.Vec3{}, core.NewVec3(0, 1, 0), 0, 1), background},
		// The scattered ray has no budget left, so the diffuse hit contributes nothing
		{"single bounce into diffuse", core.NewRayWithTime(core.Vec3{}, core.NewVec3(0, 0, -1), 0, 1), core.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := integrator.RayColor(tt.ray, world, sampler); got != tt.expected {
				t.Errorf("RayColor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestPathTracing_LightIsNotAttenuated(t *testing.T) {
	emission := core.NewVec3(15, 15, 15)
	light := geometry.NewQuad(core.NewVec3(-1, -1, -3), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), material.NewDiffuseLight(emission))
	integrator := NewPathTracingIntegrator(core.Vec3{})
	sampler := core.NewRandomSampler(1, 0)

	got := integrator.RayColor(core.NewRayWithTime(core.Vec3{}, core.NewVec3(0, 0, -1), 0, 10), light, sampler)
	if got != emission {
		t.Errorf("Expected light emission %v, got %v", emission, got)
	}

	miss := integrator.RayColor(core.NewRayWithTime(core.Vec3{}, core.NewVec3(0, 0, 1), 0, 10), light, sampler)
	if miss != (core.Vec3{}) {
		t.Errorf("Expected black background, got %v", miss)
	}
}

func TestPathTracing_MirrorAttenuatesBackground(t *testing.T) {
	background := core.NewVec3(1, 0.5, 0.25)
	mirror := geometry.NewQuad(core.NewVec3(-1, -1, -3), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), material.NewMetal(core.NewVec3(0.5, 0.5, 0.5), 0))
	integrator := NewPathTracingIntegrator(background)
	sampler := core.NewRandomSampler(1, 0)

	got := integrator.RayColor(core.NewRayWithTime(core.Vec3{}, core.NewVec3(0, 0, -1), 0, 2), mirror, sampler)
	if !vecClose(got, background.Multiply(0.5), 1e-12) {
		t.Errorf("Expected half the background %v, got %v", background.Multiply(0.5), got)
	}
}

// TestPathTracing_ConvexDiffuseSphere relies on a convex object never being hit twice:
// every path bounces exactly once and escapes, so the result is albedo times background.
func TestPathTracing_ConvexDiffuseSphere(t *testing.T) {
	background := core.NewVec3(1, 1, 1)
	albedo := core.NewVec3(0.5, 0.25, 0.75)
	world := geometry.NewSphere(core.NewVec3(0, 0, -2), 0.5, material.NewLambertian(albedo))
	integrator := NewPathTracingIntegrator(background)
	sampler := core.NewRandomSampler(7, 0)

	for i := 0; i < 100; i++ {
		got := integrator.RayColor(core.NewRayWithTime(core.Vec3{}, core.NewVec3(0, 0, -1), 0, 50), world, sampler)
		if !vecClose(got, albedo, 1e-12) {
			t.Fatalf("Expected %v, got %v", albedo, got)
		}
	}
}

func TestPathTracing_MediumScatters(t *testing.T) {
	boundary := geometry.NewSphere(core.NewVec3(0, 0, -5), 1, nil)
	smoke := geometry.NewConstantMedium(boundary, 1e6, core.NewVec3(0.5, 0.5, 0.5))
	integrator := NewPathTracingIntegrator(core.NewVec3(1, 1, 1))
	sampler := core.NewRandomSampler(3, 0)

	// Dense smoke scatters at least once before the ray escapes, dimming the background
	got := integrator.RayColor(core.NewRayWithTime(core.Vec3{}, core.NewVec3(0, 0, -1), 0, 50), smoke, sampler)
	if got.X >= 1 || got.X < 0 {
		t.Errorf("Expected dimmed background, got %v", got)
	}
}
