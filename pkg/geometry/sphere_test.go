package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

var forwardInterval = core.NewInterval(0.001, math.Inf(1))

func testSampler() core.Sampler {
	return core.NewRandomSampler(1, 1)
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	if hit, isHit := sphere.Hit(ray, forwardInterval, testSampler()); isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, forwardInterval, testSampler())

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected FrontFace=%t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if hit.Normal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			if hit.Material != sphere.Material {
				t.Error("Expected hit record to carry the sphere material")
			}
		})
	}
}

func TestSphere_HitDistanceFromOutside(t *testing.T) {
	tests := []struct {
		center   core.Vec3
		radius   float64
		origin   core.Vec3
		expected float64
	}{
		{core.NewVec3(0, 0, -10), 2, core.NewVec3(0, 0, 0), 8},
		{core.NewVec3(3, 4, 0), 1, core.NewVec3(0, 0, 0), 4},
		{core.NewVec3(0, -1000, 0), 1000, core.NewVec3(0, 5, 0), 5},
	}

	for _, tt := range tests {
		sphere := NewSphere(tt.center, tt.radius, nil)
		direction := tt.center.Subtract(tt.origin).Normalize()
		hit, ok := sphere.Hit(core.NewRay(tt.origin, direction), forwardInterval, testSampler())
		if !ok {
			t.Fatalf("Expected hit on sphere at %v", tt.center)
		}
		if math.Abs(hit.T-tt.expected) > 1e-9 {
			t.Errorf("Expected t=%f, got t=%f", tt.expected, hit.T)
		}
	}
}

func TestSphere_IntervalBoundsAreExclusive(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	// Near root at t=1 lies on the boundary, so the far root at t=3 is reported
	hit, ok := sphere.Hit(ray, core.NewInterval(1, 10), testSampler())
	if !ok || math.Abs(hit.T-3) > 1e-9 {
		t.Errorf("Expected far root at t=3, got %v %v", hit, ok)
	}

	if _, ok := sphere.Hit(ray, core.NewInterval(1, 3), testSampler()); ok {
		t.Error("Expected no hit when both roots lie on the interval bounds")
	}
}

func TestSphere_Moving(t *testing.T) {
	sphere := NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), 0.5, nil)

	if got := sphere.CenterAt(0.5); got != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected center (0,1,0) at t=0.5, got %v", got)
	}

	box := sphere.BoundingBox()
	if box.Y.Min > -0.5 || box.Y.Max < 2.5 {
		t.Errorf("Expected bounding box to cover the whole sweep, got %v", box.Y)
	}

	// A ray along x at y=2 misses at time 0 and hits at time 1
	early := core.NewRayWithTime(core.NewVec3(-5, 2, 0), core.NewVec3(1, 0, 0), 0, 1)
	late := core.NewRayWithTime(core.NewVec3(-5, 2, 0), core.NewVec3(1, 0, 0), 1, 1)
	if _, ok := sphere.Hit(early, forwardInterval, testSampler()); ok {
		t.Error("Expected miss at time 0")
	}
	if _, ok := sphere.Hit(late, forwardInterval, testSampler()); !ok {
		t.Error("Expected hit at time 1")
	}
}

func TestSphereUV(t *testing.T) {
	tests := []struct {
		name  string
		point core.Vec3
		u, v  float64
	}{
		{"+x", core.NewVec3(1, 0, 0), 0.5, 0.5},
		{"+y", core.NewVec3(0, 1, 0), 0.5, 1.0},
		{"-y", core.NewVec3(0, -1, 0), 0.5, 0.0},
		{"+z", core.NewVec3(0, 0, 1), 0.25, 0.5},
		{"-z", core.NewVec3(0, 0, -1), 0.75, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uv := sphereUV(tt.point)
			if math.Abs(uv.X-tt.u) > 1e-9 || math.Abs(uv.Y-tt.v) > 1e-9 {
				t.Errorf("sphereUV(%v) = %v, want (%f, %f)", tt.point, uv, tt.u, tt.v)
			}
		})
	}
}
