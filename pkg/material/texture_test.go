package material

import (
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestCheckerTexture(t *testing.T) {
	even := core.NewVec3(1, 1, 1)
	odd := core.NewVec3(0, 0, 0)
	checker := NewCheckerTextureFromColors(0.5, even, odd)

	tests := []struct {
		name     string
		point    core.Vec3
		expected core.Vec3
	}{
		{"origin cell", core.NewVec3(0.1, 0.1, 0.1), even},
		{"one step in x", core.NewVec3(0.6, 0.1, 0.1), odd},
		{"two steps", core.NewVec3(0.6, 0.6, 0.1), even},
		{"negative cell", core.NewVec3(-0.1, 0.1, 0.1), odd},
		{"negative two steps", core.NewVec3(-0.1, -0.1, 0.1), even},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checker.Evaluate(core.Vec2{}, tt.point); got != tt.expected {
				t.Errorf("Evaluate(%v) = %v, want %v", tt.point, got, tt.expected)
			}
		})
	}
}

func TestImageTexture_Nearest(t *testing.T) {
	red := core.NewVec3(1, 0, 0)
	green := core.NewVec3(0, 1, 0)
	blue := core.NewVec3(0, 0, 1)
	white := core.NewVec3(1, 1, 1)

	// Top row: red, green. Bottom row: blue, white.
	texture := NewImageTexture(2, 2, []core.Vec3{red, green, blue, white})

	tests := []struct {
		name     string
		uv       core.Vec2
		expected core.Vec3
	}{
		{"bottom left", core.NewVec2(0, 0), blue},
		{"top left", core.NewVec2(0, 1), red},
		{"top right", core.NewVec2(1, 1), green},
		{"bottom right", core.NewVec2(1, 0), white},
		{"clamped below", core.NewVec2(-3, -3), blue},
		{"clamped above", core.NewVec2(5, 5), green},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := texture.Evaluate(tt.uv, core.Vec3{}); got != tt.expected {
				t.Errorf("Evaluate(%v) = %v, want %v", tt.uv, got, tt.expected)
			}
		})
	}
}

func TestImageTexture_Bilinear(t *testing.T) {
	black := core.NewVec3(0, 0, 0)
	white := core.NewVec3(1, 1, 1)
	texture := NewImageTexture(2, 1, []core.Vec3{black, white}).WithFilter(FilterBilinear)

	got := texture.Evaluate(core.NewVec2(0.5, 0.5), core.Vec3{})
	if got != core.NewVec3(0.5, 0.5, 0.5) {
		t.Errorf("Expected midpoint blend, got %v", got)
	}
	if texture.Evaluate(core.NewVec2(1, 0), core.Vec3{}) != white {
		t.Error("Expected right edge to be white")
	}
}

func TestImageTexture_MissingData(t *testing.T) {
	texture := NewImageTexture(0, 0, nil)
	if got := texture.Evaluate(core.NewVec2(0.5, 0.5), core.Vec3{}); got != core.NewVec3(0, 1, 1) {
		t.Errorf("Expected cyan for missing data, got %v", got)
	}
}

func TestNoiseTexture(t *testing.T) {
	a := NewNoiseTexture(4, 7)
	b := NewNoiseTexture(4, 7)

	for i := 0; i < 100; i++ {
		p := core.NewVec3(float64(i)*0.37-10, float64(i)*0.11, float64(i)*-0.23)
		va := a.Evaluate(core.Vec2{}, p)
		if va != b.Evaluate(core.Vec2{}, p) {
			t.Fatalf("Expected same seed to give same noise at %v", p)
		}
		if va.X < 0 || va.X > 1 || va.X != va.Y || va.Y != va.Z {
			t.Fatalf("Expected grey level in [0,1], got %v", va)
		}
	}
}

func TestPerlin_LatticePointsAreZero(t *testing.T) {
	perlin := NewPerlin(1)
	for _, p := range []core.Vec3{{}, core.NewVec3(1, 2, 3), core.NewVec3(-4, 5, -6)} {
		if n := perlin.Noise(p); n > 1e-12 || n < -1e-12 {
			t.Errorf("Expected zero noise on lattice point %v, got %f", p, n)
		}
	}
	if turb := perlin.Turbulence(core.NewVec3(0.3, 0.7, 0.1), 7); turb < 0 {
		t.Errorf("Expected non-negative turbulence, got %f", turb)
	}
}
