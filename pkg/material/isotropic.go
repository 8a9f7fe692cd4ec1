package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Isotropic is the phase function of a participating medium.
// It scatters uniformly in every direction, ignoring the surface normal.
type Isotropic struct {
	Albedo Texture
}

// NewIsotropic creates a new isotropic phase function with solid color
func NewIsotropic(albedo core.Vec3) *Isotropic {
	return &Isotropic{Albedo: NewSolidColor(albedo)}
}

// NewTexturedIsotropic creates a new isotropic phase function with texture
func NewTexturedIsotropic(albedo Texture) *Isotropic {
	return &Isotropic{Albedo: albedo}
}

// Scatter implements the Material interface
func (i *Isotropic) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{
		Scattered:   rayIn.Scatter(hit.Point, core.SampleOnUnitSphere(sampler.Get2D())),
		Attenuation: i.Albedo.Evaluate(hit.UV, hit.Point),
	}, true
}
