package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
)

func groundChecker() material.Texture {
	return material.NewCheckerTextureFromColors(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
}

// newBouncingSpheres scatters small spheres over a 22x22 grid; the diffuse ones bounce during the shutter
func newBouncingSpheres(opts Options) (*Scene, error) {
	r := newRand(opts)
	objects := []geometry.Hittable{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(groundChecker())),
	}

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := r.Float64()
			center := core.NewVec3(float64(a)+0.9*r.Float64(), 0.2, float64(b)+0.9*r.Float64())
			if center.Subtract(core.NewVec3(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := randomVec(r, 0, 1).MultiplyVec(randomVec(r, 0, 1))
				bounce := core.NewVec3(0, r.Float64()/2, 0)
				objects = append(objects, geometry.NewMovingSphere(center, center.Add(bounce), 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				albedo := randomVec(r, 0.5, 1)
				objects = append(objects, geometry.NewSphere(center, 0.2, material.NewMetal(albedo, r.Float64()/2)))
			default:
				objects = append(objects, geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	objects = append(objects,
		geometry.NewSphere(core.NewVec3(0, 1, 0), 0.5, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0)),
	)

	camera := sceneCamera(core.NewVec3(13, 2, 3), core.NewVec3(0, 0, 0), 20)
	camera.DefocusAngle = 0.6
	return &Scene{World: geometry.NewBVH(objects), Camera: camera}, nil
}

func newCheckeredSpheres(opts Options) (*Scene, error) {
	checker := material.NewTexturedLambertian(groundChecker())
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, checker),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, checker),
	)
	return &Scene{
		World:  world,
		Camera: sceneCamera(core.NewVec3(13, 2, 3), core.NewVec3(0, 0, 0), 20),
	}, nil
}

// loadSurfaceTexture returns the user's image, or a UV grid when none was given
func loadSurfaceTexture(opts Options) (material.Texture, error) {
	if opts.TexturePath == "" {
		return material.NewUVDebugTexture(256, 128), nil
	}
	texture, err := loaders.LoadImageTexture(opts.TexturePath)
	if err != nil {
		return nil, err
	}
	opts.Logger.Printf("Loaded texture %s (%dx%d)\n", opts.TexturePath, texture.Width, texture.Height)
	return texture, nil
}

func newEarth(opts Options) (*Scene, error) {
	texture, err := loadSurfaceTexture(opts)
	if err != nil {
		return nil, err
	}
	globe := geometry.NewSphere(core.NewVec3(0, 0, 0), 2, material.NewTexturedLambertian(texture))
	return &Scene{
		World:  geometry.NewHittableList(globe),
		Camera: sceneCamera(core.NewVec3(0, 0, 12), core.NewVec3(0, 0, 0), 20),
	}, nil
}

func newPerlinSpheres(opts Options) (*Scene, error) {
	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, opts.Seed))
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	)
	return &Scene{
		World:  world,
		Camera: sceneCamera(core.NewVec3(13, 2, 3), core.NewVec3(0, 0, 0), 20),
	}, nil
}
