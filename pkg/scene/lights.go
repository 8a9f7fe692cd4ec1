package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

func newQuads(opts Options) (*Scene, error) {
	leftRed := material.NewLambertian(core.NewVec3(1, 0.2, 0.2))
	backGreen := material.NewLambertian(core.NewVec3(0.2, 1, 0.2))
	rightBlue := material.NewLambertian(core.NewVec3(0.2, 0.2, 1))
	upperOrange := material.NewLambertian(core.NewVec3(1, 0.5, 0))
	lowerTeal := material.NewLambertian(core.NewVec3(0.2, 0.8, 0.8))

	world := geometry.NewHittableList(
		geometry.NewQuad(core.NewVec3(-3, -2, 5), core.NewVec3(0, 0, -4), core.NewVec3(0, 4, 0), leftRed),
		geometry.NewQuad(core.NewVec3(-2, -2, 0), core.NewVec3(4, 0, 0), core.NewVec3(0, 4, 0), backGreen),
		geometry.NewQuad(core.NewVec3(3, -2, 1), core.NewVec3(0, 0, 4), core.NewVec3(0, 4, 0), rightBlue),
		geometry.NewQuad(core.NewVec3(-2, 3, 1), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, 4), upperOrange),
		geometry.NewQuad(core.NewVec3(-2, -3, 5), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, -4), lowerTeal),
	)

	camera := sceneCamera(core.NewVec3(0, 0, 9), core.NewVec3(0, 0, 0), 80)
	camera.AspectRatio = 1
	camera.MaxDepth = 100
	return &Scene{World: world, Camera: camera}, nil
}

func newSimpleLight(opts Options) (*Scene, error) {
	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, opts.Seed))
	light := material.NewDiffuseLight(core.NewVec3(4, 4, 4))

	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
		geometry.NewSphere(core.NewVec3(0, 7, 0), 2, light),
		geometry.NewQuad(core.NewVec3(3, 1, -2), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), light),
	)

	camera := sceneCamera(core.NewVec3(26, 3, 6), core.NewVec3(0, 2, 0), 20)
	camera.Background = core.Vec3{}
	return &Scene{World: world, Camera: camera}, nil
}
