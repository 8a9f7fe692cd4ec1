package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// cornellWalls returns the five 555-unit walls plus a ceiling light
func cornellWalls(lightCorner, lightU, lightV core.Vec3, emission float64) []geometry.Hittable {
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))
	light := material.NewDiffuseLight(core.NewVec3(emission, emission, emission))

	return []geometry.Hittable{
		geometry.NewQuad(core.NewVec3(555, 0, 0), core.NewVec3(0, 555, 0), core.NewVec3(0, 0, 555), green),
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 555, 0), core.NewVec3(0, 0, 555), red),
		geometry.NewQuad(lightCorner, lightU, lightV, light),
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(555, 0, 0), core.NewVec3(0, 0, 555), white),
		geometry.NewQuad(core.NewVec3(555, 555, 555), core.NewVec3(-555, 0, 0), core.NewVec3(0, 0, -555), white),
		geometry.NewQuad(core.NewVec3(0, 0, 555), core.NewVec3(555, 0, 0), core.NewVec3(0, 555, 0), white),
	}
}

// cornellBoxes returns the tall and the short box, rotated and moved into place
func cornellBoxes() (tall, short geometry.Hittable) {
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))

	tallBox := geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), white)
	tall = geometry.NewTranslation(geometry.NewRotationY(tallBox, 15), core.NewVec3(265, 0, 295))

	shortBox := geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), white)
	short = geometry.NewTranslation(geometry.NewRotationY(shortBox, -18), core.NewVec3(130, 0, 65))
	return tall, short
}

func cornellCamera() renderer.CameraConfig {
	camera := sceneCamera(core.NewVec3(278, 278, -800), core.NewVec3(278, 278, 0), 40)
	camera.AspectRatio = 1
	camera.ImageWidth = 600
	camera.SamplesPerPixel = 200
	camera.Background = core.Vec3{}
	return camera
}

func newCornellBox(opts Options) (*Scene, error) {
	objects := cornellWalls(core.NewVec3(343, 554, 332), core.NewVec3(-130, 0, 0), core.NewVec3(0, 0, -105), 15)
	tall, short := cornellBoxes()
	objects = append(objects, tall, short)

	return &Scene{World: geometry.NewBVH(objects), Camera: cornellCamera()}, nil
}

func newCornellSmoke(opts Options) (*Scene, error) {
	objects := cornellWalls(core.NewVec3(113, 554, 127), core.NewVec3(330, 0, 0), core.NewVec3(0, 0, 305), 7)
	tall, short := cornellBoxes()
	objects = append(objects,
		geometry.NewConstantMedium(tall, 0.01, core.NewVec3(0, 0, 0)),
		geometry.NewConstantMedium(short, 0.01, core.NewVec3(1, 1, 1)),
	)

	return &Scene{World: geometry.NewBVH(objects), Camera: cornellCamera()}, nil
}
