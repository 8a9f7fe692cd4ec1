package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// newFinalScene combines every primitive, material and texture in one render
func newFinalScene(opts Options) (*Scene, error) {
	r := newRand(opts)

	// 20x20 field of boxes with random heights
	ground := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))
	const boxesPerSide = 20
	boxes := make([]geometry.Hittable, 0, boxesPerSide*boxesPerSide)
	for i := 0; i < boxesPerSide; i++ {
		for j := 0; j < boxesPerSide; j++ {
			const w = 100.0
			x0 := -1000 + float64(i)*w
			z0 := -1000 + float64(j)*w
			y1 := 1 + 100*r.Float64()
			boxes = append(boxes, geometry.NewBox(core.NewVec3(x0, 0, z0), core.NewVec3(x0+w, y1, z0+w), ground))
		}
	}

	objects := []geometry.Hittable{
		geometry.NewBVH(boxes),
		geometry.NewQuad(core.NewVec3(123, 554, 147), core.NewVec3(300, 0, 0), core.NewVec3(0, 0, 265),
			material.NewDiffuseLight(core.NewVec3(7, 7, 7))),
	}

	center := core.NewVec3(400, 400, 200)
	objects = append(objects,
		geometry.NewMovingSphere(center, center.Add(core.NewVec3(30, 0, 0)), 50, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1))),
		geometry.NewSphere(core.NewVec3(260, 150, 45), 50, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 1)),
	)

	// Glass shell filled with blue subsurface fog, and thin mist over everything
	shell := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, material.NewDielectric(1.5))
	mist := geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, material.NewDielectric(1.5))
	objects = append(objects,
		shell,
		geometry.NewConstantMedium(shell, 0.2, core.NewVec3(0.2, 0.4, 0.9)),
		geometry.NewConstantMedium(mist, 0.0001, core.NewVec3(1, 1, 1)),
	)

	texture, err := loadSurfaceTexture(opts)
	if err != nil {
		return nil, err
	}
	objects = append(objects,
		geometry.NewSphere(core.NewVec3(400, 200, 400), 100, material.NewTexturedLambertian(texture)),
		geometry.NewSphere(core.NewVec3(220, 280, 300), 80, material.NewTexturedLambertian(material.NewNoiseTexture(0.2, opts.Seed))),
	)

	// Cluster of small spheres, instanced through rotation and translation
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	cluster := make([]geometry.Hittable, 0, 1000)
	for i := 0; i < 1000; i++ {
		cluster = append(cluster, geometry.NewSphere(randomVec(r, 0, 165), 10, white))
	}
	objects = append(objects, geometry.NewTranslation(
		geometry.NewRotationY(geometry.NewBVH(cluster), 15),
		core.NewVec3(-100, 270, 395),
	))

	camera := sceneCamera(core.NewVec3(478, 278, -600), core.NewVec3(278, 278, 0), 40)
	camera.AspectRatio = 1
	camera.SamplesPerPixel = 250
	camera.MaxDepth = 4
	camera.Background = core.Vec3{}

	return &Scene{World: geometry.NewBVH(objects), Camera: camera}, nil
}
