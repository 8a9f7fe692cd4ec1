package scene

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
)

var (
	meshGold   = mustHex("#d4af37")
	floorLight = mustHex("#e8e4d8")
	floorDark  = mustHex("#3c4a5e")
)

// newMeshScene places a mesh, scaled to two units tall, on a checkered floor
func newMeshScene(opts Options) (*Scene, error) {
	data := icosahedron()
	if opts.MeshPath != "" {
		loaded, err := loaders.LoadMesh(opts.MeshPath)
		if err != nil {
			return nil, err
		}
		opts.Logger.Printf("Loaded mesh %s: %d vertices, %d triangles\n",
			opts.MeshPath, len(loaded.Vertices), loaded.TriangleCount())
		data = loaded
	}

	bounds := core.NewAABBFromPoints(data.Vertices...)
	extent := math.Max(bounds.X.Size(), math.Max(bounds.Y.Size(), bounds.Z.Size()))
	scale := 1.0
	if extent > 0 {
		scale = 2 / extent
	}
	base := core.NewVec3(bounds.Center().X, bounds.Y.Min, bounds.Center().Z).Multiply(scale)

	options := &geometry.TriangleMeshOptions{
		Scale:  scale,
		Offset: base.Negate(),
	}
	if len(data.Colors) == len(data.Vertices) {
		options.Materials = faceMaterials(data)
	}

	mesh, err := geometry.NewTriangleMesh(data.Vertices, data.Faces, material.NewMetal(meshGold, 0.2), options)
	if err != nil {
		return nil, err
	}
	stats := mesh.Stats()
	opts.Logger.Printf("Mesh BVH: %d nodes, max depth %d\n", stats.TotalNodes, stats.MaxDepth)

	floor := material.NewTexturedLambertian(material.NewCheckerTextureFromColors(1, floorLight, floorDark))
	world := geometry.NewHittableList(
		mesh,
		geometry.NewQuad(core.NewVec3(-10, 0, -10), core.NewVec3(20, 0, 0), core.NewVec3(0, 0, 20), floor),
		geometry.NewSphere(core.NewVec3(-3, 6, 3), 1.5, material.NewDiffuseLight(core.NewVec3(6, 6, 6))),
	)

	camera := sceneCamera(core.NewVec3(0, 2.5, 6), core.NewVec3(0, 1, 0), 35)
	camera.FocusDist = 6
	return &Scene{World: world, Camera: camera}, nil
}

// faceMaterials averages vertex colors into one diffuse material per triangle
func faceMaterials(data *loaders.MeshData) []material.Material {
	materials := make([]material.Material, 0, data.TriangleCount())
	for i := 0; i+2 < len(data.Faces); i += 3 {
		c := data.Colors[data.Faces[i]].
			Add(data.Colors[data.Faces[i+1]]).
			Add(data.Colors[data.Faces[i+2]]).
			Multiply(1.0 / 3)
		materials = append(materials, material.NewLambertian(c))
	}
	return materials
}

// icosahedron is the mesh used when no file is given
func icosahedron() *loaders.MeshData {
	phi := (1 + math.Sqrt(5)) / 2
	return &loaders.MeshData{
		Vertices: []core.Vec3{
			core.NewVec3(-1, phi, 0), core.NewVec3(1, phi, 0), core.NewVec3(-1, -phi, 0), core.NewVec3(1, -phi, 0),
			core.NewVec3(0, -1, phi), core.NewVec3(0, 1, phi), core.NewVec3(0, -1, -phi), core.NewVec3(0, 1, -phi),
			core.NewVec3(phi, 0, -1), core.NewVec3(phi, 0, 1), core.NewVec3(-phi, 0, -1), core.NewVec3(-phi, 0, 1),
		},
		Faces: []int{
			0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
			1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
			3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
			4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
		},
	}
}
