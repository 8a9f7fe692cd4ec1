package geometry

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// TriangleMesh represents a collection of triangles with efficient ray intersection
// It uses an internal BVH (Bounding Volume Hierarchy) for fast intersection tests
type TriangleMesh struct {
	triangles []Hittable
	bvh       *BVH
}

// TriangleMeshOptions contains optional parameters for triangle mesh creation
type TriangleMeshOptions struct {
	Materials []material.Material // Optional per-triangle materials
	Rotation  *core.Vec3          // Optional rotation (radians, X then Y then Z) to apply to vertices
	Center    *core.Vec3          // Optional center point for rotation
	Scale     float64             // Optional uniform scale applied before rotation (0 means 1)
	Offset    core.Vec3           // Translation applied last
}

// NewTriangleMesh creates a new triangle mesh from vertices and face indices
// vertices: array of 3D points
// faces: array of triangle indices (each group of 3 indices forms a triangle)
// material: default material for all triangles
// options: optional parameters (can be nil for basic mesh)
func NewTriangleMesh(vertices []core.Vec3, faces []int, mat material.Material, options *TriangleMeshOptions) (*TriangleMesh, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("face index count %d is not a multiple of 3", len(faces))
	}

	numTriangles := len(faces) / 3
	if options != nil && options.Materials != nil && len(options.Materials) != numTriangles {
		return nil, fmt.Errorf("got %d materials for %d triangles", len(options.Materials), numTriangles)
	}

	workingVertices := transformVertices(vertices, options)

	triangles := make([]Hittable, 0, numTriangles)
	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]
		for _, index := range []int{i0, i1, i2} {
			if index < 0 || index >= len(workingVertices) {
				return nil, fmt.Errorf("triangle %d: vertex index %d out of range [0, %d)", i, index, len(workingVertices))
			}
		}

		triangleMaterial := mat
		if options != nil && options.Materials != nil {
			triangleMaterial = options.Materials[i]
		}

		triangles = append(triangles, NewTriangle(workingVertices[i0], workingVertices[i1], workingVertices[i2], triangleMaterial))
	}

	return &TriangleMesh{
		triangles: triangles,
		bvh:       NewBVH(triangles),
	}, nil
}

// transformVertices applies scale, rotation about the center, then offset
func transformVertices(vertices []core.Vec3, options *TriangleMeshOptions) []core.Vec3 {
	if options == nil {
		return vertices
	}

	scale := options.Scale
	if scale == 0 {
		scale = 1
	}

	transformed := make([]core.Vec3, len(vertices))
	for i, vertex := range vertices {
		vertex = vertex.Multiply(scale)
		if options.Rotation != nil {
			if options.Center != nil {
				vertex = vertex.Subtract(*options.Center)
			}
			vertex = vertex.Rotate(*options.Rotation)
			if options.Center != nil {
				vertex = vertex.Add(*options.Center)
			}
		}
		transformed[i] = vertex.Add(options.Offset)
	}
	return transformed
}

// Hit tests if a ray intersects with any triangle in the mesh
func (tm *TriangleMesh) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	return tm.bvh.Hit(ray, rayT, sampler)
}

// BoundingBox returns the axis-aligned bounding box for the entire mesh
func (tm *TriangleMesh) BoundingBox() core.AABB {
	return tm.bvh.BoundingBox()
}

// TriangleCount returns the number of triangles in this mesh
func (tm *TriangleMesh) TriangleCount() int {
	return len(tm.triangles)
}

// Stats returns statistics about the mesh's internal BVH
func (tm *TriangleMesh) Stats() BVHStats {
	return tm.bvh.Stats()
}
