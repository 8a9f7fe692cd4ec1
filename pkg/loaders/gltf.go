package loaders

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/df07/go-pathtracer/pkg/core"
)

// LoadGLTF loads every triangle primitive of a .gltf or .glb file into one mesh.
// Node transforms are not applied; primitives are merged in object space.
func LoadGLTF(filename string) (*MeshData, error) {
	doc, err := gltf.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := &MeshData{}
	for _, m := range doc.Meshes {
		if err := appendGLTFMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	if len(mesh.Faces) == 0 {
		return nil, fmt.Errorf("%s contains no triangles", filename)
	}
	return mesh, nil
}

// appendGLTFMesh adds the triangle primitives of m to mesh, rebasing indices
func appendGLTFMesh(doc *gltf.Document, m *gltf.Mesh, mesh *MeshData) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			// Lines and points have no surface
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var normals [][3]float32
		if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			if normals, err = modeler.ReadNormal(doc, doc.Accessors[normIdx], nil); err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}

		baseVertex := len(mesh.Vertices)
		for i, p := range positions {
			mesh.Vertices = append(mesh.Vertices, core.NewVec3(float64(p[0]), float64(p[1]), float64(p[2])))
			if len(normals) == len(positions) {
				n := normals[i]
				mesh.Normals = append(mesh.Normals, core.NewVec3(float64(n[0]), float64(n[1]), float64(n[2])))
			}
		}

		if prim.Indices == nil {
			// Unindexed primitives list their vertices in triangle order
			for i := 0; i+2 < len(positions); i += 3 {
				mesh.Faces = append(mesh.Faces, baseVertex+i, baseVertex+i+1, baseVertex+i+2)
			}
			continue
		}

		indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return fmt.Errorf("read indices: %w", err)
		}
		for i := 0; i+2 < len(indices); i += 3 {
			for _, idx := range indices[i : i+3] {
				if int(idx) >= len(positions) {
					return fmt.Errorf("index %d out of range for %d positions", idx, len(positions))
				}
				mesh.Faces = append(mesh.Faces, baseVertex+int(idx))
			}
		}
	}

	// Normals are only meaningful when every primitive had them
	if len(mesh.Normals) != len(mesh.Vertices) {
		mesh.Normals = nil
	}
	return nil
}
