package loaders

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
)

// MeshData is an indexed triangle list, ready for geometry.NewTriangleMesh
type MeshData struct {
	Vertices []core.Vec3 // Vertex positions
	Faces    []int       // Triangle indices (3 per triangle)
	Normals  []core.Vec3 // Per-vertex normals - empty if not present
	Colors   []core.Vec3 // Per-vertex colors normalized to [0,1] - empty if not present
}

// TriangleCount returns the number of triangles in the mesh
func (m *MeshData) TriangleCount() int {
	return len(m.Faces) / 3
}

// LoadMesh loads a PLY, glTF or GLB file, choosing the reader by extension
func LoadMesh(filename string) (*MeshData, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".ply":
		return LoadPLY(filename)
	case ".gltf", ".glb":
		return LoadGLTF(filename)
	default:
		return nil, fmt.Errorf("unsupported mesh format %q", ext)
	}
}
