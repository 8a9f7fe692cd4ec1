package scene

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

func TestList(t *testing.T) {
	infos := List()
	if len(infos) != 10 {
		t.Fatalf("Expected 10 scenes, got %d", len(infos))
	}
	for i := 1; i < len(infos); i++ {
		if infos[i-1].Name >= infos[i].Name {
			t.Errorf("Scenes not sorted: %q before %q", infos[i-1].Name, infos[i].Name)
		}
	}
	for _, info := range infos {
		if info.Description == "" {
			t.Errorf("Scene %q has no description", info.Name)
		}
	}
}

func TestCreate_AllScenes(t *testing.T) {
	for _, info := range List() {
		t.Run(info.Name, func(t *testing.T) {
			s, err := Create(info.Name, Options{Seed: 1})
			if err != nil {
				t.Fatalf("Create(%q) failed: %v", info.Name, err)
			}
			if s.Name != info.Name {
				t.Errorf("Expected scene name %q, got %q", info.Name, s.Name)
			}
			if s.World == nil {
				t.Fatal("Expected a world")
			}
			if s.World.BoundingBox().IsEmpty() {
				t.Error("Expected a non-empty world bounding box")
			}
			if err := s.Camera.Validate(); err != nil {
				t.Errorf("Scene camera invalid: %v", err)
			}
		})
	}
}

func TestCreate_UnknownScene(t *testing.T) {
	_, err := Create("teapot", Options{})
	if !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestCreate_MissingFiles(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"earth", Options{TexturePath: "missing.jpg"}},
		{"final-scene", Options{TexturePath: "missing.png"}},
		{"mesh", Options{MeshPath: "missing.ply"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Create(tt.name, tt.opts); err == nil {
				t.Error("Expected an error for a missing file")
			}
		})
	}
}

func TestBouncingSpheres_Deterministic(t *testing.T) {
	first, _ := Create("bouncing-spheres", Options{Seed: 3})
	second, _ := Create("bouncing-spheres", Options{Seed: 3})
	other, _ := Create("bouncing-spheres", Options{Seed: 4})

	a := first.World.(*geometry.BVH).Stats()
	b := second.World.(*geometry.BVH).Stats()
	if a != b {
		t.Errorf("Same seed produced different scenes: %+v vs %+v", a, b)
	}
	if first.World.BoundingBox() != second.World.BoundingBox() {
		t.Error("Same seed produced different bounds")
	}

	// Sphere count varies with the random placement; bounds almost surely do too
	if other.World.BoundingBox() == first.World.BoundingBox() && other.World.(*geometry.BVH).Stats() == a {
		t.Error("Expected a different seed to change the scene")
	}
}

func TestCornellBox_Camera(t *testing.T) {
	s, err := Create("cornell-box", Options{})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if s.Camera.LookFrom != core.NewVec3(278, 278, -800) || s.Camera.LookAt != core.NewVec3(278, 278, 0) {
		t.Errorf("Unexpected camera placement %v -> %v", s.Camera.LookFrom, s.Camera.LookAt)
	}
	if s.Camera.VFov != 40 || s.Camera.Background != (core.Vec3{}) {
		t.Errorf("Expected vfov 40 and black background, got %v and %v", s.Camera.VFov, s.Camera.Background)
	}

	// The box spans 0..555 on every axis
	box := s.World.BoundingBox()
	for axis := 0; axis < 3; axis++ {
		if math.Abs(box.Axis(axis).Min) > 1e-3 || math.Abs(box.Axis(axis).Max-555) > 1e-3 {
			t.Errorf("Axis %d spans %v, expected [0, 555]", axis, box.Axis(axis))
		}
	}
}

func TestCornellBox_RenderLightsCenter(t *testing.T) {
	s, err := Create("cornell-box", Options{})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	s.Camera.ImageWidth = 8
	s.Camera.SamplesPerPixel = 4
	s.Camera.MaxDepth = 5
	camera, err := renderer.NewCamera(s.Camera)
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}

	img, _ := renderer.NewRaytracer(camera, renderer.RenderConfig{NumWorkers: 2}, nil).Render(s.World)

	// The walls in front of the camera receive light, so the image is not black
	lit := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 || img.Pix[i+1] > 0 || img.Pix[i+2] > 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("Expected some lit pixels")
	}
}

func TestMeshScene_FromPLY(t *testing.T) {
	content := "ply\nformat ascii 1.0\nelement vertex 4\nproperty float x\nproperty float y\nproperty float z\n" +
		"property uchar red\nproperty uchar green\nproperty uchar blue\n" +
		"element face 2\nproperty list uchar int vertex_indices\nend_header\n" +
		"0 0 0 255 0 0\n4 0 0 255 0 0\n4 4 0 255 0 0\n0 4 0 255 0 0\n3 0 1 2\n3 0 2 3\n"
	path := filepath.Join(t.TempDir(), "square.ply")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write mesh: %v", err)
	}

	var log strings.Builder
	s, err := Create("mesh", Options{MeshPath: path, Logger: builderLogger{&log}})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !strings.Contains(log.String(), "2 triangles") {
		t.Errorf("Expected load to be logged, got %q", log.String())
	}

	// Scaled to two units tall, standing on the floor at the origin
	mesh := s.World.(*geometry.HittableList).Objects[0].BoundingBox()
	if math.Abs(mesh.Y.Min) > 1e-3 || math.Abs(mesh.Y.Max-2) > 1e-3 {
		t.Errorf("Expected mesh to span y in [0, 2], got %v", mesh.Y)
	}
	if math.Abs(mesh.X.Min+1) > 1e-3 || math.Abs(mesh.X.Max-1) > 1e-3 {
		t.Errorf("Expected mesh centered on x, got %v", mesh.X)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input    string
		expected core.Vec3
		wantErr  bool
	}{
		{"#000000", core.NewVec3(0, 0, 0), false},
		{"#ffffff", core.NewVec3(1, 1, 1), false},
		{"ff0000", core.NewVec3(1, 0, 0), false},
		{"#zzzzzz", core.Vec3{}, true},
		{"#12", core.Vec3{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHexColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("ParseHexColor(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}

	// Mid grey is darker in linear space
	grey, _ := ParseHexColor("#808080")
	if grey.X <= 0.2 || grey.X >= 0.5 {
		t.Errorf("Expected linear mid grey near 0.22, got %v", grey.X)
	}
}

type builderLogger struct {
	b *strings.Builder
}

func (l builderLogger) Printf(format string, args ...interface{}) {
	l.b.WriteString(fmt.Sprintf(format, args...))
}
