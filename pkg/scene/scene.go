package scene

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrUnknownScene is returned (wrapped) by Create for names not in the registry
var ErrUnknownScene = errors.New("unknown scene")

// Scene is a ready-to-render world together with the camera that frames it
type Scene struct {
	Name   string
	World  geometry.Hittable
	Camera renderer.CameraConfig
}

// Options carries user inputs some scenes depend on
type Options struct {
	Seed        uint64      // Seed for randomly placed objects
	TexturePath string      // Image for textured spheres; a UV debug texture is used when empty
	MeshPath    string      // PLY, glTF or GLB mesh for the mesh scene; an icosahedron when empty
	Logger      core.Logger // Receives loading progress; silent when nil
}

// Info describes a registered scene
type Info struct {
	Name        string
	Description string
}

type builder func(opts Options) (*Scene, error)

type entry struct {
	description string
	build       builder
}

var registry = map[string]entry{
	"bouncing-spheres":  {"Random spheres with motion blur over a checkered ground", newBouncingSpheres},
	"checkered-spheres": {"Two large spheres sharing a checker texture", newCheckeredSpheres},
	"earth":             {"A single image-textured globe", newEarth},
	"perlin-spheres":    {"Marble noise texture on a sphere and the ground", newPerlinSpheres},
	"quads":             {"Five colored quads around the camera", newQuads},
	"simple-light":      {"Noise-textured spheres lit by a sphere and a quad light", newSimpleLight},
	"cornell-box":       {"Cornell box with two rotated boxes", newCornellBox},
	"cornell-smoke":     {"Cornell box whose boxes are replaced by smoke and fog", newCornellSmoke},
	"final-scene":       {"Every feature at once: box field, media, textures, instancing", newFinalScene},
	"mesh":              {"A triangle mesh loaded from PLY or glTF on a checkered floor", newMeshScene},
}

// List returns every registered scene sorted by name
func List() []Info {
	infos := make([]Info, 0, len(registry))
	for name, e := range registry {
		infos = append(infos, Info{Name: name, Description: e.description})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}

// Create builds the named scene
func Create(name string, opts Options) (*Scene, error) {
	e, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	if opts.Logger == nil {
		opts.Logger = core.NopLogger{}
	}

	s, err := e.build(opts)
	if err != nil {
		return nil, fmt.Errorf("build scene %s: %w", name, err)
	}
	s.Name = name
	return s, nil
}

// newRand returns the generator used for random object placement
func newRand(opts Options) *rand.Rand {
	return rand.New(rand.NewPCG(opts.Seed, 0x5eed))
}

func randomVec(r *rand.Rand, lo, hi float64) core.Vec3 {
	return core.NewVec3(
		lo+(hi-lo)*r.Float64(),
		lo+(hi-lo)*r.Float64(),
		lo+(hi-lo)*r.Float64(),
	)
}

// sceneCamera starts from the default camera with the settings every scene here shares
func sceneCamera(lookFrom, lookAt core.Vec3, vfov float64) renderer.CameraConfig {
	config := renderer.DefaultCameraConfig()
	config.AspectRatio = 16.0 / 9.0
	config.ImageWidth = 400
	config.SamplesPerPixel = 100
	config.MaxDepth = 50
	config.LookFrom = lookFrom
	config.LookAt = lookAt
	config.VFov = vfov
	config.FocusDist = 10
	return config
}
