package geometry

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func randomScene(random *rand.Rand, count int) []Hittable {
	objects := make([]Hittable, 0, count)
	for i := 0; i < count; i++ {
		center := core.NewVec3(random.Float64()*20-10, random.Float64()*20-10, random.Float64()*20-10)
		if i%3 == 0 {
			u := core.NewVec3(random.Float64()*2, 0, random.Float64())
			v := core.NewVec3(0, random.Float64()*2, random.Float64())
			objects = append(objects, NewQuad(center, u, v, nil))
		} else {
			objects = append(objects, NewSphere(center, 0.1+random.Float64(), nil))
		}
	}
	return objects
}

func TestBVH_MatchesLinearScan(t *testing.T) {
	random := rand.New(rand.NewPCG(7, 11))
	sampler := testSampler()

	for _, count := range []int{1, 2, 3, 10, 200} {
		objects := randomScene(random, count)
		bvh := NewBVH(objects)
		list := NewHittableList(objects...)

		for i := 0; i < 500; i++ {
			origin := core.NewVec3(random.Float64()*30-15, random.Float64()*30-15, random.Float64()*30-15)
			direction := core.SampleOnUnitSphere(core.NewVec2(random.Float64(), random.Float64()))
			ray := core.NewRay(origin, direction)

			bvhHit, bvhOK := bvh.Hit(ray, forwardInterval, sampler)
			listHit, listOK := list.Hit(ray, forwardInterval, sampler)

			if bvhOK != listOK {
				t.Fatalf("count=%d ray=%v: BVH hit=%t, linear scan hit=%t", count, ray, bvhOK, listOK)
			}
			if bvhOK && math.Abs(bvhHit.T-listHit.T) > 1e-9 {
				t.Fatalf("count=%d ray=%v: BVH t=%f, linear scan t=%f", count, ray, bvhHit.T, listHit.T)
			}
		}
	}
}

func TestBVH_Empty(t *testing.T) {
	bvh := NewBVH(nil)
	if _, ok := bvh.Hit(core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0)), forwardInterval, testSampler()); ok {
		t.Error("Expected empty BVH to never hit")
	}
	if !bvh.BoundingBox().IsEmpty() {
		t.Error("Expected empty BVH to have an empty bounding box")
	}
}

func TestBVH_DoesNotReorderInput(t *testing.T) {
	objects := []Hittable{
		NewSphere(core.NewVec3(5, 0, 0), 1, nil),
		NewSphere(core.NewVec3(-5, 0, 0), 1, nil),
		NewSphere(core.NewVec3(0, 0, 0), 1, nil),
	}
	first := objects[0]

	NewBVH(objects)

	if objects[0] != first {
		t.Error("NewBVH reordered the caller's slice")
	}
}

func TestBVH_Stats(t *testing.T) {
	tests := []struct {
		count         int
		expectedNodes int
		expectedLeafs int
		expectedDepth int
	}{
		{1, 1, 1, 0},
		{2, 1, 1, 0},
		{3, 3, 2, 1},
		{4, 3, 2, 1},
		{8, 7, 4, 2},
	}

	for _, tt := range tests {
		objects := make([]Hittable, tt.count)
		for i := range objects {
			objects[i] = NewSphere(core.NewVec3(float64(i)*3, 0, 0), 1, nil)
		}

		stats := NewBVH(objects).Stats()
		if stats.TotalNodes != tt.expectedNodes || stats.LeafNodes != tt.expectedLeafs || stats.MaxDepth != tt.expectedDepth {
			t.Errorf("count=%d: got %+v", tt.count, stats)
		}
		if stats.TotalShapes != tt.count {
			t.Errorf("count=%d: expected %d shapes, got %d", tt.count, tt.count, stats.TotalShapes)
		}
	}
}

func TestBVH_ClosestHitWins(t *testing.T) {
	near := NewSphere(core.NewVec3(0, 0, -3), 1, nil)
	far := NewSphere(core.NewVec3(0, 0, -10), 1, nil)
	bvh := NewBVH([]Hittable{far, near, NewSphere(core.NewVec3(10, 0, 0), 1, nil)})

	hit, ok := bvh.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), forwardInterval, testSampler())
	if !ok {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.T-2) > 1e-9 {
		t.Errorf("Expected nearest sphere at t=2, got %f", hit.T)
	}
}

func TestBVH_AxisParallelRaysOnQuadEdge(t *testing.T) {
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), nil)
	objects := []Hittable{quad, NewSphere(core.NewVec3(5, 5, 5), 1, nil)}
	bvh := NewBVH(objects)
	list := NewHittableList(objects...)
	negZero := math.Copysign(0, -1)

	tests := []struct {
		name string
		ray  core.Ray
	}{
		{"top edge, +0 y", core.NewRay(core.NewVec3(0.5, 1, -1), core.NewVec3(0, 0, 1))},
		{"top edge, -0 y", core.NewRay(core.NewVec3(0.5, 1, -1), core.NewVec3(0, negZero, 1))},
		{"left edge, -0 x", core.NewRay(core.NewVec3(0, 0.5, -1), core.NewVec3(negZero, 0, 1))},
		{"bottom edge, -0 both", core.NewRay(core.NewVec3(0.5, 0, -1), core.NewVec3(negZero, negZero, 1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, listOK := list.Hit(tt.ray, forwardInterval, testSampler())
			hit, bvhOK := bvh.Hit(tt.ray, forwardInterval, testSampler())
			if !listOK {
				t.Fatal("Expected linear scan to hit the quad edge")
			}
			if !bvhOK {
				t.Fatal("BVH missed a quad the linear scan hits")
			}
			if math.Abs(hit.T-1) > 1e-9 {
				t.Errorf("Expected t=1, got %f", hit.T)
			}
		})
	}
}
