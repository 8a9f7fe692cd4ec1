package geometry

import (
	"slices"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// bvhNode is one entry in the BVH arena.
// Interior nodes index their children in BVH.nodes; leaf nodes index BVH.primitives.
// A leaf built from a single primitive stores it as both children.
type bvhNode struct {
	box   core.AABB
	left  int
	right int
	leaf  bool
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection.
// Nodes live in a flat slice and refer to each other by index.
type BVH struct {
	nodes      []bvhNode
	primitives []Hittable
	stats      BVHStats
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes  int
	LeafNodes   int
	MaxDepth    int
	AvgDepth    float64
	TotalShapes int
}

// NewBVH constructs a BVH from a slice of shapes.
// The input slice is not modified.
func NewBVH(objects []Hittable) *BVH {
	bvh := &BVH{
		nodes:      make([]bvhNode, 0, 2*len(objects)),
		primitives: make([]Hittable, 0, len(objects)),
	}
	if len(objects) == 0 {
		return bvh
	}

	// Work on a copy so sorting does not reorder the caller's slice
	working := slices.Clone(objects)
	bvh.build(working, 0)

	if bvh.stats.LeafNodes > 0 {
		bvh.stats.AvgDepth /= float64(bvh.stats.LeafNodes)
	}
	bvh.stats.TotalShapes = len(bvh.primitives)

	return bvh
}

// NewBVHFromList builds a BVH over the objects of a list
func NewBVHFromList(list *HittableList) *BVH {
	return NewBVH(list.Objects)
}

// build appends the subtree for objects to the arena and returns the index of its root.
// Objects are sorted by the minimum of their boxes on the longest axis and split at the median.
func (bvh *BVH) build(objects []Hittable, depth int) int {
	box := core.EmptyAABB()
	for _, object := range objects {
		box = box.Combine(object.BoundingBox())
	}

	index := len(bvh.nodes)
	bvh.nodes = append(bvh.nodes, bvhNode{box: box})
	bvh.stats.TotalNodes++
	bvh.stats.MaxDepth = max(bvh.stats.MaxDepth, depth)

	switch len(objects) {
	case 1:
		primitive := bvh.addPrimitive(objects[0])
		bvh.nodes[index] = bvhNode{box: box, left: primitive, right: primitive, leaf: true}
		bvh.recordLeaf(depth)
	case 2:
		left := bvh.addPrimitive(objects[0])
		right := bvh.addPrimitive(objects[1])
		bvh.nodes[index] = bvhNode{box: box, left: left, right: right, leaf: true}
		bvh.recordLeaf(depth)
	default:
		axis := box.LongestAxis()
		slices.SortStableFunc(objects, func(a, b Hittable) int {
			return compareFloat(a.BoundingBox().Axis(axis).Min, b.BoundingBox().Axis(axis).Min)
		})

		mid := len(objects) / 2
		left := bvh.build(objects[:mid], depth+1)
		right := bvh.build(objects[mid:], depth+1)
		bvh.nodes[index].left = left
		bvh.nodes[index].right = right
	}

	return index
}

func (bvh *BVH) addPrimitive(object Hittable) int {
	bvh.primitives = append(bvh.primitives, object)
	return len(bvh.primitives) - 1
}

func (bvh *BVH) recordLeaf(depth int) {
	bvh.stats.LeafNodes++
	bvh.stats.AvgDepth += float64(depth)
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Hit tests if a ray intersects any shape in the BVH and returns the closest hit.
// Traversal uses an explicit stack and narrows the interval as closer hits are found.
func (bvh *BVH) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	if len(bvh.nodes) == 0 {
		return nil, false
	}

	var closest *material.HitRecord
	var stackBuffer [64]int
	stack := append(stackBuffer[:0], 0)

	for len(stack) > 0 {
		node := &bvh.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]

		if !node.box.Hit(ray, rayT) {
			continue
		}

		if !node.leaf {
			stack = append(stack, node.right, node.left)
			continue
		}

		if hit, ok := bvh.primitives[node.left].Hit(ray, rayT, sampler); ok {
			closest = hit
			rayT.Max = hit.T
		}
		if node.right != node.left {
			if hit, ok := bvh.primitives[node.right].Hit(ray, rayT, sampler); ok {
				closest = hit
				rayT.Max = hit.T
			}
		}
	}

	return closest, closest != nil
}

// BoundingBox returns the overall bounding box of the BVH
func (bvh *BVH) BoundingBox() core.AABB {
	if len(bvh.nodes) == 0 {
		return core.EmptyAABB()
	}
	return bvh.nodes[0].box
}

// Stats returns statistics about the BVH structure
func (bvh *BVH) Stats() BVHStats {
	return bvh.stats
}
