package geometry

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

var logger = log.New("bvh")

var (
	// ErrEmptyBVH is returned when a BVH is built from no objects
	ErrEmptyBVH = errors.New("cannot build a BVH from zero objects")

	// ErrUnboundedObject is returned when an object without a bounding box
	// (such as a Plane) is passed to the BVH builder
	ErrUnboundedObject = errors.New("object has no bounding box")

	// ErrInvalidBounds is returned for a bounding box with NaN or inverted extents
	ErrInvalidBounds = errors.New("object has an invalid bounding box")
)

// DefaultMaxAtLeaf is the leaf size used when callers have no preference
const DefaultMaxAtLeaf = 8

// BVH is a node of a Bounding Volume Hierarchy. Each child is either another
// node or a leaf list. The tree is immutable once built and safe for
// concurrent hit tests.
type BVH struct {
	Box   core.AABB // Union of both children's boxes
	Left  Hittable  // *BVH or *HittableList
	Right Hittable  // *BVH, *HittableList or nil for a single-object tree
}

// bvhItem caches an object's box and centroid for the duration of a build
type bvhItem struct {
	object   Hittable
	box      core.AABB
	centroid core.Vec3
}

// BuildBVH builds a hierarchy over objects. Nodes are split on the axis with
// the greatest centroid spread at the mean centroid; partitions holding more
// than maxAtLeaf objects are split further, smaller ones become leaves.
func BuildBVH(objects []Hittable, maxAtLeaf int) (*BVH, error) {
	if len(objects) == 0 {
		return nil, ErrEmptyBVH
	}
	if maxAtLeaf < 1 {
		maxAtLeaf = 1
	}

	items := make([]bvhItem, len(objects))
	for i, obj := range objects {
		box, ok := obj.BoundingBox()
		if !ok {
			return nil, errors.Wrapf(ErrUnboundedObject, "object %d (%T)", i, obj)
		}
		if !box.IsValid() {
			return nil, errors.Wrapf(ErrInvalidBounds, "object %d (%T): %v", i, obj, box)
		}
		items[i] = bvhItem{object: obj, box: box, centroid: box.Centroid()}
	}

	root := buildNode(items, maxAtLeaf)

	stats := root.Stats()
	logger.Debugf("built BVH over %d objects: %d nodes, %d leaves, depth %d, largest leaf %d",
		stats.Objects, stats.Nodes, stats.Leaves, stats.MaxDepth, stats.MaxLeafSize)

	return root, nil
}

// MustBuildBVH is like BuildBVH but panics on error
func MustBuildBVH(objects []Hittable, maxAtLeaf int) *BVH {
	bvh, err := BuildBVH(objects, maxAtLeaf)
	if err != nil {
		panic(err)
	}
	return bvh
}

func buildNode(items []bvhItem, maxAtLeaf int) *BVH {
	box := items[0].box
	for _, item := range items[1:] {
		box = core.SurroundingBox(box, item.box)
	}

	if len(items) == 1 {
		return &BVH{Box: box, Left: newLeaf(items)}
	}

	axis := splitAxis(items)
	left, right := partitionAtMean(items, axis)

	// All centroids fell on one side of the mean: split the sorted run in half
	if len(left) == 0 || len(right) == 0 {
		left, right = partitionAtMedian(items, axis)
	}

	return &BVH{
		Box:   box,
		Left:  buildChild(left, maxAtLeaf),
		Right: buildChild(right, maxAtLeaf),
	}
}

func buildChild(items []bvhItem, maxAtLeaf int) Hittable {
	if len(items) > maxAtLeaf {
		return buildNode(items, maxAtLeaf)
	}
	return newLeaf(items)
}

func newLeaf(items []bvhItem) *HittableList {
	return NewHittableList(lo.Map(items, func(item bvhItem, _ int) Hittable {
		return item.object
	})...)
}

// splitAxis returns the axis along which the centroids are most spread out
func splitAxis(items []bvhItem) int {
	minC, maxC := items[0].centroid, items[0].centroid
	for _, item := range items[1:] {
		minC = minC.Min(item.centroid)
		maxC = maxC.Max(item.centroid)
	}

	spread := maxC.Subtract(minC)
	axis := 0
	for a := 1; a < 3; a++ {
		if spread.Axis(a) > spread.Axis(axis) {
			axis = a
		}
	}
	return axis
}

// partitionAtMean splits items by comparing their centroids to the mean
// centroid on axis
func partitionAtMean(items []bvhItem, axis int) (left, right []bvhItem) {
	mean := lo.SumBy(items, func(item bvhItem) float64 {
		return item.centroid.Axis(axis)
	}) / float64(len(items))

	for _, item := range items {
		if item.centroid.Axis(axis) < mean {
			left = append(left, item)
		} else {
			right = append(right, item)
		}
	}
	return left, right
}

// partitionAtMedian sorts items along axis and cuts them in half. Both halves
// are non-empty for two or more items.
func partitionAtMedian(items []bvhItem, axis int) (left, right []bvhItem) {
	sorted := make([]bvhItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].centroid.Axis(axis) < sorted[j].centroid.Axis(axis)
	})

	mid := len(sorted) / 2
	return sorted[:mid], sorted[mid:]
}

// Hit searches the left subtree first, then the right subtree up to the
// closest left hit. A right hit is therefore always the closer one.
func (b *BVH) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	if !b.Box.Hit(ray, tMin, tMax) {
		return false
	}

	hitLeft := hitObject(b.Left, ray, tMin, tMax, rec)
	if b.Right == nil {
		return hitLeft
	}

	closest := tMax
	if hitLeft {
		closest = rec.Distance
	}
	if hitObject(b.Right, ray, tMin, closest, rec) {
		return true
	}
	return hitLeft
}

// BoundingBox returns the box of the whole tree
func (b *BVH) BoundingBox() (core.AABB, bool) {
	return b.Box, true
}

// BVHStats describes the shape of a built hierarchy
type BVHStats struct {
	Nodes       int // Interior nodes
	Leaves      int
	Objects     int // Objects stored across all leaves
	MaxDepth    int
	MaxLeafSize int
}

// Stats walks the tree and collects its statistics
func (b *BVH) Stats() BVHStats {
	var stats BVHStats
	b.collectStats(1, &stats)
	return stats
}

func (b *BVH) collectStats(depth int, stats *BVHStats) {
	stats.Nodes++
	for _, child := range []Hittable{b.Left, b.Right} {
		switch c := child.(type) {
		case *BVH:
			c.collectStats(depth+1, stats)
		case *HittableList:
			stats.Leaves++
			stats.Objects += c.Len()
			stats.MaxLeafSize = max(stats.MaxLeafSize, c.Len())
			stats.MaxDepth = max(stats.MaxDepth, depth+1)
		}
	}
}
