package core

import (
	"math"
	"math/rand"
	"testing"
)

func randomAABB(random *rand.Rand) AABB {
	a := NewVec3(random.Float64()*20-10, random.Float64()*20-10, random.Float64()*20-10)
	b := NewVec3(random.Float64()*20-10, random.Float64()*20-10, random.Float64()*20-10)
	return NewAABBFromPoints(a, b)
}

func TestSurroundingBox_ContainsBothAndIsMinimal(t *testing.T) {
	random := rand.New(rand.NewSource(7))

	for i := 0; i < 1000; i++ {
		a := randomAABB(random)
		b := randomAABB(random)
		box := SurroundingBox(a, b)

		if !box.IsValid() {
			t.Fatalf("Surrounding box %v is not valid", box)
		}
		if !box.Contains(a) || !box.Contains(b) {
			t.Fatalf("Surrounding box %v does not contain %v and %v", box, a, b)
		}

		// Minimal: every face of the union touches one of the inputs
		for axis := 0; axis < 3; axis++ {
			minFace := math.Min(a.Min.Axis(axis), b.Min.Axis(axis))
			maxFace := math.Max(a.Max.Axis(axis), b.Max.Axis(axis))
			if box.Min.Axis(axis) != minFace || box.Max.Axis(axis) != maxFace {
				t.Fatalf("Surrounding box %v is not minimal on axis %d", box, axis)
			}
		}
	}
}

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name      string
		ray       Ray
		tMin      float64
		tMax      float64
		shouldHit bool
	}{
		{
			name:      "Ray through center",
			ray:       NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)),
			tMin:      0.001,
			tMax:      100,
			shouldHit: true,
		},
		{
			name:      "Ray misses to the side",
			ray:       NewRay(NewVec3(2, 0, -5), NewVec3(0, 0, 1)),
			tMin:      0.001,
			tMax:      100,
			shouldHit: false,
		},
		{
			name:      "Ray pointing away",
			ray:       NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, -1)),
			tMin:      0.001,
			tMax:      100,
			shouldHit: false,
		},
		{
			name:      "Box beyond tMax",
			ray:       NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)),
			tMin:      0.001,
			tMax:      3,
			shouldHit: false,
		},
		{
			name:      "Origin inside box",
			ray:       NewRay(NewVec3(0, 0, 0), NewVec3(1, 1, 0)),
			tMin:      0.001,
			tMax:      100,
			shouldHit: true,
		},
		{
			name:      "Diagonal ray",
			ray:       NewRay(NewVec3(-5, -5, -5), NewVec3(1, 1, 1)),
			tMin:      0.001,
			tMax:      100,
			shouldHit: true,
		},
		{
			name:      "Parallel ray outside slab",
			ray:       NewRay(NewVec3(0, 3, -5), NewVec3(0, 0, 1)),
			tMin:      0.001,
			tMax:      100,
			shouldHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray, tt.tMin, tt.tMax); got != tt.shouldHit {
				t.Errorf("Expected hit=%v, got %v", tt.shouldHit, got)
			}
		})
	}
}

func TestAABB_HitFlatBox(t *testing.T) {
	// Boxes of axis-aligned triangles have zero thickness on one axis
	box := NewAABB(NewVec3(-1, -1, 0), NewVec3(1, 1, 0))
	ray := NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1))

	if !box.Hit(ray, 0.001, 100) {
		t.Error("Expected ray to pass through flat box")
	}
}

func TestAABB_Centroid(t *testing.T) {
	box := NewAABB(NewVec3(0, 2, -4), NewVec3(2, 4, 0))
	if c := box.Centroid(); c != NewVec3(1, 3, -2) {
		t.Errorf("Expected centroid (1,3,-2), got %v", c)
	}
}
