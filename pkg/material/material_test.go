package material

import (
	"math"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// mockTracer returns a fixed radiance for every traced ray and records them
type mockTracer struct {
	radiance core.Vec3
	rays     []core.Ray
	depths   []int
}

func (m *mockTracer) TraceRay(ray core.Ray, depth int) core.Vec3 {
	m.rays = append(m.rays, ray)
	m.depths = append(m.depths, depth)
	return m.radiance
}

func newHit(point, outwardNormal core.Vec3, ray core.Ray, mat Material) *HitRecord {
	return &HitRecord{
		Point:         point,
		Ray:           ray,
		Distance:      ray.Origin.Subtract(point).Length(),
		OutwardNormal: outwardNormal,
		Material:      mat,
	}
}

func TestHitRecord_Normal(t *testing.T) {
	outward := core.NewVec3(0, 1, 0)

	front := newHit(core.Vec3{}, outward, core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), Material{})
	if !front.FrontFace() || front.Normal() != outward {
		t.Errorf("Expected front face with outward normal, got %v", front.Normal())
	}

	back := newHit(core.Vec3{}, outward, core.NewRay(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0)), Material{})
	if back.FrontFace() || back.Normal() != outward.Negate() {
		t.Errorf("Expected back face with flipped normal, got %v", back.Normal())
	}
}

func TestLambertian_NoEnergyGain(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.7, 0.9)
	lambertian := NewLambertian(albedo)
	sampler := core.NewSeededSampler(42)

	incoming := core.NewVec3(2, 3, 4)
	tracer := &mockTracer{radiance: incoming}
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	hit := newHit(core.Vec3{}, core.NewVec3(0, 1, 0), ray, lambertian)

	for i := 0; i < 200; i++ {
		out := lambertian.Shade(tracer, ray, hit, 5, sampler)
		bound := albedo.MultiplyVec(incoming)
		if out.X > bound.X+1e-12 || out.Y > bound.Y+1e-12 || out.Z > bound.Z+1e-12 {
			t.Fatalf("Radiance %v exceeds albedo-scaled incoming %v", out, bound)
		}
	}
}

func TestLambertian_ScatterDirection(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.8, 0.8)
	lambertian := NewLambertian(albedo)
	sampler := core.NewSeededSampler(1)
	tracer := &mockTracer{}

	normal := core.NewVec3(0, 0, 1)
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := newHit(core.NewVec3(1, 2, 0), normal, ray, lambertian)

	for i := 0; i < 100; i++ {
		lambertian.Shade(tracer, ray, hit, 3, sampler)
	}

	for i, scattered := range tracer.rays {
		if scattered.Direction.Dot(normal) < 0 {
			t.Errorf("Scattered ray %d points below the surface: %v", i, scattered.Direction)
		}
		if math.Abs(scattered.Direction.Length()-1) > 1e-9 {
			t.Errorf("Scattered ray %d is not normalized", i)
		}
		if scattered.Origin != hit.Point {
			t.Errorf("Scattered ray %d does not start at the hit point", i)
		}
		if !scattered.Attenuated || scattered.Attenuation != albedo {
			t.Errorf("Scattered ray %d should carry albedo as attenuation", i)
		}
		if tracer.depths[i] != 2 {
			t.Errorf("Expected depth 2 for secondary ray, got %d", tracer.depths[i])
		}
	}
}

// fixedSampler always returns the same 2D sample
type fixedSampler struct {
	sample core.Vec2
}

func (f fixedSampler) Get1D() float64   { return f.sample.X }
func (f fixedSampler) Get2D() core.Vec2 { return f.sample }

func TestLambertian_DegenerateDirectionSnapsToNormal(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(1, 1, 1))
	tracer := &mockTracer{}

	// Sample X=1 gives z=-1, the exact opposite of a +z normal
	sampler := fixedSampler{sample: core.NewVec2(1, 0)}
	normal := core.NewVec3(0, 0, 1)
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := newHit(core.Vec3{}, normal, ray, lambertian)

	lambertian.Shade(tracer, ray, hit, 2, sampler)

	if len(tracer.rays) != 1 {
		t.Fatalf("Expected one scattered ray, got %d", len(tracer.rays))
	}
	if tracer.rays[0].Direction.Subtract(normal).Length() > 1e-9 {
		t.Errorf("Expected degenerate direction to snap to normal, got %v", tracer.rays[0].Direction)
	}
}

func TestMetal_Reflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.8, 0.7)
	metal := NewMetal(albedo)
	tracer := &mockTracer{radiance: core.NewVec3(1, 1, 1)}

	ray := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))
	hit := newHit(core.Vec3{}, core.NewVec3(0, 1, 0), ray, metal)

	out := metal.Shade(tracer, ray, hit, 4, nil)

	if out != albedo {
		t.Errorf("Expected albedo-scaled radiance %v, got %v", albedo, out)
	}
	if len(tracer.rays) != 1 {
		t.Fatalf("Expected one reflected ray, got %d", len(tracer.rays))
	}
	expected := core.NewVec3(1, 1, 0).Normalize()
	if tracer.rays[0].Direction.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected mirror direction %v, got %v", expected, tracer.rays[0].Direction)
	}
}

func TestMetal_AbsorbsReflectionIntoSurface(t *testing.T) {
	metal := NewMetal(core.NewVec3(1, 1, 1))
	tracer := &mockTracer{radiance: core.NewVec3(1, 1, 1)}

	// Ray grazing along the surface reflects with dot(reflected, normal) == 0
	ray := core.NewRay(core.NewVec3(-1, 0, 0), core.NewVec3(1, 0, 0))
	hit := newHit(core.Vec3{}, core.NewVec3(0, 1, 0), ray, metal)

	out := metal.Shade(tracer, ray, hit, 4, nil)
	if out != (core.Vec3{}) {
		t.Errorf("Expected black for absorbed reflection, got %v", out)
	}
	if len(tracer.rays) != 0 {
		t.Errorf("Expected no secondary rays, got %d", len(tracer.rays))
	}
}

func TestDiffuseLight_IsTerminal(t *testing.T) {
	emission := core.NewVec3(5, 5, 5)
	light := NewDiffuseLight(emission)
	tracer := &mockTracer{radiance: core.NewVec3(1, 1, 1)}

	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	hit := newHit(core.Vec3{}, core.NewVec3(0, 1, 0), ray, light)

	if out := light.Shade(tracer, ray, hit, 10, nil); out != emission {
		t.Errorf("Expected emission %v, got %v", emission, out)
	}
	if len(tracer.rays) != 0 {
		t.Errorf("Diffuse light must not recurse, traced %d rays", len(tracer.rays))
	}
	if light.Color() != emission {
		t.Errorf("Expected color %v, got %v", emission, light.Color())
	}
}
