package core

import (
	"math"
	"testing"
)

// checkStratification verifies that every coarse cell and every fine
// row/column of an N×N multi-jittered pattern holds exactly one sample
func checkStratification(t *testing.T, mj *MultiJitter) {
	t.Helper()
	n := mj.N()
	fine := n * n

	coarse := make(map[[2]int]int)
	columns := make([]int, fine)
	rows := make([]int, fine)

	for _, s := range mj.Samples() {
		if s.X < 0 || s.X >= 1 || s.Y < 0 || s.Y >= 1 {
			t.Fatalf("Sample %v outside unit square", s)
		}
		coarse[[2]int{int(s.X * float64(n)), int(s.Y * float64(n))}]++
		columns[int(s.X*float64(fine))]++
		rows[int(s.Y*float64(fine))]++
	}

	if len(coarse) != fine {
		t.Errorf("Expected %d occupied coarse cells, got %d", fine, len(coarse))
	}
	for i := 0; i < fine; i++ {
		if columns[i] != 1 {
			t.Errorf("Expected one sample in fine column %d, got %d", i, columns[i])
		}
		if rows[i] != 1 {
			t.Errorf("Expected one sample in fine row %d, got %d", i, rows[i])
		}
	}
}

func TestMultiJitter_CanonicalNRooks(t *testing.T) {
	for _, n := range []int{1, 2, 4, 7} {
		mj := NewMultiJitter(n, NewSeededSampler(int64(n)))
		if len(mj.Samples()) != n*n {
			t.Fatalf("Expected %d samples, got %d", n*n, len(mj.Samples()))
		}
		checkStratification(t, mj)
	}
}

func TestMultiJitter_ShufflePreservesStratification(t *testing.T) {
	sampler := NewSeededSampler(42)
	mj := NewMultiJitter(5, sampler)

	before := append([]Vec2(nil), mj.Samples()...)
	mj.Shuffle(sampler)
	checkStratification(t, mj)

	moved := 0
	for i, s := range mj.Samples() {
		if s != before[i] {
			moved++
		}
	}
	if moved == 0 {
		t.Error("Expected shuffle to move at least one sample")
	}
}

func TestSampleOnUnitSphere(t *testing.T) {
	sampler := NewSeededSampler(3)
	var mean Vec3
	const count = 10000

	for i := 0; i < count; i++ {
		d := SampleOnUnitSphere(sampler.Get2D())
		if math.Abs(d.Length()-1.0) > 1e-9 {
			t.Fatalf("Expected unit direction, got length %f", d.Length())
		}
		mean = mean.Add(d)
	}

	mean = mean.Multiply(1.0 / count)
	if mean.Length() > 0.05 {
		t.Errorf("Expected directions centered on origin, mean %v", mean)
	}
}
