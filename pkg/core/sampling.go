package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own random source
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// SampleOnUnitSphere generates a uniform random direction on the unit sphere
func SampleOnUnitSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X // z ∈ [-1, 1]
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	x := r * math.Cos(phi)
	y := r * math.Sin(phi)
	return NewVec3(x, y, z)
}

// MultiJitter holds an N×N set of multi-jittered sample offsets in [0,1)².
// Samples are stored row-major: sample (i, j) lives at index j*N+i.
type MultiJitter struct {
	n       int
	samples []Vec2
}

// NewMultiJitter allocates an N×N pattern and fills it with the canonical
// arrangement
func NewMultiJitter(n int, sampler Sampler) *MultiJitter {
	if n < 1 {
		n = 1
	}
	mj := &MultiJitter{n: n, samples: make([]Vec2, n*n)}
	mj.Generate(sampler)
	return mj
}

// Generate refills the pattern with the canonical arrangement. Each sample sits
// in its own coarse cell, and on the fine N²×N² grid every column and every row
// holds exactly one sample (the N-rooks property).
func (mj *MultiJitter) Generate(sampler Sampler) {
	n := float64(mj.n)
	for j := 0; j < mj.n; j++ {
		for i := 0; i < mj.n; i++ {
			r := sampler.Get2D()
			mj.samples[j*mj.n+i] = Vec2{
				X: (float64(i) + (float64(j)+r.X)/n) / n,
				Y: (float64(j) + (float64(i)+r.Y)/n) / n,
			}
		}
	}
}

// Shuffle decorrelates the pattern: x offsets are permuted among the cells of
// each column and y offsets among the cells of each row. Both properties of the
// canonical arrangement survive.
func (mj *MultiJitter) Shuffle(sampler Sampler) {
	n := mj.n
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			k := min(j+int(sampler.Get1D()*float64(n-j)), n-1)
			a, b := j*n+i, k*n+i
			mj.samples[a].X, mj.samples[b].X = mj.samples[b].X, mj.samples[a].X
		}
	}
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			k := min(i+int(sampler.Get1D()*float64(n-i)), n-1)
			a, b := j*n+i, j*n+k
			mj.samples[a].Y, mj.samples[b].Y = mj.samples[b].Y, mj.samples[a].Y
		}
	}
}

// N returns the pattern resolution (N² samples)
func (mj *MultiJitter) N() int {
	return mj.n
}

// At returns the sample for cell (i, j)
func (mj *MultiJitter) At(i, j int) Vec2 {
	return mj.samples[j*mj.n+i]
}

// Samples returns all samples in row-major order
func (mj *MultiJitter) Samples() []Vec2 {
	return mj.samples
}
