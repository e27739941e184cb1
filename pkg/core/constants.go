package core

import "math"

const (
	// HitEpsilon is the minimum hit distance; it keeps secondary rays from
	// re-hitting the surface they were spawned on.
	HitEpsilon = 1e-4

	// ParallelEpsilon bounds determinants and denominators treated as parallel
	ParallelEpsilon = 1e-8

	// NearZeroEpsilon is the per-component threshold for degenerate directions
	NearZeroEpsilon = 1e-8
)

// MaxHitDistance is the far end of every primary and secondary ray
var MaxHitDistance = math.Inf(1)
