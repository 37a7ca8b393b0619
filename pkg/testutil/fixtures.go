package testutil

import "math/rand/v2"

// SeededRand returns a deterministic PCG source so simulation draws repeat across runs.
func SeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}
