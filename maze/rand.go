package maze

// Rand is the source of uniform draws used by generation and materialization.
// *math/rand.Rand satisfies it.
type Rand interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// chance reports true with probability p.
func chance(rng Rand, p float64) bool {
	return rng.Float64() < p
}

// weighted returns the index picked from a cumulative walk over weights.
func weighted(rng Rand, weights []float64) int {
	r := rng.Float64()
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r < acc {
			return i
		}
	}
	return len(weights) - 1
}
