package sim

// Rand is the random source injected into the growth and financial models.
// *math/rand.Rand satisfies it; tests substitute a scripted source so draws
// are exact.
type Rand interface {
	Float64() float64
}

// Uniform draws from [lo, hi).
func Uniform(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
