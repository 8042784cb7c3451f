package spin

// Spins are the permitted edge weights, in order.
var Spins = [...]float64{0.5, 1, 1.5, 2, 2.5}

// Rand is the subset of *math/rand.Rand the network needs.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// SpinSource draws edge weights uniformly from Spins.
type SpinSource struct {
	r Rand
}

func NewSpinSource(r Rand) *SpinSource {
	return &SpinSource{r: r}
}

func (s *SpinSource) Sample() float64 {
	return sampleSpin(s.r)
}

func sampleSpin(r Rand) float64 {
	return Spins[r.Intn(len(Spins))]
}

// uniform returns a value in [lo, hi).
func uniform(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
