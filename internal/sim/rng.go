package sim

// RNG is a deterministic linear congruential generator. Its state is part of
// the saved game.
type RNG struct {
	state uint64
}

// NewRNG creates a generator. A zero seed is replaced by 1.
func NewRNG(seed int64) RNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return RNG{state: s}
}

// Next advances the generator.
func (r *RNG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a value in [0, n).
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int((r.Next() >> 33) % uint64(n)) //#nosec G115 -- n is always positive
}

// Between returns a value in [lo, hi].
func (r *RNG) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// State returns the raw generator state.
func (r *RNG) State() uint64 { return r.state }

// SetState restores a raw generator state.
func (r *RNG) SetState(s uint64) {
	if s == 0 {
		s = 1
	}
	r.state = s
}
