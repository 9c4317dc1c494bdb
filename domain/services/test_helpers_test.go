package services

// scriptedRand feeds predetermined values to the resolvers. Exhausted
// queues fall back to neutral values (0.5 / 0) so tests only script the
// draws they care about. Shuffle is a no-op, leaving decks in
// deck-building order.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.5
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v >= n {
		v = n - 1
	}
	return v
}

func (r *scriptedRand) Shuffle(n int, swap func(i, j int)) {}
