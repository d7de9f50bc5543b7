package grid

import "math/rand"

// Source decides at grid build time whether a seat is occupied. Grids visit
// seats in layout order, so a source backed by a seeded generator yields
// the same occupancy for the same seed.
type Source interface {
	Occupied(id SeatID) bool
}

type seededSource struct {
	rng   *rand.Rand
	ratio float64
}

// Seeded returns a pseudo-random occupancy source. ratio is the fraction of
// seats marked occupied, clamped to [0, 1]. The same seed and ratio always
// produce the same grid for a given layout.
func Seeded(seed int64, ratio float64) Source {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return &seededSource{rng: rand.New(rand.NewSource(seed)), ratio: ratio}
}

func (s *seededSource) Occupied(SeatID) bool {
	return s.rng.Float64() < s.ratio
}

type fixedSource map[SeatID]struct{}

// Fixed returns a source that marks exactly the listed seats occupied.
// With no arguments every seat starts available, which is what tests want.
func Fixed(occupied ...SeatID) Source {
	m := make(fixedSource, len(occupied))
	for _, id := range occupied {
		m[id] = struct{}{}
	}
	return m
}

func (f fixedSource) Occupied(id SeatID) bool {
	_, ok := f[id]
	return ok
}
