// Package rng provides a deterministic pseudo-random stream keyed by a
// string seed. Two streams built from the same seed and called in the same
// order produce identical sequences, which lets every generation stage derive
// its own child seed ("{houseSeed}/firstFloor/{attempt}") without perturbing
// any other stage's draws.
package rng

import "hash/fnv"

// Stream is a splitmix64 sequence seeded from a string. It carries no global
// state; copying a Stream forks the sequence at its current position.
type Stream struct {
	state uint64
}

// New builds a stream from an arbitrary seed string.
func New(seed string) *Stream {
	h := fnv.New64a()
	h.Write([]byte(seed))
	s := &Stream{state: h.Sum64()}
	// Fold the hash through the mixer twice so short seeds that differ only
	// in the last byte do not start on nearby states.
	s.next()
	s.next()
	return s
}

func (s *Stream) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Float returns a value in [lo, hi).
func (s *Stream) Float(lo, hi float64) float64 {
	u := s.next() >> 11 // 53 significant bits
	f := float64(u) / (1 << 53)
	return lo + f*(hi-lo)
}

// Int returns an integer in [lo, hi], both ends inclusive.
func (s *Stream) Int(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	span := uint64(hi - lo + 1)
	return lo + int(s.next()%span)
}

// Bool returns true with probability p.
func (s *Stream) Bool(p float64) bool {
	return s.Float(0, 1) < p
}

// Pick returns a uniformly chosen element of items.
func Pick[T any](s *Stream, items []T) T {
	return items[s.Int(0, len(items)-1)]
}

// PickWeighted returns an element of items chosen in proportion to weights.
// Non-positive weights exclude their item. Panics if the slices differ in
// length; falls back to a uniform pick when every weight is excluded.
func PickWeighted[T any](s *Stream, items []T, weights []float64) T {
	if len(items) != len(weights) {
		panic("rng: items and weights length mismatch")
	}
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return Pick(s, items)
	}
	target := s.Float(0, total)
	acc := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		acc += w
		if target < acc {
			return items[i]
		}
	}
	return items[len(items)-1]
}
