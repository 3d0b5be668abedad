// Copyright © 2018-2020 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package probsketch

import (
	"math"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// SuperMinHashHasher turns a k-mer into the 64-bit stream item a
// SuperMinHash sketch consumes. It may fail; a failure is fatal to the
// sketch's whole batch. DefaultSuperHasher is the xxhash-backed default.
type SuperMinHashHasher func(CompressedKmer) (uint64, error)

// DefaultSuperHasher hashes a k-mer's packed value with xxhash via
// DefaultHasher. It never fails.
func DefaultSuperHasher(kmer CompressedKmer) (uint64, error) {
	return DefaultHasher(kmer), nil
}

// SuperMinHash computes a fixed-size floating-point signature approximating
// the Jaccard similarity of the underlying set of items fed to it (Ertl's
// SuperMinHash). F is the signature element type, float32 or float64.
// Unlike ProbMinHash3a, it treats repeat occurrences of the same item as
// idempotent: SuperMinHash estimates set similarity, not weighted multiset
// similarity, so callers wanting weighted Jaccard use ProbMinHash3a
// instead.
type SuperMinHash[F constraints.Float] struct {
	m      int
	h      []F
	hasher SuperMinHashHasher
}

// NewSuperMinHash returns an empty sketch with m slots, every slot
// initialised to +Inf (no item has been placed there yet), hashing items
// through hasher (DefaultSuperHasher when nil).
func NewSuperMinHash[F constraints.Float](m int, hasher SuperMinHashHasher) (*SuperMinHash[F], error) {
	if m < 1 {
		return nil, ErrInvalidSketchSize
	}
	if hasher == nil {
		hasher = DefaultSuperHasher
	}
	s := &SuperMinHash[F]{m: m, h: make([]F, m), hasher: hasher}
	for i := range s.h {
		s.h[i] = F(math.Inf(1))
	}
	return s, nil
}

// Sketch places one k-mer into the sketch, hashing it through the sketch's
// hasher first. A hasher failure is returned wrapped in ErrHashFailed and
// leaves the sketch unchanged.
func (s *SuperMinHash[F]) Sketch(kmer CompressedKmer) error {
	itemHash, err := s.hasher(kmer)
	if err != nil {
		return errors.Wrapf(ErrHashFailed, "superminhash: %v", err)
	}
	s.Add(itemHash)
	return nil
}

// Add places a single pre-hashed item into the sketch. Each item seeds its
// own deterministic permutation of the m slots and a deterministic jitter
// per rank: the same itemHash always produces the same walk, so the
// sketch is invariant to repeated insertions of the same item and to
// insertion order of distinct items, as required for an unbiased Jaccard
// estimator. Once >= m distinct items have been added, every slot holds a
// finite value.
func (s *SuperMinHash[F]) Add(itemHash uint64) {
	perm := make([]int, s.m)
	for i := range perm {
		perm[i] = i
	}

	maxH := s.currentMax()

	rng := newSplitmixSource(itemHash)
	// Fisher-Yates shuffle, driven by the same per-item deterministic
	// stream as the jitter draws below.
	for i := s.m - 1; i > 0; i-- {
		j := int(rng.next() % uint64(i+1))
		perm[i], perm[j] = perm[j], perm[i]
	}

	for rank := 0; rank < s.m; rank++ {
		// cand = rank + jitter >= rank always, so once rank can no longer
		// beat the sketch's current worst (max) slot value, no later rank
		// can either: every remaining h[slot] is already <= maxH and every
		// remaining cand >= rank >= maxH.
		if float64(rank) >= maxH {
			break
		}
		jitter := rng.float64()
		cand := F(float64(rank) + jitter)
		slot := perm[rank]
		if cand < s.h[slot] {
			s.h[slot] = cand
		}
	}
}

func (s *SuperMinHash[F]) currentMax() float64 {
	max := math.Inf(-1)
	for _, v := range s.h {
		if float64(v) > max {
			max = float64(v)
		}
	}
	return max
}

// GetHSketch returns the sketch's m slot values, the fixed-size signature
// used to estimate Jaccard similarity between two sketches of equal size.
func (s *SuperMinHash[F]) GetHSketch() []F {
	out := make([]F, s.m)
	copy(out, s.h)
	return out
}

// Size returns m, the number of slots.
func (s *SuperMinHash[F]) Size() int { return s.m }

// EstimateJaccardSuperMinHash returns the fraction of slots at which a and
// b carry equal values, an unbiased estimator of the (unweighted) Jaccard
// similarity of the two sets they were built from. a and b must share the
// same m.
func EstimateJaccardSuperMinHash[F constraints.Float](a, b *SuperMinHash[F]) (float64, error) {
	if a.m != b.m {
		return 0, ErrInvalidSketchSize
	}
	var agree int
	for i := 0; i < a.m; i++ {
		if a.h[i] == b.h[i] {
			agree++
		}
	}
	return float64(agree) / float64(a.m), nil
}

// splitmixSource is a minimal deterministic PRNG stream built on
// InvertibleHash64, used to drive both the Fisher-Yates shuffle and the
// jitter draws for a single item with no shared mutable state (safe for
// concurrent Add calls on independent items across goroutines, as long as
// each item touches only its own SuperMinHash instance until merged).
type splitmixSource struct{ state uint64 }

func newSplitmixSource(seed uint64) *splitmixSource {
	return &splitmixSource{state: seed}
}

func (r *splitmixSource) next() uint64 {
	r.state += 0x9e3779b97f4a7c15
	return InvertibleHash64(r.state)
}

func (r *splitmixSource) float64() float64 {
	top53 := r.next() >> 11
	return float64(top53) / (1 << 53)
}
