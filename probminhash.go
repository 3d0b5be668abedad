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

import "math"

const maxSketchSlotValue = math.MaxFloat64

// ProbMinHash3a computes a similarity-preserving signature over a
// weighted multiset. The construction is the "exponential race" underlying
// every weighted-minhash family (Ioffe 2010, Ertl 2020).
// For item i with weight w_i, each of the m independent slots draws an
// exponential random variable with rate w_i; the item that draws the
// smallest value for slot j wins that slot. The uniform behind each draw
// is seeded by (item hash, slot) alone, so an item shared by two
// multisets uses the same uniform in both races and only the rates
// differ. Under that coupling two signatures agree at a slot with
// probability equal to the probability Jaccard similarity J_P of the two
// weight vectors, so the fraction of agreeing slots is an unbiased
// estimator of J_P, and the signature is a pure function of the multiset,
// independent of iteration order. J_P does not change when a multiset's
// weights are all scaled by the same factor, so this is not an estimator
// of the raw-weight Jaccard sum(min)/sum(max): {x:1} and {x:2} agree on
// every slot.
type ProbMinHash3a struct {
	m         int
	hash      []float64 // winning exponential draw per slot
	signature []uint64  // winning item hash per slot
}

// NewProbMinHash3a returns an empty sketch with m slots, every signature
// slot initialised to initObject. m must be >= 1. initObject should be a
// value no legal k-mer hash can equal, or callers accept the convention
// that two never-filled slots compare equal (two empty signatures match
// everywhere).
func NewProbMinHash3a(m int, initObject uint64) (*ProbMinHash3a, error) {
	if m < 1 {
		return nil, ErrInvalidSketchSize
	}
	h := &ProbMinHash3a{
		m:         m,
		hash:      make([]float64, m),
		signature: make([]uint64, m),
	}
	for j := range h.hash {
		h.hash[j] = maxSketchSlotValue
		h.signature[j] = initObject
	}
	return h, nil
}

// Sketch consumes a weighted multiset, updating every slot in place. The
// race is a running minimum keyed only on (item, slot), so splitting the
// pairs across several calls, or reordering them, yields the same final
// signature; a repeated item must however carry its full accumulated
// weight in a single pair (feed a Multiset's Pairs, not raw occurrences).
func (h *ProbMinHash3a) Sketch(pairs []WeightedPair[uint64]) error {
	for _, p := range pairs {
		if p.Weight <= 0 {
			continue
		}
		for j := 0; j < h.m; j++ {
			seed := SeedSlot(p.Item, j)
			u := uniformFromSeed(seed)
			// exponential draw with rate p.Weight: -ln(u)/rate
			t := -math.Log(u) / p.Weight
			if t < h.hash[j] {
				h.hash[j] = t
				h.signature[j] = p.Item
			}
		}
	}
	return nil
}

// GetSignature returns the winning item hash for every slot, the sketch's
// final fixed-size output.
func (h *ProbMinHash3a) GetSignature() []uint64 {
	out := make([]uint64, h.m)
	copy(out, h.signature)
	return out
}

// Size returns m, the number of slots.
func (h *ProbMinHash3a) Size() int { return h.m }

// EstimateJaccard returns the fraction of slots at which a and b agree, an
// unbiased estimator of the probability Jaccard similarity J_P (see
// ProbMinHash3a) between the two multisets they were built from. a and b
// must share the same m.
func EstimateJaccard(a, b *ProbMinHash3a) (float64, error) {
	if a.m != b.m {
		return 0, ErrInvalidSketchSize
	}
	var agree int
	for j := 0; j < a.m; j++ {
		if a.signature[j] == b.signature[j] {
			agree++
		}
	}
	return float64(agree) / float64(a.m), nil
}

// uniformFromSeed derives a uniform float64 in (0,1] from a 64-bit seed,
// using the top 53 bits to fill a float64 mantissa exactly as the
// standard library's own rand.Float64 does internally, so that the same
// seed always produces the same draw without keeping any PRNG state
// across calls.
func uniformFromSeed(seed uint64) float64 {
	mixed := InvertibleHash64(seed)
	// 53 significant bits, then divide by 2^53; add 1 to the numerator so
	// the result is never exactly 0 (math.Log(0) is -Inf, not useful here).
	top53 := mixed >> 11
	return (float64(top53) + 1) / (1 << 53)
}
