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
	"context"
	"math"
	"math/rand"
	"testing"
)

// seqAA2 is a 46-residue prefix of seqAA1, repeated twice, so roughly half
// the two sequences' k-mer mass is shared.
var (
	seqAA1 = "MTEQIELIKLYSTRILALAAQMPHVGSLDNPDASAMKRSPLCGSKVTVDVIMQNGKITFDGFEVLAPASEYKNRHASILLSLDATAEACASIAAQNSA"
	seqAA2 = "MTEQIELIKLYSTRILALAAQMPHVGSLDNPDASAMKRSPLCGSKV" + "MTEQIELIKLYSTRILALAAQMPHVGSLDNPDASAMKRSPLCGSKV"
)

func matchRate(a, b []uint64) float64 {
	n := 0
	for i := range a {
		if a[i] == b[i] {
			n++
		}
	}
	return float64(n) / float64(len(a))
}

func TestProbMinHashInvalidSize(t *testing.T) {
	if _, err := NewProbMinHash3a(0, 0); err == nil {
		t.Error("m=0 must be rejected")
	}
}

// TestProbMinHashDeterminism checks identical multisets yield bitwise
// identical signatures, independent of pair order.
func TestProbMinHashDeterminism(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	pairs := make([]WeightedPair[uint64], 300)
	for i := range pairs {
		pairs[i] = WeightedPair[uint64]{Item: rng.Uint64(), Weight: float64(rng.Intn(5) + 1)}
	}

	a, _ := NewProbMinHash3a(128, 0)
	if err := a.Sketch(pairs); err != nil {
		t.Fatal(err)
	}

	shuffled := make([]WeightedPair[uint64], len(pairs))
	copy(shuffled, pairs)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	b, _ := NewProbMinHash3a(128, 0)
	if err := b.Sketch(shuffled); err != nil {
		t.Fatal(err)
	}

	siga, sigb := a.GetSignature(), b.GetSignature()
	for j := range siga {
		if siga[j] != sigb[j] {
			t.Fatalf("slot %d differs across pair orderings", j)
		}
	}

	jac, err := EstimateJaccard(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if jac != 1 {
		t.Errorf("identical multisets: jaccard estimate %v", jac)
	}
}

// TestProbMinHashSlotsFilled checks every slot carries a real item once the
// input is non-trivial, not the init value.
func TestProbMinHashSlotsFilled(t *testing.T) {
	pairs := []WeightedPair[uint64]{{Item: 11, Weight: 1}, {Item: 22, Weight: 3}}
	h, _ := NewProbMinHash3a(64, math.MaxUint64)
	if err := h.Sketch(pairs); err != nil {
		t.Fatal(err)
	}
	for j, v := range h.GetSignature() {
		if v != 11 && v != 22 {
			t.Fatalf("slot %d holds %d, not an input item", j, v)
		}
	}
}

// TestProbMinHashDisjointSets checks two sketches over disjoint multisets
// agree (almost) nowhere.
func TestProbMinHashDisjointSets(t *testing.T) {
	a, _ := NewProbMinHash3a(256, 0)
	b, _ := NewProbMinHash3a(256, 0)
	var pa, pb []WeightedPair[uint64]
	for i := uint64(0); i < 200; i++ {
		pa = append(pa, WeightedPair[uint64]{Item: InvertibleHash64(i), Weight: 1})
		pb = append(pb, WeightedPair[uint64]{Item: InvertibleHash64(i + 1000), Weight: 1})
	}
	a.Sketch(pa)
	b.Sketch(pb)
	jac, _ := EstimateJaccard(a, b)
	if jac > 0.05 {
		t.Errorf("disjoint multisets: jaccard estimate %v", jac)
	}
}

// TestSketchProteinsProbMinHash: amino acids, k=5, m=400, keys masked to
// the low k*5 bits; the two sequences share about half their weighted
// k-mer mass, so the positional match rate must land within 0.1 of 0.5.
func TestSketchProteinsProbMinHash(t *testing.T) {
	params, err := NewSketchParams(5, 400, AlgoProbMinHash3a)
	if err != nil {
		t.Fatal(err)
	}
	sketcher, err := NewProbMinHashSketcher(AminoAcid, params)
	if err != nil {
		t.Fatal(err)
	}

	s1 := mustSequence(t, AminoAcid, seqAA1)
	s2 := mustSequence(t, AminoAcid, seqAA2)

	sigs, err := sketcher.Sketch(context.Background(), []*Sequence{s1, s2}, MaskHash)
	if err != nil {
		t.Fatal(err)
	}
	if len(sigs) != 2 || len(sigs[0]) != 400 {
		t.Fatalf("unexpected signature shape")
	}

	rate := matchRate(sigs[0], sigs[1])
	if math.Abs(rate-0.5) > 0.1 {
		t.Errorf("match rate %v not within 0.1 of 0.5", rate)
	}

	// resketching bitwise reproduces the signatures
	again, err := sketcher.Sketch(context.Background(), []*Sequence{s1, s2}, MaskHash)
	if err != nil {
		t.Fatal(err)
	}
	for i := range sigs {
		if matchRate(sigs[i], again[i]) != 1 {
			t.Fatalf("signature %d not reproducible", i)
		}
	}
}
