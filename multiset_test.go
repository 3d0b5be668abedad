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

import "testing"

func TestMultisetAccumulation(t *testing.T) {
	ms := NewMultiset[uint64](4)
	ms.AddOne(7)
	ms.AddOne(3)
	ms.AddOne(7)
	ms.Add(9, 2.5)

	if ms.Len() != 3 {
		t.Fatalf("len = %d", ms.Len())
	}
	if ms.Weight(7) != 2 || ms.Weight(3) != 1 || ms.Weight(9) != 2.5 {
		t.Errorf("weights: %v %v %v", ms.Weight(7), ms.Weight(3), ms.Weight(9))
	}
	if ms.Weight(42) != 0 {
		t.Error("absent key should weigh 0")
	}
	if ms.TotalWeight() != 5.5 {
		t.Errorf("total = %v", ms.TotalWeight())
	}
}

// TestMultisetPairOrder checks first-occurrence iteration order, the
// property PROB3A's reproducible test output relies on.
func TestMultisetPairOrder(t *testing.T) {
	ms := NewMultiset[uint64](0)
	for _, v := range []uint64{5, 1, 5, 9, 1, 5} {
		ms.AddOne(v)
	}
	pairs := ms.Pairs()
	wantItems := []uint64{5, 1, 9}
	wantWeights := []float64{3, 2, 1}
	if len(pairs) != len(wantItems) {
		t.Fatalf("%d pairs", len(pairs))
	}
	for i, p := range pairs {
		if p.Item != wantItems[i] || p.Weight != wantWeights[i] {
			t.Errorf("pair %d = (%d, %v), want (%d, %v)",
				i, p.Item, p.Weight, wantItems[i], wantWeights[i])
		}
	}
}

func TestMultisetNegativeHint(t *testing.T) {
	ms := NewMultiset[int](-5)
	ms.AddOne(1)
	if ms.Len() != 1 {
		t.Error("multiset with negative hint should still work")
	}
}
