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

import humanize "github.com/dustin/go-humanize"

// WeightedPair is one entry of a Multiset: an item and its accumulated
// weight (its count, for an unweighted accumulation).
type WeightedPair[K comparable] struct {
	Item   K
	Weight float64
}

// Multiset accumulates weighted occurrences of comparable keys, the way a
// weighted minhash consumes a sequence's k-mers: repeated insertions of
// equal keys add weight rather than creating new entries. It is generic
// over the key type so it serves hashed k-mer values and plain integers
// alike.
type Multiset[K comparable] struct {
	weights map[K]float64
	order   []K
}

// NewMultiset returns an empty multiset, sized for sizeHint entries to
// avoid the map's incremental-growth rehashing when the final cardinality
// is known in advance (typically sequence.Size()-k+1, an upper bound on
// the number of distinct k-mers).
func NewMultiset[K comparable](sizeHint int) *Multiset[K] {
	if sizeHint < 0 {
		sizeHint = 0
	}
	log.Debugf("allocating multiset for up to %s distinct entries", humanize.Comma(int64(sizeHint)))
	return &Multiset[K]{weights: make(map[K]float64, sizeHint)}
}

// Add increments item's accumulated weight by delta, recording item's
// first-occurrence position in Pairs' iteration order if it is new.
func (m *Multiset[K]) Add(item K, delta float64) {
	if _, ok := m.weights[item]; !ok {
		m.order = append(m.order, item)
	}
	m.weights[item] += delta
}

// AddOne is shorthand for Add(item, 1), the common unweighted-count case.
func (m *Multiset[K]) AddOne(item K) { m.Add(item, 1) }

// Len returns the number of distinct items accumulated.
func (m *Multiset[K]) Len() int { return len(m.order) }

// Weight returns item's accumulated weight, or 0 if never added.
func (m *Multiset[K]) Weight(item K) float64 { return m.weights[item] }

// Pairs returns every (item, weight) pair in first-occurrence order.
func (m *Multiset[K]) Pairs() []WeightedPair[K] {
	out := make([]WeightedPair[K], len(m.order))
	for i, item := range m.order {
		out[i] = WeightedPair[K]{Item: item, Weight: m.weights[item]}
	}
	return out
}

// TotalWeight returns the sum of every item's accumulated weight.
func (m *Multiset[K]) TotalWeight() float64 {
	var total float64
	for _, w := range m.weights {
		total += w
	}
	return total
}
