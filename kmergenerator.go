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

// WeightedKmer pairs a k-mer with its multiplicity: the number of windows
// in the source sequence whose k-mer equals this value.
type WeightedKmer struct {
	Kmer         CompressedKmer
	Multiplicity int
}

// KmerGenerator is a thin, eager facade over KmerIterator, for callers that
// want a materialised list rather than to drive the iterator themselves.
// The iterator stays the single source of truth for the streaming
// production rule; this type just drains it into slices.
type KmerGenerator struct {
	k    int
	zero func() CompressedKmer
}

// NewKmerGenerator returns a generator for k-mers of size k using the
// concrete CompressedKmer variant zero produces (see DefaultKmerFactory).
func NewKmerGenerator(k int, zero func() CompressedKmer) *KmerGenerator {
	return &KmerGenerator{k: k, zero: zero}
}

// GenerateAll returns every k-mer of sequence, in left-to-right order.
func (g *KmerGenerator) GenerateAll(sequence *Sequence) ([]CompressedKmer, error) {
	return g.GenerateInRange(sequence, 0, sequence.Size())
}

// GenerateInRange returns every k-mer of sequence whose window falls inside
// [first, last), in left-to-right order.
func (g *KmerGenerator) GenerateInRange(sequence *Sequence, first, last int) ([]CompressedKmer, error) {
	it, err := NewKmerIterator(sequence, g.k, g.zero)
	if err != nil {
		return nil, err
	}
	if err := it.SetRange(first, last); err != nil {
		return nil, err
	}

	out := make([]CompressedKmer, 0, last-first)
	for {
		kmer, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out = append(out, kmer)
	}
	return out, nil
}

// GenerateWeighted returns (k-mer, multiplicity) pairs for sequence, in
// first-occurrence order: the order in which each distinct k-mer value
// first appears in the sequence. ProbMinHash3a itself is insertion-order
// independent, but deterministic first-occurrence order keeps downstream
// output reproducible. Multiplicities sum to max(0, size-k+1).
func (g *KmerGenerator) GenerateWeighted(sequence *Sequence) ([]WeightedKmer, error) {
	kmers, err := g.GenerateAll(sequence)
	if err != nil {
		return nil, err
	}

	index := make(map[CompressedKmer]int, len(kmers))
	var out []WeightedKmer
	for _, kmer := range kmers {
		if i, ok := index[kmer]; ok {
			out[i].Multiplicity++
			continue
		}
		index[kmer] = len(out)
		out = append(out, WeightedKmer{Kmer: kmer, Multiplicity: 1})
	}
	return out, nil
}
