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

// KmerIterator produces a lazy, finite, non-restartable sequence of
// CompressedKmer values over a Sequence, each covering k consecutive
// positions. It holds a read-only reference to its Sequence and must not
// outlive it.
//
// The first emission builds a k-mer from scratch by pushing k symbols;
// every later emission derives the next k-mer from the previous one with a
// single Push, rather than rebuilding from the raw sequence. The same rule
// applies regardless of alphabet.
type KmerIterator struct {
	seq  *Sequence
	k    int
	zero func() CompressedKmer

	first, last int // the active range: emitted windows start in [first, last-k]
	cursor      int // next position to push
	prev        CompressedKmer
	started     bool
	done        bool
}

// NewKmerIterator returns an iterator over all of sequence's k-mers. zero
// constructs an all-zero k-mer of the desired concrete width (see
// DefaultKmerFactory).
func NewKmerIterator(sequence *Sequence, k int, zero func() CompressedKmer) (*KmerIterator, error) {
	if k < 1 {
		return nil, ErrInvalidK
	}
	it := &KmerIterator{seq: sequence, k: k, zero: zero}
	if err := it.SetRange(0, sequence.Size()); err != nil {
		return nil, err
	}
	return it, nil
}

// SetRange restricts production so every emitted k-mer has its leftmost
// symbol at some position p with first <= p and p+k <= last. It fails if
// last <= first or last > the sequence's size. Calling SetRange resets the
// iterator to the start of the new range.
func (it *KmerIterator) SetRange(first, last int) error {
	if last <= first || last > it.seq.Size() {
		return ErrInvalidRange
	}
	it.first, it.last = first, last
	it.cursor = first
	it.started = false
	it.done = false
	return nil
}

// Next returns the next k-mer in strictly left-to-right order, or
// (nil, false, nil) once the range is exhausted. A non-nil error only
// occurs if the underlying sequence somehow carries an invalid code, which
// cannot happen for a Sequence built via FromBytes.
func (it *KmerIterator) Next() (CompressedKmer, bool, error) {
	if it.done {
		return nil, false, nil
	}

	if !it.started {
		if it.cursor+it.k > it.last {
			it.done = true
			return nil, false, nil
		}
		kmer := it.zero()
		for i := 0; i < it.k; i++ {
			kmer = kmer.Push(it.seq.GetCode(it.cursor + i))
		}
		it.cursor += it.k
		it.prev = kmer
		it.started = true
		return kmer, true, nil
	}

	if it.cursor >= it.last {
		it.done = true
		return nil, false, nil
	}

	kmer := it.prev.Push(it.seq.GetCode(it.cursor))
	it.cursor++
	it.prev = kmer
	return kmer, true, nil
}

// CurrentIndex returns the 0-based start position of the most recently
// emitted k-mer's window.
func (it *KmerIterator) CurrentIndex() int {
	if !it.started {
		return -1
	}
	return it.cursor - it.k
}
