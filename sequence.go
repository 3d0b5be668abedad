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
	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seq"
)

// Sequence is a validated, immutable byte buffer over a fixed Alphabet. It
// is constructed once from a user buffer and never mutated afterwards;
// KmerIterator holds a read-only reference to it, never ownership.
type Sequence struct {
	alphabet *Alphabet
	raw      []byte
	codes    []uint8
}

// FromBytes validates every byte of buf against alphabet and returns the
// Sequence, or a recoverable error naming the offending position and byte.
func FromBytes(alphabet *Alphabet, buf []byte) (*Sequence, error) {
	codes := make([]uint8, len(buf))
	for i, b := range buf {
		if alphabet == Nucleotide {
			b = FoldDegenerateBase(b)
		}
		code, err := alphabet.Encode(b)
		if err != nil {
			return nil, errors.Wrapf(err, "sequence: invalid %s symbol at position %d", alphabet, i)
		}
		codes[i] = alphabet.PackedCode(code)
	}
	raw := make([]byte, len(buf))
	copy(raw, buf)
	return &Sequence{alphabet: alphabet, raw: raw, codes: codes}, nil
}

// Size returns the sequence length.
func (s *Sequence) Size() int { return len(s.raw) }

// Alphabet returns the alphabet the sequence was validated against.
func (s *Sequence) Alphabet() *Alphabet { return s.alphabet }

// GetCode returns the packed alphabet code at pos, ready to feed
// CompressedKmer.Push. pos >= Size() is a programming fault.
func (s *Sequence) GetCode(pos int) uint8 {
	if pos < 0 || pos >= len(s.codes) {
		panic("probsketch: sequence: position out of range")
	}
	return s.codes[pos]
}

// Bytes returns the raw validated byte buffer, for debug/decode use.
func (s *Sequence) Bytes() []byte { return s.raw }

// ReverseComplement returns a new Sequence holding the reverse complement of
// s. It is only defined for alphabets with a complement relation
// (nucleotides); amino-acid sequences have none, and this returns
// ErrNoComplement rather than an arbitrary value.
func (s *Sequence) ReverseComplement() (*Sequence, error) {
	if !s.alphabet.HasComplement() {
		return nil, errors.Wrapf(ErrNoComplement, "sequence: %s alphabet", s.alphabet)
	}

	// seq.Seq.RevComInplace does the complement table work; run it on a
	// private clone so s stays immutable.
	clone := make([]byte, len(s.raw))
	copy(clone, s.raw)
	bioSeq, err := seq.NewSeq(seq.DNAredundant, clone)
	if err != nil {
		return nil, errors.Wrap(err, "sequence: reverse complement")
	}
	bioSeq.RevComInplace()

	return FromBytes(s.alphabet, bioSeq.Seq)
}
