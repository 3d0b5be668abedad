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

import "golang.org/x/exp/constraints"

// CompressedKmer is the capability-set shared by every fixed-length,
// bit-packed k-mer representation: word width (32/64/128 bits) and
// alphabet bit-width (2 for nucleotide, 5 for amino acid) vary by
// concrete type, but all four variants (KmerW32B2, KmerW64B2, KmerW64B5,
// KmerW128B5) satisfy this interface.
type CompressedKmer interface {
	// NBase returns k, the number of symbols packed into the k-mer.
	NBase() int
	// BitWidth returns B, the number of bits used per symbol.
	BitWidth() uint8
	// Push returns a new k-mer of the same width and k, formed by shifting
	// out the leftmost (most significant) symbol and shifting code in at
	// the right. It never mutates the receiver.
	Push(code uint8) CompressedKmer
	// Uncompressed decodes the k-mer into k raw alphabet bytes, highest
	// (leftmost) symbol first.
	Uncompressed(a *Alphabet) []byte
	// Less implements the total order over all k-mers: number of bases
	// first, packed integer value second. It is safe to call across
	// concrete types.
	Less(other CompressedKmer) bool
	// Equal reports bitwise/k equality, also safe across concrete types.
	Equal(other CompressedKmer) bool
	// wide zero-extends the packed value into a 128-bit (hi,lo) pair so
	// Less/Equal can compare across word widths without reflection.
	wide() (hi, lo uint64)
}

// onesMask returns (1<<n)-1 in T, used to clear high bits after a push.
// Shared by the uint32- and uint64-backed k-mer variants.
func onesMask[T constraints.Unsigned](n uint8) T {
	if n == 0 {
		return 0
	}
	return T(1)<<n - 1
}

func compareNBaseThenWide(a, b CompressedKmer) int {
	if a.NBase() != b.NBase() {
		if a.NBase() < b.NBase() {
			return -1
		}
		return 1
	}
	ah, al := a.wide()
	bh, bl := b.wide()
	if ah != bh {
		if ah < bh {
			return -1
		}
		return 1
	}
	if al != bl {
		if al < bl {
			return -1
		}
		return 1
	}
	return 0
}

// --- KmerW32B2: word=uint32, B=2, k<=16 (nucleotide) ---

// KmerW32B2 packs up to 16 2-bit nucleotide symbols into a uint32.
type KmerW32B2 struct {
	value uint32
	k     int
}

// NewKmerW32B2 constructs an all-zero k-mer of width k (1<=k<=16).
func NewKmerW32B2(k int) (KmerW32B2, error) {
	if k < 1 || k > 16 {
		return KmerW32B2{}, ErrKOverflow
	}
	return KmerW32B2{k: k}, nil
}

func (x KmerW32B2) NBase() int      { return x.k }
func (x KmerW32B2) BitWidth() uint8 { return 2 }
func (x KmerW32B2) Value() uint32   { return x.value }

func (x KmerW32B2) Push(code uint8) CompressedKmer {
	mask := onesMask[uint32](2 * uint8(x.k))
	return KmerW32B2{value: ((x.value << 2) & mask) | uint32(code&0x3), k: x.k}
}

func (x KmerW32B2) Uncompressed(a *Alphabet) []byte {
	return decodeWord(uint64(x.value), x.k, 2, a)
}

func (x KmerW32B2) Less(other CompressedKmer) bool  { return compareNBaseThenWide(x, other) < 0 }
func (x KmerW32B2) Equal(other CompressedKmer) bool { return compareNBaseThenWide(x, other) == 0 }
func (x KmerW32B2) wide() (hi, lo uint64)           { return 0, uint64(x.value) }

// --- KmerW64B2: word=uint64, B=2, k<=32 (nucleotide) ---

// KmerW64B2 packs up to 32 2-bit nucleotide symbols into a uint64.
type KmerW64B2 struct {
	value uint64
	k     int
}

// NewKmerW64B2 constructs an all-zero k-mer of width k (1<=k<=32).
func NewKmerW64B2(k int) (KmerW64B2, error) {
	if k < 1 || k > 32 {
		return KmerW64B2{}, ErrKOverflow
	}
	return KmerW64B2{k: k}, nil
}

func (x KmerW64B2) NBase() int      { return x.k }
func (x KmerW64B2) BitWidth() uint8 { return 2 }
func (x KmerW64B2) Value() uint64   { return x.value }

func (x KmerW64B2) Push(code uint8) CompressedKmer {
	mask := onesMask[uint64](2 * uint8(x.k))
	return KmerW64B2{value: ((x.value << 2) & mask) | uint64(code&0x3), k: x.k}
}

func (x KmerW64B2) Uncompressed(a *Alphabet) []byte {
	return decodeWord(x.value, x.k, 2, a)
}

func (x KmerW64B2) Less(other CompressedKmer) bool  { return compareNBaseThenWide(x, other) < 0 }
func (x KmerW64B2) Equal(other CompressedKmer) bool { return compareNBaseThenWide(x, other) == 0 }
func (x KmerW64B2) wide() (hi, lo uint64)           { return 0, x.value }

// --- KmerW64B5: word=uint64, B=5, k<=12 (amino acid) ---

// KmerW64B5 packs up to 12 5-bit amino-acid symbols into a uint64.
type KmerW64B5 struct {
	value uint64
	k     int
}

// NewKmerW64B5 constructs an all-zero k-mer of width k (1<=k<=12).
func NewKmerW64B5(k int) (KmerW64B5, error) {
	if k < 1 || k > 12 {
		return KmerW64B5{}, ErrKOverflow
	}
	return KmerW64B5{k: k}, nil
}

func (x KmerW64B5) NBase() int      { return x.k }
func (x KmerW64B5) BitWidth() uint8 { return 5 }
func (x KmerW64B5) Value() uint64   { return x.value }

func (x KmerW64B5) Push(code uint8) CompressedKmer {
	mask := onesMask[uint64](5 * uint8(x.k))
	return KmerW64B5{value: ((x.value << 5) & mask) | uint64(code&0x1f), k: x.k}
}

func (x KmerW64B5) Uncompressed(a *Alphabet) []byte {
	return decodeWord(x.value, x.k, 5, a)
}

func (x KmerW64B5) Less(other CompressedKmer) bool  { return compareNBaseThenWide(x, other) < 0 }
func (x KmerW64B5) Equal(other CompressedKmer) bool { return compareNBaseThenWide(x, other) == 0 }
func (x KmerW64B5) wide() (hi, lo uint64)           { return 0, x.value }

// decodeWord extracts k packed symbols of bits bits each from a
// right-justified word, highest (leftmost) symbol first.
func decodeWord(value uint64, k int, bits uint8, a *Alphabet) []byte {
	out := make([]byte, k)
	for i := 0; i < k; i++ {
		shift := uint(k-1-i) * uint(bits)
		code := uint8((value >> shift) & uint64(onesMask[uint64](bits)))
		out[i] = a.UnpackSymbol(code)
	}
	return out
}

// DefaultKmerFactory picks the smallest-fitting concrete CompressedKmer
// variant for a given alphabet and k. It fails for k outside every
// variant's range (k<1, k>25 for amino acid, k>32 for nucleotide).
func DefaultKmerFactory(a *Alphabet, k int) (func() CompressedKmer, error) {
	if k < 1 {
		return nil, ErrInvalidK
	}
	switch a.NBits() {
	case 2:
		if k <= 16 {
			return func() CompressedKmer { x, _ := NewKmerW32B2(k); return x }, nil
		}
		if k <= 32 {
			return func() CompressedKmer { x, _ := NewKmerW64B2(k); return x }, nil
		}
		return nil, ErrKOverflow
	case 5:
		if k <= 12 {
			return func() CompressedKmer { x, _ := NewKmerW64B5(k); return x }, nil
		}
		if k <= 25 {
			return func() CompressedKmer { x, _ := NewKmerW128B5(k); return x }, nil
		}
		return nil, ErrKOverflow
	default:
		return nil, ErrKOverflow
	}
}
