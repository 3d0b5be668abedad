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
	"encoding/binary"

	"github.com/cespare/xxhash"
	"github.com/twmb/murmur3"
	"github.com/will-rowe/nthash"
)

// MaskHash is the identity k-mer-to-key function: the masked low k*B bits
// of the packed value, unchanged. It relies on Push already having
// cleared the high bits, so for every concrete CompressedKmer
// whose total k*B does not exceed 64 bits this is exactly the packed word.
// For KmerW128B5 values whose k*B exceeds 64 bits, the overflow half is
// folded in rather than dropped, so two distinct 128-bit values never
// collide to the same masked hash purely because their low 64 bits match.
func MaskHash(kmer CompressedKmer) uint64 {
	hi, lo := kmer.wide()
	if hi == 0 {
		return lo
	}
	return lo ^ (hi * 0x9e3779b97f4a7c15)
}

// MurmurHash64 widens MurmurHash32 to a uint64 key function, for
// amino-acid k-mer dispersion (ntHash is DNA-only, so protein k-mers need
// a different disperser).
func MurmurHash64(kmer CompressedKmer) uint64 {
	return uint64(MurmurHash32(kmer))
}

// nucleotideComplementCode complements a 2-bit packed nucleotide code:
// A(0)<->T(3), C(1)<->G(2), matching Nucleotide's packed A=0 C=1 G=2 T=3
// coding (so complement is just bitwise negation within 2 bits).
func nucleotideComplementCode(code uint8) uint8 {
	return 3 - code
}

// reverseComplementValue computes the packed value of kmer's reverse
// complement directly from its own packed bits, without needing a
// *Sequence or *Alphabet: symbol q of the output (0-indexed from the
// left) is the complement of symbol (k-1-q) of the input. Valid only for
// 2-bit (nucleotide) CompressedKmer values.
func reverseComplementValue(kmer CompressedKmer) uint64 {
	k := kmer.NBase()
	bits := kmer.BitWidth()
	_, lo := kmer.wide()
	mask := uint64(1)<<bits - 1

	var rv uint64
	for q := 0; q < k; q++ {
		shiftExtract := uint(k-1-q) * uint(bits)
		code := uint8((lo >> shiftExtract) & mask)
		comp := nucleotideComplementCode(code)
		rv |= uint64(comp) << (uint(q) * uint(bits))
	}
	return rv
}

// CanonicalHash is the canonical-form k-mer-to-key function, nucleotide
// alphabets only: it takes the smaller of a k-mer's forward and
// reverse-complement packed values, then passes that through
// InvertibleHash64. Because canonical(x) == canonical(revcomp(x)) for
// every k-mer x, two sequences that are reverse complements of one
// another produce the same canonical multiset, so their sketches agree
// everywhere.
func CanonicalHash(kmer CompressedKmer) uint64 {
	fwd := MaskHash(kmer)
	rev := reverseComplementValue(kmer)
	if rev < fwd {
		fwd = rev
	}
	return InvertibleHash64(fwd)
}

// DefaultHasher reduces a packed k-mer's wide value to a single uint64
// with xxhash. SuperMinHash's default hasher (DefaultSuperHasher) keys
// each item's PRNG off this value, not off the raw CompressedKmer, so it
// never has to special-case word width. ProbMinHash3a does not use it: it
// keys off the caller-supplied k-mer-to-key function.
func DefaultHasher(kmer CompressedKmer) uint64 {
	hi, lo := kmer.wide()
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:8], hi)
	binary.LittleEndian.PutUint64(buf[8:16], lo)
	binary.LittleEndian.PutUint64(buf[16:24], uint64(kmer.NBase()))
	return xxhash.Sum64(buf[:])
}

// MurmurHash32 is an alternate 32-bit hash over a k-mer's wide value, for
// callers that want a second, independently-seeded hash family (e.g. to
// cross-check sketch results against a different hash without reseeding
// the same function).
func MurmurHash32(kmer CompressedKmer) uint32 {
	hi, lo := kmer.wide()
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:8], hi)
	binary.LittleEndian.PutUint64(buf[8:16], lo)
	binary.LittleEndian.PutUint64(buf[16:24], uint64(kmer.NBase()))
	return murmur3.Sum32(buf[:])
}

// CanonicalNTHasher streams rolling ntHash values over a raw nucleotide
// buffer, canonicalising each k-mer by taking the smaller of its forward
// and reverse-complement ntHash values, so a caller wanting ntHash's rolling
// speed over raw bytes (rather than CompressedKmer.Push) can use it as a
// drop-in k-mer source.
type CanonicalNTHasher struct {
	hasher *nthash.NTHi
}

// NewCanonicalNTHasher returns a rolling canonical ntHash iterator over buf
// with k-mer size k.
func NewCanonicalNTHasher(buf []byte, k int) (*CanonicalNTHasher, error) {
	hasher, err := nthash.NewHasher(&buf, uint(k))
	if err != nil {
		return nil, err
	}
	return &CanonicalNTHasher{hasher: hasher}, nil
}

// Next returns the next canonical ntHash value, or ok=false once the
// buffer is exhausted.
func (h *CanonicalNTHasher) Next() (value uint64, ok bool) {
	return h.hasher.Next(true)
}

// InvertibleHash64 is a bijective 64-bit finalizer (splitmix64's output
// mixer), used wherever a component needs a hash it can trust to spread
// small, similar inputs (such as (kmer value, slot index) pairs) across
// the full uint64 range without collisions between distinct inputs.
func InvertibleHash64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// SeedSlot derives a deterministic per-(item, slot) seed by combining a
// 64-bit item hash with a slot index through InvertibleHash64, so that
// sketch construction never depends on stream or goroutine order.
func SeedSlot(itemHash uint64, slot int) uint64 {
	return InvertibleHash64(itemHash ^ (uint64(slot) * 0x9e3779b97f4a7c15))
}
