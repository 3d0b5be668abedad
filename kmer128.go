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

// KmerW128B5 packs up to 25 5-bit amino-acid symbols into a 128-bit word,
// represented as (hi,lo uint64) since Go has no native 128-bit integer. hi
// holds the overflow above bit 63 of the low-order k*5 bits; lo holds the
// rest. Both fields always stay within the low k*5 bits overall.
type KmerW128B5 struct {
	hi, lo uint64
	k      int
}

// NewKmerW128B5 constructs an all-zero k-mer of width k (1<=k<=25).
func NewKmerW128B5(k int) (KmerW128B5, error) {
	if k < 1 || k > 25 {
		return KmerW128B5{}, ErrKOverflow
	}
	return KmerW128B5{k: k}, nil
}

func (x KmerW128B5) NBase() int      { return x.k }
func (x KmerW128B5) BitWidth() uint8 { return 5 }

// HiLo returns the raw 128-bit packed value as two uint64 halves.
func (x KmerW128B5) HiLo() (hi, lo uint64) { return x.hi, x.lo }

// Push shifts the 128-bit (hi,lo) pair left by 5 bits, ORs in the low 5
// bits of code, then masks back to the low k*5 bits.
func (x KmerW128B5) Push(code uint8) CompressedKmer {
	hi := (x.hi << 5) | (x.lo >> 59)
	lo := (x.lo << 5) | uint64(code&0x1f)

	totalBits := uint(x.k) * 5
	if totalBits < 64 {
		lo &= onesMask[uint64](uint8(totalBits))
		hi = 0
	} else {
		hiBits := uint8(totalBits - 64)
		hi &= onesMask[uint64](hiBits)
	}
	return KmerW128B5{hi: hi, lo: lo, k: x.k}
}

func (x KmerW128B5) Uncompressed(a *Alphabet) []byte {
	out := make([]byte, x.k)
	totalBits := uint(x.k) * 5
	for i := 0; i < x.k; i++ {
		// bit offset (from the right) of symbol i (0 = leftmost/first pushed)
		shift := totalBits - uint(i+1)*5
		var code uint8
		if shift >= 64 {
			code = uint8((x.hi >> (shift - 64)) & 0x1f)
		} else if shift+5 <= 64 {
			code = uint8((x.lo >> shift) & 0x1f)
		} else {
			// symbol straddles the hi/lo boundary
			loBits := uint(64 - shift)
			hiBits := uint(5) - loBits
			lowPart := (x.lo >> shift) & onesMask[uint64](uint8(loBits))
			highPart := x.hi & onesMask[uint64](uint8(hiBits))
			code = uint8(lowPart | (highPart << loBits))
		}
		out[i] = a.UnpackSymbol(code)
	}
	return out
}

func (x KmerW128B5) Less(other CompressedKmer) bool  { return compareNBaseThenWide(x, other) < 0 }
func (x KmerW128B5) Equal(other CompressedKmer) bool { return compareNBaseThenWide(x, other) == 0 }
func (x KmerW128B5) wide() (hi, lo uint64)           { return x.hi, x.lo }
