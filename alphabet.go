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

import "fmt"

// Alphabet is a small closed set of symbols with a non-zero code per symbol.
// Codes (Encode/Decode) are always 1-based: code 0 is reserved as "absent".
//
// Packing into a k-mer word uses a second, per-alphabet mapping: the 5-bit
// amino-acid alphabet packs the code as-is (codes 1..20 fit in 5 bits with 0
// left over as "no base pushed yet", so a freshly constructed k-mer's
// all-zero value needs no sentinel bookkeeping), while the 2-bit nucleotide
// alphabet packs code-1 (A=0 C=1 G=2 T=3) because four symbols plus a
// reserved zero cannot fit in 2 bits.
type Alphabet struct {
	name       string
	symbols    []byte    // canonical symbol for each code, index 0 unused
	code       [256]int8 // byte -> code, -1 if invalid
	complement []byte    // complement symbol per code, nil if alphabet has no complement
	bits       uint8     // bits per packed symbol: 2 or 5
	packShift  uint8     // packed = code - packShift
}

// Size returns the number of legal symbols, |S|.
func (a *Alphabet) Size() int { return len(a.symbols) - 1 }

// NBits returns B, the per-symbol bit width of the packed representation
// (2 for nucleotides, 5 for amino acids).
func (a *Alphabet) NBits() uint8 { return a.bits }

// String returns the alphabet's name, e.g. "amino-acid" or "nucleotide".
func (a *Alphabet) String() string { return a.name }

// IsValid reports whether b is a legal alphabet byte (case-insensitive).
func (a *Alphabet) IsValid(b byte) bool {
	return a.code[b] > 0
}

// Encode converts a raw byte to its 1-based code. It fails on any byte
// outside the alphabet; this is the only recoverable error this type raises
// (Sequence.FromBytes surfaces it with position information).
func (a *Alphabet) Encode(b byte) (uint8, error) {
	c := a.code[b]
	if c <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrIllegalSymbol, b)
	}
	return uint8(c), nil
}

// Decode converts a code back to its canonical byte. An out-of-range code is
// a programming fault: no legitimately constructed k-mer ever carries one.
func (a *Alphabet) Decode(code uint8) byte {
	if int(code) <= 0 || int(code) >= len(a.symbols) {
		panic(fmt.Sprintf("probsketch: decode: code %d out of range for %s alphabet", code, a.name))
	}
	return a.symbols[code]
}

// PackedCode converts a 1-based code to the value occupying B bits in a
// packed k-mer word.
func (a *Alphabet) PackedCode(code uint8) uint8 { return code - a.packShift }

// UnpackSymbol converts a B-bit packed value back to its canonical byte. A
// packed value no legal symbol maps to is a programming fault: no
// legitimately constructed k-mer ever carries one.
func (a *Alphabet) UnpackSymbol(packed uint8) byte {
	return a.Decode(packed + a.packShift)
}

// HasComplement reports whether this alphabet supports ReverseComplement.
func (a *Alphabet) HasComplement() bool { return a.complement != nil }

// ComplementCode returns the code of the complement base. It panics (a
// programming fault) when called on an alphabet without a complement
// relation; callers should check HasComplement first, which is exactly what
// Sequence.ReverseComplement does before ever calling this.
func (a *Alphabet) ComplementCode(code uint8) uint8 {
	if a.complement == nil {
		panic("probsketch: alphabet has no complement relation")
	}
	b := a.complement[code]
	c, _ := a.Encode(b)
	return c
}

func newAlphabet(name string, symbols string, complements string, bits, packShift uint8) *Alphabet {
	a := &Alphabet{name: name, bits: bits, packShift: packShift}
	for i := range a.code {
		a.code[i] = -1
	}
	a.symbols = make([]byte, len(symbols)+1) // index 0 reserved
	for i := 0; i < len(symbols); i++ {
		code := int8(i + 1)
		up := symbols[i]
		a.symbols[code] = up
		a.code[up] = code
		if low := toLower(up); low != up {
			a.code[low] = code
		}
	}
	if complements != "" {
		a.complement = make([]byte, len(symbols)+1)
		for i := 0; i < len(symbols); i++ {
			a.complement[i+1] = complements[i]
		}
	}
	return a
}

func toLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// AminoAcid is the 20-symbol protein alphabet, 5 bits per packed symbol.
// All 20 standard residues are coded sequentially 1..20 in alphabetical
// order and packed as-is, leaving 0 reserved. No complement relation
// exists for amino acids.
//
//	A=1 C=2 D=3 E=4 F=5 G=6 H=7 I=8 K=9 L=10
//	M=11 N=12 P=13 Q=14 R=15 S=16 T=17 V=18 W=19 Y=20
var AminoAcid = newAlphabet("amino-acid", "ACDEFGHIKLMNPQRSTVWY", "", 5, 0)

// Nucleotide is the 4-symbol DNA alphabet, 2 bits per packed base, with
// A=0 C=1 G=2 T=3 packing and complement pairing A<->T, C<->G. A reserved
// packed zero is impossible at 2 bits, so only the 1-based Encode codes
// carry the zero-is-absent convention here.
var Nucleotide = newAlphabet("nucleotide", "ACGT", "TGCA", 2, 1)

// degenerateFold maps IUPAC degenerate nucleotide symbols to the single
// base kept by the 2-bit packing.
var degenerateFold = map[byte]byte{
	'M': 'A', 'V': 'A', 'H': 'A', 'R': 'A', 'D': 'A', 'W': 'A', 'N': 'A',
	'S': 'C', 'B': 'C', 'Y': 'C',
	'K': 'G',
}

// FoldDegenerateBase resolves an IUPAC-degenerate nucleotide symbol to the
// single concrete base the 2-bit packing keeps, or returns b unchanged if it
// is already a concrete base (or not a recognised degenerate symbol).
func FoldDegenerateBase(b byte) byte {
	up := b
	if up >= 'a' && up <= 'z' {
		up -= 'a' - 'A'
	}
	if folded, ok := degenerateFold[up]; ok {
		return folded
	}
	return b
}
