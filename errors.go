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

import "errors"

// ErrIllegalSymbol means a byte outside the alphabet was found at Sequence
// construction time.
var ErrIllegalSymbol = errors.New("probsketch: illegal symbol")

// ErrKOverflow means k exceeds floor(W/B) for the chosen k-mer word width.
// The NewKmerW* constructors also return it for k < 1, where
// DefaultKmerFactory returns ErrInvalidK instead.
var ErrKOverflow = errors.New("probsketch: k-mer size overflows word width")

// ErrInvalidK means k < 1.
var ErrInvalidK = errors.New("probsketch: invalid k-mer size")

// ErrInvalidRange means SetRange(first, last) was called with last <= first
// or last beyond the sequence end.
var ErrInvalidRange = errors.New("probsketch: invalid k-mer iterator range")

// ErrNoComplement means ReverseComplement was called on an alphabet with no
// complement relation (amino acids).
var ErrNoComplement = errors.New("probsketch: alphabet has no complement")

// ErrInvalidSketchSize means a sketch size below 1, or two sketches of
// different sizes passed to EstimateJaccard or EstimateJaccardSuperMinHash.
var ErrInvalidSketchSize = errors.New("probsketch: sketch size must be positive")

// ErrHashFailed means the caller-supplied hasher refused a value.
var ErrHashFailed = errors.New("probsketch: hashing failed")

// ErrUnknownAlgorithm means an unrecognised algorithm tag was requested.
var ErrUnknownAlgorithm = errors.New("probsketch: unknown sketch algorithm")
