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

import "sort"

// CompressedKmerSlice is a slice of CompressedKmer, for sorting into the
// canonical total order (number of bases first, packed value second). It
// works across any mix of the four concrete variants, deferring to each
// value's own Less.
type CompressedKmerSlice []CompressedKmer

func (s CompressedKmerSlice) Len() int      { return len(s) }
func (s CompressedKmerSlice) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s CompressedKmerSlice) Less(i, j int) bool { return s[i].Less(s[j]) }

// Sort sorts kmers in place according to the canonical total order.
func Sort(kmers []CompressedKmer) {
	sort.Sort(CompressedKmerSlice(kmers))
}

// SignatureSlice is a slice of uint64 signature values (e.g. from
// ProbMinHash3a.GetSignature), for sorting into a canonical order when
// comparing or displaying two signatures side by side.
type SignatureSlice []uint64

func (s SignatureSlice) Len() int           { return len(s) }
func (s SignatureSlice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s SignatureSlice) Less(i, j int) bool { return s[i] < s[j] }
