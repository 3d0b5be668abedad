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

import "testing"

func TestGenerateAll(t *testing.T) {
	s := mustSequence(t, Nucleotide, "TCAAAGGGAAACATT")
	gen := NewKmerGenerator(4, mustFactory(t, Nucleotide, 4))
	kmers, err := gen.GenerateAll(s)
	if err != nil {
		t.Fatal(err)
	}
	if len(kmers) != s.Size()-4+1 {
		t.Fatalf("%d k-mers", len(kmers))
	}
	for i, kmer := range kmers {
		if got := string(kmer.Uncompressed(Nucleotide)); got != "TCAAAGGGAAACATT"[i:i+4] {
			t.Errorf("k-mer %d = %s", i, got)
		}
	}
}

func TestGenerateInRange(t *testing.T) {
	s := mustSequence(t, AminoAcid, "MTEQIELIKLYSTRILAL")
	gen := NewKmerGenerator(4, mustFactory(t, AminoAcid, 4))
	kmers, err := gen.GenerateInRange(s, 3, 10)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"QIEL", "IELI", "ELIK", "LIKL"}
	if len(kmers) != len(want) {
		t.Fatalf("%d k-mers, want %d", len(kmers), len(want))
	}
	for i, kmer := range kmers {
		if got := string(kmer.Uncompressed(AminoAcid)); got != want[i] {
			t.Errorf("k-mer %d = %s, want %s", i, got, want[i])
		}
	}

	if _, err := gen.GenerateInRange(s, 9, 3); err == nil {
		t.Error("inverted range must be rejected")
	}
}

// TestGenerateWeighted checks multiplicities sum to the window count and
// pairs come out in first-occurrence order.
func TestGenerateWeighted(t *testing.T) {
	// ACGTACGTAC: "ACGT" at 0 and 4, "CGTA" at 1 and 5, ...
	s := mustSequence(t, Nucleotide, "ACGTACGTAC")
	gen := NewKmerGenerator(4, mustFactory(t, Nucleotide, 4))
	weighted, err := gen.GenerateWeighted(s)
	if err != nil {
		t.Fatal(err)
	}

	total := 0
	for _, wk := range weighted {
		total += wk.Multiplicity
	}
	if total != s.Size()-4+1 {
		t.Errorf("multiplicities sum to %d, want %d", total, s.Size()-4+1)
	}

	want := []struct {
		mer string
		n   int
	}{
		{"ACGT", 2}, {"CGTA", 2}, {"GTAC", 2}, {"TACG", 1},
	}
	if len(weighted) != len(want) {
		t.Fatalf("%d distinct k-mers, want %d", len(weighted), len(want))
	}
	for i, wk := range weighted {
		mer := string(wk.Kmer.Uncompressed(Nucleotide))
		if mer != want[i].mer || wk.Multiplicity != want[i].n {
			t.Errorf("pair %d = (%s, %d), want (%s, %d)",
				i, mer, wk.Multiplicity, want[i].mer, want[i].n)
		}
	}
}

func TestGenerateWeightedShortSequence(t *testing.T) {
	s := mustSequence(t, Nucleotide, "ACG")
	gen := NewKmerGenerator(5, mustFactory(t, Nucleotide, 5))
	weighted, err := gen.GenerateWeighted(s)
	if err != nil {
		t.Fatal(err)
	}
	if len(weighted) != 0 {
		t.Errorf("short sequence yielded %d pairs", len(weighted))
	}
}

func mustFactory(t *testing.T, a *Alphabet, k int) func() CompressedKmer {
	t.Helper()
	factory, err := DefaultKmerFactory(a, k)
	if err != nil {
		t.Fatal(err)
	}
	return factory
}
