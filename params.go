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
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Algorithm names one of the two sketching algorithms a SketchParams
// describes.
type Algorithm string

// The two supported algorithm tags.
const (
	AlgoProbMinHash3a Algorithm = "PROB3A"
	AlgoSuperMinHash  Algorithm = "SUPER"
)

// SketchParamsFile is the fixed file name parameters are dumped to inside a
// directory, and the name ReloadSketchParams looks for.
const SketchParamsFile = "sketchparams_dump.json"

// SketchParams is the persistent parameter record needed to reproduce a
// sketch's signature from a sequence: k-mer size, sketch size and,
// optionally, the algorithm tag. It round-trips through the plain JSON
// parameter dump the surrounding tooling reads back at startup.
type SketchParams struct {
	KmerSize   int       `json:"kmer_size"`
	SketchSize int       `json:"sketch_size"`
	Algorithm  Algorithm `json:"algorithm,omitempty"`
}

// NewSketchParams validates and returns a SketchParams.
func NewSketchParams(kmerSize, sketchSize int, algo Algorithm) (SketchParams, error) {
	p := SketchParams{KmerSize: kmerSize, SketchSize: sketchSize, Algorithm: algo}
	if err := p.validate(); err != nil {
		return SketchParams{}, err
	}
	return p, nil
}

func (p SketchParams) validate() error {
	if p.KmerSize < 1 {
		return ErrInvalidK
	}
	if p.SketchSize < 1 {
		return ErrInvalidSketchSize
	}
	if p.Algorithm != "" && p.Algorithm != AlgoProbMinHash3a && p.Algorithm != AlgoSuperMinHash {
		return ErrUnknownAlgorithm
	}
	return nil
}

// DumpJSON writes p as JSON to dir/sketchparams_dump.json, truncating and
// rewriting the whole file rather than patching it in place. Callers
// layering durability guarantees do their own fsync.
func (p SketchParams) DumpJSON(dir string) error {
	if err := p.validate(); err != nil {
		return err
	}
	path := filepath.Join(dir, SketchParamsFile)
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "sketchparams: create %s", path)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return errors.Wrapf(err, "sketchparams: encode %s", path)
	}
	return nil
}

// ReloadSketchParams reads and validates the SketchParams previously dumped
// to dir/sketchparams_dump.json.
func ReloadSketchParams(dir string) (SketchParams, error) {
	path := filepath.Join(dir, SketchParamsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return SketchParams{}, errors.Wrapf(err, "sketchparams: read %s", path)
	}

	var p SketchParams
	if err := json.Unmarshal(data, &p); err != nil {
		return SketchParams{}, errors.Wrapf(err, "sketchparams: decode %s", path)
	}
	if err := p.validate(); err != nil {
		return SketchParams{}, err
	}
	return p, nil
}
