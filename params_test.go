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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParamsRoundTrip dumps {k:5, m:400} to sketchparams_dump.json and
// reloads an equal record.
func TestParamsRoundTrip(t *testing.T) {
	dir := t.TempDir()

	params, err := NewSketchParams(5, 400, AlgoProbMinHash3a)
	require.NoError(t, err)
	require.NoError(t, params.DumpJSON(dir))

	// the dump lands under the fixed file name with the agreed keys
	data, err := os.ReadFile(filepath.Join(dir, "sketchparams_dump.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kmer_size": 5`)
	assert.Contains(t, string(data), `"sketch_size": 400`)
	assert.Contains(t, string(data), `"PROB3A"`)

	reloaded, err := ReloadSketchParams(dir)
	require.NoError(t, err)
	assert.Equal(t, params, reloaded)
}

// TestParamsReloadLegacy reads a dump without the algorithm tag, the format
// the older non-trait sketcher wrote.
func TestParamsReloadLegacy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, SketchParamsFile)
	require.NoError(t, os.WriteFile(path, []byte(`{"kmer_size":8,"sketch_size":96}`), 0o644))

	p, err := ReloadSketchParams(dir)
	require.NoError(t, err)
	assert.Equal(t, 8, p.KmerSize)
	assert.Equal(t, 96, p.SketchSize)
	assert.Empty(t, p.Algorithm)
}

func TestParamsValidation(t *testing.T) {
	_, err := NewSketchParams(0, 400, AlgoProbMinHash3a)
	assert.ErrorIs(t, err, ErrInvalidK)

	_, err = NewSketchParams(5, 0, AlgoProbMinHash3a)
	assert.ErrorIs(t, err, ErrInvalidSketchSize)

	_, err = NewSketchParams(5, 400, Algorithm("BOGUS"))
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestParamsReloadFailures(t *testing.T) {
	dir := t.TempDir()

	_, err := ReloadSketchParams(dir)
	assert.Error(t, err, "missing dump must fail")

	path := filepath.Join(dir, SketchParamsFile)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = ReloadSketchParams(dir)
	assert.Error(t, err, "corrupt dump must fail")

	require.NoError(t, os.WriteFile(path, []byte(`{"kmer_size":0,"sketch_size":10}`), 0o644))
	_, err = ReloadSketchParams(dir)
	assert.ErrorIs(t, err, ErrInvalidK)
}
