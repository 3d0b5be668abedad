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
	"context"
	"runtime"
	"sync"

	humanize "github.com/dustin/go-humanize"
	"golang.org/x/exp/constraints"
)

// SketchDriver runs a batch of sketching jobs (one per input sequence,
// typically) across a bounded pool of goroutines. Every worker writes to
// its own slot of a preallocated output slice, so no collector or
// reassembly step is needed to keep results in input order.
type SketchDriver struct {
	// Concurrency bounds how many jobs run at once. Zero or negative means
	// runtime.NumCPU().
	Concurrency int
}

// NewSketchDriver returns a driver defaulting to one worker per CPU.
func NewSketchDriver() *SketchDriver {
	return &SketchDriver{Concurrency: runtime.NumCPU()}
}

// concurrency returns d.Concurrency, or runtime.NumCPU() if unset.
func (d *SketchDriver) concurrency() int {
	if d == nil || d.Concurrency <= 0 {
		return runtime.NumCPU()
	}
	return d.Concurrency
}

// RunBatch runs work over every element of items, bounded to d's
// concurrency, and returns results in the same order as items
// (index-then-collect: each worker is handed its index up front and
// writes directly to that output slot, so completion order never leaks
// into the result order). The batch is fatal-on-first-error: as soon as
// any job returns an error, RunBatch stops launching new jobs, cancels
// ctx for jobs already running, waits for them to unwind, and returns
// that error. Partial results from a failed batch are not returned.
func RunBatch[In any, Out any](ctx context.Context, d *SketchDriver, items []In, work func(context.Context, In) (Out, error)) ([]Out, error) {
	out := make([]Out, len(items))
	if len(items) == 0 {
		return out, nil
	}
	log.Debugf("sketch driver: %s jobs across %d workers", humanize.Comma(int64(len(items))), d.concurrency())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tokens := make(chan struct{}, d.concurrency())
	var wg sync.WaitGroup
	var once sync.Once
	var firstErr error

	for i, item := range items {
		if ctx.Err() != nil {
			break
		}

		tokens <- struct{}{}
		if ctx.Err() != nil {
			<-tokens
			break
		}
		wg.Add(1)
		go func(i int, item In) {
			defer wg.Done()
			defer func() { <-tokens }()

			result, err := work(ctx, item)
			if err != nil {
				once.Do(func() {
					firstErr = err
					cancel()
				})
				return
			}
			out[i] = result
		}(i, item)
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// ProbMinHashFHash is a pure, thread-safe k-mer-to-key function. MaskHash,
// CanonicalHash and MurmurHash64 are all valid choices.
type ProbMinHashFHash func(CompressedKmer) uint64

// ProbMinHashSketcher sketches batches of sequences with ProbMinHash3a:
// it owns the kmer/sketch-size parameters and k-mer factory, and maps
// Sketch over a batch of sequences, one independent Multiset +
// ProbMinHash3a per sequence, in parallel via RunBatch.
type ProbMinHashSketcher struct {
	params  SketchParams
	factory func() CompressedKmer

	// Driver bounds the parallel fan-out; it defaults to one worker per
	// CPU (NewSketchDriver) and may be retuned before the first Sketch.
	Driver *SketchDriver
}

// NewProbMinHashSketcher builds a PROB3A sketcher over alphabet from
// params, whose Algorithm must be AlgoProbMinHash3a (or empty, the older
// parameter dumps that predate the tag).
func NewProbMinHashSketcher(alphabet *Alphabet, params SketchParams) (*ProbMinHashSketcher, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	if params.Algorithm != "" && params.Algorithm != AlgoProbMinHash3a {
		return nil, ErrUnknownAlgorithm
	}
	factory, err := DefaultKmerFactory(alphabet, params.KmerSize)
	if err != nil {
		return nil, err
	}
	return &ProbMinHashSketcher{params: params, factory: factory, Driver: NewSketchDriver()}, nil
}

// GetKmerSize returns k.
func (s *ProbMinHashSketcher) GetKmerSize() int { return s.params.KmerSize }

// GetSketchSize returns m.
func (s *ProbMinHashSketcher) GetSketchSize() int { return s.params.SketchSize }

// GetAlgo returns AlgoProbMinHash3a.
func (s *ProbMinHashSketcher) GetAlgo() Algorithm { return AlgoProbMinHash3a }

// Sketch maps one ProbMinHash3a signature per sequence in sequences, in
// input order, using fhash to turn each sequence's weighted k-mers into
// the Multiset keys the sketch races over. Any single sequence's
// sketching failure aborts the whole batch; a batch of zero sequences
// returns an empty, non-nil slice.
func (s *ProbMinHashSketcher) Sketch(ctx context.Context, sequences []*Sequence, fhash ProbMinHashFHash) ([][]uint64, error) {
	gen := NewKmerGenerator(s.params.KmerSize, s.factory)

	return RunBatch(ctx, s.Driver, sequences, func(_ context.Context, sequence *Sequence) ([]uint64, error) {
		weighted, err := gen.GenerateWeighted(sequence)
		if err != nil {
			return nil, err
		}

		ms := NewMultiset[uint64](len(weighted))
		for _, wk := range weighted {
			ms.Add(fhash(wk.Kmer), float64(wk.Multiplicity))
		}

		sketch, err := NewProbMinHash3a(s.params.SketchSize, 0)
		if err != nil {
			return nil, err
		}
		if err := sketch.Sketch(ms.Pairs()); err != nil {
			return nil, err
		}
		return sketch.GetSignature(), nil
	})
}

// SuperMinHashSketcher sketches batches of sequences with SuperMinHash.
// Unlike ProbMinHashSketcher it streams k-mers directly through
// KmerIterator rather than building a weighted Multiset first:
// SuperMinHash's Add treats a repeated item as idempotent, so per-k-mer
// counts would carry nothing it uses. The
// signature element type (float32 or float64) is chosen per call via
// SketchSuper; the Sketch method is the float64 shorthand.
type SuperMinHashSketcher struct {
	params  SketchParams
	factory func() CompressedKmer

	// Driver bounds the parallel fan-out, as in ProbMinHashSketcher.
	Driver *SketchDriver
}

// NewSuperMinHashSketcher builds a SuperMinHash sketcher over alphabet
// from params, whose Algorithm must be AlgoSuperMinHash (or empty).
func NewSuperMinHashSketcher(alphabet *Alphabet, params SketchParams) (*SuperMinHashSketcher, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	if params.Algorithm != "" && params.Algorithm != AlgoSuperMinHash {
		return nil, ErrUnknownAlgorithm
	}
	factory, err := DefaultKmerFactory(alphabet, params.KmerSize)
	if err != nil {
		return nil, err
	}
	return &SuperMinHashSketcher{params: params, factory: factory, Driver: NewSketchDriver()}, nil
}

// GetKmerSize returns k.
func (s *SuperMinHashSketcher) GetKmerSize() int { return s.params.KmerSize }

// GetSketchSize returns m.
func (s *SuperMinHashSketcher) GetSketchSize() int { return s.params.SketchSize }

// GetAlgo returns AlgoSuperMinHash.
func (s *SuperMinHashSketcher) GetAlgo() Algorithm { return AlgoSuperMinHash }

// Sketch maps one float64 SuperMinHash signature per sequence, in input
// order. See SketchSuper for the generic form.
func (s *SuperMinHashSketcher) Sketch(ctx context.Context, sequences []*Sequence, hasher SuperMinHashHasher) ([][]float64, error) {
	return SketchSuper[float64](ctx, s, sequences, hasher)
}

// SketchSuper maps one SuperMinHash signature of element type F per
// sequence in sequences, in input order. A hasher failure on any k-mer of
// any sequence is fatal to the whole batch; hasher may be nil for the
// xxhash default.
func SketchSuper[F constraints.Float](ctx context.Context, s *SuperMinHashSketcher, sequences []*Sequence, hasher SuperMinHashHasher) ([][]F, error) {
	return RunBatch(ctx, s.Driver, sequences, func(_ context.Context, sequence *Sequence) ([]F, error) {
		it, err := NewKmerIterator(sequence, s.params.KmerSize, s.factory)
		if err != nil {
			return nil, err
		}

		sketch, err := NewSuperMinHash[F](s.params.SketchSize, hasher)
		if err != nil {
			return nil, err
		}

		for {
			kmer, ok, err := it.Next()
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}
			if err := sketch.Sketch(kmer); err != nil {
				return nil, err
			}
		}
		return sketch.GetHSketch(), nil
	})
}
