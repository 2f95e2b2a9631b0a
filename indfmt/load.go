// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package indfmt

import (
	"fmt"
	"io"

	"github.com/rankstat/rankstat/rankmath"
)

// DefaultMaxSamples is the default limit on the number of blocks in
// an indicator file.
const DefaultMaxSamples = 30

// LoadOptions control Load.
type LoadOptions struct {
	// MinSamples is the fewest blocks the file may hold. If 0, it
	// is 2.
	MinSamples int

	// MaxSamples is the most blocks the file may hold. If 0, it
	// is DefaultMaxSamples.
	MaxSamples int

	// Paired requires every block to have the same number of
	// values.
	Paired bool
}

// Load reads an indicator file and returns one sample per block,
// labeled by block position starting at 0. On error it returns no
// samples.
func Load(r io.Reader, fileName string, opts LoadOptions) ([]*rankmath.Sample, error) {
	if opts.MinSamples == 0 {
		opts.MinSamples = 2
	}
	if opts.MaxSamples == 0 {
		opts.MaxSamples = DefaultMaxSamples
	}
	rd := NewReader(r, fileName)

	var samples []*rankmath.Sample
	var block []float64
	flush := func() {
		if len(block) > 0 {
			samples = append(samples, rankmath.NewSample(len(samples), block))
			block = block[:0]
		}
	}
	for rd.Scan() {
		tok := rd.Token()
		if tok.Kind() == Break {
			flush()
			continue
		}
		if len(block) == 0 && len(samples) == opts.MaxSamples {
			return nil, &FormatError{rd.fileName, tok.Line(), TooManySamples,
				fmt.Sprintf("more than %d samples", opts.MaxSamples)}
		}
		block = append(block, tok.Value())
	}
	if err := rd.Err(); err != nil {
		return nil, err
	}
	flush()

	if len(samples) < opts.MinSamples {
		return nil, &FormatError{rd.fileName, 0, TooFewSamples,
			fmt.Sprintf("found %d samples, need at least %d", len(samples), opts.MinSamples)}
	}
	if opts.Paired {
		for _, s := range samples[1:] {
			if s.Len() != samples[0].Len() {
				return nil, &FormatError{rd.fileName, 0, UnequalSizes,
					fmt.Sprintf("paired samples must have equal sizes: sample 1 has %d values, sample %d has %d", samples[0].Len(), s.Label+1, s.Len())}
			}
		}
	}
	return samples, nil
}
