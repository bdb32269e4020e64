// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchstat

import "sort"

// SpeedupOptions selects the variants compared by PairedSpeedup.
type SpeedupOptions struct {
	// Base is the variant in the numerator. If empty, "base".
	Base string
	// Opt is the variant in the denominator. If empty, "opt".
	Opt string
}

func (o SpeedupOptions) variants() (base, opt string) {
	base, opt = o.Base, o.Opt
	if base == "" {
		base = "base"
	}
	if opt == "" {
		opt = "opt"
	}
	return
}

// Ratios returns the per-run speedups base/opt of op, by input size.
//
// A run contributes a ratio only if it has a value for both variants
// and its opt value is non-zero. Sizes without any such run are
// absent from the result.
func Ratios(idx PairedIndex, op string, opts SpeedupOptions) map[int][]float64 {
	base, opt := opts.variants()
	ratios := make(map[int][]float64)
	for key, vals := range idx {
		if key.Op != op {
			continue
		}
		b, ok1 := vals[base]
		o, ok2 := vals[opt]
		if !ok1 || !ok2 || o == 0 {
			continue
		}
		ratios[key.N] = append(ratios[key.N], b/o)
	}
	return ratios
}

// PairedSpeedup returns the quartiles of the per-run speedups of op,
// in ascending order of input size.
//
// Because each ratio compares two measurements taken under the same
// conditions, this preserves the correlation between variants within
// a run that a ratio of medians would discard.
func PairedSpeedup(idx PairedIndex, op string, opts SpeedupOptions) Series {
	ratios := Ratios(idx, op, opts)
	sizes := make([]int, 0, len(ratios))
	for n := range ratios {
		sizes = append(sizes, n)
	}
	sort.Ints(sizes)

	out := make(Series, 0, len(sizes))
	for _, n := range sizes {
		rs := ratios[n]
		sort.Float64s(rs)
		q, ok := Quartiles(rs)
		if !ok {
			continue
		}
		out = append(out, Point{n, q})
	}
	return out
}
