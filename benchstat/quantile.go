// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchstat

import "math"

// Quantile returns the q'th quantile of sorted, which must be in
// ascending order. It interpolates linearly between the order
// statistics on either side of the fractional rank (len(sorted)-1)*q,
// which is method 7 of Hyndman and Fan (1996). This reproduces the
// minimum at q=0, the maximum at q=1, and any element whose rank q
// selects exactly.
//
// If sorted is empty, Quantile returns 0, false.
func Quantile(sorted []float64, q float64) (float64, bool) {
	switch len(sorted) {
	case 0:
		return 0, false
	case 1:
		return sorted[0], true
	}
	last := len(sorted) - 1
	pos := float64(last) * q
	lo := int(math.Floor(pos))
	// Keep q slightly outside [0, 1] from indexing out of range.
	lo = max(0, min(lo, last))
	hi := min(lo+1, last)
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac, true
}

// A Triple is the median and interquartile bounds of a set of values.
type Triple struct {
	Median float64
	P25    float64 // 25th percentile
	P75    float64 // 75th percentile
}

// Quartiles returns the 0.50, 0.25, and 0.75 quantiles of sorted,
// which must be in ascending order. If sorted is empty, it returns
// false.
func Quartiles(sorted []float64) (Triple, bool) {
	med, ok := Quantile(sorted, 0.50)
	if !ok {
		return Triple{}, false
	}
	p25, _ := Quantile(sorted, 0.25)
	p75, _ := Quantile(sorted, 0.75)
	return Triple{med, p25, p75}, true
}
