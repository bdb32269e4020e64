// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchstat

import "github.com/aclements/go-moremath/stats"

// A Distribution is a sorted set of measurements and their summary
// statistics.
type Distribution struct {
	// Values is the measurements in ascending order.
	Values []float64

	// Min and Max are the bounds of Values. Both are 0 if Values
	// is empty.
	Min, Max float64

	quartiles Triple
}

// NewDistribution returns the distribution of values. It does not
// modify values.
func NewDistribution(values []float64) *Distribution {
	samp := stats.Sample{Xs: append([]float64(nil), values...)}
	// Speed up order statistics.
	samp.Sort()
	d := &Distribution{Values: samp.Xs}
	if len(samp.Xs) > 0 {
		d.Min, d.Max = samp.Bounds()
		d.quartiles, _ = Quartiles(samp.Xs)
	}
	return d
}

// N returns the number of measurements in d.
func (d *Distribution) N() int {
	return len(d.Values)
}

// Quartiles returns the median and interquartile bounds of d, or false
// if d has no measurements.
func (d *Distribution) Quartiles() (Triple, bool) {
	return d.quartiles, len(d.Values) > 0
}
