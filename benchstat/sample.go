// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchstat computes robust summaries of per-sample benchmark
// measurements.
//
// Samples are organized two ways. Groups collect every measurement of
// one operation and variant at one input size, and are summarized by
// their median and interquartile range. The paired index lines up the
// measurements of different variants taken in the same run (same
// operation, size, and sample index), so that speedups can be computed
// per run rather than as a ratio of aggregate medians.
package benchstat

import (
	"fmt"
	"math"

	"github.com/ostperf/benchpair/benchcsv"
)

// A Sample is one measurement of one metric.
type Sample struct {
	Op      string
	Variant string
	N       int     // input size
	ID      int     // sample index, shared by runs of every variant
	Value   float64 // non-negative and finite
}

// A MetricError reports a row whose value for a metric is missing or
// unusable.
type MetricError struct {
	Line   int
	Op     string
	Metric string
	Msg    string
}

func (e *MetricError) Error() string {
	return fmt.Sprintf("line %d: op %s: %s: %s", e.Line, e.Op, e.Metric, e.Msg)
}

// Extract returns the metric column of every row whose operation is
// one of ops, in row order. If ops is empty, every row is used.
//
// A selected row that lacks the metric, or whose value is negative or
// not finite, is an error.
func Extract(rows []*benchcsv.Row, metric string, ops ...string) ([]Sample, error) {
	want := make(map[string]bool, len(ops))
	for _, op := range ops {
		want[op] = true
	}

	var out []Sample
	for _, row := range rows {
		if len(want) > 0 && !want[row.Op] {
			continue
		}
		val, ok := row.Value(metric)
		switch {
		case !ok:
			return nil, &MetricError{row.Line, row.Op, metric, "missing value"}
		case math.IsNaN(val) || math.IsInf(val, 0):
			return nil, &MetricError{row.Line, row.Op, metric, fmt.Sprintf("value %v is not finite", val)}
		case val < 0:
			return nil, &MetricError{row.Line, row.Op, metric, fmt.Sprintf("value %v is negative", val)}
		}
		out = append(out, Sample{row.Op, row.Variant, row.N, row.Sample, val})
	}
	return out, nil
}
