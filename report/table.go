// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/ostperf/benchpair/benchstat"
)

// PrintTable writes the paired speedup series of op to w as a
// tab-separated table with a header, one line per size and four
// decimal places per quartile.
func PrintTable(w io.Writer, op string, series benchstat.Series) error {
	var buf strings.Builder
	fmt.Fprintf(&buf, "\n== speedup paired: %s ==\n", op)
	buf.WriteString("n\tmedian\tp25\tp75\n")
	for _, p := range series {
		fmt.Fprintf(&buf, "%d\t%.4f\t%.4f\t%.4f\n", p.N, p.Median, p.P25, p.P75)
	}
	_, err := io.WriteString(w, buf.String())
	return err
}

// XY is a summary series laid out as parallel arrays for plotting: a
// median line and a band from the 25th to the 75th percentile.
type XY struct {
	X  []float64 // sizes, ascending
	Y  []float64 // medians
	Lo []float64 // 25th percentiles
	Hi []float64 // 75th percentiles
}

// PlotSeries lays out s for plotting.
func PlotSeries(s benchstat.Series) XY {
	xy := XY{
		X:  make([]float64, len(s)),
		Y:  make([]float64, len(s)),
		Lo: make([]float64, len(s)),
		Hi: make([]float64, len(s)),
	}
	for i, p := range s {
		xy.X[i] = float64(p.N)
		xy.Y[i] = p.Median
		xy.Lo[i] = p.P25
		xy.Hi[i] = p.P75
	}
	return xy
}

// Len returns the number of points in xy.
func (xy XY) Len() int {
	return len(xy.X)
}
