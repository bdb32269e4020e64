// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchstat

import "sort"

// A Cell is one entry of an Aligned table. OK is false where the
// column has no value at that size.
type Cell struct {
	Value float64
	OK    bool
}

// Aligned is a set of columns lined up on the union of their input
// sizes.
type Aligned struct {
	// Sizes is the union of the sizes of every column, ascending.
	Sizes []int

	// Rows holds one Cell per column for each entry of Sizes.
	Rows [][]Cell
}

// Merge aligns cols, each a map from input size to value, on the
// union of their sizes. Sizes missing from a column become gaps
// rather than being dropped, since columns may cover different sizes.
func Merge(cols ...map[int]float64) *Aligned {
	set := make(map[int]bool)
	for _, col := range cols {
		for n := range col {
			set[n] = true
		}
	}
	a := &Aligned{Sizes: make([]int, 0, len(set))}
	for n := range set {
		a.Sizes = append(a.Sizes, n)
	}
	sort.Ints(a.Sizes)

	a.Rows = make([][]Cell, len(a.Sizes))
	for i, n := range a.Sizes {
		row := make([]Cell, len(cols))
		for j, col := range cols {
			if v, ok := col[n]; ok {
				row[j] = Cell{v, true}
			}
		}
		a.Rows[i] = row
	}
	return a
}

// Column returns column j of a.
func (a *Aligned) Column(j int) []Cell {
	out := make([]Cell, len(a.Rows))
	for i, row := range a.Rows {
		out[i] = row[j]
	}
	return out
}
