// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchstat

import "sort"

// A Point is the summary of the measurements at one input size.
type Point struct {
	N int
	Triple
}

// A Series is a sequence of Points in ascending order of N.
type Series []Point

// Sizes returns the input sizes of s.
func (s Series) Sizes() []int {
	ns := make([]int, len(s))
	for i, p := range s {
		ns[i] = p.N
	}
	return ns
}

// Summarize returns the quartiles of g at every input size present in
// g, in ascending order of size.
func Summarize(g *Group) Series {
	sizes := make([]int, 0, len(g.Sizes))
	for n := range g.Sizes {
		sizes = append(sizes, n)
	}
	sort.Ints(sizes)

	out := make(Series, 0, len(sizes))
	for _, n := range sizes {
		q, ok := NewDistribution(g.Sizes[n]).Quartiles()
		if !ok {
			continue
		}
		out = append(out, Point{n, q})
	}
	return out
}
