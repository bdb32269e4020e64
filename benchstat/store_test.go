// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchstat

import (
	"testing"

	"github.com/ostperf/benchpair/benchcsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func s(op, variant string, n, id int, val float64) Sample {
	return Sample{op, variant, n, id, val}
}

func TestBuildGroupsLossless(t *testing.T) {
	samples := []Sample{
		s("x", "base", 10, 0, 1),
		s("x", "base", 10, 1, 1), // duplicate value is kept
		s("x", "opt", 10, 0, 2),
		s("x", "base", 20, 0, 3),
		s("y", "base", 10, 0, 4),
	}
	groups := BuildGroups(samples)

	count := make(map[string]int)
	for key, vals := range groups {
		count[key.Op] += len(vals)
	}
	assert.Equal(t, map[string]int{"x": 4, "y": 1}, count)
	assert.Equal(t, []float64{1, 1}, groups[GroupKey{"x", "base", 10}])
}

func TestBuildPairedIndex(t *testing.T) {
	idx := BuildPairedIndex([]Sample{
		s("x", "base", 10, 0, 2),
		s("x", "opt", 10, 0, 1),
		s("x", "opt", 10, 0, 4), // last write wins
		s("x", "base", 10, 1, 3),
	})
	assert.Equal(t, map[string]float64{"base": 2, "opt": 4}, idx[PairKey{"x", 10, 0}])
	assert.Equal(t, map[string]float64{"base": 3}, idx[PairKey{"x", 10, 1}])
	assert.Len(t, idx, 2)
}

func TestStore(t *testing.T) {
	st := NewStore([]Sample{
		s("b", "base", 20, 0, 5),
		s("b", "base", 10, 0, 6),
		s("a", "opt", 10, 0, 7),
	})
	assert.Equal(t, []string{"a", "b"}, st.Ops())
	assert.True(t, st.HasOp("a"))
	assert.False(t, st.HasOp("c"))

	g, ok := st.Group("b", "base")
	require.True(t, ok)
	assert.Equal(t, map[int][]float64{10: {6}, 20: {5}}, g.Sizes)

	_, ok = st.Group("b", "opt")
	assert.False(t, ok)
	assert.Len(t, st.Pairs(), 3)
	assert.Len(t, st.Groups(), 3)
}

func TestSummarize(t *testing.T) {
	g := &Group{Op: "x", Variant: "base", Sizes: map[int][]float64{
		100: {4, 1, 3, 2},
		10:  {7},
	}}
	got := Summarize(g)
	require.Len(t, got, 2)
	assert.Equal(t, []int{10, 100}, got.Sizes())
	assert.Equal(t, Triple{7, 7, 7}, got[0].Triple)
	assert.InDelta(t, 2.5, got[1].Median, 1e-12)
	assert.InDelta(t, 1.75, got[1].P25, 1e-12)
	assert.InDelta(t, 3.25, got[1].P75, 1e-12)
}

func TestPairedSpeedup(t *testing.T) {
	test := func(name string, samples []Sample, want Series) {
		t.Helper()
		got := PairedSpeedup(BuildPairedIndex(samples), "x", SpeedupOptions{})
		if !assert.Equal(t, want, got, name) {
			t.Logf("samples: %v", samples)
		}
	}

	test("single pair", []Sample{
		s("x", "base", 10, 0, 2),
		s("x", "opt", 10, 0, 1),
	}, Series{{10, Triple{2, 2, 2}}})

	test("zero denominator drops size", []Sample{
		s("x", "base", 10, 0, 2),
		s("x", "opt", 10, 0, 0),
	}, Series{})

	test("unpaired base", []Sample{
		s("x", "base", 10, 0, 2),
		s("x", "opt", 10, 1, 1),
	}, Series{})

	test("other ops ignored", []Sample{
		s("x", "base", 10, 0, 6),
		s("x", "opt", 10, 0, 3),
		s("y", "base", 10, 0, 100),
		s("y", "opt", 10, 0, 1),
	}, Series{{10, Triple{2, 2, 2}}})

	test("sizes ascending, degenerate excluded", []Sample{
		s("x", "base", 64, 0, 8),
		s("x", "opt", 64, 0, 2),
		s("x", "base", 8, 0, 3),
		s("x", "opt", 8, 0, 1),
		s("x", "base", 8, 1, 1),
		s("x", "opt", 8, 1, 1),
		s("x", "base", 8, 2, 5),
		s("x", "opt", 8, 2, 0),
	}, Series{
		{8, Triple{Median: 2, P25: 1.5, P75: 2.5}},
		{64, Triple{4, 4, 4}},
	})
}

func TestPairedSpeedupVariants(t *testing.T) {
	idx := BuildPairedIndex([]Sample{
		s("x", "no_freelist", 10, 0, 3),
		s("x", "freelist", 10, 0, 1.5),
	})
	got := PairedSpeedup(idx, "x", SpeedupOptions{Base: "no_freelist", Opt: "freelist"})
	assert.Equal(t, Series{{10, Triple{2, 2, 2}}}, got)
}

func TestMerge(t *testing.T) {
	base := map[int]float64{100: 1000}
	opt := map[int]float64{200: 1500}
	a := Merge(base, opt, map[int]float64{})

	assert.Equal(t, []int{100, 200}, a.Sizes)
	assert.Equal(t, [][]Cell{
		{{1000, true}, {}, {}},
		{{}, {1500, true}, {}},
	}, a.Rows)
	for i, row := range a.Rows {
		n := 0
		for _, c := range row {
			if c.OK {
				n++
			}
		}
		assert.Equal(t, 1, n, "size %d", a.Sizes[i])
	}
	assert.Equal(t, []Cell{{}, {1500, true}}, a.Column(1))
}

func TestExtract(t *testing.T) {
	rows := []*benchcsv.Row{
		{Op: "time_x", Variant: "base", N: 8, Sample: 1, Values: []benchcsv.Value{{Metric: "ns_per_op", Value: 12}}, Line: 2},
		{Op: "mem_x", Variant: "base", N: 8, Values: []benchcsv.Value{{Metric: "mem_peak_bytes", Value: 64}}, Line: 3},
	}

	got, err := Extract(rows, "ns_per_op", "time_x")
	require.NoError(t, err)
	assert.Equal(t, []Sample{{"time_x", "base", 8, 1, 12}}, got)

	_, err = Extract(rows, "ns_per_op")
	var me *MetricError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, 3, me.Line)
	assert.Equal(t, "line 3: op mem_x: ns_per_op: missing value", err.Error())

	neg := []*benchcsv.Row{{Op: "x", Values: []benchcsv.Value{{Metric: "ns_per_op", Value: -1}}, Line: 9}}
	_, err = Extract(neg, "ns_per_op")
	assert.ErrorAs(t, err, &me)
}
