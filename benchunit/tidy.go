// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import (
	"strings"
	"sync"
)

type tidyEntry struct {
	tidied string
	factor float64
}

var tidyCache sync.Map // metric or unit string -> *tidyEntry

// MetricUnit returns the tidied unit of a metric column and the
// multiplicative factor to convert a value of the column to that
// unit.
//
// Column names are lower-case words joined by "_". A "per" word
// introduces the denominator, so "ns_per_op" is "ns/op", which tidies
// to "sec/op". A trailing "bytes" word is the unit "B", so
// "mem_peak_bytes" is in "B". Otherwise the last word is the unit, so
// "alloc_calls" is in "calls".
func MetricUnit(metric string) (unit string, factor float64) {
	if tc, ok := tidyCache.Load("metric:" + metric); ok {
		tc := tc.(*tidyEntry)
		return tc.tidied, tc.factor
	}

	words := strings.Split(metric, "_")
	if i := indexWord(words, "per"); i > 0 && i < len(words)-1 {
		unit = words[i-1] + "/" + strings.Join(words[i+1:], "*")
	} else if last := words[len(words)-1]; last == "bytes" {
		unit = "B"
	} else {
		unit = last
	}
	unit, factor = TidyUnit(unit)
	tidyCache.Store("metric:"+metric, &tidyEntry{unit, factor})
	return unit, factor
}

func indexWord(words []string, w string) int {
	for i, x := range words {
		if x == w {
			return i
		}
	}
	return -1
}

// TidyUnit returns the tidied version of unit and the multiplicative
// factor to convert a value in unit "unit" to a value in unit
// "tidied". Pre-scaled units like "ns" and "MB" are normalized to
// "sec" and "B" so a scaler applied afterwards doesn't produce
// nonsense units like "megananoseconds".
func TidyUnit(unit string) (tidied string, factor float64) {
	// Fast path for units with no normalization.
	if !(strings.Contains(unit, "ns") || strings.Contains(unit, "MB")) {
		return unit, 1
	}

	if tc, ok := tidyCache.Load(unit); ok {
		tc := tc.(*tidyEntry)
		return tc.tidied, tc.factor
	}

	tidied, factor = tidy(unit)
	tidyCache.Store(unit, &tidyEntry{tidied, factor})
	return
}

func tidy(unit string) (tidied string, factor float64) {
	type edit struct {
		pos, len int
		replace  string
	}

	factor = 1
	var edits []edit
	for tok := range tokens(unit) {
		if tok.denom {
			// Don't edit in the denominator.
			continue
		}
		switch tok.text {
		case "ns":
			edits = append(edits, edit{tok.pos, len("ns"), "sec"})
			factor /= 1e9
		case "MB":
			edits = append(edits, edit{tok.pos, len("MB"), "B"})
			factor *= 1e6
		}
	}
	// Apply edits back to front so positions stay valid.
	for i := len(edits) - 1; i >= 0; i-- {
		e := edits[i]
		unit = unit[:e.pos] + e.replace + unit[e.pos+e.len:]
	}
	return unit, factor
}
