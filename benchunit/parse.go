// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchunit works with the units of benchmark metrics.
//
// It derives units from metric column names, classifies units by how
// they should be scaled, and prints numbers in those units.
package benchunit

import (
	"fmt"
	"unicode"
)

// UnitClass distinguishes units that should be scaled differently.
type UnitClass int

const (
	// UnitClassSI indicates values of a given unit should be
	// scaled by powers of 1000 and use the International System
	// of Units SI prefixes.
	UnitClassSI UnitClass = iota
	// UnitClassIEC indicates values of a given unit should be
	// scaled by powers of 1024 and use the International
	// Electrotechnical Commission binary prefixes.
	UnitClassIEC
)

func (c UnitClass) String() string {
	switch c {
	case UnitClassSI:
		return "UnitClassSI"
	case UnitClassIEC:
		return "UnitClassIEC"
	}
	return fmt.Sprintf("UnitClass(%d)", int(c))
}

// UnitClassOf returns the UnitClass of unit. If unit has a measure of
// bytes in the numerator, this is UnitClassIEC. Otherwise, it is
// UnitClassSI.
func UnitClassOf(unit string) UnitClass {
	for tok := range tokens(unit) {
		if isBytes(tok.text) && !tok.denom {
			return UnitClassIEC
		}
	}
	return UnitClassSI
}

func isBytes(tok string) bool {
	return tok == "B" || tok == "MB" || tok == "bytes"
}

// A token is one factor of a unit, such as "sec" in "sec/op".
type token struct {
	text  string
	pos   int  // byte offset of text in the unit
	denom bool // token is in the denominator
}

// tokens splits unit into factors. "*" separates factors of the
// numerator, and everything after a "/" is in the denominator until
// the next "*". "-" and white space also separate tokens.
func tokens(unit string) func(yield func(token) bool) {
	return func(yield func(token) bool) {
		denom := false
		start := -1
		for i, r := range unit + " " {
			sep := r == '*' || r == '/' || r == '-' || unicode.IsSpace(r)
			if sep && start >= 0 {
				if !yield(token{unit[start:i], start, denom}) {
					return
				}
				start = -1
			}
			switch {
			case r == '*':
				denom = false
			case r == '/':
				denom = true
			case !sep && start < 0:
				start = i
			}
		}
	}
}
