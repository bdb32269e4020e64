// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import (
	"fmt"
	"math"
	"strconv"
)

// Scaler represents a scaling factor for a number and its scientific
// representation.
type Scaler struct {
	Prec   int     // Digits after the decimal point
	Factor float64 // Unscaled value of 1 Prefix (e.g., 1 k => 1000)
	Prefix string  // Unit prefix (SI or binary)
}

// Format formats val and appends the unit prefix according to the
// given scale.
func (s Scaler) Format(val float64) string {
	buf := make([]byte, 0, 20)
	buf = strconv.AppendFloat(buf, val/s.Factor, 'f', s.Prec, 64)
	buf = append(buf, s.Prefix...)
	return string(buf)
}

// NoOpScaler is a Scaler that formats numbers with the smallest
// number of digits necessary to capture the exact value, and no
// prefix.
var NoOpScaler = Scaler{-1, 1, ""}

// A factor is one prefix of a unit class and the smallest values that
// print with 0, 1, and 2 digits after the decimal point under it.
type factor struct {
	factor float64
	prefix string
	// Thresholds for 100, 10.0, 1.00.
	t100, t10, t1 float64
}

var factors = map[UnitClass][]factor{
	UnitClassSI:  siFactors(),
	UnitClassIEC: iecFactors(),
}

func siFactors() []factor {
	prefixes := []string{"T", "G", "M", "k", "", "m", "µ", "n"}
	out := make([]factor, len(prefixes))
	for i, p := range prefixes {
		exp := 12 - 3*i
		// Printing rounds in decimal, so derive each threshold
		// by parsing its decimal representation at this exponent
		// rather than by multiplying.
		th := func(mant string) float64 {
			v, _ := strconv.ParseFloat(fmt.Sprintf("%se%d", mant, exp), 64)
			return v
		}
		out[i] = factor{math.Pow(10, float64(exp)), p, th("99.95"), th("9.995"), th(".9995")}
	}
	return out
}

func iecFactors() []factor {
	// Fractional binary prefixes aren't standard, but they're
	// meaningful for rates like B/sec, so use "X per unit".
	prefixes := []string{"Ti", "Gi", "Mi", "Ki", "", "/Ki", "/Mi", "/Gi", "/Ti"}
	out := make([]factor, len(prefixes))
	for i, p := range prefixes {
		exp := 40 - 10*i
		// Scaling by a power of two is exact.
		out[i] = factor{math.Ldexp(1, exp), p, math.Ldexp(99.95, exp), math.Ldexp(9.995, exp), math.Ldexp(.9995, exp)}
	}
	return out
}

// Scale formats val using at least three significant digits,
// appending an SI or binary prefix.
func Scale(val float64, cls UnitClass) string {
	return CommonScale([]float64{val}, cls).Format(val)
}

// CommonScale returns a common Scaler to apply to all values in vals.
// This scale will show at least three significant digits for every
// value.
func CommonScale(vals []float64, cls UnitClass) Scaler {
	// The common scale is determined by the non-zero value
	// closest to zero.
	var min float64
	for _, v := range vals {
		v = math.Abs(v)
		if v != 0 && (min == 0 || v < min) {
			min = v
		}
	}
	if min == 0 {
		return Scaler{2, 1, ""}
	}

	fs, ok := factors[cls]
	if !ok {
		panic(fmt.Sprintf("bad UnitClass %v", cls))
	}
	for i, f := range fs {
		last := i == len(fs)-1
		switch {
		case min >= f.t100:
			return Scaler{0, f.factor, f.prefix}
		case min >= f.t10:
			return Scaler{1, f.factor, f.prefix}
		case min >= f.t1 || last:
			return Scaler{2, f.factor, f.prefix}
		}
	}
	panic("not reachable")
}
