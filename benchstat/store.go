// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchstat

import "sort"

// A GroupKey identifies the measurements of one variant of one
// operation at one input size.
type GroupKey struct {
	Op, Variant string
	N           int
}

// Groups maps each GroupKey to its measurements in insertion order.
// Duplicate values are retained.
type Groups map[GroupKey][]float64

// BuildGroups places every sample into exactly one group.
func BuildGroups(samples []Sample) Groups {
	groups := make(Groups)
	for _, s := range samples {
		key := GroupKey{s.Op, s.Variant, s.N}
		groups[key] = append(groups[key], s.Value)
	}
	return groups
}

// A PairKey identifies one measurement run across all variants.
type PairKey struct {
	Op    string
	N, ID int
}

// PairedIndex maps each run to its value for each variant.
type PairedIndex map[PairKey]map[string]float64

// BuildPairedIndex indexes samples by run. If a run has more than one
// sample for the same variant, the last one wins.
func BuildPairedIndex(samples []Sample) PairedIndex {
	idx := make(PairedIndex)
	for _, s := range samples {
		key := PairKey{s.Op, s.N, s.ID}
		vals := idx[key]
		if vals == nil {
			vals = make(map[string]float64)
			idx[key] = vals
		}
		vals[s.Variant] = s.Value
	}
	return idx
}

// A Group is every measurement of one variant of one operation, by
// input size.
type Group struct {
	Op, Variant string

	// Sizes maps each input size to its measurements.
	Sizes map[int][]float64
}

// A Store holds both views of a set of samples.
type Store struct {
	groups Groups
	pairs  PairedIndex

	// byVariant maps from (op, variant) to the group of all sizes.
	byVariant map[variantKey]*Group

	ops []string
}

type variantKey struct {
	op, variant string
}

// NewStore builds the groups and paired index of samples.
func NewStore(samples []Sample) *Store {
	s := &Store{
		groups:    BuildGroups(samples),
		pairs:     BuildPairedIndex(samples),
		byVariant: make(map[variantKey]*Group),
	}

	seen := make(map[string]bool)
	for key, vals := range s.groups {
		vk := variantKey{key.Op, key.Variant}
		g := s.byVariant[vk]
		if g == nil {
			g = &Group{Op: key.Op, Variant: key.Variant, Sizes: make(map[int][]float64)}
			s.byVariant[vk] = g
		}
		g.Sizes[key.N] = vals

		if !seen[key.Op] {
			seen[key.Op] = true
			s.ops = append(s.ops, key.Op)
		}
	}
	sort.Strings(s.ops)
	return s
}

// Groups returns the grouped view of the store.
func (s *Store) Groups() Groups {
	return s.groups
}

// Pairs returns the paired view of the store.
func (s *Store) Pairs() PairedIndex {
	return s.pairs
}

// Group returns all measurements of variant of op, or false if there
// are none.
func (s *Store) Group(op, variant string) (*Group, bool) {
	g, ok := s.byVariant[variantKey{op, variant}]
	return g, ok
}

// Ops returns the distinct operations in the store, sorted.
func (s *Store) Ops() []string {
	return s.ops
}

// HasOp reports whether the store has any measurement of op.
func (s *Store) HasOp(op string) bool {
	i := sort.SearchStrings(s.ops, op)
	return i < len(s.ops) && s.ops[i] == op
}
