// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rng provides ranges of int keys, for bounding scans of a tree.
package rng

import (
	"fmt"
	"strings"
)

// Range is an interval of int keys together with a direction.
// Each bound is inclusive, exclusive or infinite.
//
// The zero Range is an empty range.
type Range struct {
	lo, hi         int
	inclLo, inclHi bool
	infLo, infHi   bool
	rev            bool
}

func (r Range) String() string {
	var b strings.Builder
	if r.infLo {
		b.WriteString("(-∞")
	} else {
		if r.inclLo {
			b.WriteByte('[')
		} else {
			b.WriteByte('(')
		}
		fmt.Fprint(&b, r.lo)
	}
	b.WriteString(", ")
	if r.infHi {
		b.WriteString("∞)")
	} else {
		fmt.Fprint(&b, r.hi)
		if r.inclHi {
			b.WriteByte(']')
		} else {
			b.WriteByte(')')
		}
	}
	if r.rev {
		b.WriteString(" backwards")
	}
	return b.String()
}

// IsBackwards reports whether r is traversed from high to low.
func (r Range) IsBackwards() bool { return r.rev }

// Low returns the lower bound of r, whether it is infinite,
// and whether it is included in r.
func (r Range) Low() (v int, infinite, includes bool) {
	return r.lo, r.infLo, r.inclLo
}

// High returns the upper bound of r, whether it is infinite,
// and whether it is included in r.
func (r Range) High() (v int, infinite, includes bool) {
	return r.hi, r.infHi, r.inclHi
}

// Contains reports whether k lies between the bounds of r.
func (r Range) Contains(k int) bool {
	switch {
	case r.infLo:
	case r.inclLo && k < r.lo, !r.inclLo && k <= r.lo:
		return false
	}
	switch {
	case r.infHi:
	case r.inclHi && k > r.hi, !r.inclHi && k >= r.hi:
		return false
	}
	return true
}

// (-inf, inf)
func All() Range {
	return Range{infLo: true, infHi: true}
}

// [k, inf)
func From(k int) Range {
	return Range{lo: k, inclLo: true, infHi: true}
}

// (k, inf)
func Above(k int) Range {
	return Range{lo: k, inclLo: false, infHi: true}
}

// ..., k)
func (r Range) Below(k int) Range {
	if !r.infHi {
		panic("uninitialized Range")
	}
	r.hi = k
	r.infHi = false
	r.inclHi = false
	return r
}

// ..., k]
func (r Range) To(k int) Range {
	if !r.infHi {
		panic("uninitialized Range")
	}
	r.hi = k
	r.infHi = false
	r.inclHi = true
	return r
}

// Backwards returns r traversed from high to low.
func (r Range) Backwards() Range {
	r.rev = true
	return r
}
