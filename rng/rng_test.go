// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rng

import (
	"slices"
	"testing"
)

const (
	min = -1
	max = 11
)

func Test(t *testing.T) {
	for _, test := range []struct {
		r    Range
		want []int
	}{
		{Range{}, nil},
		{All(), []int{-1, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}},
		{From(1).To(3), []int{1, 2, 3}},
		{From(3).Below(4), []int{3}},
		{Above(2).To(5), []int{3, 4, 5}},
		{Above(8).Below(10), []int{9}},
		{From(9).Below(8), nil},
		{All().To(1), []int{-1, 0, 1}},
		{Above(9), []int{10, 11}},
	} {
		got := slice(test.r)
		if !slices.Equal(got, test.want) {
			t.Errorf("%s: got %v, want %v", test.r, got, test.want)
		}
		rb := test.r.Backwards()
		t.Log(rb)
		got = slice(rb)
		want := slices.Clone(test.want)
		slices.Reverse(want)
		if !slices.Equal(got, want) {
			t.Errorf("%s: got %v, want %v", rb, got, want)
		}
	}
}

func TestContains(t *testing.T) {
	for _, test := range []struct {
		r    Range
		want []int
	}{
		{Range{}, nil},
		{All(), []int{-1, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}},
		{From(1).To(3), []int{1, 2, 3}},
		{Above(2).Below(5), []int{3, 4}},
		{From(7), []int{7, 8, 9, 10, 11}},
		{From(4).To(4).Backwards(), []int{4}},
	} {
		var got []int
		for k := min; k <= max; k++ {
			if test.r.Contains(k) {
				got = append(got, k)
			}
		}
		if !slices.Equal(got, test.want) {
			t.Errorf("%s: got %v, want %v", test.r, got, test.want)
		}
	}
}

func TestString(t *testing.T) {
	for _, test := range []struct {
		r    Range
		want string
	}{
		{All(), "(-∞, ∞)"},
		{From(1).To(3), "[1, 3]"},
		{Above(2).Below(5), "(2, 5)"},
		{From(-4).Backwards(), "[-4, ∞) backwards"},
	} {
		if got := test.r.String(); got != test.want {
			t.Errorf("got %q, want %q", got, test.want)
		}
	}
}

func TestBoundTwicePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("no panic")
		}
	}()
	From(1).To(3).To(4)
}

func slice(r Range) []int {
	lo, linf, lincl := r.Low()
	hi, hinf, hincl := r.High()
	if linf {
		lo = min
	} else if !lincl {
		lo++
	}
	if hinf {
		hi = max
	} else if !hincl {
		hi--
	}
	var ints []int
	if r.IsBackwards() {
		for i := hi; i >= lo; i-- {
			ints = append(ints, i)
		}

	} else {
		for i := lo; i <= hi; i++ {
			ints = append(ints, i)
		}
	}
	return ints
}
