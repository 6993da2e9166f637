// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package workload generates key sequences and replays operation scripts
// against a tree.
package workload

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// A Pattern names an order in which keys are generated.
type Pattern string

const (
	Sequential Pattern = "sequential"
	Reverse    Pattern = "reverse"
	Random     Pattern = "random"
)

// ErrUnknownPattern is returned by Keys for an unrecognized pattern.
var ErrUnknownPattern = errors.New("workload: unknown key pattern")

// Keys returns the n keys 0, 1, ..., n-1 in the order given by p.
// The seed only matters for Random.
func Keys(p Pattern, n int, seed uint64) ([]int, error) {
	switch p {
	case Sequential:
		return SequentialKeys(n), nil
	case Reverse:
		return ReverseKeys(n), nil
	case Random:
		return RandomKeys(n, seed), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPattern, p)
}

// SequentialKeys returns 0, 1, ..., n-1.
func SequentialKeys(n int) []int {
	keys := make([]int, n)
	for i := range keys {
		keys[i] = i
	}
	return keys
}

// ReverseKeys returns n-1, n-2, ..., 0.
func ReverseKeys(n int) []int {
	keys := make([]int, n)
	for i := range keys {
		keys[i] = n - 1 - i
	}
	return keys
}

// RandomKeys returns a permutation of 0, 1, ..., n-1
// determined by seed.
func RandomKeys(n int, seed uint64) []int {
	return NewRand(seed).Perm(n)
}

// NewRand returns a deterministic source of randomness for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
