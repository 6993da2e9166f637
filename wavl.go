// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wavl implements an in-memory ordered map with int keys,
// backed by a weak AVL (rank-balanced) tree.
//
// Search, insertion, deletion and order-statistic selection all take
// O(log n) time. Insertion performs O(1) amortized rebalancing work.
// Insert and Delete report how many rebalancing steps (promotions,
// demotions and rotations) they performed.
//
// A Tree is not safe for concurrent use. If multiple goroutines access
// a tree and at least one of them modifies it, access must be
// synchronized externally.
package wavl

// The implementation follows Haeupler, Sen and Tarjan,
// "Rank-Balanced Trees", ACM TALG 11(4), 2015.
// Nodes live in an arena and refer to each other by index;
// index 0 stands for every missing child.

import (
	"errors"
	"slices"
)

var (
	// ErrDuplicateKey is returned by Insert when the key is already present.
	ErrDuplicateKey = errors.New("wavl: duplicate key")

	// ErrKeyNotFound is returned by Delete when the key is absent.
	ErrKeyNotFound = errors.New("wavl: key not found")

	// ErrOutOfRange is returned by Select for an index outside [1, Len()].
	ErrOutOfRange = errors.New("wavl: index out of range")
)

// A Tree is an ordered map from distinct int keys to values of type V.
// The zero value of a Tree is an empty tree ready to use.
type Tree[V any] struct {
	nodes []node[V] // nodes[0] is reserved for virtual
	free  []uint32
	root  uint32
	min   uint32
	max   uint32
	count int
}

// New returns an empty tree.
func New[V any]() *Tree[V] {
	return new(Tree[V])
}

// Len returns the number of entries in t.
func (t *Tree[V]) Len() int {
	return t.count
}

// Empty reports whether t has no entries.
func (t *Tree[V]) Empty() bool {
	return t.count == 0
}

// Get returns the value stored under key and reports whether it exists.
func (t *Tree[V]) Get(key int) (V, bool) {
	if x := t.find(key); x != virtual {
		return t.nodes[x].val, true
	}
	var zero V
	return zero, false
}

// Min returns the value of the smallest key in t.
// If t is empty, the second return value is false.
func (t *Tree[V]) Min() (V, bool) {
	if t.min == virtual {
		var zero V
		return zero, false
	}
	return t.nodes[t.min].val, true
}

// Max returns the value of the largest key in t.
// If t is empty, the second return value is false.
func (t *Tree[V]) Max() (V, bool) {
	if t.max == virtual {
		var zero V
		return zero, false
	}
	return t.nodes[t.max].val, true
}

// Clear deletes all entries from t.
func (t *Tree[V]) Clear() {
	*t = Tree[V]{}
}

// Clone returns a copy of t.
// Values are copied as by assignment.
func (t *Tree[V]) Clone() *Tree[V] {
	return &Tree[V]{
		nodes: slices.Clone(t.nodes),
		free:  slices.Clone(t.free),
		root:  t.root,
		min:   t.min,
		max:   t.max,
		count: t.count,
	}
}

// find returns the index of the node holding key, or virtual.
func (t *Tree[V]) find(key int) uint32 {
	x := t.root
	for x != virtual {
		n := &t.nodes[x]
		switch {
		case key < n.key:
			x = n.left
		case key > n.key:
			x = n.right
		default:
			return x
		}
	}
	return virtual
}

func assert(b bool) {
	if !b {
		panic("wavl: assertion failed")
	}
}
