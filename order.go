// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wavl

import (
	"iter"

	"github.com/jba/wavl/rng"
)

// minNode returns the node in x's subtree with the smallest key.
// x must not be virtual.
func (t *Tree[V]) minNode(x uint32) uint32 {
	for t.nodes[x].left != virtual {
		x = t.nodes[x].left
	}
	return x
}

// maxNode returns the node in x's subtree with the largest key.
// x must not be virtual.
func (t *Tree[V]) maxNode(x uint32) uint32 {
	for t.nodes[x].right != virtual {
		x = t.nodes[x].right
	}
	return x
}

// successor returns the node following x in key order, or virtual.
func (t *Tree[V]) successor(x uint32) uint32 {
	if r := t.nodes[x].right; r != virtual {
		return t.minNode(r)
	}
	p := t.nodes[x].parent
	for p != virtual && t.nodes[p].right == x {
		x, p = p, t.nodes[p].parent
	}
	return p
}

// predecessor returns the node preceding x in key order, or virtual.
func (t *Tree[V]) predecessor(x uint32) uint32 {
	if l := t.nodes[x].left; l != virtual {
		return t.maxNode(l)
	}
	p := t.nodes[x].parent
	for p != virtual && t.nodes[p].left == x {
		x, p = p, t.nodes[p].parent
	}
	return p
}

// findGE returns the node with the least key k such that k ≥ key,
// or virtual, and reports whether k == key.
func (t *Tree[V]) findGE(key int) (x uint32, eq bool) {
	ge := virtual
	for y := t.root; y != virtual; {
		n := &t.nodes[y]
		switch {
		case key < n.key:
			ge = y
			y = n.left
		case key > n.key:
			y = n.right
		default:
			return y, true
		}
	}
	return ge, false
}

// findLE returns the node with the greatest key k such that k ≤ key,
// or virtual, and reports whether k == key.
func (t *Tree[V]) findLE(key int) (x uint32, eq bool) {
	le := virtual
	for y := t.root; y != virtual; {
		n := &t.nodes[y]
		switch {
		case key < n.key:
			y = n.left
		case key > n.key:
			le = y
			y = n.right
		default:
			return y, true
		}
	}
	return le, false
}

// Select returns the value with the i'th smallest key, counting from 1.
// It returns ErrOutOfRange unless 1 ≤ i ≤ t.Len().
func (t *Tree[V]) Select(i int) (V, error) {
	if i < 1 || i > t.count {
		var zero V
		return zero, ErrOutOfRange
	}
	return t.nodes[t.selectIndex(i-1)].val, nil
}

// selectIndex returns the node with exactly i smaller keys in the tree.
// i must be in [0, t.count).
func (t *Tree[V]) selectIndex(i int) uint32 {
	x := t.root
	for {
		n := &t.nodes[x]
		ls := t.size(n.left)
		switch {
		case i < ls:
			x = n.left
		case i > ls:
			i -= ls + 1
			x = n.right
		default:
			return x
		}
	}
}

// IndexOf returns the position of key in ascending key order, counting from 1,
// so that t.Select(i) returns key's value.
// If key is absent, the second return value is false.
func (t *Tree[V]) IndexOf(key int) (int, bool) {
	i := 0
	for x := t.root; x != virtual; {
		n := &t.nodes[x]
		switch {
		case key < n.key:
			x = n.left
		case key > n.key:
			i += t.size(n.left) + 1
			x = n.right
		default:
			return i + t.size(n.left) + 1, true
		}
	}
	return 0, false
}

// Keys returns the keys of t in ascending order.
// The result is empty but not nil for an empty tree.
func (t *Tree[V]) Keys() []int {
	keys := make([]int, 0, t.count)
	x := t.min
	for range t.count {
		keys = append(keys, t.nodes[x].key)
		x = t.successor(x)
	}
	return keys
}

// Values returns the values of t in ascending key order.
// The result is empty but not nil for an empty tree.
func (t *Tree[V]) Values() []V {
	vals := make([]V, 0, t.count)
	x := t.min
	for range t.count {
		vals = append(vals, t.nodes[x].val)
		x = t.successor(x)
	}
	return vals
}

// All returns an iterator over t from smallest to largest key.
// t must not be modified during the iteration.
func (t *Tree[V]) All() iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		for x := t.min; x != virtual; x = t.successor(x) {
			if !yield(t.nodes[x].key, t.nodes[x].val) {
				return
			}
		}
	}
}

// Backward returns an iterator over t from largest to smallest key.
// t must not be modified during the iteration.
func (t *Tree[V]) Backward() iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		for x := t.max; x != virtual; x = t.predecessor(x) {
			if !yield(t.nodes[x].key, t.nodes[x].val) {
				return
			}
		}
	}
}

// Scan returns an iterator over the entries of t whose keys lie in r,
// in ascending key order, or descending if r is backwards.
// t must not be modified during the iteration.
func (t *Tree[V]) Scan(r rng.Range) iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		if r.IsBackwards() {
			for x := t.scanHigh(r); x != virtual && r.Contains(t.nodes[x].key); x = t.predecessor(x) {
				if !yield(t.nodes[x].key, t.nodes[x].val) {
					return
				}
			}
			return
		}
		for x := t.scanLow(r); x != virtual && r.Contains(t.nodes[x].key); x = t.successor(x) {
			if !yield(t.nodes[x].key, t.nodes[x].val) {
				return
			}
		}
	}
}

// scanLow returns the node with the smallest key not below r's low bound.
func (t *Tree[V]) scanLow(r rng.Range) uint32 {
	lo, inf, incl := r.Low()
	if inf {
		return t.min
	}
	x, eq := t.findGE(lo)
	if eq && !incl {
		x = t.successor(x)
	}
	return x
}

// scanHigh returns the node with the largest key not above r's high bound.
func (t *Tree[V]) scanHigh(r rng.Range) uint32 {
	hi, inf, incl := r.High()
	if inf {
		return t.max
	}
	x, eq := t.findLE(hi)
	if eq && !incl {
		x = t.predecessor(x)
	}
	return x
}
