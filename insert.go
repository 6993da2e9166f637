// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wavl

// Insert adds key with value val to t.
// It returns the number of rebalancing steps performed:
// one per promotion and per single rotation, two per double rotation.
// If key is already present, Insert returns ErrDuplicateKey
// and leaves t unchanged.
func (t *Tree[V]) Insert(key int, val V) (int, error) {
	var parent uint32
	left := false
	for x := t.root; x != virtual; {
		n := &t.nodes[x]
		parent = x
		switch {
		case key < n.key:
			x, left = n.left, true
		case key > n.key:
			x, left = n.right, false
		default:
			return 0, ErrDuplicateKey
		}
	}

	x := t.alloc(key, val, parent)
	switch {
	case parent == virtual:
		t.root = x
	case left:
		t.nodes[parent].left = x
	default:
		t.nodes[parent].right = x
	}
	t.grow(parent)
	t.count++

	if t.min == virtual || key < t.nodes[t.min].key {
		t.min = x
	}
	if t.max == virtual || key > t.nodes[t.max].key {
		t.max = x
	}

	if parent == virtual {
		return 0, nil
	}
	return t.rebalanceInsert(parent), nil
}

// rebalanceInsert restores the rank rule after a child of x
// has gained rank, walking up until the tree is balanced.
func (t *Tree[V]) rebalanceInsert(x uint32) (steps int) {
	for {
		switch t.shape(x) {
		case shape01, shape10:
			t.nodes[x].rank++
			steps++
			p := t.nodes[x].parent
			if p == virtual {
				return steps
			}
			x = p
		case shape02:
			switch t.shape(t.nodes[x].left) {
			case shape12:
				t.rotateRightInsert(x)
				steps++
			case shape21:
				t.doubleRotateRightInsert(x)
				steps += 2
			}
			return steps
		case shape20:
			switch t.shape(t.nodes[x].right) {
			case shape21:
				t.rotateLeftInsert(x)
				steps++
			case shape12:
				t.doubleRotateLeftInsert(x)
				steps += 2
			}
			return steps
		default:
			return steps
		}
	}
}
