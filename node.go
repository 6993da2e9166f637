// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wavl

// AbsentKey is the key reported by a Node that is not real.
const AbsentKey = -1

// virtual is the index of every missing child and of the missing
// parent of the root. It has rank -1 and size 0.
const virtual uint32 = 0

// A node is an entry in the tree.
type node[V any] struct {
	key   int
	val   V
	rank  int
	size  int // real nodes in this subtree, including this one

	parent, left, right uint32
}

func (t *Tree[V]) rank(x uint32) int {
	if x == virtual {
		return -1
	}
	return t.nodes[x].rank
}

func (t *Tree[V]) size(x uint32) int {
	if x == virtual {
		return 0
	}
	return t.nodes[x].size
}

// setParent records p as the parent of x.
// Missing children have no parent to record.
func (t *Tree[V]) setParent(x, p uint32) {
	if x != virtual {
		t.nodes[x].parent = p
	}
}

func (t *Tree[V]) isLeaf(x uint32) bool {
	n := &t.nodes[x]
	return n.left == virtual && n.right == virtual
}

// replaceChild puts y where x hangs under p.
// If p is virtual, x was the root and y becomes the root.
func (t *Tree[V]) replaceChild(p, x, y uint32) {
	switch {
	case p == virtual:
		t.root = y
	case t.nodes[p].left == x:
		t.nodes[p].left = y
	case t.nodes[p].right == x:
		t.nodes[p].right = y
	default:
		panic("wavl: corrupt tree")
	}
	t.setParent(y, p)
}

// alloc returns the index of a new leaf holding key and val.
func (t *Tree[V]) alloc(key int, val V, parent uint32) uint32 {
	if len(t.nodes) == 0 {
		// Index 0 is reserved.
		t.nodes = append(t.nodes, node[V]{})
	}
	n := node[V]{key: key, val: val, size: 1, parent: parent}
	if k := len(t.free); k > 0 {
		x := t.free[k-1]
		t.free = t.free[:k-1]
		t.nodes[x] = n
		return x
	}
	t.nodes = append(t.nodes, n)
	return uint32(len(t.nodes) - 1)
}

// release returns x to the free list.
func (t *Tree[V]) release(x uint32) {
	assert(x != virtual)
	t.nodes[x] = node[V]{}
	t.free = append(t.free, x)
}

// grow adds one to the size of x and of every ancestor of x.
func (t *Tree[V]) grow(x uint32) {
	for ; x != virtual; x = t.nodes[x].parent {
		t.nodes[x].size++
	}
}

// shrink subtracts one from the size of x and of every ancestor of x.
func (t *Tree[V]) shrink(x uint32) {
	for ; x != virtual; x = t.nodes[x].parent {
		t.nodes[x].size--
	}
}

// A Node is a read-only view of an entry in a Tree.
// It is meant for inspecting the shape of a tree;
// it remains valid only until the tree is next modified.
type Node[V any] struct {
	t *Tree[V]
	x uint32
}

// Root returns the root of t.
// If t is empty, the second return value is false.
func (t *Tree[V]) Root() (Node[V], bool) {
	return t.view(t.root)
}

// Find returns the node holding key.
// If there is none, the second return value is false.
func (t *Tree[V]) Find(key int) (Node[V], bool) {
	return t.view(t.find(key))
}

func (t *Tree[V]) view(x uint32) (Node[V], bool) {
	if x == virtual {
		return Node[V]{}, false
	}
	return Node[V]{t, x}, true
}

// IsReal reports whether n holds an entry.
func (n Node[V]) IsReal() bool {
	return n.t != nil && n.x != virtual
}

// Key returns n's key, or AbsentKey if n is not real.
func (n Node[V]) Key() int {
	if !n.IsReal() {
		return AbsentKey
	}
	return n.t.nodes[n.x].key
}

// Value returns n's value, or the zero value if n is not real.
func (n Node[V]) Value() V {
	if !n.IsReal() {
		var zero V
		return zero
	}
	return n.t.nodes[n.x].val
}

// Rank returns n's rank. A node that is not real has rank -1.
func (n Node[V]) Rank() int {
	if !n.IsReal() {
		return -1
	}
	return n.t.nodes[n.x].rank
}

// SubtreeSize returns the number of entries in the subtree rooted at n.
func (n Node[V]) SubtreeSize() int {
	if !n.IsReal() {
		return 0
	}
	return n.t.nodes[n.x].size
}

// Left returns n's left child, if it has one.
func (n Node[V]) Left() (Node[V], bool) {
	if !n.IsReal() {
		return Node[V]{}, false
	}
	return n.t.view(n.t.nodes[n.x].left)
}

// Right returns n's right child, if it has one.
func (n Node[V]) Right() (Node[V], bool) {
	if !n.IsReal() {
		return Node[V]{}, false
	}
	return n.t.view(n.t.nodes[n.x].right)
}

// Parent returns n's parent. The root has none.
func (n Node[V]) Parent() (Node[V], bool) {
	if !n.IsReal() {
		return Node[V]{}, false
	}
	return n.t.view(n.t.nodes[n.x].parent)
}

// Next returns the node with the next larger key, if there is one.
func (n Node[V]) Next() (Node[V], bool) {
	if !n.IsReal() {
		return Node[V]{}, false
	}
	return n.t.view(n.t.successor(n.x))
}

// Prev returns the node with the next smaller key, if there is one.
func (n Node[V]) Prev() (Node[V], bool) {
	if !n.IsReal() {
		return Node[V]{}, false
	}
	return n.t.view(n.t.predecessor(n.x))
}
