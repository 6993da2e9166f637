// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wavl

// rotateLeft rotates the subtree rooted at node x,
// turning (x a (y b c)) into (y (x a b) c).
// Ranks and sizes are left alone.
func (t *Tree[V]) rotateLeft(x uint32) {
	// p -> (x a (y b c))
	p := t.nodes[x].parent
	y := t.nodes[x].right
	b := t.nodes[y].left

	t.nodes[x].right = b
	t.setParent(b, x)
	t.replaceChild(p, x, y)
	t.nodes[y].left = x
	t.nodes[x].parent = y
}

// rotateRight rotates the subtree rooted at node y,
// turning (y (x a b) c) into (x a (y b c)).
// Ranks and sizes are left alone.
func (t *Tree[V]) rotateRight(y uint32) {
	// p -> (y (x a b) c)
	p := t.nodes[y].parent
	x := t.nodes[y].left
	b := t.nodes[x].right

	t.nodes[y].left = b
	t.setParent(b, y)
	t.replaceChild(p, y, x)
	t.nodes[x].right = y
	t.nodes[y].parent = x
}

// singleLeft rotates z left and fixes the sizes of the two nodes
// that moved, using sizes read before the rotation.
// It returns z's former right child, now in z's place.
func (t *Tree[V]) singleLeft(z uint32) (x uint32) {
	x = t.nodes[z].right
	zs := t.nodes[z].size
	cs := t.size(t.nodes[x].right)

	t.rotateLeft(z)
	t.nodes[x].size = zs
	t.nodes[z].size = zs - 1 - cs
	return x
}

// singleRight is the mirror image of singleLeft.
func (t *Tree[V]) singleRight(z uint32) (x uint32) {
	x = t.nodes[z].left
	zs := t.nodes[z].size
	as := t.size(t.nodes[x].left)

	t.rotateRight(z)
	t.nodes[x].size = zs
	t.nodes[z].size = zs - 1 - as
	return x
}

// doubleLeft turns (z a (x (y b c) d)) into (y (z a b) (x c d))
// and fixes the sizes of the three nodes that moved.
// It returns y, now in z's place, and x.
func (t *Tree[V]) doubleLeft(z uint32) (y, x uint32) {
	x = t.nodes[z].right
	y = t.nodes[x].left
	zs, xs := t.nodes[z].size, t.nodes[x].size
	bs := t.size(t.nodes[y].left)

	t.rotateRight(x)
	t.rotateLeft(z)
	t.nodes[y].size = zs
	t.nodes[x].size = xs - 1 - bs
	t.nodes[z].size = zs - xs + bs
	return y, x
}

// doubleRight turns (z (x a (y b c)) d) into (y (x a b) (z c d))
// and fixes the sizes of the three nodes that moved.
// It returns y, now in z's place, and x.
func (t *Tree[V]) doubleRight(z uint32) (y, x uint32) {
	x = t.nodes[z].left
	y = t.nodes[x].right
	zs, xs := t.nodes[z].size, t.nodes[x].size
	cs := t.size(t.nodes[y].right)

	t.rotateLeft(x)
	t.rotateRight(z)
	t.nodes[y].size = zs
	t.nodes[x].size = xs - 1 - cs
	t.nodes[z].size = zs - xs + cs
	return y, x
}

// Insertion rotations end rebalancing. z is a 20 or 02 node.

func (t *Tree[V]) rotateLeftInsert(z uint32) {
	t.singleLeft(z)
	t.nodes[z].rank--
}

func (t *Tree[V]) rotateRightInsert(z uint32) {
	t.singleRight(z)
	t.nodes[z].rank--
}

func (t *Tree[V]) doubleRotateLeftInsert(z uint32) {
	y, x := t.doubleLeft(z)
	t.nodes[y].rank++
	t.nodes[x].rank--
	t.nodes[z].rank--
}

func (t *Tree[V]) doubleRotateRightInsert(z uint32) {
	y, x := t.doubleRight(z)
	t.nodes[y].rank++
	t.nodes[x].rank--
	t.nodes[z].rank--
}

// Deletion rotations fix a 31 or 13 node z.
// A single rotation can leave z as a 22 leaf; rotateLeftDelete and
// rotateRightDelete report that case so the caller can demote z.

func (t *Tree[V]) rotateLeftDelete(z uint32) (leaf22 bool) {
	x := t.singleLeft(z)
	t.nodes[z].rank--
	t.nodes[x].rank++
	return t.isLeaf(z) && t.shape(z) == shape22
}

func (t *Tree[V]) rotateRightDelete(z uint32) (leaf22 bool) {
	x := t.singleRight(z)
	t.nodes[z].rank--
	t.nodes[x].rank++
	return t.isLeaf(z) && t.shape(z) == shape22
}

func (t *Tree[V]) doubleRotateLeftDelete(z uint32) {
	y, x := t.doubleLeft(z)
	t.nodes[y].rank += 2
	t.nodes[x].rank--
	t.nodes[z].rank -= 2
}

func (t *Tree[V]) doubleRotateRightDelete(z uint32) {
	y, x := t.doubleRight(z)
	t.nodes[y].rank += 2
	t.nodes[x].rank--
	t.nodes[z].rank -= 2
}
