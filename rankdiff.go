// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wavl

import "fmt"

// A shape names the rank differences of a node with its children,
// written (left, right): a node of rank r whose left child has rank
// r-1 and whose right child has rank r-2 is a 12 node.
//
// The shape of a node is the only thing the rebalancing code branches on.
type shape uint8

const (
	shapeOther shape = iota
	shape01
	shape10
	shape11
	shape12
	shape21
	shape02
	shape20
	shape13
	shape31
	shape22
	shape23
	shape32
)

// shapes is indexed by [left difference][right difference].
var shapes = [4][4]shape{
	{shapeOther, shape01, shape02, shapeOther},
	{shape10, shape11, shape12, shape13},
	{shape20, shape21, shape22, shape23},
	{shapeOther, shape31, shape32, shapeOther},
}

// classify returns the shape of a node whose rank exceeds
// its left child's by l and its right child's by r.
func classify(l, r int) shape {
	if l < 0 || l > 3 || r < 0 || r > 3 {
		return shapeOther
	}
	return shapes[l][r]
}

// shape returns the shape of the real node x.
func (t *Tree[V]) shape(x uint32) shape {
	assert(x != virtual)
	n := &t.nodes[x]
	return classify(n.rank-t.rank(n.left), n.rank-t.rank(n.right))
}

func (s shape) String() string {
	for l, row := range shapes {
		for r, v := range row {
			if v == s && s != shapeOther {
				return fmt.Sprintf("(%d,%d)", l, r)
			}
		}
	}
	return "other"
}
