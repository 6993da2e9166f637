// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package invariant verifies the structural rules of a wavl.Tree
// through its read-only inspection API.
package invariant

import (
	"errors"
	"fmt"
	"math"

	"github.com/jba/wavl"
)

var (
	// ErrOrder reports keys that are not in binary-search-tree order.
	ErrOrder = errors.New("invariant: keys out of order")

	// ErrRank reports a rank difference other than 1 or 2, or a leaf whose rank is not 0.
	ErrRank = errors.New("invariant: rank rule violated")

	// ErrSize reports a subtree size that does not match its children.
	ErrSize = errors.New("invariant: subtree size mismatch")

	// ErrCount reports a Len that disagrees with the tree's contents.
	ErrCount = errors.New("invariant: element count mismatch")

	// ErrBounds reports a cached minimum or maximum that is not the extreme key.
	ErrBounds = errors.New("invariant: min or max mismatch")

	// ErrHeight reports a tree taller than its rank allows.
	ErrHeight = errors.New("invariant: height bound exceeded")
)

// Check verifies every rule of t and returns the first violation found,
// wrapping one of the package's sentinel errors.
func Check[V any](t *wavl.Tree[V]) error {
	root, ok := t.Root()
	if !ok {
		if t.Len() != 0 {
			return fmt.Errorf("%w: empty tree has Len %d", ErrCount, t.Len())
		}
		if _, ok := t.Min(); ok {
			return fmt.Errorf("%w: empty tree has a minimum", ErrBounds)
		}
		if _, ok := t.Max(); ok {
			return fmt.Errorf("%w: empty tree has a maximum", ErrBounds)
		}
		return nil
	}
	if p, ok := root.Parent(); ok {
		return fmt.Errorf("%w: root %d has parent %d", ErrOrder, root.Key(), p.Key())
	}
	lo, hi, err := checkNode(root)
	if err != nil {
		return err
	}
	if n := root.SubtreeSize(); n != t.Len() {
		return fmt.Errorf("%w: Len is %d, root subtree size is %d", ErrCount, t.Len(), n)
	}
	if err := checkBounds(t, lo, hi); err != nil {
		return err
	}
	h := Height(t)
	if h > root.Rank() {
		return fmt.Errorf("%w: height %d exceeds root rank %d", ErrHeight, h, root.Rank())
	}
	if b := RankBound(t.Len()); float64(root.Rank()) > b {
		return fmt.Errorf("%w: root rank %d exceeds %.2f for %d keys", ErrHeight, root.Rank(), b, t.Len())
	}
	return nil
}

// CheckInsertOnly is Check for a tree that has never seen a deletion.
// Such a tree is also an AVL tree, so its height obeys the AVL bound.
func CheckInsertOnly[V any](t *wavl.Tree[V]) error {
	if err := Check(t); err != nil {
		return err
	}
	h := Height(t)
	if b := AVLBound(t.Len()); float64(h) > b {
		return fmt.Errorf("%w: height %d exceeds AVL bound %.2f for %d keys", ErrHeight, h, b, t.Len())
	}
	return nil
}

// checkNode checks the subtree rooted at the real node x
// and returns its smallest and largest keys.
func checkNode[V any](x wavl.Node[V]) (lo, hi int, err error) {
	lo, hi = x.Key(), x.Key()
	size := 1
	l, hasL := x.Left()
	r, hasR := x.Right()

	if !hasL && !hasR && x.Rank() != 0 {
		return 0, 0, fmt.Errorf("%w: leaf %d has rank %d", ErrRank, x.Key(), x.Rank())
	}
	for _, c := range []wavl.Node[V]{l, r} {
		if d := x.Rank() - c.Rank(); d != 1 && d != 2 {
			return 0, 0, fmt.Errorf("%w: node %d (rank %d) has child %d (rank %d)",
				ErrRank, x.Key(), x.Rank(), c.Key(), c.Rank())
		}
	}

	if hasL {
		if p, _ := l.Parent(); p.Key() != x.Key() {
			return 0, 0, fmt.Errorf("%w: left child %d of %d has parent %d", ErrOrder, l.Key(), x.Key(), p.Key())
		}
		llo, lhi, err := checkNode(l)
		if err != nil {
			return 0, 0, err
		}
		if lhi >= x.Key() {
			return 0, 0, fmt.Errorf("%w: key %d in left subtree of %d", ErrOrder, lhi, x.Key())
		}
		lo = llo
		size += l.SubtreeSize()
	}
	if hasR {
		if p, _ := r.Parent(); p.Key() != x.Key() {
			return 0, 0, fmt.Errorf("%w: right child %d of %d has parent %d", ErrOrder, r.Key(), x.Key(), p.Key())
		}
		rlo, rhi, err := checkNode(r)
		if err != nil {
			return 0, 0, err
		}
		if rlo <= x.Key() {
			return 0, 0, fmt.Errorf("%w: key %d in right subtree of %d", ErrOrder, rlo, x.Key())
		}
		hi = rhi
		size += r.SubtreeSize()
	}

	if x.SubtreeSize() != size {
		return 0, 0, fmt.Errorf("%w: node %d has size %d, want %d", ErrSize, x.Key(), x.SubtreeSize(), size)
	}
	return lo, hi, nil
}

// checkBounds checks that the ascending and descending walks,
// which start at the cached extremes, begin at lo and hi
// and visit exactly Len keys.
func checkBounds[V any](t *wavl.Tree[V], lo, hi int) error {
	n := 0
	for k := range t.All() {
		if n == 0 && k != lo {
			return fmt.Errorf("%w: ascending walk starts at %d, smallest key is %d", ErrBounds, k, lo)
		}
		n++
	}
	if n != t.Len() {
		return fmt.Errorf("%w: ascending walk visits %d keys, Len is %d", ErrCount, n, t.Len())
	}
	n = 0
	for k := range t.Backward() {
		if n == 0 && k != hi {
			return fmt.Errorf("%w: descending walk starts at %d, largest key is %d", ErrBounds, k, hi)
		}
		n++
	}
	if n != t.Len() {
		return fmt.Errorf("%w: descending walk visits %d keys, Len is %d", ErrCount, n, t.Len())
	}
	return nil
}

// Height returns the number of edges on the longest path from the root
// of t to a leaf, or -1 if t is empty.
func Height[V any](t *wavl.Tree[V]) int {
	root, ok := t.Root()
	if !ok {
		return -1
	}
	return height(root)
}

func height[V any](x wavl.Node[V]) int {
	h := 0
	if l, ok := x.Left(); ok {
		h = max(h, height(l)+1)
	}
	if r, ok := x.Right(); ok {
		h = max(h, height(r)+1)
	}
	return h
}

// RankBound returns the largest root rank a tree of n keys may have.
func RankBound(n int) float64 {
	return 2 * math.Log2(float64(n)+1)
}

// AVLBound returns the largest height a tree of n keys
// built by insertions alone may have.
func AVLBound(n int) float64 {
	return 1.4405 * math.Log2(float64(n)+2)
}
