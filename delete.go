// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wavl

// Delete removes key from t.
// It returns the number of rebalancing steps performed:
// one per promotion, demotion and single rotation, two per double rotation.
// If key is absent, Delete returns ErrKeyNotFound and leaves t unchanged.
func (t *Tree[V]) Delete(key int) (int, error) {
	x := t.find(key)
	if x == virtual {
		return 0, ErrKeyNotFound
	}

	if x == t.min {
		t.min = t.successor(x)
	}
	if x == t.max {
		t.max = t.predecessor(x)
	}

	steps := 0
	n := t.nodes[x]
	p := n.parent
	switch {
	case n.left == virtual || n.right == virtual:
		// A leaf gives way to a missing child, a unary node to its only child.
		child := n.left
		if child == virtual {
			child = n.right
		}
		t.replaceChild(p, x, child)
		t.shrink(p)
	default:
		onRight := p != virtual && t.nodes[p].right == x
		steps += t.substitutePredecessor(x)
		// Rebalance from whatever holds x's former position now.
		switch {
		case p == virtual:
			p = t.root
		case onRight:
			p = t.nodes[p].right
		default:
			p = t.nodes[p].left
		}
	}
	if p != virtual {
		steps += t.rebalanceDelete(p)
	}

	t.release(x)
	t.count--
	return steps, nil
}

// substitutePredecessor unlinks the binary node x and moves its
// in-order predecessor into its place, then rebalances below.
// It returns the number of rebalancing steps performed.
func (t *Tree[V]) substitutePredecessor(x uint32) (steps int) {
	n := t.nodes[x]
	pred := t.maxNode(n.left)
	from := t.nodes[pred].parent

	if pred != n.left {
		// pred is a right child with no right child of its own.
		pl := t.nodes[pred].left
		t.nodes[from].right = pl
		t.setParent(pl, from)
		t.nodes[pred].left = n.left
		t.nodes[n.left].parent = pred
	} else {
		from = pred
	}
	t.replaceChild(n.parent, x, pred)
	t.nodes[pred].right = n.right
	t.nodes[n.right].parent = pred
	t.nodes[pred].rank = n.rank
	t.nodes[pred].size = n.size

	steps += t.repairRanks(pred)
	t.shrink(from)
	steps += t.rebalanceDelete(from)
	return steps
}

// repairRanks recomputes ranks down the left spine starting at x,
// stopping above the first 22 node that is not a leaf.
// Each spine node gets rank 1 + max(rank of its children),
// assigned from the bottom up.
// It returns the number of ranks that changed.
func (t *Tree[V]) repairRanks(x uint32) (steps int) {
	var spine []uint32
	below := -1
	for x != virtual {
		if t.shape(x) == shape22 && !t.isLeaf(x) {
			below = t.nodes[x].rank
			break
		}
		spine = append(spine, x)
		x = t.nodes[x].left
	}
	for i := len(spine) - 1; i >= 0; i-- {
		n := &t.nodes[spine[i]]
		r := max(t.rank(n.right), below) + 1
		if r != n.rank {
			n.rank = r
			steps++
		}
		below = r
	}
	return steps
}

// A frame is one pending visit of rebalanceDelete.
type frame struct {
	x     uint32
	stage uint8
}

const (
	stageDemote uint8 = iota
	stageLeftHeavy
	stageRightHeavy
	stageAscend
)

// rebalanceDelete restores the rank rule after a child of x
// has lost rank or been removed.
//
// Every visited node passes through all stages in order. A demotion
// visits the parent immediately, and every node then visits its
// parent again on the way out, so ancestors may be examined more
// than once. Ancestors that are already balanced match no case and
// contribute no steps.
//
// It returns the number of rebalancing steps performed.
func (t *Tree[V]) rebalanceDelete(x uint32) (steps int) {
	stack := []frame{{x: x}}
	push := func(x uint32) {
		stack = append(stack, frame{x: x})
	}
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		x := f.x
		p := t.nodes[x].parent
		switch f.stage {
		case stageDemote:
			f.stage = stageLeftHeavy
			s := t.shape(x)
			if s == shape22 && t.isLeaf(x) || s == shape23 || s == shape32 {
				t.nodes[x].rank--
				steps++
				if t.isLeaf(x) {
					t.nodes[x].rank = 0
					steps++
				}
				if p != virtual {
					push(p)
				}
			}

		case stageLeftHeavy:
			f.stage = stageRightHeavy
			if t.shape(x) != shape31 {
				break
			}
			y := t.nodes[x].right
			switch t.shape(y) {
			case shape22:
				t.nodes[y].rank--
				t.nodes[x].rank--
				steps += 2
				if p != virtual {
					push(p)
				}
			case shape11, shape21:
				steps++
				if t.rotateLeftDelete(x) {
					push(x)
				}
			case shape12:
				t.doubleRotateLeftDelete(x)
				steps += 2
			}

		case stageRightHeavy:
			f.stage = stageAscend
			if t.shape(x) != shape13 {
				break
			}
			y := t.nodes[x].left
			switch t.shape(y) {
			case shape22:
				t.nodes[x].rank--
				t.nodes[y].rank--
				steps += 2
				if p != virtual {
					push(p)
				}
			case shape11, shape12:
				steps++
				if t.rotateRightDelete(x) {
					push(x)
				}
			case shape21:
				t.doubleRotateRightDelete(x)
				steps += 2
			}

		default:
			if p == virtual {
				stack = stack[:len(stack)-1]
			} else {
				*f = frame{x: p}
			}
		}
	}
	return steps
}
