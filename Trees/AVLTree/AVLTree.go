// Package AVLTree implements a height-balanced binary search tree.
package AVLTree

import (
	"fmt"

	"github.com/g-m-twostay/treebench/Trees"
	"github.com/g-m-twostay/treebench/Trees/internal/walk"
	"golang.org/x/exp/constraints"
)

// AVLTree keeps the heights of the two subtrees of every node within one of
// each other, so the height D of the tree is below 1.44*log2(n+2). Each node
// caches its height; after every insertion or removal the heights are
// recomputed on the way back up and at most one single or double rotation
// per level restores the balance.
// The zero value is an empty tree ready to use.
type AVLTree[T constraints.Ordered] struct {
	root  *node[T]
	stats Trees.Stats
}

// New returns an empty AVLTree.
func New[T constraints.Ordered]() *AVLTree[T] {
	return new(AVLTree[T])
}

// rotateLeft performs a left rotation on the node held by slot n, which is
// passed by reference in order to modify its content.
// Time: O(1); Space: O(1)
func (u *AVLTree[T]) rotateLeft(n **node[T]) {
	x := *n
	y := x.r
	x.r = y.l
	y.l = x
	x.update()
	y.update()
	*n = y
	u.stats.Rotations++
}

// rotateRight performs a right rotation on the node held by slot n.
// Time: O(1); Space: O(1)
func (u *AVLTree[T]) rotateRight(n **node[T]) {
	y := *n
	x := y.l
	y.l = x.r
	x.r = y
	y.update()
	x.update()
	*n = x
	u.stats.Rotations++
}

// rebalance recomputes the height of the node at slot n and applies the
// first of the LL, RR, LR, RL cases that matches.
func (u *AVLTree[T]) rebalance(n **node[T]) {
	cur := *n
	cur.update()
	switch b := cur.bf(); {
	case b > 1 && cur.l.bf() >= 0:
		u.rotateRight(n)
	case b < -1 && cur.r.bf() <= 0:
		u.rotateLeft(n)
	case b > 1:
		u.rotateLeft(&cur.l)
		u.rotateRight(n)
	case b < -1:
		u.rotateRight(&cur.r)
		u.rotateLeft(n)
	}
}

// insert v into the subtree at curPtr recursively. Returns false if v is
// already in the subtree, in which case nothing changes.
func (u *AVLTree[T]) insert(curPtr **node[T], v T) bool {
	cur := *curPtr
	if cur == nil {
		*curPtr = &node[T]{v: v, h: 1}
		return true
	}
	inserted := false
	if v < cur.v {
		inserted = u.insert(&cur.l, v)
	} else if v == cur.v {
		return false
	} else {
		inserted = u.insert(&cur.r, v)
	}
	if inserted {
		u.rebalance(curPtr)
	}
	return inserted
}

// remove v from the subtree at curPtr recursively. A node with two children
// takes the key of its in-order successor, which is then removed from the
// right subtree instead.
func (u *AVLTree[T]) remove(curPtr **node[T], v T) bool {
	cur := *curPtr
	if cur == nil {
		return false
	}
	deleted := false
	if v < cur.v {
		deleted = u.remove(&cur.l, v)
	} else if v > cur.v {
		deleted = u.remove(&cur.r, v)
	} else {
		deleted = true
		switch {
		case cur.l == nil:
			*curPtr = cur.r
		case cur.r == nil:
			*curPtr = cur.l
		default:
			s := cur.r
			for s.l != nil {
				s = s.l
			}
			cur.v = s.v
			u.remove(&cur.r, s.v)
		}
		if *curPtr != cur {
			cur.l, cur.r = nil, nil
			return true
		}
	}
	if deleted {
		u.rebalance(curPtr)
	}
	return deleted
}

// Put [Trees.Tree.Put]. Recursive.
// Time: O(D)
func (u *AVLTree[T]) Put(v T) error {
	if !u.insert(&u.root, v) {
		return Trees.ErrDuplicateKey
	}
	u.stats.Inserts++
	return nil
}

// Delete [Trees.Tree.Delete]. Recursive.
// Time: O(D)
func (u *AVLTree[T]) Delete(v T) error {
	if !u.remove(&u.root, v) {
		return Trees.ErrKeyNotFound
	}
	u.stats.Removes++
	return nil
}

// Find [Trees.Tree.Find]
// Time: O(D)
func (u *AVLTree[T]) Find(v T) error {
	u.stats.Searches++
	if !u.Has(v) {
		return Trees.ErrKeyNotFound
	}
	return nil
}

// Insert [Trees.Tree.Insert]. Time: O(n) because of the node count in the Result.
func (u *AVLTree[T]) Insert(v T) Trees.Result {
	return Trees.Outcome(u, u.Put(v), Trees.MsgInserted)
}

// Remove [Trees.Tree.Remove]. Time: O(n) because of the node count in the Result.
func (u *AVLTree[T]) Remove(v T) Trees.Result {
	return Trees.Outcome(u, u.Delete(v), Trees.MsgRemoved)
}

// Search [Trees.Tree.Search]. Time: O(n) because of the node count in the Result.
func (u *AVLTree[T]) Search(v T) Trees.Result {
	return Trees.Outcome(u, u.Find(v), Trees.MsgFound)
}

// Clear [Trees.Tree.Clear]
// Time: O(1)
func (u *AVLTree[T]) Clear() Trees.Result {
	u.root = nil
	u.ResetStats()
	return Trees.Outcome(u, nil, Trees.MsgCleared)
}

// Has [Trees.Tree.Has]
// Time: O(D); Space: O(1)
func (u *AVLTree[T]) Has(v T) bool {
	for cur := u.root; cur != nil; {
		if v < cur.v {
			cur = cur.l
		} else if v == cur.v {
			return true
		} else {
			cur = cur.r
		}
	}
	return false
}

// Minimum [Trees.Tree.Minimum]
// Time: O(D); Space: O(1)
func (u *AVLTree[T]) Minimum() (T, bool) {
	cur := u.root
	if cur == nil {
		return *new(T), false
	}
	for cur.l != nil {
		cur = cur.l
	}
	return cur.v, true
}

// Maximum [Trees.Tree.Maximum]
// Time: O(D); Space: O(1)
func (u *AVLTree[T]) Maximum() (T, bool) {
	cur := u.root
	if cur == nil {
		return *new(T), false
	}
	for cur.r != nil {
		cur = cur.r
	}
	return cur.v, true
}

// Traverse [Trees.Tree.Traverse]
func (u *AVLTree[T]) Traverse(o Trees.Order) func() (T, bool) {
	u.stats.Traversals++
	return walk.Binary(u.root, o, kids[T], func(n *node[T]) T { return n.v })
}

// Height [Trees.Tree.Height], read from the root's cached height.
// Time: O(1)
func (u *AVLTree[T]) Height() int {
	return height(u.root)
}

// NodeCount [Trees.Tree.NodeCount]
// Time: O(n)
func (u *AVLTree[T]) NodeCount() int {
	return walk.Count(u.root, kids[T])
}

func (u *AVLTree[T]) IsEmpty() bool {
	return u.root == nil
}

// Structure [Trees.Tree.Structure]. Each line reads "key (h=height, bf=balance factor)".
func (u *AVLTree[T]) Structure() fmt.Stringer {
	return Trees.Lazy(func() string {
		return walk.Draw(u.root, kids[T], func(n *node[T]) string {
			return fmt.Sprintf("%v (h=%d, bf=%d)", n.v, n.h, n.bf())
		})
	})
}

func (u *AVLTree[T]) Stats() Trees.Stats {
	return u.stats
}

func (u *AVLTree[T]) ResetStats() {
	u.stats = Trees.Stats{}
}

func (u *AVLTree[T]) Kind() Trees.Kind {
	return Trees.AVL
}

// corrupt checks the subtree at n against the open key range (lo, hi) and
// returns its real height, or -1 if something is off.
func (u *AVLTree[T]) corrupt(n *node[T], lo, hi *T) int {
	if n == nil {
		return 0
	}
	if (lo != nil && n.v <= *lo) || (hi != nil && n.v >= *hi) {
		return -1
	}
	lh, rh := u.corrupt(n.l, lo, &n.v), u.corrupt(n.r, &n.v, hi)
	if lh < 0 || rh < 0 || lh-rh > 1 || rh-lh > 1 || n.h != 1+max(lh, rh) {
		return -1
	}
	return n.h
}

// Corrupt [Trees.Tree.Corrupt]. Checks key order, cached heights and
// balance factors.
// Time: O(n)
func (u *AVLTree[T]) Corrupt() bool {
	return u.corrupt(u.root, nil, nil) < 0
}
