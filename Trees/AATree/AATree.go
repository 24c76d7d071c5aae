// Package AATree implements Arne Andersson's level-balanced binary search tree.
package AATree

import (
	"fmt"

	"github.com/g-m-twostay/treebench/Trees"
	"github.com/g-m-twostay/treebench/Trees/internal/walk"
	"golang.org/x/exp/constraints"
)

// A node in the AATree. lv is its level, leaves are on level 1.
type node[T constraints.Ordered] struct {
	v    T
	l, r *node[T]
	lv   int
}

func kids[T constraints.Ordered](n *node[T]) (*node[T], *node[T]) {
	return n.l, n.r
}

func level[T constraints.Ordered](n *node[T]) int {
	if n == nil {
		return 0
	}
	return n.lv
}

// AATree is a binary search tree where every node carries a level:
//   - a leaf is on level 1;
//   - a left child is strictly below its parent;
//   - a right child is on its parent's level at most (a horizontal link);
//   - a right grandchild is strictly below its grandparent, so there are
//     never two horizontal links in a row.
//
// Insertion repairs the levels with skew and split on the way back up;
// removal additionally lowers levels with decreaseLevel. The height D of the
// tree is below 2*log2(n+1).
// The zero value is an empty tree ready to use.
type AATree[T constraints.Ordered] struct {
	root  *node[T]
	stats Trees.Stats
}

// New returns an empty AATree.
func New[T constraints.Ordered]() *AATree[T] {
	return new(AATree[T])
}

// skew removes a left horizontal link at slot n with a right rotation.
// Every application to a node counts as a skew, the rotation it may perform
// counts as a rotation.
// Time: O(1)
func (u *AATree[T]) skew(n **node[T]) {
	cur := *n
	if cur == nil {
		return
	}
	u.stats.Skews++
	if cur.l == nil || cur.l.lv != cur.lv {
		return
	}
	l := cur.l
	cur.l = l.r
	l.r = cur
	*n = l
	u.stats.Rotations++
}

// split removes two consecutive right horizontal links at slot n with a
// left rotation, promoting the middle node one level up. Counted like skew.
// Time: O(1)
func (u *AATree[T]) split(n **node[T]) {
	cur := *n
	if cur == nil {
		return
	}
	u.stats.Splits++
	if cur.r == nil || cur.r.r == nil || cur.r.r.lv != cur.lv {
		return
	}
	r := cur.r
	cur.r = r.l
	r.l = cur
	r.lv++
	*n = r
	u.stats.Rotations++
}

// decreaseLevel lowers n to 1+min(level(l), level(r)) if it's above that,
// taking a horizontal right child down with it.
func decreaseLevel[T constraints.Ordered](n *node[T]) {
	if want := 1 + min(level(n.l), level(n.r)); want < n.lv {
		n.lv = want
		if n.r != nil && n.r.lv > want {
			n.r.lv = want
		}
	}
}

func (u *AATree[T]) insert(curPtr **node[T], v T) bool {
	cur := *curPtr
	if cur == nil {
		*curPtr = &node[T]{v: v, lv: 1}
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
		u.skew(curPtr)
		u.split(curPtr)
	}
	return inserted
}

func (u *AATree[T]) remove(curPtr **node[T], v T) bool {
	cur := *curPtr
	if cur == nil {
		return false
	}
	if v < cur.v {
		if !u.remove(&cur.l, v) {
			return false
		}
	} else if v > cur.v {
		if !u.remove(&cur.r, v) {
			return false
		}
	} else if cur.l == nil || cur.r == nil {
		//a node missing a child is on level 1, and so is its only child if any.
		if cur.l == nil {
			*curPtr = cur.r
		} else {
			*curPtr = cur.l
		}
		cur.l, cur.r = nil, nil
		return true
	} else {
		s := cur.r
		for s.l != nil {
			s = s.l
		}
		cur.v = s.v
		u.remove(&cur.r, s.v)
	}
	u.fixup(curPtr)
	return true
}

// fixup restores the levels at slot n after a removal below it.
func (u *AATree[T]) fixup(n **node[T]) {
	decreaseLevel(*n)
	u.skew(n)
	if cur := *n; cur.r != nil {
		u.skew(&cur.r)
		if cur.r.r != nil {
			u.skew(&cur.r.r)
		}
	}
	u.split(n)
	if cur := *n; cur.r != nil {
		u.split(&cur.r)
	}
}

// Put [Trees.Tree.Put]. Recursive.
// Time: O(D)
func (u *AATree[T]) Put(v T) error {
	if !u.insert(&u.root, v) {
		return Trees.ErrDuplicateKey
	}
	u.stats.Inserts++
	return nil
}

// Delete [Trees.Tree.Delete]. Recursive.
// Time: O(D)
func (u *AATree[T]) Delete(v T) error {
	if !u.remove(&u.root, v) {
		return Trees.ErrKeyNotFound
	}
	u.stats.Removes++
	return nil
}

// Find [Trees.Tree.Find]
// Time: O(D)
func (u *AATree[T]) Find(v T) error {
	u.stats.Searches++
	if !u.Has(v) {
		return Trees.ErrKeyNotFound
	}
	return nil
}

func (u *AATree[T]) Insert(v T) Trees.Result {
	return Trees.Outcome(u, u.Put(v), Trees.MsgInserted)
}

func (u *AATree[T]) Remove(v T) Trees.Result {
	return Trees.Outcome(u, u.Delete(v), Trees.MsgRemoved)
}

func (u *AATree[T]) Search(v T) Trees.Result {
	return Trees.Outcome(u, u.Find(v), Trees.MsgFound)
}

func (u *AATree[T]) Clear() Trees.Result {
	u.root = nil
	u.ResetStats()
	return Trees.Outcome(u, nil, Trees.MsgCleared)
}

func (u *AATree[T]) Has(v T) bool {
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

func (u *AATree[T]) Minimum() (T, bool) {
	cur := u.root
	if cur == nil {
		return *new(T), false
	}
	for cur.l != nil {
		cur = cur.l
	}
	return cur.v, true
}

func (u *AATree[T]) Maximum() (T, bool) {
	cur := u.root
	if cur == nil {
		return *new(T), false
	}
	for cur.r != nil {
		cur = cur.r
	}
	return cur.v, true
}

func (u *AATree[T]) Traverse(o Trees.Order) func() (T, bool) {
	u.stats.Traversals++
	return walk.Binary(u.root, o, kids[T], func(n *node[T]) T { return n.v })
}

// Height [Trees.Tree.Height]. Recursive.
// Time: O(n)
func (u *AATree[T]) Height() int {
	return walk.Height(u.root, kids[T])
}

// NodeCount [Trees.Tree.NodeCount]. Recursive.
// Time: O(n)
func (u *AATree[T]) NodeCount() int {
	return walk.Count(u.root, kids[T])
}

func (u *AATree[T]) IsEmpty() bool {
	return u.root == nil
}

// Structure [Trees.Tree.Structure]. Each line reads "key (lvl=level)".
func (u *AATree[T]) Structure() fmt.Stringer {
	return Trees.Lazy(func() string {
		return walk.Draw(u.root, kids[T], func(n *node[T]) string {
			return fmt.Sprintf("%v (lvl=%d)", n.v, n.lv)
		})
	})
}

func (u *AATree[T]) Stats() Trees.Stats {
	return u.stats
}

func (u *AATree[T]) ResetStats() {
	u.stats = Trees.Stats{}
}

func (u *AATree[T]) Kind() Trees.Kind {
	return Trees.AA
}

func (u *AATree[T]) corrupt(n *node[T], lo, hi *T) bool {
	if n == nil {
		return false
	}
	switch {
	case (lo != nil && n.v <= *lo) || (hi != nil && n.v >= *hi):
		return true
	case n.l == nil && n.r == nil && n.lv != 1:
		return true
	case n.lv < 1 || level(n.l) >= n.lv || level(n.r) > n.lv:
		return true
	case n.r != nil && level(n.r.r) >= n.lv:
		return true
	case n.lv > 1 && (n.l == nil || n.r == nil):
		return true
	}
	return u.corrupt(n.l, lo, &n.v) || u.corrupt(n.r, &n.v, hi)
}

// Corrupt [Trees.Tree.Corrupt]. Checks key order and the level rules.
// Time: O(n)
func (u *AATree[T]) Corrupt() bool {
	return u.corrupt(u.root, nil, nil)
}
