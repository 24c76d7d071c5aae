// Package Treap implements a randomized binary search tree.
package Treap

import (
	"errors"
	"fmt"

	"github.com/g-m-twostay/treebench/Trees"
	"github.com/g-m-twostay/treebench/Trees/internal/walk"
	"golang.org/x/exp/constraints"
)

// ErrUnorderedJoin is returned by Join when the lower treap has a key not
// below every key of the upper one.
var ErrUnorderedJoin = errors.New("treap join: lower keys must precede upper keys")

// A node in the Treap. p is the priority drawn when it was inserted.
type node[T constraints.Ordered] struct {
	v    T
	l, r *node[T]
	p    int
}

func kids[T constraints.Ordered](n *node[T]) (*node[T], *node[T]) {
	return n.l, n.r
}

// Treap is a binary search tree on the keys and a max-heap on the node
// priorities: no child has a larger priority than its parent. With
// independent uniform priorities the shape is that of a random BST, so the
// expected height D is O(log n) whatever the insertion order.
// Insertion rotates the new node up while it outranks its parent; removal
// replaces the node by the merge of its two subtrees.
// The zero value is an empty tree ready to use; it draws priorities from
// Clock once the first key goes in.
type Treap[T constraints.Ordered] struct {
	root  *node[T]
	prio  Priority
	stats Trees.Stats
}

// New returns an empty Treap drawing priorities from Clock.
func New[T constraints.Ordered]() *Treap[T] {
	return NewWith[T](Clock())
}

// NewWith returns an empty Treap drawing priorities from prio.
func NewWith[T constraints.Ordered](prio Priority) *Treap[T] {
	return &Treap[T]{prio: prio}
}

func (u *Treap[T]) rotateLeft(n **node[T]) {
	x := *n
	y := x.r
	x.r = y.l
	y.l = x
	*n = y
	u.stats.Rotations++
}

func (u *Treap[T]) rotateRight(n **node[T]) {
	y := *n
	x := y.l
	y.l = x.r
	x.r = y
	*n = x
	u.stats.Rotations++
}

// insert v with priority p into the subtree at curPtr recursively, rotating
// the new node up on the way back while it outranks its parent.
func (u *Treap[T]) insert(curPtr **node[T], v T, p int) bool {
	cur := *curPtr
	if cur == nil {
		*curPtr = &node[T]{v: v, p: p}
		return true
	}
	if v < cur.v {
		if !u.insert(&cur.l, v, p) {
			return false
		}
		if cur.l.p > cur.p {
			u.rotateRight(curPtr)
		}
	} else if v > cur.v {
		if !u.insert(&cur.r, v, p) {
			return false
		}
		if cur.r.p > cur.p {
			u.rotateLeft(curPtr)
		}
	} else {
		return false
	}
	return true
}

// merge l and r, where every key of l is below every key of r, into one
// treap. The root with the larger priority stays on top.
// Time: O(D(l)+D(r))
func merge[T constraints.Ordered](l, r *node[T]) *node[T] {
	if l == nil {
		return r
	} else if r == nil {
		return l
	}
	if l.p > r.p {
		l.r = merge(l.r, r)
		return l
	}
	r.l = merge(l, r.l)
	return r
}

// split the subtree at n into the keys below v and the keys not below v.
// Time: O(D)
func split[T constraints.Ordered](n *node[T], v T) (l, r *node[T]) {
	if n == nil {
		return nil, nil
	}
	if n.v < v {
		n.r, r = split(n.r, v)
		return n, r
	}
	l, n.l = split(n.l, v)
	return l, n
}

func (u *Treap[T]) remove(curPtr **node[T], v T) bool {
	for cur := *curPtr; cur != nil; cur = *curPtr {
		if v < cur.v {
			curPtr = &cur.l
		} else if v > cur.v {
			curPtr = &cur.r
		} else {
			*curPtr = merge(cur.l, cur.r)
			cur.l, cur.r = nil, nil
			u.stats.Merges++
			return true
		}
	}
	return false
}

// Put [Trees.Tree.Put]. Recursive. A priority is drawn even when v turns out
// to be a duplicate.
// Time: O(D)
func (u *Treap[T]) Put(v T) error {
	if u.prio == nil {
		u.prio = Clock()
	}
	if !u.insert(&u.root, v, u.prio()) {
		return Trees.ErrDuplicateKey
	}
	u.stats.Inserts++
	return nil
}

// Delete [Trees.Tree.Delete]
// Time: O(D)
func (u *Treap[T]) Delete(v T) error {
	if !u.remove(&u.root, v) {
		return Trees.ErrKeyNotFound
	}
	u.stats.Removes++
	return nil
}

func (u *Treap[T]) Find(v T) error {
	u.stats.Searches++
	if !u.Has(v) {
		return Trees.ErrKeyNotFound
	}
	return nil
}

func (u *Treap[T]) Insert(v T) Trees.Result {
	return Trees.Outcome(u, u.Put(v), Trees.MsgInserted)
}

func (u *Treap[T]) Remove(v T) Trees.Result {
	return Trees.Outcome(u, u.Delete(v), Trees.MsgRemoved)
}

func (u *Treap[T]) Search(v T) Trees.Result {
	return Trees.Outcome(u, u.Find(v), Trees.MsgFound)
}

func (u *Treap[T]) Clear() Trees.Result {
	u.root = nil
	u.ResetStats()
	return Trees.Outcome(u, nil, Trees.MsgCleared)
}

// Split moves the keys below v into lower and the rest into upper, leaving u
// empty. Both halves keep drawing priorities from u's source and start with
// fresh statistics; u counts the split.
// Time: O(D)
func (u *Treap[T]) Split(v T) (lower, upper *Treap[T]) {
	l, r := split(u.root, v)
	u.root = nil
	u.stats.Splits++
	return &Treap[T]{root: l, prio: u.prio}, &Treap[T]{root: r, prio: u.prio}
}

// Join merges upper into lower and returns lower, leaving upper empty. It
// fails with ErrUnorderedJoin, changing nothing, unless every key of lower
// is below every key of upper.
// Time: O(D)
func Join[T constraints.Ordered](lower, upper *Treap[T]) (*Treap[T], error) {
	if hi, ok := lower.Maximum(); ok {
		if lo, ok := upper.Minimum(); ok && hi >= lo {
			return nil, ErrUnorderedJoin
		}
	}
	lower.root = merge(lower.root, upper.root)
	upper.root = nil
	lower.stats.Merges++
	return lower, nil
}

func (u *Treap[T]) Has(v T) bool {
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

func (u *Treap[T]) Minimum() (T, bool) {
	cur := u.root
	if cur == nil {
		return *new(T), false
	}
	for cur.l != nil {
		cur = cur.l
	}
	return cur.v, true
}

func (u *Treap[T]) Maximum() (T, bool) {
	cur := u.root
	if cur == nil {
		return *new(T), false
	}
	for cur.r != nil {
		cur = cur.r
	}
	return cur.v, true
}

func (u *Treap[T]) Traverse(o Trees.Order) func() (T, bool) {
	u.stats.Traversals++
	return walk.Binary(u.root, o, kids[T], func(n *node[T]) T { return n.v })
}

func (u *Treap[T]) Height() int {
	return walk.Height(u.root, kids[T])
}

func (u *Treap[T]) NodeCount() int {
	return walk.Count(u.root, kids[T])
}

func (u *Treap[T]) IsEmpty() bool {
	return u.root == nil
}

// Structure [Trees.Tree.Structure]. Each line reads "key (prio=priority)".
func (u *Treap[T]) Structure() fmt.Stringer {
	return Trees.Lazy(func() string {
		return walk.Draw(u.root, kids[T], func(n *node[T]) string {
			return fmt.Sprintf("%v (prio=%d)", n.v, n.p)
		})
	})
}

func (u *Treap[T]) Stats() Trees.Stats {
	return u.stats
}

func (u *Treap[T]) ResetStats() {
	u.stats = Trees.Stats{}
}

func (u *Treap[T]) Kind() Trees.Kind {
	return Trees.Treap
}

func (u *Treap[T]) corrupt(n *node[T], lo, hi *T) bool {
	if n == nil {
		return false
	}
	if (lo != nil && n.v <= *lo) || (hi != nil && n.v >= *hi) {
		return true
	}
	if (n.l != nil && n.l.p > n.p) || (n.r != nil && n.r.p > n.p) {
		return true
	}
	return u.corrupt(n.l, lo, &n.v) || u.corrupt(n.r, &n.v, hi)
}

// Corrupt [Trees.Tree.Corrupt]. Checks the key order and the heap order of
// the priorities.
func (u *Treap[T]) Corrupt() bool {
	return u.corrupt(u.root, nil, nil)
}
