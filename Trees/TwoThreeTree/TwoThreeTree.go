// Package TwoThreeTree implements a 2-3 tree, the B-tree of order 3.
package TwoThreeTree

import (
	"fmt"
	"slices"

	"github.com/g-m-twostay/treebench/Trees"
	"github.com/xlab/treeprint"
	"golang.org/x/exp/constraints"
)

// TwoThreeTree is a multiway search tree whose internal nodes hold one key
// and two children or two keys and three children, with every leaf at the
// same depth. It grows at the root: a node overflowing to three keys splits,
// pushing its middle key into the parent. It shrinks at the root too: a node
// left without keys borrows a key through the parent from a sibling that has
// two, or else merges with a sibling and takes the parent's separator along.
// The height D of the tree is between log3(n+1) and log2(n+1).
// The zero value is an empty tree ready to use.
type TwoThreeTree[T constraints.Ordered] struct {
	root  *node[T]
	stats Trees.Stats
}

// New returns an empty TwoThreeTree.
func New[T constraints.Ordered]() *TwoThreeTree[T] {
	return new(TwoThreeTree[T])
}

// locate the node holding v, and the index of v in it.
// Time: O(D)
func (u *TwoThreeTree[T]) locate(v T) (*node[T], int) {
	for cur := u.root; cur != nil; {
		i, found := cur.find(v)
		if found {
			return cur, i
		} else if cur.leaf {
			break
		}
		cur = cur.cs[i]
	}
	return nil, 0
}

// splitNode splits n holding three keys. Its last key, and for internal
// nodes its last two children, move to a new right sibling; its middle key
// moves into the parent, which is split in turn if that makes it overflow.
// Splitting the root grows the tree by one level.
func (u *TwoThreeTree[T]) splitNode(n *node[T]) {
	u.stats.Splits++
	mid := n.ks[1]
	sib := &node[T]{ks: []T{n.ks[2]}, p: n.p, leaf: n.leaf}
	n.ks = n.ks[:1]
	if !n.leaf {
		sib.cs = []*node[T]{n.cs[2], n.cs[3]}
		sib.adopt(sib.cs)
		clear(n.cs[2:])
		n.cs = n.cs[:2]
	}
	p := n.p
	if p == nil {
		u.root = &node[T]{ks: []T{mid}, cs: []*node[T]{n, sib}}
		u.root.adopt(u.root.cs)
		return
	}
	i := p.indexOf(n)
	p.ks = slices.Insert(p.ks, i, mid)
	p.cs = slices.Insert(p.cs, i+1, sib)
	if len(p.ks) > 2 {
		u.splitNode(p)
	}
}

// insert v. Returns false if v is already in the tree.
// Time: O(D)
func (u *TwoThreeTree[T]) insert(v T) bool {
	if u.root == nil {
		u.root = &node[T]{ks: []T{v}, leaf: true}
		return true
	}
	cur := u.root
	for {
		i, found := cur.find(v)
		if found {
			return false
		}
		if cur.leaf {
			cur.ks = slices.Insert(cur.ks, i, v)
			break
		}
		cur = cur.cs[i]
	}
	if len(cur.ks) > 2 {
		u.splitNode(cur)
	}
	return true
}

// remove v. A key found in an internal node is swapped with its in-order
// predecessor, the last key of the rightmost leaf of its left subtree, so the
// key actually taken out always comes from a leaf.
// Time: O(D)
func (u *TwoThreeTree[T]) remove(v T) bool {
	n, i := u.locate(v)
	if n == nil {
		return false
	}
	if !n.leaf {
		l := n.cs[i]
		for !l.leaf {
			l = l.cs[len(l.cs)-1]
		}
		n.ks[i] = l.ks[len(l.ks)-1]
		n, i = l, len(l.ks)-1
	}
	n.ks = slices.Delete(n.ks, i, i+1)
	if len(n.ks) == 0 {
		u.fixUnderflow(n)
	}
	return true
}

// fixUnderflow repairs n left without keys, which if internal has a single
// child. An empty root is replaced by its child, or dropped if it's a leaf.
func (u *TwoThreeTree[T]) fixUnderflow(n *node[T]) {
	p := n.p
	if p == nil {
		if n.leaf {
			u.root = nil
		} else {
			u.root = n.cs[0]
			u.root.p = nil
			n.cs = nil
		}
		return
	}
	if u.borrowFromSibling(n, p) {
		return
	}
	u.mergeWithSibling(n, p)
	if len(p.ks) == 0 {
		u.fixUnderflow(p)
	}
}

// borrowFromSibling rotates a key from an adjacent sibling holding two keys
// through the parent into n: the separator comes down into n and the
// sibling's outer key goes up to replace it. For internal nodes the
// sibling's outer child moves over too. The left sibling is tried first.
// Returns false if neither adjacent sibling can spare a key.
func (u *TwoThreeTree[T]) borrowFromSibling(n, p *node[T]) bool {
	i := p.indexOf(n)
	if i > 0 {
		if s := p.cs[i-1]; len(s.ks) == 2 {
			n.ks = append(n.ks, p.ks[i-1])
			p.ks[i-1] = s.ks[1]
			s.ks = s.ks[:1]
			if !n.leaf {
				c := s.cs[2]
				s.cs[2] = nil
				s.cs = s.cs[:2]
				c.p = n
				n.cs = slices.Insert(n.cs, 0, c)
			}
			u.stats.Borrows++
			return true
		}
	}
	if i+1 < len(p.cs) {
		if s := p.cs[i+1]; len(s.ks) == 2 {
			n.ks = append(n.ks, p.ks[i])
			p.ks[i] = s.ks[0]
			s.ks = slices.Delete(s.ks, 0, 1)
			if !n.leaf {
				c := s.cs[0]
				s.cs = slices.Delete(s.cs, 0, 1)
				c.p = n
				n.cs = append(n.cs, c)
			}
			u.stats.Borrows++
			return true
		}
	}
	return false
}

// mergeWithSibling absorbs an adjacent sibling, which holds a single key,
// and the parent's separator between them into n, then drops the sibling
// and the separator from the parent. The parent may underflow as a result.
func (u *TwoThreeTree[T]) mergeWithSibling(n, p *node[T]) {
	u.stats.Merges++
	i := p.indexOf(n)
	var s *node[T]
	if i > 0 {
		s = p.cs[i-1]
		n.ks = append(slices.Clone(s.ks), p.ks[i-1])
		if !n.leaf {
			n.cs = append(slices.Clone(s.cs), n.cs...)
		}
		p.ks = slices.Delete(p.ks, i-1, i)
		p.cs = slices.Delete(p.cs, i-1, i)
	} else {
		s = p.cs[1]
		n.ks = append([]T{p.ks[0]}, s.ks...)
		if !n.leaf {
			n.cs = append(n.cs, s.cs...)
		}
		p.ks = slices.Delete(p.ks, 0, 1)
		p.cs = slices.Delete(p.cs, 1, 2)
	}
	n.adopt(n.cs)
	s.p, s.cs = nil, nil
}

// Put [Trees.Tree.Put]
// Time: O(D)
func (u *TwoThreeTree[T]) Put(v T) error {
	if !u.insert(v) {
		return Trees.ErrDuplicateKey
	}
	u.stats.Inserts++
	return nil
}

// Delete [Trees.Tree.Delete]
// Time: O(D)
func (u *TwoThreeTree[T]) Delete(v T) error {
	if !u.remove(v) {
		return Trees.ErrKeyNotFound
	}
	u.stats.Removes++
	return nil
}

func (u *TwoThreeTree[T]) Find(v T) error {
	u.stats.Searches++
	if !u.Has(v) {
		return Trees.ErrKeyNotFound
	}
	return nil
}

func (u *TwoThreeTree[T]) Insert(v T) Trees.Result {
	return Trees.Outcome(u, u.Put(v), Trees.MsgInserted)
}

func (u *TwoThreeTree[T]) Remove(v T) Trees.Result {
	return Trees.Outcome(u, u.Delete(v), Trees.MsgRemoved)
}

func (u *TwoThreeTree[T]) Search(v T) Trees.Result {
	return Trees.Outcome(u, u.Find(v), Trees.MsgFound)
}

func (u *TwoThreeTree[T]) Clear() Trees.Result {
	u.root = nil
	u.ResetStats()
	return Trees.Outcome(u, nil, Trees.MsgCleared)
}

// Has [Trees.Tree.Has]
// Time: O(D); Space: O(1)
func (u *TwoThreeTree[T]) Has(v T) bool {
	n, _ := u.locate(v)
	return n != nil
}

func (u *TwoThreeTree[T]) Minimum() (T, bool) {
	cur := u.root
	if cur == nil {
		return *new(T), false
	}
	for !cur.leaf {
		cur = cur.cs[0]
	}
	return cur.ks[0], true
}

func (u *TwoThreeTree[T]) Maximum() (T, bool) {
	cur := u.root
	if cur == nil {
		return *new(T), false
	}
	for !cur.leaf {
		cur = cur.cs[len(cur.cs)-1]
	}
	return cur.ks[len(cur.ks)-1], true
}

func height[T constraints.Ordered](n *node[T]) int {
	if n == nil {
		return 0
	}
	h := 0
	for _, c := range n.cs {
		h = max(h, height(c))
	}
	return 1 + h
}

// Height [Trees.Tree.Height]. Recursive.
// Time: O(n)
func (u *TwoThreeTree[T]) Height() int {
	return height(u.root)
}

func count[T constraints.Ordered](n *node[T]) int {
	if n == nil {
		return 0
	}
	c := 1
	for _, x := range n.cs {
		c += count(x)
	}
	return c
}

// NodeCount [Trees.Tree.NodeCount]. Recursive. Counts nodes, not keys.
// Time: O(n)
func (u *TwoThreeTree[T]) NodeCount() int {
	return count(u.root)
}

func (u *TwoThreeTree[T]) IsEmpty() bool {
	return u.root == nil
}

// Structure [Trees.Tree.Structure]. Each line lists a node's keys, marks
// leaves with "(leaf)" and tags children with their index.
func (u *TwoThreeTree[T]) Structure() fmt.Stringer {
	return Trees.Lazy(func() string {
		if u.root == nil {
			return ""
		}
		var add func(t treeprint.Tree, n *node[T])
		add = func(t treeprint.Tree, n *node[T]) {
			for i, c := range n.cs {
				add(t.AddMetaBranch(i, c.String()), c)
			}
		}
		tr := treeprint.NewWithRoot(u.root.String())
		add(tr, u.root)
		return tr.String()
	})
}

func (u *TwoThreeTree[T]) Stats() Trees.Stats {
	return u.stats
}

func (u *TwoThreeTree[T]) ResetStats() {
	u.stats = Trees.Stats{}
}

func (u *TwoThreeTree[T]) Kind() Trees.Kind {
	return Trees.TwoThree
}

// corrupt checks the subtree at n against the open key range (lo, hi) and
// returns the depth of its leaves, or -1 if something is off.
func (u *TwoThreeTree[T]) corrupt(n *node[T], lo, hi *T) int {
	k := len(n.ks)
	if k < 1 || k > 2 || (k == 2 && n.ks[0] >= n.ks[1]) {
		return -1
	}
	if (lo != nil && n.ks[0] <= *lo) || (hi != nil && n.ks[k-1] >= *hi) {
		return -1
	}
	if n.leaf {
		if len(n.cs) != 0 {
			return -1
		}
		return 1
	}
	if len(n.cs) != k+1 {
		return -1
	}
	d := -1
	for i, c := range n.cs {
		if c == nil || c.p != n {
			return -1
		}
		clo, chi := lo, hi
		if i > 0 {
			clo = &n.ks[i-1]
		}
		if i < k {
			chi = &n.ks[i]
		}
		cd := u.corrupt(c, clo, chi)
		if cd < 0 || (d >= 0 && cd != d) {
			return -1
		}
		d = cd
	}
	return d + 1
}

// Corrupt [Trees.Tree.Corrupt]. Checks key counts, child counts, key order,
// parent links and that every leaf is at the same depth.
// Time: O(n)
func (u *TwoThreeTree[T]) Corrupt() bool {
	if u.root == nil {
		return false
	}
	return u.root.p != nil || u.corrupt(u.root, nil, nil) < 0
}
