package TwoThreeTree

import (
	"github.com/g-m-twostay/treebench/Queues"
	"github.com/g-m-twostay/treebench/Trees"
	"golang.org/x/exp/constraints"
)

// frame of an iterative walk: node n with i of its keys or children done.
type frame[T constraints.Ordered] struct {
	n *node[T]
	i int
}

// Traverse [Trees.Tree.Traverse]. PreOrder lists a node's keys before its
// subtrees, PostOrder after them, LevelOrder lists the keys level by level
// from the left, and InOrder interleaves keys and subtrees, which yields the
// keys in ascending order.
// Time: f(): amortized O(1) at each call to the returned function.
func (u *TwoThreeTree[T]) Traverse(o Trees.Order) func() (T, bool) {
	u.stats.Traversals++
	switch o {
	case Trees.InOrder:
		return inOrder(u.root)
	case Trees.PreOrder:
		return preOrder(u.root)
	case Trees.PostOrder:
		return postOrder(u.root)
	case Trees.LevelOrder:
		return levelOrder(u.root)
	}
	return func() (v T, ok bool) { return }
}

func inOrder[T constraints.Ordered](root *node[T]) func() (T, bool) {
	var st []frame[T]
	descend := func(n *node[T]) {
		for ; n != nil; n = n.cs[0] {
			st = append(st, frame[T]{n, 0})
			if n.leaf {
				break
			}
		}
	}
	descend(root)
	return func() (v T, ok bool) {
		for len(st) > 0 {
			top := &st[len(st)-1]
			if top.i < len(top.n.ks) {
				v = top.n.ks[top.i]
				top.i++
				if !top.n.leaf {
					descend(top.n.cs[top.i])
				}
				return v, true
			}
			st = st[:len(st)-1]
		}
		return
	}
}

// keyed yields the keys of the node produced by next one at a time.
func keyed[T constraints.Ordered](next func() *node[T]) func() (T, bool) {
	var pending []T
	return func() (v T, ok bool) {
		for len(pending) == 0 {
			n := next()
			if n == nil {
				return
			}
			pending = n.ks
		}
		v, pending = pending[0], pending[1:]
		return v, true
	}
}

func preOrder[T constraints.Ordered](root *node[T]) func() (T, bool) {
	var st []*node[T]
	if root != nil {
		st = append(st, root)
	}
	return keyed(func() *node[T] {
		if len(st) == 0 {
			return nil
		}
		n := st[len(st)-1]
		st = st[:len(st)-1]
		for i := len(n.cs) - 1; i >= 0; i-- {
			st = append(st, n.cs[i])
		}
		return n
	})
}

func postOrder[T constraints.Ordered](root *node[T]) func() (T, bool) {
	var st []frame[T]
	if root != nil {
		st = append(st, frame[T]{root, 0})
	}
	return keyed(func() *node[T] {
		for len(st) > 0 {
			top := &st[len(st)-1]
			if top.i < len(top.n.cs) {
				c := top.n.cs[top.i]
				top.i++
				st = append(st, frame[T]{c, 0})
				continue
			}
			st = st[:len(st)-1]
			return top.n
		}
		return nil
	})
}

func levelOrder[T constraints.Ordered](root *node[T]) func() (T, bool) {
	q := Queues.MakeRing[*node[T]](8)
	if root != nil {
		q.Push(root)
	}
	return keyed(func() *node[T] {
		n, ok := q.Pop()
		if !ok {
			return nil
		}
		for _, c := range n.cs {
			q.Push(c)
		}
		return n
	})
}
