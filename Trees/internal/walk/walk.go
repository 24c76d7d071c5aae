// Package walk holds the traversal and drawing code shared by the binary
// engines. Nodes are passed as comparable handles whose zero value is the
// absent child.
package walk

import (
	"github.com/g-m-twostay/treebench/Queues"
	"github.com/g-m-twostay/treebench/Trees"
	"github.com/xlab/treeprint"
)

// Kids returns the left and right child of n.
type Kids[N comparable] func(n N) (l, r N)

// Binary returns an iterator over the keys of the binary tree rooted at root
// in order o. Each step is amortized O(1); the iterator holds at most O(D)
// nodes except for LevelOrder, which holds a level at a time.
func Binary[N comparable, T any](root N, o Trees.Order, kids Kids[N], key func(N) T) func() (T, bool) {
	var zero N
	switch o {
	case Trees.PreOrder:
		var st []N
		if root != zero {
			st = append(st, root)
		}
		return func() (v T, ok bool) {
			if len(st) == 0 {
				return
			}
			cur := st[len(st)-1]
			st = st[:len(st)-1]
			if l, r := kids(cur); r != zero {
				st = append(st, r)
				if l != zero {
					st = append(st, l)
				}
			} else if l != zero {
				st = append(st, l)
			}
			return key(cur), true
		}
	case Trees.InOrder:
		var st []N
		cur := root
		return func() (v T, ok bool) {
			for ; cur != zero; cur, _ = kids(cur) {
				st = append(st, cur)
			}
			if len(st) == 0 {
				return
			}
			top := st[len(st)-1]
			st = st[:len(st)-1]
			_, cur = kids(top)
			return key(top), true
		}
	case Trees.PostOrder:
		var st []N
		var last N
		cur := root
		return func() (v T, ok bool) {
			for cur != zero || len(st) > 0 {
				if cur != zero {
					st = append(st, cur)
					cur, _ = kids(cur)
					continue
				}
				top := st[len(st)-1]
				if _, r := kids(top); r != zero && r != last {
					cur = r
					continue
				}
				st = st[:len(st)-1]
				last = top
				return key(top), true
			}
			return
		}
	case Trees.LevelOrder:
		q := Queues.MakeRing[N](8)
		if root != zero {
			q.Push(root)
		}
		return func() (v T, ok bool) {
			cur, has := q.Pop()
			if !has {
				return
			}
			l, r := kids(cur)
			if l != zero {
				q.Push(l)
			}
			if r != zero {
				q.Push(r)
			}
			return key(cur), true
		}
	}
	return func() (v T, ok bool) { return }
}

// Draw renders the binary tree rooted at root, one line per node. Children
// are tagged [L] or [R] so a lone child's side stays visible.
func Draw[N comparable](root N, kids Kids[N], label func(N) string) string {
	var zero N
	if root == zero {
		return ""
	}
	var add func(t treeprint.Tree, n N)
	add = func(t treeprint.Tree, n N) {
		l, r := kids(n)
		if l != zero {
			add(t.AddMetaBranch("L", label(l)), l)
		}
		if r != zero {
			add(t.AddMetaBranch("R", label(r)), r)
		}
	}
	tr := treeprint.NewWithRoot(label(root))
	add(tr, root)
	return tr.String()
}

// Height of the binary tree rooted at n, counting nodes on the longest path.
func Height[N comparable](n N, kids Kids[N]) int {
	var zero N
	if n == zero {
		return 0
	}
	l, r := kids(n)
	return 1 + max(Height(l, kids), Height(r, kids))
}

// Count the nodes of the binary tree rooted at n.
func Count[N comparable](n N, kids Kids[N]) int {
	var zero N
	if n == zero {
		return 0
	}
	l, r := kids(n)
	return 1 + Count(l, kids) + Count(r, kids)
}
