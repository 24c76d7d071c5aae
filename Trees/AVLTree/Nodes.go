package AVLTree

import "golang.org/x/exp/constraints"

// A node in the AVLTree. h caches the height of the subtree rooted here,
// a leaf has h=1.
type node[T constraints.Ordered] struct {
	v    T
	l, r *node[T]
	h    int
}

func kids[T constraints.Ordered](n *node[T]) (*node[T], *node[T]) {
	return n.l, n.r
}

func height[T constraints.Ordered](n *node[T]) int {
	if n == nil {
		return 0
	}
	return n.h
}

func (n *node[T]) update() {
	n.h = 1 + max(height(n.l), height(n.r))
}

// balance factor, height(l)-height(r).
func (n *node[T]) bf() int {
	if n == nil {
		return 0
	}
	return height(n.l) - height(n.r)
}
