package TwoThreeTree

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

// A node in the TwoThreeTree. ks holds 1 or 2 sorted keys, and cs holds
// len(ks)+1 children unless leaf. Between a change and its repair a node may
// transiently hold 0 or 3 keys. p is the parent, nil for the root; it's only
// used to walk back up during repairs and never keeps a node alive on its own.
type node[T constraints.Ordered] struct {
	ks   []T
	cs   []*node[T]
	p    *node[T]
	leaf bool
}

// find returns the index of the first key not below v, and whether that key
// is v. For an internal node, i is also the child to descend into.
func (n *node[T]) find(v T) (i int, found bool) {
	for i < len(n.ks) && n.ks[i] < v {
		i++
	}
	return i, i < len(n.ks) && n.ks[i] == v
}

// indexOf child c in n.cs.
func (n *node[T]) indexOf(c *node[T]) int {
	for i, x := range n.cs {
		if x == c {
			return i
		}
	}
	panic("TwoThreeTree: broken parent link")
}

// adopt sets n as the parent of every child in cs.
func (n *node[T]) adopt(cs []*node[T]) {
	for _, c := range cs {
		c.p = n
	}
}

func (n *node[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, k := range n.ks {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, k)
	}
	sb.WriteByte(']')
	if n.leaf {
		sb.WriteString(" (leaf)")
	}
	return sb.String()
}
