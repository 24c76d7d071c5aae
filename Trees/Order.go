package Trees

import (
	"fmt"
	"strings"
)

// Order selects a traversal.
type Order byte

const (
	PreOrder Order = iota
	InOrder
	PostOrder
	LevelOrder
)

var orderNames = [...]string{"preorder", "inorder", "postorder", "levelorder"}

func (o Order) String() string {
	if int(o) < len(orderNames) {
		return orderNames[o]
	}
	return fmt.Sprintf("Order(%d)", o)
}

// ParseOrder accepts the names printed by Order.String, case-insensitively,
// plus "level" for LevelOrder.
func ParseOrder(s string) (Order, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "level" {
		return LevelOrder, nil
	}
	for i, n := range orderNames {
		if n == s {
			return Order(i), nil
		}
	}
	return 0, fmt.Errorf("unknown traversal order %q", s)
}

// Kind names one of the engines.
type Kind byte

const (
	AVL Kind = iota
	AA
	Treap
	TwoThree
)

// Kinds lists every engine kind in a stable order.
var Kinds = [...]Kind{AVL, AA, Treap, TwoThree}

var kindNames = [...]string{"AVL Tree", "AA Tree", "Treap", "2-3 Tree"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Tag is the short lowercase name accepted by ParseKind.
func (k Kind) Tag() string {
	switch k {
	case AVL:
		return "avl"
	case AA:
		return "aa"
	case Treap:
		return "treap"
	case TwoThree:
		return "23"
	}
	return k.String()
}

// ParseKind maps a name or tag to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "avl", "avl tree":
		return AVL, nil
	case "aa", "aa tree":
		return AA, nil
	case "treap":
		return Treap, nil
	case "23", "2-3", "two-three", "twothree", "2-3 tree":
		return TwoThree, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}
