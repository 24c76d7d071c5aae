// Package engine selects one of the tree engines by Kind.
package engine

import (
	"fmt"

	"github.com/g-m-twostay/treebench/Trees"
	"github.com/g-m-twostay/treebench/Trees/AATree"
	"github.com/g-m-twostay/treebench/Trees/AVLTree"
	"github.com/g-m-twostay/treebench/Trees/Treap"
	"github.com/g-m-twostay/treebench/Trees/TwoThreeTree"
	"golang.org/x/exp/constraints"
)

type options struct {
	prio  Treap.Priority
	timed bool
}

// Option configures New.
type Option func(*options)

// WithPriorities makes a Treap draw its priorities from p. Other kinds
// ignore it.
func WithPriorities(p Treap.Priority) Option {
	return func(o *options) { o.prio = p }
}

// WithTiming wraps the engine with Trees.Timed.
func WithTiming() Option {
	return func(o *options) { o.timed = true }
}

// New returns an empty tree of kind k. The kind is fixed for the lifetime of
// the tree; switching kinds means building a new tree.
func New[T constraints.Ordered](k Trees.Kind, opts ...Option) (Trees.Tree[T], error) {
	var o options
	for _, f := range opts {
		f(&o)
	}
	var t Trees.Tree[T]
	switch k {
	case Trees.AVL:
		t = AVLTree.New[T]()
	case Trees.AA:
		t = AATree.New[T]()
	case Trees.Treap:
		if o.prio == nil {
			t = Treap.New[T]()
		} else {
			t = Treap.NewWith[T](o.prio)
		}
	case Trees.TwoThree:
		t = TwoThreeTree.New[T]()
	default:
		return nil, fmt.Errorf("%w: %v", Trees.ErrUnknownKind, k)
	}
	if o.timed {
		t = Trees.Timed(t)
	}
	return t, nil
}

// Named is New with the kind given by name, see Trees.ParseKind.
func Named[T constraints.Ordered](name string, opts ...Option) (Trees.Tree[T], error) {
	k, err := Trees.ParseKind(name)
	if err != nil {
		return nil, err
	}
	return New[T](k, opts...)
}

// All returns one empty tree of every kind, in Trees.Kinds order.
func All[T constraints.Ordered](opts ...Option) []Trees.Tree[T] {
	ts := make([]Trees.Tree[T], 0, len(Trees.Kinds))
	for _, k := range Trees.Kinds {
		t, _ := New[T](k, opts...)
		ts = append(ts, t)
	}
	return ts
}
