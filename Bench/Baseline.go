package Bench

import (
	"time"

	"github.com/emirpasic/gods/trees/avltree"
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
	"github.com/g-m-twostay/treebench/Trees"
	"github.com/google/btree"
	"github.com/petar/GoLLRB/llrb"
)

// Subject is what the runner measures: an engine behind Trees.Timed or one
// of the baselines. Timed calls return the duration of the operation alone.
type Subject interface {
	Name() string
	TimePut(v int) (time.Duration, error)
	TimeFind(v int) (time.Duration, error)
	TimeDelete(v int) (time.Duration, error)
	Height() int
	NodeCount() int
	// Stats of an engine; baselines only count the public operations.
	Stats() Trees.Stats
}

// engineSubject measures one of the Trees engines.
type engineSubject struct {
	Trees.Stopwatch[int]
}

func (u engineSubject) Name() string {
	return u.Kind().String()
}

// clock times op, the baselines' counterpart of Trees.Timed.
func clock(op func() error) (time.Duration, error) {
	start := time.Now()
	err := op()
	return time.Since(start), err
}

// Baseline names, used as Subject.Name and accepted by NewBaseline.
const (
	GodsAVL      = "gods AVL"
	GodsRedBlack = "gods red-black"
	GoogleBTree  = "google B-tree"
	GoLLRB       = "GoLLRB"
)

// Baselines lists the names of every baseline.
var Baselines = [...]string{GodsAVL, GodsRedBlack, GoogleBTree, GoLLRB}

// baseline adapts a third-party ordered container. Its operations report
// Trees.ErrDuplicateKey and Trees.ErrKeyNotFound like the engines do.
type baseline struct {
	name   string
	put    func(v int) bool
	has    func(v int) bool
	del    func(v int) bool
	height func() int
	size   func() int
	stats  Trees.Stats
}

func (u *baseline) Name() string {
	return u.name
}

func (u *baseline) TimePut(v int) (time.Duration, error) {
	return clock(func() error {
		if !u.put(v) {
			return Trees.ErrDuplicateKey
		}
		u.stats.Inserts++
		return nil
	})
}

func (u *baseline) TimeFind(v int) (time.Duration, error) {
	return clock(func() error {
		u.stats.Searches++
		if !u.has(v) {
			return Trees.ErrKeyNotFound
		}
		return nil
	})
}

func (u *baseline) TimeDelete(v int) (time.Duration, error) {
	return clock(func() error {
		if !u.del(v) {
			return Trees.ErrKeyNotFound
		}
		u.stats.Removes++
		return nil
	})
}

// Height is 0 for the baselines that don't expose it.
func (u *baseline) Height() int {
	if u.height == nil {
		return 0
	}
	return u.height()
}

// NodeCount is the number of keys.
func (u *baseline) NodeCount() int {
	return u.size()
}

func (u *baseline) Stats() Trees.Stats {
	return u.stats
}

func godsAVL() *baseline {
	t := avltree.NewWithIntComparator()
	var h func(n *avltree.Node) int
	h = func(n *avltree.Node) int {
		if n == nil {
			return 0
		}
		return 1 + max(h(n.Children[0]), h(n.Children[1]))
	}
	return &baseline{
		name: GodsAVL,
		put: func(v int) bool {
			if _, found := t.Get(v); found {
				return false
			}
			t.Put(v, struct{}{})
			return true
		},
		has: func(v int) bool {
			_, found := t.Get(v)
			return found
		},
		del: func(v int) bool {
			if _, found := t.Get(v); !found {
				return false
			}
			t.Remove(v)
			return true
		},
		height: func() int { return h(t.Root) },
		size:   t.Size,
	}
}

func godsRedBlack() *baseline {
	t := redblacktree.NewWith(utils.IntComparator)
	var h func(n *redblacktree.Node) int
	h = func(n *redblacktree.Node) int {
		if n == nil {
			return 0
		}
		return 1 + max(h(n.Left), h(n.Right))
	}
	return &baseline{
		name: GodsRedBlack,
		put: func(v int) bool {
			if _, found := t.Get(v); found {
				return false
			}
			t.Put(v, struct{}{})
			return true
		},
		has: func(v int) bool {
			_, found := t.Get(v)
			return found
		},
		del: func(v int) bool {
			if _, found := t.Get(v); !found {
				return false
			}
			t.Remove(v)
			return true
		},
		height: func() int { return h(t.Root) },
		size:   t.Size,
	}
}

// googleBTree is a B-tree of degree 3, whose nodes hold 2 to 5 keys.
func googleBTree() *baseline {
	t := btree.NewOrderedG[int](3)
	return &baseline{
		name: GoogleBTree,
		put: func(v int) bool {
			_, replaced := t.ReplaceOrInsert(v)
			return !replaced
		},
		has: t.Has,
		del: func(v int) bool {
			_, found := t.Delete(v)
			return found
		},
		size: t.Len,
	}
}

func goLLRB() *baseline {
	t := llrb.New()
	return &baseline{
		name: GoLLRB,
		put: func(v int) bool {
			return t.ReplaceOrInsert(llrb.Int(v)) == nil
		},
		has: func(v int) bool {
			return t.Has(llrb.Int(v))
		},
		del: func(v int) bool {
			return t.Delete(llrb.Int(v)) != nil
		},
		size: t.Len,
	}
}

// NewBaseline returns an empty baseline by name, or nil if there's no such
// baseline.
func NewBaseline(name string) Subject {
	switch name {
	case GodsAVL:
		return godsAVL()
	case GodsRedBlack:
		return godsRedBlack()
	case GoogleBTree:
		return googleBTree()
	case GoLLRB:
		return goLLRB()
	}
	return nil
}
