package Trees

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Tree represents an ordered set of unique keys kept balanced by one of the
// engines under this directory. Every engine owns its root exclusively and
// is meant for a single caller; none of the receivers are thread-safe.
//
// Mutating receivers return a Result describing the outcome. A failed
// operation (duplicate insert, missing remove) leaves the tree unchanged.
// After any receiver returns, the tree satisfies its engine's balance
// invariant, which can be verified with Corrupt.
//
// Receivers that have a bool as a second return value indicate whether the
// first return value is defined, following the same convention as Minimum
// on an empty tree returning (x T, false).
type Tree[T constraints.Ordered] interface {
	//Insert v. Fails with ErrDuplicateKey if v is already present.
	Insert(v T) Result
	//Remove v. Fails with ErrKeyNotFound if v is absent.
	Remove(v T) Result
	//Search for v. Counts as a search in Stats, unlike Has.
	Search(v T) Result
	//Put, Delete and Find are Insert, Remove and Search without computing
	//the post-operation metrics of Result. They update the statistics the
	//same way and return nil on success.
	Put(v T) error
	Delete(v T) error
	Find(v T) error
	//Clear drops every node and resets the statistics.
	Clear() Result
	//Has v. Doesn't touch the statistics.
	Has(v T) bool
	//Minimum element of the tree.
	Minimum() (T, bool)
	//Maximum element of the tree.
	Maximum() (T, bool)
	//Traverse returns a closure f acting like an iterator over the keys in
	//the given order. Calling f is like calling "Next()": val, valid=f().
	//val is meaningful only if valid is true; once valid is false it stays
	//false. The tree must not be modified while f is in use.
	Traverse(o Order) func() (T, bool)
	//Height in levels, 0 for an empty tree.
	Height() int
	//NodeCount is the number of nodes, which for multiway engines can be
	//less than the number of keys.
	NodeCount() int
	IsEmpty() bool
	//Structure returns a lazily rendered multi-line dump of the tree, one
	//line per node. The dump is rendered from the tree's state at the time
	//String is called.
	Structure() fmt.Stringer
	//Stats returns a snapshot of the counters.
	Stats() Stats
	ResetStats()
	Kind() Kind
	//Corrupt returns whether the tree has corrupt structures, when some
	//node violates the invariants of that specific engine.
	Corrupt() bool
}

// Collect drains an iterator returned by Tree.Traverse into a slice.
func Collect[T any](next func() (T, bool)) []T {
	var s []T
	for v, ok := next(); ok; v, ok = next() {
		s = append(s, v)
	}
	return s
}

// Lazy is a fmt.Stringer that renders on demand.
type Lazy func() string

func (l Lazy) String() string {
	return l()
}
