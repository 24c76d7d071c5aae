package Trees

import (
	"time"

	"golang.org/x/exp/constraints"
)

// Stopwatch is a Tree whose Insert, Remove, Search and Clear fill in
// Result.Elapsed. TimePut, TimeDelete and TimeFind run Put, Delete and Find
// and report how long they took, for callers that only need the clock.
type Stopwatch[T constraints.Ordered] interface {
	Tree[T]
	TimePut(v T) (time.Duration, error)
	TimeDelete(v T) (time.Duration, error)
	TimeFind(v T) (time.Duration, error)
}

// timed wraps a Tree and measures the wall-clock time of each mutating or
// searching call. Everything else is forwarded through the embedded Tree.
type timed[T constraints.Ordered] struct {
	Tree[T]
	now func() time.Time
}

// Timed returns t wrapped as a Stopwatch. Only the operation itself is
// measured; the height and node count walks that complete a Result happen
// after the clock stops. Wrapping a Stopwatch returned by Timed again
// returns it unchanged.
func Timed[T constraints.Ordered](t Tree[T]) Stopwatch[T] {
	if w, ok := t.(*timed[T]); ok {
		return w
	}
	return &timed[T]{t, time.Now}
}

// Unwrap returns the engine behind a Timed tree, or t itself.
func Unwrap[T constraints.Ordered](t Tree[T]) Tree[T] {
	if w, ok := t.(*timed[T]); ok {
		return w.Tree
	}
	return t
}

func (u *timed[T]) clock(op func(T) error, v T) (time.Duration, error) {
	start := u.now()
	err := op(v)
	return u.now().Sub(start), err
}

func (u *timed[T]) measure(op func(T) error, v T, msg string) Result {
	elapsed, err := u.clock(op, v)
	r := Outcome(u.Tree, err, msg)
	r.Elapsed = elapsed
	return r
}

func (u *timed[T]) TimePut(v T) (time.Duration, error) {
	return u.clock(u.Tree.Put, v)
}

func (u *timed[T]) TimeDelete(v T) (time.Duration, error) {
	return u.clock(u.Tree.Delete, v)
}

func (u *timed[T]) TimeFind(v T) (time.Duration, error) {
	return u.clock(u.Tree.Find, v)
}

func (u *timed[T]) Insert(v T) Result {
	return u.measure(u.Tree.Put, v, MsgInserted)
}

func (u *timed[T]) Remove(v T) Result {
	return u.measure(u.Tree.Delete, v, MsgRemoved)
}

func (u *timed[T]) Search(v T) Result {
	return u.measure(u.Tree.Find, v, MsgFound)
}

func (u *timed[T]) Clear() Result {
	start := u.now()
	r := u.Tree.Clear()
	r.Elapsed = u.now().Sub(start)
	return r
}
