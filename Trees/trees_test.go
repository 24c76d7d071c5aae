package Trees

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(k.Tag())
		require.NoError(t, err)
		assert.Equal(t, k, got)
		got, err = ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	got, err := ParseKind(" Two-Three ")
	require.NoError(t, err)
	assert.Equal(t, TwoThree, got)
	_, err = ParseKind("redblack")
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestParseOrder(t *testing.T) {
	for o := PreOrder; o <= LevelOrder; o++ {
		got, err := ParseOrder(o.String())
		require.NoError(t, err)
		assert.Equal(t, o, got)
	}
	got, err := ParseOrder("LEVEL")
	require.NoError(t, err)
	assert.Equal(t, LevelOrder, got)
	_, err = ParseOrder("zigzag")
	assert.Error(t, err)
}

func TestStats(t *testing.T) {
	a := Stats{Inserts: 5, Rotations: 7, Borrows: 1}
	b := Stats{Inserts: 2, Rotations: 3}
	assert.Equal(t, Stats{Inserts: 3, Rotations: 4, Borrows: 1}, a.Sub(b))
	assert.Contains(t, a.String(), "inserts=5")
	assert.Contains(t, a.String(), "borrows=1")
}

type fixed struct{ h, n int }

func (f fixed) Height() int    { return f.h }
func (f fixed) NodeCount() int { return f.n }

func TestOutcome(t *testing.T) {
	r := Outcome(fixed{2, 3}, nil, MsgInserted)
	assert.Equal(t, Result{Success: true, Height: 2, Nodes: 3, Message: MsgInserted}, r)
	r = Outcome(fixed{2, 3}, ErrDuplicateKey, MsgInserted)
	assert.False(t, r.Success)
	assert.Equal(t, ErrDuplicateKey.Error(), r.Message)
	assert.True(t, errors.Is(r.Err, ErrDuplicateKey))
}

// stub is the smallest Tree that Timed can wrap.
type stub struct {
	Tree[int]
	keys map[int]bool
}

func (s *stub) Put(v int) error {
	if s.keys[v] {
		return ErrDuplicateKey
	}
	s.keys[v] = true
	return nil
}

func (s *stub) Find(v int) error {
	if !s.keys[v] {
		return ErrKeyNotFound
	}
	return nil
}

func (s *stub) Height() int    { return len(s.keys) }
func (s *stub) NodeCount() int { return len(s.keys) }

func TestTimed(t *testing.T) {
	s := &stub{keys: map[int]bool{}}
	tt := Timed[int](s)
	assert.Same(t, tt, Timed[int](tt))
	assert.Same(t, s, Unwrap[int](tt))
	assert.Same(t, s, Unwrap[int](s))

	tick := time.Unix(0, 0)
	tt.(*timed[int]).now = func() time.Time {
		tick = tick.Add(time.Millisecond)
		return tick
	}
	r := tt.Insert(1)
	assert.True(t, r.Success)
	assert.Equal(t, time.Millisecond, r.Elapsed)
	assert.Equal(t, 1, r.Nodes)
	r = tt.Search(2)
	assert.False(t, r.Success)
	assert.ErrorIs(t, r.Err, ErrKeyNotFound)
	assert.Equal(t, time.Millisecond, r.Elapsed)

	d, err := tt.TimePut(1)
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Equal(t, time.Millisecond, d)
	d, err = tt.TimeFind(1)
	assert.NoError(t, err)
	assert.Equal(t, time.Millisecond, d)
}

func TestCollect(t *testing.T) {
	i := 0
	next := func() (int, bool) {
		i++
		return i, i <= 3
	}
	assert.Equal(t, []int{1, 2, 3}, Collect(next))
	assert.Nil(t, Collect(func() (int, bool) { return 0, false }))
}
