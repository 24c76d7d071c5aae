package Treap

import (
	"math/rand"
	"time"
)

// MaxPriority is the upper bound of the priorities drawn by Uniform.
const MaxPriority = 1000000

// Priority is the source a Treap draws the priority of each new node from.
// It's called exactly once per successful or failed insertion attempt, in
// insertion order.
type Priority func() int

// Uniform draws priorities uniformly from [1, MaxPriority] using r.
func Uniform(r *rand.Rand) Priority {
	return func() int {
		return 1 + r.Intn(MaxPriority)
	}
}

// Clock returns a Uniform source seeded from the current time.
func Clock() Priority {
	return Uniform(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// Sequence replays ps in order, starting over once exhausted. It panics if
// ps is empty.
func Sequence(ps ...int) Priority {
	if len(ps) == 0 {
		panic("Treap: empty priority sequence")
	}
	ps = append([]int(nil), ps...)
	i := 0
	return func() int {
		p := ps[i]
		i = (i + 1) % len(ps)
		return p
	}
}
