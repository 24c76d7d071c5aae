package Bench

import (
	"fmt"
	"math/rand"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/g-m-twostay/treebench/Sets"
	"github.com/g-m-twostay/treebench/Trees"
	"github.com/g-m-twostay/treebench/Trees/engine"
	"gopkg.in/yaml.v3"
)

// DataOrder is the shape of a generated key sequence.
type DataOrder byte

const (
	Random DataOrder = iota
	Ascending
	Descending
	// AlmostSorted is ascending with every 10th key random, followed by n/10
	// random swaps.
	AlmostSorted
	// SortedWithDuplicates draws from the 11 keys starting at the lower bound,
	// sorted.
	SortedWithDuplicates
	// ReverseAlmostSorted is AlmostSorted descending.
	ReverseAlmostSorted
)

// DataOrders lists every DataOrder.
var DataOrders = [...]DataOrder{Random, Ascending, Descending, AlmostSorted, SortedWithDuplicates, ReverseAlmostSorted}

var orderNames = [...]string{"random", "ascending", "descending", "almost_sorted", "sorted_with_duplicates", "reverse_almost_sorted"}

func (o DataOrder) String() string {
	if int(o) < len(orderNames) {
		return orderNames[o]
	}
	return "DataOrder(" + strconv.Itoa(int(o)) + ")"
}

// ParseDataOrder accepts the names printed by DataOrder.String, with '-'
// allowed in place of '_'.
func ParseDataOrder(s string) (DataOrder, error) {
	s = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for i, n := range orderNames {
		if n == s {
			return DataOrder(i), nil
		}
	}
	return 0, fmt.Errorf("unknown data order %q", s)
}

func (o DataOrder) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *DataOrder) UnmarshalText(b []byte) error {
	v, err := ParseDataOrder(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

func (o DataOrder) MarshalYAML() (interface{}, error) {
	return o.String(), nil
}

func (o *DataOrder) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	v, err := ParseDataOrder(s)
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Seed derives the generator seed of one measurement from the run's base
// seed, so every (order, size, iteration) gets an independent but
// reproducible sequence.
func Seed(base int64, o DataOrder, size, iteration int) int64 {
	return int64(xxhash.Sum64String(fmt.Sprintf("%d/%s/%d/%d", base, o, size, iteration)))
}

// Generate n keys in [lo, hi] shaped by o, drawing randomness from a source
// seeded with seed.
func Generate(n int, o DataOrder, lo, hi int, seed int64) []int {
	if n <= 0 {
		return nil
	}
	rg := rand.New(rand.NewSource(seed))
	draw := func(a, b int) int {
		return a + rg.Intn(b-a+1)
	}
	// spread maps i in [0, d] onto [lo, hi].
	spread := func(i, d int) int {
		if d == 0 {
			return lo
		}
		return lo + (hi-lo)*i/d
	}
	swaps := func(data []int) {
		for range len(data) / 10 {
			i, j := rg.Intn(len(data)), rg.Intn(len(data))
			data[i], data[j] = data[j], data[i]
		}
	}
	data := make([]int, n)
	switch o {
	case Random:
		for i := range data {
			data[i] = draw(lo, hi)
		}
	case Ascending:
		for i := range data {
			data[i] = spread(i, n-1)
		}
	case Descending:
		for i := range data {
			data[i] = hi + lo - spread(i, n-1)
		}
	case AlmostSorted, ReverseAlmostSorted:
		for i := range data {
			if i%10 == 0 {
				data[i] = draw(lo, hi)
			} else if o == AlmostSorted {
				data[i] = spread(i, n)
			} else {
				data[i] = hi + lo - spread(i, n)
			}
		}
		swaps(data)
	case SortedWithDuplicates:
		for i := range data {
			data[i] = draw(lo, lo+10)
		}
		slices.Sort(data)
	}
	return data
}

// Unique returns the distinct keys of data in the order they first appear.
// Seen keys are tracked in an ordered set on an engine of kind k.
func Unique(data []int, k Trees.Kind) ([]int, error) {
	t, err := engine.New[int](k)
	if err != nil {
		return nil, err
	}
	seen := Sets.NewOrdered(t)
	res := make([]int, 0, len(data))
	for _, v := range data {
		if seen.Put(v) {
			res = append(res, v)
		}
	}
	return res, nil
}
