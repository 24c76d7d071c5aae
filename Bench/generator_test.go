package Bench

import (
	"slices"
	"testing"

	"github.com/g-m-twostay/treebench/Trees"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestGenerate_Deterministic(t *testing.T) {
	for _, o := range DataOrders {
		a := Generate(500, o, 1, 1000, 7)
		b := Generate(500, o, 1, 1000, 7)
		require.Len(t, a, 500, o.String())
		assert.Equal(t, a, b, o.String())
		for _, v := range a {
			require.GreaterOrEqual(t, v, 1)
			require.LessOrEqual(t, v, 1000)
		}
	}
	assert.Nil(t, Generate(0, Random, 1, 10, 1))
}

func TestGenerate_Shapes(t *testing.T) {
	asc := Generate(101, Ascending, 0, 1000, 1)
	assert.True(t, slices.IsSorted(asc))
	assert.Equal(t, 0, asc[0])
	assert.Equal(t, 1000, asc[100])

	desc := Generate(101, Descending, 0, 1000, 1)
	assert.Equal(t, 1000, desc[0])
	assert.Equal(t, 0, desc[100])
	slices.Reverse(desc)
	assert.Equal(t, asc, desc)

	dup := Generate(200, SortedWithDuplicates, 5, 1000, 1)
	assert.True(t, slices.IsSorted(dup))
	assert.LessOrEqual(t, dup[len(dup)-1], 15)

	assert.Equal(t, []int{3}, Generate(1, Ascending, 3, 9, 1))
}

// At most n/10 random keys and 2*(n/10) swapped positions can be out of
// place, so most adjacent pairs stay ordered.
func TestGenerate_AlmostSorted(t *testing.T) {
	data := Generate(1000, AlmostSorted, 1, 100000, 3)
	ordered := 0
	for i := 1; i < len(data); i++ {
		if data[i-1] <= data[i] {
			ordered++
		}
	}
	assert.Greater(t, ordered, 500)

	rev := Generate(1000, ReverseAlmostSorted, 1, 100000, 3)
	ordered = 0
	for i := 1; i < len(rev); i++ {
		if rev[i-1] >= rev[i] {
			ordered++
		}
	}
	assert.Greater(t, ordered, 500)
}

func TestSeed(t *testing.T) {
	assert.Equal(t, Seed(1, Random, 100, 0), Seed(1, Random, 100, 0))
	assert.NotEqual(t, Seed(1, Random, 100, 0), Seed(1, Random, 100, 1))
	assert.NotEqual(t, Seed(1, Random, 100, 0), Seed(2, Random, 100, 0))
	assert.NotEqual(t, Seed(1, Random, 100, 0), Seed(1, Ascending, 100, 0))
}

func TestUnique(t *testing.T) {
	for _, k := range Trees.Kinds {
		u, err := Unique([]int{3, 1, 3, 2, 1, 4}, k)
		require.NoError(t, err)
		assert.Equal(t, []int{3, 1, 2, 4}, u)
	}
	_, err := Unique(nil, Trees.Kind(9))
	assert.ErrorIs(t, err, Trees.ErrUnknownKind)
}

func TestDataOrder_Parse(t *testing.T) {
	for _, o := range DataOrders {
		got, err := ParseDataOrder(o.String())
		require.NoError(t, err)
		assert.Equal(t, o, got)
	}
	got, err := ParseDataOrder("Almost-Sorted")
	require.NoError(t, err)
	assert.Equal(t, AlmostSorted, got)
	_, err = ParseDataOrder("shuffled")
	assert.Error(t, err)

	var v struct {
		O DataOrder `yaml:"o"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("o: descending\n"), &v))
	assert.Equal(t, Descending, v.O)
	out, err := yaml.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, "o: descending\n", string(out))
	assert.Error(t, yaml.Unmarshal([]byte("o: nope\n"), &v))
}
