package Bench

import (
	"math/rand"
	"testing"

	"github.com/g-m-twostay/treebench/Trees"
	"github.com/g-m-twostay/treebench/Trees/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The baselines must agree with the engines on membership.
func TestBaselines_AgreeWithEngines(t *testing.T) {
	rg := rand.New(rand.NewSource(0))
	ref, err := engine.New[int](Trees.AVL)
	require.NoError(t, err)
	var subjects []Subject
	for _, b := range Baselines {
		s := NewBaseline(b)
		require.NotNil(t, s, b)
		assert.Equal(t, b, s.Name())
		subjects = append(subjects, s)
	}
	subjects = append(subjects, engineSubject{Trees.Timed(ref)})

	for range 3000 {
		k := rg.Intn(500)
		want := ref.Has(k)
		switch rg.Intn(3) {
		case 0:
			for _, s := range subjects[:len(subjects)-1] {
				_, err := s.TimePut(k)
				assert.Equal(t, want, err != nil, s.Name())
			}
			ref.Put(k)
		case 1:
			for _, s := range subjects[:len(subjects)-1] {
				_, err := s.TimeDelete(k)
				assert.Equal(t, !want, err != nil, s.Name())
			}
			ref.Delete(k)
		default:
			for _, s := range subjects {
				_, err := s.TimeFind(k)
				assert.Equal(t, !want, err != nil, s.Name())
			}
		}
	}
	n := ref.NodeCount()
	for _, s := range subjects {
		assert.Equal(t, n, s.NodeCount(), s.Name())
	}
	assert.Positive(t, subjects[0].Height())
	assert.Positive(t, subjects[1].Height())
	assert.Zero(t, subjects[2].Height())
	assert.Equal(t, "AVL Tree", subjects[4].Name())
}

func TestBaselines_Errors(t *testing.T) {
	s := NewBaseline(GoogleBTree)
	_, err := s.TimePut(1)
	require.NoError(t, err)
	_, err = s.TimePut(1)
	assert.ErrorIs(t, err, Trees.ErrDuplicateKey)
	_, err = s.TimeDelete(2)
	assert.ErrorIs(t, err, Trees.ErrKeyNotFound)
	_, err = s.TimeFind(2)
	assert.ErrorIs(t, err, Trees.ErrKeyNotFound)
	assert.Equal(t, Trees.Stats{Inserts: 1, Searches: 1}, s.Stats())
	assert.Nil(t, NewBaseline("skiplist"))
}
