package AVLTree

import (
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/g-m-twostay/treebench/Trees"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Trees.Tree[int] = (*AVLTree[int])(nil)

var rg = rand.New(rand.NewSource(0))

const (
	tOpN      = 4000
	tValRange = 1500
)

func build(t *testing.T, keys ...int) *AVLTree[int] {
	t.Helper()
	tree := New[int]()
	for _, k := range keys {
		require.True(t, tree.Insert(k).Success, "insert %d", k)
	}
	return tree
}

func TestAVLTree_RotateLeft(t *testing.T) {
	tree := build(t, 10, 20, 30)
	assert.Equal(t, 20, tree.root.v)
	assert.Equal(t, 2, tree.Height())
	assert.Equal(t, uint(1), tree.Stats().Rotations)
	assert.Equal(t, []int{20, 10, 30}, Trees.Collect(tree.Traverse(Trees.PreOrder)))
}

func TestAVLTree_RotateRight(t *testing.T) {
	tree := build(t, 30, 20, 10)
	assert.Equal(t, 20, tree.root.v)
	assert.Equal(t, 2, tree.Height())
	assert.Equal(t, uint(1), tree.Stats().Rotations)
}

func TestAVLTree_DoubleRotations(t *testing.T) {
	lr := build(t, 30, 10, 20)
	assert.Equal(t, 20, lr.root.v)
	assert.Equal(t, uint(2), lr.Stats().Rotations)
	rl := build(t, 10, 30, 20)
	assert.Equal(t, 20, rl.root.v)
	assert.Equal(t, uint(2), rl.Stats().Rotations)
}

func TestAVLTree_Duplicate(t *testing.T) {
	tree := build(t, 5, 3, 8)
	before := tree.Structure().String()
	r := tree.Insert(3)
	assert.False(t, r.Success)
	assert.ErrorIs(t, r.Err, Trees.ErrDuplicateKey)
	assert.Equal(t, 3, r.Nodes)
	assert.Equal(t, 2, r.Height)
	assert.Equal(t, before, tree.Structure().String())
	assert.Equal(t, uint(3), tree.Stats().Inserts)
}

func TestAVLTree_RemoveMissing(t *testing.T) {
	tree := New[int]()
	r := tree.Remove(999)
	assert.False(t, r.Success)
	assert.ErrorIs(t, r.Err, Trees.ErrKeyNotFound)
	assert.Equal(t, Trees.ErrKeyNotFound.Error(), r.Message)
	assert.Zero(t, r.Height)
	assert.Zero(t, r.Nodes)

	tree = build(t, 4, 2, 6, 1)
	before := tree.Structure().String()
	assert.False(t, tree.Remove(5).Success)
	assert.Equal(t, before, tree.Structure().String())
}

func TestAVLTree_RemoveTwoChildren(t *testing.T) {
	tree := build(t, 20, 10, 30, 25, 40)
	r := tree.Remove(20)
	require.True(t, r.Success)
	assert.Equal(t, 25, tree.root.v)
	assert.False(t, tree.Corrupt())
	assert.Equal(t, []int{10, 25, 30, 40}, Trees.Collect(tree.Traverse(Trees.InOrder)))
}

func TestAVLTree_Structure(t *testing.T) {
	assert.Empty(t, New[int]().Structure().String())
	tree := build(t, 10, 20, 30, 40)
	s := tree.Structure().String()
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "20 (h=3, bf=-1)", lines[0])
	assert.Contains(t, s, "10 (h=1, bf=0)")
	assert.Contains(t, s, "30 (h=2, bf=-1)")
	assert.Contains(t, s, "40 (h=1, bf=0)")
}

func TestAVLTree_Random(t *testing.T) {
	tree := New[int]()
	content := make(map[int]struct{})
	for range tOpN {
		k := rg.Intn(tValRange)
		_, in := content[k]
		if rg.Intn(3) == 0 {
			if r := tree.Remove(k); r.Success != in {
				t.Fatalf("remove %d returned %v, want %v", k, r.Success, in)
			}
			delete(content, k)
		} else {
			if r := tree.Insert(k); r.Success == in {
				t.Fatalf("insert %d returned %v, want %v", k, r.Success, !in)
			}
			content[k] = struct{}{}
		}
		if tree.Corrupt() {
			t.Fatalf("tree is corrupt after operation on %d", k)
		}
	}
	require.Equal(t, len(content), tree.NodeCount())
	keys := make([]int, 0, len(content))
	for k := range content {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	assert.Equal(t, keys, Trees.Collect(tree.Traverse(Trees.InOrder)))
	for _, o := range []Trees.Order{Trees.PreOrder, Trees.PostOrder, Trees.LevelOrder} {
		s := Trees.Collect(tree.Traverse(o))
		slices.Sort(s)
		assert.Equal(t, keys, s, o.String())
	}
	min, _ := tree.Minimum()
	max, _ := tree.Maximum()
	assert.Equal(t, keys[0], min)
	assert.Equal(t, keys[len(keys)-1], max)
}

func TestAVLTree_ClearResetsStats(t *testing.T) {
	tree := build(t, 1, 2, 3, 4, 5)
	tree.Search(3)
	require.NotZero(t, tree.Stats().Searches)
	r := tree.Clear()
	assert.True(t, r.Success)
	assert.True(t, tree.IsEmpty())
	assert.Equal(t, Trees.Stats{}, tree.Stats())
	_, ok := tree.Minimum()
	assert.False(t, ok)
}

func BenchmarkAVLTree_Insert(b *testing.B) {
	for range b.N {
		tree := New[int]()
		for _, k := range rg.Perm(1 << 14) {
			tree.Put(k)
		}
	}
}
