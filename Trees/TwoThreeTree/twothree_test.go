package TwoThreeTree

import (
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/g-m-twostay/treebench/Trees"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Trees.Tree[int] = (*TwoThreeTree[int])(nil)

var rg = rand.New(rand.NewSource(0))

func build(t *testing.T, keys ...int) *TwoThreeTree[int] {
	t.Helper()
	tree := New[int]()
	for _, k := range keys {
		require.True(t, tree.Insert(k).Success, "insert %d", k)
		require.False(t, tree.Corrupt(), "after insert %d", k)
	}
	return tree
}

func TestTwoThreeTree_SplitRoot(t *testing.T) {
	tree := build(t, 1, 2, 3)
	assert.Equal(t, []int{2}, tree.root.ks)
	require.Len(t, tree.root.cs, 2)
	assert.Equal(t, []int{1}, tree.root.cs[0].ks)
	assert.Equal(t, []int{3}, tree.root.cs[1].ks)
	assert.True(t, tree.root.cs[0].leaf)
	assert.Equal(t, 2, tree.Height())
	assert.Equal(t, 3, tree.NodeCount())
	assert.Equal(t, uint(1), tree.Stats().Splits)

	lines := strings.Split(strings.TrimRight(tree.Structure().String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "[2]", lines[0])
	assert.Contains(t, lines[1], "[1] (leaf)")
	assert.Contains(t, lines[2], "[3] (leaf)")
}

func TestTwoThreeTree_Grow(t *testing.T) {
	tree := build(t, 1, 2, 3, 4, 5, 6, 7)
	assert.Equal(t, 3, tree.Height())
	assert.Equal(t, 7, tree.NodeCount())
	assert.Equal(t, uint(4), tree.Stats().Splits)
	assert.Equal(t, []int{4, 2, 1, 3, 6, 5, 7}, Trees.Collect(tree.Traverse(Trees.PreOrder)))
	assert.Equal(t, []int{1, 3, 2, 5, 7, 6, 4}, Trees.Collect(tree.Traverse(Trees.PostOrder)))
	assert.Equal(t, []int{4, 2, 6, 1, 3, 5, 7}, Trees.Collect(tree.Traverse(Trees.LevelOrder)))
}

func TestTwoThreeTree_RemoveInternal(t *testing.T) {
	tree := build(t, 1, 2, 3, 4, 5, 6, 7)
	require.True(t, tree.Remove(4).Success)
	require.False(t, tree.Corrupt())
	assert.Equal(t, []int{3, 6}, tree.root.ks)
	assert.Equal(t, 2, tree.Height())
	assert.Equal(t, uint(2), tree.Stats().Merges)
	assert.Zero(t, tree.Stats().Borrows)
	assert.Equal(t, []int{1, 2, 3, 5, 6, 7}, Trees.Collect(tree.Traverse(Trees.InOrder)))

	require.True(t, tree.Remove(5).Success)
	require.False(t, tree.Corrupt())
	assert.Equal(t, []int{2, 6}, tree.root.ks)
	assert.Equal(t, uint(1), tree.Stats().Borrows)
	assert.Equal(t, []int{1, 2, 3, 6, 7}, Trees.Collect(tree.Traverse(Trees.InOrder)))
}

func TestTwoThreeTree_RemoveToEmpty(t *testing.T) {
	tree := build(t, 3, 1, 2)
	for _, k := range []int{2, 1, 3} {
		require.NoError(t, tree.Delete(k))
		require.False(t, tree.Corrupt(), "after remove %d", k)
	}
	assert.True(t, tree.IsEmpty())
	assert.Empty(t, tree.Structure().String())
	r := tree.Remove(999)
	assert.False(t, r.Success)
	assert.ErrorIs(t, r.Err, Trees.ErrKeyNotFound)
	assert.Zero(t, r.Height)
}

func TestTwoThreeTree_Random(t *testing.T) {
	tree := New[int]()
	content := make(map[int]struct{})
	for range 5000 {
		k := rg.Intn(1500)
		_, in := content[k]
		if rg.Intn(3) == 0 {
			assert.Equal(t, in, tree.Delete(k) == nil)
			delete(content, k)
		} else {
			assert.Equal(t, !in, tree.Put(k) == nil)
			content[k] = struct{}{}
		}
		if tree.Corrupt() {
			t.Fatalf("tree is corrupt after operation on %d", k)
		}
	}
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
	rg.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	for _, k := range keys {
		require.NoError(t, tree.Delete(k))
		if !tree.IsEmpty() {
			require.False(t, tree.Corrupt(), "after remove %d", k)
		}
	}
	assert.True(t, tree.IsEmpty())
}
