package walk

import (
	"strconv"
	"testing"

	"github.com/g-m-twostay/treebench/Trees"
	"github.com/stretchr/testify/assert"
)

type tnode struct {
	v    int
	l, r *tnode
}

func kids(n *tnode) (*tnode, *tnode) {
	return n.l, n.r
}

func key(n *tnode) int {
	return n.v
}

//      4
//    /   \
//   2     6
//  / \     \
// 1   3     7
func sample() *tnode {
	return &tnode{4,
		&tnode{2, &tnode{v: 1}, &tnode{v: 3}},
		&tnode{6, nil, &tnode{v: 7}}}
}

func TestBinary(t *testing.T) {
	root := sample()
	cases := map[Trees.Order][]int{
		Trees.PreOrder:   {4, 2, 1, 3, 6, 7},
		Trees.InOrder:    {1, 2, 3, 4, 6, 7},
		Trees.PostOrder:  {1, 3, 2, 7, 6, 4},
		Trees.LevelOrder: {4, 2, 6, 1, 3, 7},
	}
	for o, want := range cases {
		t.Run(o.String(), func(t *testing.T) {
			next := Binary(root, o, kids, key)
			assert.Equal(t, want, Trees.Collect(next))
			_, ok := next()
			assert.False(t, ok, "iterator must stay exhausted")
		})
	}
}

func TestBinary_Empty(t *testing.T) {
	for o := Trees.PreOrder; o <= Trees.LevelOrder; o++ {
		assert.Empty(t, Trees.Collect(Binary[*tnode, int](nil, o, kids, key)), o.String())
	}
	assert.Empty(t, Trees.Collect(Binary(sample(), Trees.Order(42), kids, key)))
}

func TestHeightCount(t *testing.T) {
	assert.Equal(t, 3, Height(sample(), kids))
	assert.Equal(t, 6, Count(sample(), kids))
	assert.Zero(t, Height[*tnode](nil, kids))
	assert.Zero(t, Count[*tnode](nil, kids))
}

func TestDraw(t *testing.T) {
	assert.Empty(t, Draw[*tnode](nil, kids, func(n *tnode) string { return "" }))
	s := Draw(sample(), kids, func(n *tnode) string { return strconv.Itoa(n.v) })
	assert.Contains(t, s, "[L]  2")
	assert.Contains(t, s, "[R]  7")
	assert.Equal(t, "4\n", s[:2])
}
