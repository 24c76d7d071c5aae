package Sets

import (
	"github.com/g-m-twostay/treebench/Trees"
	"github.com/g-m-twostay/treebench/Trees/engine"
	"golang.org/x/exp/constraints"
)

// Ordered is a set of ordered elements stored in a Trees.Tree. Range visits
// the elements in ascending order. It keeps its own element count, since a
// multiway engine has fewer nodes than keys.
type Ordered[E constraints.Ordered] struct {
	t  Trees.Tree[E]
	sz uint
}

// NewOrdered wraps the empty tree t. The set takes ownership of t.
func NewOrdered[E constraints.Ordered](t Trees.Tree[E]) *Ordered[E] {
	return &Ordered[E]{t: t}
}

// Put e into the set. Returns true if e wasn't present.
func (u *Ordered[E]) Put(e E) bool {
	if u.t.Put(e) != nil {
		return false
	}
	u.sz++
	return true
}

func (u *Ordered[E]) Has(e E) bool {
	return u.t.Has(e)
}

// Remove e from the set. Returns true if e was present.
func (u *Ordered[E]) Remove(e E) bool {
	if u.t.Delete(e) != nil {
		return false
	}
	u.sz--
	return true
}

func (u *Ordered[E]) Size() uint {
	return u.sz
}

// Take the smallest element without removing it. Returns the zero value if
// the set is empty.
func (u *Ordered[E]) Take() E {
	e, _ := u.t.Minimum()
	return e
}

// Range calls f on the elements in ascending order, stopping when f returns
// false. The set must not be modified by f.
func (u *Ordered[E]) Range(f func(E) bool) {
	next := u.t.Traverse(Trees.InOrder)
	for e, ok := next(); ok && f(e); e, ok = next() {
	}
}

// Slice returns the elements in ascending order.
func (u *Ordered[E]) Slice() []E {
	s := make([]E, 0, u.sz)
	u.Range(func(e E) bool {
		s = append(s, e)
		return true
	})
	return s
}

// Tree returns the backing tree.
func (u *Ordered[E]) Tree() Trees.Tree[E] {
	return u.t
}

// PutAll elements of o. Returns the number of elements added.
func (u *Ordered[E]) PutAll(o Set[E]) (n uint) {
	o.Range(func(e E) bool {
		if u.Put(e) {
			n++
		}
		return true
	})
	return
}

// RemoveAll elements of o. Returns the number of elements removed.
func (u *Ordered[E]) RemoveAll(o Set[E]) (n uint) {
	o.Range(func(e E) bool {
		if u.Remove(e) {
			n++
		}
		return true
	})
	return
}

func (u *Ordered[E]) Eq(o Set[E]) bool {
	if u.sz != o.Size() {
		return false
	}
	eq := true
	o.Range(func(e E) bool {
		eq = u.Has(e)
		return eq
	})
	return eq
}

func (u *Ordered[E]) Union(o Set[E]) {
	u.PutAll(o)
}

// Intersect keeps only the elements also in o.
func (u *Ordered[E]) Intersect(o Set[E]) {
	var drop []E
	u.Range(func(e E) bool {
		if !o.Has(e) {
			drop = append(drop, e)
		}
		return true
	})
	for _, e := range drop {
		u.Remove(e)
	}
}

// Filter returns a new set, backed by a fresh tree of the same kind, holding
// the elements for which keep returns true.
func (u *Ordered[E]) Filter(keep func(E) bool) ExtendedSet[E] {
	t, err := engine.New[E](u.t.Kind())
	if err != nil {
		panic(err)
	}
	res := NewOrdered(t)
	u.Range(func(e E) bool {
		if keep(e) {
			res.Put(e)
		}
		return true
	})
	return res
}
