package Queues

// Ring is a growable circular array queue. The zero value is an empty queue
// ready to use.
type Ring[T any] struct {
	sz, head, tail uint
	content        []T
}

// MakeRing returns a Ring with room for initCap items before it grows.
func MakeRing[T any](initCap uint) *Ring[T] {
	return &Ring[T]{content: make([]T, initCap)}
}

func (u *Ring[T]) Empty() bool {
	return u.sz == 0
}

func (u *Ring[T]) Size() uint {
	return u.sz
}

// resize the backing array to newLen>=sz, unrolling the content to start at 0.
func (u *Ring[T]) resize(newLen uint) {
	nc := make([]T, newLen)
	if u.sz > 0 {
		if u.head < u.tail {
			copy(nc, u.content[u.head:u.tail])
		} else {
			n := copy(nc, u.content[u.head:])
			copy(nc[n:], u.content[:u.tail])
		}
	}
	u.head, u.tail = 0, u.sz%newLen
	u.content = nc
}

func (u *Ring[T]) Push(item T) {
	if u.sz == uint(len(u.content)) {
		u.resize(u.sz*3/2 + 2)
	}
	u.content[u.tail] = item
	u.tail = (u.tail + 1) % uint(len(u.content))
	u.sz++
}

func (u *Ring[T]) Pop() (item T, ok bool) {
	if u.sz == 0 {
		return
	}
	item = u.content[u.head]
	u.content[u.head] = *new(T) //drop the reference so popped nodes can be collected.
	u.head = (u.head + 1) % uint(len(u.content))
	u.sz--
	return item, true
}

func (u *Ring[T]) Peek() (item T, ok bool) {
	if u.sz == 0 {
		return
	}
	return u.content[u.head], true
}

// Clear the queue, keeping the backing array.
func (u *Ring[T]) Clear() {
	clear(u.content)
	u.head, u.tail, u.sz = 0, 0, 0
}
