package Queues

// Queue is a FIFO. Pop on an empty queue returns (zero, false).
type Queue[T any] interface {
	Push(item T)
	Pop() (T, bool)
	Peek() (T, bool)
	Empty() bool
	Size() uint
}
