package Queues

// Queue is a FIFO container.
type Queue[T any] interface {
	Push(item T)
	// Pop the oldest item. Returns *EmptyQueueError if there is none.
	Pop() (T, error)
	// Peek at the oldest item without removing it. The zero value is returned
	// on an empty queue.
	Peek() T
	Empty() bool
}

// ArrayQueue is a Queue backed by a growable circular array.
type ArrayQueue[T any] interface {
	Queue[T]
	// Shrink the backing array to fit the current content.
	Shrink()
	// Clear the queue without releasing the backing array.
	Clear()
	Size() uint
	resize(newLen uint)
}

type EmptyQueueError struct {
}

func (e *EmptyQueueError) Error() string {
	return "Queue is Empty: cannot Pop."
}
