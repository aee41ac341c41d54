package queue

import "errors"

// ErrQueueFull is returned by TryEnqueue when the queue has no free slot.
var ErrQueueFull = errors.New("queue is full")

// Queue represents a bounded FIFO queue.
type Queue[T any] interface {
	Enqueue(item T)
	TryEnqueue(item T) error
	Dequeue() T
	Size() int
	ReadAllMessages() []T
	ClearQueue()
}
