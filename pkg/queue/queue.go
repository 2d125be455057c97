package queue

import (
	"context"
	"time"
)

// Message is one delivered conversion task. Handle is the queue's receipt
// for acknowledging the delivery; it is opaque to callers.
type Message struct {
	JobID  string
	Handle string
}

// TaskQueue defines the interface for the conversion task queue. Delivery is
// at-least-once: a task that is received but never acknowledged comes back
// after the visibility timeout, so consumers must tolerate duplicates.
type TaskQueue interface {
	// Enqueue schedules a conversion for processing after the given delay.
	// A zero delay means immediate delivery.
	Enqueue(ctx context.Context, jobID string, delay time.Duration) error

	// Receive blocks until tasks are available or the context is cancelled.
	// It may return an empty slice on a quiet queue.
	Receive(ctx context.Context) ([]Message, error)

	// Ack acknowledges a delivered task so it is never redelivered.
	Ack(ctx context.Context, msg Message) error
}
