package websockets

import "context"

// ConnectionManager tracks live WebSocket connections so conversion and
// balance updates can be pushed to every listener.
type ConnectionManager interface {
	// AddConnection registers a newly opened connection.
	AddConnection(ctx context.Context, connectionID string) error

	// RemoveConnection drops a closed or stale connection.
	RemoveConnection(ctx context.Context, connectionID string) error
}

// Publisher fans a message out to all registered connections. Delivery is
// best effort; callers must not treat publish failures as operation failures.
type Publisher interface {
	Publish(ctx context.Context, message Message) error
}
