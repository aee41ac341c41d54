package state

import (
	"context"

	"github.com/cbodonnell/textquest/pkg/world"
)

// StateManager provides shared access to the server's world.
// Implementations must be thread-safe.
type StateManager interface {
	// Do runs fn with exclusive access to the current world.
	Do(ctx context.Context, fn func(w *world.World) error) error
	// Reset replaces the world with a fresh one.
	Reset(ctx context.Context) error
}
