package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/cbodonnell/textquest/pkg/world"
)

type InMemoryStateManager struct {
	lock     sync.Mutex
	newWorld func() *world.World
	world    *world.World
}

// NewInMemoryStateManager creates a manager that builds worlds with newWorld.
// A nil newWorld defaults to world.NewVillage.
func NewInMemoryStateManager(newWorld func() *world.World) *InMemoryStateManager {
	if newWorld == nil {
		newWorld = world.NewVillage
	}
	return &InMemoryStateManager{
		newWorld: newWorld,
		world:    newWorld(),
	}
}

func (m *InMemoryStateManager) Do(ctx context.Context, fn func(w *world.World) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	return fn(m.world)
}

func (m *InMemoryStateManager) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w := m.newWorld()
	if w == nil {
		return fmt.Errorf("world constructor returned nil")
	}

	m.lock.Lock()
	defer m.lock.Unlock()
	m.world = w
	return nil
}
