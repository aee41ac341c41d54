package network

import (
	"context"
	"sync"

	"github.com/cbodonnell/textquest/pkg/log"
	"github.com/cbodonnell/textquest/pkg/messages"
	"github.com/cbodonnell/textquest/pkg/queue"
)

// ServerMessage carries the outcome of a background request back to the UI loop.
type ServerMessage struct {
	Type    messages.MessageType
	Payload interface{}
	Err     error
}

// Manager runs requests off the UI goroutine and collects their results.
type Manager struct {
	serverMessageQueue queue.Queue[*ServerMessage]
	clientCtx          context.Context
	cancelClientCtx    context.CancelFunc
	clientWaitGroup    *sync.WaitGroup
	lock               sync.Mutex
	logger             *log.Logger
}

// NewManager creates a new network manager.
func NewManager(messageQueue queue.Queue[*ServerMessage]) *Manager {
	return &Manager{
		serverMessageQueue: messageQueue,
		clientWaitGroup:    &sync.WaitGroup{},
		logger:             log.Default().WithComponent("network"),
	}
}

// Start starts the network manager. Tasks receive a context derived from ctx.
func (m *Manager) Start(ctx context.Context) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.cancelClientCtx != nil {
		m.logger.Warn("Network manager already started")
		return nil
	}
	m.clientCtx, m.cancelClientCtx = context.WithCancel(ctx)
	m.logger.Info("Network manager started")
	return nil
}

// Stop cancels in-flight tasks, waits for them and clears the server message queue.
func (m *Manager) Stop() error {
	m.lock.Lock()
	if m.cancelClientCtx == nil {
		m.lock.Unlock()
		m.logger.Warn("Network manager already stopped")
		return nil
	}
	m.cancelClientCtx()
	m.cancelClientCtx = nil
	m.clientCtx = nil
	m.lock.Unlock()

	m.logger.Debug("Waiting for requests to stop")
	m.clientWaitGroup.Wait()
	m.serverMessageQueue.ClearQueue()

	m.logger.Info("Network manager stopped")
	return nil
}

// Running reports whether Start has been called without a matching Stop.
func (m *Manager) Running() bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.cancelClientCtx != nil
}

// Go runs task on a new goroutine. When the manager is not running the task
// still runs, but with an already cancelled context.
func (m *Manager) Go(task func(ctx context.Context)) {
	m.lock.Lock()
	ctx := m.clientCtx
	if ctx == nil {
		stopped, cancel := context.WithCancelCause(context.Background())
		cancel(&ErrManagerStopped{})
		ctx = stopped
	} else {
		m.clientWaitGroup.Add(1)
	}
	running := m.cancelClientCtx != nil
	m.lock.Unlock()

	go func() {
		if running {
			defer m.clientWaitGroup.Done()
		}
		task(ctx)
	}()
}

// Publish queues a result for the UI loop. Results are dropped when the queue is full.
func (m *Manager) Publish(msg *ServerMessage) {
	if err := m.serverMessageQueue.TryEnqueue(msg); err != nil {
		m.logger.Warn("Dropping %s result: %v", msg.Type, err)
	}
}

func (m *Manager) ServerMessageQueue() queue.Queue[*ServerMessage] {
	return m.serverMessageQueue
}
