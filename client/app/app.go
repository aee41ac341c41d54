// Package app wires the client stores to their collaborators and owns their lifecycle.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/cbodonnell/textquest/client/flow"
	"github.com/cbodonnell/textquest/client/network"
	"github.com/cbodonnell/textquest/client/state"
	"github.com/cbodonnell/textquest/pkg/queue"
)

// App is the context object handed to UI components at construction time.
type App struct {
	Location   *state.ResettableLocationStore
	Session    *state.SessionStore
	Controller *flow.Controller

	client  *network.Client
	manager *network.Manager
}

type NewAppOptions struct {
	ServerURL      string
	RequestTimeout time.Duration
	// MessageLimit bounds the session transcript; zero keeps every message.
	MessageLimit int
	// QueueSize is the number of results that may wait for the UI loop.
	QueueSize int
}

func New(opts NewAppOptions) *App {
	client := network.NewClient(network.NewClientOptions{
		ServerURL: opts.ServerURL,
		Timeout:   opts.RequestTimeout,
	})
	manager := network.NewManager(queue.NewInMemoryQueue[*network.ServerMessage](opts.QueueSize))

	location := state.NewResettableLocationStore(client, manager)
	session := state.NewSessionStore(state.WithMessageLimit(opts.MessageLimit))

	return &App{
		Location: location,
		Session:  session,
		Controller: flow.NewController(flow.NewControllerOptions{
			Location:   location,
			Session:    session,
			Client:     client,
			Dispatcher: manager,
		}),
		client:  client,
		manager: manager,
	}
}

// Start begins the application lifetime. Requests issued before Start fail immediately.
func (a *App) Start(ctx context.Context) error {
	if err := a.manager.Start(ctx); err != nil {
		return fmt.Errorf("failed to start network manager: %w", err)
	}
	a.Controller.RefreshObservation()
	return nil
}

// Stop cancels in-flight requests and waits for them to return. Their results
// are discarded, so a pending chat request is settled here. Stop must be called
// from the goroutine that owns the stores.
func (a *App) Stop() error {
	if err := a.manager.Stop(); err != nil {
		return fmt.Errorf("failed to stop network manager: %w", err)
	}
	a.Controller.Abort()
	return nil
}

// ServerURL returns the game server the application talks to.
func (a *App) ServerURL() string {
	return a.client.ServerURL()
}
