package flow

import (
	"context"
	"errors"
	"testing"

	"github.com/cbodonnell/textquest/client/network"
	"github.com/cbodonnell/textquest/client/state"
	"github.com/cbodonnell/textquest/pkg/messages"
	"github.com/cbodonnell/textquest/pkg/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	chatResp  *messages.ChatResponse
	chatErr   error
	inventory string
	location  string
	obs       string
	obsErr    error
	resetErr  error
	inputs    []string
	resets    int
}

func (f *fakeClient) Chat(ctx context.Context, input string) (*messages.ChatResponse, error) {
	f.inputs = append(f.inputs, input)
	return f.chatResp, f.chatErr
}

func (f *fakeClient) Inventory(ctx context.Context) (string, error) {
	return f.inventory, nil
}

func (f *fakeClient) Location(ctx context.Context) (string, error) {
	return f.location, nil
}

func (f *fakeClient) Observation(ctx context.Context) (string, error) {
	return f.obs, f.obsErr
}

func (f *fakeClient) Reset(ctx context.Context) error {
	f.resets++
	return f.resetErr
}

// inlineDispatcher runs tasks synchronously so results are queued before Go returns.
type inlineDispatcher struct {
	queue *queue.InMemoryQueue[*network.ServerMessage]
}

func newInlineDispatcher() *inlineDispatcher {
	return &inlineDispatcher{queue: queue.NewInMemoryQueue[*network.ServerMessage](16)}
}

func (d *inlineDispatcher) Go(task func(ctx context.Context)) {
	task(context.Background())
}

func (d *inlineDispatcher) Publish(msg *network.ServerMessage) {
	d.queue.Enqueue(msg)
}

func (d *inlineDispatcher) ServerMessageQueue() queue.Queue[*network.ServerMessage] {
	return d.queue
}

func newTestController(client *fakeClient) (*Controller, *state.ResettableLocationStore, *state.SessionStore) {
	dispatcher := newInlineDispatcher()
	location := state.NewResettableLocationStore(client, dispatcher)
	session := state.NewSessionStore()
	c := NewController(NewControllerOptions{
		Location:   location,
		Session:    session,
		Client:     client,
		Dispatcher: dispatcher,
	})
	return c, location, session
}

func messageTexts(s *state.SessionStore) []string {
	var out []string
	for _, m := range s.Messages() {
		out = append(out, string(m.Role)+": "+m.Text)
	}
	return out
}

func TestGameMode_String(t *testing.T) {
	assert.Equal(t, "Playing", GameModePlaying.String())
	assert.Equal(t, "Waiting", GameModeWaiting.String())
	assert.Equal(t, "Won", GameModeWon.String())
	assert.Equal(t, "Unknown", GameMode(42).String())
}

func TestController_Submit(t *testing.T) {
	client := &fakeClient{chatResp: &messages.ChatResponse{Message: "-= School =-", Location: "School"}}
	c, location, session := newTestController(client)

	session.SetUserInput("  go north ")
	require.True(t, c.Submit())

	assert.Equal(t, []string{"go north"}, client.inputs)
	assert.Equal(t, "", session.UserInput())
	assert.True(t, session.IsLoading())
	assert.Equal(t, GameModeWaiting, c.Mode())

	c.Update()

	assert.False(t, session.IsLoading())
	assert.Equal(t, GameModePlaying, c.Mode())
	assert.Equal(t, []string{"user: go north", "game: -= School =-"}, messageTexts(session))
	assert.Equal(t, "School", session.CurrentLocation())
	assert.Equal(t, "School", location.CurrentLocation())
}

func TestController_Submit_ignored(t *testing.T) {
	client := &fakeClient{chatResp: &messages.ChatResponse{Message: "ok"}}
	c, _, session := newTestController(client)

	session.SetUserInput("   ")
	assert.False(t, c.Submit(), "blank input")

	session.SetUserInput("look")
	session.SetLoading(true)
	assert.False(t, c.Submit(), "request in flight")
	assert.Equal(t, "look", session.UserInput())
	assert.Empty(t, client.inputs)
}

func TestController_Submit_failure(t *testing.T) {
	client := &fakeClient{chatErr: errors.New("connection refused")}
	c, _, session := newTestController(client)

	session.SetUserInput("look")
	c.Submit()
	c.Update()

	assert.False(t, session.IsLoading())
	assert.Equal(t, []string{
		"user: look",
		"system: Could not reach the game server: connection refused",
	}, messageTexts(session))
	assert.Equal(t, "Home", session.CurrentLocation())
}

func TestController_win(t *testing.T) {
	client := &fakeClient{chatResp: &messages.ChatResponse{Message: "You take the treasure.", Location: "Central Square", Win: true}}
	c, _, session := newTestController(client)

	session.SetUserInput("take treasure from well")
	c.Submit()
	c.Update()

	assert.Equal(t, GameModeWon, c.Mode())
	msgs := session.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, state.RoleSystem, msgs[2].Role)

	// a second winning reply does not announce again
	session.SetUserInput("inventory")
	c.Submit()
	c.Update()
	assert.Len(t, session.Messages(), 5)
}

func TestController_Reset(t *testing.T) {
	client := &fakeClient{
		chatResp: &messages.ChatResponse{Message: "win", Location: "Central Square", Win: true},
		location: "House 1",
	}
	c, location, session := newTestController(client)
	session.SetUserInput("take treasure from well")
	c.Submit()
	c.Update()
	require.Equal(t, GameModeWon, c.Mode())

	c.Reset()
	c.Update()

	assert.Equal(t, 1, client.resets)
	assert.Equal(t, GameModePlaying, c.Mode())
	assert.Equal(t, "House 1", location.CurrentLocation())
	assert.Equal(t, "House 1", session.CurrentLocation())
	msgs := session.Messages()
	assert.Equal(t, "The game has been reset.", msgs[len(msgs)-1].Text)
}

func TestController_Reset_failure(t *testing.T) {
	client := &fakeClient{resetErr: errors.New("boom")}
	c, location, session := newTestController(client)

	c.Reset()
	c.Update()

	assert.Equal(t, 1, client.resets)
	assert.Equal(t, "Home", location.CurrentLocation())
	assert.Equal(t, []string{"system: Could not reset the game: boom"}, messageTexts(session))
}

func TestController_RefreshInventory(t *testing.T) {
	client := &fakeClient{inventory: "You are carrying: a rope."}
	c, _, session := newTestController(client)

	c.RefreshInventory()
	assert.Equal(t, "", c.Inventory())

	c.Update()
	assert.Equal(t, "You are carrying: a rope.", c.Inventory())
	assert.Empty(t, session.Messages())
}

func TestController_RefreshObservation(t *testing.T) {
	client := &fakeClient{obs: "-= House 1 =-\nA typical resident's home."}
	c, _, session := newTestController(client)

	c.RefreshObservation()
	c.Update()

	assert.Equal(t, []string{"game: -= House 1 =-\nA typical resident's home."}, messageTexts(session))
}

func TestController_RefreshObservation_emptyOrFailed(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeClient
	}{
		{name: "empty", client: &fakeClient{}},
		{name: "error", client: &fakeClient{obsErr: errors.New("connection refused")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, session := newTestController(tt.client)
			c.RefreshObservation()
			c.Update()
			assert.Empty(t, session.Messages())
		})
	}
}

func TestController_Abort(t *testing.T) {
	c, _, session := newTestController(&fakeClient{})

	c.Abort()
	assert.Empty(t, session.Messages(), "nothing pending")

	session.SetLoading(true)
	c.Abort()

	assert.False(t, session.IsLoading())
	assert.Equal(t, GameModePlaying, c.Mode())
	assert.Equal(t, []string{"system: The request was cancelled."}, messageTexts(session))

	session.SetUserInput("look")
	assert.True(t, c.Submit())
}
