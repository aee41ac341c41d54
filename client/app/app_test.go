package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cbodonnell/textquest/client/flow"
	"github.com/cbodonnell/textquest/client/state"
	"github.com/cbodonnell/textquest/pkg/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_initialState(t *testing.T) {
	a := New(NewAppOptions{})

	assert.Equal(t, "http://localhost:8000", a.ServerURL())
	assert.Equal(t, "Home", a.Location.CurrentLocation())
	assert.Equal(t, "GameFlow", a.Location.CurrentWindow())
	assert.Equal(t, "Home", a.Session.CurrentLocation())
	assert.Empty(t, a.Session.Messages())
	assert.False(t, a.Session.IsLoading())
	assert.Equal(t, "", a.Session.UserInput())
}

func TestApp_ResetGame_postsOnce(t *testing.T) {
	var posts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/reset" {
			posts.Add(1)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	a := New(NewAppOptions{ServerURL: server.URL})
	require.NoError(t, a.Start(context.Background()))
	defer a.Stop()

	a.Location.SetCurrentLocation("Forest")
	pending := a.Location.ResetGame()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, pending.Wait(ctx))

	assert.Equal(t, int32(1), posts.Load())
	assert.Equal(t, "Forest", a.Location.CurrentLocation())
	assert.Equal(t, state.WindowGameFlow, a.Location.CurrentWindow())
}

func TestApp_ResetGame_serverDown(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	a := New(NewAppOptions{ServerURL: url})
	require.NoError(t, a.Start(context.Background()))
	defer a.Stop()

	pending := a.Location.ResetGame()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.Error(t, pending.Wait(ctx))
}

func TestApp_chatRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(&messages.ChatResponse{Message: "-= Forest =-", Location: "Forest"})
	}))
	defer server.Close()

	a := New(NewAppOptions{ServerURL: server.URL, MessageLimit: 10})
	require.NoError(t, a.Start(context.Background()))
	defer a.Stop()

	a.Session.SetUserInput("go east")
	require.True(t, a.Controller.Submit())

	assert.Eventually(t, func() bool {
		a.Controller.Update()
		return !a.Session.IsLoading()
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, flow.GameModePlaying, a.Controller.Mode())
	assert.Equal(t, "Forest", a.Location.CurrentLocation())
	assert.Len(t, a.Session.Messages(), 2)
}

func TestApp_Stop_beforeStart(t *testing.T) {
	a := New(NewAppOptions{})
	assert.NoError(t, a.Stop())
}

func TestApp_Start_seedsObservation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/check_obs", r.URL.Path)
		json.NewEncoder(w).Encode(&messages.ObservationResponse{Obs: "-= House 1 =-"})
	}))
	defer server.Close()

	a := New(NewAppOptions{ServerURL: server.URL})
	require.NoError(t, a.Start(context.Background()))
	defer a.Stop()

	assert.Eventually(t, func() bool {
		a.Controller.Update()
		return len(a.Session.Messages()) == 1
	}, 5*time.Second, 10*time.Millisecond)

	msg := a.Session.Messages()[0]
	assert.Equal(t, state.RoleGame, msg.Role)
	assert.Equal(t, "-= House 1 =-", msg.Text)
}

func TestApp_StopDuringChat_restart(t *testing.T) {
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/check_obs", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(&messages.ObservationResponse{})
	})
	mux.HandleFunc("/chat", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	defer close(release)

	a := New(NewAppOptions{ServerURL: server.URL})
	require.NoError(t, a.Start(context.Background()))

	a.Session.SetUserInput("look")
	require.True(t, a.Controller.Submit())
	require.NoError(t, a.Stop())

	assert.False(t, a.Session.IsLoading())
	assert.Equal(t, flow.GameModePlaying, a.Controller.Mode())

	require.NoError(t, a.Start(context.Background()))
	defer a.Stop()
	a.Controller.Update()

	a.Session.SetUserInput("look")
	assert.True(t, a.Controller.Submit())
}

func TestApp_ResetGame_beforeStart(t *testing.T) {
	var posts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		posts.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	a := New(NewAppOptions{ServerURL: server.URL})
	pending := a.Location.ResetGame()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.ErrorIs(t, pending.Wait(ctx), context.Canceled)
	assert.Equal(t, int32(0), posts.Load())
}
