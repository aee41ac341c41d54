package flow

import (
	"context"
	"fmt"
	"strings"

	"github.com/cbodonnell/textquest/client/network"
	"github.com/cbodonnell/textquest/client/state"
	"github.com/cbodonnell/textquest/pkg/log"
	"github.com/cbodonnell/textquest/pkg/messages"
	"github.com/cbodonnell/textquest/pkg/queue"
)

type GameMode int

const (
	GameModePlaying GameMode = iota
	GameModeWaiting
	GameModeWon
)

func (m GameMode) String() string {
	switch m {
	case GameModePlaying:
		return "Playing"
	case GameModeWaiting:
		return "Waiting"
	case GameModeWon:
		return "Won"
	}
	return "Unknown"
}

// GameClient is the subset of the game server API the controller needs.
type GameClient interface {
	Chat(ctx context.Context, input string) (*messages.ChatResponse, error)
	Inventory(ctx context.Context) (string, error)
	Location(ctx context.Context) (string, error)
	Observation(ctx context.Context) (string, error)
}

// Dispatcher runs background requests and carries their results back.
type Dispatcher interface {
	Go(task func(ctx context.Context))
	Publish(msg *network.ServerMessage)
	ServerMessageQueue() queue.Queue[*network.ServerMessage]
}

// Controller drives a game session. Every method except the background tasks
// it launches must be called from the UI goroutine that owns the stores.
type Controller struct {
	location   *state.ResettableLocationStore
	session    *state.SessionStore
	client     GameClient
	dispatcher Dispatcher
	won        bool
	inventory  string
}

type NewControllerOptions struct {
	Location   *state.ResettableLocationStore
	Session    *state.SessionStore
	Client     GameClient
	Dispatcher Dispatcher
}

func NewController(opts NewControllerOptions) *Controller {
	return &Controller{
		location:   opts.Location,
		session:    opts.Session,
		client:     opts.Client,
		dispatcher: opts.Dispatcher,
	}
}

// Mode reports the current game mode.
func (c *Controller) Mode() GameMode {
	if c.session.IsLoading() {
		return GameModeWaiting
	}
	if c.won {
		return GameModeWon
	}
	return GameModePlaying
}

// Inventory returns the last inventory text fetched with RefreshInventory.
func (c *Controller) Inventory() string {
	return c.inventory
}

// Submit sends the pending user input as a chat request. It returns false when
// there is nothing to send or a request is already in flight.
func (c *Controller) Submit() bool {
	input := strings.TrimSpace(c.session.UserInput())
	if input == "" || c.session.IsLoading() {
		return false
	}

	c.session.AddMessage(state.NewMessage(state.RoleUser, input))
	c.session.ClearUserInput()
	c.session.SetLoading(true)

	c.dispatcher.Go(func(ctx context.Context) {
		resp, err := c.client.Chat(ctx, input)
		c.dispatcher.Publish(&network.ServerMessage{
			Type:    messages.MessageTypeChat,
			Payload: resp,
			Err:     err,
		})
	})
	return true
}

// Reset restarts the remote game. The session transcript is kept.
func (c *Controller) Reset() {
	pending := c.location.ResetGame()
	c.dispatcher.Go(func(ctx context.Context) {
		if err := pending.Wait(ctx); err != nil {
			c.dispatcher.Publish(&network.ServerMessage{Type: messages.MessageTypeReset, Err: err})
			return
		}
		location, err := c.client.Location(ctx)
		if err != nil {
			log.Warn("Failed to fetch location after reset: %v", err)
		}
		c.dispatcher.Publish(&network.ServerMessage{Type: messages.MessageTypeReset, Payload: location})
	})
}

// RefreshInventory fetches the player's inventory in the background.
func (c *Controller) RefreshInventory() {
	c.dispatcher.Go(func(ctx context.Context) {
		inventory, err := c.client.Inventory(ctx)
		c.dispatcher.Publish(&network.ServerMessage{
			Type:    messages.MessageTypeInventory,
			Payload: inventory,
			Err:     err,
		})
	})
}

// RefreshObservation fetches the current room text in the background and adds
// it to the transcript as a game message.
func (c *Controller) RefreshObservation() {
	c.dispatcher.Go(func(ctx context.Context) {
		obs, err := c.client.Observation(ctx)
		c.dispatcher.Publish(&network.ServerMessage{
			Type:    messages.MessageTypeObservation,
			Payload: obs,
			Err:     err,
		})
	})
}

// Abort settles a request whose result will never arrive, e.g. one cancelled
// by stopping the network manager.
func (c *Controller) Abort() {
	if !c.session.IsLoading() {
		return
	}
	c.session.SetLoading(false)
	c.systemMessage("The request was cancelled.")
}

// Update applies every queued result to the stores.
func (c *Controller) Update() {
	for _, msg := range c.dispatcher.ServerMessageQueue().ReadAllMessages() {
		switch msg.Type {
		case messages.MessageTypeChat:
			c.handleChat(msg)
		case messages.MessageTypeReset:
			c.handleReset(msg)
		case messages.MessageTypeInventory:
			c.handleInventory(msg)
		case messages.MessageTypeObservation:
			c.handleObservation(msg)
		default:
			log.Warn("Unhandled server message type %q", msg.Type)
		}
	}
}

func (c *Controller) handleChat(msg *network.ServerMessage) {
	c.session.SetLoading(false)
	if msg.Err != nil {
		log.Error("Chat request failed: %v", msg.Err)
		c.systemMessage(fmt.Sprintf("Could not reach the game server: %v", msg.Err))
		return
	}
	resp, ok := msg.Payload.(*messages.ChatResponse)
	if !ok || resp == nil {
		log.Error("Failed to cast chat payload to messages.ChatResponse")
		return
	}

	c.session.AddMessage(state.NewMessage(state.RoleGame, resp.Message))
	if resp.Location != "" {
		c.setLocation(resp.Location)
	}
	if resp.Win && !c.won {
		c.won = true
		c.systemMessage("You found the treasure. You win!")
	}
}

func (c *Controller) handleReset(msg *network.ServerMessage) {
	if msg.Err != nil {
		c.systemMessage(fmt.Sprintf("Could not reset the game: %v", msg.Err))
		return
	}
	c.won = false
	c.inventory = ""
	if location, _ := msg.Payload.(string); location != "" {
		c.setLocation(location)
	}
	c.systemMessage("The game has been reset.")
}

func (c *Controller) handleInventory(msg *network.ServerMessage) {
	if msg.Err != nil {
		c.systemMessage(fmt.Sprintf("Could not load inventory: %v", msg.Err))
		return
	}
	inventory, ok := msg.Payload.(string)
	if !ok {
		log.Error("Failed to cast inventory payload to string")
		return
	}
	c.inventory = inventory
}

func (c *Controller) handleObservation(msg *network.ServerMessage) {
	if msg.Err != nil {
		log.Warn("Failed to fetch observation: %v", msg.Err)
		return
	}
	if obs, _ := msg.Payload.(string); obs != "" {
		c.session.AddMessage(state.NewMessage(state.RoleGame, obs))
	}
}

func (c *Controller) setLocation(location string) {
	c.session.SetCurrentLocation(location)
	c.location.SetCurrentLocation(location)
}

func (c *Controller) systemMessage(text string) {
	c.session.AddMessage(state.NewMessage(state.RoleSystem, text))
}
