package network

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cbodonnell/textquest/pkg/log"
	"github.com/cbodonnell/textquest/pkg/messages"
	"github.com/cbodonnell/textquest/pkg/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
)

const (
	DefaultServerURL      = "http://localhost:8000"
	DefaultRequestTimeout = 30 * time.Second
)

// Client talks to the game server over HTTP.
type Client struct {
	serverURL  string
	httpClient *http.Client
}

type NewClientOptions struct {
	// ServerURL is the base URL of the game server. Defaults to DefaultServerURL.
	ServerURL string
	// Timeout bounds every request. Defaults to DefaultRequestTimeout.
	Timeout time.Duration
	// HTTPClient overrides the underlying client; Timeout is ignored when set.
	HTTPClient *http.Client
}

func NewClient(opts NewClientOptions) *Client {
	serverURL := strings.TrimRight(opts.ServerURL, "/")
	if serverURL == "" {
		serverURL = DefaultServerURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultRequestTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		serverURL:  serverURL,
		httpClient: httpClient,
	}
}

// ServerURL returns the base URL requests are sent to.
func (c *Client) ServerURL() string {
	return c.serverURL
}

// Reset asks the server to restart the game. The response body is ignored.
func (c *Client) Reset(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, messages.PathReset, nil, nil)
}

// Chat sends one line of player input and returns the game's reply.
func (c *Client) Chat(ctx context.Context, input string) (*messages.ChatResponse, error) {
	resp := &messages.ChatResponse{}
	if err := c.do(ctx, http.MethodPost, messages.PathChat, &messages.ChatRequest{UserInput: input}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) Inventory(ctx context.Context) (string, error) {
	resp := &messages.InventoryResponse{}
	if err := c.do(ctx, http.MethodGet, messages.PathCheckInventory, nil, resp); err != nil {
		return "", err
	}
	return resp.Inventory, nil
}

func (c *Client) Location(ctx context.Context) (string, error) {
	resp := &messages.LocationResponse{}
	if err := c.do(ctx, http.MethodGet, messages.PathCheckLocation, nil, resp); err != nil {
		return "", err
	}
	return resp.Location, nil
}

func (c *Client) Observation(ctx context.Context) (string, error) {
	resp := &messages.ObservationResponse{}
	if err := c.do(ctx, http.MethodGet, messages.PathCheckObs, nil, resp); err != nil {
		return "", err
	}
	return resp.Obs, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) (err error) {
	ctx, span := telemetry.Tracer("network").Start(ctx, method+" "+path)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.serverURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	log.Trace("Sending %s %s", method, req.URL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send %s request: %w", path, err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(resp.Body)
		return &ErrUnexpectedStatus{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
