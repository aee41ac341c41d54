package network

import "fmt"

// ErrUnexpectedStatus is returned when the game server answers with a non-2xx status.
type ErrUnexpectedStatus struct {
	StatusCode int
	Body       string
}

func (e *ErrUnexpectedStatus) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// ErrManagerStopped is returned for tasks launched while the manager is not running.
type ErrManagerStopped struct{}

func (e *ErrManagerStopped) Error() string {
	return "network manager is not running"
}
