package state

import (
	"context"

	"github.com/cbodonnell/textquest/pkg/log"
)

// Resetter asks the game server to restart the game.
type Resetter interface {
	Reset(ctx context.Context) error
}

// Launcher runs a task outside of the caller's goroutine.
// The context handed to the task is cancelled when the launcher shuts down.
type Launcher interface {
	Go(task func(ctx context.Context))
}

// PendingReset is the result handle of a reset request.
// Callers may ignore it entirely.
type PendingReset struct {
	done chan struct{}
	err  error
}

func newPendingReset() *PendingReset {
	return &PendingReset{done: make(chan struct{})}
}

func (p *PendingReset) finish(err error) {
	p.err = err
	close(p.done)
}

// Done is closed once the request has completed.
func (p *PendingReset) Done() <-chan struct{} {
	return p.done
}

// Err returns the request error. It is only meaningful after Done is closed.
func (p *PendingReset) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}

// Wait blocks until the request completes or ctx is done.
func (p *PendingReset) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ResettableLocationStore is a LocationStore that can also reset the remote game.
type ResettableLocationStore struct {
	*LocationStore
	resetter Resetter
	launcher Launcher
}

func NewResettableLocationStore(resetter Resetter, launcher Launcher) *ResettableLocationStore {
	return &ResettableLocationStore{
		LocationStore: NewLocationStore(),
		resetter:      resetter,
		launcher:      launcher,
	}
}

// ResetGame sends a single reset request without waiting for it.
// No store field is touched and failed requests are not retried.
// The request runs with the launcher's context: a launcher that has not been
// started, or has been stopped, hands it a cancelled context, so no POST is
// sent and the returned handle reports the cancellation.
func (s *ResettableLocationStore) ResetGame() *PendingReset {
	pending := newPendingReset()
	s.launcher.Go(func(ctx context.Context) {
		err := s.resetter.Reset(ctx)
		if err != nil {
			log.Warn("Failed to reset game: %v", err)
		} else {
			log.Debug("Game reset requested")
		}
		pending.finish(err)
	})
	return pending
}
