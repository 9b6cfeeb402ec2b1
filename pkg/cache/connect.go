package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnavailable reports a backend that never answered its ping.
	ErrUnavailable = errors.New("cache backend unavailable")

	// ErrUnknownBackend reports a Config.Backend that Open does not know.
	ErrUnknownBackend = errors.New("unknown cache backend")
)

// Ping schedule for the network backends. The delay doubles after every
// failed attempt.
var (
	pingAttempts = 3
	pingDelay    = time.Second
)

// waitReachable pings a freshly dialled backend until it answers. It gives
// up with ErrUnavailable after pingAttempts failures, or with ctx.Err() when
// ctx ends between attempts.
func waitReachable(ctx context.Context, backend string, ping func(context.Context) error) error {
	delay := pingDelay
	var err error
	for attempt := 1; ; attempt++ {
		if err = ping(ctx); err == nil {
			return nil
		}
		if attempt >= pingAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return fmt.Errorf("%w: %s ping failed %d times: %v", ErrUnavailable, backend, pingAttempts, err)
}
