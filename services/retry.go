package services

import (
	"SMCHealth/exceptions"
	"context"
	"errors"
	"time"
)

// RetryPolicy bounds how often a unit of work is re-run after a concurrency conflict.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// Do runs fn until it succeeds, fails with anything but ErrConflict, or the
// attempts are used up. Delays double after every conflict.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		err = fn(ctx)
		if err == nil || !errors.Is(err, exceptions.ErrConflict) {
			return err
		}
		if attempt == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.BaseDelay << attempt):
		}
	}
	return err
}
