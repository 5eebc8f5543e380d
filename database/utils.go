package database

import (
	"context"
	"time"
)

// Timeouts for repository calls that run outside a request context.
const (
	ShortTimeout  = 5 * time.Second
	MediumTimeout = 10 * time.Second
	LongTimeout   = 30 * time.Second
)

func WithShortTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), ShortTimeout)
}

func WithMediumTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), MediumTimeout)
}

// boundedContext caps ctx at d unless it already has an earlier deadline.
func boundedContext(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) <= d {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
