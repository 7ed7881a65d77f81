package physics

import (
	"context"
	"time"
)

// NowContext wraps context.Context with current time.
type NowContext struct {
	now time.Time
	ctx context.Context
}

// At creates NowContext with the specified time.
func At(ctx context.Context, now time.Time) Context {
	return &NowContext{now: now, ctx: ctx}
}

// Time implements TimeSource.
func (c NowContext) Time() time.Time {
	return c.now
}

// Context implements Context.
func (c NowContext) Context() context.Context {
	return c.ctx
}
