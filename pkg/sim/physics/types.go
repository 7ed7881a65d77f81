package physics

import (
	"context"

	fx "github.com/robotalks/pendulum.go/pkg/framework"
)

// Context provides the simulation context.
type Context interface {
	fx.TimeSource
	Context() context.Context
}

// Dynamics integrates a body driven by the cart velocity (mm/s)
// up to the time of the context.
type Dynamics interface {
	Advance(ctx Context, cartVel float64)
}
