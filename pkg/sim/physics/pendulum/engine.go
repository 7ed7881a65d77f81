// Package pendulum simulates the pendulum swinging on the cart.
//
// The pendulum is integrated with explicit Euler steps of a fixed size.
// The mass keeps its position while the cart moves under it, so moving
// the cart changes the angle seen by the next step.
package pendulum

import (
	"math"
	"time"

	"github.com/robotalks/pendulum.go/pkg/sim"
	"github.com/robotalks/pendulum.go/pkg/sim/physics"
)

// Params defines the physical parameters.
type Params struct {
	Step        time.Duration // integration step
	Gravity     float64       // m/s^2
	Length      float64       // m, effective length for the dynamics
	ArmLength   float64       // mm, drawn distance between cart and mass
	TrackLength float64       // mm
}

// DefaultParams are the parameters of the rig.
var DefaultParams = Params{
	Step:        10 * time.Millisecond,
	Gravity:     9.81,
	Length:      1.0,
	ArmLength:   250,
	TrackLength: 1000,
}

// DefaultStartAngle is slightly off the upright position.
var DefaultStartAngle = sim.AngleFromRadians(math.Pi + math.Pi/10)

// State is the simulated state. Angle 0 is hanging down.
type State struct {
	CartX    float64 // mm from the left end of the track
	CartVel  float64 // mm/s
	Angle    float64 // radians
	Velocity float64 // radians/s
	Mass     sim.Pos2D
}

// Engine integrates the pendulum.
type Engine struct {
	Params
	State

	last time.Time
}

var _ physics.Dynamics = (*Engine)(nil)

// New creates an Engine with the cart centered.
func New(params Params) *Engine {
	e := &Engine{Params: params}
	e.Reset(params.TrackLength/2, DefaultStartAngle.Radians())
	return e
}

// Reset places the cart and the pendulum at rest.
func (e *Engine) Reset(cartX, angle float64) {
	e.State = State{CartX: cartX, Angle: angle}
	e.placeMass()
	e.last = time.Time{}
}

// Update performs one step with control as the cart acceleration (mm/s^2).
func (e *Engine) Update(control float64) {
	dt := e.Params.Step.Seconds()
	e.Angle = math.Atan2(e.Mass.X-e.CartX, e.Mass.Y)
	e.Velocity -= e.Gravity * math.Sin(e.Angle) * dt / e.Length
	e.Angle += dt * e.Velocity
	e.placeMass()

	e.CartVel += dt * control
	dx := dt * e.CartVel
	e.CartX += dx
	if e.CartX > e.TrackLength || e.CartX < 0 {
		e.CartX -= dx
	}
}

// Advance implements physics.Dynamics. The cart runs at cartVel and the
// pendulum is integrated up to the time of ctx.
func (e *Engine) Advance(ctx physics.Context, cartVel float64) {
	now := ctx.Time()
	if e.last.IsZero() {
		e.last = now
		return
	}
	e.CartVel = cartVel
	for step := e.Params.Step; now.Sub(e.last) >= step; e.last = e.last.Add(step) {
		e.Update(0)
	}
}

// Pole returns the pole angle in the drawing frame, which is the
// pendulum angle minus 90 degrees.
func (e *Engine) Pole() sim.Angle {
	return sim.AngleFromRadians(e.Angle - math.Pi/2)
}

func (e *Engine) placeMass() {
	e.Mass = sim.Pos2D{
		X: e.CartX + e.ArmLength*math.Sin(e.Angle),
		Y: e.ArmLength * math.Cos(e.Angle),
	}
}
