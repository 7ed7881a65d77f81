// Package cart simulates the cart and pendulum rig driven by a
// simulated motor controller.
package cart

import (
	"time"

	fx "github.com/robotalks/pendulum.go/pkg/framework"
	"github.com/robotalks/pendulum.go/pkg/l0/comm"
	"github.com/robotalks/pendulum.go/pkg/sim"
	"github.com/robotalks/pendulum.go/pkg/sim/device"
	"github.com/robotalks/pendulum.go/pkg/sim/physics/pendulum"
	"github.com/robotalks/pendulum.go/pkg/sim/visualization/see"
)

// Rig couples the motor controller speed to the pendulum simulation.
type Rig struct {
	Device   *device.SMC
	Pendulum *pendulum.Engine

	CartWidth float64
	// SpeedMax is the cart speed (mm/s) at full motor speed.
	SpeedMax float64

	sim.ObjectsChangeCaster

	name string
	last time.Time
}

// NewRig creates a Rig.
func NewRig(name string, smc *device.SMC, engine *pendulum.Engine) *Rig {
	return &Rig{
		Device:    smc,
		Pendulum:  engine,
		CartWidth: DefaultCartWidth,
		SpeedMax:  DefaultSpeedMax,
		name:      name,
	}
}

// Name implements Named.
func (r *Rig) Name() string {
	return r.name
}

// AddToLoop implements LoopAdder.
func (r *Rig) AddToLoop(l *fx.Loop) {
	l.AddController(fx.PrLvAcuate, fx.ControlFunc(r.Simulate))
}

// CartVelocity converts the motor speed into cart velocity (mm/s).
func (r *Rig) CartVelocity(speed float64) float64 {
	return speed * r.SpeedMax / float64(comm.FullSpeed)
}

// Simulate advances the simulation to the time of current iteration.
func (r *Rig) Simulate(cc fx.ControlContext) error {
	now := cc.Time()
	var dt time.Duration
	if !r.last.IsZero() {
		dt = now.Sub(r.last)
	}
	r.last = now
	speed := r.Device.Step(dt)
	r.Pendulum.Advance(cc, r.CartVelocity(speed))
	r.ObjectsChanged(cc, r)
	return nil
}

// OutlineRect implements Rectangular.
func (r *Rig) OutlineRect() sim.Rect {
	return sim.Rect{
		Pos2D:  sim.Pos2D{X: -r.CartWidth / 2, Y: -r.CartWidth / 4},
		Size2D: sim.Size2D{CX: r.CartWidth, CY: r.CartWidth / 2},
	}
}

// Position2D implements Positionable2D. The origin is the track center.
func (r *Rig) Position2D() sim.Pose2D {
	return sim.Pose2D{
		Pos2D:       sim.Pos2D{X: r.Pendulum.CartX - r.Pendulum.TrackLength/2},
		Orientation: r.Pendulum.Pole(),
	}
}

// MapObject implements see.ObjectMapper, mapping the rig into the cart,
// the arm and the mass.
func (r *Rig) MapObject(vo see.VisibleObject) []see.Object {
	id := see.ObjectID(vo.Name())
	pose := vo.Position2D()
	rc := vo.OutlineRect()
	mass := r.Pendulum.Mass.Add(sim.Pos2D{X: -r.Pendulum.TrackLength / 2})
	return []see.Object{
		see.NewObject("cart", id+".cart").
			At(pose.X, 0).
			Rc(rc.X, rc.Y, rc.CX, rc.CY),
		see.NewObject("arm", id+".arm").
			At(pose.X, 0).
			Rotate(pose.Orientation.Degrees()).
			With("length", r.Pendulum.ArmLength),
		see.NewObject("mass", id+".mass").
			At(mass.X, mass.Y).
			Radius(r.CartWidth / 5),
	}
}
