package sim

import (
	fx "github.com/robotalks/pendulum.go/pkg/framework"
)

// Size2D defines the rectangular size in 2D.
type Size2D struct {
	CX, CY float64
}

// Pos2D defines the position in 2D, Y points down.
type Pos2D struct {
	X, Y float64
}

// Rect defines a rectangle in 2D.
type Rect struct {
	Pos2D
	Size2D
}

// Pose2D defines the pose in 2D.
type Pose2D struct {
	Pos2D
	Orientation Angle
}

// Angle is the common representation of angle,
// supporting multiple units.
type Angle float64

// Rectangular object provides an rectangluar outline dimension.
type Rectangular interface {
	OutlineRect() Rect
}

// Positionable2D object maintains a 2D position.
type Positionable2D interface {
	Position2D() Pose2D
}

// Object represents an object in the world.
type Object interface {
	fx.Named
}

// ObjectsChangeListener listens for object changes.
type ObjectsChangeListener interface {
	ObjectsChanged(fx.ControlContext, ...Object)
	ObjectsRemoved(fx.ControlContext, ...Object)
}

// ObjectsChangeSubscriber subscribes objects change notifications.
type ObjectsChangeSubscriber interface {
	SubscribeObjectsChange(ObjectsChangeListener)
}

// Add is a helper to add Pos2D.
func (p Pos2D) Add(p1 Pos2D) Pos2D {
	return Pos2D{X: p.X + p1.X, Y: p.Y + p1.Y}
}
