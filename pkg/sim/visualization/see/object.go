package see

import (
	"strings"

	"github.com/robotalks/pendulum.go/pkg/sim"
)

// VisibleObject is a sim object drawn in the rig view, e.g. the cart rig.
// Position2D is in track coordinates: X along the track, Y up.
type VisibleObject interface {
	sim.Object
	sim.Rectangular
	sim.Positionable2D
}

// Object is one shape sent to the viewer: the track, a track end,
// the cart body, the arm or the pendulum mass.
type Object map[string]interface{}

// Rect is an area relative to the object origin, e.g. the cart body
// centered on its origin.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Pos is a point in track coordinates.
type Pos struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ObjectMapper breaks a VisibleObject into the shapes drawn for it.
// The cart rig maps into cart, arm and mass.
type ObjectMapper interface {
	MapObject(VisibleObject) []Object
}

// MapObjectFunc is the func form of ObjectMapper.
type MapObjectFunc func(VisibleObject) []Object

// MapObject implements ObjectMapper.
func (f MapObjectFunc) MapObject(obj VisibleObject) []Object {
	return f(obj)
}

// Message is one update pushed to the viewer over the websocket.
type Message struct {
	Action   string `json:"action"`
	Object   Object `json:"object,omitempty"`
	RemoveID string `json:"id,omitempty"`
}

// Actions of Message. Reset clears the view and redraws the track.
const (
	ActionReset  = "reset"
	ActionObject = "object"
	ActionRemove = "remove"
)

// Properties of Object understood by the viewer.
const (
	PropID     = "id"
	PropType   = "type"
	PropRect   = "rect"
	PropOrigin = "origin"
	PropRadius = "radius"
	PropRotate = "rotate"
	PropStyle  = "style"
	PropStyles = "styles"
)

// ObjectID converts a sim object name to a viewer ID, "/" becomes ".".
func ObjectID(name string) string {
	return strings.Replace(name, "/", ".", -1)
}

// NewObject creates a shape of typ: "track", "end", "cart", "arm" or "mass".
func NewObject(typ, id string) Object {
	o := make(Object)
	o[PropID] = id
	o[PropType] = typ
	return o
}

// ObjectFrom creates a single shape covering the whole VisibleObject,
// sized by the larger half extent of its outline.
func ObjectFrom(typ string, vo VisibleObject) Object {
	rc, po := vo.OutlineRect(), vo.Position2D()
	rad := rc.CX
	if rc.CY > rad {
		rad = rc.CY
	}
	return NewObject(typ, ObjectID(vo.Name())).
		At(po.X, po.Y).
		Radius(rad).
		Rotate(po.Orientation.Degrees())
}

// Rc sets the outline relative to the origin.
func (o Object) Rc(x, y, w, h float64) Object {
	o[PropRect] = &Rect{X: x, Y: y, W: w, H: h}
	return o
}

// At places the origin in track coordinates.
func (o Object) At(x, y float64) Object {
	o[PropOrigin] = &Pos{X: x, Y: y}
	return o
}

// Radius sets the radius of round shapes like the mass and track ends.
func (o Object) Radius(r float64) Object {
	o[PropRadius] = r
	return o
}

// Rotate sets the rotation in degrees, used for the arm angle.
func (o Object) Rotate(deg float64) Object {
	o[PropRotate] = deg
	return o
}

// With sets a viewer specific property, e.g. "loc" of a track end.
func (o Object) With(key string, val interface{}) Object {
	o[key] = val
	return o
}
