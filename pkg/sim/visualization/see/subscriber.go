// Package see is the adapter to visualize the track, the cart and the
// pendulum in github.com/robotalks/see.
package see

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	fx "github.com/robotalks/pendulum.go/pkg/framework"
	"github.com/robotalks/pendulum.go/pkg/sim"
)

// Adapter is the visualization adapter to visualize using
// github.com/robotalks/see.
type Adapter struct {
	Config *Config
	Mapper ObjectMapper
	// Out receives one JSON array of messages per line, default os.Stdout.
	Out io.Writer

	initial    bool
	updated    map[string]sim.Object
	removedIDs map[string]bool
}

// NewAdapter creates the adapter.
func NewAdapter(config *Config) *Adapter {
	return &Adapter{
		Config:  config,
		initial: true,
	}
}

// Subscribe is a helper to subscribe object changes.
func (a *Adapter) Subscribe(sub sim.ObjectsChangeSubscriber) *Adapter {
	sub.SubscribeObjectsChange(a)
	return a
}

// ObjectsChanged implements ObjectsChangeListener.
func (a *Adapter) ObjectsChanged(cc fx.ControlContext, objs ...sim.Object) {
	if a.updated == nil {
		a.updated = make(map[string]sim.Object)
	}
	for _, obj := range objs {
		a.updated[obj.Name()] = obj
		if a.removedIDs != nil {
			delete(a.removedIDs, obj.Name())
		}
	}
}

// ObjectsRemoved implements ObjectsChangeListener.
func (a *Adapter) ObjectsRemoved(cc fx.ControlContext, objs ...sim.Object) {
	if a.removedIDs == nil {
		a.removedIDs = make(map[string]bool)
	}
	for _, obj := range objs {
		a.removedIDs[obj.Name()] = true
		if a.updated != nil {
			delete(a.updated, obj.Name())
		}
	}
}

// AddToLoop implements LoopAdder.
func (a *Adapter) AddToLoop(l *fx.Loop) {
	l.AddController(fx.PrLvPostProc, fx.ControlFunc(a.ReportChanges))
}

// ReportChanges is a controller to report changes.
func (a *Adapter) ReportChanges(cc fx.ControlContext) error {
	var msgs []Message
	if a.initial {
		w, h := a.Config.W, a.Config.H
		msgs = []Message{
			{Action: ActionReset},
			{Action: ActionObject, Object: NewObject("track", "track").At(0, 0).Rc(-w/2, 0, w, 1)},
			{Action: ActionObject, Object: NewObject("end", "end-l").With("loc", "l").At(-w/2, 0).Radius(h / 100)},
			{Action: ActionObject, Object: NewObject("end", "end-r").With("loc", "r").At(w/2, 0).Radius(h / 100)},
		}
		a.initial = false
		a.removedIDs = nil
	}

	for _, obj := range a.updated {
		if vo, ok := obj.(VisibleObject); ok {
			for _, mapped := range a.Mapper.MapObject(vo) {
				if mapped == nil {
					continue
				}
				msgs = append(msgs, Message{
					Action: ActionObject,
					Object: mapped,
				})
			}
		}
	}

	for id := range a.removedIDs {
		msgs = append(msgs, Message{
			Action:   ActionRemove,
			RemoveID: id,
		})
	}

	a.updated, a.removedIDs = nil, nil
	if len(msgs) == 0 {
		return nil
	}
	encoded, err := json.Marshal(msgs)
	if err != nil {
		return err
	}
	out := a.Out
	if out == nil {
		out = os.Stdout
	}
	_, err = fmt.Fprintln(out, string(encoded))
	return err
}
