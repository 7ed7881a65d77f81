// Package cart is the L1 controller of the cart motor. It exposes the
// motor driver to the messaging layer and publishes telemetry.
package cart

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/glog"

	fx "github.com/robotalks/pendulum.go/pkg/framework"
	"github.com/robotalks/pendulum.go/pkg/l0/encoder"
	"github.com/robotalks/pendulum.go/pkg/l0/motor"
	"github.com/robotalks/pendulum.go/pkg/l1"
	"github.com/robotalks/pendulum.go/pkg/l1/msgs"
)

// ControllerType is the L1 controller type of the cart.
const ControllerType = "cart"

// Controller is the L1 controller of the cart motor.
// It handles cart commands, polls telemetry and publishes MotorInfo events.
type Controller struct {
	Driver            *motor.Driver
	Registrar         l1.Registrar
	TelemetryInterval time.Duration
	Clock             clock.Clock
	// Encoder is optional, its counts are attached to MotorInfo.
	Encoder *encoder.Reader

	info     *msgs.MotorInfo
	infoLock sync.RWMutex
	failures int
}

// NewController creates a Controller.
func NewController(d *motor.Driver, reg l1.Registrar) *Controller {
	return &Controller{
		Driver:            d,
		Registrar:         reg,
		TelemetryInterval: motor.DefaultTelemetryInterval,
		Clock:             clock.New(),
	}
}

// Name implements Named.
func (c *Controller) Name() string {
	return ControllerType
}

// AddToLoop implements LoopAdder.
func (c *Controller) AddToLoop(l *fx.Loop) {
	l.AddController(fx.PrLvControl, c)
	l.AddRunnable(fx.NamedRun("watchdog", c.Driver))
	if c.Encoder != nil {
		l.AddRunnable(fx.NamedRun("encoder", c.Encoder))
	}
}

// MotorInfo returns the latest published MotorInfo, nil before the first poll.
func (c *Controller) MotorInfo() *msgs.MotorInfo {
	c.infoLock.RLock()
	defer c.infoLock.RUnlock()
	return c.info
}

// Run implements Runnable. It clears safe-start and polls telemetry.
func (c *Controller) Run(ctx context.Context) error {
	if err := c.Driver.Enable(); err != nil {
		glog.Errorf("enable motor: %v", err)
	}
	interval := c.TelemetryInterval
	if interval <= 0 {
		interval = motor.DefaultTelemetryInterval
	}
	loopCtl := fx.LoopCtlFrom(ctx)
	ticker := c.Clock.Ticker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if info := c.poll(); info != nil {
				loopCtl.PostMessage(&telemetryMsg{info: info})
				loopCtl.TriggerNext()
			}
		}
	}
}

func (c *Controller) poll() *msgs.MotorInfo {
	t, err := c.Driver.PollTelemetry()
	if err != nil {
		// log the first failure and every 10th after, the poll runs at 10Hz.
		if c.failures%10 == 0 {
			glog.Warningf("poll telemetry: %v", err)
		}
		c.failures++
		return nil
	}
	if c.failures > 0 {
		glog.Infof("telemetry recovered after %d failures", c.failures)
		c.failures = 0
	}
	info := NewMotorInfo(t, c.Driver)
	if c.Encoder != nil {
		if counts, ok := c.Encoder.Latest(); ok {
			info.Encoder = NewEncoderCounts(counts)
		}
	}
	return info
}

// Control implements Controller.
func (c *Controller) Control(cc fx.ControlContext) error {
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mctx fx.MessageProcessingContext) {
		switch msg := mctx.CurrentMessage().(type) {
		case *l1.CommandMsg:
			if reply := c.handleCommand(msg.Command.Msg()); reply != nil {
				mctx.MessageTaken()
				msg.Command.Done(reply)
			}
		case *telemetryMsg:
			mctx.MessageTaken()
			c.infoLock.Lock()
			c.info = msg.info
			c.infoLock.Unlock()
			if c.Registrar != nil {
				if err := c.Registrar.SendEvent(cc.Context(), msg.info); err != nil {
					glog.Warningf("send MotorInfo: %v", err)
				}
			}
		}
	}))
	return nil
}

func (c *Controller) handleCommand(cmd fx.Message) fx.Message {
	var err error
	switch m := cmd.(type) {
	case *msgs.CartMove:
		err = c.Driver.Move(m.Cmd)
	case *msgs.CartStop:
		err = c.Driver.Stop()
	case *msgs.CartEnable:
		err = c.Driver.Enable()
	case *msgs.MotorInfoQuery:
		return &msgs.MotorInfoReply{Info: c.MotorInfo()}
	default:
		return nil
	}
	if err != nil {
		glog.Errorf("%T: %v", cmd, err)
		return msgs.NewCommandErr(err)
	}
	return msgs.NewCommandOK()
}

type telemetryMsg struct {
	info *msgs.MotorInfo
}

func (m *telemetryMsg) NewMessage() fx.Message { return &telemetryMsg{} }
