package joystick

import (
	"context"
	"log"
	"time"

	fx "github.com/robotalks/pendulum.go/pkg/framework"
	"github.com/robotalks/pendulum.go/pkg/joystick/device"
	"github.com/robotalks/pendulum.go/pkg/joystick/msgs"
	"github.com/robotalks/pendulum.go/pkg/l1"
	connenv "github.com/robotalks/pendulum.go/pkg/l1/env/connector"
	env "github.com/robotalks/pendulum.go/pkg/l1/env/controller"
	l1msgs "github.com/robotalks/pendulum.go/pkg/l1/msgs"
)

// Controller is an L2 controller which jogs a connected cart
// controller with a joystick.
type Controller struct {
	Env         *env.Env
	DeviceIndex int
	Verbose     bool
	// MaxPercent is the motor speed at full stick deflection.
	MaxPercent float64
	// RepeatInterval resends the jog command while the stick is held,
	// it must be shorter than the watchdog timeout of the cart.
	RepeatInterval time.Duration

	conn        *connection
	eventCh     chan device.Event
	device      device.Device
	deviceTimer <-chan time.Time

	status        msgs.JoystickStatus
	statusChanged bool
}

// NewController creates a Controller.
func NewController(e *env.Env) *Controller {
	return &Controller{
		Env:            e,
		DeviceIndex:    defaultConfig.DeviceIndex,
		Verbose:        defaultConfig.Verbose,
		MaxPercent:     defaultConfig.MaxPercent,
		RepeatInterval: defaultConfig.RepeatInterval,
		statusChanged:  true,
	}
}

// AddToLoop implements LoopAdder.
func (c *Controller) AddToLoop(loop *fx.Loop) {
	loop.AddRunnable(c)
	loop.AddController(fx.PrLvControl, c)
	loop.AddController(fx.PrLvPostProc, fx.ControlFunc(c.notifyStatusChange))
}

// Run implements Runnable.
func (c *Controller) Run(ctx context.Context) error {
	defer func() {
		if c.device != nil {
			c.device.Close()
		}
	}()
	loopCtl := fx.LoopCtlFrom(ctx)
	c.deviceTimer = time.After(time.Second)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.deviceTimer:
			c.deviceTimer = nil
			var js device.Device
			var err error
			if c.DeviceIndex >= 0 {
				if js, err = device.Open(c.DeviceIndex); err != nil {
					log.Printf("Open joystick %d error: %v", c.DeviceIndex, err)
				}
			} else {
				log.Println("Detecting joystick ...")
				if js, err = device.DetectAndOpen(0); err != nil {
					log.Printf("Detect joystick error: %v", err)
				} else if js == nil {
					log.Printf("No joystick detected.")
				}
			}
			if err == nil && js != nil {
				log.Printf("Joystick %d %q opened!", js.Index(), js.Name())
				c.device, c.eventCh = js, make(chan device.Event, 1)
				go c.pollJoystick(ctx)
				loopCtl.PostMessage(&statusMsg{
					device: &msgs.JoystickDevice{
						Index:   uint32(js.Index()),
						Name:    js.Name(),
						Axes:    uint32(js.AxisCount()),
						Buttons: uint32(js.ButtonCount()),
					},
				})
			} else {
				c.deviceTimer = time.After(time.Second)
			}
		case ev, ok := <-c.eventCh:
			if ok {
				loopCtl.PostMessage(&eventMsg{event: ev})
			} else {
				loopCtl.PostMessage(&eventMsg{stopAll: true})
				if c.device != nil {
					c.device.Close()
				}
				c.device, c.eventCh = nil, nil
				c.deviceTimer = time.After(time.Second)
				loopCtl.PostMessage(&statusMsg{
					device: &msgs.JoystickDevice{Index: 0xffffffff},
				})
			}
			loopCtl.TriggerNext()
		}
	}
}

// Control implements Controller.
func (c *Controller) Control(cc fx.ControlContext) error {
	if c.status.MaxPercent != c.MaxPercent {
		c.status.MaxPercent, c.statusChanged = c.MaxPercent, true
	}
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mctx fx.MessageProcessingContext) {
		switch msg := mctx.CurrentMessage().(type) {
		case *l1.CommandMsg:
			switch m := msg.Command.Msg().(type) {
			case *msgs.JoystickStatusQuery:
				mctx.MessageTaken()
				msg.Command.Done(&msgs.JoystickStatusReply{Status: &c.status})
			case *msgs.JoystickConnect:
				mctx.MessageTaken()
				msg.Command.Done(c.connect(cc, m))
			}
		case *eventMsg:
			mctx.MessageTaken()
			if conn := c.conn; conn != nil {
				conn.loop.PostMessage(msg)
				conn.loop.TriggerNext()
			} else {
				log.Println("Controller not connected.")
			}
		case *statusMsg:
			if msg.device != nil {
				if msg.device.Index == 0xffffffff {
					c.status.Device = nil
				} else {
					c.status.Device = msg.device
				}
				c.statusChanged = true
			}
			if msg.conn != nil {
				if msg.conn.Type == "" {
					c.status.Connection = nil
				} else {
					c.status.Connection = msg.conn
				}
				c.statusChanged = true
			}
		}
	}))
	return nil
}

func (c *Controller) notifyStatusChange(cc fx.ControlContext) error {
	changed := c.statusChanged
	c.statusChanged = false
	if changed {
		return c.Env.Registrar.SendEvent(cc.Context(), &c.status)
	}
	return nil
}

func (c *Controller) connect(cc fx.ControlContext, msg *msgs.JoystickConnect) fx.Message {
	if c.conn != nil {
		c.conn.close()
		c.conn = nil
		cc.PostMessage(&statusMsg{conn: &msgs.JoystickConnect{}})
	}
	if msg.Type == "" && msg.ID == "" {
		// treat as disconnect.
		return l1msgs.NewCommandOK()
	}
	conf := connenv.NewConfig()
	if conf.RegistryURL = msg.RegistryURL; conf.RegistryURL == "" {
		conf.RegistryURL = c.Env.RegistryURLs[0]
	}
	if conf.Ref.Type, conf.Ref.ID = msg.Type, msg.ID; !conf.Ref.IsValid() {
		return l1msgs.NewCommandErrFromMsg("controller ref invalid")
	}
	connector, err := conf.NewConnector()
	if err != nil {
		return l1msgs.NewCommandErr(err)
	}
	if c.conn, err = newConnection(cc, connector, conf.Ref, c.MaxPercent, c.RepeatInterval); err != nil {
		return l1msgs.NewCommandErr(err)
	}
	go c.conn.run()
	cc.PostMessage(&statusMsg{conn: &msgs.JoystickConnect{
		RegistryURL: conf.RegistryURL,
		Type:        conf.Ref.Type,
		ID:          conf.Ref.ID,
	}})
	return l1msgs.NewCommandOK()
}

func (c *Controller) pollJoystick(ctx context.Context) {
	dev, ch := c.device, c.eventCh
	defer close(ch)
	for {
		ev, err := dev.ReadEvent()
		if err != nil {
			log.Printf("Joystick read error: %v", err)
			return
		}
		if ev != nil {
			if c.Verbose {
				var prefix string
				if ev.IsInit() {
					prefix = "[INIT] "
				}
				switch evt := ev.(type) {
				case device.AxisEvent:
					log.Printf(prefix+"Axis %d: %d", evt.Index(), evt.Value())
				case device.ButtonEvent:
					log.Printf(prefix+"Button %d: %v", evt.Index(), evt.Pressed())
				}
			}
			ch <- ev
		}
	}
}

type statusMsg struct {
	device *msgs.JoystickDevice
	conn   *msgs.JoystickConnect
}

func (m *statusMsg) NewMessage() fx.Message { return &statusMsg{} }

type eventMsg struct {
	event   device.Event
	stopAll bool
}

func (m *eventMsg) NewMessage() fx.Message { return &eventMsg{} }

type connection struct {
	ctx        context.Context
	cancel     func()
	conn       l1.ControllerConn
	loop       *fx.Loop
	maxPercent float64
	repeat     time.Duration

	moving   *l1msgs.CartMove
	lastSent time.Time
}

func newConnection(cc fx.ControlContext, connector l1.Connector, ref l1.ControllerRef, maxPercent float64, repeat time.Duration) (c *connection, err error) {
	if repeat <= 0 {
		repeat = DefaultRepeatInterval
	}
	c = &connection{maxPercent: maxPercent, repeat: repeat}
	c.ctx, c.cancel = context.WithCancel(cc.Context())
	if c.conn, err = connector.Connect(c.ctx, ref); err != nil {
		return
	}
	c.loop = fx.NewLoop()
	c.loop.Interval = repeat / 2
	if adder, ok := c.conn.(fx.LoopAdder); ok {
		c.loop.Add(adder)
	}
	c.loop.AddController(fx.PrLvControl, c)
	return
}

func (c *connection) run() {
	c.loop.Run(c.ctx)
}

func (c *connection) close() {
	c.cancel()
}

// AxisDeadZone is the absolute axis value treated as centered.
const AxisDeadZone = 2000

// JogCommand translates an axis event into a cart command.
// Horizontal axes jog the cart, centering the stick brakes it.
// nil is returned for other axes.
func JogCommand(axis, val int, maxPercent float64) fx.Message {
	switch axis {
	case 0, 6:
	default:
		return nil
	}
	if val > -AxisDeadZone && val < AxisDeadZone {
		return &l1msgs.CartStop{}
	}
	cmd := maxPercent * float64(val) / 32767
	if cmd > maxPercent {
		cmd = maxPercent
	} else if cmd < -maxPercent {
		cmd = -maxPercent
	}
	return &l1msgs.CartMove{Cmd: cmd}
}

func (c *connection) handleEvent(now time.Time, ev device.Event) {
	axisEv, ok := ev.(device.AxisEvent)
	if !ok {
		return
	}
	msg := JogCommand(axisEv.Index(), axisEv.Value(), c.maxPercent)
	switch m := msg.(type) {
	case *l1msgs.CartStop:
		if c.moving != nil {
			c.stopAll()
		}
	case *l1msgs.CartMove:
		c.moving = m
		c.send(now, m)
	}
}

// keepMoving resends the jog command so the cart watchdog doesn't brake
// while the stick is held still, the device only reports changes.
func (c *connection) keepMoving(now time.Time) {
	if c.moving != nil && now.Sub(c.lastSent) >= c.repeat {
		c.send(now, c.moving)
	}
}

func (c *connection) send(now time.Time, msg fx.Message) {
	c.lastSent = now
	c.conn.DoCommand(msg)
}

func (c *connection) stopAll() {
	c.moving = nil
	c.conn.DoCommand(&l1msgs.CartStop{})
}

// Control implements Controller.
func (c *connection) Control(cc fx.ControlContext) error {
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mctx fx.MessageProcessingContext) {
		if msg, ok := mctx.CurrentMessage().(*eventMsg); ok {
			mctx.MessageTaken()
			if msg.stopAll {
				c.stopAll()
			} else {
				c.handleEvent(cc.Time(), msg.event)
			}
		}
	}))
	c.keepMoving(cc.Time())
	return nil
}
