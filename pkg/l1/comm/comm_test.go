package comm

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/pendulum.go/pkg/framework"
	"github.com/robotalks/pendulum.go/pkg/l1"
	"github.com/robotalks/pendulum.go/pkg/l1/comm/stream"
	"github.com/robotalks/pendulum.go/pkg/l1/msgs"
)

type moveRecorder struct {
	cmds chan float64
}

func (r *moveRecorder) Control(cc fx.ControlContext) error {
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mc fx.MessageProcessingContext) {
		cmdMsg, ok := mc.CurrentMessage().(*l1.CommandMsg)
		if !ok {
			return
		}
		if move, ok := cmdMsg.Command.Msg().(*msgs.CartMove); ok {
			mc.MessageTaken()
			r.cmds <- move.Cmd
			cmdMsg.Command.Done(msgs.NewCommandOK())
		}
	}))
	return nil
}

func startLoop(t *testing.T, adders ...fx.LoopAdder) func() {
	loop := fx.NewLoop()
	loop.Interval = 10 * time.Millisecond
	loop.Add(adders...)
	ctx, cancel := context.WithCancel(context.Background())
	doneCh := make(chan error, 1)
	go func() { doneCh <- loop.Run(ctx) }()
	return func() {
		cancel()
		select {
		case <-doneCh:
		case <-time.After(time.Second):
			t.Error("loop didn't stop")
		}
	}
}

type controllerAdder struct {
	ctls []fx.Controller
}

func (a *controllerAdder) AddToLoop(l *fx.Loop) {
	l.AddController(fx.PrLvControl, a.ctls...)
}

func waitResult(t *testing.T, f l1.CommandFuture) l1.Result {
	select {
	case res := <-f.ResultChan():
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("no result")
	}
	return l1.Result{}
}

func TestCommandsOverStream(t *testing.T) {
	a, b := net.Pipe()

	var reg Registrar
	reg.Init(stream.New(a))
	rec := &moveRecorder{cmds: make(chan float64, 1)}
	stopController := startLoop(t, &reg, &controllerAdder{ctls: []fx.Controller{rec}}, &UnsupportedCommands{})
	defer stopController()

	var conn ControllerConn
	conn.Init(stream.New(b))
	stopConnector := startLoop(t, &conn)
	defer stopConnector()

	res := waitResult(t, conn.DoCommand(&msgs.CartMove{Cmd: -25}))
	require.NoError(t, res.Err)
	require.IsType(t, &msgs.CommandOK{}, res.Msg)
	require.Equal(t, -25.0, <-rec.cmds)

	res = waitResult(t, conn.DoCommand(&msgs.CartStop{}))
	require.Error(t, res.Err)
	require.Contains(t, res.Err.Error(), msgs.ErrUnsupportedCommand.Error())
	require.Contains(t, res.Err.Error(), "CartStop")
}

func TestCommandExpiration(t *testing.T) {
	a, b := net.Pipe()
	go func() {
		// swallow commands without replying
		buf := make([]byte, 256)
		for {
			if _, err := a.Read(buf); err != nil {
				return
			}
		}
	}()
	defer a.Close()

	mock := clock.NewMock()
	conn := ControllerConn{Clock: mock}
	conn.Init(stream.New(b))
	f := conn.DoCommand(&msgs.CartEnable{})

	cc := &fakeControlContext{}
	require.NoError(t, conn.purgeExpired(cc))
	select {
	case <-f.ResultChan():
		t.Fatal("expired too early")
	default:
	}
	mock.Add(DefaultCommandExpiration)
	require.NoError(t, conn.purgeExpired(cc))
	res := waitResult(t, f)
	require.Equal(t, context.DeadlineExceeded, res.Err)
}

type fakeControlContext struct {
	fx.ControlContext
}
