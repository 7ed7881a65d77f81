package cart

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/pendulum.go/pkg/framework"
	"github.com/robotalks/pendulum.go/pkg/l0/comm"
	"github.com/robotalks/pendulum.go/pkg/l0/encoder"
	"github.com/robotalks/pendulum.go/pkg/l0/motor"
	"github.com/robotalks/pendulum.go/pkg/l1"
	"github.com/robotalks/pendulum.go/pkg/l1/msgs"
	"github.com/robotalks/pendulum.go/pkg/sim/device"
)

type eventRecorder struct {
	ch chan fx.Message
}

func (r *eventRecorder) SendEvent(ctx context.Context, msg fx.Message) error {
	select {
	case r.ch <- msg:
	default:
	}
	return nil
}

type testCommand struct {
	msg    fx.Message
	doneCh chan fx.Message
}

func (c *testCommand) Msg() fx.Message { return c.msg }

func (c *testCommand) Done(reply fx.Message) error {
	c.doneCh <- reply
	return nil
}

func newTestController(t *testing.T) (*Controller, *device.SMC, *eventRecorder) {
	smc := device.NewSMC()
	conf := motor.NewConfig()
	conf.ReadTimeout = 50 * time.Millisecond
	drv := motor.NewDriver(smc, conf, nil)
	rec := &eventRecorder{ch: make(chan fx.Message, 16)}
	ctl := NewController(drv, rec)
	t.Cleanup(func() { drv.Close() })
	return ctl, smc, rec
}

func TestHandleCommands(t *testing.T) {
	ctl, smc, _ := newTestController(t)

	assert.Equal(t, msgs.NewCommandOK(), ctl.handleCommand(&msgs.CartMove{Cmd: 25}))
	assert.Equal(t, int16(800), smc.TargetSpeed())
	assert.False(t, smc.SafeStart())

	assert.Equal(t, msgs.NewCommandOK(), ctl.handleCommand(&msgs.CartMove{Cmd: -150}))
	assert.Equal(t, int16(-3200), smc.TargetSpeed())

	assert.Equal(t, msgs.NewCommandOK(), ctl.handleCommand(&msgs.CartStop{}))
	assert.Equal(t, int16(0), smc.TargetSpeed())
	assert.False(t, ctl.Driver.Enabled())

	assert.Equal(t, msgs.NewCommandOK(), ctl.handleCommand(&msgs.CartEnable{}))
	assert.True(t, ctl.Driver.Enabled())

	reply := ctl.handleCommand(&msgs.CartMove{Cmd: math.NaN()})
	errReply, ok := reply.(*msgs.CommandErr)
	require.True(t, ok)
	assert.NotEmpty(t, errReply.Message)

	assert.Equal(t, &msgs.MotorInfoReply{}, ctl.handleCommand(&msgs.MotorInfoQuery{}))
	assert.Nil(t, ctl.handleCommand(&msgs.CommandOK{}))
}

func TestPollMotorInfo(t *testing.T) {
	ctl, smc, _ := newTestController(t)
	require.NoError(t, ctl.Driver.MoveLeft(25))
	smc.SetErrors(comm.ErrLowVin)
	smc.SetInputVoltage(11500)

	info := ctl.poll()
	require.NotNil(t, info)
	assert.Equal(t, int32(-800), info.TargetSpeed)
	assert.Equal(t, int32(-800), info.Speed)
	assert.InDelta(t, 11.5, info.Vin, 1e-9)
	assert.InDelta(t, 25.0, info.Temp, 1e-9)
	assert.True(t, info.ErrorStatus.LowVin)
	assert.False(t, info.ErrorStatus.SafeStart)
	assert.True(t, info.LimitStatus.ErrorOrSafeStart)
	assert.True(t, info.Enabled)
	require.NotNil(t, info.Watchdog)
	assert.False(t, info.Watchdog.Expired)
	assert.NotZero(t, info.Watchdog.LastCommandAt)
	assert.NotZero(t, info.Timestamp)
}

func TestPollAttachesEncoderCounts(t *testing.T) {
	ctl, _, _ := newTestController(t)
	info := ctl.poll()
	require.NotNil(t, info)
	assert.Nil(t, info.Encoder)

	ctl.Encoder = encoder.NewReader(device.NewSMC())
	info = ctl.poll()
	require.NotNil(t, info)
	assert.Nil(t, info.Encoder, "no frame received yet")

	ctl.Encoder.Feed([]byte{0x0A, 0xff, 0x9c, 0x00, 0x2a, 0x01, 0x0A})
	info = ctl.poll()
	require.NotNil(t, info)
	require.NotNil(t, info.Encoder)
	assert.Equal(t, int32(-100), info.Encoder.Arm)
	assert.Equal(t, int32(42), info.Encoder.Motor)
	assert.Equal(t, uint32(1), info.Encoder.Quadrature)
}

func TestPollFailure(t *testing.T) {
	ctl, smc, _ := newTestController(t)
	smc.SetFault(device.FaultSilent)
	assert.Nil(t, ctl.poll())
	assert.Nil(t, ctl.poll())
	assert.Equal(t, 2, ctl.failures)

	smc.SetFault(device.FaultNone)
	assert.NotNil(t, ctl.poll())
	assert.Equal(t, 0, ctl.failures)
}

func TestNewMotorInfoWithoutDriver(t *testing.T) {
	info := NewMotorInfo(&motor.Telemetry{
		ErrorStatus: comm.ErrSafeStart | comm.ErrSerial,
		SerialError: comm.SerialCRC,
		LimitStatus: comm.LimitUSBKill,
		BrakeAmount: 32,
		Time:        time.Unix(10, 0),
	}, nil)
	assert.True(t, info.ErrorStatus.SafeStart)
	assert.True(t, info.ErrorStatus.SerialError)
	assert.False(t, info.ErrorStatus.OverTemp)
	assert.True(t, info.SerialError.Crc)
	assert.True(t, info.LimitStatus.UsbKill)
	assert.Equal(t, uint32(32), info.BrakeAmt)
	assert.Equal(t, time.Unix(10, 0).UnixNano(), info.Timestamp)
	assert.False(t, info.Enabled)
	assert.Nil(t, info.Watchdog)
}

func TestControllerInLoop(t *testing.T) {
	ctl, smc, rec := newTestController(t)
	ctl.TelemetryInterval = 10 * time.Millisecond

	l := fx.NewLoop()
	l.Interval = 10 * time.Millisecond
	l.Add(ctl)
	ctx, cancel := context.WithCancel(context.Background())
	doneCh := make(chan error, 1)
	go func() { doneCh <- l.Run(ctx) }()

	var event *msgs.MotorInfo
	select {
	case msg := <-rec.ch:
		var ok bool
		event, ok = msg.(*msgs.MotorInfo)
		require.True(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("no MotorInfo event")
	}
	assert.False(t, event.ErrorStatus.SafeStart)
	assert.False(t, smc.SafeStart())
	require.NotNil(t, ctl.MotorInfo())

	cmd := &testCommand{msg: &msgs.CartMove{Cmd: 50}, doneCh: make(chan fx.Message, 1)}
	l.PostMessage(&l1.CommandMsg{Command: cmd})
	l.TriggerNext()
	select {
	case reply := <-cmd.doneCh:
		assert.Equal(t, msgs.NewCommandOK(), reply)
	case <-time.After(5 * time.Second):
		t.Fatal("no reply")
	}
	assert.Equal(t, int16(1600), smc.TargetSpeed())

	query := &testCommand{msg: &msgs.MotorInfoQuery{}, doneCh: make(chan fx.Message, 1)}
	l.PostMessage(&l1.CommandMsg{Command: query})
	l.TriggerNext()
	select {
	case reply := <-query.doneCh:
		infoReply, ok := reply.(*msgs.MotorInfoReply)
		require.True(t, ok)
		assert.NotNil(t, infoReply.Info)
	case <-time.After(5 * time.Second):
		t.Fatal("no reply")
	}

	cancel()
	assert.Equal(t, context.Canceled, <-doneCh)
}
