package device

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/pendulum.go/pkg/l0/comm"
	"github.com/robotalks/pendulum.go/pkg/l0/motor"
)

func newDriver(s *SMC) *motor.Driver {
	conf := motor.NewConfig()
	conf.ReadTimeout = 50 * time.Millisecond
	return motor.NewDriver(s, conf, nil)
}

func TestSafeStartIgnoresMoves(t *testing.T) {
	s := NewSMC()
	require.True(t, s.SafeStart())
	move, err := comm.EncodeMove(comm.Forward, 50)
	require.NoError(t, err)
	_, err = s.Write(move)
	require.NoError(t, err)
	require.Equal(t, int16(0), s.TargetSpeed())

	_, err = s.Write(append(comm.EncodeEnable(), move...))
	require.NoError(t, err)
	require.False(t, s.SafeStart())
	require.Equal(t, int16(1600), s.TargetSpeed())
}

func TestDriverEndToEnd(t *testing.T) {
	s := NewSMC()
	d := newDriver(s)
	defer d.Close()

	require.NoError(t, d.MoveRight(25))
	raw, err := d.ReadVar(comm.RegTargetSpeed)
	require.NoError(t, err)
	require.Equal(t, int16(800), comm.Signed16(raw))

	require.NoError(t, d.MoveLeft(50))
	tm, err := d.PollTelemetry()
	require.NoError(t, err)
	require.Equal(t, int16(-1600), tm.TargetSpeed)
	require.Equal(t, int16(-1600), tm.Speed)
	require.Equal(t, uint16(0), tm.BrakeAmount)
	require.InDelta(t, 12.0, tm.InputVoltage, 1e-9)
	require.InDelta(t, 25.0, tm.Temperature, 1e-9)
	require.False(t, tm.ErrorStatus.Has(comm.ErrSafeStart))
	require.False(t, tm.LimitStatus.Has(comm.LimitErrorOrSafeStart))

	require.NoError(t, d.Stop())
	tm, err = d.PollTelemetry()
	require.NoError(t, err)
	require.Equal(t, int16(0), tm.TargetSpeed)
	require.Equal(t, uint16(32), tm.BrakeAmount)
}

func TestTelemetryBeforeEnable(t *testing.T) {
	s := NewSMC()
	s.SetInputVoltage(5500)
	s.SetErrors(comm.ErrLowVin)
	d := newDriver(s)
	defer d.Close()

	tm, err := d.PollTelemetry()
	require.NoError(t, err)
	require.True(t, tm.ErrorStatus.Has(comm.ErrSafeStart|comm.ErrLowVin))
	require.True(t, tm.LimitStatus.Has(comm.LimitErrorOrSafeStart))
	require.InDelta(t, 5.5, tm.InputVoltage, 1e-9)
}

func TestUnknownOpcodeRaisesSerialError(t *testing.T) {
	s := NewSMC()
	_, err := s.Write([]byte{0x42})
	require.NoError(t, err)
	d := newDriver(s)
	defer d.Close()
	tm, err := d.PollTelemetry()
	require.NoError(t, err)
	require.True(t, tm.ErrorStatus.Has(comm.ErrSerial))
	require.True(t, tm.SerialError.Has(comm.SerialFormat))
}

func TestFaults(t *testing.T) {
	s := NewSMC()
	d := newDriver(s)
	defer d.Close()

	s.SetFault(FaultSilent)
	_, err := d.ReadVar(comm.RegSpeed)
	require.Equal(t, comm.ErrTimeout, err)

	s.SetFault(FaultShortReply)
	_, err = d.ReadVar(comm.RegSpeed)
	require.Equal(t, &comm.ProtocolError{Want: 2, Got: 1}, err)

	s.SetFault(FaultNone)
	raw, err := d.ReadVar(comm.RegInputVoltage)
	require.NoError(t, err)
	require.Equal(t, uint16(DefaultInputVoltage), raw)
}

func TestStepAccel(t *testing.T) {
	s := NewSMC()
	s.Accel = 8000
	_, err := s.Write(append(comm.EncodeEnable(), comm.Frame{Op: comm.OpMoveForward, Magnitude: 3200}.Bytes()...))
	require.NoError(t, err)
	require.InDelta(t, 800, s.Step(100*time.Millisecond), 1e-6)
	require.InDelta(t, 1600, s.Step(100*time.Millisecond), 1e-6)
	require.InDelta(t, 3200, s.Step(time.Second), 1e-6)
}

func TestClosedPort(t *testing.T) {
	s := NewSMC()
	require.NoError(t, s.Close())
	_, err := s.Write(comm.EncodeStop())
	require.Error(t, err)
	_, err = s.Read(make([]byte, 2))
	require.True(t, errors.Is(err, os.ErrClosed))
}
