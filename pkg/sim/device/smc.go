// Package device simulates the cart motor controller on the device side
// of the L0 protocol. SMC implements comm.Port so a Driver can talk to it
// without hardware.
package device

import (
	"os"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/pendulum.go/pkg/l0/comm"
)

// Fault injects misbehavior into replies.
type Fault int

// Faults
const (
	FaultNone Fault = iota
	// FaultSilent never replies.
	FaultSilent
	// FaultShortReply replies only the low byte.
	FaultShortReply
)

// Defaults of the simulated hardware.
const (
	DefaultInputVoltage = 12000 // mV
	DefaultTemperature  = 250   // 0.1°C
)

// SMC is a simulated motor controller.
// It powers up in safe-start: move commands are ignored until Enable.
type SMC struct {
	// Accel limits how fast Speed follows the target speed, in units
	// per second. 0 means the speed follows immediately.
	Accel float64

	lock        sync.Mutex
	rx          []byte
	tx          []byte
	txReady     chan struct{}
	readTimeout time.Duration
	closed      bool
	fault       Fault

	errorStatus comm.ErrorStatus
	serialError comm.SerialError
	targetSpeed float64
	speed       float64
	brake       uint16
	vin         uint16
	temp        uint16
}

// NewSMC creates a simulated controller in safe-start.
func NewSMC() *SMC {
	return &SMC{
		txReady:     make(chan struct{}, 1),
		readTimeout: comm.DefaultReadTimeout,
		errorStatus: comm.ErrSafeStart,
		vin:         DefaultInputVoltage,
		temp:        DefaultTemperature,
	}
}

// Read implements comm.Port.
// It returns 0 bytes without error when the read timeout expires.
func (s *SMC) Read(b []byte) (int, error) {
	s.lock.Lock()
	timer := time.NewTimer(s.readTimeout)
	defer timer.Stop()
	for {
		if s.closed {
			s.lock.Unlock()
			return 0, os.ErrClosed
		}
		if len(s.tx) > 0 {
			n := copy(b, s.tx)
			s.tx = s.tx[n:]
			s.lock.Unlock()
			return n, nil
		}
		s.lock.Unlock()
		select {
		case <-s.txReady:
		case <-timer.C:
			return 0, nil
		}
		s.lock.Lock()
	}
}

// Write implements comm.Port.
func (s *SMC) Write(b []byte) (int, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.closed {
		return 0, os.ErrClosed
	}
	s.rx = append(s.rx, b...)
	for len(s.rx) > 0 {
		f, n, err := comm.DecodeFrame(s.rx)
		if err == comm.ErrIncompleteFrame {
			break
		}
		s.rx = s.rx[n:]
		if err != nil {
			glog.V(2).Infof("SMC: %v", err)
			s.errorStatus |= comm.ErrSerial
			s.serialError |= comm.SerialFormat
			continue
		}
		s.execute(f)
	}
	return len(b), nil
}

// Close implements comm.Port.
func (s *SMC) Close() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if !s.closed {
		s.closed = true
		close(s.txReady)
	}
	return nil
}

// ResetInputBuffer implements comm.Port, it discards pending replies.
func (s *SMC) ResetInputBuffer() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.tx = nil
	return nil
}

// SetReadTimeout implements comm.Port.
func (s *SMC) SetReadTimeout(d time.Duration) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.readTimeout = d
	return nil
}

// SetFault injects a fault.
func (s *SMC) SetFault(f Fault) {
	s.lock.Lock()
	s.fault = f
	s.lock.Unlock()
}

// SetErrors raises error status bits, e.g. comm.ErrLowVin.
func (s *SMC) SetErrors(e comm.ErrorStatus) {
	s.lock.Lock()
	s.errorStatus |= e
	s.lock.Unlock()
}

// SetInputVoltage sets Vin in millivolts.
func (s *SMC) SetInputVoltage(mv uint16) {
	s.lock.Lock()
	s.vin = mv
	s.lock.Unlock()
}

// SafeStart indicates the controller ignores move commands.
func (s *SMC) SafeStart() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.errorStatus.Has(comm.ErrSafeStart)
}

// TargetSpeed returns the commanded speed in [-3200, 3200].
func (s *SMC) TargetSpeed() int16 {
	s.lock.Lock()
	defer s.lock.Unlock()
	return int16(s.targetSpeed)
}

// Speed returns the current speed in [-3200, 3200].
func (s *SMC) Speed() float64 {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.speed
}

// Step advances the speed towards the target by dt.
func (s *SMC) Step(dt time.Duration) float64 {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.Accel <= 0 {
		s.speed = s.targetSpeed
		return s.speed
	}
	delta := s.targetSpeed - s.speed
	maxDelta := s.Accel * dt.Seconds()
	switch {
	case delta > maxDelta:
		delta = maxDelta
	case delta < -maxDelta:
		delta = -maxDelta
	}
	s.speed += delta
	return s.speed
}

func (s *SMC) execute(f comm.Frame) {
	switch f.Op {
	case comm.OpEnable:
		s.errorStatus &^= comm.ErrSafeStart
	case comm.OpMoveForward, comm.OpMoveReverse:
		if s.errorStatus.Has(comm.ErrSafeStart) {
			return
		}
		mag := f.Magnitude
		if mag > comm.FullSpeed {
			mag = comm.FullSpeed
		}
		s.targetSpeed = float64(mag)
		if f.Direction() == comm.Reverse {
			s.targetSpeed = -s.targetSpeed
		}
		if s.Accel <= 0 {
			s.speed = s.targetSpeed
		}
		s.brake = 0
	case comm.OpStop:
		s.targetSpeed, s.speed = 0, 0
		s.brake = uint16(f.Arg)
	case comm.OpReadVariable:
		s.reply(s.readVar(comm.Register(f.Arg)))
	}
}

func (s *SMC) reply(val uint16) {
	switch s.fault {
	case FaultSilent:
		return
	case FaultShortReply:
		s.tx = append(s.tx, byte(val))
	default:
		s.tx = append(s.tx, byte(val), byte(val>>8))
	}
	select {
	case s.txReady <- struct{}{}:
	default:
	}
}

func (s *SMC) readVar(reg comm.Register) uint16 {
	switch reg {
	case comm.RegErrorStatus:
		return uint16(s.errorStatus)
	case comm.RegSerialError:
		return uint16(s.serialError)
	case comm.RegLimitStatus:
		var limits comm.LimitStatus
		if s.errorStatus != 0 {
			limits |= comm.LimitErrorOrSafeStart
		}
		return uint16(limits)
	case comm.RegTargetSpeed:
		return uint16(int16(s.targetSpeed))
	case comm.RegSpeed:
		return uint16(int16(s.speed))
	case comm.RegBrakeAmount:
		return s.brake
	case comm.RegInputVoltage:
		return s.vin
	case comm.RegTemperature:
		return s.temp
	}
	return 0
}
