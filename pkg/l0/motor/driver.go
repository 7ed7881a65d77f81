package motor

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	fx "github.com/robotalks/pendulum.go/pkg/framework"
	"github.com/robotalks/pendulum.go/pkg/l0/comm"
)

// Driver controls one motor controller.
type Driver struct {
	WatchdogInterval time.Duration

	ch       *comm.Channel
	clock    clock.Clock
	watchdog *Watchdog

	// cmdLock orders commands and forced stops on the wire,
	// and guards the fields below.
	cmdLock     sync.Mutex
	enabled     bool
	stopped     bool
	lastCommand time.Time
	closed      bool
}

// NewDriver creates a Driver on an opened port.
// conf can be nil for defaults and clk nil for the wall clock.
func NewDriver(port comm.Port, conf *Config, clk clock.Clock) *Driver {
	if conf == nil {
		conf = NewConfig()
	}
	if clk == nil {
		clk = clock.New()
	}
	ch := comm.NewChannel(port)
	if conf.ReadTimeout > 0 {
		ch.ReadTimeout = conf.ReadTimeout
	}
	return &Driver{
		WatchdogInterval: conf.WatchdogInterval,
		ch:               ch,
		clock:            clk,
		watchdog:         NewWatchdog(conf.WatchdogTimeout, clk),
	}
}

// Watchdog returns the command watchdog.
func (d *Driver) Watchdog() *Watchdog {
	return d.watchdog
}

// Saturate clamps percent into [0, 100].
func Saturate(percent float64) float64 {
	return math.Max(0, math.Min(100, percent))
}

// MoveRight drives the cart right at percent of full speed.
func (d *Driver) MoveRight(percent float64) error {
	return d.move(comm.Forward, percent)
}

// MoveLeft drives the cart left at percent of full speed.
func (d *Driver) MoveLeft(percent float64) error {
	return d.move(comm.Reverse, percent)
}

// Move dispatches a signed speed command: positive moves right,
// negative moves left and zero is a zero-speed move right which keeps
// the motor enabled.
func (d *Driver) Move(cmd float64) error {
	if cmd < 0 {
		return d.MoveLeft(-cmd)
	}
	return d.MoveRight(cmd)
}

func (d *Driver) move(dir comm.Direction, percent float64) error {
	frame, err := comm.EncodeMove(dir, Saturate(percent))
	if err != nil {
		return err
	}
	d.cmdLock.Lock()
	defer d.cmdLock.Unlock()
	// the controller ignores moves in safe-start, so enable goes out
	// in the same transaction and nothing can slip in between.
	if err := d.ch.Send(comm.EncodeEnable(), frame); err != nil {
		return err
	}
	d.enabled, d.stopped = true, false
	d.lastCommand = d.clock.Now()
	d.watchdog.Reset()
	return nil
}

// Stop brakes the motor. It doesn't feed the watchdog.
func (d *Driver) Stop() error {
	d.cmdLock.Lock()
	defer d.cmdLock.Unlock()
	return d.stopLocked()
}

func (d *Driver) stopLocked() error {
	if err := d.ch.Send(comm.EncodeStop()); err != nil {
		return err
	}
	d.enabled, d.stopped = false, true
	return nil
}

// Enable clears safe-start.
func (d *Driver) Enable() error {
	d.cmdLock.Lock()
	defer d.cmdLock.Unlock()
	if err := d.ch.Send(comm.EncodeEnable()); err != nil {
		return err
	}
	d.enabled = true
	return nil
}

// Enabled indicates Enable was sent after the last Stop.
func (d *Driver) Enabled() bool {
	d.cmdLock.Lock()
	defer d.cmdLock.Unlock()
	return d.enabled
}

// LastCommand returns the time of the last accepted move command.
func (d *Driver) LastCommand() time.Time {
	d.cmdLock.Lock()
	defer d.cmdLock.Unlock()
	return d.lastCommand
}

// ReadVar reads a register.
func (d *Driver) ReadVar(reg comm.Register) (uint16, error) {
	return d.ch.ReadVar(reg)
}

// CheckWatchdog stops the motor if the watchdog expired.
// Only one stop is sent per expiry, a failed stop is retried on next check.
// It returns true when a stop is sent.
func (d *Driver) CheckWatchdog() (bool, error) {
	d.cmdLock.Lock()
	defer d.cmdLock.Unlock()
	if d.stopped || !d.watchdog.Expired() {
		return false, nil
	}
	if err := d.stopLocked(); err != nil {
		return false, errors.Wrap(err, "watchdog stop")
	}
	glog.Warningf("no command since %s, motor stopped", d.watchdog.LastReset().Format(time.StampMilli))
	return true, nil
}

// Run implements fx.Runnable, it checks the watchdog periodically.
func (d *Driver) Run(ctx context.Context) error {
	interval := d.WatchdogInterval
	if interval <= 0 {
		interval = DefaultWatchdogInterval
	}
	ticker := d.clock.Ticker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := d.CheckWatchdog(); err != nil {
				glog.Errorf("%v", err)
			}
		}
	}
}

// Close stops the motor and releases the port.
func (d *Driver) Close() error {
	d.cmdLock.Lock()
	defer d.cmdLock.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	var errs fx.AggregatedError
	if err := d.stopLocked(); err != nil {
		errs.Add(errors.Wrap(err, "stop on close"))
	}
	if err := d.ch.Close(); err != nil {
		errs.Add(errors.Wrap(err, "close port"))
	}
	return errs.Aggregate()
}
