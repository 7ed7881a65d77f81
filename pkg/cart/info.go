package cart

import (
	"github.com/robotalks/pendulum.go/pkg/l0/comm"
	"github.com/robotalks/pendulum.go/pkg/l0/encoder"
	"github.com/robotalks/pendulum.go/pkg/l0/motor"
	"github.com/robotalks/pendulum.go/pkg/l1/msgs"
)

// NewMotorInfo converts polled telemetry into the MotorInfo event.
// d can be nil when the driver state is unknown.
func NewMotorInfo(t *motor.Telemetry, d *motor.Driver) *msgs.MotorInfo {
	info := &msgs.MotorInfo{
		ErrorStatus: &msgs.MotorError{
			SafeStart:     t.ErrorStatus.Has(comm.ErrSafeStart),
			SerialError:   t.ErrorStatus.Has(comm.ErrSerial),
			CmdTimeout:    t.ErrorStatus.Has(comm.ErrCmdTimeout),
			LimitSwitch:   t.ErrorStatus.Has(comm.ErrLimitSwitch),
			LowVin:        t.ErrorStatus.Has(comm.ErrLowVin),
			HighVin:       t.ErrorStatus.Has(comm.ErrHighVin),
			OverTemp:      t.ErrorStatus.Has(comm.ErrOverTemp),
			DriverError:   t.ErrorStatus.Has(comm.ErrDriver),
			ErrorLineHigh: t.ErrorStatus.Has(comm.ErrErrorLineHigh),
		},
		SerialError: &msgs.SerialError{
			Framing:   t.SerialError.Has(comm.SerialFraming),
			Noise:     t.SerialError.Has(comm.SerialNoise),
			RxOverrun: t.SerialError.Has(comm.SerialRxOverrun),
			Format:    t.SerialError.Has(comm.SerialFormat),
			Crc:       t.SerialError.Has(comm.SerialCRC),
		},
		LimitStatus: &msgs.LimitStatus{
			ErrorOrSafeStart: t.LimitStatus.Has(comm.LimitErrorOrSafeStart),
			TempLimiter:      t.LimitStatus.Has(comm.LimitTemperature),
			HighTargetSpeed:  t.LimitStatus.Has(comm.LimitHighTargetSpeed),
			LowTargetSpeed:   t.LimitStatus.Has(comm.LimitLowTargetSpeed),
			An1Limit:         t.LimitStatus.Has(comm.LimitAN1),
			An2Limit:         t.LimitStatus.Has(comm.LimitAN2),
			UsbKill:          t.LimitStatus.Has(comm.LimitUSBKill),
		},
		TargetSpeed: int32(t.TargetSpeed),
		Speed:       int32(t.Speed),
		BrakeAmt:    uint32(t.BrakeAmount),
		Vin:         t.InputVoltage,
		Temp:        t.Temperature,
		Timestamp:   t.Time.UnixNano(),
	}
	if d != nil {
		info.Enabled = d.Enabled()
		info.Watchdog = &msgs.WatchdogStatus{Expired: d.Watchdog().Expired()}
		if last := d.LastCommand(); !last.IsZero() {
			info.Watchdog.LastCommandAt = last.UnixNano()
		}
	}
	return info
}

// NewEncoderCounts converts an encoder sample.
func NewEncoderCounts(c encoder.Counts) *msgs.EncoderCounts {
	return &msgs.EncoderCounts{
		Arm:        int32(c.ArmCount),
		Motor:      int32(c.MotorCount),
		Quadrature: uint32(c.Quadrature),
		Timestamp:  c.Time.UnixNano(),
	}
}
