package motor

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/robotalks/pendulum.go/pkg/l0/comm"
)

// TelemetryRegisters are read in this order by PollTelemetry.
var TelemetryRegisters = []comm.Register{
	comm.RegErrorStatus,
	comm.RegSerialError,
	comm.RegLimitStatus,
	comm.RegTargetSpeed,
	comm.RegSpeed,
	comm.RegBrakeAmount,
	comm.RegInputVoltage,
	comm.RegTemperature,
}

// Telemetry is a snapshot of the motor controller status.
type Telemetry struct {
	ErrorStatus  comm.ErrorStatus
	SerialError  comm.SerialError
	LimitStatus  comm.LimitStatus
	TargetSpeed  int16
	Speed        int16
	BrakeAmount  uint16
	InputVoltage float64 // V
	Temperature  float64 // °C
	Time         time.Time
}

// String implements fmt.Stringer.
func (t *Telemetry) String() string {
	return fmt.Sprintf("target=%d speed=%d brake=%d vin=%.3fV temp=%.1fC errors=%s serial=%s limits=%s",
		t.TargetSpeed, t.Speed, t.BrakeAmount, t.InputVoltage, t.Temperature,
		t.ErrorStatus, t.SerialError, t.LimitStatus)
}

// PollTelemetry reads all telemetry registers.
// Each read is a separate exchange so commands can go out in between.
func (d *Driver) PollTelemetry() (*Telemetry, error) {
	raw := make(map[comm.Register]uint16, len(TelemetryRegisters))
	for _, reg := range TelemetryRegisters {
		val, err := d.ch.ReadVar(reg)
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", reg)
		}
		raw[reg] = val
	}
	return &Telemetry{
		ErrorStatus:  comm.ErrorStatus(raw[comm.RegErrorStatus]),
		SerialError:  comm.SerialError(raw[comm.RegSerialError]),
		LimitStatus:  comm.LimitStatus(raw[comm.RegLimitStatus]),
		TargetSpeed:  comm.Signed16(raw[comm.RegTargetSpeed]),
		Speed:        comm.Signed16(raw[comm.RegSpeed]),
		BrakeAmount:  raw[comm.RegBrakeAmount],
		InputVoltage: comm.RegInputVoltage.Value(raw[comm.RegInputVoltage]),
		Temperature:  comm.RegTemperature.Value(raw[comm.RegTemperature]),
		Time:         d.clock.Now(),
	}, nil
}
