package comm

import (
	"github.com/pkg/errors"
	"go.bug.st/serial"
)

// DefaultBaudRate is the baud rate the motor controller is configured with.
const DefaultBaudRate = 115200

// OpenSerial opens a serial port in 8N1 mode.
func OpenSerial(name string, baud int) (Port, error) {
	if baud <= 0 {
		baud = DefaultBaudRate
	}
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	p, err := serial.Open(name, mode)
	if err != nil {
		return nil, errors.Wrapf(err, "open serial port %s", name)
	}
	return p, nil
}
