package comm

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange indicates a speed percent outside [0, 100].
	ErrInvalidRange = errors.New("value out of range")
	// ErrTimeout indicates the device didn't reply within the read timeout.
	ErrTimeout = errors.New("read timeout")
	// ErrClosed indicates the channel has been closed.
	ErrClosed = errors.New("channel closed")
	// ErrIncompleteFrame indicates more bytes are needed to decode a frame.
	ErrIncompleteFrame = errors.New("incomplete frame")
)

// IOError wraps a failure of the underlying port.
type IOError struct {
	Op  string
	Err error
}

// Error implements error.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the port error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// ProtocolError indicates a reply with unexpected framing.
type ProtocolError struct {
	Want int
	Got  int
}

// Error implements error.
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("short reply: want %d bytes, got %d", e.Want, e.Got)
}

// OpcodeError indicates a frame starting with an unknown opcode.
type OpcodeError struct {
	Op byte
}

// Error implements error.
func (e *OpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode 0x%02x", e.Op)
}
