package comm

import (
	"io"
	"math"
)

// Direction selects the opcode of a move command.
type Direction int

// Directions
const (
	Forward Direction = iota
	Reverse
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// Opcodes
const (
	OpEnable       byte = 0x83 // exit safe-start
	OpMoveForward  byte = 0x85
	OpMoveReverse  byte = 0x86
	OpStop         byte = 0x92 // motor limit command, used as brake
	OpReadVariable byte = 0xA1
)

const (
	// FullSpeed is the wire magnitude of 100 percent.
	FullSpeed uint16 = 3200
	// MaxMagnitude is the largest magnitude 2 data bytes can carry (5+7 bits).
	MaxMagnitude uint16 = 0x0fff

	// StopArg is the argument of the stop frame.
	StopArg byte = 32
)

// Frame is a decoded command frame.
type Frame struct {
	Op        byte
	Magnitude uint16 // move frames only
	Arg       byte   // stop argument or register address
}

// Magnitude converts a percent in [0, 100] into the wire magnitude.
func Magnitude(percent float64) (uint16, error) {
	if math.IsNaN(percent) || percent < 0 || percent > 100 {
		return 0, ErrInvalidRange
	}
	m := math.Round(float64(FullSpeed) * percent / 100)
	if m > float64(MaxMagnitude) {
		m = float64(MaxMagnitude)
	}
	return uint16(m), nil
}

// EncodeMove encodes a move command, percent must be within [0, 100].
func EncodeMove(dir Direction, percent float64) ([]byte, error) {
	mag, err := Magnitude(percent)
	if err != nil {
		return nil, err
	}
	op := OpMoveForward
	if dir == Reverse {
		op = OpMoveReverse
	}
	return Frame{Op: op, Magnitude: mag}.Bytes(), nil
}

// EncodeStop encodes the brake command.
// It's different from a move with zero speed.
func EncodeStop() []byte {
	return []byte{OpStop, StopArg}
}

// EncodeEnable encodes the safe-start clear command.
func EncodeEnable() []byte {
	return []byte{OpEnable}
}

// EncodeRead encodes a variable read request.
func EncodeRead(reg Register) []byte {
	return []byte{OpReadVariable, byte(reg)}
}

// Bytes encodes the frame.
func (f Frame) Bytes() []byte {
	switch f.Op {
	case OpMoveForward, OpMoveReverse:
		mag := f.Magnitude
		if mag > MaxMagnitude {
			mag = MaxMagnitude
		}
		return []byte{f.Op, byte(mag & 0x1f), byte(mag >> 5)}
	case OpStop, OpReadVariable:
		return []byte{f.Op, f.Arg}
	}
	return []byte{f.Op}
}

// IsMove indicates a move frame.
func (f Frame) IsMove() bool {
	return f.Op == OpMoveForward || f.Op == OpMoveReverse
}

// Direction gets the direction of a move frame.
func (f Frame) Direction() Direction {
	if f.Op == OpMoveReverse {
		return Reverse
	}
	return Forward
}

// DecodeFrame decodes the first frame in b and returns the number of
// bytes consumed. ErrIncompleteFrame is returned when b ends in the
// middle of a frame.
func DecodeFrame(b []byte) (f Frame, n int, err error) {
	if len(b) == 0 {
		return f, 0, ErrIncompleteFrame
	}
	f.Op = b[0]
	switch f.Op {
	case OpEnable:
		return f, 1, nil
	case OpMoveForward, OpMoveReverse:
		if len(b) < 3 {
			return f, 0, ErrIncompleteFrame
		}
		f.Magnitude = uint16(b[1]&0x1f) | uint16(b[2]&0x7f)<<5
		return f, 3, nil
	case OpStop, OpReadVariable:
		if len(b) < 2 {
			return f, 0, ErrIncompleteFrame
		}
		f.Arg = b[1]
		return f, 2, nil
	}
	return f, 1, &OpcodeError{Op: f.Op}
}

// WriteTo writes encoded bytes.
func (f Frame) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(f.Bytes())
	return int64(n), err
}
