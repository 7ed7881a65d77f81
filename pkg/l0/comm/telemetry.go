package comm

import (
	"fmt"
	"strings"
)

// Register is the address of a device variable.
type Register byte

// Registers
const (
	RegErrorStatus  Register = 1
	RegSerialError  Register = 2
	RegLimitStatus  Register = 3
	RegTargetSpeed  Register = 20
	RegSpeed        Register = 21
	RegBrakeAmount  Register = 22
	RegInputVoltage Register = 23
	RegTemperature  Register = 24
)

// WordKind defines how a telemetry word is interpreted.
type WordKind int

// Word kinds
const (
	WordUnsigned WordKind = iota
	WordBitfield
	WordSigned
	WordMillivolts
	WordDeciCelsius
)

// RegisterInfo describes a register.
type RegisterInfo struct {
	Name string
	Kind WordKind
}

// Registers is the fixed address table of the telemetry variables.
var Registers = map[Register]RegisterInfo{
	RegErrorStatus:  {Name: "error-status", Kind: WordBitfield},
	RegSerialError:  {Name: "serial-error", Kind: WordBitfield},
	RegLimitStatus:  {Name: "limit-status", Kind: WordBitfield},
	RegTargetSpeed:  {Name: "target-speed", Kind: WordSigned},
	RegSpeed:        {Name: "speed", Kind: WordSigned},
	RegBrakeAmount:  {Name: "brake-amount", Kind: WordUnsigned},
	RegInputVoltage: {Name: "input-voltage", Kind: WordMillivolts},
	RegTemperature:  {Name: "temperature", Kind: WordDeciCelsius},
}

// String implements fmt.Stringer.
func (r Register) String() string {
	if info, ok := Registers[r]; ok {
		return info.Name
	}
	return fmt.Sprintf("var-%d", byte(r))
}

// Value interprets a raw word read from the register.
// Millivolts are returned in volts and tenths in degrees.
func (r Register) Value(raw uint16) float64 {
	switch Registers[r].Kind {
	case WordSigned:
		return float64(Signed16(raw))
	case WordMillivolts:
		return float64(raw) / 1000
	case WordDeciCelsius:
		return float64(raw) / 10
	}
	return float64(raw)
}

// DecodeWord combines the little-endian reply bytes.
func DecodeWord(lo, hi byte) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}

// Signed16 reinterprets a word as two's complement.
func Signed16(raw uint16) int16 {
	return int16(raw)
}

// ErrorStatus is the bitfield of RegErrorStatus.
type ErrorStatus uint16

// ErrorStatus bits
const (
	ErrSafeStart     ErrorStatus = 1 << 0
	ErrSerial        ErrorStatus = 1 << 2
	ErrCmdTimeout    ErrorStatus = 1 << 3
	ErrLimitSwitch   ErrorStatus = 1 << 4
	ErrLowVin        ErrorStatus = 1 << 5
	ErrHighVin       ErrorStatus = 1 << 6
	ErrOverTemp      ErrorStatus = 1 << 7
	ErrDriver        ErrorStatus = 1 << 8
	ErrErrorLineHigh ErrorStatus = 1 << 9
)

var errorStatusNames = []flagName{
	{uint16(ErrSafeStart), "safe-start"},
	{uint16(ErrSerial), "serial-error"},
	{uint16(ErrCmdTimeout), "command-timeout"},
	{uint16(ErrLimitSwitch), "limit-switch"},
	{uint16(ErrLowVin), "low-vin"},
	{uint16(ErrHighVin), "high-vin"},
	{uint16(ErrOverTemp), "over-temp"},
	{uint16(ErrDriver), "driver-error"},
	{uint16(ErrErrorLineHigh), "error-line-high"},
}

// Has checks if all bits in f are set.
func (s ErrorStatus) Has(f ErrorStatus) bool { return s&f == f }

// String implements fmt.Stringer.
func (s ErrorStatus) String() string { return formatFlags(uint16(s), errorStatusNames) }

// SerialError is the bitfield of RegSerialError.
type SerialError uint16

// SerialError bits
const (
	SerialFraming   SerialError = 1 << 1
	SerialNoise     SerialError = 1 << 2
	SerialRxOverrun SerialError = 1 << 3
	SerialFormat    SerialError = 1 << 4
	SerialCRC       SerialError = 1 << 5
)

var serialErrorNames = []flagName{
	{uint16(SerialFraming), "framing"},
	{uint16(SerialNoise), "noise"},
	{uint16(SerialRxOverrun), "rx-overrun"},
	{uint16(SerialFormat), "format"},
	{uint16(SerialCRC), "crc"},
}

// Has checks if all bits in f are set.
func (s SerialError) Has(f SerialError) bool { return s&f == f }

// String implements fmt.Stringer.
func (s SerialError) String() string { return formatFlags(uint16(s), serialErrorNames) }

// LimitStatus is the bitfield of RegLimitStatus.
type LimitStatus uint16

// LimitStatus bits
const (
	LimitErrorOrSafeStart LimitStatus = 1 << 0
	LimitTemperature      LimitStatus = 1 << 1
	LimitHighTargetSpeed  LimitStatus = 1 << 2
	LimitLowTargetSpeed   LimitStatus = 1 << 3
	LimitAN1              LimitStatus = 1 << 7
	LimitAN2              LimitStatus = 1 << 8
	LimitUSBKill          LimitStatus = 1 << 9
)

var limitStatusNames = []flagName{
	{uint16(LimitErrorOrSafeStart), "error-or-safe-start"},
	{uint16(LimitTemperature), "temp-limiter"},
	{uint16(LimitHighTargetSpeed), "high-target-speed"},
	{uint16(LimitLowTargetSpeed), "low-target-speed"},
	{uint16(LimitAN1), "an1-limit"},
	{uint16(LimitAN2), "an2-limit"},
	{uint16(LimitUSBKill), "usb-kill"},
}

// Has checks if all bits in f are set.
func (s LimitStatus) Has(f LimitStatus) bool { return s&f == f }

// String implements fmt.Stringer.
func (s LimitStatus) String() string { return formatFlags(uint16(s), limitStatusNames) }

type flagName struct {
	bit  uint16
	name string
}

func formatFlags(v uint16, names []flagName) string {
	var set []string
	for _, f := range names {
		if v&f.bit != 0 {
			set = append(set, f.name)
			v &^= f.bit
		}
	}
	if v != 0 {
		set = append(set, fmt.Sprintf("0x%x", v))
	}
	if len(set) == 0 {
		return "none"
	}
	return strings.Join(set, "|")
}
