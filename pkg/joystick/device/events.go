package device

import (
	"encoding/binary"
	"fmt"
)

// EventSize is the size of a js_event record.
const EventSize = 8

const (
	evBTN  uint8 = 0x01
	evAXIS uint8 = 0x02
	evINIT uint8 = 0x80
)

// DecodeEvent decodes a js_event record:
// u32 time (ms), s16 value, u8 type, u8 number, little endian.
func DecodeEvent(buf []byte) (Event, error) {
	if len(buf) < EventSize {
		return nil, fmt.Errorf("short event: %d bytes", len(buf))
	}
	ev := event{
		Time:   binary.LittleEndian.Uint32(buf[0:]),
		Value:  int16(binary.LittleEndian.Uint16(buf[4:])),
		Type:   buf[6],
		Number: buf[7],
	}
	switch ev.Type &^ evINIT {
	case evBTN:
		return &buttonEvent{event: ev}, nil
	case evAXIS:
		return &axisEvent{event: ev}, nil
	}
	return &ev, nil
}

type event struct {
	Time   uint32
	Value  int16
	Type   uint8
	Number uint8
}

func (e *event) IsInit() bool {
	return e.Type&evINIT != 0
}

func (e *event) Index() int {
	return int(e.Number)
}

type axisEvent struct {
	event
}

func (e *axisEvent) Value() int {
	return int(e.event.Value)
}

type buttonEvent struct {
	event
}

func (e *buttonEvent) Pressed() bool {
	return e.event.Value != 0
}
