package encoder

import (
	"bytes"
	"encoding/binary"
)

// Header starts every frame.
const Header byte = 0x0A

// FrameSize is the size of a frame including the header.
const FrameSize = 6

// maxQuadrature is the largest valid 2-bit quadrature state.
const maxQuadrature = 3

// Frame is one sample of the encoder counts.
type Frame struct {
	ArmCount   int16
	MotorCount int16
	// Quadrature is the raw A/B state of the arm encoder.
	Quadrature uint8
}

// DecodeFrame decodes a frame without checking the alignment.
func DecodeFrame(b []byte) (f Frame, ok bool) {
	if len(b) < FrameSize || b[0] != Header || b[5] > maxQuadrature {
		return f, false
	}
	f.ArmCount = int16(binary.BigEndian.Uint16(b[1:]))
	f.MotorCount = int16(binary.BigEndian.Uint16(b[3:]))
	f.Quadrature = b[5]
	return f, true
}

// Parser syncs on the byte stream and extracts frames.
type Parser struct {
	// Dropped counts bytes discarded while syncing.
	Dropped int

	buf []byte
}

// Parse consumes one byte. A frame is returned once the header of the
// next frame confirms the alignment.
func (p *Parser) Parse(b byte) (*Frame, bool) {
	p.buf = append(p.buf, b)
	for {
		pos := bytes.IndexByte(p.buf, Header)
		if pos < 0 {
			p.Dropped += len(p.buf)
			p.buf = p.buf[:0]
			return nil, false
		}
		p.Dropped += pos
		p.shift(pos)
		switch {
		case len(p.buf) < FrameSize:
			return nil, false
		case len(p.buf) == FrameSize:
			if p.buf[FrameSize-1] <= maxQuadrature {
				return nil, false
			}
		case p.buf[FrameSize] == Header:
			if f, ok := DecodeFrame(p.buf); ok {
				p.shift(FrameSize)
				return &f, true
			}
		}
		// misaligned, resync after the current header.
		p.Dropped++
		p.shift(1)
	}
}

// Reset drops the partially received bytes.
func (p *Parser) Reset() {
	p.buf = p.buf[:0]
}

func (p *Parser) shift(n int) {
	if n > 0 {
		p.buf = append(p.buf[:0], p.buf[n:]...)
	}
}
