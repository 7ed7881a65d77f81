// Package encoder reads the quadrature counts streamed by the encoder
// microcontroller of the rig over its own serial port.
//
// The microcontroller sends 6-byte frames from a timer interrupt:
//
//	0x0A | arm count (s16 BE) | motor count (s16 BE) | arm quadrature state
//
// The stream has no checksum, so the parser syncs on the header byte and
// only accepts a frame when the header of the next frame follows it.
package encoder
