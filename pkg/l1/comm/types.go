package comm

// PacketReadWriter carries encoded L1 messages, one msgs.Typed per packet.
// The MQTT topic pair and the length-prefixed byte stream both implement it.
type PacketReadWriter interface {
	// ReadPacket blocks until a packet arrives. io.EOF means the transport
	// is gone and the pipe should stop.
	ReadPacket() ([]byte, error)
	// WritePacket sends one packet. It must be safe to call while
	// another goroutine is in ReadPacket.
	WritePacket([]byte) error
}
