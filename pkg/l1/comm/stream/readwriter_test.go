package stream

import (
	"bytes"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPacketsOverPipe(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()
	w, r := New(a), New(b)

	go func() {
		w.WritePacket([]byte{0x85, 0x00, 0x19})
		w.WritePacket(nil)
	}()
	pkt, err := r.ReadPacket()
	require.NoError(t, err)
	require.Equal(t, []byte{0x85, 0x00, 0x19}, pkt)
	pkt, err = r.ReadPacket()
	require.NoError(t, err)
	require.Empty(t, pkt)
}

func TestPacketTooLarge(t *testing.T) {
	var buf bytes.Buffer
	rw := New(&buf)
	require.Equal(t, ErrPacketTooLarge, rw.WritePacket(make([]byte, MaxPacketSize+1)))
	buf.Write([]byte{0xff, 0xff, 0xff, 0xff})
	_, err := rw.ReadPacket()
	require.Equal(t, ErrPacketTooLarge, err)
}
