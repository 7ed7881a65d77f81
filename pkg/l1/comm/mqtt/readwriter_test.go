package mqtt

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/pendulum.go/pkg/l1"
)

func TestReadWriterTopics(t *testing.T) {
	ref := l1.ControllerRef{Type: "cart", ID: "rig0"}
	rw := NewPacketReadWriter(nil).ForController(ref)
	require.Equal(t, "cart/rig0/cmd", rw.SubTopic)
	require.Equal(t, "cart/rig0/msg", rw.PubTopic)

	rw = NewPacketReadWriter(nil).ForConnector(ref)
	require.Equal(t, "cart/rig0/msg", rw.SubTopic)
	require.Equal(t, "cart/rig0/cmd", rw.PubTopic)
}

func TestReadWriterPackets(t *testing.T) {
	rw := NewPacketReadWriter(nil)
	rw.handleMsg("cart/rig0/cmd", []byte{1})
	rw.handleMsg("cart/rig0/cmd", []byte{2})
	pkt, err := rw.ReadPacket()
	require.NoError(t, err)
	require.Equal(t, []byte{1}, pkt)
	pkt, err = rw.ReadPacket()
	require.NoError(t, err)
	require.Equal(t, []byte{2}, pkt)

	close(rw.doneCh)
	_, err = rw.ReadPacket()
	require.Equal(t, io.EOF, err)
	// must not block or panic after shutdown.
	for i := 0; i <= PacketBacklog; i++ {
		rw.handleMsg("cart/rig0/cmd", []byte{3})
	}
}
