package mqtt

import (
	"context"
	"io"

	"github.com/golang/glog"

	"github.com/robotalks/pendulum.go/pkg/l1"
)

// PacketBacklog is the number of received packets buffered before
// the broker callback blocks.
const PacketBacklog = 16

// ReadWriter implements PacketReadWriter on a pair of topics.
type ReadWriter struct {
	Queue    *Queue
	SubTopic string
	PubTopic string

	packetCh chan []byte
	doneCh   chan struct{}
}

// NewPacketReadWriter creates the ReadWriter.
func NewPacketReadWriter(q *Queue) *ReadWriter {
	return &ReadWriter{
		Queue:    q,
		packetCh: make(chan []byte, PacketBacklog),
		doneCh:   make(chan struct{}),
	}
}

// WithTopics specifies the topics.
func (p *ReadWriter) WithTopics(sub, pub string) *ReadWriter {
	p.SubTopic, p.PubTopic = sub, pub
	return p
}

// ForConnector sets topics using default convention for connector:
// SubTopic = prefix/msg
// PubTopic = prefix/cmd
func (p *ReadWriter) ForConnector(ref l1.ControllerRef) *ReadWriter {
	prefix := ref.Name()
	return p.WithTopics(prefix+"/msg", prefix+"/cmd")
}

// ForController sets topics using default convention for L1 controller:
// SubTopic = prefix/cmd
// PubTopic = prefix/msg
func (p *ReadWriter) ForController(ref l1.ControllerRef) *ReadWriter {
	prefix := ref.Name()
	return p.WithTopics(prefix+"/cmd", prefix+"/msg")
}

// ReadPacket implements PacketReadWriter. It returns io.EOF after Run exits.
func (p *ReadWriter) ReadPacket() ([]byte, error) {
	select {
	case pkt := <-p.packetCh:
		return pkt, nil
	case <-p.doneCh:
		return nil, io.EOF
	}
}

// WritePacket implements PacketReadWriter.
func (p *ReadWriter) WritePacket(pkt []byte) error {
	token := p.Queue.Pub(p.PubTopic, pkt)
	token.Wait()
	return token.Error()
}

// Run implements Runnable.
func (p *ReadWriter) Run(ctx context.Context) error {
	sub := p.Queue.Sub(p.SubTopic, Handler(p.handleMsg))
	<-ctx.Done()
	close(p.doneCh)
	if err := sub.Close(); err != nil {
		glog.Warningf("unsubscribe %s: %v", p.SubTopic, err)
	}
	return ctx.Err()
}

func (p *ReadWriter) handleMsg(topic string, payload []byte) {
	select {
	case p.packetCh <- payload:
	case <-p.doneCh:
		glog.V(2).Infof("drop packet from %s after shutdown", topic)
	}
}
