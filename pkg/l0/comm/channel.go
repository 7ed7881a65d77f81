package comm

import (
	"bytes"
	"io"
	"os"
	"sync"
	"time"

	"github.com/golang/glog"
)

// Port is the byte channel to the device.
// go.bug.st/serial.Port satisfies it; a Read returning 0 bytes
// and no error means the read timeout expired.
type Port interface {
	io.ReadWriteCloser
	// ResetInputBuffer discards bytes received but not read.
	ResetInputBuffer() error
	// SetReadTimeout bounds a single Read.
	SetReadTimeout(time.Duration) error
}

// DefaultReadTimeout is the default bound for reading a reply.
const DefaultReadTimeout = time.Second

// ReplySize is the size of a variable read reply.
const ReplySize = 2

// Channel serializes exchanges over a Port.
// Only one exchange is on the wire at any time.
type Channel struct {
	Port        Port
	ReadTimeout time.Duration

	closed bool
	lock   sync.Mutex
}

// NewChannel creates a Channel.
func NewChannel(port Port) *Channel {
	return &Channel{
		Port:        port,
		ReadTimeout: DefaultReadTimeout,
	}
}

// Send writes frames in one exclusive transaction.
func (c *Channel) Send(frames ...[]byte) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.closed {
		return ErrClosed
	}
	return c.write(bytes.Join(frames, nil))
}

// Exchange discards stale input, writes req and reads exactly n bytes
// of reply, all in one exclusive transaction.
func (c *Channel) Exchange(req []byte, n int) ([]byte, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.closed {
		return nil, ErrClosed
	}
	if err := c.Port.ResetInputBuffer(); err != nil {
		return nil, &IOError{Op: "flush", Err: err}
	}
	if err := c.write(req); err != nil {
		return nil, err
	}
	return c.readFull(n)
}

// ReadVar reads a register.
func (c *Channel) ReadVar(reg Register) (uint16, error) {
	reply, err := c.Exchange(EncodeRead(reg), ReplySize)
	if err != nil {
		return 0, err
	}
	return DecodeWord(reply[0], reply[1]), nil
}

// Close closes the port. Later exchanges fail with ErrClosed.
func (c *Channel) Close() error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.Port.Close()
}

func (c *Channel) write(p []byte) error {
	glog.V(3).Infof("TX % x", p)
	for len(p) > 0 {
		n, err := c.Port.Write(p)
		if err != nil {
			return &IOError{Op: "write", Err: err}
		}
		if n == 0 {
			return &IOError{Op: "write", Err: io.ErrShortWrite}
		}
		p = p[n:]
	}
	return nil
}

// readFull never waits longer than ReadTimeout in total, even when the
// device trickles bytes.
func (c *Channel) readFull(n int) ([]byte, error) {
	timeout := c.ReadTimeout
	if timeout <= 0 {
		timeout = DefaultReadTimeout
	}
	buf := make([]byte, n)
	got := 0
	deadline := time.Now().Add(timeout)
	for got < n {
		remains := time.Until(deadline)
		if remains <= 0 {
			break
		}
		if err := c.Port.SetReadTimeout(remains); err != nil {
			return nil, &IOError{Op: "set read timeout", Err: err}
		}
		cnt, err := c.Port.Read(buf[got:])
		got += cnt
		if err != nil {
			if os.IsTimeout(err) {
				break
			}
			return nil, &IOError{Op: "read", Err: err}
		}
		if cnt == 0 {
			break
		}
	}
	glog.V(3).Infof("RX % x", buf[:got])
	switch {
	case got == 0:
		return nil, ErrTimeout
	case got < n:
		return nil, &ProtocolError{Want: n, Got: got}
	}
	return buf, nil
}
