package comm

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePort struct {
	lock     sync.Mutex
	written  bytes.Buffer
	input    []byte
	chunk    int
	reply    func(req []byte) []byte
	writeMax int
	writeErr error
	readErr  error
	flushes  int
	closes   int
	timeout  time.Duration
}

func (p *fakePort) Read(b []byte) (int, error) {
	p.lock.Lock()
	if p.readErr != nil {
		p.lock.Unlock()
		return 0, p.readErr
	}
	if len(p.input) > 0 {
		n := len(p.input)
		if p.chunk > 0 && n > p.chunk {
			n = p.chunk
		}
		n = copy(b, p.input[:n])
		p.input = p.input[n:]
		p.lock.Unlock()
		return n, nil
	}
	timeout := p.timeout
	p.lock.Unlock()
	time.Sleep(timeout)
	return 0, nil
}

func (p *fakePort) Write(b []byte) (int, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.writeErr != nil {
		return 0, p.writeErr
	}
	if p.writeMax > 0 && len(b) > p.writeMax {
		b = b[:p.writeMax]
	}
	p.written.Write(b)
	if p.reply != nil {
		p.input = append(p.input, p.reply(b)...)
	}
	return len(b), nil
}

func (p *fakePort) Close() error {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.closes++
	return nil
}

func (p *fakePort) ResetInputBuffer() error {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.flushes++
	p.input = nil
	return nil
}

func (p *fakePort) SetReadTimeout(d time.Duration) error {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.timeout = d
	return nil
}

func (p *fakePort) Written() []byte {
	p.lock.Lock()
	defer p.lock.Unlock()
	return append([]byte(nil), p.written.Bytes()...)
}

func echoWord(lo, hi byte) func([]byte) []byte {
	return func(req []byte) []byte {
		if len(req) > 0 && req[0] == OpReadVariable {
			return []byte{lo, hi}
		}
		return nil
	}
}

func newTestChannel(p *fakePort) *Channel {
	ch := NewChannel(p)
	ch.ReadTimeout = 30 * time.Millisecond
	return ch
}

func TestChannelReadVar(t *testing.T) {
	p := &fakePort{reply: echoWord(0xe0, 0xfc)}
	ch := newTestChannel(p)
	raw, err := ch.ReadVar(RegTargetSpeed)
	require.NoError(t, err)
	require.Equal(t, int16(-800), Signed16(raw))
	require.Equal(t, []byte{0xa1, 20}, p.Written())
	require.Equal(t, 1, p.flushes)
}

func TestChannelDiscardsStaleInput(t *testing.T) {
	p := &fakePort{input: []byte{0xff, 0xff, 0xff}, reply: echoWord(0x39, 0x30)}
	ch := newTestChannel(p)
	raw, err := ch.ReadVar(RegInputVoltage)
	require.NoError(t, err)
	require.Equal(t, uint16(12345), raw)
}

func TestChannelTrickledReply(t *testing.T) {
	p := &fakePort{chunk: 1, reply: echoWord(0x3b, 0x01)}
	ch := newTestChannel(p)
	raw, err := ch.ReadVar(RegTemperature)
	require.NoError(t, err)
	require.Equal(t, uint16(315), raw)
}

func TestChannelTimeout(t *testing.T) {
	p := &fakePort{}
	ch := newTestChannel(p)
	start := time.Now()
	_, err := ch.ReadVar(RegSpeed)
	require.Equal(t, ErrTimeout, err)
	require.True(t, time.Since(start) < time.Second)
}

func TestChannelShortReply(t *testing.T) {
	p := &fakePort{reply: func([]byte) []byte { return []byte{0x01} }}
	ch := newTestChannel(p)
	_, err := ch.ReadVar(RegSpeed)
	require.Equal(t, &ProtocolError{Want: 2, Got: 1}, err)
}

func TestChannelIOErrors(t *testing.T) {
	broken := errors.New("broken pipe")

	p := &fakePort{writeErr: broken}
	ch := newTestChannel(p)
	err := ch.Send(EncodeStop())
	ioErr, ok := err.(*IOError)
	require.True(t, ok)
	require.Equal(t, "write", ioErr.Op)
	require.True(t, errors.Is(err, broken))

	p = &fakePort{readErr: io.ErrUnexpectedEOF}
	ch = newTestChannel(p)
	_, err = ch.ReadVar(RegSpeed)
	require.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestChannelPartialWrites(t *testing.T) {
	p := &fakePort{writeMax: 1}
	ch := newTestChannel(p)
	move, err := EncodeMove(Forward, 25)
	require.NoError(t, err)
	require.NoError(t, ch.Send(EncodeEnable(), move))
	require.Equal(t, []byte{0x83, 0x85, 0x00, 0x19}, p.Written())
}

func TestChannelTransactionsDoNotInterleave(t *testing.T) {
	p := &fakePort{writeMax: 1}
	ch := newTestChannel(p)
	move, err := EncodeMove(Reverse, 50)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for n := 0; n < 20; n++ {
				if i%2 == 0 {
					assert.NoError(t, ch.Send(EncodeEnable(), move))
				} else {
					assert.NoError(t, ch.Send(EncodeStop()))
				}
			}
		}(i)
	}
	wg.Wait()

	b := p.Written()
	var enables, moves, stops int
	for len(b) > 0 {
		f, n, err := DecodeFrame(b)
		require.NoError(t, err)
		switch f.Op {
		case OpEnable:
			enables++
			next, _, err := DecodeFrame(b[n:])
			require.NoError(t, err)
			require.True(t, next.IsMove(), "enable must be followed by its move")
		case OpMoveReverse:
			moves++
			require.Equal(t, uint16(1600), f.Magnitude)
		case OpStop:
			stops++
		}
		b = b[n:]
	}
	require.Equal(t, 80, enables)
	require.Equal(t, 80, moves)
	require.Equal(t, 80, stops)
}

func TestChannelClose(t *testing.T) {
	p := &fakePort{}
	ch := newTestChannel(p)
	require.NoError(t, ch.Close())
	require.NoError(t, ch.Close())
	require.Equal(t, 1, p.closes)
	require.Equal(t, ErrClosed, ch.Send(EncodeStop()))
	_, err := ch.ReadVar(RegSpeed)
	require.Equal(t, ErrClosed, err)
}
