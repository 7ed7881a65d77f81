package motor

import (
	"sync"
	"time"

	"github.com/robotalks/pendulum.go/pkg/l0/comm"
)

// testPort decodes written frames and answers variable reads from regs.
type testPort struct {
	lock     sync.Mutex
	regs     map[comm.Register]uint16
	frames   []comm.Frame
	pending  []byte
	input    []byte
	writeMax int
	writeErr error
	silent   bool
	closed   int
}

func newTestPort() *testPort {
	return &testPort{regs: make(map[comm.Register]uint16)}
}

func (p *testPort) Read(b []byte) (int, error) {
	p.lock.Lock()
	if len(p.input) > 0 {
		n := copy(b, p.input)
		p.input = p.input[n:]
		p.lock.Unlock()
		return n, nil
	}
	p.lock.Unlock()
	time.Sleep(time.Millisecond)
	return 0, nil
}

func (p *testPort) Write(b []byte) (int, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.writeErr != nil {
		return 0, p.writeErr
	}
	if p.writeMax > 0 && len(b) > p.writeMax {
		b = b[:p.writeMax]
	}
	p.pending = append(p.pending, b...)
	for {
		f, n, err := comm.DecodeFrame(p.pending)
		if err == comm.ErrIncompleteFrame {
			break
		}
		p.pending = p.pending[n:]
		if err != nil {
			continue
		}
		p.frames = append(p.frames, f)
		if f.Op == comm.OpReadVariable && !p.silent {
			val := p.regs[comm.Register(f.Arg)]
			p.input = append(p.input, byte(val), byte(val>>8))
		}
	}
	return len(b), nil
}

func (p *testPort) Close() error {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.closed++
	return nil
}

func (p *testPort) ResetInputBuffer() error {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.input = nil
	return nil
}

func (p *testPort) SetReadTimeout(time.Duration) error {
	return nil
}

func (p *testPort) Frames() []comm.Frame {
	p.lock.Lock()
	defer p.lock.Unlock()
	return append([]comm.Frame(nil), p.frames...)
}

func (p *testPort) CountOp(op byte) int {
	cnt := 0
	for _, f := range p.Frames() {
		if f.Op == op {
			cnt++
		}
	}
	return cnt
}

func (p *testPort) SetWriteErr(err error) {
	p.lock.Lock()
	p.writeErr = err
	p.lock.Unlock()
}
