package encoder

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/glog"

	"github.com/robotalks/pendulum.go/pkg/l0/comm"
)

// DefaultReadTimeout bounds a single read so Run notices cancellation.
const DefaultReadTimeout = 100 * time.Millisecond

// Counts is the latest frame with the time it was received.
type Counts struct {
	Frame
	Time time.Time
}

// Reader receives frames from the encoder port.
type Reader struct {
	Port        comm.Port
	ReadTimeout time.Duration
	Clock       clock.Clock

	parser Parser
	lock   sync.RWMutex
	counts Counts
	valid  bool
	frames uint64
}

// NewReader creates a Reader on an opened port.
func NewReader(port comm.Port) *Reader {
	return &Reader{
		Port:        port,
		ReadTimeout: DefaultReadTimeout,
		Clock:       clock.New(),
	}
}

// Latest returns the last received counts, ok is false before the first frame.
func (r *Reader) Latest() (c Counts, ok bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.counts, r.valid
}

// Frames returns the number of frames received.
func (r *Reader) Frames() uint64 {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.frames
}

// Feed parses received bytes and returns the number of frames decoded.
func (r *Reader) Feed(data []byte) int {
	var decoded int
	for _, b := range data {
		f, ok := r.parser.Parse(b)
		if !ok {
			continue
		}
		decoded++
		r.lock.Lock()
		r.counts = Counts{Frame: *f, Time: r.Clock.Now()}
		r.valid = true
		r.frames++
		r.lock.Unlock()
	}
	return decoded
}

// Run implements Runnable.
func (r *Reader) Run(ctx context.Context) error {
	if err := r.Port.ResetInputBuffer(); err != nil {
		return &comm.IOError{Op: "flush encoder", Err: err}
	}
	timeout := r.ReadTimeout
	if timeout <= 0 {
		timeout = DefaultReadTimeout
	}
	if err := r.Port.SetReadTimeout(timeout); err != nil {
		return &comm.IOError{Op: "set read timeout", Err: err}
	}
	buf := make([]byte, 16*FrameSize)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		n, err := r.Port.Read(buf)
		if n > 0 {
			r.Feed(buf[:n])
		}
		if err != nil && !os.IsTimeout(err) {
			glog.Errorf("encoder read: %v", err)
			return &comm.IOError{Op: "read encoder", Err: err}
		}
	}
}

// Close closes the port.
func (r *Reader) Close() error {
	return r.Port.Close()
}
