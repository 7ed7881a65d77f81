package joystick

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/pendulum.go/pkg/framework"
	"github.com/robotalks/pendulum.go/pkg/l1"
	l1msgs "github.com/robotalks/pendulum.go/pkg/l1/msgs"
)

type axisEvent struct {
	index, value int
}

func (e axisEvent) IsInit() bool { return false }
func (e axisEvent) Index() int   { return e.index }
func (e axisEvent) Value() int   { return e.value }

type buttonEvent struct{}

func (e buttonEvent) IsInit() bool  { return false }
func (e buttonEvent) Index() int    { return 0 }
func (e buttonEvent) Pressed() bool { return true }

type recordingConn struct {
	sent []fx.Message
}

type doneFuture struct{}

func (doneFuture) ResultChan() <-chan l1.Result {
	ch := make(chan l1.Result, 1)
	ch <- l1.Result{Msg: l1msgs.NewCommandOK()}
	return ch
}

func (c *recordingConn) DoCommand(msg fx.Message) l1.CommandFuture {
	c.sent = append(c.sent, msg)
	return doneFuture{}
}

func TestJogCommand(t *testing.T) {
	assert.Nil(t, JogCommand(1, 32767, 50))
	assert.Equal(t, &l1msgs.CartMove{Cmd: 50}, JogCommand(0, 32767, 50))
	assert.Equal(t, &l1msgs.CartMove{Cmd: -50}, JogCommand(6, -32768, 50))
	assert.Equal(t, &l1msgs.CartStop{}, JogCommand(0, AxisDeadZone-1, 50))
	assert.Equal(t, &l1msgs.CartStop{}, JogCommand(0, 0, 50))

	msg, ok := JogCommand(0, 16384, 100).(*l1msgs.CartMove)
	require.True(t, ok)
	assert.InDelta(t, 50, msg.Cmd, 0.01)
}

func TestConnectionJogsAndBrakesOnce(t *testing.T) {
	rec := &recordingConn{}
	c := &connection{conn: rec, maxPercent: 100, repeat: DefaultRepeatInterval}
	now := time.Unix(100, 0)

	c.handleEvent(now, axisEvent{index: 0, value: 0})
	assert.Empty(t, rec.sent)

	c.handleEvent(now, buttonEvent{})
	c.handleEvent(now, axisEvent{index: 1, value: 32767})
	assert.Empty(t, rec.sent)

	c.handleEvent(now, axisEvent{index: 0, value: 32767})
	c.handleEvent(now, axisEvent{index: 0, value: 100})
	c.handleEvent(now, axisEvent{index: 0, value: -100})
	require.Len(t, rec.sent, 2)
	assert.Equal(t, &l1msgs.CartMove{Cmd: 100}, rec.sent[0])
	assert.Equal(t, &l1msgs.CartStop{}, rec.sent[1])

	c.handleEvent(now, axisEvent{index: 6, value: -32767})
	c.stopAll()
	require.Len(t, rec.sent, 4)
	assert.Equal(t, &l1msgs.CartMove{Cmd: -100}, rec.sent[2])
	assert.Equal(t, &l1msgs.CartStop{}, rec.sent[3])
	assert.Nil(t, c.moving)
}

func TestConnectionHoldsSpeedWhileStickHeld(t *testing.T) {
	rec := &recordingConn{}
	c := &connection{conn: rec, maxPercent: 100, repeat: DefaultRepeatInterval}
	now := time.Unix(100, 0)

	c.handleEvent(now, axisEvent{index: 0, value: 32767})
	require.Len(t, rec.sent, 1)

	// no further events while the stick is held, ticks of half the interval.
	tick := DefaultRepeatInterval / 2
	for i := 1; i <= 10; i++ {
		c.keepMoving(now.Add(time.Duration(i) * tick))
	}
	require.Len(t, rec.sent, 6)
	for _, msg := range rec.sent {
		assert.Equal(t, &l1msgs.CartMove{Cmd: 100}, msg)
	}

	// centering the stick stops the repeats.
	now = now.Add(10 * tick)
	c.handleEvent(now, axisEvent{index: 0, value: 0})
	require.Len(t, rec.sent, 7)
	assert.Equal(t, &l1msgs.CartStop{}, rec.sent[6])
	for i := 1; i <= 10; i++ {
		c.keepMoving(now.Add(time.Duration(i) * tick))
	}
	require.Len(t, rec.sent, 7)
}
