package motor

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
)

func TestWatchdogExpiry(t *testing.T) {
	mock := clock.NewMock()
	w := NewWatchdog(200*time.Millisecond, mock)
	require.Equal(t, Active, w.State())

	mock.Add(200 * time.Millisecond)
	require.False(t, w.Expired(), "expires only after more than timeout")
	mock.Add(time.Millisecond)
	require.True(t, w.Expired())
	require.Equal(t, Expired, w.State())
	require.Equal(t, "expired", w.State().String())

	w.Reset()
	require.Equal(t, Active, w.State())
	require.Equal(t, mock.Now(), w.LastReset())
	require.False(t, w.IsExpired(mock.Now().Add(150*time.Millisecond)))
	require.True(t, w.IsExpired(mock.Now().Add(250*time.Millisecond)))
}

func TestWatchdogKeptAliveByResets(t *testing.T) {
	mock := clock.NewMock()
	w := NewWatchdog(200*time.Millisecond, mock)
	for i := 0; i < 20; i++ {
		mock.Add(150 * time.Millisecond)
		require.False(t, w.Expired(), "reset %d", i)
		w.Reset()
	}
	require.Equal(t, Active, w.State())
	mock.Add(201 * time.Millisecond)
	require.True(t, w.Expired())
}
