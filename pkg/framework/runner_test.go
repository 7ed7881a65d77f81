package framework

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunnerCollectsErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	failure := errors.New("port gone")
	r := NewRunnerWith(ctx)
	r.Go(
		NamedRun("fail", runnableFunc(func(context.Context) error { return failure })),
		NamedRun("wait", runnableFunc(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})),
	)
	cancel()
	err := r.Wait()
	require.Error(t, err)
	agg, ok := err.(*AggregatedError)
	require.True(t, ok)
	require.Equal(t, []error{failure}, agg.Errors)
}

func TestRunnerFirstExitStopsOthers(t *testing.T) {
	r := NewRunner()
	r.Go(
		runnableFunc(func(context.Context) error { return nil }),
		runnableFunc(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}),
	)
	require.NoError(t, r.Wait())
}

func TestRunnerShutdownTimeout(t *testing.T) {
	r := NewRunner()
	r.ShutdownTimeout = 20 * time.Millisecond
	blockCh := make(chan struct{})
	defer close(blockCh)
	r.Go(NamedRun("stuck", runnableFunc(func(context.Context) error {
		<-blockCh
		return nil
	})))
	r.Stop()
	err := r.Wait()
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrShutdownTimeout))
}

func TestRunWithContextCloser(t *testing.T) {
	var closed int
	closer := closerFunc(func() error { closed++; return nil })
	require.NoError(t, RunWithContextCloser(context.Background(), closer, func() error { return nil }))
	require.Equal(t, 1, closed)

	ctx, cancel := context.WithCancel(context.Background())
	blockCh := make(chan struct{})
	cancel()
	err := RunWithContextCloser(ctx, closerFunc(func() error {
		closed++
		close(blockCh)
		return nil
	}), func() error {
		<-blockCh
		return nil
	})
	require.Equal(t, context.Canceled, err)
	require.Equal(t, 2, closed)
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
