package pendulum

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/pendulum.go/pkg/sim/physics"
)

func TestHangingAtRest(t *testing.T) {
	e := New(DefaultParams)
	e.Reset(500, 0)
	for i := 0; i < 500; i++ {
		e.Update(0)
	}
	require.InDelta(t, 0, e.Angle, 1e-9)
	require.InDelta(t, 500, e.CartX, 1e-9)
	require.InDelta(t, 250, e.Mass.Y, 1e-9)
}

func TestSmallSwingIsBounded(t *testing.T) {
	e := New(DefaultParams)
	e.Reset(500, 0.1)
	var maxAngle, minAngle float64
	for i := 0; i < 1000; i++ {
		e.Update(0)
		maxAngle = math.Max(maxAngle, e.Angle)
		minAngle = math.Min(minAngle, e.Angle)
	}
	require.True(t, maxAngle < 0.15, "max %v", maxAngle)
	require.True(t, minAngle < -0.05, "should swing to the other side, min %v", minAngle)
	require.True(t, minAngle > -0.15, "min %v", minAngle)
}

func TestUprightFalls(t *testing.T) {
	e := New(DefaultParams)
	start := math.Abs(e.Angle)
	require.InDelta(t, 0.9*math.Pi, start, 1e-9)
	for i := 0; i < 50; i++ {
		e.Update(0)
	}
	require.True(t, math.Abs(e.Angle) < start)
}

func TestCartStaysOnTrack(t *testing.T) {
	e := New(DefaultParams)
	for i := 0; i < 2000; i++ {
		e.Update(2000)
		require.True(t, e.CartX >= 0 && e.CartX <= e.TrackLength, "cart at %v", e.CartX)
	}
	for i := 0; i < 4000; i++ {
		e.Update(-2000)
		require.True(t, e.CartX >= 0 && e.CartX <= e.TrackLength, "cart at %v", e.CartX)
	}
}

func TestAdvanceMovesCartUnderMass(t *testing.T) {
	e := New(DefaultParams)
	e.Reset(500, 0)
	start := time.Unix(100, 0)
	e.Advance(physics.At(context.Background(), start), 0)
	e.Advance(physics.At(context.Background(), start.Add(100*time.Millisecond)), 500)
	require.InDelta(t, 550, e.CartX, 1e-6)
	require.True(t, e.Angle < 0, "mass lags behind the cart, angle %v", e.Angle)
	require.InDelta(t, e.Angle-math.Pi/2, e.Pole().Radians(), 1e-9)
}
