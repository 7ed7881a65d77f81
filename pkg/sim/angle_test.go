package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAngleNormalized(t *testing.T) {
	assert.InDelta(t, -math.Pi/2, AngleFromRadians(3*math.Pi/2).Radians(), 1e-9)
	assert.InDelta(t, math.Pi/2, AngleFromRadians(-3*math.Pi/2).Radians(), 1e-9)
	assert.InDelta(t, 0, AngleFromRadians(4*math.Pi).Radians(), 1e-9)
	assert.InDelta(t, 90, AngleFromDegrees(450).Degrees(), 1e-9)
	assert.InDelta(t, -170, AngleFromDegrees(100).Add(AngleFromDegrees(90)).Degrees(), 1e-9)
}

func TestPos2DAdd(t *testing.T) {
	assert.Equal(t, Pos2D{X: 1, Y: -1}, Pos2D{X: 3, Y: 4}.Add(Pos2D{X: -2, Y: -5}))
}
