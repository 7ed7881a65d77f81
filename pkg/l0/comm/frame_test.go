package comm

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeMove(t *testing.T) {
	testCases := []struct {
		name    string
		dir     Direction
		percent float64
		expect  []byte
	}{
		{"zero forward", Forward, 0, []byte{0x85, 0, 0}},
		{"full forward", Forward, 100, []byte{0x85, 0x00, 0x64}},
		{"quarter forward", Forward, 25, []byte{0x85, 0x00, 0x19}},
		{"quarter reverse", Reverse, 25, []byte{0x86, 0x00, 0x19}},
		{"odd magnitude", Forward, 1, []byte{0x85, 0x00, 0x01}},
		{"low bits", Reverse, 0.5, []byte{0x86, 0x10, 0x00}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := EncodeMove(tc.dir, tc.percent)
			require.NoError(t, err)
			require.Equal(t, tc.expect, b)
		})
	}
}

func TestEncodeMoveInvalidRange(t *testing.T) {
	for _, percent := range []float64{-0.1, -100, 100.01, 1000, math.NaN(), math.Inf(1)} {
		_, err := EncodeMove(Forward, percent)
		require.Equal(t, ErrInvalidRange, err, "percent %v", percent)
	}
}

func TestMoveMagnitudeRoundTrip(t *testing.T) {
	for _, dir := range []Direction{Forward, Reverse} {
		for percent := 0.0; percent <= 100; percent += 0.25 {
			b, err := EncodeMove(dir, percent)
			require.NoError(t, err)
			f, n, err := DecodeFrame(b)
			require.NoError(t, err)
			require.Equal(t, 3, n)
			require.True(t, f.IsMove())
			require.Equal(t, dir, f.Direction())
			require.InDelta(t, 3200*percent/100, float64(f.Magnitude), 1)
			require.True(t, f.Magnitude <= MaxMagnitude)
			require.True(t, b[1] < 0x20 && b[2] < 0x80, "data bytes must keep bit 7 clear")
		}
	}
}

func TestStopIsNotZeroMove(t *testing.T) {
	zero, err := EncodeMove(Forward, 0)
	require.NoError(t, err)
	require.Equal(t, []byte{0x92, 32}, EncodeStop())
	require.NotEqual(t, zero, EncodeStop())
	require.Equal(t, []byte{0x83}, EncodeEnable())
	require.Equal(t, []byte{0xa1, 21}, EncodeRead(RegSpeed))
}

func TestFrameBytesClampsMagnitude(t *testing.T) {
	b := Frame{Op: OpMoveReverse, Magnitude: 0xffff}.Bytes()
	f, _, err := DecodeFrame(b)
	require.NoError(t, err)
	require.Equal(t, MaxMagnitude, f.Magnitude)
}

func TestDecodeFrameStream(t *testing.T) {
	var stream bytes.Buffer
	stream.Write(EncodeEnable())
	move, _ := EncodeMove(Reverse, 50)
	stream.Write(move)
	stream.Write(EncodeStop())
	stream.Write(EncodeRead(RegTemperature))

	b := stream.Bytes()
	var frames []Frame
	for len(b) > 0 {
		f, n, err := DecodeFrame(b)
		require.NoError(t, err)
		frames = append(frames, f)
		b = b[n:]
	}
	require.Equal(t, []Frame{
		{Op: OpEnable},
		{Op: OpMoveReverse, Magnitude: 1600},
		{Op: OpStop, Arg: StopArg},
		{Op: OpReadVariable, Arg: byte(RegTemperature)},
	}, frames)
}

func TestDecodeFrameErrors(t *testing.T) {
	_, _, err := DecodeFrame(nil)
	require.Equal(t, ErrIncompleteFrame, err)
	_, _, err = DecodeFrame([]byte{OpMoveForward, 1})
	require.Equal(t, ErrIncompleteFrame, err)
	_, _, err = DecodeFrame([]byte{OpReadVariable})
	require.Equal(t, ErrIncompleteFrame, err)
	_, n, err := DecodeFrame([]byte{0x42, 1})
	require.Equal(t, &OpcodeError{Op: 0x42}, err)
	require.Equal(t, 1, n)
}

func TestFrameWriteTo(t *testing.T) {
	var buf bytes.Buffer
	n, err := Frame{Op: OpStop, Arg: StopArg}.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
	require.Equal(t, EncodeStop(), buf.Bytes())
}
