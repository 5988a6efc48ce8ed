package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRadians(t *testing.T) {
	line := EncodeRadians([]float64{0, 0.5, -0.3})
	assert.Equal(t, "T,0.000000,0.500000,-0.300000\n", line)
}

func TestEncodeDegrees(t *testing.T) {
	line := EncodeDegrees([]float64{90, -45.5, 0})
	assert.Equal(t, "D,90.00,-45.50,0.00\n", line)
}

func TestCommandRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		degrees bool
		values  []float64
	}{
		{"radians", "T,0.000000,0.500000,-0.300000\n", false, []float64{0, 0.5, -0.3}},
		{"degrees", "D,90.00,-45.50\n", true, []float64{90, -45.5}},
		{"no newline", "T,1.5", false, []float64{1.5}},
		{"spaces tolerated", "D, 10.0 , 20.0 ", true, []float64{10, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := ParseCommand(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.degrees, cmd.Degrees)
			assert.InDeltaSlice(t, tt.values, cmd.Values, 1e-9)
		})
	}
}

func TestParseCommandRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"unknown prefix", "X,1,2\n"},
		{"empty line", "\n"},
		{"prefix only", "T\n"},
		{"non-numeric value", "T,1.0,abc\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCommand(tt.line)
			assert.Error(t, err)
		})
	}
}

func TestSendRequiresConnection(t *testing.T) {
	l := NewLink(WithPort("/dev/null-port"))
	assert.False(t, l.Connected())
	assert.Error(t, l.SendRadians([]float64{0}))
	assert.Error(t, l.SendDegrees([]float64{0}))
	_, _, err := l.ReadFeedback()
	assert.Error(t, err)
	assert.NoError(t, l.Close())
}
