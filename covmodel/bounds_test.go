package covmodel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gserrors "github.com/joshua-benabou/gstools-go/pkg/errors"
)

func TestNewBounds_DefaultsToClosed(t *testing.T) {
	b := NewBounds(0, 2)
	assert.Equal(t, BoundClosedClosed, b.Type)
	assert.Equal(t, "[0, 2]", b.String())
}

func TestBounds_String(t *testing.T) {
	tests := []struct {
		b    Bounds
		want string
	}{
		{Bounds{Min: 0, Max: 2, Type: BoundOpenOpen}, "(0, 2)"},
		{Bounds{Min: 0, Max: 2, Type: BoundOpenClosed}, "(0, 2]"},
		{Bounds{Min: 0, Max: 2, Type: BoundClosedOpen}, "[0, 2)"},
		{Bounds{Min: 0.5, Max: math.Inf(1), Type: BoundClosedClosed}, "[0.5, +Inf]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.b.String())
	}
}

func TestBounds_Validate(t *testing.T) {
	tests := []struct {
		name string
		b    Bounds
		ok   bool
	}{
		{"valid open", Bounds{Min: 0, Max: 1, Type: BoundOpenOpen}, true},
		{"valid infinite", Bounds{Min: 0, Max: math.Inf(1), Type: BoundClosedOpen}, true},
		{"inverted", Bounds{Min: 2, Max: 1, Type: BoundClosedClosed}, false},
		{"degenerate open", Bounds{Min: 1, Max: 1, Type: BoundOpenOpen}, false},
		{"degenerate closed", Bounds{Min: 1, Max: 1, Type: BoundClosedClosed}, true},
		{"unknown type", Bounds{Min: 0, Max: 1, Type: "xx"}, false},
		{"nan endpoint", Bounds{Min: math.NaN(), Max: 1, Type: BoundClosedClosed}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.b.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var be *gserrors.BoundsError
			assert.True(t, gserrors.As(err, &be))
		})
	}
}

func TestBounds_Classify(t *testing.T) {
	tests := []struct {
		name string
		b    Bounds
		v    float64
		want Check
	}{
		{"inside open", Bounds{0, 2, BoundOpenOpen}, 1, CheckOK},
		{"min on open", Bounds{0, 2, BoundOpenOpen}, 0, CheckBelowMinStrict},
		{"min on closed", Bounds{0, 2, BoundClosedClosed}, 0, CheckOK},
		{"below closed min", Bounds{0, 2, BoundClosedClosed}, -0.5, CheckBelowMin},
		{"max on open", Bounds{0, 2, BoundClosedOpen}, 2, CheckAboveMaxStrict},
		{"max on closed", Bounds{0, 2, BoundOpenClosed}, 2, CheckOK},
		{"above closed max", Bounds{0, 2, BoundOpenClosed}, 2.5, CheckAboveMax},
		{"infinite upper", Bounds{0, math.Inf(1), BoundOpenOpen}, 1e300, CheckOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.b.Classify(tt.v))
			assert.Equal(t, tt.want == CheckOK, tt.b.Contains(tt.v))
		})
	}
}

func TestBounds_DefaultValue(t *testing.T) {
	assert.InDelta(t, 1.5, Bounds{1, 2, BoundClosedClosed}.DefaultValue(), 1e-14)
	assert.InDelta(t, 1, Bounds{0, math.Inf(1), BoundOpenOpen}.DefaultValue(), 1e-14)
	assert.InDelta(t, 1, Bounds{math.Inf(-1), 2, BoundOpenClosed}.DefaultValue(), 1e-14)
	assert.InDelta(t, 0, Bounds{math.Inf(-1), math.Inf(1), BoundOpenOpen}.DefaultValue(), 1e-14)
}

func TestBounds_CheckMessages(t *testing.T) {
	b := Bounds{Min: 0, Max: 2, Type: BoundOpenClosed}

	err := b.check("alpha", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'alpha'")
	assert.Contains(t, err.Error(), "needs to be > 0")

	err = b.check("alpha", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs to be <= 2")

	assert.NoError(t, b.check("alpha", 1))

	closed := Bounds{Min: 0.2, Max: 30, Type: BoundClosedClosed}
	err = closed.check("nu", 0.1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs to be >= 0.2")

	open := Bounds{Min: 0, Max: 1, Type: BoundClosedOpen}
	err = open.check("hurst", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs to be < 1")
}
