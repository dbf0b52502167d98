package plan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredTMCount(t *testing.T) {
	testCases := []struct {
		name                           string
		pumping, onward, ret, buffer   time.Duration
		unloading                      time.Duration
		want                           int
	}{
		{
			// 60 m³ at 30 m³/h, capacity 8: cycle 30+14+25+5 = 74, ceil(74/14) = 6.
			name:    "reference delivery needs six vehicles",
			pumping: 2 * time.Hour, onward: 30 * time.Minute, ret: 25 * time.Minute,
			buffer: 5 * time.Minute, unloading: 14 * time.Minute,
			want: 6,
		},
		{
			name:    "exact division",
			pumping: 3 * time.Hour, onward: 20 * time.Minute, ret: 15 * time.Minute,
			buffer: 5 * time.Minute, unloading: 10 * time.Minute,
			want: 5,
		},
		{
			name:    "single trip suffices when pumping shorter than one unloading",
			pumping: 10 * time.Minute, onward: 90 * time.Minute, ret: 90 * time.Minute,
			buffer: 30 * time.Minute, unloading: 14 * time.Minute,
			want: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := RequiredTMCount(tc.pumping, tc.onward, tc.ret, tc.buffer, tc.unloading)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// Longer cycles never reduce the fleet; longer unloading never grows it.
func TestRequiredTMCount_Monotonicity(t *testing.T) {
	pumping := 4 * time.Hour
	prev := 0
	for onward := 10 * time.Minute; onward <= 120*time.Minute; onward += 5 * time.Minute {
		n, err := RequiredTMCount(pumping, onward, 25*time.Minute, 5*time.Minute, 14*time.Minute)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, prev)
		prev = n
	}

	prev = 1 << 30
	for unloading := 6 * time.Minute; unloading <= 30*time.Minute; unloading += 2 * time.Minute {
		n, err := RequiredTMCount(pumping, 30*time.Minute, 25*time.Minute, 5*time.Minute, unloading)
		require.NoError(t, err)
		assert.LessOrEqual(t, n, prev)
		prev = n
	}
}

func TestRequiredTMCount_Errors(t *testing.T) {
	_, err := RequiredTMCount(2*time.Hour, 30*time.Minute, 25*time.Minute, 5*time.Minute, 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = RequiredTMCount(0, 30*time.Minute, 25*time.Minute, 5*time.Minute, 14*time.Minute)
	assert.ErrorIs(t, err, ErrInvalidInputParameters)
}
