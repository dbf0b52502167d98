package plan

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapacityTable_UnloadingTime(t *testing.T) {
	testCases := []struct {
		name     string
		capacity float64
		want     time.Duration
	}{
		{"exact key", 8, 14 * time.Minute},
		{"rounds to nearest key", 7.9, 14 * time.Minute},
		{"rounds down from just above", 8.2, 14 * time.Minute},
		{"midpoint resolves to lower key", 8.5, 14 * time.Minute},
		{"below range clamps to lowest", 4.5, 10 * time.Minute},
		{"above range clamps to highest", 12, 18 * time.Minute},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DefaultCapacityTable.UnloadingTime(tc.capacity)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// The chosen key's distance to the input must not exceed the distance to
// any other key.
func TestCapacityTable_NearestKeyProperty(t *testing.T) {
	for capacity := 0.5; capacity <= 15; capacity += 0.25 {
		got, err := DefaultCapacityTable.UnloadingTime(capacity)
		require.NoError(t, err)

		var chosen CapacityEntry
		for _, e := range DefaultCapacityTable {
			if e.Unloading == got {
				chosen = e
			}
		}
		chosenDist := math.Abs(capacity - float64(chosen.Capacity))
		for _, e := range DefaultCapacityTable {
			assert.LessOrEqual(t, chosenDist, math.Abs(capacity-float64(e.Capacity)),
				"capacity %v: key %d is closer than chosen key %d", capacity, e.Capacity, chosen.Capacity)
		}
	}
}

func TestCapacityTable_Errors(t *testing.T) {
	_, err := CapacityTable{}.UnloadingTime(8)
	assert.ErrorIs(t, err, ErrOutOfRangeCapacity)

	_, err = DefaultCapacityTable.UnloadingTime(0)
	assert.ErrorIs(t, err, ErrInvalidInputParameters)

	_, err = DefaultCapacityTable.UnloadingTime(-3)
	assert.ErrorIs(t, err, ErrInvalidInputParameters)
}
