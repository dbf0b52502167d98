package plan

import (
	"fmt"
	"time"
)

// RequiredTMCount computes the minimum number of transit mixers that keeps
// the pump continuously fed. Each TM is bound by its full cycle
// (onward + unloading + return + buffer) while the pump consumes one load
// every unloading interval, so ceil(cycle/unloading) vehicles must be in
// flight. A delivery shorter than one unloading interval needs a single TM.
func RequiredTMCount(pumping, onward, ret, buffer, unloading time.Duration) (int, error) {
	if unloading <= 0 {
		return 0, fmt.Errorf("%w: unloading time must be positive, got %s", ErrInvalidDuration, unloading)
	}
	if pumping <= 0 || onward <= 0 || ret <= 0 || buffer < 0 {
		return 0, fmt.Errorf("%w: pumping/onward/return must be positive, buffer non-negative", ErrInvalidInputParameters)
	}

	if pumping < unloading {
		return 1, nil
	}

	cycle := onward + unloading + ret + buffer
	count := int((cycle + unloading - 1) / unloading)
	if count < 1 {
		count = 1
	}
	return count, nil
}
