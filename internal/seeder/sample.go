package seeder

import (
	"fmt"
	"math"
)

// minAttempts keeps tiny targets from giving up after a handful of collisions.
const minAttempts = 1000

// unbounded marks a sample space too large to matter.
const unbounded = -1

// sampleUnique draws candidates until target distinct values are collected,
// discarding repeats. It fails fast when target exceeds space and gives up
// after maxAttempts draws. Values come back in first-draw order.
func sampleUnique[K comparable](target, space, maxAttempts int, draw func() K) ([]K, error) {
	if target <= 0 {
		return nil, nil
	}
	if space != unbounded && target > space {
		return nil, fmt.Errorf("%w: want %d, only %d exist", ErrSampleSpace, target, space)
	}

	seen := make(map[K]struct{}, target)
	values := make([]K, 0, target)
	for attempts := 0; len(values) < target; attempts++ {
		if attempts >= maxAttempts {
			return values, fmt.Errorf("%w: %d of %d after %d draws", ErrSampleExhausted, len(values), target, attempts)
		}
		v := draw()
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values, nil
}

// attemptBudget caps rejection sampling at factor draws per wanted value.
func attemptBudget(target, factor int) int {
	return max(spaceSize(target, factor), minAttempts)
}

// spaceSize multiplies the factors, saturating at math.MaxInt instead of
// wrapping.
func spaceSize(factors ...int) int {
	size := 1
	for _, f := range factors {
		if f <= 0 {
			return 0
		}
		if size > math.MaxInt/f {
			return math.MaxInt
		}
		size *= f
	}
	return size
}
