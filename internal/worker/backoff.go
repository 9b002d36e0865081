package worker

import (
	"math"
	"math/rand"
	"time"
)

const (
	backoffBase = 250 * time.Millisecond
	backoffCap  = 30 * time.Second
)

// ExponentialBackoff: attempt=0 => 250ms, 1 => 500ms, 2 => 1s ... capped at 30s.
func ExponentialBackoff(attempt int) time.Duration {
	multiple := math.Pow(2, float64(attempt))
	delay := time.Duration(float64(backoffBase) * multiple)

	if delay > backoffCap || delay <= 0 {
		delay = backoffCap
	}

	// small jitter (0–100ms)
	delay += time.Duration(rand.Intn(100)) * time.Millisecond
	return delay
}
