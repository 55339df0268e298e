// ABOUTME: Exponential backoff for transient speech-to-text API failures
// ABOUTME: Doubles a base delay per attempt with jitter, capped at 30s
package util

import (
	"math/rand/v2"
	"time"
)

const (
	// maxBackoff keeps a struggling transcription job from sleeping for
	// minutes between attempts.
	maxBackoff = 30 * time.Second
	// maxExponent guards the shift below against overflow.
	maxExponent = 30
)

// Backoff returns how long to wait before retry number attempt: the
// base delay doubled per attempt with up to ±25% jitter, capped at 30
// seconds. Attempt zero waits nothing.
func Backoff(base time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	if attempt > maxExponent {
		attempt = maxExponent
	}
	delay := base * time.Duration(1<<uint(attempt))
	if delay > maxBackoff || delay <= 0 {
		delay = maxBackoff
	}
	jitter := time.Duration(rand.Int64N(int64(delay)/2)) - delay/4
	return delay + jitter
}
