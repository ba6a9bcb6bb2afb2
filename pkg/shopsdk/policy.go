package shopsdk

import "time"

// Policy is the revalidation and retry behavior of a SessionStore. The
// defaults match how the shop frontend treats session state: fresh for five
// minutes, background refresh every fifteen, at most two retries, and auth
// failures never retried.
type Policy struct {
	// StaleAfter is how long a fetched user counts as fresh. A stale entry
	// is still served, but the next revalidation trigger refetches it.
	StaleAfter time.Duration

	// RefetchInterval is the background refresh period while Run is active.
	RefetchInterval time.Duration

	// MaxRetries bounds retries of a failed session fetch. Auth failures are
	// never retried regardless of this value.
	MaxRetries int

	// RetryBackoff is the base delay before the first retry; it doubles per
	// attempt, capped at 30 seconds.
	RetryBackoff time.Duration
}

// DefaultPolicy returns the standard session policy.
func DefaultPolicy() Policy {
	return Policy{
		StaleAfter:      5 * time.Minute,
		RefetchInterval: 15 * time.Minute,
		MaxRetries:      2,
		RetryBackoff:    time.Second,
	}
}

// ShouldRetry reports whether a failed fetch should be attempted again.
// attempts is the number of retries already made.
func (p Policy) ShouldRetry(err error, attempts int) bool {
	if err == nil {
		return false
	}
	if IsAuthError(err) {
		return false
	}
	return attempts < p.MaxRetries
}

// Stale reports whether an entry fetched at fetchedAt needs revalidation.
// The zero time is always stale.
func (p Policy) Stale(fetchedAt, now time.Time) bool {
	if fetchedAt.IsZero() {
		return true
	}
	return now.Sub(fetchedAt) > p.StaleAfter
}

// Backoff returns the delay before the given retry attempt (0-based).
func (p Policy) Backoff(attempt int) time.Duration {
	if p.RetryBackoff <= 0 {
		return 0
	}
	d := p.RetryBackoff << attempt
	if max := 30 * time.Second; d > max || d < p.RetryBackoff {
		return max
	}
	return d
}
