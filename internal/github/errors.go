package github

import (
	"fmt"
	"time"
)

// AuthError means the token is invalid, expired, or lacks the repo scope.
// It is fatal to a whole pipeline run.
type AuthError struct {
	Status int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("github: authentication rejected (status %d)", e.Status)
}

// RateLimitedError means the API quota is exhausted. Reset is when GitHub
// will start serving requests again. Like AuthError it is fatal to the run.
type RateLimitedError struct {
	Reset time.Time
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("github: rate limit exhausted until %s", e.Reset.Format(time.RFC3339))
}

// NotFoundError means the repository or resource does not exist or is not
// visible to the token. Scoped to the single call that raised it.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("github: %s not found or not accessible", e.Resource)
}

// UpstreamError wraps 5xx responses and transport failures (timeouts
// included). Callers may treat it as skippable for the affected repository.
type UpstreamError struct {
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("github: upstream failure: %v", e.Err)
	}
	return fmt.Sprintf("github: upstream returned status %d", e.Status)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
