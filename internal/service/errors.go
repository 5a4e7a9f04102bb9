package service

import "errors"

// Error taxonomy for caller-visible outcomes. Each sentinel maps to exactly
// one HTTP status in the transport layer; wrap with fmt.Errorf("%w") to add
// detail without losing the classification.
var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrRateLimited         = errors.New("rate limit exceeded")
	ErrUpstreamFetchFailed = errors.New("record store unavailable")
	ErrModelCallFailed     = errors.New("model call failed")
	ErrNotFound            = errors.New("not found")
)
