package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthenticated       = errors.New("unauthenticated")
	ErrUpstreamAuth          = errors.New("identity provider authorization failed")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
