package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("conflict")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrRefreshInProgress     = errors.New("refresh already in progress")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
