package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrInsufficientTokens    = errors.New("no advice tokens left")
	ErrToggleInFlight        = errors.New("another roster change is in progress for this league")
	ErrRosterUpdateFailed    = errors.New("roster update failed")
	// ErrRosterInconsistent means the first of two dependent updates was
	// applied and the second was not. Callers must reload the roster.
	ErrRosterInconsistent = errors.New("roster left in an intermediate state")
)
