package navigation

import "errors"

var (
	// ErrAlreadyStarted is returned by Start when the worker is running
	ErrAlreadyStarted = errors.New("navigation: coworker already started")
	// ErrStopped is returned by Start and Init once Stop has been called
	ErrStopped = errors.New("navigation: coworker stopped")
)
