package service

import "errors"

var (
	// ErrPriceUnavailable is returned when no price observation exists for
	// the requested stock name.
	ErrPriceUnavailable = errors.New("price unavailable for stock")
	// ErrPositionNotFound is returned when a sell targets a stock the user
	// does not hold.
	ErrPositionNotFound = errors.New("position does not exist")
	// ErrInvalidCredentials is returned on unknown username or wrong
	// password; callers cannot tell which.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
