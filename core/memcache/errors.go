package memcache

import "errors"

var (
	// Lookup errors
	ErrNoValue     = errors.New("no value")
	ErrExpired     = errors.New("value expired")
	ErrInvalidCast = errors.New("invalid cast")

	// Transport errors
	ErrClosed = errors.New("engine stopped")
)
