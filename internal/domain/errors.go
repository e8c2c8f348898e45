package domain

import "errors"

// Authentication errors
var (
	ErrWrongPassword = errors.New("wrong password")
	ErrHashFormat    = errors.New("cannot verify password")
	// ErrTokenDecode covers absent, malformed, tampered and expired tokens alike.
	ErrTokenDecode  = errors.New("cannot decrypt token")
	ErrUnauthorized = errors.New("no permission to change the underlying resource")
)

// Request errors
var (
	ErrMissingParameters = errors.New("missing parameters")
	ErrParse             = errors.New("cannot parse parameter")
	ErrQuestionNotFound  = errors.New("question not found")
)

// Store errors
var (
	ErrDatabaseQuery = errors.New("cannot update, invalid data")
)
