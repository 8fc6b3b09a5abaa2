package services

import "errors"

// Failure taxonomy shared by the authenticator and the lifecycle manager.
// Controllers translate these with errors.Is; anything else is an internal
// failure and surfaces as a 500.
var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrExpired           = errors.New("expired")
)
