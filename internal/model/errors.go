package model

import "errors"

// Errors returned to callers. The messages are user visible.
var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("Invalid email or password.")
	ErrUserDisabled       = errors.New("User is disabled.")
	ErrEmailAlreadyExists = errors.New("A user with that email address already exists.")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrUnauthorized       = errors.New("Admin commands require secret authentication.")
	ErrInvalidArgument    = errors.New("invalid argument")
)
