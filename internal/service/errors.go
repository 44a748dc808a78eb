package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers both an absent record and an operation attempted by
	// a non-owner, so existence is not leaked through the error.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks a rejected input; the operation aborts before any
	// store mutation.
	ErrValidation = errors.New("invalid input")

	// ErrInvalidCredentials is returned for both an unknown email and a
	// wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
