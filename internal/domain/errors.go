// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidSnapshot is returned when a cognitive snapshot is malformed
	// or missing. Evaluations must not proceed with a default or guessed
	// snapshot when this error is returned.
	ErrInvalidSnapshot = errors.New("invalid cognitive snapshot")

	// ErrInvalidCategory is returned when an XP category is not one of the
	// known categories.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidSessionMode is returned when a recovery session mode is not valid.
	ErrInvalidSessionMode = errors.New("invalid recovery session mode")

	// ErrInvalidSessionStatus is returned when a recovery session status is not valid.
	ErrInvalidSessionStatus = errors.New("invalid recovery session status")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")
)
