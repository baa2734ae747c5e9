package domain

import "errors"

var (
	// ErrNotFound covers both rows that do not exist and rows owned by a
	// different user. The two cases must stay indistinguishable to callers.
	ErrNotFound = errors.New("not found")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidInput       = errors.New("invalid input")
)
