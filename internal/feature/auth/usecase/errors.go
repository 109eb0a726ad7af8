// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrMissingSignupFields is returned when username, email or password is empty.
	ErrMissingSignupFields = errors.New("username, email and password are required")

	// ErrMissingCredentials is returned when login is attempted without email or password.
	ErrMissingCredentials = errors.New("email and password are required")

	// ErrInvalidPlan is returned when signup names a tier other than a paid one.
	ErrInvalidPlan = errors.New("invalid subscription plan")

	// ErrPasswordTooLong is returned when the password exceeds what bcrypt can hash (72 bytes).
	ErrPasswordTooLong = errors.New("password too long")

	// ErrUserAlreadyExists is returned when the username or the email is already taken.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrUserNotFound is returned when a user cannot be found by email.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned for an unknown email and for a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
