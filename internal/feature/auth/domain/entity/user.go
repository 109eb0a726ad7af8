// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account.
type User struct {
	// ID is the store-assigned identifier (ObjectID hex or UUID).
	ID string

	// Username is unique across all accounts.
	Username string

	// Email is stored trimmed and lower-cased, and is unique across all accounts.
	Email string

	// PasswordHash is the bcrypt hash of the password.
	// It never leaves the process.
	PasswordHash string `json:"-"`

	// SubscriptionPlan is the tier the account signed up with.
	SubscriptionPlan Plan

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time
}
