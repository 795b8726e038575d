// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"
)

// User is the public identity of an account. It carries no credential;
// anything returned to a caller is safe to expose as-is.
type User struct {
	ID        string    // Opaque unique identifier for the account.
	Email     string    // Unique login email, compared case-insensitively.
	Username  string    // Unique display name, compared case-insensitively.
	CreatedAt time.Time // Timestamp of when this account was created.
}

// Clone returns an independent copy of the user.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}

	clone := *u

	return &clone
}

// UserWithPassword is the credential-bearing variant of User held by the
// user repository. It never crosses the use-case boundary outward: the
// auth use case strips it down to the embedded User before returning.
type UserWithPassword struct {
	User
	PasswordHash string // Hashed credential, produced by the injected PasswordHasher.
}

// Clone returns an independent copy of the credential-bearing record.
func (u *UserWithPassword) Clone() *UserWithPassword {
	if u == nil {
		return nil
	}

	clone := *u

	return &clone
}
