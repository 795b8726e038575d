// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"tasktrack/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// Email and username comparisons are case-insensitive throughout.
type UserRepository interface {
	// GetAll retrieves every user, without credentials.
	GetAll(ctx context.Context) ([]*entity.User, error)

	// GetByID retrieves a single user by their unique ID, without credential.
	// Returns ErrUserNotFound when no user has that id.
	GetByID(ctx context.Context, id string) (*entity.User, error)

	// GetByEmail retrieves the credential-bearing record for an email.
	// This is the only read that exposes the password hash; it exists for
	// the auth use case's credential checks. Returns ErrUserNotFound when
	// no user has that email.
	GetByEmail(ctx context.Context, email string) (*entity.UserWithPassword, error)

	// Create persists a new user with credential. Implementations assign a
	// fresh unique ID and CreatedAt when they are unset, and write them
	// back to the entity.
	Create(ctx context.Context, user *entity.UserWithPassword) error

	// Update replaces the stored record identified by user.ID.
	// Returns ErrUserNotFound when no user has that id.
	Update(ctx context.Context, user *entity.UserWithPassword) error

	// Delete removes the user with the given id.
	// Returns ErrUserNotFound when no user has that id.
	Delete(ctx context.Context, id string) error

	// EmailExists reports whether any user has the given email.
	EmailExists(ctx context.Context, email string) (bool, error)

	// UsernameExists reports whether any user has the given username.
	UsernameExists(ctx context.Context, username string) (bool, error)
}
