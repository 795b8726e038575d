// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"
)

// Todo is a single task item. Every todo belongs to exactly one user once
// it has been created; the owner is fixed for the lifetime of the todo.
type Todo struct {
	ID        string     // Opaque unique identifier, generated by the repository on create.
	Title     string     // Task description. Never empty after creation or update.
	Completed bool       // Whether the task has been finished.
	UserID    string     // ID of the owning user, used for authorization checks.
	CreatedAt time.Time  // Timestamp of when this todo was created.
	UpdatedAt *time.Time // Timestamp of the last modification, nil until the first update.
}

// Clone returns an independent copy of the todo. Repositories hand out
// clones so their backing collections never escape by reference.
func (t *Todo) Clone() *Todo {
	if t == nil {
		return nil
	}

	clone := *t
	if t.UpdatedAt != nil {
		updatedAt := *t.UpdatedAt
		clone.UpdatedAt = &updatedAt
	}

	return &clone
}
