// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher abstracts password hashing so the domain never sees the
// underlying algorithm (bcrypt in the default implementation).
type PasswordHasher interface {
	// Hash derives a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check reports whether the plaintext password matches the stored hash.
	Check(password, hash string) bool
}
