// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"
)

// AuthSession is a time-boxed proof of authentication keyed by an opaque
// token. A session is valid while the token is tracked by the auth use
// case and ExpiresAt lies in the future; expiry is detected lazily on
// validation, there is no background sweep.
type AuthSession struct {
	User      User      // Credential-free snapshot of the authenticated user.
	Token     string    // Opaque, unguessable session token managed by the caller.
	ExpiresAt time.Time // Absolute expiry time, fixed at issuance or refresh.
}

// Valid reports whether the session has not yet expired at the given instant.
func (s *AuthSession) Valid(now time.Time) bool {
	return s != nil && now.Before(s.ExpiresAt)
}

// Clone returns an independent copy of the session.
func (s *AuthSession) Clone() *AuthSession {
	if s == nil {
		return nil
	}

	clone := *s

	return &clone
}
