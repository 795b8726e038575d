package service

// TokenSource defines the interface for minting opaque session tokens.
// Tokens are caller-managed strings with no internal structure; validity
// is decided solely by the auth use case's active-session table, so no
// signing or parsing capability belongs here.
type TokenSource interface {
	// NewToken returns a fresh unguessable token.
	NewToken() (string, error)
}
