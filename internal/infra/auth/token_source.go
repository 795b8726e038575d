package auth

import (
	"crypto/rand"
	"encoding/base64"

	"tasktrack/internal/domain/service"

	"github.com/pkg/errors"
)

const tokenByteLength = 32

// randomTokenSource mints opaque session tokens from crypto/rand. Tokens
// carry no structure; the auth use case's session table is the sole
// authority on their validity.
type randomTokenSource struct{}

// NewRandomTokenSource is the constructor for randomTokenSource.
func NewRandomTokenSource() service.TokenSource {
	return &randomTokenSource{}
}

// NewToken returns a fresh unguessable token.
func (s *randomTokenSource) NewToken() (string, error) {
	buf := make([]byte, tokenByteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to read random bytes")
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
