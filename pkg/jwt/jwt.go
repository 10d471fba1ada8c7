package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformed is returned when a token cannot be decoded at all.
var ErrMalformed = errors.New("malformed token")

// Claims holds what the lobby needs to know about the player's access token.
type Claims struct {
	Subject   string
	ExpiresAt time.Time // zero when the token carries no expiry
}

// Expired reports whether the token is past its expiry at now.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// Inspect decodes the claims of a token issued by the coordination server.
// The signature is not verified: the lobby does not own the signing key and
// only uses the claims to avoid dialing with a token that is already dead.
func Inspect(tokenString string) (Claims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var out Claims
	switch sub := claims["sub"].(type) {
	case string:
		out.Subject = sub
	case float64:
		out.Subject = strconv.FormatFloat(sub, 'f', -1, 64)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}

// GenerateToken creates a signed token for subject. The lobby never mints
// tokens for the coordination server; this is used by dev mode and tests.
func GenerateToken(subject string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secret)
}
