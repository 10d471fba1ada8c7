package auth

import (
	"errors"
	"sync"
	"time"

	"playmatch/lobby/pkg/jwt"
)

var (
	ErrMissingToken = errors.New("missing token")
	ErrTokenExpired = errors.New("token expired")
)

// Credentials holds the access token supplied by the authentication
// collaborator. It is shared by the realtime channel and the REST client.
type Credentials struct {
	mu    sync.RWMutex
	token string
}

// NewCredentials returns a store holding token, which may be empty.
func NewCredentials(token string) *Credentials {
	return &Credentials{token: token}
}

// Token returns the current token.
func (c *Credentials) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Set replaces the token after checking it decodes.
func (c *Credentials) Set(token string) error {
	if token == "" {
		return ErrMissingToken
	}
	if _, err := jwt.Inspect(token); err != nil {
		return err
	}
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	return nil
}

// Check reports whether the current token is worth presenting to the server at now.
func (c *Credentials) Check(now time.Time) error {
	token := c.Token()
	if token == "" {
		return ErrMissingToken
	}
	claims, err := jwt.Inspect(token)
	if err != nil {
		return err
	}
	if claims.Expired(now) {
		return ErrTokenExpired
	}
	return nil
}

// LoginTrigger starts the external login flow.
type LoginTrigger interface {
	TriggerLogin()
}

// LoginFunc adapts a function to LoginTrigger.
type LoginFunc func()

func (f LoginFunc) TriggerLogin() { f() }
