// Package auth defines the external authentication collaborator interface
// and HTTP middleware for bearer-token validation.
package auth

import (
	"context"
	"errors"
	"sync"
)

// ErrInvalidToken indicates the bearer token could not be validated.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the validated caller identity. Session issuance lives outside
// this service; we only consume the result.
type Identity struct {
	UserID   string `json:"id" yaml:"user_id"`
	Name     string `json:"name,omitempty" yaml:"name"`
	UserType string `json:"userType" yaml:"user_type"`
	Subject  string `json:"subject,omitempty" yaml:"subject"`
	Class    string `json:"class,omitempty" yaml:"class"`
	Semester string `json:"semester,omitempty" yaml:"semester"`
}

// Validator validates a bearer token and returns the caller identity.
// Implemented externally in production; StaticValidator serves dev and tests.
type Validator interface {
	Validate(ctx context.Context, token string) (*Identity, error)
}

// StaticValidator validates tokens against a fixed in-memory table.
type StaticValidator struct {
	mu     sync.RWMutex
	tokens map[string]*Identity
}

// NewStaticValidator creates a validator over a token -> identity table.
func NewStaticValidator(tokens map[string]*Identity) *StaticValidator {
	if tokens == nil {
		tokens = make(map[string]*Identity)
	}
	return &StaticValidator{tokens: tokens}
}

// Register adds or replaces a token.
func (v *StaticValidator) Register(token string, id *Identity) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tokens[token] = id
}

// Validate returns the identity for token, or ErrInvalidToken.
func (v *StaticValidator) Validate(ctx context.Context, token string) (*Identity, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	id, ok := v.tokens[token]
	if !ok {
		return nil, ErrInvalidToken
	}
	return id, nil
}
