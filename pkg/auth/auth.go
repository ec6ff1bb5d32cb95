// Package auth verifies bearer tokens issued by the identity provider.
//
// The server only needs "token in, principal out": [Verifier] is that
// capability, and [JWTVerifier] implements it for HS256-signed JWTs.
package auth

import (
	"context"
	"slices"

	errs "github.com/mikecinchan/tcg-deck-editor/pkg/errors"
)

// RoleAdmin grants access to administrative endpoints.
const RoleAdmin = "admin"

var (
	// ErrInvalidToken is returned for missing, malformed, expired or
	// wrongly signed tokens.
	ErrInvalidToken = errs.New(errs.ErrCodeUnauthorized, "invalid or expired token")

	// ErrForbidden is returned when a valid principal lacks a required role.
	ErrForbidden = errs.New(errs.ErrCodeForbidden, "insufficient permissions")
)

// Principal is the authenticated caller.
type Principal struct {
	Subject string   `json:"sub"`
	Name    string   `json:"name,omitempty"`
	Roles   []string `json:"roles,omitempty"`
}

// HasRole reports whether p holds role.
func (p *Principal) HasRole(role string) bool {
	return p != nil && slices.Contains(p.Roles, role)
}

// Verifier turns a bearer token into a principal.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Principal, error)
}

type principalKey struct{}

// WithPrincipal returns a context carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal stored by [WithPrincipal], or nil.
func FromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey{}).(*Principal)
	return p
}
