package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims the identity provider issues.
type Claims struct {
	Name  string   `json:"name,omitempty"`
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier verifies HS256 tokens signed with a shared secret.
type JWTVerifier struct {
	secret []byte
	issuer string
	leeway time.Duration
	now    func() time.Time
}

// NewJWTVerifier creates a verifier. When issuer is non-empty, tokens must
// carry it in their "iss" claim.
func NewJWTVerifier(secret []byte, issuer string) *JWTVerifier {
	return &JWTVerifier{secret: secret, issuer: issuer, leeway: 30 * time.Second, now: time.Now}
}

// Verify checks signature, expiry, issuer and subject. Every failure is
// reported as [ErrInvalidToken] wrapping the parser's reason.
func (v *JWTVerifier) Verify(_ context.Context, token string) (*Principal, error) {
	if token == "" || len(v.secret) == 0 {
		return nil, ErrInvalidToken
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
		jwt.WithTimeFunc(v.now),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	var claims Claims
	tok, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, invalid(err)
	}
	if !tok.Valid || claims.Subject == "" {
		return nil, invalid(errors.New("token has no subject"))
	}
	return &Principal{Subject: claims.Subject, Name: claims.Name, Roles: claims.Roles}, nil
}

// Issue signs a token for p that expires after ttl. It is used for local
// development and tests; production tokens come from the identity provider.
func (v *JWTVerifier) Issue(p Principal, ttl time.Duration) (string, error) {
	now := v.now()
	claims := Claims{
		Name:  p.Name,
		Roles: p.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    v.issuer,
			Subject:   p.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

func invalid(cause error) error {
	return fmt.Errorf("%w: %v", ErrInvalidToken, cause)
}

var _ Verifier = (*JWTVerifier)(nil)
