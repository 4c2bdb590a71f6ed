// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

// Package authtoken issues and validates console session tokens. A token
// names the management user it was issued for and the role names whose UI
// permissions the session carries.
package authtoken

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Issuer is set on every token generated by the console.
const Issuer = "mender-console"

// DefaultTTL is the lifetime of a generated token.
const DefaultTTL = 24 * time.Hour

// CustomClaims are the JWT claims of a console session.
type CustomClaims struct {
	// Roles are management role names, e.g. RBAC_ROLE_OBSERVER.
	Roles []string `json:"roles" validate:"required,min=1,dive,required"`
	jwt.RegisteredClaims
}

// Token generates and validates console session tokens.
type Token struct {
	logger *slog.Logger
	ttl    time.Duration
	now    func() time.Time
}

// New creates a Token using DefaultTTL.
func New(
	logger *slog.Logger,
) *Token {
	return &Token{
		logger: logger,
		ttl:    DefaultTTL,
		now:    time.Now,
	}
}

// WithTTL returns a copy of t issuing tokens valid for ttl.
func (t *Token) WithTTL(
	ttl time.Duration,
) *Token {
	out := *t
	out.ttl = ttl

	return &out
}

// Generate signs a token for subject carrying roles.
func (t *Token) Generate(
	signingKey string,
	roles []string,
	subject string,
) (string, error) {
	if signingKey == "" {
		return "", fmt.Errorf("signing key cannot be empty")
	}

	now := t.now()
	claims := CustomClaims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(signingKey))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	t.logger.Debug(
		"generated token",
		slog.String("subject", subject),
		slog.Int("roles", len(roles)),
		slog.Duration("ttl", t.ttl),
	)

	return signed, nil
}
