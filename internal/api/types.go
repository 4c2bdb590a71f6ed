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

package api

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/philband/mender-gui/internal/authtoken"
	"github.com/philband/mender-gui/internal/config"
	"github.com/philband/mender-gui/internal/rbac"
)

// Server implementation of the console API.
type Server struct {
	Echo         *echo.Echo
	logger       *slog.Logger
	appConfig    config.Config
	tokenManager TokenValidator
	resolver     PermissionResolver
}

// Option configures optional Server behavior.
type Option func(*Server)

// TokenValidator parses and validates console session tokens.
type TokenValidator interface {
	Validate(
		tokenString string,
		signingKey string,
	) (*authtoken.CustomClaims, error)
}

// PermissionResolver turns the role names carried by a session token into
// effective UI permissions.
type PermissionResolver interface {
	PermissionsForRoles(roleIDs []string) rbac.UIPermissions
}

// WithTokenValidator replaces the session token validator.
func WithTokenValidator(
	v TokenValidator,
) Option {
	return func(s *Server) {
		s.tokenManager = v
	}
}

// WithPermissionResolver sets how token roles become UI permissions.
// Without one, every authenticated caller is denied gated routes.
func WithPermissionResolver(
	r PermissionResolver,
) Option {
	return func(s *Server) {
		s.resolver = r
	}
}
