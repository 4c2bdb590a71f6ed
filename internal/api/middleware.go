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
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/philband/mender-gui/internal/api/common"
	"github.com/philband/mender-gui/internal/rbac"
)

// authMiddleware validates the session token and stores the caller's
// subject, roles and effective UI permissions on the context.
func (s *Server) authMiddleware() echo.MiddlewareFunc {
	signingKey := s.appConfig.API.Server.Security.SigningKey

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				return common.JSONError(c, http.StatusUnauthorized, "Bearer token required")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := s.tokenManager.Validate(tokenString, signingKey)
			if err != nil {
				return common.JSONError(c, http.StatusUnauthorized, "Invalid token: "+err.Error())
			}

			perms := rbac.UIPermissions{}
			if s.resolver != nil {
				perms = s.resolver.PermissionsForRoles(claims.Roles)
			}

			c.Set(common.ContextKeySubject, claims.Subject)
			c.Set(common.ContextKeyRoles, claims.Roles)
			c.Set(common.ContextKeyPermissions, perms)

			return next(c)
		}
	}
}

// requirePermission rejects callers whose UI permissions do not grant perm
// in area. It must run after authMiddleware.
func requirePermission(
	area rbac.Area,
	perm rbac.Permission,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller, ok := common.CallerFrom(c)
			if !ok {
				return common.JSONError(c, http.StatusUnauthorized, "authentication required")
			}

			if !caller.UIPermissions.Allows(area, perm) {
				return common.JSONError(c, http.StatusForbidden, fmt.Sprintf(
					"Insufficient permissions. Required: %s:%s",
					area,
					perm,
				))
			}

			return next(c)
		}
	}
}

// auditMiddleware logs every authenticated request that changes state.
func auditMiddleware(
	logger *slog.Logger,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			method := c.Request().Method
			if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
				return err
			}

			caller, ok := common.CallerFrom(c)
			if !ok || caller.Subject == "" {
				return err
			}

			logger.InfoContext(
				c.Request().Context(),
				"console audit",
				slog.String("entry_id", uuid.New().String()),
				slog.String("user", caller.Subject),
				slog.Any("roles", caller.Roles),
				slog.String("method", method),
				slog.String("path", c.Request().URL.Path),
				slog.String("source_ip", c.RealIP()),
				slog.Int("response_code", c.Response().Status),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			)

			return err
		}
	}
}
