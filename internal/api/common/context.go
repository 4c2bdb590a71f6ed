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

package common

import (
	"github.com/labstack/echo/v4"

	"github.com/philband/mender-gui/internal/rbac"
)

// Context keys the auth middleware sets for handlers.
const (
	ContextKeySubject     = "auth.subject"
	ContextKeyRoles       = "auth.roles"
	ContextKeyPermissions = "auth.permissions"
)

// Caller is the authenticated identity behind a request.
type Caller struct {
	Subject       string
	Roles         []string
	UIPermissions rbac.UIPermissions
}

// CallerFrom reads the identity the auth middleware stored on c. ok is
// false for unauthenticated routes.
func CallerFrom(
	c echo.Context,
) (Caller, bool) {
	subject, ok := c.Get(ContextKeySubject).(string)
	if !ok {
		return Caller{}, false
	}
	roles, _ := c.Get(ContextKeyRoles).([]string)
	perms, _ := c.Get(ContextKeyPermissions).(rbac.UIPermissions)

	return Caller{
		Subject:       subject,
		Roles:         roles,
		UIPermissions: perms,
	}, true
}
