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

package user

import (
	"context"
	"log/slog"

	"github.com/philband/mender-gui/internal/rbac"
	"github.com/philband/mender-gui/internal/useradm"
)

// Manager is the user orchestration the handlers drive.
type Manager interface {
	GetUserList(ctx context.Context) ([]useradm.User, error)
	UserPermissions(ctx context.Context, userID string) (rbac.UIPermissions, error)
}

// User implements the user and effective-permission endpoints.
type User struct {
	manager Manager
	logger  *slog.Logger
}

// PermissionsResponse is a user's effective UI permissions and the
// capability flags derived from them.
type PermissionsResponse struct {
	Subject       string             `json:"subject,omitempty"`
	UserID        string             `json:"userId,omitempty"`
	Roles         []string           `json:"roles,omitempty"`
	UIPermissions rbac.UIPermissions `json:"uiPermissions"`
	Capabilities  rbac.Capabilities  `json:"capabilities"`
}

// UsersResponse lists the management server's users.
type UsersResponse struct {
	Users []useradm.User `json:"users"`
}
