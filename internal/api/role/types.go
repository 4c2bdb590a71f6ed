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

package role

import (
	"context"
	"log/slog"

	"github.com/philband/mender-gui/internal/rbac"
	"github.com/philband/mender-gui/internal/store"
)

// Manager is the role orchestration the handlers drive.
type Manager interface {
	GetRoles(ctx context.Context) error
	CreateRole(ctx context.Context, data rbac.RoleData) (rbac.Role, error)
	EditRole(ctx context.Context, data rbac.RoleData) (rbac.Role, error)
	RemoveRole(ctx context.Context, name string) error
	Store() *store.Store
}

// Role implements the role and permission-set endpoints.
type Role struct {
	manager Manager
	logger  *slog.Logger
}

// RolesResponse lists roles sorted by name.
type RolesResponse struct {
	Roles []rbac.Role `json:"roles"`
}

// PermissionSetsResponse lists the normalized permission sets by name.
type PermissionSetsResponse struct {
	PermissionSets map[string]rbac.PermissionSet `json:"permissionSets"`
}
