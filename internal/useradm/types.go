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

// Package useradm is the client for the user administration and audit log
// endpoints of the management API.
package useradm

import (
	"context"
	"time"

	"github.com/philband/mender-gui/internal/rbac"
)

//go:generate go tool github.com/golang/mock/mockgen -source=types.go -destination=mocks/types.gen.go -package=mocks

// API is the subset of the management API the console consumes.
type API interface {
	GetRoles(
		ctx context.Context,
	) ([]rbac.Role, error)
	CreateRole(
		ctx context.Context,
		role RoleBody,
	) error
	UpdateRole(
		ctx context.Context,
		role RoleBody,
	) error
	DeleteRole(
		ctx context.Context,
		name string,
	) error
	GetPermissionSets(
		ctx context.Context,
	) ([]rbac.PermissionSet, error)

	GetUsers(
		ctx context.Context,
	) ([]User, error)
	GetUser(
		ctx context.Context,
		id string,
	) (*User, error)
	CreateUser(
		ctx context.Context,
		user UserCreate,
	) error
	UpdateUser(
		ctx context.Context,
		id string,
		user UserUpdate,
	) error
	DeleteUser(
		ctx context.Context,
		id string,
	) error

	GetAuditLogs(
		ctx context.Context,
		query AuditLogQuery,
	) (*AuditLogPage, error)
}

// RoleBody is the payload of a role create or update request.
type RoleBody struct {
	Name                    string                     `json:"name"`
	Description             string                     `json:"description"`
	PermissionSetsWithScope []rbac.ScopedPermissionSet `json:"permission_sets_with_scope"`
}

// User is a console user account.
type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Roles     []string   `json:"roles,omitempty"`
	Verified  bool       `json:"verified"`
	TFAStatus string     `json:"tfa_status,omitempty"`
	Created   *time.Time `json:"created_ts,omitempty"`
	Updated   *time.Time `json:"updated_ts,omitempty"`
}

// Clone returns a deep copy of the user.
func (u User) Clone() User {
	out := u
	if u.Roles != nil {
		out.Roles = append([]string(nil), u.Roles...)
	}

	return out
}

// UserCreate is the payload for creating a user.
type UserCreate struct {
	Email             string   `json:"email"                         validate:"required,email"`
	Password          string   `json:"password,omitempty"            validate:"omitempty,min=8"`
	Roles             []string `json:"roles,omitempty"`
	SendResetPassword bool     `json:"send_reset_password,omitempty"`
}

// UserUpdate is the payload for updating a user. Empty fields are left
// unchanged by the server.
type UserUpdate struct {
	Email    string   `json:"email,omitempty"    validate:"omitempty,email"`
	Password string   `json:"password,omitempty" validate:"omitempty,min=8"`
	Roles    []string `json:"roles,omitempty"`
}

// AuditLogActor is who performed an audited action.
type AuditLogActor struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Email string `json:"email,omitempty"`
}

// AuditLogObject is what an audited action was performed on.
type AuditLogObject struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// AuditLog is a single audit log entry.
type AuditLog struct {
	Action string         `json:"action"`
	Actor  AuditLogActor  `json:"actor"`
	Object AuditLogObject `json:"object"`
	Change string         `json:"change,omitempty"`
	Time   time.Time      `json:"time"`
}

// AuditLogQuery filters and pages audit log requests. Zero values are
// omitted from the request.
type AuditLogQuery struct {
	Page       int
	PerPage    int
	ObjectType string
	ObjectID   string
	UserID     string
	StartDate  *time.Time
	EndDate    *time.Time
	// Sort is "asc" or "desc" (default).
	Sort       string
}

// AuditLogPage is one page of audit logs plus the server-reported total.
type AuditLogPage struct {
	Entries []AuditLog
	Total   int
}
