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

package usermgmt

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/philband/mender-gui/internal/rbac"
	"github.com/philband/mender-gui/internal/useradm"
)

// GetUserList replaces the cached users with the server's list.
func (m *Manager) GetUserList(
	ctx context.Context,
) ([]useradm.User, error) {
	ctx, span := m.tracer.Start(ctx, "usermgmt.GetUserList")
	defer span.End()

	users, err := m.api.GetUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("users couldn't be loaded: %w", err)
	}

	m.state.SetUsers(users)
	span.SetAttributes(attribute.Int("users.count", len(users)))

	return users, nil
}

// GetUser fetches one user and caches it.
func (m *Manager) GetUser(
	ctx context.Context,
	id string,
) (useradm.User, error) {
	ctx, span := m.tracer.Start(ctx, "usermgmt.GetUser")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", id))

	user, err := m.api.GetUser(ctx, id)
	if err != nil {
		return useradm.User{}, fmt.Errorf("user %s couldn't be loaded: %w", id, err)
	}

	m.state.PutUser(*user)

	return user.Clone(), nil
}

// CreateUser creates a user and reloads the user list.
func (m *Manager) CreateUser(
	ctx context.Context,
	user useradm.UserCreate,
) error {
	ctx, span := m.tracer.Start(ctx, "usermgmt.CreateUser")
	defer span.End()

	if err := m.api.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("there was an error creating the user: %w", err)
	}

	m.logger.Info("user created", slog.String("email", user.Email))

	_, err := m.GetUserList(ctx)

	return err
}

// EditUser updates a user and applies the change to the cached entry.
func (m *Manager) EditUser(
	ctx context.Context,
	id string,
	update useradm.UserUpdate,
) error {
	ctx, span := m.tracer.Start(ctx, "usermgmt.EditUser")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", id))

	if err := m.api.UpdateUser(ctx, id, update); err != nil {
		return fmt.Errorf("there was an error editing the user: %w", err)
	}

	user, ok := m.state.User(id)
	if !ok {
		user = useradm.User{ID: id}
	}
	if update.Email != "" {
		user.Email = update.Email
	}
	if update.Roles != nil {
		user.Roles = append([]string(nil), update.Roles...)
	}
	m.state.PutUser(user)

	m.logger.Info("user updated", slog.String("user_id", id))

	return nil
}

// RemoveUser deletes a user and reloads the user list.
func (m *Manager) RemoveUser(
	ctx context.Context,
	id string,
) error {
	ctx, span := m.tracer.Start(ctx, "usermgmt.RemoveUser")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", id))

	if err := m.api.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("there was an error removing the user: %w", err)
	}

	m.state.DeleteUser(id)
	m.logger.Info("user removed", slog.String("user_id", id))

	_, err := m.GetUserList(ctx)

	return err
}

// PermissionsForRoles merges the UI permissions of the cached roles named in
// roleIDs.
func (m *Manager) PermissionsForRoles(
	roleIDs []string,
) rbac.UIPermissions {
	return m.engine.MapUserRolesToUIPermissions(roleIDs, m.state.Roles())
}

// UserPermissions resolves a user's effective UI permissions, fetching the
// user when it is not cached.
func (m *Manager) UserPermissions(
	ctx context.Context,
	userID string,
) (rbac.UIPermissions, error) {
	user, ok := m.state.User(userID)
	if !ok {
		var err error
		user, err = m.GetUser(ctx, userID)
		if err != nil {
			return rbac.UIPermissions{}, err
		}
	}

	return m.PermissionsForRoles(user.Roles), nil
}

// Capabilities derives the UI capability flags for roleIDs.
func (m *Manager) Capabilities(
	roleIDs []string,
) rbac.Capabilities {
	return rbac.DeriveCapabilities(m.PermissionsForRoles(roleIDs))
}
