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
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"github.com/philband/mender-gui/internal/rbac"
	"github.com/philband/mender-gui/internal/useradm"
)

const (
	refreshOK          = "ok"
	refreshUnsupported = "unsupported"
)

// GetPermissionSets fetches the permission sets, normalizes them and folds
// them into the cached sets. A backend without RBAC support leaves the cache
// untouched.
func (m *Manager) GetPermissionSets(
	ctx context.Context,
) error {
	ctx, span := m.tracer.Start(ctx, "usermgmt.GetPermissionSets")
	defer span.End()

	sets, err := m.api.GetPermissionSets(ctx)
	if err != nil {
		m.logger.Warn(
			"permission set retrieval failed, likely a non-RBAC backend",
			slog.String("error", err.Error()),
		)
		span.SetStatus(codes.Error, err.Error())
		return nil
	}

	normalized := m.engine.NormalizePermissionSets(sets, m.state.PermissionSets())
	m.state.SetPermissionSets(normalized)
	span.SetAttributes(attribute.Int("permission_sets.count", len(normalized)))

	return nil
}

// GetRoles fetches roles and permission sets concurrently, normalizes the
// sets first and then the roles against them, and folds both into the cache.
// Any fetch failure is logged and swallowed so consoles talking to a backend
// without RBAC keep their built-in roles.
func (m *Manager) GetRoles(
	ctx context.Context,
) error {
	ctx, span := m.tracer.Start(ctx, "usermgmt.GetRoles")
	defer span.End()

	var (
		roles []rbac.Role
		sets  []rbac.PermissionSet
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roles, err = m.api.GetRoles(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		sets, err = m.api.GetPermissionSets(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		m.logger.Warn(
			"role retrieval failed, likely a non-RBAC backend",
			slog.String("error", err.Error()),
		)
		span.SetStatus(codes.Error, err.Error())
		m.recordRefresh(ctx, refreshUnsupported)
		return nil
	}

	permissionSets := m.engine.NormalizePermissionSets(sets, m.state.PermissionSets())
	m.state.SetPermissionSets(permissionSets)

	previous := m.state.Roles()
	normalized := m.engine.NormalizeRoles(roles, previous, permissionSets)
	m.state.SetRoles(normalized)

	span.SetAttributes(
		attribute.Int("roles.count", len(normalized)),
		attribute.Int("permission_sets.count", len(permissionSets)),
	)
	m.recordRefresh(ctx, refreshOK)

	m.logger.Debug(
		"roles refreshed",
		slog.Int("roles", len(normalized)),
		slog.Int("permission_sets", len(permissionSets)),
		slog.Int("changed", changedRoles(previous, normalized)),
	)

	return nil
}

// changedRoles counts roles that are new or whose UI permissions differ from
// the previous snapshot.
func changedRoles(
	previous map[string]rbac.Role,
	current map[string]rbac.Role,
) int {
	changed := 0
	for name, role := range current {
		old, ok := previous[name]
		if !ok || !old.UIPermissions.Equal(role.UIPermissions) {
			changed++
		}
	}

	return changed
}

// CreateRole derives the permission-set references for data, creates the
// role on the server and refreshes the roles.
func (m *Manager) CreateRole(
	ctx context.Context,
	data rbac.RoleData,
) (rbac.Role, error) {
	ctx, span := m.tracer.Start(ctx, "usermgmt.CreateRole")
	defer span.End()
	span.SetAttributes(attribute.String("role.name", data.Name))

	req, err := m.engine.TransformRoleData(data, nil)
	if err != nil {
		return rbac.Role{}, err
	}

	if err := m.api.CreateRole(ctx, roleBody(req)); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return rbac.Role{}, fmt.Errorf("there was an error creating the role: %w", err)
	}

	m.state.PutRole(req.Role)
	m.logger.Info("role created", slog.String("role", data.Name))

	return m.refreshed(ctx, req.Role)
}

// EditRole updates an existing role. The cached role supplies the
// description when data has none.
func (m *Manager) EditRole(
	ctx context.Context,
	data rbac.RoleData,
) (rbac.Role, error) {
	ctx, span := m.tracer.Start(ctx, "usermgmt.EditRole")
	defer span.End()
	span.SetAttributes(attribute.String("role.name", data.Name))

	var existing *rbac.Role
	if cached, ok := m.state.Role(data.Name); ok {
		if !cached.Editable {
			return rbac.Role{}, fmt.Errorf("%w: %s", ErrRoleNotEditable, data.Name)
		}
		existing = &cached
	}

	req, err := m.engine.TransformRoleData(data, existing)
	if err != nil {
		return rbac.Role{}, err
	}

	if err := m.api.UpdateRole(ctx, roleBody(req)); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return rbac.Role{}, fmt.Errorf("there was an error editing the role: %w", err)
	}

	m.state.PutRole(req.Role)
	m.logger.Info("role updated", slog.String("role", data.Name))

	return m.refreshed(ctx, req.Role)
}

// RemoveRole deletes a role on the server, drops it from the cache and
// refreshes the roles.
func (m *Manager) RemoveRole(
	ctx context.Context,
	name string,
) error {
	ctx, span := m.tracer.Start(ctx, "usermgmt.RemoveRole")
	defer span.End()
	span.SetAttributes(attribute.String("role.name", name))

	if cached, ok := m.state.Role(name); ok && !cached.Editable {
		return fmt.Errorf("%w: %s", ErrRoleNotEditable, name)
	}

	if err := m.api.DeleteRole(ctx, name); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("there was an error removing the role: %w", err)
	}

	m.state.DeleteRole(name)
	m.logger.Info("role removed", slog.String("role", name))

	return m.GetRoles(ctx)
}

// refreshed reloads the roles and returns the stored version of role, or
// role itself when the refresh did not produce it.
func (m *Manager) refreshed(
	ctx context.Context,
	role rbac.Role,
) (rbac.Role, error) {
	if err := m.GetRoles(ctx); err != nil {
		return rbac.Role{}, err
	}

	if stored, ok := m.state.Role(role.Name); ok {
		return stored, nil
	}

	return role, nil
}

func (m *Manager) recordRefresh(
	ctx context.Context,
	result string,
) {
	m.refresh.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

func roleBody(
	req rbac.RoleRequest,
) useradm.RoleBody {
	return useradm.RoleBody{
		Name:                    req.Role.Name,
		Description:             req.Role.Description,
		PermissionSetsWithScope: req.PermissionSetsWithScope,
	}
}
