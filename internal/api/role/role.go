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

// Package role provides the role and permission-set API handlers.
package role

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/philband/mender-gui/internal/api/common"
	"github.com/philband/mender-gui/internal/rbac"
	"github.com/philband/mender-gui/internal/validation"
)

// New factory to create a new instance.
func New(
	logger *slog.Logger,
	manager Manager,
) *Role {
	return &Role{
		manager: manager,
		logger:  logger,
	}
}

// GetRoles returns every cached role.
func (r *Role) GetRoles(
	c echo.Context,
) error {
	return c.JSON(http.StatusOK, RolesResponse{Roles: r.manager.Store().RoleList()})
}

// GetRole returns one cached role.
func (r *Role) GetRole(
	c echo.Context,
) error {
	name := c.Param("name")

	role, ok := r.manager.Store().Role(name)
	if !ok {
		return common.JSONError(c, http.StatusNotFound, "role "+name+" not found")
	}

	return c.JSON(http.StatusOK, role)
}

// PostRole creates a role from console role data.
func (r *Role) PostRole(
	c echo.Context,
) error {
	data, err := r.bindRoleData(c)
	if err != nil {
		return common.JSONError(c, http.StatusBadRequest, err.Error())
	}

	role, err := r.manager.CreateRole(c.Request().Context(), data)
	if err != nil {
		return common.BackendError(c, err)
	}

	return c.JSON(http.StatusCreated, role)
}

// PutRole replaces the permissions of the role named in the path.
func (r *Role) PutRole(
	c echo.Context,
) error {
	data, err := r.bindRoleData(c)
	if err != nil {
		return common.JSONError(c, http.StatusBadRequest, err.Error())
	}

	role, err := r.manager.EditRole(c.Request().Context(), data)
	if err != nil {
		return common.BackendError(c, err)
	}

	return c.JSON(http.StatusOK, role)
}

// DeleteRole removes the role named in the path.
func (r *Role) DeleteRole(
	c echo.Context,
) error {
	if err := r.manager.RemoveRole(c.Request().Context(), c.Param("name")); err != nil {
		return common.BackendError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// PostRolesRefresh reloads roles and permission sets from the management
// server and returns the result.
func (r *Role) PostRolesRefresh(
	c echo.Context,
) error {
	if err := r.manager.GetRoles(c.Request().Context()); err != nil {
		return common.BackendError(c, err)
	}

	return r.GetRoles(c)
}

// GetPermissionSets returns every cached permission set.
func (r *Role) GetPermissionSets(
	c echo.Context,
) error {
	return c.JSON(http.StatusOK, PermissionSetsResponse{
		PermissionSets: r.manager.Store().PermissionSets(),
	})
}

// bindRoleData decodes and validates the body. A name in the path wins over
// the body's.
func (r *Role) bindRoleData(
	c echo.Context,
) (rbac.RoleData, error) {
	var data rbac.RoleData
	if err := c.Bind(&data); err != nil {
		return rbac.RoleData{}, fmt.Errorf("invalid request body: %w", err)
	}
	if name := c.Param("name"); name != "" {
		data.Name = name
	}

	if errMsg, ok := validation.Struct(data); !ok {
		r.logger.Debug("rejected role data", slog.String("error", errMsg))
		return rbac.RoleData{}, fmt.Errorf("invalid request body: %s", errMsg)
	}

	return data, nil
}
