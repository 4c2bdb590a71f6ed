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
	"github.com/labstack/echo/v4"

	"github.com/philband/mender-gui/internal/api/role"
	"github.com/philband/mender-gui/internal/rbac"
)

// GetRoleHandler returns the role and permission-set handlers for
// registration.
func (s *Server) GetRoleHandler(
	manager role.Manager,
) []func(e *echo.Echo) {
	roleHandler := role.New(s.logger, manager)

	canRead := requirePermission(rbac.AreaUsers, rbac.PermRead)
	canManage := requirePermission(rbac.AreaUsers, rbac.PermManage)

	return []func(e *echo.Echo){
		func(e *echo.Echo) {
			g := e.Group(APIPrefix, s.authMiddleware())
			g.GET("/roles", roleHandler.GetRoles, canRead)
			g.GET("/roles/:name", roleHandler.GetRole, canRead)
			g.POST("/roles", roleHandler.PostRole, canManage)
			g.PUT("/roles/:name", roleHandler.PutRole, canManage)
			g.DELETE("/roles/:name", roleHandler.DeleteRole, canManage)
			g.POST("/roles/refresh", roleHandler.PostRolesRefresh, canRead)
			g.GET("/permission-sets", roleHandler.GetPermissionSets, canRead)
		},
	}
}
