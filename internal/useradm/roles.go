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

package useradm

import (
	"context"
	"strconv"

	"github.com/philband/mender-gui/internal/rbac"
)

// GetRoles lists every role known to the server.
func (c *Client) GetRoles(
	ctx context.Context,
) ([]rbac.Role, error) {
	const action = "listing roles"

	resp, err := c.request(ctx).
		SetQueryParam("per_page", strconv.Itoa(c.perPage)).
		Get(rolesPath)
	if err := c.check(action, resp, err); err != nil {
		return nil, err
	}

	var roles []rbac.Role
	if err := decode(action, resp, &roles); err != nil {
		return nil, err
	}

	return roles, nil
}

// CreateRole creates a role.
func (c *Client) CreateRole(
	ctx context.Context,
	role RoleBody,
) error {
	resp, err := c.request(ctx).
		SetBody(role).
		Post(rolesPath)

	return c.check("creating role", resp, err)
}

// UpdateRole replaces the description and permission sets of a role.
func (c *Client) UpdateRole(
	ctx context.Context,
	role RoleBody,
) error {
	resp, err := c.request(ctx).
		SetPathParam("name", role.Name).
		SetBody(role).
		Put(rolesPath + "/{name}")

	return c.check("updating role", resp, err)
}

// DeleteRole removes a role.
func (c *Client) DeleteRole(
	ctx context.Context,
	name string,
) error {
	resp, err := c.request(ctx).
		SetPathParam("name", name).
		Delete(rolesPath + "/{name}")

	return c.check("deleting role", resp, err)
}

// GetPermissionSets lists the permission sets the server defines.
func (c *Client) GetPermissionSets(
	ctx context.Context,
) ([]rbac.PermissionSet, error) {
	const action = "listing permission sets"

	resp, err := c.request(ctx).
		SetQueryParam("per_page", strconv.Itoa(c.perPage)).
		Get(permissionSetsPath)
	if err := c.check(action, resp, err); err != nil {
		return nil, err
	}

	var sets []rbac.PermissionSet
	if err := decode(action, resp, &sets); err != nil {
		return nil, err
	}

	return sets, nil
}
