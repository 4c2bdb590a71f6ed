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

package rbac

// Normalized is the outcome of normalizing one role.
type Normalized struct {
	IsCustom      bool
	UIPermissions UIPermissions
}

// NormalizeRole derives the UI permissions of a server role from the
// normalized permission sets. Built-in roles are never derived: their fixed
// catalog permissions are returned instead.
func (e *Engine) NormalizeRole(
	role Role,
	permissionSets map[string]PermissionSet,
) Normalized {
	if builtin, ok := e.catalog.BuiltinRole(role.Name); ok {
		return Normalized{UIPermissions: builtin.UIPermissions}
	}

	acc := normalization{uiPermissions: e.catalog.EmptyUIPermissions()}
	groupScope := e.catalog.GroupScope()

	for _, ref := range role.PermissionSetsWithScope {
		set, ok := permissionSets[ref.Name]
		switch {
		case !ok:
			// unknown sets are ignored so newer servers keep working
		case ref.Scope != nil && ref.Scope.Type == groupScope:
			acc = e.applyGroupScope(acc, ref)
		case set.Result == nil:
			for _, permission := range set.Permissions {
				acc = e.applyCustomPermission(acc, permission)
			}
		default:
			acc = normalization{
				isCustom:      acc.isCustom || set.IsCustom,
				uiPermissions: Merge(acc.uiPermissions, *set.Result),
			}
		}
	}

	for _, permission := range role.Permissions {
		acc = e.applyCustomPermission(acc, permission)
	}

	return Normalized{
		IsCustom:      acc.isCustom,
		UIPermissions: acc.uiPermissions,
	}
}

// applyGroupScope grants the group permission a set maps to on every group
// named in the reference's scope.
func (e *Engine) applyGroupScope(
	acc normalization,
	ref ScopedPermissionSet,
) normalization {
	perm, ok := e.catalog.groupPermissionFor(ref.Name)
	if !ok {
		return acc
	}

	scoped := UIPermissions{Groups: make(map[string][]Permission, len(ref.Scope.Value))}
	for _, group := range ref.Scope.Value {
		scoped.Groups[group] = []Permission{perm}
	}

	return normalization{
		isCustom:      acc.isCustom,
		uiPermissions: Merge(acc.uiPermissions, scoped),
	}
}

// NormalizeRoles folds server roles into a copy of the cached roles keyed by
// name. Cached descriptions win over empty server ones. Built-in and custom
// roles are not editable, and a cached role keeps its editable flag.
func (e *Engine) NormalizeRoles(
	roles []Role,
	existing map[string]Role,
	permissionSets map[string]PermissionSet,
) map[string]Role {
	out := make(map[string]Role, len(existing)+len(roles))
	for name, role := range existing {
		out[name] = role.Clone()
	}

	for _, role := range roles {
		normalized := e.NormalizeRole(role, permissionSets)
		_, builtin := e.catalog.BuiltinRoles[role.Name]

		next := role.Clone()
		editable := true
		if cached, ok := out[role.Name]; ok {
			if cached.Description != "" {
				next.Description = cached.Description
			}
			editable = cached.Editable
		}
		next.IsCustom = normalized.IsCustom
		next.Editable = !builtin && !normalized.IsCustom && editable
		next.UIPermissions = normalized.UIPermissions

		out[role.Name] = next
	}

	return out
}

// MapUserRolesToUIPermissions merges the UI permissions of every known role
// in roleIDs. Empty and unknown identifiers are skipped.
func (e *Engine) MapUserRolesToUIPermissions(
	roleIDs []string,
	roles map[string]Role,
) UIPermissions {
	acc := e.catalog.EmptyUIPermissions()
	for _, id := range roleIDs {
		role, ok := roles[id]
		if id == "" || !ok {
			continue
		}
		acc = Merge(acc, role.UIPermissions)
	}

	return acc
}
