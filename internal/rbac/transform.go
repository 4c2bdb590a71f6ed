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

import (
	"fmt"

	"github.com/iancoleman/orderedmap"
)

// GroupPermissions is the selection made for one device group while
// editing a role.
type GroupPermissions struct {
	Group         string       `json:"group"         validate:"required"`
	UIPermissions []Permission `json:"uiPermissions" validate:"dive,ui_permission"`
}

// RoleData is a role as edited in the console: checked UI permissions per
// area plus per-group selections.
type RoleData struct {
	Name          string                `json:"name"          validate:"required"`
	Description   string                `json:"description"`
	UIPermissions map[Area][]Permission `json:"uiPermissions" validate:"dive,keys,ui_area,endkeys,dive,ui_permission"`
	Groups        []GroupPermissions    `json:"groups"        validate:"dive"`
}

// RoleRequest is the result of transforming edited role data: the body to
// send to the server and the role as it will look once normalized.
type RoleRequest struct {
	PermissionSetsWithScope []ScopedPermissionSet
	Role                    Role
}

// ImpliedPermissions expands a selection within one area: every permission
// ranked below the highest selected level is added, and every explicitly
// selected value is kept. The result follows catalog order.
func (e *Engine) ImpliedPermissions(
	area Area,
	selected []Permission,
) ([]Permission, error) {
	highest := 1
	for _, value := range selected {
		d, ok := e.catalog.Definition(value)
		if !ok {
			return nil, fmt.Errorf("%w %q in area %s", ErrUnknownPermission, value, area)
		}
		if _, backed := d.PermissionSets[area]; !backed {
			return nil, fmt.Errorf("%w %q: not available in area %s", ErrUnknownPermission, value, area)
		}
		if d.PermissionLevel > highest {
			highest = d.PermissionLevel
		}
	}

	implied := []Permission{}
	for _, d := range e.catalog.AreaPermissions(area) {
		if d.PermissionLevel < highest || containsPermission(selected, d.Value) {
			implied = append(implied, d.Value)
		}
	}

	return implied, nil
}

// TransformRoleData derives the scoped permission-set references for an
// edited role. existing, when set, supplies the description if data has
// none. Implication is applied per area and per group.
func (e *Engine) TransformRoleData(
	data RoleData,
	existing *Role,
) (RoleRequest, error) {
	description := data.Description
	if description == "" && existing != nil {
		description = existing.Description
	}

	known := make(map[Area]struct{}, len(e.catalog.Areas))
	for _, area := range e.catalog.AreaNames() {
		known[area] = struct{}{}
	}
	for area := range data.UIPermissions {
		if _, ok := known[area]; !ok || area == AreaGroups {
			return RoleRequest{}, fmt.Errorf("%w: unsupported area %q", ErrUnknownPermission, area)
		}
	}

	refs := []ScopedPermissionSet{{Name: BasicPermissionSet}}
	unscoped := map[string]struct{}{BasicPermissionSet: {}}
	addUnscoped := func(name string) {
		if _, ok := unscoped[name]; ok {
			return
		}
		unscoped[name] = struct{}{}
		refs = append(refs, ScopedPermissionSet{Name: name})
	}

	uiPermissions := e.catalog.EmptyUIPermissions()
	for _, area := range e.catalog.AreaNames() {
		selected, ok := data.UIPermissions[area]
		if area == AreaGroups || !ok {
			continue
		}
		implied, err := e.ImpliedPermissions(area, selected)
		if err != nil {
			return RoleRequest{}, err
		}
		uiPermissions.Areas[area] = implied
		for _, value := range implied {
			d, _ := e.catalog.Definition(value)
			addUnscoped(d.PermissionSets[area])
		}
	}

	// permission set name -> device groups, in first-seen order
	groupSets := orderedmap.New()
	for _, selection := range data.Groups {
		if selection.Group == "" {
			continue
		}
		implied, err := e.ImpliedPermissions(AreaGroups, selection.UIPermissions)
		if err != nil {
			return RoleRequest{}, fmt.Errorf("group %s: %w", selection.Group, err)
		}
		uiPermissions.Groups[selection.Group] = appendUnique(uiPermissions.Groups[selection.Group], implied...)
		for _, value := range implied {
			d, _ := e.catalog.Definition(value)
			name := d.PermissionSets[AreaGroups]
			groups := []string{}
			if current, ok := groupSets.Get(name); ok {
				groups = current.([]string)
			}
			groupSets.Set(name, appendUniqueString(groups, selection.Group))
		}
	}

	groupScope := e.catalog.GroupScope()
	for _, name := range groupSets.Keys() {
		value, _ := groupSets.Get(name)
		groups := value.([]string)
		if containsGroup(groups, AllDevices) {
			addUnscoped(name)
			continue
		}
		refs = append(refs, ScopedPermissionSet{
			Name:  name,
			Scope: &Scope{Type: groupScope, Value: groups},
		})
	}

	return RoleRequest{
		PermissionSetsWithScope: refs,
		Role: Role{
			Name:                    data.Name,
			Description:             description,
			PermissionSetsWithScope: refs,
			UIPermissions:           uiPermissions,
			Editable:                true,
		},
	}, nil
}

func appendUniqueString(
	list []string,
	value string,
) []string {
	if containsGroup(list, value) {
		return list
	}

	return append(list, value)
}

func containsGroup(
	list []string,
	value string,
) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}

	return false
}
