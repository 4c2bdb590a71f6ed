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

// Package rbac normalizes server-side roles and permission sets into the
// UI permission records that gate console capabilities, and transforms
// edited roles back into scoped permission-set references for the server.
package rbac

import (
	"errors"
	"regexp"
)

// Area is a functional area of the console a UI permission applies to.
type Area string

// Known areas.
const (
	AreaAuditlog    Area = "auditlog"
	AreaDeployments Area = "deployments"
	AreaDevices     Area = "devices"
	AreaGroups      Area = "groups"
	AreaReleases    Area = "releases"
	AreaUsers       Area = "users"
)

// Permission is a UI permission value, e.g. "read" or "manage".
type Permission string

// Known UI permission values.
const (
	PermRead      Permission = "read"
	PermUpload    Permission = "upload"
	PermDeploy    Permission = "deploy"
	PermConnect   Permission = "connect"
	PermConfigure Permission = "configure"
	PermManage    Permission = "manage"
)

// Verb is an HTTP verb or one of the special object types used by custom
// permissions.
type Verb string

// Verbs and object types understood by the custom permission handler.
const (
	VerbAny         Verb = "any"
	VerbGet         Verb = "GET"
	VerbPost        Verb = "POST"
	VerbPut         Verb = "PUT"
	VerbPatch       Verb = "PATCH"
	VerbDelete      Verb = "DELETE"
	VerbDeviceGroup Verb = "DEVICE_GROUP"
)

// ScopeType narrows a permission-set grant.
type ScopeType string

// ScopeDeviceGroups scopes a permission set to a list of device group names.
const ScopeDeviceGroups ScopeType = "DeviceGroups"

// AllDevices is the reserved group name for grants covering every device.
const AllDevices = "All devices"

// BasicPermissionSet is included in every role sent to the server.
const BasicPermissionSet = "Basic"

// ErrUnknownPermission is returned when a role edit references a UI
// permission the catalog cannot map to a permission set.
var ErrUnknownPermission = errors.New("unknown ui permission")

// Definition describes one checkable UI capability and the server
// permission set backing it per area.
type Definition struct {
	Value           Permission      `yaml:"value"`
	Title           string          `yaml:"title"`
	Verbs           []Verb          `yaml:"verbs"`
	PermissionLevel int             `yaml:"permission_level"`
	PermissionSets  map[Area]string `yaml:"permission_sets"`
}

// Endpoint is a management API path pattern belonging to an area. When
// UIPermissions is empty the area's general permissions apply.
type Endpoint struct {
	Path          *regexp.Regexp
	Verbs         []Verb
	UIPermissions []Permission
}

// AreaDefinition groups the endpoints of one area.
type AreaDefinition struct {
	Area      Area
	Scope     ScopeType
	Endpoints []Endpoint
}

// Scope restricts a permission set reference.
type Scope struct {
	Type  ScopeType `json:"type"`
	Value []string  `json:"value"`
}

// ScopedPermissionSet is the wire format for "this role includes permission
// set X, optionally scoped".
type ScopedPermissionSet struct {
	Name  string `json:"name"`
	Scope *Scope `json:"scope,omitempty"`
}

// PermissionObject is the target of a custom permission.
type PermissionObject struct {
	Type  Verb   `json:"type"`
	Value string `json:"value"`
}

// CustomPermission is a permission not expressible as a named permission set.
type CustomPermission struct {
	Action string           `json:"action"`
	Object PermissionObject `json:"object"`
}

// PermissionSet is a server-defined permission set, enriched with its
// normalized UI permissions.
type PermissionSet struct {
	Name                string             `json:"name"`
	Description         string             `json:"description,omitempty"`
	SupportedScopeTypes []ScopeType        `json:"supported_scope_types,omitempty"`
	Permissions         []CustomPermission `json:"permissions,omitempty"`

	// Result is nil for sets that are defined purely by custom permissions.
	Result   *UIPermissions `json:"result,omitempty"`
	IsCustom bool           `json:"isCustom"`
}

// Role is a named bundle of scoped permission-set references plus optional
// custom permissions.
type Role struct {
	Name                    string                `json:"name"`
	Description             string                `json:"description"`
	PermissionSetsWithScope []ScopedPermissionSet `json:"permission_sets_with_scope,omitempty"`
	Permissions             []CustomPermission    `json:"permissions,omitempty"`
	UIPermissions           UIPermissions         `json:"uiPermissions"`
	IsCustom                bool                  `json:"isCustom"`
	Editable                bool                  `json:"editable"`
}

// Clone returns a deep copy of the role.
func (r Role) Clone() Role {
	out := r
	out.UIPermissions = r.UIPermissions.Clone()
	if r.PermissionSetsWithScope != nil {
		out.PermissionSetsWithScope = make([]ScopedPermissionSet, len(r.PermissionSetsWithScope))
		for i, ref := range r.PermissionSetsWithScope {
			out.PermissionSetsWithScope[i] = ref
			if ref.Scope != nil {
				scope := *ref.Scope
				scope.Value = append([]string(nil), ref.Scope.Value...)
				out.PermissionSetsWithScope[i].Scope = &scope
			}
		}
	}
	if r.Permissions != nil {
		out.Permissions = append([]CustomPermission(nil), r.Permissions...)
	}

	return out
}

// Clone returns a deep copy of the permission set.
func (p PermissionSet) Clone() PermissionSet {
	out := p
	if p.SupportedScopeTypes != nil {
		out.SupportedScopeTypes = append([]ScopeType(nil), p.SupportedScopeTypes...)
	}
	if p.Permissions != nil {
		out.Permissions = append([]CustomPermission(nil), p.Permissions...)
	}
	if p.Result != nil {
		result := p.Result.Clone()
		out.Result = &result
	}

	return out
}

func (p PermissionSet) supportsScope(
	scope ScopeType,
) bool {
	for _, s := range p.SupportedScopeTypes {
		if s == scope {
			return true
		}
	}

	return false
}
