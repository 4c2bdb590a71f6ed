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
	"regexp"
)

// DefaultAPIRoot prefixes every management API path.
const DefaultAPIRoot = "/api/management"

// Built-in role identifiers. Their UI permissions are fixed locally and never
// derived from server data.
const (
	RolePermitAll          = "RBAC_ROLE_PERMIT_ALL"
	RoleObserver           = "RBAC_ROLE_OBSERVER"
	RoleUserManager        = "RBAC_ROLE_USER_MANAGER"
	RoleCI                 = "RBAC_ROLE_CI"
	RoleDeploymentsManager = "RBAC_ROLE_DEPLOYMENTS_MANAGER"
	RoleReleasesManager    = "RBAC_ROLE_RELEASES_MANAGER"
)

// Catalog is the static description of every UI permission, the areas they
// apply to and the built-in roles. A catalog is built once at startup and
// passed to the Engine; it must not be modified afterwards.
type Catalog struct {
	// APIRoot is the path prefix an HTTP custom permission must target.
	APIRoot string
	// Definitions in display order. Area permission lists follow this order.
	Definitions []Definition
	// Areas in display order, including the groups area.
	Areas []AreaDefinition
	// BuiltinRoles keyed by role identifier.
	BuiltinRoles map[string]Role
}

// Definition returns the definition of a UI permission value.
func (c *Catalog) Definition(
	value Permission,
) (Definition, bool) {
	for _, d := range c.Definitions {
		if d.Value == value {
			return d, true
		}
	}

	return Definition{}, false
}

// AreaPermissions returns the definitions backed by a permission set in the
// given area, in catalog order.
func (c *Catalog) AreaPermissions(
	area Area,
) []Definition {
	var out []Definition
	for _, d := range c.Definitions {
		if _, ok := d.PermissionSets[area]; ok {
			out = append(out, d)
		}
	}

	return out
}

// AreaNames returns every area in catalog order.
func (c *Catalog) AreaNames() []Area {
	out := make([]Area, 0, len(c.Areas))
	for _, a := range c.Areas {
		out = append(out, a.Area)
	}

	return out
}

// GroupScope returns the scope type used by the groups area.
func (c *Catalog) GroupScope() ScopeType {
	for _, a := range c.Areas {
		if a.Area == AreaGroups && a.Scope != "" {
			return a.Scope
		}
	}

	return ScopeDeviceGroups
}

// EmptyUIPermissions returns a record with an empty list for each area.
func (c *Catalog) EmptyUIPermissions() UIPermissions {
	return NewUIPermissions(c.AreaNames()...)
}

// BuiltinRole returns a copy of a built-in role.
func (c *Catalog) BuiltinRole(
	name string,
) (Role, bool) {
	role, ok := c.BuiltinRoles[name]
	if !ok {
		return Role{}, false
	}

	return role.Clone(), true
}

// groupPermissionFor resolves the UI permission a permission set grants
// under the groups area.
func (c *Catalog) groupPermissionFor(
	permissionSet string,
) (Permission, bool) {
	for _, d := range c.Definitions {
		if d.PermissionSets[AreaGroups] == permissionSet {
			return d.Value, true
		}
	}

	return "", false
}

// DefaultCatalog returns the catalog matching the management API's
// predefined permission sets.
func DefaultCatalog() *Catalog {
	c := &Catalog{
		APIRoot: DefaultAPIRoot,
		Definitions: []Definition{
			{
				Value:           PermRead,
				Title:           "Read",
				Verbs:           []Verb{VerbGet},
				PermissionLevel: 1,
				PermissionSets: map[Area]string{
					AreaAuditlog:    "ReadAuditLogs",
					AreaDeployments: "ReadDeployments",
					AreaDevices:     "ReadDevices",
					AreaGroups:      "ReadDevices",
					AreaReleases:    "ReadReleases",
					AreaUsers:       "ReadUsers",
				},
			},
			{
				Value:           PermUpload,
				Title:           "Upload",
				Verbs:           []Verb{VerbPost, VerbPut},
				PermissionLevel: 2,
				PermissionSets: map[Area]string{
					AreaReleases: "UploadArtifacts",
				},
			},
			{
				Value:           PermDeploy,
				Title:           "Deploy",
				Verbs:           []Verb{VerbPost},
				PermissionLevel: 2,
				PermissionSets: map[Area]string{
					AreaDeployments: "DeployToDevices",
					AreaGroups:      "DeployToDevices",
				},
			},
			{
				Value:           PermConnect,
				Title:           "Connect",
				Verbs:           []Verb{VerbGet, VerbPut, VerbPost},
				PermissionLevel: 2,
				PermissionSets: map[Area]string{
					AreaGroups: "ConnectToDevices",
				},
			},
			{
				Value:           PermConfigure,
				Title:           "Configure",
				Verbs:           []Verb{VerbPost, VerbPut, VerbPatch},
				PermissionLevel: 2,
				PermissionSets: map[Area]string{
					AreaGroups: "ConfigureDevices",
				},
			},
			{
				Value:           PermManage,
				Title:           "Manage",
				Verbs:           []Verb{VerbPut, VerbPost, VerbDelete},
				PermissionLevel: 3,
				PermissionSets: map[Area]string{
					AreaDevices:  "ManageDevices",
					AreaGroups:   "ManageDevices",
					AreaReleases: "ManageReleases",
					AreaUsers:    "ManageUsers",
				},
			},
		},
		Areas: []AreaDefinition{
			{
				Area: AreaAuditlog,
				Endpoints: []Endpoint{
					{
						Path:  regexp.MustCompile(`^/api/management/v1/auditlogs/logs`),
						Verbs: []Verb{VerbGet},
					},
				},
			},
			{
				Area: AreaDeployments,
				Endpoints: []Endpoint{
					{
						Path:  regexp.MustCompile(`^/api/management/v(1|2)/deployments/deployments`),
						Verbs: []Verb{VerbGet, VerbPost, VerbPut, VerbDelete},
					},
				},
			},
			{
				Area: AreaDevices,
				Endpoints: []Endpoint{
					{
						Path: regexp.MustCompile(`^/api/management/v(1|2)/(devauth|inventory)/devices`),
						Verbs: []Verb{
							VerbGet,
							VerbPost,
							VerbPut,
							VerbPatch,
							VerbDelete,
						},
					},
				},
			},
			{
				Area:  AreaGroups,
				Scope: ScopeDeviceGroups,
				Endpoints: []Endpoint{
					{
						Path:  regexp.MustCompile(`^/api/management/v(1|2)/inventory/groups`),
						Verbs: []Verb{VerbGet, VerbPost, VerbPut, VerbDelete},
					},
					{
						Path:          regexp.MustCompile(`^/api/management/v1/deviceconnect/`),
						Verbs:         []Verb{VerbGet, VerbPost},
						UIPermissions: []Permission{PermConnect},
					},
					{
						Path:          regexp.MustCompile(`^/api/management/v1/deviceconfig/`),
						Verbs:         []Verb{VerbGet, VerbPut, VerbPost},
						UIPermissions: []Permission{PermConfigure},
					},
				},
			},
			{
				Area: AreaReleases,
				Endpoints: []Endpoint{
					{
						Path:          regexp.MustCompile(`^/api/management/v1/deployments/artifacts/(generate|directupload)`),
						Verbs:         []Verb{VerbPost},
						UIPermissions: []Permission{PermUpload},
					},
					{
						Path:  regexp.MustCompile(`^/api/management/v(1|2)/deployments/(artifacts|deployments/releases)`),
						Verbs: []Verb{VerbGet, VerbPost, VerbPut, VerbDelete},
					},
				},
			},
			{
				Area: AreaUsers,
				Endpoints: []Endpoint{
					{
						Path:  regexp.MustCompile(`^/api/management/v(1|2)/useradm/(users|roles|permission_sets)`),
						Verbs: []Verb{VerbGet, VerbPost, VerbPut, VerbDelete},
					},
				},
			},
		},
	}
	c.BuiltinRoles = defaultBuiltinRoles()

	return c
}

func defaultBuiltinRoles() map[string]Role {
	builtin := func(
		name string,
		description string,
		areas map[Area][]Permission,
		groups []Permission,
	) Role {
		perms := NewUIPermissions(
			AreaAuditlog,
			AreaDeployments,
			AreaDevices,
			AreaReleases,
			AreaUsers,
		)
		for area, values := range areas {
			perms.Areas[area] = values
		}
		if len(groups) > 0 {
			perms.Groups[AllDevices] = groups
		}

		return Role{
			Name:          name,
			Description:   description,
			UIPermissions: perms,
			Editable:      false,
		}
	}

	return map[string]Role{
		RolePermitAll: builtin(
			RolePermitAll,
			"Full access",
			map[Area][]Permission{
				AreaAuditlog:    {PermRead},
				AreaDeployments: {PermRead, PermDeploy},
				AreaDevices:     {PermRead, PermManage},
				AreaReleases:    {PermRead, PermUpload, PermManage},
				AreaUsers:       {PermRead, PermManage},
			},
			[]Permission{PermRead, PermDeploy, PermConnect, PermConfigure, PermManage},
		),
		RoleObserver: builtin(
			RoleObserver,
			"Read only access to devices, releases and deployments",
			map[Area][]Permission{
				AreaDeployments: {PermRead},
				AreaDevices:     {PermRead},
				AreaReleases:    {PermRead},
			},
			[]Permission{PermRead},
		),
		RoleUserManager: builtin(
			RoleUserManager,
			"Manage users and roles",
			map[Area][]Permission{
				AreaUsers: {PermRead, PermManage},
			},
			nil,
		),
		RoleCI: builtin(
			RoleCI,
			"Upload artifacts and create deployments",
			map[Area][]Permission{
				AreaDeployments: {PermRead, PermDeploy},
				AreaReleases:    {PermRead, PermUpload},
			},
			[]Permission{PermDeploy},
		),
		RoleDeploymentsManager: builtin(
			RoleDeploymentsManager,
			"Manage deployments",
			map[Area][]Permission{
				AreaDeployments: {PermRead, PermDeploy},
				AreaReleases:    {PermRead},
			},
			[]Permission{PermRead, PermDeploy},
		),
		RoleReleasesManager: builtin(
			RoleReleasesManager,
			"Manage releases",
			map[Area][]Permission{
				AreaReleases: {PermRead, PermUpload, PermManage},
			},
			nil,
		),
	}
}
