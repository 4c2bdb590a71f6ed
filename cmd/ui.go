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

package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/philband/mender-gui/internal/cli"
	"github.com/philband/mender-gui/internal/rbac"
	"github.com/philband/mender-gui/internal/useradm"
)

// printJSON writes v as indented JSON to stdout.
func printJSON(
	v any,
) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		cli.LogFatal(logger, "failed to render json", err)
	}

	fmt.Println(string(out))
}

// parseAreaGrants parses "area=perm,perm" values into per-area selections.
// Repeated areas accumulate.
func parseAreaGrants(
	values []string,
) (map[rbac.Area][]rbac.Permission, error) {
	grants := make(map[rbac.Area][]rbac.Permission, len(values))
	for _, value := range values {
		name, perms, err := parseGrant(value)
		if err != nil {
			return nil, err
		}
		area := rbac.Area(name)
		grants[area] = append(grants[area], perms...)
	}

	return grants, nil
}

// parseGroupGrants parses "group=perm,perm" values into device-group
// selections, in the order given.
func parseGroupGrants(
	values []string,
) ([]rbac.GroupPermissions, error) {
	groups := make([]rbac.GroupPermissions, 0, len(values))
	for _, value := range values {
		name, perms, err := parseGrant(value)
		if err != nil {
			return nil, err
		}
		groups = append(groups, rbac.GroupPermissions{
			Group:         name,
			UIPermissions: perms,
		})
	}

	return groups, nil
}

func parseGrant(
	value string,
) (string, []rbac.Permission, error) {
	name, list, ok := strings.Cut(value, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" || strings.TrimSpace(list) == "" {
		return "", nil, fmt.Errorf("invalid grant %q: expected name=perm[,perm...]", value)
	}

	perms := []rbac.Permission{}
	for _, p := range strings.Split(list, ",") {
		if p = strings.TrimSpace(p); p != "" {
			perms = append(perms, rbac.Permission(p))
		}
	}

	return name, perms, nil
}

// formatAreas formats area grants as "area:perm,perm; area:perm" sorted by
// area name.
func formatAreas(
	areas map[rbac.Area][]rbac.Permission,
) string {
	byName := make(map[string][]rbac.Permission, len(areas))
	for area, perms := range areas {
		byName[string(area)] = perms
	}

	return cli.FormatGroups(byName)
}

// permissionRows lists one row per area, then one per group, each with its
// granted permissions. Areas and groups are sorted by name.
func permissionRows(
	perms rbac.UIPermissions,
) [][]string {
	areas := make([]string, 0, len(perms.Areas))
	for area := range perms.Areas {
		areas = append(areas, string(area))
	}
	sort.Strings(areas)

	groups := make([]string, 0, len(perms.Groups))
	for name := range perms.Groups {
		groups = append(groups, name)
	}
	sort.Strings(groups)

	rows := make([][]string, 0, len(areas)+len(groups))
	for _, area := range areas {
		rows = append(rows, []string{area, cli.FormatPermissions(perms.Areas[rbac.Area(area)])})
	}
	for _, name := range groups {
		rows = append(rows, []string{"group " + name, cli.FormatPermissions(perms.Groups[name])})
	}

	return rows
}

// roleKind labels a role for display.
func roleKind(
	role rbac.Role,
) string {
	switch {
	case !role.Editable:
		return "built-in"
	case role.IsCustom:
		return "custom"
	default:
		return "editable"
	}
}

// buildRoleTable builds headers and rows for a role listing.
func buildRoleTable(
	roles []rbac.Role,
) ([]string, [][]string) {
	headers := []string{"NAME", "TYPE", "AREAS", "GROUPS", "DESCRIPTION"}

	rows := make([][]string, 0, len(roles))
	for _, role := range roles {
		rows = append(rows, []string{
			role.Name,
			roleKind(role),
			formatAreas(role.UIPermissions.Areas),
			cli.FormatGroups(role.UIPermissions.Groups),
			role.Description,
		})
	}

	return headers, rows
}

// buildPermissionSetTable builds headers and rows for a permission-set
// listing. Sets are sorted by name.
func buildPermissionSetTable(
	sets map[string]rbac.PermissionSet,
) ([]string, [][]string) {
	headers := []string{"NAME", "SCOPES", "CUSTOM", "DESCRIPTION"}

	names := make([]string, 0, len(sets))
	for name := range sets {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		set := sets[name]
		scopes := make([]string, 0, len(set.SupportedScopeTypes))
		for _, scope := range set.SupportedScopeTypes {
			scopes = append(scopes, string(scope))
		}
		rows = append(rows, []string{
			set.Name,
			cli.FormatList(scopes),
			strconv.FormatBool(set.IsCustom),
			set.Description,
		})
	}

	return headers, rows
}

// buildUserTable builds headers and rows for a user listing.
func buildUserTable(
	users []useradm.User,
) ([]string, [][]string) {
	headers := []string{"ID", "EMAIL", "ROLES", "VERIFIED", "CREATED"}

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			u.ID,
			u.Email,
			cli.FormatList(u.Roles),
			strconv.FormatBool(u.Verified),
			cli.FormatTime(u.Created),
		})
	}

	return headers, rows
}

// buildAuditTable builds headers and rows for an audit log page.
func buildAuditTable(
	entries []useradm.AuditLog,
) ([]string, [][]string) {
	headers := []string{"TIME", "ACTOR", "ACTION", "OBJECT", "CHANGE"}

	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		actor := entry.Actor.Email
		if actor == "" {
			actor = entry.Actor.ID
		}
		object := entry.Object.Type
		if entry.Object.ID != "" {
			object += "/" + entry.Object.ID
		}
		rows = append(rows, []string{
			entry.Time.Format(time.RFC3339),
			actor,
			entry.Action,
			object,
			entry.Change,
		})
	}

	return headers, rows
}
