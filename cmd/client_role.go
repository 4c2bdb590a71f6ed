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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philband/mender-gui/internal/cli"
	"github.com/philband/mender-gui/internal/rbac"
	"github.com/philband/mender-gui/internal/validation"
)

// clientRoleCmd represents the clientRole command.
var clientRoleCmd = &cobra.Command{
	Use:   "role",
	Short: "Role management",
	Long: `List, inspect and edit roles on the management server.

Roles are normalized into per-area and per-group UI permissions before
they are shown. Built-in roles cannot be edited or removed.
`,
}

// roleDataFromFlags assembles and validates the role edit payload from the
// --area and --group flags.
func roleDataFromFlags(
	cmd *cobra.Command,
	name string,
) rbac.RoleData {
	description, _ := cmd.Flags().GetString("description")
	areaValues, _ := cmd.Flags().GetStringArray("area")
	groupValues, _ := cmd.Flags().GetStringArray("group")

	areas, err := parseAreaGrants(areaValues)
	if err != nil {
		cli.LogFatal(logger, "invalid --area", err)
	}

	groups, err := parseGroupGrants(groupValues)
	if err != nil {
		cli.LogFatal(logger, "invalid --group", err)
	}

	data := rbac.RoleData{
		Name:          name,
		Description:   description,
		UIPermissions: areas,
		Groups:        groups,
	}

	if errMsg, ok := validation.Struct(data); !ok {
		cli.LogFatal(logger, "invalid role", fmt.Errorf("%s", errMsg))
	}

	return data
}

// addRoleDataFlags registers the flags shared by role create and edit.
func addRoleDataFlags(
	cmd *cobra.Command,
) {
	cmd.Flags().String("description", "", "Role description")
	cmd.Flags().StringArray("area", []string{},
		"Area grant as area=perm[,perm...] (e.g. devices=read,manage); repeatable")
	cmd.Flags().StringArray("group", []string{},
		"Device group grant as group=perm[,perm...] (e.g. production=read,deploy); repeatable")
}

// printRole renders one role.
func printRole(
	role rbac.Role,
) {
	if jsonOutput {
		printJSON(role)
		return
	}

	fmt.Println()
	cli.PrintKV("Name", role.Name, "Type", roleKind(role))
	if role.Description != "" {
		cli.PrintKV("Description", role.Description)
	}

	sets := make([]string, 0, len(role.PermissionSetsWithScope))
	for _, ref := range role.PermissionSetsWithScope {
		entry := ref.Name
		if ref.Scope != nil {
			entry += " (" + cli.FormatList(ref.Scope.Value) + ")"
		}
		sets = append(sets, entry)
	}

	headers, rows := buildRoleTable([]rbac.Role{role})
	cli.PrintCompactTable([]cli.Section{
		{
			Title:   "Permission Sets",
			Headers: []string{"NAME"},
			Rows:    [][]string{{cli.FormatList(sets)}},
		},
		{
			Title:   "UI Permissions",
			Headers: headers[2:4],
			Rows:    [][]string{rows[0][2:4]},
		},
	})
}

func init() {
	clientCmd.AddCommand(clientRoleCmd)
}
