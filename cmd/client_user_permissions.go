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
)

// userPermissionsOutput is the JSON form of a user's effective permissions.
type userPermissionsOutput struct {
	UserID        string             `json:"userId"`
	Roles         []string           `json:"roles"`
	UIPermissions rbac.UIPermissions `json:"uiPermissions"`
	Capabilities  rbac.Capabilities  `json:"capabilities"`
}

// clientUserPermissionsCmd represents the clientUserPermissions command.
var clientUserPermissionsCmd = &cobra.Command{
	Use:   "permissions ID",
	Short: "Show a user's effective permissions",
	Long: `Merge the UI permissions of every role the user holds and derive the
capability flags the console uses to gate its views.
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		if err := userManager.GetRoles(ctx); err != nil {
			cli.LogFatal(logger, "failed to get roles", err)
		}

		user, err := userManager.GetUser(ctx, args[0])
		if err != nil {
			cli.HandleAPIError(err, logger)
			cli.LogFatal(logger, "failed to get user", nil)
		}

		perms := userManager.PermissionsForRoles(user.Roles)
		caps := userManager.Capabilities(user.Roles)

		if jsonOutput {
			printJSON(userPermissionsOutput{
				UserID:        user.ID,
				Roles:         user.Roles,
				UIPermissions: perms,
				Capabilities:  caps,
			})
			return
		}

		fmt.Println()
		cli.PrintKV("User", user.Email, "ID", user.ID)
		cli.PrintKV("Roles", cli.FormatList(user.Roles))

		if perms.IsEmpty() {
			fmt.Println("  " + cli.DimStyle.Render("No UI permissions granted."))
		}

		cli.PrintCompactTable([]cli.Section{
			{
				Title:   "UI Permissions",
				Headers: []string{"SCOPE", "PERMISSIONS"},
				Rows:    permissionRows(perms),
			},
			{
				Title:   "Capabilities",
				Headers: []string{"CAPABILITY", "ALLOWED"},
				Rows:    capabilityRows(caps),
			},
		})
	},
}

// capabilityRows lists each capability flag with its value.
func capabilityRows(
	caps rbac.Capabilities,
) [][]string {
	flags := []struct {
		name string
		on   bool
	}{
		{"auditlog", caps.CanAuditlog},
		{"configure", caps.CanConfigure},
		{"deploy", caps.CanDeploy},
		{"manage devices", caps.CanManageDevices},
		{"manage releases", caps.CanManageReleases},
		{"manage users", caps.CanManageUsers},
		{"read deployments", caps.CanReadDeployments},
		{"read devices", caps.CanReadDevices},
		{"read releases", caps.CanReadReleases},
		{"read users", caps.CanReadUsers},
		{"troubleshoot", caps.CanTroubleshoot},
		{"upload releases", caps.CanUploadReleases},
		{"write devices", caps.CanWriteDevices},
	}

	rows := make([][]string, 0, len(flags))
	for _, f := range flags {
		value := "no"
		if f.on {
			value = "yes"
		}
		rows = append(rows, []string{f.name, value})
	}

	return rows
}

func init() {
	clientUserCmd.AddCommand(clientUserPermissionsCmd)
}
