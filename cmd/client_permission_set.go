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
)

// clientPermissionSetCmd represents the clientPermissionSet command.
var clientPermissionSetCmd = &cobra.Command{
	Use:   "permission-set",
	Short: "Permission set inspection",
}

// clientPermissionSetListCmd represents the clientPermissionSetList command.
var clientPermissionSetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List permission sets",
	Long: `List the server's permission sets. Sets that back no catalog
permission are flagged custom.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		if err := userManager.GetRoles(ctx); err != nil {
			cli.LogFatal(logger, "failed to get permission sets", err)
		}

		sets := userManager.Store().PermissionSets()
		if jsonOutput {
			printJSON(sets)
			return
		}

		if len(sets) == 0 {
			fmt.Println("  " + cli.DimStyle.Render("No permission sets found."))
			return
		}

		headers, rows := buildPermissionSetTable(sets)
		cli.PrintCompactTable([]cli.Section{
			{
				Title:   "Permission Sets",
				Headers: headers,
				Rows:    rows,
			},
		})
	},
}

func init() {
	clientCmd.AddCommand(clientPermissionSetCmd)
	clientPermissionSetCmd.AddCommand(clientPermissionSetListCmd)
}
