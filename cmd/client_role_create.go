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
	"github.com/spf13/cobra"

	"github.com/philband/mender-gui/internal/cli"
)

// clientRoleCreateCmd represents the clientRoleCreate command.
var clientRoleCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a role",
	Long: `Create a role from area and device-group grants. Lower permissions
implied by a selected one are added automatically, e.g. devices=manage
also grants devices=read.
`,
	Example: `  mender-console client role create Support \
    --area devices=read --area users=read --group production=read,connect`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		data := roleDataFromFlags(cmd, args[0])

		role, err := userManager.CreateRole(ctx, data)
		if err != nil {
			cli.HandleAPIError(err, logger)
			cli.LogFatal(logger, "failed to create role", nil)
		}

		printRole(role)
	},
}

func init() {
	clientRoleCmd.AddCommand(clientRoleCreateCmd)
	addRoleDataFlags(clientRoleCreateCmd)
}
