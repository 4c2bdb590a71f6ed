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

// clientRoleEditCmd represents the clientRoleEdit command.
var clientRoleEditCmd = &cobra.Command{
	Use:   "edit NAME",
	Short: "Replace a role's grants",
	Long: `Replace an editable role's grants. The description is kept when
--description is not given.
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		data := roleDataFromFlags(cmd, args[0])

		// Loads the cached role so its editability and description are known.
		if err := userManager.GetRoles(ctx); err != nil {
			cli.LogFatal(logger, "failed to get roles", err)
		}

		role, err := userManager.EditRole(ctx, data)
		if err != nil {
			cli.HandleAPIError(err, logger)
			cli.LogFatal(logger, "failed to edit role", nil)
		}

		printRole(role)
	},
}

func init() {
	clientRoleCmd.AddCommand(clientRoleEditCmd)
	addRoleDataFlags(clientRoleEditCmd)
}
