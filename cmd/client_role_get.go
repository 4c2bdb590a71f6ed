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

// clientRoleGetCmd represents the clientRoleGet command.
var clientRoleGetCmd = &cobra.Command{
	Use:   "get NAME",
	Short: "Show a role",
	Long: `Show a role's permission-set references and the UI permissions they
grant per area and per device group.
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		if err := userManager.GetRoles(ctx); err != nil {
			cli.LogFatal(logger, "failed to get roles", err)
		}

		role, ok := userManager.Store().Role(args[0])
		if !ok {
			cli.LogFatal(logger, "role not found", fmt.Errorf("role %s not found", args[0]))
		}

		printRole(role)
	},
}

func init() {
	clientRoleCmd.AddCommand(clientRoleGetCmd)
}
