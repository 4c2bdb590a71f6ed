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

// clientRoleDeleteCmd represents the clientRoleDelete command.
var clientRoleDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a role",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		if err := userManager.GetRoles(ctx); err != nil {
			cli.LogFatal(logger, "failed to get roles", err)
		}

		if err := userManager.RemoveRole(ctx, args[0]); err != nil {
			cli.HandleAPIError(err, logger)
			cli.LogFatal(logger, "failed to delete role", nil)
		}

		if jsonOutput {
			printJSON(map[string]string{"deleted": args[0]})
			return
		}

		fmt.Println()
		cli.PrintKV("Deleted", args[0])
	},
}

func init() {
	clientRoleCmd.AddCommand(clientRoleDeleteCmd)
}
