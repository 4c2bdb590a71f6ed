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
	"github.com/philband/mender-gui/internal/useradm"
	"github.com/philband/mender-gui/internal/validation"
)

// clientUserEditCmd represents the clientUserEdit command.
var clientUserEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Edit a user",
	Long: `Change a user's email, password or roles. Flags left unset are not
sent; --roles replaces the full role list.
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		roles, _ := cmd.Flags().GetStringSlice("roles")

		update := useradm.UserUpdate{
			Email:    email,
			Password: password,
			Roles:    roles,
		}
		if errMsg, ok := validation.Struct(update); !ok {
			cli.LogFatal(logger, "invalid user", fmt.Errorf("%s", errMsg))
		}

		if err := userManager.EditUser(ctx, args[0], update); err != nil {
			cli.HandleAPIError(err, logger)
			cli.LogFatal(logger, "failed to edit user", nil)
		}

		if jsonOutput {
			printJSON(map[string]string{"updated": args[0]})
			return
		}

		fmt.Println()
		cli.PrintKV("Updated", args[0])
	},
}

func init() {
	clientUserCmd.AddCommand(clientUserEditCmd)

	clientUserEditCmd.Flags().String("email", "", "New email address")
	clientUserEditCmd.Flags().String("password", "", "New password (min 8 characters)")
	clientUserEditCmd.Flags().StringSliceP("roles", "r", nil, "Replacement role list")
}
