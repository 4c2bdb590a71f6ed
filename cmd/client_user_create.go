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

// clientUserCreateCmd represents the clientUserCreate command.
var clientUserCreateCmd = &cobra.Command{
	Use:   "create EMAIL",
	Short: "Create a user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		password, _ := cmd.Flags().GetString("password")
		roles, _ := cmd.Flags().GetStringSlice("roles")
		sendReset, _ := cmd.Flags().GetBool("send-reset-password")

		body := useradm.UserCreate{
			Email:             args[0],
			Password:          password,
			Roles:             roles,
			SendResetPassword: sendReset,
		}
		if errMsg, ok := validation.Struct(body); !ok {
			cli.LogFatal(logger, "invalid user", fmt.Errorf("%s", errMsg))
		}

		if err := userManager.CreateUser(ctx, body); err != nil {
			cli.HandleAPIError(err, logger)
			cli.LogFatal(logger, "failed to create user", nil)
		}

		if jsonOutput {
			printJSON(map[string]string{"created": args[0]})
			return
		}

		fmt.Println()
		cli.PrintKV("Created", args[0], "Roles", cli.FormatList(roles))
	},
}

func init() {
	clientUserCmd.AddCommand(clientUserCreateCmd)

	clientUserCreateCmd.Flags().String("password", "", "Initial password (min 8 characters)")
	clientUserCreateCmd.Flags().StringSliceP("roles", "r", []string{}, "Roles to assign")
	clientUserCreateCmd.Flags().Bool("send-reset-password", false,
		"Email the user a password reset link instead of setting a password")
}
