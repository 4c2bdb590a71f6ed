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
	"strconv"

	"github.com/spf13/cobra"

	"github.com/philband/mender-gui/internal/cli"
)

// clientUserListCmd represents the clientUserList command.
var clientUserListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		users, err := userManager.GetUserList(ctx)
		if err != nil {
			cli.HandleAPIError(err, logger)
			cli.LogFatal(logger, "failed to list users", nil)
		}

		if jsonOutput {
			printJSON(users)
			return
		}

		fmt.Println()
		cli.PrintKV("Total", strconv.Itoa(len(users)))

		if len(users) == 0 {
			fmt.Println("  " + cli.DimStyle.Render("No users found."))
			return
		}

		headers, rows := buildUserTable(users)
		cli.PrintCompactTable([]cli.Section{
			{
				Title:   "Users",
				Headers: headers,
				Rows:    rows,
			},
		})
	},
}

func init() {
	clientUserCmd.AddCommand(clientUserListCmd)
}
