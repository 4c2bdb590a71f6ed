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

var (
	auditListPage    int
	auditListPerPage int
)

// clientAuditListCmd represents the clientAuditList command.
var clientAuditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List audit log entries",
	Long: `List one page of audit log entries.

Displays a table of recent management activity including actor, action
and affected object.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		query := auditQueryFromFlags(cmd)
		query.Page = auditListPage
		query.PerPage = auditListPerPage

		page, err := managementClient.GetAuditLogs(ctx, query)
		if err != nil {
			cli.HandleAPIError(err, logger)
			cli.LogFatal(logger, "failed to get audit logs", nil)
		}

		if jsonOutput {
			printJSON(page)
			return
		}

		fmt.Println()
		cli.PrintKV(
			"Total", strconv.Itoa(page.Total),
			"Page", strconv.Itoa(auditListPage),
		)

		if len(page.Entries) == 0 {
			fmt.Println("  " + cli.DimStyle.Render("No audit entries found."))
			return
		}

		headers, rows := buildAuditTable(page.Entries)
		cli.PrintCompactTable([]cli.Section{
			{
				Title:   "Audit Entries",
				Headers: headers,
				Rows:    rows,
			},
		})
	},
}

func init() {
	clientAuditCmd.AddCommand(clientAuditListCmd)
	addAuditFilterFlags(clientAuditListCmd)
	clientAuditListCmd.Flags().
		IntVar(&auditListPage, "page", 1, "Page number, starting at 1")
	clientAuditListCmd.Flags().
		IntVar(&auditListPerPage, "per-page", 20, "Entries per page (max 500)")
}
