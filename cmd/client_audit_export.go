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

	"github.com/philband/mender-gui/internal/audit/export"
	"github.com/philband/mender-gui/internal/cli"
)

var (
	auditExportOutput  string
	auditExportType    string
	auditExportPerPage int
)

// clientAuditExportCmd represents the clientAuditExport command.
var clientAuditExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export audit log entries to a file",
	Long: `Export every matching audit log entry to a file for long-term retention.

Pages through the management server's audit logs and writes each entry as
a JSON line (JSONL format).
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		query := auditQueryFromFlags(cmd)

		var exporter export.Exporter
		switch auditExportType {
		case "file":
			exporter = export.NewFileExporter(appFs, auditExportOutput)
		default:
			cli.LogFatal(
				logger,
				"unsupported export type",
				fmt.Errorf("type %q is not supported, use \"file\"", auditExportType),
			)
		}

		result, err := export.Run(
			ctx,
			logger,
			export.APIFetcher(managementClient, query),
			exporter,
			auditExportPerPage,
			func(exported int, total int) {
				logger.Debug(
					"export progress",
					"exported", exported,
					"total", total,
				)
			},
		)
		if err != nil {
			cli.HandleAPIError(err, logger)
			cli.LogFatal(logger, "export failed", nil)
		}

		if jsonOutput {
			printJSON(result)
			return
		}

		fmt.Println()
		cli.PrintKV(
			"Exported", strconv.Itoa(result.ExportedEntries),
			"Total", strconv.Itoa(result.TotalEntries),
		)
		cli.PrintKV("Output", auditExportOutput)
	},
}

func init() {
	clientAuditCmd.AddCommand(clientAuditExportCmd)
	addAuditFilterFlags(clientAuditExportCmd)
	clientAuditExportCmd.Flags().
		StringVar(&auditExportOutput, "output", "", "Output file path (required)")
	clientAuditExportCmd.Flags().
		StringVar(&auditExportType, "type", "file", "Export backend type")
	clientAuditExportCmd.Flags().
		IntVar(&auditExportPerPage, "per-page", 100, "Entries fetched per request (max 500)")
	_ = clientAuditExportCmd.MarkFlagRequired("output")
}
