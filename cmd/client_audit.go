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
	"time"

	"github.com/spf13/cobra"

	"github.com/philband/mender-gui/internal/cli"
	"github.com/philband/mender-gui/internal/useradm"
	"github.com/philband/mender-gui/internal/validation"
)

// clientAuditCmd represents the clientAudit command.
var clientAuditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit log inspection",
	Long: `Read the management server's audit logs. Requires auditlog:read on the
configured token.
`,
}

// addAuditFilterFlags registers the filter flags shared by list and export.
func addAuditFilterFlags(
	cmd *cobra.Command,
) {
	cmd.Flags().String("object-type", "", "Filter by object type (artifact, deployment, device, user)")
	cmd.Flags().String("object-id", "", "Filter by object id")
	cmd.Flags().String("user-id", "", "Filter by acting user id")
	cmd.Flags().String("since", "", "Only entries at or after this RFC 3339 time")
	cmd.Flags().String("until", "", "Only entries at or before this RFC 3339 time")
	cmd.Flags().String("sort", "desc", "Sort order by time (asc, desc)")
}

// auditQueryFromFlags builds the audit log filters from the shared flags.
func auditQueryFromFlags(
	cmd *cobra.Command,
) useradm.AuditLogQuery {
	objectType, _ := cmd.Flags().GetString("object-type")
	objectID, _ := cmd.Flags().GetString("object-id")
	userID, _ := cmd.Flags().GetString("user-id")
	since, _ := cmd.Flags().GetString("since")
	until, _ := cmd.Flags().GetString("until")
	sort, _ := cmd.Flags().GetString("sort")

	if objectType != "" {
		if _, ok := validation.Var(objectType, "oneof=artifact deployment device user"); !ok {
			cli.LogFatal(logger, "invalid --object-type", fmt.Errorf("unsupported object type %q", objectType))
		}
	}
	if _, ok := validation.Var(sort, "oneof=asc desc"); !ok {
		cli.LogFatal(logger, "invalid --sort", fmt.Errorf("unsupported sort %q", sort))
	}

	return useradm.AuditLogQuery{
		ObjectType: objectType,
		ObjectID:   objectID,
		UserID:     userID,
		StartDate:  parseTimeFlag("--since", since),
		EndDate:    parseTimeFlag("--until", until),
		Sort:       sort,
	}
}

func parseTimeFlag(
	name string,
	value string,
) *time.Time {
	if value == "" {
		return nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		cli.LogFatal(logger, "invalid "+name, err)
	}

	return &t
}

func init() {
	clientCmd.AddCommand(clientAuditCmd)
}
