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

package export

import (
	"context"

	"github.com/philband/mender-gui/internal/useradm"
)

// Fetcher returns one page of audit logs (pages start at 1) and the total
// number of entries the server reports.
type Fetcher func(
	ctx context.Context,
	page int,
	perPage int,
) ([]useradm.AuditLog, int, error)

// Exporter is a destination for audit log entries.
type Exporter interface {
	Open(ctx context.Context) error
	Write(ctx context.Context, entry useradm.AuditLog) error
	Close(ctx context.Context) error
}

// Result summarizes an export run.
type Result struct {
	TotalEntries    int
	ExportedEntries int
}

// APIFetcher pages through api.GetAuditLogs using query for the filters.
// The query's Page and PerPage are overwritten per call.
func APIFetcher(
	api useradm.API,
	query useradm.AuditLogQuery,
) Fetcher {
	return func(
		ctx context.Context,
		page int,
		perPage int,
	) ([]useradm.AuditLog, int, error) {
		q := query
		q.Page = page
		q.PerPage = perPage

		result, err := api.GetAuditLogs(ctx, q)
		if err != nil {
			return nil, 0, err
		}

		return result.Entries, result.Total, nil
	}
}
