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

package useradm

import (
	"context"
	"strconv"
)

// GetAuditLogs fetches one page of audit logs. The total is read from the
// X-Total-Count header; when absent the page length is used.
func (c *Client) GetAuditLogs(
	ctx context.Context,
	query AuditLogQuery,
) (*AuditLogPage, error) {
	const action = "listing audit logs"

	params := map[string]string{}
	if query.Page > 0 {
		params["page"] = strconv.Itoa(query.Page)
	}
	if query.PerPage > 0 {
		params["per_page"] = strconv.Itoa(query.PerPage)
	}
	if query.ObjectType != "" {
		params["object_type"] = query.ObjectType
	}
	if query.ObjectID != "" {
		params["object_id"] = query.ObjectID
	}
	if query.UserID != "" {
		params["actor_id"] = query.UserID
	}
	if query.StartDate != nil {
		params["created_after"] = strconv.FormatInt(query.StartDate.Unix(), 10)
	}
	if query.EndDate != nil {
		params["created_before"] = strconv.FormatInt(query.EndDate.Unix(), 10)
	}
	params["sort"] = query.Sort
	if params["sort"] == "" {
		params["sort"] = "desc"
	}

	resp, err := c.request(ctx).
		SetQueryParams(params).
		Get(auditLogsPath)
	if err := c.check(action, resp, err); err != nil {
		return nil, err
	}

	page := &AuditLogPage{}
	if err := decode(action, resp, &page.Entries); err != nil {
		return nil, err
	}

	page.Total = len(page.Entries)
	if raw := resp.Header().Get(totalCountHeader); raw != "" {
		if total, err := strconv.Atoi(raw); err == nil {
			page.Total = total
		}
	}

	return page, nil
}
