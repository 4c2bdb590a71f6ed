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

// Package auditlog provides the audit log API handler.
package auditlog

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/philband/mender-gui/internal/api/common"
	"github.com/philband/mender-gui/internal/useradm"
	"github.com/philband/mender-gui/internal/validation"
)

// Fetcher reads one page of audit logs.
type Fetcher interface {
	GetAuditLogs(ctx context.Context, query useradm.AuditLogQuery) (*useradm.AuditLogPage, error)
}

// AuditLog implements the audit log endpoint.
type AuditLog struct {
	fetcher Fetcher
	logger  *slog.Logger
}

// ListResponse is one page of audit logs.
type ListResponse struct {
	Entries    []useradm.AuditLog `json:"entries"`
	TotalItems int                `json:"totalItems"`
	Page       int                `json:"page"`
	PerPage    int                `json:"perPage"`
}

// listParams are the accepted query parameters.
type listParams struct {
	Page       int    `validate:"min=1"`
	PerPage    int    `validate:"min=1,max=500"`
	ObjectType string `validate:"omitempty,oneof=artifact deployment device user"`
	ObjectID   string
	UserID     string
	Sort       string `validate:"omitempty,oneof=asc desc"`
}

// New factory to create a new instance.
func New(
	logger *slog.Logger,
	fetcher Fetcher,
) *AuditLog {
	return &AuditLog{
		fetcher: fetcher,
		logger:  logger,
	}
}

// GetAuditLogs proxies one filtered page of audit logs from the management
// server.
func (a *AuditLog) GetAuditLogs(
	c echo.Context,
) error {
	params := listParams{Page: 1, PerPage: 20}
	var start, end time.Time

	err := echo.QueryParamsBinder(c).
		Int("page", &params.Page).
		Int("per_page", &params.PerPage).
		String("object_type", &params.ObjectType).
		String("object_id", &params.ObjectID).
		String("user_id", &params.UserID).
		String("sort", &params.Sort).
		Time("start_date", &start, time.RFC3339).
		Time("end_date", &end, time.RFC3339).
		BindError()
	if err != nil {
		return common.JSONError(c, http.StatusBadRequest, err.Error())
	}

	if errMsg, ok := validation.Struct(params); !ok {
		return common.JSONError(c, http.StatusBadRequest, errMsg)
	}

	query := useradm.AuditLogQuery{
		Page:       params.Page,
		PerPage:    params.PerPage,
		ObjectType: params.ObjectType,
		ObjectID:   params.ObjectID,
		UserID:     params.UserID,
		Sort:       params.Sort,
	}
	if !start.IsZero() {
		query.StartDate = &start
	}
	if !end.IsZero() {
		query.EndDate = &end
	}

	page, err := a.fetcher.GetAuditLogs(c.Request().Context(), query)
	if err != nil {
		a.logger.Warn("audit log retrieval failed", slog.String("error", err.Error()))
		return common.BackendError(c, err)
	}

	entries := page.Entries
	if entries == nil {
		entries = []useradm.AuditLog{}
	}

	return c.JSON(http.StatusOK, ListResponse{
		Entries:    entries,
		TotalItems: page.Total,
		Page:       params.Page,
		PerPage:    params.PerPage,
	})
}
