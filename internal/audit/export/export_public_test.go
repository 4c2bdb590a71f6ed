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

package export_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/philband/mender-gui/internal/audit/export"
	"github.com/philband/mender-gui/internal/useradm"
	"github.com/philband/mender-gui/internal/useradm/mocks"
)

type ExportPublicTestSuite struct {
	suite.Suite

	ctx    context.Context
	logger *slog.Logger
}

func (suite *ExportPublicTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.logger = slog.Default()
}

func newLog(
	email string,
) useradm.AuditLog {
	return useradm.AuditLog{
		Action: "create",
		Actor:  useradm.AuditLogActor{ID: "actor-1", Type: "user", Email: email},
		Object: useradm.AuditLogObject{ID: "role-1", Type: "user"},
		Time:   time.Date(2026, 2, 21, 10, 30, 0, 0, time.UTC),
	}
}

func (suite *ExportPublicTestSuite) TestRun() {
	tests := []struct {
		name         string
		fetcher      export.Fetcher
		exporter     *mockExporter
		perPage      int
		validateFunc func(exp *mockExporter, result *export.Result, err error)
	}{
		{
			name: "when no entries returns zero counts",
			fetcher: func(_ context.Context, _, _ int) ([]useradm.AuditLog, int, error) {
				return nil, 0, nil
			},
			exporter: &mockExporter{},
			perPage:  100,
			validateFunc: func(exp *mockExporter, result *export.Result, err error) {
				suite.NoError(err)
				suite.Equal(0, result.TotalEntries)
				suite.Equal(0, result.ExportedEntries)
				suite.True(exp.opened)
				suite.True(exp.closed)
			},
		},
		{
			name: "when single page exports all entries",
			fetcher: func(_ context.Context, _, _ int) ([]useradm.AuditLog, int, error) {
				return []useradm.AuditLog{
					newLog("alice@example.com"),
					newLog("bob@example.com"),
				}, 2, nil
			},
			exporter: &mockExporter{},
			perPage:  100,
			validateFunc: func(exp *mockExporter, result *export.Result, err error) {
				suite.NoError(err)
				suite.Equal(2, result.ExportedEntries)
				suite.Len(exp.entries, 2)
				suite.Equal("alice@example.com", exp.entries[0].Actor.Email)
				suite.Equal("bob@example.com", exp.entries[1].Actor.Email)
			},
		},
		{
			name: "when multi-page requests pages in order",
			fetcher: newPagedFetcher([][]useradm.AuditLog{
				{newLog("alice@example.com"), newLog("bob@example.com")},
				{newLog("charlie@example.com")},
			}, 3),
			exporter: &mockExporter{},
			perPage:  2,
			validateFunc: func(exp *mockExporter, result *export.Result, err error) {
				suite.NoError(err)
				suite.Equal(3, result.TotalEntries)
				suite.Equal(3, result.ExportedEntries)
				suite.Equal("charlie@example.com", exp.entries[2].Actor.Email)
			},
		},
		{
			name: "when server total overstates the entries stops on an empty page",
			fetcher: newPagedFetcher([][]useradm.AuditLog{
				{newLog("alice@example.com")},
			}, 10),
			exporter: &mockExporter{},
			perPage:  1,
			validateFunc: func(_ *mockExporter, result *export.Result, err error) {
				suite.NoError(err)
				suite.Equal(1, result.ExportedEntries)
				suite.Equal(10, result.TotalEntries)
			},
		},
		{
			name: "when fetcher errors returns partial result",
			fetcher: func(_ context.Context, page, _ int) ([]useradm.AuditLog, int, error) {
				if page > 1 {
					return nil, 0, fmt.Errorf("connection lost")
				}
				return []useradm.AuditLog{newLog("alice@example.com")}, 3, nil
			},
			exporter: &mockExporter{},
			perPage:  1,
			validateFunc: func(_ *mockExporter, result *export.Result, err error) {
				suite.Error(err)
				suite.Contains(err.Error(), "fetching page 2")
				suite.Contains(err.Error(), "connection lost")
				suite.Equal(1, result.ExportedEntries)
				suite.Equal(3, result.TotalEntries)
			},
		},
		{
			name: "when write errors returns partial result",
			fetcher: func(_ context.Context, _, _ int) ([]useradm.AuditLog, int, error) {
				return []useradm.AuditLog{newLog("alice@example.com")}, 1, nil
			},
			exporter: &mockExporter{writeErr: fmt.Errorf("disk full")},
			perPage:  100,
			validateFunc: func(_ *mockExporter, result *export.Result, err error) {
				suite.Error(err)
				suite.Contains(err.Error(), "writing entry")
				suite.Equal(0, result.ExportedEntries)
			},
		},
		{
			name: "when open errors returns nil result",
			fetcher: func(_ context.Context, _, _ int) ([]useradm.AuditLog, int, error) {
				return nil, 0, nil
			},
			exporter: &mockExporter{openErr: fmt.Errorf("permission denied")},
			perPage:  100,
			validateFunc: func(_ *mockExporter, result *export.Result, err error) {
				suite.Error(err)
				suite.Contains(err.Error(), "opening exporter")
				suite.Nil(result)
			},
		},
		{
			name: "when close errors logs but returns result",
			fetcher: func(_ context.Context, _, _ int) ([]useradm.AuditLog, int, error) {
				return nil, 0, nil
			},
			exporter: &mockExporter{closeErr: fmt.Errorf("close failed")},
			perPage:  100,
			validateFunc: func(_ *mockExporter, result *export.Result, err error) {
				suite.NoError(err)
				suite.Equal(0, result.ExportedEntries)
			},
		},
		{
			name: "when per page is not positive",
			fetcher: func(_ context.Context, _, _ int) ([]useradm.AuditLog, int, error) {
				return nil, 0, nil
			},
			exporter: &mockExporter{},
			perPage:  0,
			validateFunc: func(exp *mockExporter, result *export.Result, err error) {
				suite.EqualError(err, "per page must be positive, got 0")
				suite.Nil(result)
				suite.False(exp.opened)
			},
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			result, err := export.Run(
				suite.ctx,
				suite.logger,
				tc.fetcher,
				tc.exporter,
				tc.perPage,
				nil,
			)
			tc.validateFunc(tc.exporter, result, err)
		})
	}
}

func (suite *ExportPublicTestSuite) TestRunProgress() {
	var calls []progressCall
	onProgress := func(exported int, total int) {
		calls = append(calls, progressCall{exported: exported, total: total})
	}

	_, err := export.Run(
		suite.ctx,
		suite.logger,
		newPagedFetcher([][]useradm.AuditLog{
			{newLog("alice@example.com"), newLog("bob@example.com")},
			{newLog("charlie@example.com")},
		}, 3),
		&mockExporter{},
		2,
		onProgress,
	)
	suite.NoError(err)

	suite.Require().Len(calls, 2)
	suite.Equal(progressCall{exported: 2, total: 3}, calls[0])
	suite.Equal(progressCall{exported: 3, total: 3}, calls[1])
}

func (suite *ExportPublicTestSuite) TestAPIFetcher() {
	ctrl := gomock.NewController(suite.T())
	defer ctrl.Finish()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	api := mocks.NewMockAPI(ctrl)

	tests := []struct {
		name         string
		setupMock    func()
		validateFunc func(entries []useradm.AuditLog, total int, err error)
	}{
		{
			name: "when server returns a page passes filters through",
			setupMock: func() {
				api.EXPECT().GetAuditLogs(gomock.Any(), useradm.AuditLogQuery{
					Page:       3,
					PerPage:    50,
					ObjectType: "user",
					StartDate:  &start,
				}).Return(&useradm.AuditLogPage{
					Entries: []useradm.AuditLog{newLog("alice@example.com")},
					Total:   101,
				}, nil)
			},
			validateFunc: func(entries []useradm.AuditLog, total int, err error) {
				suite.NoError(err)
				suite.Len(entries, 1)
				suite.Equal(101, total)
			},
		},
		{
			name: "when server fails",
			setupMock: func() {
				api.EXPECT().GetAuditLogs(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("forbidden"))
			},
			validateFunc: func(entries []useradm.AuditLog, total int, err error) {
				suite.EqualError(err, "forbidden")
				suite.Nil(entries)
				suite.Zero(total)
			},
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			tc.setupMock()

			fetch := export.APIFetcher(api, useradm.AuditLogQuery{
				Page:       99,
				ObjectType: "user",
				StartDate:  &start,
			})
			entries, total, err := fetch(suite.ctx, 3, 50)

			tc.validateFunc(entries, total, err)
		})
	}
}

func TestExportPublicTestSuite(t *testing.T) {
	suite.Run(t, new(ExportPublicTestSuite))
}

// mockExporter implements export.Exporter for testing.
type mockExporter struct {
	opened   bool
	closed   bool
	entries  []useradm.AuditLog
	openErr  error
	writeErr error
	closeErr error
}

func (m *mockExporter) Open(
	_ context.Context,
) error {
	if m.openErr != nil {
		return m.openErr
	}
	m.opened = true
	return nil
}

func (m *mockExporter) Write(
	_ context.Context,
	entry useradm.AuditLog,
) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockExporter) Close(
	_ context.Context,
) error {
	m.closed = true
	return m.closeErr
}

type progressCall struct {
	exported int
	total    int
}

// newPagedFetcher serves pages by 1-based page number; pages past the end
// are empty.
func newPagedFetcher(
	pages [][]useradm.AuditLog,
	total int,
) export.Fetcher {
	return func(
		_ context.Context,
		page int,
		_ int,
	) ([]useradm.AuditLog, int, error) {
		if page < 1 || page > len(pages) {
			return nil, total, nil
		}

		return pages[page-1], total, nil
	}
}
