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

package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/philband/mender-gui/internal/api/health"
	"github.com/philband/mender-gui/internal/rbac"
	"github.com/philband/mender-gui/internal/store"
)

type HealthPublicTestSuite struct {
	suite.Suite

	logger *slog.Logger
}

func (s *HealthPublicTestSuite) SetupTest() {
	s.logger = slog.Default()
}

type failingMetrics struct{}

func (failingMetrics) GetStateInfo(
	_ context.Context,
) (*health.StateMetrics, error) {
	return nil, errors.New("unavailable")
}

func (s *HealthPublicTestSuite) serve(
	handler echo.HandlerFunc,
) *httptest.ResponseRecorder {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	s.Require().NoError(handler(c))

	return rec
}

func (s *HealthPublicTestSuite) TestGetHealth() {
	h := health.New(s.logger, &health.RefreshChecker{}, time.Now(), "0.1.0", nil)

	rec := s.serve(h.GetHealth)

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status":"ok"}`, rec.Body.String())
}

func (s *HealthPublicTestSuite) TestGetHealthReady() {
	tests := []struct {
		name     string
		ready    bool
		wantCode int
		wantBody string
	}{
		{
			name:     "when roles are loaded",
			ready:    true,
			wantCode: http.StatusOK,
			wantBody: `{"status":"ready"}`,
		},
		{
			name:     "when roles are not loaded yet",
			wantCode: http.StatusServiceUnavailable,
			wantBody: `{"status":"not_ready","error":"roles have not been loaded yet"}`,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			checker := &health.RefreshChecker{}
			if tt.ready {
				checker.MarkReady()
			}
			h := health.New(s.logger, checker, time.Now(), "0.1.0", nil)

			rec := s.serve(h.GetHealthReady)

			s.Equal(tt.wantCode, rec.Code)
			s.JSONEq(tt.wantBody, rec.Body.String())
		})
	}
}

func (s *HealthPublicTestSuite) TestGetHealthStatus() {
	state := store.New(rbac.DefaultCatalog())

	tests := []struct {
		name         string
		ready        bool
		metrics      health.MetricsProvider
		wantCode     int
		validateFunc func(resp health.StatusResponse)
	}{
		{
			name:     "when ready reports state counts",
			ready:    true,
			metrics:  &health.StoreMetrics{Store: state},
			wantCode: http.StatusOK,
			validateFunc: func(resp health.StatusResponse) {
				s.Equal("ok", resp.Status)
				s.Equal("1.2.3", resp.Version)
				s.Equal("ok", resp.Components["roles"].Status)
				s.Require().NotNil(resp.State)
				s.Equal(6, resp.State.Roles)
				s.Zero(resp.State.Users)
			},
		},
		{
			name:     "when not ready is degraded",
			wantCode: http.StatusServiceUnavailable,
			validateFunc: func(resp health.StatusResponse) {
				s.Equal("degraded", resp.Status)
				s.Equal("error", resp.Components["roles"].Status)
				s.Nil(resp.State)
			},
		},
		{
			name:     "when metrics fail omits state",
			ready:    true,
			metrics:  failingMetrics{},
			wantCode: http.StatusOK,
			validateFunc: func(resp health.StatusResponse) {
				s.Nil(resp.State)
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			checker := &health.RefreshChecker{}
			if tt.ready {
				checker.MarkReady()
			}
			h := health.New(s.logger, checker, time.Now(), "1.2.3", tt.metrics)

			rec := s.serve(h.GetHealthStatus)

			s.Equal(tt.wantCode, rec.Code)
			var resp health.StatusResponse
			s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
			tt.validateFunc(resp)
		})
	}
}

func TestHealthPublicTestSuite(t *testing.T) {
	suite.Run(t, new(HealthPublicTestSuite))
}
