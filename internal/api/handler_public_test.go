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

package api_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/philband/mender-gui/internal/api"
	"github.com/philband/mender-gui/internal/api/health"
	"github.com/philband/mender-gui/internal/api/role"
	"github.com/philband/mender-gui/internal/api/user"
	"github.com/philband/mender-gui/internal/authtoken"
	"github.com/philband/mender-gui/internal/config"
	"github.com/philband/mender-gui/internal/rbac"
	"github.com/philband/mender-gui/internal/store"
	"github.com/philband/mender-gui/internal/useradm"
	"github.com/philband/mender-gui/internal/useradm/mocks"
	"github.com/philband/mender-gui/internal/usermgmt"
)

const testSigningKey = "test-signing-key-for-handlers"

type HandlerPublicTestSuite struct {
	suite.Suite

	mockCtrl *gomock.Controller
	mockAPI  *mocks.MockAPI
	state    *store.Store
	manager  *usermgmt.Manager
	server   *api.Server
	logBuf   *bytes.Buffer
}

func (s *HandlerPublicTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockAPI = mocks.NewMockAPI(s.mockCtrl)
	s.logBuf = &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(s.logBuf, nil))

	engine := rbac.New(nil)
	s.state = store.New(engine.Catalog())
	manager, err := usermgmt.New(logger, s.mockAPI, engine, s.state)
	s.Require().NoError(err)
	s.manager = manager

	appConfig := config.Config{
		API: config.API{
			Server: config.Server{
				Security: config.ServerSecurity{SigningKey: testSigningKey},
			},
		},
	}

	checker := &health.RefreshChecker{}
	checker.MarkReady()

	s.server = api.New(appConfig, logger, api.WithPermissionResolver(manager))
	var handlers []func(e *echo.Echo)
	handlers = append(handlers, s.server.GetHealthHandler(checker, time.Now(), "0.1.0", &health.StoreMetrics{Store: s.state})...)
	handlers = append(handlers, s.server.GetRoleHandler(manager)...)
	handlers = append(handlers, s.server.GetUserHandler(manager)...)
	handlers = append(handlers, s.server.GetAuditLogHandler(s.mockAPI)...)
	handlers = append(handlers, s.server.GetMetricsHandler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("console_rbac_refresh_total 1\n"))
	}), "/metrics")...)
	s.server.RegisterHandlers(handlers)
}

func (s *HandlerPublicTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *HandlerPublicTestSuite) token(
	roles ...string,
) string {
	token, err := authtoken.New(slog.Default()).Generate(testSigningKey, roles, "alice@example.com")
	s.Require().NoError(err)

	return token
}

func (s *HandlerPublicTestSuite) do(
	method string,
	path string,
	token string,
	body string,
) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.server.Echo.ServeHTTP(rec, req)

	return rec
}

func (s *HandlerPublicTestSuite) TestAuthentication() {
	tests := []struct {
		name     string
		path     string
		token    string
		wantCode int
		wantBody string
	}{
		{
			name:     "when health is probed without a token",
			path:     "/health",
			wantCode: http.StatusOK,
			wantBody: `{"status":"ok"}`,
		},
		{
			name:     "when metrics are scraped without a token",
			path:     "/metrics",
			wantCode: http.StatusOK,
		},
		{
			name:     "when token is missing",
			path:     "/api/v1/roles",
			wantCode: http.StatusUnauthorized,
			wantBody: `{"error":"Bearer token required"}`,
		},
		{
			name:     "when token is signed with another key",
			path:     "/api/v1/roles",
			token:    "not-a-jwt",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "when status is requested without a token",
			path:     "/health/status",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "when caller lacks users read",
			path:     "/api/v1/roles",
			token:    s.token(rbac.RoleObserver),
			wantCode: http.StatusForbidden,
			wantBody: `{"error":"Insufficient permissions. Required: users:read"}`,
		},
		{
			name:     "when caller roles are unknown",
			path:     "/api/v1/permission-sets",
			token:    s.token("ghost"),
			wantCode: http.StatusForbidden,
		},
		{
			name:     "when caller may read users",
			path:     "/api/v1/permission-sets",
			token:    s.token(rbac.RoleUserManager),
			wantCode: http.StatusOK,
			wantBody: `{"permissionSets":{}}`,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := s.do(http.MethodGet, tt.path, tt.token, "")

			s.Equal(tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				s.JSONEq(tt.wantBody, rec.Body.String())
			}
		})
	}
}

type validatorFunc func(tokenString string, signingKey string) (*authtoken.CustomClaims, error)

func (f validatorFunc) Validate(
	tokenString string,
	signingKey string,
) (*authtoken.CustomClaims, error) {
	return f(tokenString, signingKey)
}

func (s *HandlerPublicTestSuite) TestWithTokenValidator() {
	tests := []struct {
		name     string
		token    string
		wantCode int
	}{
		{
			name:     "when validator accepts the token",
			token:    "opaque-session",
			wantCode: http.StatusOK,
		},
		{
			name:     "when validator rejects the token",
			token:    "revoked",
			wantCode: http.StatusUnauthorized,
		},
	}

	validator := validatorFunc(func(tokenString string, signingKey string) (*authtoken.CustomClaims, error) {
		s.Equal(testSigningKey, signingKey)
		if tokenString == "revoked" {
			return nil, errors.New("token revoked")
		}

		return &authtoken.CustomClaims{Roles: []string{rbac.RoleUserManager}}, nil
	})

	appConfig := config.Config{
		API: config.API{
			Server: config.Server{
				Security: config.ServerSecurity{SigningKey: testSigningKey},
			},
		},
	}
	server := api.New(
		appConfig,
		slog.Default(),
		api.WithTokenValidator(validator),
		api.WithPermissionResolver(s.manager),
	)
	server.RegisterHandlers(server.GetRoleHandler(s.manager))

	for _, tt := range tests {
		s.Run(tt.name, func() {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/permission-sets", nil)
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+tt.token)
			rec := httptest.NewRecorder()
			server.Echo.ServeHTTP(rec, req)

			s.Equal(tt.wantCode, rec.Code)
		})
	}
}

func (s *HandlerPublicTestSuite) TestGetRoles() {
	tests := []struct {
		name         string
		path         string
		wantCode     int
		validateFunc func(body []byte)
	}{
		{
			name:     "when listing returns built-in roles sorted by name",
			path:     "/api/v1/roles",
			wantCode: http.StatusOK,
			validateFunc: func(body []byte) {
				var resp role.RolesResponse
				s.Require().NoError(json.Unmarshal(body, &resp))
				s.Len(resp.Roles, 6)
				s.Equal(rbac.RoleCI, resp.Roles[0].Name)
				s.False(resp.Roles[0].Editable)
			},
		},
		{
			name:     "when role exists",
			path:     "/api/v1/roles/" + rbac.RoleReleasesManager,
			wantCode: http.StatusOK,
			validateFunc: func(body []byte) {
				var got rbac.Role
				s.Require().NoError(json.Unmarshal(body, &got))
				s.True(got.UIPermissions.Allows(rbac.AreaReleases, rbac.PermUpload))
			},
		},
		{
			name:     "when role is unknown",
			path:     "/api/v1/roles/ghost",
			wantCode: http.StatusNotFound,
			validateFunc: func(body []byte) {
				s.JSONEq(`{"error":"role ghost not found"}`, string(body))
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := s.do(http.MethodGet, tt.path, s.token(rbac.RoleUserManager), "")

			s.Equal(tt.wantCode, rec.Code)
			tt.validateFunc(rec.Body.Bytes())
		})
	}
}

func (s *HandlerPublicTestSuite) TestRoleMutations() {
	tests := []struct {
		name         string
		method       string
		path         string
		roles        []string
		body         string
		setupMock    func()
		wantCode     int
		validateFunc func(body string)
	}{
		{
			name:   "when role data is valid creates the role",
			method: http.MethodPost,
			path:   "/api/v1/roles",
			roles:  []string{rbac.RoleUserManager},
			body:   `{"name":"viewer","uiPermissions":{"devices":["read"]}}`,
			setupMock: func() {
				s.mockAPI.EXPECT().CreateRole(gomock.Any(), useradm.RoleBody{
					Name: "viewer",
					PermissionSetsWithScope: []rbac.ScopedPermissionSet{
						{Name: rbac.BasicPermissionSet},
						{Name: "ReadDevices"},
					},
				}).Return(nil)
				s.mockAPI.EXPECT().GetRoles(gomock.Any()).Return(nil, errors.New("offline"))
				s.mockAPI.EXPECT().GetPermissionSets(gomock.Any()).Return(nil, nil)
			},
			wantCode: http.StatusCreated,
			validateFunc: func(body string) {
				s.Contains(body, `"name":"viewer"`)
				s.Contains(body, `"editable":true`)
			},
		},
		{
			name:     "when an area is outside the catalog",
			method:   http.MethodPost,
			path:     "/api/v1/roles",
			roles:    []string{rbac.RoleUserManager},
			body:     `{"name":"viewer","uiPermissions":{"billing":["read"]}}`,
			wantCode: http.StatusBadRequest,
			validateFunc: func(body string) {
				s.Contains(body, "invalid request body")
				s.Contains(body, `area \"billing\" is not in the permission catalog`)
			},
		},
		{
			name:     "when the name is missing",
			method:   http.MethodPost,
			path:     "/api/v1/roles",
			roles:    []string{rbac.RoleUserManager},
			body:     `{"uiPermissions":{}}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "when body is not JSON",
			method:   http.MethodPost,
			path:     "/api/v1/roles",
			roles:    []string{rbac.RoleUserManager},
			body:     `{`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "when caller only reads users",
			method:   http.MethodPost,
			path:     "/api/v1/roles",
			roles:    []string{rbac.RoleObserver},
			body:     `{"name":"viewer"}`,
			wantCode: http.StatusForbidden,
		},
		{
			name:     "when editing a built-in role",
			method:   http.MethodPut,
			path:     "/api/v1/roles/" + rbac.RoleCI,
			roles:    []string{rbac.RolePermitAll},
			body:     `{"uiPermissions":{"releases":["read"]}}`,
			wantCode: http.StatusBadRequest,
			validateFunc: func(body string) {
				s.Contains(body, "role is not editable")
			},
		},
		{
			name:   "when management server fails deleting",
			method: http.MethodDelete,
			path:   "/api/v1/roles/editor",
			roles:  []string{rbac.RolePermitAll},
			setupMock: func() {
				s.mockAPI.EXPECT().DeleteRole(gomock.Any(), "editor").
					Return(errors.New("connection reset"))
			},
			wantCode: http.StatusBadGateway,
			validateFunc: func(body string) {
				s.JSONEq(`{"error":"there was an error removing the role: connection reset"}`, body)
			},
		},
		{
			name:   "when management server deletes the role",
			method: http.MethodDelete,
			path:   "/api/v1/roles/editor",
			roles:  []string{rbac.RolePermitAll},
			setupMock: func() {
				s.mockAPI.EXPECT().DeleteRole(gomock.Any(), "editor").Return(nil)
				s.mockAPI.EXPECT().GetRoles(gomock.Any()).Return([]rbac.Role{}, nil)
				s.mockAPI.EXPECT().GetPermissionSets(gomock.Any()).Return([]rbac.PermissionSet{}, nil)
			},
			wantCode: http.StatusNoContent,
		},
		{
			name:   "when refresh is requested",
			method: http.MethodPost,
			path:   "/api/v1/roles/refresh",
			roles:  []string{rbac.RoleUserManager},
			setupMock: func() {
				s.mockAPI.EXPECT().GetRoles(gomock.Any()).Return([]rbac.Role{
					{Name: "auditor", PermissionSetsWithScope: []rbac.ScopedPermissionSet{{Name: "ReadAuditLogs"}}},
				}, nil)
				s.mockAPI.EXPECT().GetPermissionSets(gomock.Any()).
					Return([]rbac.PermissionSet{{Name: "ReadAuditLogs"}}, nil)
			},
			wantCode: http.StatusOK,
			validateFunc: func(body string) {
				s.Contains(body, `"name":"auditor"`)
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			if tt.setupMock != nil {
				tt.setupMock()
			}

			rec := s.do(tt.method, tt.path, s.token(tt.roles...), tt.body)

			s.Equal(tt.wantCode, rec.Code)
			if tt.validateFunc != nil {
				tt.validateFunc(rec.Body.String())
			}
		})
	}
}

func (s *HandlerPublicTestSuite) TestAuditMiddleware() {
	s.mockAPI.EXPECT().DeleteRole(gomock.Any(), "editor").Return(errors.New("boom"))

	rec := s.do(http.MethodDelete, "/api/v1/roles/editor", s.token(rbac.RolePermitAll), "")

	s.Equal(http.StatusBadGateway, rec.Code)
	s.Contains(s.logBuf.String(), `"msg":"console audit"`)
	s.Contains(s.logBuf.String(), `"user":"alice@example.com"`)
	s.Contains(s.logBuf.String(), `"response_code":502`)
}

func (s *HandlerPublicTestSuite) TestPermissions() {
	tests := []struct {
		name         string
		path         string
		roles        []string
		setupMock    func()
		wantCode     int
		validateFunc func(resp user.PermissionsResponse)
	}{
		{
			name:     "when caller asks for its own permissions",
			path:     "/api/v1/me/permissions",
			roles:    []string{rbac.RoleObserver},
			wantCode: http.StatusOK,
			validateFunc: func(resp user.PermissionsResponse) {
				s.Equal("alice@example.com", resp.Subject)
				s.Equal([]string{rbac.RoleObserver}, resp.Roles)
				s.True(resp.Capabilities.CanReadDevices)
				s.False(resp.Capabilities.CanManageUsers)
			},
		},
		{
			name:  "when reading another user's permissions",
			path:  "/api/v1/users/u1/permissions",
			roles: []string{rbac.RoleUserManager},
			setupMock: func() {
				s.mockAPI.EXPECT().GetUser(gomock.Any(), "u1").
					Return(&useradm.User{ID: "u1", Roles: []string{rbac.RoleCI}}, nil)
			},
			wantCode: http.StatusOK,
			validateFunc: func(resp user.PermissionsResponse) {
				s.Equal("u1", resp.UserID)
				s.True(resp.Capabilities.CanUploadReleases)
				s.True(resp.UIPermissions.Allows(rbac.AreaGroups, rbac.PermDeploy))
			},
		},
		{
			name:  "when the user does not exist",
			path:  "/api/v1/users/u9/permissions",
			roles: []string{rbac.RoleUserManager},
			setupMock: func() {
				s.mockAPI.EXPECT().GetUser(gomock.Any(), "u9").
					Return(nil, &useradm.APIError{StatusCode: http.StatusNotFound, Message: "user not found"})
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			if tt.setupMock != nil {
				tt.setupMock()
			}

			rec := s.do(http.MethodGet, tt.path, s.token(tt.roles...), "")

			s.Equal(tt.wantCode, rec.Code)
			if tt.validateFunc != nil {
				var resp user.PermissionsResponse
				s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
				tt.validateFunc(resp)
			}
		})
	}
}

func (s *HandlerPublicTestSuite) TestGetUsers() {
	s.mockAPI.EXPECT().GetUsers(gomock.Any()).Return([]useradm.User{
		{ID: "u1", Email: "a@example.com"},
	}, nil)

	rec := s.do(http.MethodGet, "/api/v1/users", s.token(rbac.RoleUserManager), "")

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"email":"a@example.com"`)
	_, ok := s.state.User("u1")
	s.True(ok)
}

func (s *HandlerPublicTestSuite) TestGetAuditLogs() {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name      string
		query     string
		roles     []string
		setupMock func()
		wantCode  int
		wantBody  string
	}{
		{
			name:  "when filters are valid proxies the page",
			query: "?page=2&per_page=10&object_type=user&sort=asc&start_date=2026-01-02T03:04:05Z",
			roles: []string{rbac.RolePermitAll},
			setupMock: func() {
				s.mockAPI.EXPECT().GetAuditLogs(gomock.Any(), useradm.AuditLogQuery{
					Page:       2,
					PerPage:    10,
					ObjectType: "user",
					Sort:       "asc",
					StartDate:  &start,
				}).Return(&useradm.AuditLogPage{Total: 11}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: `{"entries":[],"totalItems":11,"page":2,"perPage":10}`,
		},
		{
			name:     "when per page is too large",
			query:    "?per_page=1000",
			roles:    []string{rbac.RolePermitAll},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "when start date is malformed",
			query:    "?start_date=yesterday",
			roles:    []string{rbac.RolePermitAll},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "when caller cannot read the audit log",
			roles:    []string{rbac.RoleUserManager},
			wantCode: http.StatusForbidden,
		},
		{
			name:  "when management server fails",
			roles: []string{rbac.RolePermitAll},
			setupMock: func() {
				s.mockAPI.EXPECT().GetAuditLogs(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("timeout"))
			},
			wantCode: http.StatusBadGateway,
			wantBody: `{"error":"timeout"}`,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			if tt.setupMock != nil {
				tt.setupMock()
			}

			rec := s.do(http.MethodGet, "/api/v1/auditlogs"+tt.query, s.token(tt.roles...), "")

			s.Equal(tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				s.JSONEq(tt.wantBody, rec.Body.String())
			}
		})
	}
}

func (s *HandlerPublicTestSuite) TestHealthStatus() {
	rec := s.do(http.MethodGet, "/health/status", s.token(rbac.RoleObserver), "")

	s.Equal(http.StatusOK, rec.Code)
	var resp health.StatusResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("ok", resp.Status)
	s.Equal(6, resp.State.Roles)
}

func TestHandlerPublicTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerPublicTestSuite))
}

