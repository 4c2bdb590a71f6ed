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

package rbac_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/philband/mender-gui/internal/rbac"
)

type CustomPublicTestSuite struct {
	suite.Suite

	engine *rbac.Engine
}

func (s *CustomPublicTestSuite) SetupTest() {
	s.engine = rbac.New(nil)
}

func (s *CustomPublicTestSuite) TestParseAction() {
	tests := []struct {
		name     string
		action   string
		expected rbac.ActionKind
	}{
		{name: "http", action: "http", expected: rbac.ActionHTTP},
		{name: "any behaves like http", action: "any", expected: rbac.ActionHTTP},
		{name: "create deployment", action: "CREATE_DEPLOYMENT", expected: rbac.ActionCreateDeployment},
		{name: "remote terminal", action: "REMOTE_TERMINAL", expected: rbac.ActionRemoteTerminal},
		{name: "view device", action: "VIEW_DEVICE", expected: rbac.ActionViewDevice},
		{name: "unknown", action: "SELF_DESTRUCT", expected: rbac.ActionUnknown},
		{name: "case sensitive", action: "view_device", expected: rbac.ActionUnknown},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, rbac.ParseAction(tc.action))
		})
	}
}

func (s *CustomPublicTestSuite) TestCustomPermissionGrants() {
	http := func(verb rbac.Verb, path string) rbac.CustomPermission {
		return rbac.CustomPermission{
			Action: "http",
			Object: rbac.PermissionObject{Type: verb, Value: path},
		}
	}
	group := func(action string, name string) rbac.CustomPermission {
		return rbac.CustomPermission{
			Action: action,
			Object: rbac.PermissionObject{Type: rbac.VerbDeviceGroup, Value: name},
		}
	}

	tests := []struct {
		name         string
		permission   rbac.CustomPermission
		validateFunc func(rbac.UIPermissions)
	}{
		{
			name:       "when http GET targets inventory devices",
			permission: http(rbac.VerbGet, "/api/management/v1/inventory/devices"),
			validateFunc: func(got rbac.UIPermissions) {
				s.Equal([]rbac.Permission{rbac.PermRead}, got.Get(rbac.AreaDevices))
				s.Empty(got.Get(rbac.AreaDeployments))
				s.Empty(got.Groups)
			},
		},
		{
			name:       "when http PUT targets a user",
			permission: http(rbac.VerbPut, "/api/management/v1/useradm/users/123"),
			validateFunc: func(got rbac.UIPermissions) {
				s.Equal([]rbac.Permission{rbac.PermManage}, got.Get(rbac.AreaUsers))
			},
		},
		{
			name:       "when http verb targets an endpoint with explicit permissions",
			permission: http(rbac.VerbPost, "/api/management/v1/deviceconnect/devices/1/connect"),
			validateFunc: func(got rbac.UIPermissions) {
				s.True(got.IsEmpty())
				s.Empty(got.Group(rbac.AllDevices))
			},
		},
		{
			name:       "when http GET targets an endpoint with explicit permissions",
			permission: http(rbac.VerbGet, "/api/management/v1/deviceconfig/configurations/device/1"),
			validateFunc: func(got rbac.UIPermissions) {
				s.True(got.IsEmpty())
			},
		},
		{
			name:       "when any verb targets an endpoint with explicit permissions",
			permission: http(rbac.VerbAny, "/api/management/v1/deviceconnect/devices/1/connect"),
			validateFunc: func(got rbac.UIPermissions) {
				s.Equal([]rbac.Permission{rbac.PermConnect}, got.Group(rbac.AllDevices))
				s.Empty(got.Get(rbac.AreaDevices))
			},
		},
		{
			name:       "when http verb is not allowed on the endpoint",
			permission: http(rbac.VerbPatch, "/api/management/v1/useradm/users"),
			validateFunc: func(got rbac.UIPermissions) {
				s.True(got.IsEmpty())
			},
		},
		{
			name:       "when http path is outside the api root",
			permission: http(rbac.VerbGet, "/somewhere/else"),
			validateFunc: func(got rbac.UIPermissions) {
				s.True(got.IsEmpty())
			},
		},
		{
			name:       "when http targets any path with any verb",
			permission: http(rbac.VerbAny, "any"),
			validateFunc: func(got rbac.UIPermissions) {
				s.Equal([]rbac.Permission{rbac.PermRead}, got.Get(rbac.AreaAuditlog))
				s.ElementsMatch(
					[]rbac.Permission{rbac.PermRead, rbac.PermManage},
					got.Get(rbac.AreaUsers),
				)
				s.ElementsMatch(
					[]rbac.Permission{rbac.PermRead, rbac.PermUpload, rbac.PermManage},
					got.Get(rbac.AreaReleases),
				)
				s.ElementsMatch(
					[]rbac.Permission{
						rbac.PermRead,
						rbac.PermDeploy,
						rbac.PermConnect,
						rbac.PermConfigure,
						rbac.PermManage,
					},
					got.Group(rbac.AllDevices),
				)
			},
		},
		{
			name:       "when action is any it is treated as http",
			permission: rbac.CustomPermission{Action: "any", Object: rbac.PermissionObject{Type: rbac.VerbGet, Value: "/api/management/v1/auditlogs/logs"}},
			validateFunc: func(got rbac.UIPermissions) {
				s.Equal([]rbac.Permission{rbac.PermRead}, got.Get(rbac.AreaAuditlog))
			},
		},
		{
			name:       "when creating deployments on a group",
			permission: group("CREATE_DEPLOYMENT", "g1"),
			validateFunc: func(got rbac.UIPermissions) {
				s.Equal([]rbac.Permission{rbac.PermDeploy}, got.Get(rbac.AreaDeployments))
				s.Equal([]rbac.Permission{rbac.PermDeploy}, got.Group("g1"))
			},
		},
		{
			name: "when creating deployments on a non group object",
			permission: rbac.CustomPermission{
				Action: "CREATE_DEPLOYMENT",
				Object: rbac.PermissionObject{Type: rbac.VerbGet, Value: "g1"},
			},
			validateFunc: func(got rbac.UIPermissions) {
				s.True(got.IsEmpty())
			},
		},
		{
			name:       "when opening remote terminals on a group",
			permission: group("REMOTE_TERMINAL", "g2"),
			validateFunc: func(got rbac.UIPermissions) {
				s.Equal([]rbac.Permission{rbac.PermConnect}, got.Group("g2"))
			},
		},
		{
			name:       "when viewing devices of a group",
			permission: group("VIEW_DEVICE", "g3"),
			validateFunc: func(got rbac.UIPermissions) {
				s.Equal([]rbac.Permission{rbac.PermRead}, got.Group("g3"))
				s.Empty(got.Get(rbac.AreaDevices))
			},
		},
		{
			name:       "when action is unknown grants nothing",
			permission: group("SELF_DESTRUCT", "g1"),
			validateFunc: func(got rbac.UIPermissions) {
				s.True(got.IsEmpty())
			},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			tc.validateFunc(s.engine.CustomPermissionGrants(tc.permission))
		})
	}
}

func TestCustomPublicTestSuite(t *testing.T) {
	suite.Run(t, new(CustomPublicTestSuite))
}
