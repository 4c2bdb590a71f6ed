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

type CapabilitiesPublicTestSuite struct {
	suite.Suite
}

func (s *CapabilitiesPublicTestSuite) TestDeriveCapabilities() {
	catalog := rbac.DefaultCatalog()

	tests := []struct {
		name     string
		perms    func() rbac.UIPermissions
		expected rbac.Capabilities
	}{
		{
			name:     "when nothing is granted",
			perms:    catalog.EmptyUIPermissions,
			expected: rbac.Capabilities{},
		},
		{
			name: "when role is the observer",
			perms: func() rbac.UIPermissions {
				role, _ := catalog.BuiltinRole(rbac.RoleObserver)
				return role.UIPermissions
			},
			expected: rbac.Capabilities{
				CanReadDeployments: true,
				CanReadDevices:     true,
				CanReadReleases:    true,
			},
		},
		{
			name: "when role permits everything",
			perms: func() rbac.UIPermissions {
				role, _ := catalog.BuiltinRole(rbac.RolePermitAll)
				return role.UIPermissions
			},
			expected: rbac.Capabilities{
				CanAuditlog:        true,
				CanConfigure:       true,
				CanDeploy:          true,
				CanManageDevices:   true,
				CanManageReleases:  true,
				CanManageUsers:     true,
				CanReadDeployments: true,
				CanReadDevices:     true,
				CanReadReleases:    true,
				CanReadUsers:       true,
				CanTroubleshoot:    true,
				CanUploadReleases:  true,
				CanWriteDevices:    true,
			},
		},
		{
			name: "when grants exist only on a single group",
			perms: func() rbac.UIPermissions {
				return rbac.UIPermissions{
					Groups: map[string][]rbac.Permission{
						"g1": {rbac.PermRead, rbac.PermConnect, rbac.PermManage},
					},
				}
			},
			expected: rbac.Capabilities{
				CanReadDevices:  true,
				CanTroubleshoot: true,
				CanWriteDevices: true,
			},
		},
		{
			name: "when releases can be managed upload is implied",
			perms: func() rbac.UIPermissions {
				return rbac.UIPermissions{
					Areas: map[rbac.Area][]rbac.Permission{
						rbac.AreaReleases: {rbac.PermManage},
					},
				}
			},
			expected: rbac.Capabilities{
				CanManageReleases: true,
				CanUploadReleases: true,
			},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, rbac.DeriveCapabilities(tc.perms()))
		})
	}
}

func TestCapabilitiesPublicTestSuite(t *testing.T) {
	suite.Run(t, new(CapabilitiesPublicTestSuite))
}
