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

type EnginePublicTestSuite struct {
	suite.Suite

	engine *rbac.Engine
}

func (s *EnginePublicTestSuite) SetupTest() {
	s.engine = rbac.New(nil)
}

func (s *EnginePublicTestSuite) TestNew() {
	s.Equal(rbac.DefaultAPIRoot, s.engine.Catalog().APIRoot)

	custom := &rbac.Catalog{APIRoot: "/api/other"}
	s.Same(custom, rbac.New(custom).Catalog())
}

func (s *EnginePublicTestSuite) TestNormalizePermissionSet() {
	tests := []struct {
		name         string
		set          rbac.PermissionSet
		validateFunc func(rbac.PermissionSet)
	}{
		{
			name: "when set backs an area permission",
			set:  rbac.PermissionSet{Name: "ReadDevices"},
			validateFunc: func(got rbac.PermissionSet) {
				s.Require().NotNil(got.Result)
				s.False(got.IsCustom)
				s.Equal([]rbac.Permission{rbac.PermRead}, got.Result.Get(rbac.AreaDevices))
				s.Empty(got.Result.Get(rbac.AreaUsers))
				s.Empty(got.Result.Groups)
			},
		},
		{
			name: "when set supports group scope grants on all devices",
			set: rbac.PermissionSet{
				Name:                "ReadDevices",
				SupportedScopeTypes: []rbac.ScopeType{rbac.ScopeDeviceGroups},
			},
			validateFunc: func(got rbac.PermissionSet) {
				s.Require().NotNil(got.Result)
				s.Equal(
					map[string][]rbac.Permission{rbac.AllDevices: {rbac.PermRead}},
					got.Result.Groups,
				)
				s.Equal([]rbac.Permission{rbac.PermRead}, got.Result.Get(rbac.AreaDevices))
			},
		},
		{
			name: "when set backs only a group permission",
			set: rbac.PermissionSet{
				Name:                "ConnectToDevices",
				SupportedScopeTypes: []rbac.ScopeType{rbac.ScopeDeviceGroups},
			},
			validateFunc: func(got rbac.PermissionSet) {
				s.Require().NotNil(got.Result)
				s.Equal([]rbac.Permission{rbac.PermConnect}, got.Result.Group(rbac.AllDevices))
				s.Empty(got.Result.Get(rbac.AreaDevices))
			},
		},
		{
			name: "when set backs permissions in several areas",
			set:  rbac.PermissionSet{Name: "ManageDevices"},
			validateFunc: func(got rbac.PermissionSet) {
				s.Require().NotNil(got.Result)
				s.Equal([]rbac.Permission{rbac.PermManage}, got.Result.Get(rbac.AreaDevices))
				s.Empty(got.Result.Get(rbac.AreaReleases))
			},
		},
		{
			name: "when set is unknown and has no custom permissions",
			set:  rbac.PermissionSet{Name: "FutureSet"},
			validateFunc: func(got rbac.PermissionSet) {
				s.Require().NotNil(got.Result)
				s.True(got.Result.IsEmpty())
				s.False(got.IsCustom)
			},
		},
		{
			name: "when set is defined by custom permissions",
			set: rbac.PermissionSet{
				Name: "CustomSet",
				Permissions: []rbac.CustomPermission{
					{
						Action: "VIEW_DEVICE",
						Object: rbac.PermissionObject{Type: rbac.VerbDeviceGroup, Value: "g1"},
					},
				},
			},
			validateFunc: func(got rbac.PermissionSet) {
				s.Nil(got.Result)
				s.True(got.IsCustom)
				s.Len(got.Permissions, 1)
			},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			tc.validateFunc(s.engine.NormalizePermissionSet(tc.set))
		})
	}
}

func (s *EnginePublicTestSuite) TestNormalizePermissionSets() {
	existing := map[string]rbac.PermissionSet{
		"ReadDevices": {Name: "ReadDevices", Description: "cached description"},
		"Stale":       {Name: "Stale", Description: "kept"},
	}

	got := s.engine.NormalizePermissionSets(
		[]rbac.PermissionSet{
			{Name: "ReadDevices"},
			{Name: "ManageUsers", Description: "from server"},
		},
		existing,
	)

	s.Len(got, 3)
	s.Equal("cached description", got["ReadDevices"].Description)
	s.Equal("from server", got["ManageUsers"].Description)
	s.Equal("kept", got["Stale"].Description)
	s.Require().NotNil(got["ManageUsers"].Result)
	s.Equal([]rbac.Permission{rbac.PermManage}, got["ManageUsers"].Result.Get(rbac.AreaUsers))
	s.Nil(existing["ReadDevices"].Result)
}

func TestEnginePublicTestSuite(t *testing.T) {
	suite.Run(t, new(EnginePublicTestSuite))
}
