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

package store_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/philband/mender-gui/internal/rbac"
	"github.com/philband/mender-gui/internal/store"
	"github.com/philband/mender-gui/internal/useradm"
)

type StorePublicTestSuite struct {
	suite.Suite

	store *store.Store
}

func (s *StorePublicTestSuite) SetupTest() {
	s.store = store.New(rbac.DefaultCatalog())
}

func (s *StorePublicTestSuite) TestNewSeedsBuiltinRoles() {
	roles := s.store.Roles()

	s.Len(roles, 6)
	for _, name := range []string{
		rbac.RolePermitAll,
		rbac.RoleObserver,
		rbac.RoleUserManager,
		rbac.RoleCI,
		rbac.RoleDeploymentsManager,
		rbac.RoleReleasesManager,
	} {
		role, ok := roles[name]
		s.Require().True(ok, name)
		s.False(role.Editable)
	}
	s.Empty(s.store.PermissionSets())
	s.Empty(s.store.Users())
}

func (s *StorePublicTestSuite) TestReadsReturnCopies() {
	s.store.PutRole(rbac.Role{
		Name: "viewer",
		UIPermissions: rbac.UIPermissions{
			Areas: map[rbac.Area][]rbac.Permission{rbac.AreaDevices: {rbac.PermRead}},
		},
	})

	role, ok := s.store.Role("viewer")
	s.Require().True(ok)
	role.UIPermissions.Areas[rbac.AreaDevices][0] = rbac.PermManage

	roles := s.store.Roles()
	delete(roles, "viewer")

	again, ok := s.store.Role("viewer")
	s.Require().True(ok)
	s.Equal([]rbac.Permission{rbac.PermRead}, again.UIPermissions.Get(rbac.AreaDevices))
}

func (s *StorePublicTestSuite) TestRoles() {
	tests := []struct {
		name         string
		mutate       func()
		validateFunc func()
	}{
		{
			name: "when roles are replaced wholesale",
			mutate: func() {
				s.store.SetRoles(map[string]rbac.Role{"only": {Name: "only"}})
			},
			validateFunc: func() {
				s.Len(s.store.Roles(), 1)
				_, ok := s.store.Role(rbac.RoleCI)
				s.False(ok)
			},
		},
		{
			name: "when a role is deleted",
			mutate: func() {
				s.store.DeleteRole(rbac.RoleObserver)
			},
			validateFunc: func() {
				_, ok := s.store.Role(rbac.RoleObserver)
				s.False(ok)
				s.Len(s.store.Roles(), 5)
			},
		},
		{
			name: "when listing roles they are sorted",
			mutate: func() {
				s.store.SetRoles(map[string]rbac.Role{"b": {Name: "b"}, "a": {Name: "a"}})
			},
			validateFunc: func() {
				list := s.store.RoleList()
				s.Require().Len(list, 2)
				s.Equal("a", list[0].Name)
				s.Equal("b", list[1].Name)
			},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.SetupTest()
			tc.mutate()
			tc.validateFunc()
		})
	}
}

func (s *StorePublicTestSuite) TestPermissionSets() {
	result := rbac.NewUIPermissions(rbac.AreaDevices)
	sets := map[string]rbac.PermissionSet{
		"ReadDevices": {Name: "ReadDevices", Result: &result},
	}

	s.store.SetPermissionSets(sets)
	result.Areas[rbac.AreaDevices] = []rbac.Permission{rbac.PermManage}

	got := s.store.PermissionSets()
	s.Require().Contains(got, "ReadDevices")
	s.Empty(got["ReadDevices"].Result.Get(rbac.AreaDevices))
}

func (s *StorePublicTestSuite) TestUsers() {
	s.store.SetUsers([]useradm.User{
		{ID: "u1", Email: "a@example.com", Roles: []string{"viewer"}},
		{ID: "u2", Email: "b@example.com"},
	})
	s.Len(s.store.Users(), 2)

	user, ok := s.store.User("u1")
	s.Require().True(ok)
	user.Roles[0] = "changed"

	again, _ := s.store.User("u1")
	s.Equal([]string{"viewer"}, again.Roles)

	s.store.PutUser(useradm.User{ID: "u3"})
	s.store.DeleteUser("u2")

	users := s.store.Users()
	s.Len(users, 2)
	s.Contains(users, "u3")
	s.NotContains(users, "u2")

	_, ok = s.store.User("missing")
	s.False(ok)
}

func (s *StorePublicTestSuite) TestConcurrentAccess() {
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.store.PutRole(rbac.Role{Name: "r"})
			s.store.SetUsers([]useradm.User{{ID: "u"}})
		}()
		go func() {
			defer wg.Done()
			_ = s.store.Roles()
			_, _ = s.store.User("u")
		}()
	}
	wg.Wait()

	_, ok := s.store.Role("r")
	s.True(ok)
}

func TestStorePublicTestSuite(t *testing.T) {
	suite.Run(t, new(StorePublicTestSuite))
}
