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

// Package store holds the roles, permission sets and users mirrored from
// the management API.
package store

import (
	"sort"
	"sync"

	"github.com/philband/mender-gui/internal/rbac"
	"github.com/philband/mender-gui/internal/useradm"
)

// Store is the client-held state. Reads return deep copies; writes replace
// whole maps or single entries. Safe for concurrent use.
type Store struct {
	mu                 sync.RWMutex
	rolesByID          map[string]rbac.Role
	permissionSetsByID map[string]rbac.PermissionSet
	usersByID          map[string]useradm.User
}

// New creates a store seeded with the catalog's built-in roles.
func New(
	catalog *rbac.Catalog,
) *Store {
	roles := make(map[string]rbac.Role, len(catalog.BuiltinRoles))
	for name := range catalog.BuiltinRoles {
		role, _ := catalog.BuiltinRole(name)
		roles[name] = role
	}

	return &Store{
		rolesByID:          roles,
		permissionSetsByID: map[string]rbac.PermissionSet{},
		usersByID:          map[string]useradm.User{},
	}
}

// Roles returns a copy of every role keyed by name.
func (s *Store) Roles() map[string]rbac.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]rbac.Role, len(s.rolesByID))
	for name, role := range s.rolesByID {
		out[name] = role.Clone()
	}

	return out
}

// RoleList returns every role sorted by name.
func (s *Store) RoleList() []rbac.Role {
	roles := s.Roles()

	out := make([]rbac.Role, 0, len(roles))
	for _, role := range roles {
		out = append(out, role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

// Role returns a copy of a single role.
func (s *Store) Role(
	name string,
) (rbac.Role, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	role, ok := s.rolesByID[name]
	if !ok {
		return rbac.Role{}, false
	}

	return role.Clone(), true
}

// SetRoles replaces every role.
func (s *Store) SetRoles(
	roles map[string]rbac.Role,
) {
	next := make(map[string]rbac.Role, len(roles))
	for name, role := range roles {
		next[name] = role.Clone()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rolesByID = next
}

// PutRole adds or replaces a single role.
func (s *Store) PutRole(
	role rbac.Role,
) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rolesByID[role.Name] = role.Clone()
}

// DeleteRole removes a role.
func (s *Store) DeleteRole(
	name string,
) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.rolesByID, name)
}

// PermissionSets returns a copy of every permission set keyed by name.
func (s *Store) PermissionSets() map[string]rbac.PermissionSet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]rbac.PermissionSet, len(s.permissionSetsByID))
	for name, set := range s.permissionSetsByID {
		out[name] = set.Clone()
	}

	return out
}

// SetPermissionSets replaces every permission set.
func (s *Store) SetPermissionSets(
	sets map[string]rbac.PermissionSet,
) {
	next := make(map[string]rbac.PermissionSet, len(sets))
	for name, set := range sets {
		next[name] = set.Clone()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.permissionSetsByID = next
}

// Users returns a copy of every user keyed by id.
func (s *Store) Users() map[string]useradm.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]useradm.User, len(s.usersByID))
	for id, user := range s.usersByID {
		out[id] = user.Clone()
	}

	return out
}

// User returns a copy of a single user.
func (s *Store) User(
	id string,
) (useradm.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.usersByID[id]
	if !ok {
		return useradm.User{}, false
	}

	return user.Clone(), true
}

// SetUsers replaces every user.
func (s *Store) SetUsers(
	users []useradm.User,
) {
	next := make(map[string]useradm.User, len(users))
	for _, user := range users {
		next[user.ID] = user.Clone()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.usersByID = next
}

// PutUser adds or replaces a single user.
func (s *Store) PutUser(
	user useradm.User,
) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.usersByID[user.ID] = user.Clone()
}

// DeleteUser removes a user.
func (s *Store) DeleteUser(
	id string,
) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.usersByID, id)
}
