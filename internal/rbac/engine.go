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

package rbac

// Engine runs every permission computation against one catalog. It holds
// no mutable state and is safe for concurrent use.
type Engine struct {
	catalog *Catalog
}

// New creates an Engine for the given catalog. A nil catalog selects
// DefaultCatalog.
func New(
	catalog *Catalog,
) *Engine {
	if catalog == nil {
		catalog = DefaultCatalog()
	}

	return &Engine{catalog: catalog}
}

// Catalog returns the catalog the engine was built with.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// NormalizePermissionSet computes the UI permissions a server permission set
// grants. Sets whose name backs no catalog definition but which carry custom
// permissions are returned without a Result and flagged custom; they are
// resolved through their custom permissions when a role references them.
func (e *Engine) NormalizePermissionSet(
	set PermissionSet,
) PermissionSet {
	out := set.Clone()
	out.Result = nil
	out.IsCustom = false

	result := e.catalog.EmptyUIPermissions()
	backed := false
	for _, d := range e.catalog.Definitions {
		for area, name := range d.PermissionSets {
			if area == AreaGroups || name != out.Name {
				continue
			}
			result.Areas[area] = appendUnique(result.Areas[area], d.Value)
			backed = true
		}
	}

	groupScope := e.catalog.GroupScope()
	if out.supportsScope(groupScope) {
		if perm, ok := e.catalog.groupPermissionFor(out.Name); ok {
			result.Groups = map[string][]Permission{AllDevices: {perm}}
			backed = true
		}
	}

	if !backed && len(out.Permissions) > 0 {
		out.IsCustom = true
		return out
	}

	out.Result = &result

	return out
}

// NormalizePermissionSets folds a server list into a copy of the cached
// permission sets keyed by name. Later entries replace earlier ones.
func (e *Engine) NormalizePermissionSets(
	sets []PermissionSet,
	existing map[string]PermissionSet,
) map[string]PermissionSet {
	out := make(map[string]PermissionSet, len(existing)+len(sets))
	for name, set := range existing {
		out[name] = set.Clone()
	}

	for _, set := range sets {
		merged := set
		if cached, ok := out[set.Name]; ok && merged.Description == "" {
			merged.Description = cached.Description
		}
		out[set.Name] = e.NormalizePermissionSet(merged)
	}

	return out
}
