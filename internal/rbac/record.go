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

import (
	"encoding/json"
	"fmt"
	"sort"
)

// UIPermissions maps every area to the UI permissions granted in it. The
// groups area is kept separately, keyed by device group name.
//
// The zero value is an empty record. Lists never contain duplicates.
type UIPermissions struct {
	Areas  map[Area][]Permission
	Groups map[string][]Permission
}

// NewUIPermissions returns an empty record with an empty list for each of
// the given areas.
func NewUIPermissions(
	areas ...Area,
) UIPermissions {
	p := UIPermissions{
		Areas:  make(map[Area][]Permission, len(areas)),
		Groups: map[string][]Permission{},
	}
	for _, area := range areas {
		if area == AreaGroups {
			continue
		}
		p.Areas[area] = []Permission{}
	}

	return p
}

// Get returns the permissions granted in a non-group area.
func (p UIPermissions) Get(
	area Area,
) []Permission {
	return p.Areas[area]
}

// Group returns the permissions granted on a device group.
func (p UIPermissions) Group(
	name string,
) []Permission {
	return p.Groups[name]
}

// Allows reports whether perm is granted in area. For the groups area any
// group, including the all devices sentinel, counts.
func (p UIPermissions) Allows(
	area Area,
	perm Permission,
) bool {
	if area == AreaGroups {
		for _, perms := range p.Groups {
			if containsPermission(perms, perm) {
				return true
			}
		}

		return false
	}

	return containsPermission(p.Areas[area], perm)
}

// IsEmpty reports whether the record grants nothing.
func (p UIPermissions) IsEmpty() bool {
	for _, perms := range p.Areas {
		if len(perms) > 0 {
			return false
		}
	}
	for _, perms := range p.Groups {
		if len(perms) > 0 {
			return false
		}
	}

	return true
}

// Clone returns a deep copy.
func (p UIPermissions) Clone() UIPermissions {
	out := UIPermissions{
		Areas:  make(map[Area][]Permission, len(p.Areas)),
		Groups: make(map[string][]Permission, len(p.Groups)),
	}
	for area, perms := range p.Areas {
		out.Areas[area] = append([]Permission{}, perms...)
	}
	for group, perms := range p.Groups {
		out.Groups[group] = append([]Permission{}, perms...)
	}

	return out
}

// Merge combines two records into a new one. Per area and per group the
// values of a come first, followed by the values of b not already present.
// Neither input is modified.
//
// Merge is associative and idempotent, and commutative when the results are
// compared as sets.
func Merge(
	a UIPermissions,
	b UIPermissions,
) UIPermissions {
	out := a.Clone()
	for area, perms := range b.Areas {
		out.Areas[area] = appendUnique(out.Areas[area], perms...)
	}
	out.Groups = mergeGroups(out.Groups, b.Groups)

	return out
}

// mergeGroups unions two group maps key by key. existing is modified and
// returned; additional is only read.
func mergeGroups(
	existing map[string][]Permission,
	additional map[string][]Permission,
) map[string][]Permission {
	if existing == nil {
		existing = make(map[string][]Permission, len(additional))
	}
	for group, perms := range additional {
		existing[group] = appendUnique(existing[group], perms...)
	}

	return existing
}

// Equal reports whether both records grant the same permissions, ignoring
// order and treating missing and empty lists alike.
func (p UIPermissions) Equal(
	other UIPermissions,
) bool {
	areas := map[Area]struct{}{}
	for area := range p.Areas {
		areas[area] = struct{}{}
	}
	for area := range other.Areas {
		areas[area] = struct{}{}
	}
	for area := range areas {
		if !samePermissions(p.Areas[area], other.Areas[area]) {
			return false
		}
	}

	groups := map[string]struct{}{}
	for group := range p.Groups {
		groups[group] = struct{}{}
	}
	for group := range other.Groups {
		groups[group] = struct{}{}
	}
	for group := range groups {
		if !samePermissions(p.Groups[group], other.Groups[group]) {
			return false
		}
	}

	return true
}

// MarshalJSON renders the record flat: one key per area plus "groups".
func (p UIPermissions) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Areas)+1)
	for area, perms := range p.Areas {
		if perms == nil {
			perms = []Permission{}
		}
		out[string(area)] = perms
	}
	groups := p.Groups
	if groups == nil {
		groups = map[string][]Permission{}
	}
	out[string(AreaGroups)] = groups

	return json.Marshal(out)
}

// UnmarshalJSON reads the flat representation produced by MarshalJSON.
func (p *UIPermissions) UnmarshalJSON(
	data []byte,
) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = UIPermissions{
		Areas:  make(map[Area][]Permission, len(raw)),
		Groups: map[string][]Permission{},
	}
	for key, value := range raw {
		if Area(key) == AreaGroups {
			if err := json.Unmarshal(value, &p.Groups); err != nil {
				return fmt.Errorf("decoding groups: %w", err)
			}
			if p.Groups == nil {
				p.Groups = map[string][]Permission{}
			}
			continue
		}

		var perms []Permission
		if err := json.Unmarshal(value, &perms); err != nil {
			return fmt.Errorf("decoding area %s: %w", key, err)
		}
		p.Areas[Area(key)] = appendUnique(nil, perms...)
	}

	return nil
}

// appendUnique appends the values not yet present in list. The result never
// aliases list's backing array.
func appendUnique(
	list []Permission,
	values ...Permission,
) []Permission {
	out := make([]Permission, 0, len(list)+len(values))
	out = append(out, list...)
	for _, v := range values {
		if !containsPermission(out, v) {
			out = append(out, v)
		}
	}

	return out
}

func containsPermission(
	list []Permission,
	value Permission,
) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}

	return false
}

func samePermissions(
	a []Permission,
	b []Permission,
) bool {
	sa := sortedUnique(a)
	sb := sortedUnique(b)
	if len(sa) != len(sb) {
		return false
	}
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}

	return true
}

func sortedUnique(
	list []Permission,
) []Permission {
	out := appendUnique(nil, list...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}
