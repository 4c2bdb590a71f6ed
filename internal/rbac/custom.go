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
	"strings"
)

// ActionKind identifies how a custom permission is interpreted.
type ActionKind int

// Known custom permission actions. ActionUnknown keeps the handler forward
// compatible with actions added by the server.
const (
	ActionUnknown ActionKind = iota
	ActionHTTP
	ActionCreateDeployment
	ActionRemoteTerminal
	ActionViewDevice
)

// ParseAction maps a server action name to its kind.
func ParseAction(
	action string,
) ActionKind {
	switch action {
	case "http", "any":
		return ActionHTTP
	case "CREATE_DEPLOYMENT":
		return ActionCreateDeployment
	case "REMOTE_TERMINAL":
		return ActionRemoteTerminal
	case "VIEW_DEVICE":
		return ActionViewDevice
	default:
		return ActionUnknown
	}
}

// String returns the canonical server name of the action.
func (k ActionKind) String() string {
	switch k {
	case ActionHTTP:
		return "http"
	case ActionCreateDeployment:
		return "CREATE_DEPLOYMENT"
	case ActionRemoteTerminal:
		return "REMOTE_TERMINAL"
	case ActionViewDevice:
		return "VIEW_DEVICE"
	default:
		return "unknown"
	}
}

// normalization is the accumulator threaded through role normalization.
type normalization struct {
	isCustom      bool
	uiPermissions UIPermissions
}

// applyCustomPermission folds one custom permission into acc, returning a
// new accumulator.
func (e *Engine) applyCustomPermission(
	acc normalization,
	permission CustomPermission,
) normalization {
	return normalization{
		isCustom:      true,
		uiPermissions: Merge(acc.uiPermissions, e.CustomPermissionGrants(permission)),
	}
}

// CustomPermissionGrants returns the partial record a single custom
// permission grants. Unrecognized actions grant nothing.
func (e *Engine) CustomPermissionGrants(
	permission CustomPermission,
) UIPermissions {
	grants := e.catalog.EmptyUIPermissions()
	object := permission.Object

	switch ParseAction(permission.Action) {
	case ActionHTTP:
		return e.httpGrants(object)
	case ActionCreateDeployment:
		if object.Type == VerbDeviceGroup {
			grants.Areas[AreaDeployments] = []Permission{PermDeploy}
			grants.Groups[object.Value] = []Permission{PermDeploy}
		}
	case ActionRemoteTerminal:
		if object.Type == VerbDeviceGroup {
			grants.Groups[object.Value] = []Permission{PermConnect}
		}
	case ActionViewDevice:
		if object.Type == VerbDeviceGroup {
			grants.Groups[object.Value] = []Permission{PermRead}
		}
	case ActionUnknown:
	}

	return grants
}

// httpGrants matches an HTTP permission against every area's endpoints.
// object.Type carries the verb and object.Value the targeted path; "any"
// acts as a wildcard for either.
func (e *Engine) httpGrants(
	object PermissionObject,
) UIPermissions {
	grants := e.catalog.EmptyUIPermissions()
	anyPath := object.Value == string(VerbAny)
	if !anyPath && !strings.Contains(object.Value, e.catalog.APIRoot) {
		return grants
	}

	for _, area := range e.catalog.Areas {
		var matched []Endpoint
		for _, endpoint := range area.Endpoints {
			if !anyPath && !endpoint.Path.MatchString(object.Value) {
				continue
			}
			if object.Type != VerbAny && !containsVerb(endpoint.Verbs, object.Type) {
				continue
			}
			matched = append(matched, endpoint)
		}
		if len(matched) == 0 {
			continue
		}

		general := e.catalog.AreaPermissions(area.Area)
		var granted []Permission
		for _, endpoint := range matched {
			// An endpoint's own permissions only follow from a wildcard verb.
			if len(endpoint.UIPermissions) > 0 {
				if object.Type != VerbAny {
					continue
				}
				for _, d := range e.definitions(endpoint.UIPermissions) {
					granted = appendUnique(granted, d.Value)
				}
				continue
			}
			for _, d := range general {
				if object.Type == VerbAny || containsVerb(d.Verbs, object.Type) {
					granted = appendUnique(granted, d.Value)
				}
			}
		}
		if len(granted) == 0 {
			continue
		}

		if area.Area == AreaGroups {
			grants.Groups[AllDevices] = appendUnique(grants.Groups[AllDevices], granted...)
			continue
		}
		grants.Areas[area.Area] = appendUnique(grants.Areas[area.Area], granted...)
	}

	return grants
}

func (e *Engine) definitions(
	values []Permission,
) []Definition {
	out := make([]Definition, 0, len(values))
	for _, v := range values {
		if d, ok := e.catalog.Definition(v); ok {
			out = append(out, d)
		}
	}

	return out
}

func containsVerb(
	verbs []Verb,
	verb Verb,
) bool {
	for _, v := range verbs {
		if v == verb {
			return true
		}
	}

	return false
}
