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
	"fmt"
	"regexp"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	APIRoot     string       `yaml:"api_root"`
	Definitions []Definition `yaml:"definitions"`
	Areas       []struct {
		Area      Area      `yaml:"area"`
		Scope     ScopeType `yaml:"scope"`
		Endpoints []struct {
			Path          string       `yaml:"path"`
			Verbs         []Verb       `yaml:"verbs"`
			UIPermissions []Permission `yaml:"ui_permissions"`
		} `yaml:"endpoints"`
	} `yaml:"areas"`
}

// LoadCatalog reads a YAML catalog from path. Definitions and areas replace
// the defaults; built-in roles are always the default ones.
func LoadCatalog(
	fs afero.Fs,
	path string,
) (*Catalog, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var raw catalogFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}

	c := &Catalog{
		APIRoot:      raw.APIRoot,
		Definitions:  raw.Definitions,
		BuiltinRoles: defaultBuiltinRoles(),
	}
	if c.APIRoot == "" {
		c.APIRoot = DefaultAPIRoot
	}

	declared := make(map[Area]struct{}, len(raw.Areas))
	for _, a := range raw.Areas {
		area := AreaDefinition{Area: a.Area, Scope: a.Scope}
		for _, e := range a.Endpoints {
			re, err := regexp.Compile(e.Path)
			if err != nil {
				return nil, fmt.Errorf("area %s: invalid endpoint path %q: %w", a.Area, e.Path, err)
			}
			area.Endpoints = append(area.Endpoints, Endpoint{
				Path:          re,
				Verbs:         e.Verbs,
				UIPermissions: e.UIPermissions,
			})
		}
		declared[a.Area] = struct{}{}
		c.Areas = append(c.Areas, area)
	}

	if err := c.validate(declared); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Catalog) validate(
	declared map[Area]struct{},
) error {
	if len(c.Definitions) == 0 {
		return fmt.Errorf("catalog has no definitions")
	}

	for _, d := range c.Definitions {
		if d.Value == "" {
			return fmt.Errorf("catalog definition without value")
		}
		for area := range d.PermissionSets {
			if _, ok := declared[area]; !ok {
				return fmt.Errorf("definition %s references unknown area %s", d.Value, area)
			}
		}
	}

	for _, a := range c.Areas {
		for _, e := range a.Endpoints {
			for _, p := range e.UIPermissions {
				if _, ok := c.Definition(p); !ok {
					return fmt.Errorf("area %s: endpoint %s references %w %q", a.Area, e.Path, ErrUnknownPermission, p)
				}
			}
		}
	}

	return nil
}
