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

package validation

import (
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/philband/mender-gui/internal/rbac"
)

var (
	catalogMu sync.RWMutex
	catalog   = rbac.DefaultCatalog()
)

func init() {
	// Cannot error: tags are non-empty and functions are non-nil.
	_ = instance.RegisterValidation("ui_area", validArea)
	_ = instance.RegisterValidation("ui_permission", validPermission)
}

// RegisterCatalog sets the permission catalog used by the ui_area and
// ui_permission validators. Call this at startup once the catalog file, if
// any, has been loaded.
func RegisterCatalog(
	c *rbac.Catalog,
) {
	if c == nil {
		c = rbac.DefaultCatalog()
	}

	catalogMu.Lock()
	defer catalogMu.Unlock()

	catalog = c
}

func currentCatalog() *rbac.Catalog {
	catalogMu.RLock()
	defer catalogMu.RUnlock()

	return catalog
}

// validArea checks the field names an area declared in the catalog.
func validArea(fl validator.FieldLevel) bool {
	area := rbac.Area(fl.Field().String())
	for _, known := range currentCatalog().AreaNames() {
		if known == area {
			return true
		}
	}

	return false
}

// validPermission checks the field names a catalog definition.
func validPermission(fl validator.FieldLevel) bool {
	_, ok := currentCatalog().Definition(rbac.Permission(fl.Field().String()))

	return ok
}
