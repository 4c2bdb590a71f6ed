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

package health

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/philband/mender-gui/internal/store"
)

// ErrNotRefreshed is reported until the first role refresh has run.
var ErrNotRefreshed = errors.New("roles have not been loaded yet")

// RefreshChecker is ready once the initial role refresh has completed.
type RefreshChecker struct {
	ready atomic.Bool
}

// MarkReady records that the initial refresh has run.
func (c *RefreshChecker) MarkReady() {
	c.ready.Store(true)
}

// CheckHealth returns ErrNotRefreshed until MarkReady is called.
func (c *RefreshChecker) CheckHealth(
	_ context.Context,
) error {
	if !c.ready.Load() {
		return ErrNotRefreshed
	}

	return nil
}

// StoreMetrics reads state counts from a store.
type StoreMetrics struct {
	Store *store.Store
}

// GetStateInfo counts the cached entries.
func (m *StoreMetrics) GetStateInfo(
	_ context.Context,
) (*StateMetrics, error) {
	if m.Store == nil {
		return nil, errors.New("store not configured")
	}

	return &StateMetrics{
		Roles:          len(m.Store.Roles()),
		PermissionSets: len(m.Store.PermissionSets()),
		Users:          len(m.Store.Users()),
	}, nil
}
