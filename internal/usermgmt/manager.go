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

// Package usermgmt keeps the console's role, permission-set and user state
// in step with the management API and answers effective-permission queries.
package usermgmt

import (
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/philband/mender-gui/internal/rbac"
	"github.com/philband/mender-gui/internal/store"
	"github.com/philband/mender-gui/internal/telemetry"
	"github.com/philband/mender-gui/internal/useradm"
)

// ErrRoleNotEditable is returned when a built-in or custom role is edited or
// removed.
var ErrRoleNotEditable = errors.New("role is not editable")

// Manager runs the role and user actions against the management API and
// mirrors the results into a Store.
type Manager struct {
	logger  *slog.Logger
	api     useradm.API
	engine  *rbac.Engine
	state   *store.Store
	tracer  trace.Tracer
	refresh metric.Int64Counter
}

// New creates a Manager. The refresh counter is registered on the global
// meter provider.
func New(
	logger *slog.Logger,
	api useradm.API,
	engine *rbac.Engine,
	state *store.Store,
) (*Manager, error) {
	if api == nil {
		return nil, fmt.Errorf("api cannot be nil")
	}
	if engine == nil {
		return nil, fmt.Errorf("engine cannot be nil")
	}
	if state == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}

	counter, err := otel.Meter(telemetry.InstrumentationName).Int64Counter(
		"console.rbac.refresh",
		metric.WithDescription("Role and permission-set refreshes by result."),
	)
	if err != nil {
		return nil, fmt.Errorf("creating refresh counter: %w", err)
	}

	return &Manager{
		logger:  logger,
		api:     api,
		engine:  engine,
		state:   state,
		tracer:  otel.Tracer(telemetry.InstrumentationName),
		refresh: counter,
	}, nil
}

// Engine returns the permission engine the manager normalizes with.
func (m *Manager) Engine() *rbac.Engine {
	return m.engine
}

// Store returns the state the manager writes to.
func (m *Manager) Store() *store.Store {
	return m.state
}
