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

package usermgmt

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// refreshTimeout bounds one scheduled refresh.
const refreshTimeout = 30 * time.Second

// RoleLoader reloads roles and permission sets.
type RoleLoader interface {
	GetRoles(ctx context.Context) error
}

// Refresher reloads roles and permission sets on a cron schedule. It
// satisfies cli.Lifecycle so it can run next to the API server.
type Refresher struct {
	logger *slog.Logger
	loader RoleLoader
	cron   *cron.Cron
}

// NewRefresher schedules loader.GetRoles according to spec, e.g. "@every 5m"
// or a standard five-field cron expression. Overlapping runs are skipped.
func NewRefresher(
	logger *slog.Logger,
	loader RoleLoader,
	spec string,
) (*Refresher, error) {
	r := &Refresher{
		logger: logger,
		loader: loader,
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}

	if _, err := r.cron.AddJob(spec, r); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}

	return r, nil
}

// Run performs a single refresh.
func (r *Refresher) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if err := r.loader.GetRoles(ctx); err != nil {
		r.logger.Warn("scheduled role refresh failed", slog.String("error", err.Error()))
		return
	}

	r.logger.Debug("scheduled role refresh complete")
}

// Start starts the scheduler without blocking.
func (r *Refresher) Start() {
	r.cron.Start()
	r.logger.Info("role refresh scheduled", slog.Int("entries", len(r.cron.Entries())))
}

// Stop stops the scheduler and waits for a running refresh, or until ctx
// is done.
func (r *Refresher) Stop(
	ctx context.Context,
) {
	done := r.cron.Stop()

	select {
	case <-done.Done():
	case <-ctx.Done():
		r.logger.Warn("role refresh did not finish before shutdown")
	}
}
