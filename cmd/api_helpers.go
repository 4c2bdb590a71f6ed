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

package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/philband/mender-gui/internal/api"
	"github.com/philband/mender-gui/internal/api/auditlog"
	"github.com/philband/mender-gui/internal/api/health"
	"github.com/philband/mender-gui/internal/api/role"
	"github.com/philband/mender-gui/internal/api/user"
	"github.com/philband/mender-gui/internal/cli"
	"github.com/philband/mender-gui/internal/rbac"
	"github.com/philband/mender-gui/internal/store"
	"github.com/philband/mender-gui/internal/useradm"
	"github.com/philband/mender-gui/internal/usermgmt"
	"github.com/philband/mender-gui/internal/validation"
)

// ServerManager responsible for Server operations.
type ServerManager interface {
	cli.Lifecycle
	// GetHealthHandler returns health handler for registration.
	GetHealthHandler(
		checker health.Checker,
		startTime time.Time,
		version string,
		metrics health.MetricsProvider,
	) []func(e *echo.Echo)
	// GetMetricsHandler returns Prometheus metrics handler for registration.
	GetMetricsHandler(metricsHandler http.Handler, path string) []func(e *echo.Echo)
	// GetRoleHandler returns role and permission-set handlers for registration.
	GetRoleHandler(manager role.Manager) []func(e *echo.Echo)
	// GetUserHandler returns user handlers for registration.
	GetUserHandler(manager user.Manager) []func(e *echo.Echo)
	// GetAuditLogHandler returns audit log handler for registration.
	GetAuditLogHandler(fetcher auditlog.Fetcher) []func(e *echo.Echo)
	// RegisterHandlers registers a list of handlers with the Echo instance.
	RegisterHandlers(handlers []func(e *echo.Echo))
}

// loadCatalog returns the configured permission catalog, or the built-in
// one, and registers it with the validators.
func loadCatalog(
	log *slog.Logger,
) *rbac.Catalog {
	catalog := rbac.DefaultCatalog()

	if path := appConfig.RBAC.CatalogFile; path != "" {
		var err error
		catalog, err = rbac.LoadCatalog(appFs, path)
		if err != nil {
			cli.LogFatal(log, "failed to load permission catalog", err, "catalog_file", path)
		}
		log.Info("loaded permission catalog", slog.String("catalog_file", path))
	}

	validation.RegisterCatalog(catalog)

	return catalog
}

// newManagementClient creates the management API client from config.
func newManagementClient(
	log *slog.Logger,
) *useradm.Client {
	client, err := useradm.New(log, &useradm.Options{
		URL:     appConfig.Management.URL,
		Token:   appConfig.Management.Token,
		Timeout: appConfig.Management.Timeout,
		PerPage: appConfig.Management.PerPage,
		OnUnauthorized: func() {
			log.Warn("management API rejected the configured token")
		},
	})
	if err != nil {
		cli.LogFatal(log, "failed to create management client", err)
	}

	return client
}

// newUserManager wires the catalog, engine and store around api.
func newUserManager(
	log *slog.Logger,
	api useradm.API,
) *usermgmt.Manager {
	catalog := loadCatalog(log)

	manager, err := usermgmt.New(log, api, rbac.New(catalog), store.New(catalog))
	if err != nil {
		cli.LogFatal(log, "failed to create user manager", err)
	}

	return manager
}

// setupAPIServer builds the management client, loads the roles once, and
// returns the API server plus every component that must run beside it.
func setupAPIServer(
	ctx context.Context,
	log *slog.Logger,
	metricsHandler http.Handler,
	metricsPath string,
) []cli.Lifecycle {
	client := newManagementClient(log)
	manager := newUserManager(log, client)

	checker := &health.RefreshChecker{}
	if err := manager.GetRoles(ctx); err != nil {
		cli.LogFatal(log, "failed to load roles", err)
	}
	checker.MarkReady()

	var sm ServerManager = api.New(appConfig, log, api.WithPermissionResolver(manager))
	registerAPIHandlers(
		sm, manager, client, checker,
		&health.StoreMetrics{Store: manager.Store()},
		metricsHandler, metricsPath,
	)

	components := []cli.Lifecycle{sm}

	if spec := appConfig.RBAC.RefreshSchedule; spec != "" {
		refresher, err := usermgmt.NewRefresher(log.With("component", "refresh"), manager, spec)
		if err != nil {
			cli.LogFatal(log, "failed to schedule role refresh", err)
		}
		components = append(components, refresher)
	}

	return components
}

func registerAPIHandlers(
	sm ServerManager,
	manager *usermgmt.Manager,
	fetcher auditlog.Fetcher,
	checker health.Checker,
	metricsProvider health.MetricsProvider,
	metricsHandler http.Handler,
	metricsPath string,
) {
	startTime := time.Now()

	handlers := make([]func(e *echo.Echo), 0, 5)
	handlers = append(
		handlers,
		sm.GetHealthHandler(checker, startTime, buildVersion().GitVersion, metricsProvider)...)
	handlers = append(handlers, sm.GetMetricsHandler(metricsHandler, metricsPath)...)
	handlers = append(handlers, sm.GetRoleHandler(manager)...)
	handlers = append(handlers, sm.GetUserHandler(manager)...)
	handlers = append(handlers, sm.GetAuditLogHandler(fetcher)...)

	sm.RegisterHandlers(handlers)
}
