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

package config

import (
	"time"
)

// Config represents the root structure of the YAML configuration file.
// This struct is used to unmarshal configuration data from Viper.
type Config struct {
	API        API        `mapstructure:"api"        mask:"struct"`
	Management Management `mapstructure:"management" mask:"struct"`
	RBAC       RBAC       `mapstructure:"rbac"`
	Telemetry  Telemetry  `mapstructure:"telemetry"`
	// Debug enable or disable debug option set from CLI.
	Debug bool `mapstructure:"debug"`
}

// Telemetry configuration settings.
type Telemetry struct {
	Tracing TracingConfig `mapstructure:"tracing,omitempty"`
	Metrics MetricsConfig `mapstructure:"metrics,omitempty"`
}

// MetricsConfig configuration settings for Prometheus metrics.
type MetricsConfig struct {
	// Path is the HTTP path for the Prometheus scrape endpoint.
	// Defaults to "/metrics" when empty.
	Path string `mapstructure:"path"`
}

// TracingConfig configuration settings for distributed tracing.
type TracingConfig struct {
	// Enabled enables or disables tracing.
	Enabled bool `mapstructure:"enabled"`
	// Exporter selects the trace exporter: "stdout" or "otlp".
	Exporter string `mapstructure:"exporter"      validate:"omitempty,oneof=none stdout otlp"`
	// OTLPEndpoint is the gRPC endpoint for the OTLP exporter (e.g., "localhost:4317").
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

// API configuration settings.
type API struct {
	Server `mask:"struct"`
}

// Server configuration settings for the console backend.
type Server struct {
	// Port the server will bind to.
	Port int `mapstructure:"port"     validate:"omitempty,min=1,max=65535"`
	// Security contains security-related configuration for the server, such as CORS and tokens.
	Security ServerSecurity `mapstructure:"security" mask:"struct"`
}

// ServerSecurity represents security-related settings for the server.
type ServerSecurity struct {
	// CORS Cross-Origin Resource Sharing (CORS) settings for the server.
	CORS CORS `mapstructure:"cors"`
	// SigningKey is the key used for signing or validating console session tokens.
	SigningKey string `mapstructure:"signing_key" validate:"required" mask:"password"`
}

// CORS represents the CORS (Cross-Origin Resource Sharing) settings.
type CORS struct {
	// List of origins allowed to access the server (e.g., "foo").
	AllowOrigins []string `mapstructure:"allow_origins,omitempty"`
}

// Management holds the connection to the fleet-management REST API.
type Management struct {
	// URL is the base URL of the management API, without the /api/management root.
	URL string `mapstructure:"url"      validate:"required,url"`
	// Token is the bearer token presented to the management API.
	Token string `mapstructure:"token"    validate:"required"      mask:"password"`
	// Timeout bounds every request. Defaults to 10s when zero.
	Timeout time.Duration `mapstructure:"timeout"`
	// PerPage is the page size used for list requests. Defaults to 500.
	PerPage int `mapstructure:"per_page" validate:"omitempty,min=1,max=500"`
}

// RBAC configuration settings.
type RBAC struct {
	// CatalogFile replaces the built-in permission catalog when set.
	CatalogFile string `mapstructure:"catalog_file"`
	// RefreshSchedule is a cron spec (e.g. "@every 5m") for refreshing roles
	// and permission sets while serving. Empty disables the refresh.
	RefreshSchedule string `mapstructure:"refresh_schedule"`
}
