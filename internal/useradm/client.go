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

package useradm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/philband/mender-gui/internal/telemetry"
)

const (
	rolesPath          = "/api/management/v2/useradm/roles"
	permissionSetsPath = "/api/management/v2/useradm/permission_sets"
	usersPath          = "/api/management/v1/useradm/users"
	auditLogsPath      = "/api/management/v1/auditlogs/logs"

	defaultTimeout = 10 * time.Second
	defaultPerPage = 500

	// RequestIDHeader carries the per-request correlation id.
	RequestIDHeader  = "X-Request-ID"
	totalCountHeader = "X-Total-Count"
)

// ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the management API over HTTP.
type Client struct {
	logger         *slog.Logger
	rest           *resty.Client
	perPage        int
	onUnauthorized func()
}

// Options configures the client.
type Options struct {
	// URL of the management API, e.g. https://hosted.mender.io (required)
	URL string
	// Token is the bearer token sent with every request.
	Token string
	// Timeout per request (default: 10s)
	Timeout time.Duration
	// PerPage for list requests (default: 500)
	PerPage int
	// OnUnauthorized is invoked whenever the server answers 401.
	OnUnauthorized func()
	// HTTPClient replaces the default HTTP client.
	HTTPClient *http.Client
}

// New creates a new management API client.
func New(
	logger *slog.Logger,
	opts *Options,
) (*Client, error) {
	if opts == nil {
		return nil, fmt.Errorf("options cannot be nil")
	}
	if opts.URL == "" {
		return nil, fmt.Errorf("management URL cannot be empty")
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	perPage := opts.PerPage
	if perPage == 0 {
		perPage = defaultPerPage
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}

	rest := resty.NewWithClient(hc).
		SetBaseURL(opts.URL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")
	if opts.Token != "" {
		rest.SetAuthToken(opts.Token)
	}

	c := &Client{
		logger:         logger,
		rest:           rest,
		perPage:        perPage,
		onUnauthorized: opts.OnUnauthorized,
	}
	rest.OnBeforeRequest(c.beforeRequest)

	return c, nil
}

// beforeRequest stamps a request id and the caller's trace context. The id
// of the console request being served is reused when present.
func (c *Client) beforeRequest(
	_ *resty.Client,
	req *resty.Request,
) error {
	if req.Header.Get(RequestIDHeader) == "" {
		id, ok := telemetry.RequestIDFromContext(req.Context())
		if !ok {
			id = uuid.New().String()
		}
		req.SetHeader(RequestIDHeader, id)
	}
	telemetry.InjectTraceContextToHeader(req.Context(), req.Header)

	return nil
}

func (c *Client) request(
	ctx context.Context,
) *resty.Request {
	return c.rest.R().SetContext(ctx)
}

// check converts transport failures and non-2xx responses into errors.
func (c *Client) check(
	action string,
	resp *resty.Response,
	err error,
) error {
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}

	c.logger.Debug(
		"management api response",
		slog.String("method", resp.Request.Method),
		slog.String("url", resp.Request.URL),
		slog.Int("status", resp.StatusCode()),
		slog.Duration("duration", resp.Time()),
		slog.String("request_id", resp.Request.Header.Get(RequestIDHeader)),
	)

	if resp.IsSuccess() {
		return nil
	}

	apiErr := &APIError{
		StatusCode: resp.StatusCode(),
		RequestID:  resp.Request.Header.Get(RequestIDHeader),
	}
	var body errorBody
	if json.Unmarshal(resp.Body(), &body) == nil {
		apiErr.Message = body.Error
		if body.RequestID != "" {
			apiErr.RequestID = body.RequestID
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(apiErr.StatusCode)
	}

	if apiErr.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}

	return fmt.Errorf("%s: %w", action, apiErr)
}

// decode unmarshals a successful response body into out.
func decode(
	action string,
	resp *resty.Response,
	out any,
) error {
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%s: decoding response: %w", action, err)
	}

	return nil
}
