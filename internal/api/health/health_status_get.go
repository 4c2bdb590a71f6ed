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
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// GetHealthStatus returns per-component health with state counts.
func (h *Health) GetHealthStatus(
	c echo.Context,
) error {
	ctx := c.Request().Context()

	component := ComponentHealth{Status: "ok"}
	overall := "ok"
	if err := h.Checker.CheckHealth(ctx); err != nil {
		errMsg := err.Error()
		component = ComponentHealth{Status: "error", Error: &errMsg}
		overall = "degraded"
	}

	resp := StatusResponse{
		Status:     overall,
		Version:    h.Version,
		Uptime:     time.Since(h.StartTime).Round(time.Second).String(),
		Components: map[string]ComponentHealth{"roles": component},
	}

	if h.Metrics != nil {
		state, err := h.Metrics.GetStateInfo(ctx)
		if err != nil {
			h.logger.Warn("failed to get state info for status", slog.String("error", err.Error()))
		} else {
			resp.State = state
		}
	}

	if overall != "ok" {
		return c.JSON(http.StatusServiceUnavailable, resp)
	}

	return c.JSON(http.StatusOK, resp)
}
