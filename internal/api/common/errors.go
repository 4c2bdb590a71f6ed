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

// Package common holds the response helpers shared by the API handlers.
package common

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/philband/mender-gui/internal/rbac"
	"github.com/philband/mender-gui/internal/useradm"
	"github.com/philband/mender-gui/internal/usermgmt"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSONError writes msg with the given status.
func JSONError(
	c echo.Context,
	status int,
	msg string,
) error {
	return c.JSON(status, ErrorResponse{Error: msg})
}

// StatusFor maps an orchestration error to an HTTP status. Rejected role
// data is the caller's fault; a missing object on the management server is
// passed through; everything else is a backend failure.
func StatusFor(
	err error,
) int {
	if errors.Is(err, rbac.ErrUnknownPermission) || errors.Is(err, usermgmt.ErrRoleNotEditable) {
		return http.StatusBadRequest
	}

	var apiErr *useradm.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return http.StatusNotFound
	}

	return http.StatusBadGateway
}

// BackendError writes err with the status StatusFor picks.
func BackendError(
	c echo.Context,
	err error,
) error {
	return JSONError(c, StatusFor(err), err.Error())
}
