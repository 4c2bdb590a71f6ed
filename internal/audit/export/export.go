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

// Package export writes the management server's audit logs to a local
// destination, one page at a time.
package export

import (
	"context"
	"fmt"
	"log/slog"
)

// ProgressFunc is called after each page with the running exported count and total.
type ProgressFunc func(exported int, total int)

// Run pages through audit logs and writes each entry to the exporter. It
// stops once the server's total is reached or a page comes back empty.
func Run(
	ctx context.Context,
	logger *slog.Logger,
	fetcher Fetcher,
	exporter Exporter,
	perPage int,
	onProgress ProgressFunc,
) (*Result, error) {
	if perPage <= 0 {
		return nil, fmt.Errorf("per page must be positive, got %d", perPage)
	}

	if err := exporter.Open(ctx); err != nil {
		return nil, fmt.Errorf("opening exporter: %w", err)
	}

	defer func() {
		if closeErr := exporter.Close(ctx); closeErr != nil {
			logger.Error("closing exporter", slog.String("error", closeErr.Error()))
		}
	}()

	result := &Result{}

	for page := 1; ; page++ {
		entries, total, err := fetcher(ctx, page, perPage)
		if err != nil {
			return result, fmt.Errorf("fetching page %d: %w", page, err)
		}

		result.TotalEntries = total

		for _, entry := range entries {
			if err := exporter.Write(ctx, entry); err != nil {
				return result, fmt.Errorf("writing entry: %w", err)
			}
			result.ExportedEntries++
		}

		if onProgress != nil {
			onProgress(result.ExportedEntries, total)
		}

		logger.Debug(
			"exported audit log page",
			slog.Int("page", page),
			slog.Int("entries", len(entries)),
			slog.Int("total", total),
		)

		if result.ExportedEntries >= total || len(entries) == 0 {
			break
		}
	}

	return result, nil
}
