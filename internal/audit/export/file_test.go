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

package export

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/philband/mender-gui/internal/useradm"
)

type FileInternalTestSuite struct {
	suite.Suite
}

func (s *FileInternalTestSuite) TestWriteErrors() {
	entry := useradm.AuditLog{
		Action: "delete",
		Actor:  useradm.AuditLogActor{ID: "u1", Type: "user", Email: "user@example.com"},
		Object: useradm.AuditLogObject{ID: "r1", Type: "user"},
		Time:   time.Date(2026, 2, 21, 10, 30, 0, 0, time.UTC),
	}
	data, err := json.Marshal(entry)
	s.Require().NoError(err)

	tests := []struct {
		name        string
		bufSize     int
		expectedErr string
	}{
		{
			// the buffer fills exactly, so WriteByte flushes into the failing writer
			name:        "when newline triggers a failed flush",
			bufSize:     len(data),
			expectedErr: "writing newline",
		},
		{
			name:        "when entry overflows the buffer",
			bufSize:     16,
			expectedErr: "writing entry",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			e := &FileExporter{
				writer: bufio.NewWriterSize(&internalFailWriter{}, tt.bufSize),
			}

			err := e.Write(context.Background(), entry)

			s.Error(err)
			s.Contains(err.Error(), tt.expectedErr)
		})
	}
}

func (s *FileInternalTestSuite) TestCloseFlushError() {
	e := &FileExporter{
		writer: bufio.NewWriterSize(&internalFailWriter{}, 64),
	}
	_, _ = e.writer.WriteString("pending")

	err := e.Close(context.Background())

	s.Error(err)
	s.Contains(err.Error(), "flushing writer")
}

func TestFileInternalTestSuite(t *testing.T) {
	suite.Run(t, new(FileInternalTestSuite))
}

// internalFailWriter always returns an error on Write.
type internalFailWriter struct{}

func (w *internalFailWriter) Write(_ []byte) (int, error) {
	return 0, fmt.Errorf("write failed")
}
