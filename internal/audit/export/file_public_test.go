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

package export_test

import (
	"bufio"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"

	"github.com/philband/mender-gui/internal/audit/export"
	"github.com/philband/mender-gui/internal/useradm"
)

type FileExporterPublicTestSuite struct {
	suite.Suite

	ctx   context.Context
	appFs afero.Fs
}

func (suite *FileExporterPublicTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.appFs = afero.NewMemMapFs()
}

func (suite *FileExporterPublicTestSuite) readLines(
	path string,
) []string {
	data, err := afero.ReadFile(suite.appFs, path)
	suite.Require().NoError(err)

	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	return lines
}

func (suite *FileExporterPublicTestSuite) TestOpenWriteClose() {
	tests := []struct {
		name    string
		entries []useradm.AuditLog
	}{
		{
			name:    "when single entry writes valid JSONL",
			entries: []useradm.AuditLog{newLog("alice@example.com")},
		},
		{
			name: "when multiple entries writes one line each",
			entries: []useradm.AuditLog{
				newLog("alice@example.com"),
				newLog("bob@example.com"),
				newLog("charlie@example.com"),
			},
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			path := "/exports/" + tc.name + ".jsonl"
			sut := export.NewFileExporter(suite.appFs, path)

			suite.Require().NoError(sut.Open(suite.ctx))
			for _, entry := range tc.entries {
				suite.Require().NoError(sut.Write(suite.ctx, entry))
			}
			suite.Require().NoError(sut.Close(suite.ctx))

			lines := suite.readLines(path)
			suite.Require().Len(lines, len(tc.entries))
			for i, line := range lines {
				var got useradm.AuditLog
				suite.NoError(json.Unmarshal([]byte(line), &got))
				suite.Equal(tc.entries[i].Actor.Email, got.Actor.Email)
				suite.True(tc.entries[i].Time.Equal(got.Time))
			}
		})
	}
}

func (suite *FileExporterPublicTestSuite) TestOpen() {
	sut := export.NewFileExporter(afero.NewReadOnlyFs(suite.appFs), "/audit.jsonl")

	err := sut.Open(suite.ctx)

	suite.Error(err)
	suite.Contains(err.Error(), "opening export file")
}

func (suite *FileExporterPublicTestSuite) TestNotOpened() {
	sut := export.NewFileExporter(suite.appFs, "/audit.jsonl")

	err := sut.Write(suite.ctx, newLog("alice@example.com"))
	suite.EqualError(err, "exporter not opened")

	err = sut.Close(suite.ctx)
	suite.EqualError(err, "exporter not opened")
}

func TestFileExporterPublicTestSuite(t *testing.T) {
	suite.Run(t, new(FileExporterPublicTestSuite))
}
