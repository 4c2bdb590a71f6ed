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

package usermgmt_test

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/philband/mender-gui/internal/rbac"
	"github.com/philband/mender-gui/internal/store"
	"github.com/philband/mender-gui/internal/useradm/mocks"
	"github.com/philband/mender-gui/internal/usermgmt"
)

type fakeLoader struct {
	calls atomic.Int32
	err   error
}

func (f *fakeLoader) GetRoles(_ context.Context) error {
	f.calls.Add(1)

	return f.err
}

type RefreshPublicTestSuite struct {
	suite.Suite
}

func (s *RefreshPublicTestSuite) TestNewRefresher() {
	tests := []struct {
		name        string
		spec        string
		expectedErr string
	}{
		{
			name: "when spec is a descriptor",
			spec: "@every 5m",
		},
		{
			name: "when spec is a cron expression",
			spec: "*/10 * * * *",
		},
		{
			name:        "when spec is invalid",
			spec:        "every now and then",
			expectedErr: `invalid refresh schedule "every now and then"`,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			r, err := usermgmt.NewRefresher(slog.Default(), &fakeLoader{}, tt.spec)

			if tt.expectedErr != "" {
				s.Require().Error(err)
				s.Contains(err.Error(), tt.expectedErr)
				s.Nil(r)
				return
			}

			s.Require().NoError(err)
			s.NotNil(r)
		})
	}
}

func (s *RefreshPublicTestSuite) TestRun() {
	tests := []struct {
		name string
		err  error
	}{
		{
			name: "when refresh succeeds",
		},
		{
			name: "when refresh fails",
			err:  errors.New("boom"),
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			loader := &fakeLoader{err: tt.err}
			r, err := usermgmt.NewRefresher(slog.Default(), loader, "@every 1h")
			s.Require().NoError(err)

			r.Run()

			s.Equal(int32(1), loader.calls.Load())
		})
	}
}

func (s *RefreshPublicTestSuite) TestRunRefreshesManagerState() {
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	api := mocks.NewMockAPI(ctrl)
	engine := rbac.New(nil)
	state := store.New(engine.Catalog())
	manager, err := usermgmt.New(slog.Default(), api, engine, state)
	s.Require().NoError(err)

	api.EXPECT().GetRoles(gomock.Any()).Return([]rbac.Role{
		{
			Name:                    "Support",
			PermissionSetsWithScope: []rbac.ScopedPermissionSet{{Name: "ReadUsers"}},
		},
	}, nil)
	api.EXPECT().GetPermissionSets(gomock.Any()).Return([]rbac.PermissionSet{
		{Name: rbac.BasicPermissionSet},
		{Name: "ReadUsers"},
	}, nil)

	r, err := usermgmt.NewRefresher(slog.Default(), manager, "@every 1h")
	s.Require().NoError(err)

	r.Run()

	_, ok := state.Role("Support")
	s.True(ok)
}

func (s *RefreshPublicTestSuite) TestStartAndStop() {
	loader := &fakeLoader{}
	r, err := usermgmt.NewRefresher(slog.Default(), loader, "@every 1h")
	s.Require().NoError(err)

	r.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	r.Stop(ctx)
	s.NoError(ctx.Err())
}

func TestRefreshPublicTestSuite(t *testing.T) {
	suite.Run(t, new(RefreshPublicTestSuite))
}
