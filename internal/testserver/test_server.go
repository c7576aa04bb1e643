// Package testserver spins up the full stack over an in-memory database
// for end-to-end API tests.
package testserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/pulseboard/internal/auth"
	"github.com/rpggio/pulseboard/internal/domain/activity"
	"github.com/rpggio/pulseboard/internal/domain/analytics"
	"github.com/rpggio/pulseboard/internal/domain/project"
	"github.com/rpggio/pulseboard/internal/domain/submission"
	"github.com/rpggio/pulseboard/internal/sqlite"
	"github.com/rpggio/pulseboard/internal/transport"
)

// TestServer bundles the running API with the handles tests need.
type TestServer struct {
	Server      *httptest.Server
	DB          *sqlite.DB
	Submissions *submission.Service
}

// Option adjusts the assembled services.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithNow pins the clock used for week identity.
func WithNow(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New builds the full service stack over a fresh in-memory database and
// serves it from an httptest server.
func New(t *testing.T, opts ...Option) *TestServer {
	t.Helper()

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	projectRepo := sqlite.NewProjectRepository(db)
	reportRepo := sqlite.NewReportRepository(db)
	reviewRepo := sqlite.NewReviewRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)

	logger := slog.New(slog.DiscardHandler)

	var subOpts []submission.Option
	if o.now != nil {
		subOpts = append(subOpts, submission.WithNow(o.now))
	}

	svc := transport.Services{
		Projects:    project.NewService(projectRepo, activityRepo, logger),
		Submissions: submission.NewService(reportRepo, reviewRepo, projectRepo, activityRepo, logger, subOpts...),
		Activity:    activity.NewService(activityRepo, logger),
		Analytics:   analytics.NewService(projectRepo, reviewRepo, logger),
	}

	server := httptest.NewServer(transport.NewRouter(svc, logger))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{Server: server, DB: db, Submissions: svc.Submissions}
}

// Do issues a request as the given actor and decodes the JSON response
// into out when out is non-nil.
func (ts *TestServer) Do(t *testing.T, actor auth.Actor, method, path string, body, out any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(transport.HeaderActorID, actor.ID)
	if actor.Name != "" {
		req.Header.Set(transport.HeaderActorName, actor.Name)
	}
	req.Header.Set(transport.HeaderActorRole, string(actor.Role))
	if actor.TeamID != "" {
		req.Header.Set(transport.HeaderTeamID, actor.TeamID)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}
