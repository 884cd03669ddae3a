// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/polling-watch/alerts"
	"github.com/danielhkuo/polling-watch/auth"
	"github.com/danielhkuo/polling-watch/candidates"
	"github.com/danielhkuo/polling-watch/clock"
	"github.com/danielhkuo/polling-watch/cliparse"
	"github.com/danielhkuo/polling-watch/db"
	"github.com/danielhkuo/polling-watch/directory"
	"github.com/danielhkuo/polling-watch/incidents"
	"github.com/danielhkuo/polling-watch/metrics"
	"github.com/danielhkuo/polling-watch/models"
	"github.com/danielhkuo/polling-watch/reconcile"
	"github.com/danielhkuo/polling-watch/store"
)

// TestElection is the election ID of the test config
const TestElection = "jigawa-2027"

// TestStart is the fake clock's initial time
var TestStart = time.Date(2027, 2, 18, 9, 0, 0, 0, time.UTC)

// TestCandidates are registered in every test session
var TestCandidates = []models.Candidate{
	{ID: "1", Name: "Amina Bello", Party: "APC"},
	{ID: "2", Name: "Musa Ibrahim", Party: "PDP"},
	{ID: "3", Name: "Fatima Sani", Party: "NNPP"},
}

// SetupTestDB opens an in-memory SQLite mirror database with all migrations
// applied
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.Migrate(conn, db.TypeSQLite); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseType: db.TypeSQLite,
		AdminKeySalt: "test-admin-salt",
		ElectionID:   TestElection,
		FeedLimit:    50,
	}
}

// Services is a fully wired session on a fake clock
type Services struct {
	Clock      *clock.FakeClock
	Store      *store.Store
	Engine     *reconcile.Engine
	Feed       *alerts.Feed
	Incidents  *incidents.Registry
	Candidates *candidates.Registry
	Metrics    *metrics.Metrics
}

// NewTestServices wires a session over the built-in directory with the test
// candidates registered
func NewTestServices(t *testing.T, cfg cliparse.Config) Services {
	t.Helper()

	clk := clock.NewFakeClock(TestStart)
	st := store.New(directory.Default(), store.WithClock(clk))
	m := metrics.New()
	st.Subscribe(func(v store.Views) { m.ObserveRecords(v.Records) })

	feed := alerts.New(cfg.FeedLimit, alerts.WithClock(clk))
	cands, err := candidates.New(TestCandidates...)
	if err != nil {
		t.Fatalf("Failed to register test candidates: %v", err)
	}

	return Services{
		Clock:      clk,
		Store:      st,
		Engine:     reconcile.New(st, reconcile.WithNotifier(feed), reconcile.WithMetrics(m)),
		Feed:       feed,
		Incidents:  incidents.New(clk),
		Candidates: cands,
		Metrics:    m,
	}
}

// AdminHeaders returns headers carrying the admin key for cfg
func AdminHeaders(cfg cliparse.Config) map[string]string {
	return map[string]string{"X-Admin-Key": auth.GenerateAdminKey(cfg.ElectionID, cfg.AdminKeySalt)}
}

// AgentHeaders returns headers carrying the agent token for one polling unit
func AgentHeaders(cfg cliparse.Config, pollingUnit string) map[string]string {
	return map[string]string{"X-Agent-Token": auth.GenerateAgentToken(pollingUnit, cfg.AdminKeySalt)}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
