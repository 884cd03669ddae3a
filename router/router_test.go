// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/polling-watch/cliparse"
	"github.com/danielhkuo/polling-watch/handlers"
	"github.com/danielhkuo/polling-watch/models"
	"github.com/danielhkuo/polling-watch/testutil"
)

func newTestRouter(t *testing.T) (*http.ServeMux, testutil.Services, cliparse.Config) {
	t.Helper()

	cfg := testutil.GetTestConfig()
	svc := testutil.NewTestServices(t, cfg)
	mux := NewRouter(handlers.Deps{
		Store:      svc.Store,
		Engine:     svc.Engine,
		Feed:       svc.Feed,
		Incidents:  svc.Incidents,
		Candidates: svc.Candidates,
		Metrics:    svc.Metrics,
		Clock:      svc.Clock,
	}, cfg)
	return mux, svc, cfg
}

func TestHealthEndpoint(t *testing.T) {
	mux, _, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux, _, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "polling-watch API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	mux, _, _ := newTestRouter(t)

	// 400, 401, 404 are all valid responses depending on handler logic
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/metrics"},
		{"GET", "/directory"},
		{"GET", "/candidates"},

		{"POST", "/submissions/accreditation"},
		{"POST", "/submissions/results"},
		{"POST", "/incidents"},

		{"POST", "/admin/agent-tokens"},
		{"GET", "/results"},
		{"PUT", "/results/test-id"},
		{"DELETE", "/results/test-id"},
		{"POST", "/results/test-id/edit"},
		{"POST", "/results/test-id/verify"},
		{"POST", "/results/test-id/cancel"},
		{"POST", "/results/bulk-status"},
		{"POST", "/results/bulk-delete"},

		{"GET", "/dashboard"},
		{"GET", "/stats"},
		{"GET", "/cancelled-votes"},
		{"GET", "/over-voting"},
		{"GET", "/coverage"},
		{"GET", "/distribution"},
		{"GET", "/report"},

		{"POST", "/candidates"},
		{"DELETE", "/candidates/test-id"},
		{"GET", "/incidents"},
		{"POST", "/incidents/test-id/status"},
		{"POST", "/incidents/bulk-status"},
		{"POST", "/incidents/bulk-delete"},
		{"GET", "/feed"},
		{"POST", "/feed/dismiss"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux, _, _ := newTestRouter(t)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},          // Only GET is defined
		{"POST", "/results/test-id"}, // PUT and DELETE only
		{"DELETE", "/feed/dismiss"},  // Only POST is defined
		{"DELETE", "/dashboard"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestAdminRoutesRequireKey(t *testing.T) {
	mux, _, cfg := newTestRouter(t)

	paths := []string{"/dashboard", "/results", "/feed", "/incidents", "/report"}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, testutil.MakeRequest("GET", path, nil, nil))
			testutil.AssertStatus(t, w, http.StatusUnauthorized)

			w = httptest.NewRecorder()
			mux.ServeHTTP(w, testutil.MakeRequest("GET", path, nil, testutil.AdminHeaders(cfg)))
			testutil.AssertStatus(t, w, http.StatusOK)
		})
	}

	t.Run("key for another election", func(t *testing.T) {
		other := cfg
		other.ElectionID = "kano-2027"
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.MakeRequest("GET", "/dashboard", nil, testutil.AdminHeaders(other)))
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}

// TestFullMonitoringWorkflow drives the service through the router:
// 1. Admin issues an agent token
// 2. Agent submits accreditation and results
// 3. Admin sees the over-voting alert on the dashboard
// 4. Admin cancels the result
// 5. Metrics reflect the activity
func TestFullMonitoringWorkflow(t *testing.T) {
	mux, _, cfg := newTestRouter(t)
	adminHeaders := testutil.AdminHeaders(cfg)
	const pu = "PU 006, Gidan Sarki"

	// Step 1
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/admin/agent-tokens", models.AgentTokenRequest{PollingUnit: pu}, adminHeaders))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var tokenResp models.AgentTokenResponse
	testutil.AssertJSON(t, w, &tokenResp)
	agentHeaders := map[string]string{"X-Agent-Token": tokenResp.AgentToken}

	// Step 2
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/submissions/accreditation", models.AccreditationSubmission{
		PollingUnit: pu, AgentName: "Hauwa Abdullahi", RegisteredVoters: 900, AccreditedVoters: 400,
	}, agentHeaders))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/submissions/results", models.ResultsSubmission{
		PollingUnit: pu,
		CandidateScores: []models.CandidateScore{
			{CandidateID: "1", Score: 250}, {CandidateID: "2", Score: 200},
		},
	}, agentHeaders))
	testutil.AssertStatus(t, w, http.StatusOK)
	var rec models.ResultRecord
	testutil.AssertJSON(t, w, &rec)
	if rec.Status != models.StatusDisputed {
		t.Fatalf("Step 2 - expected Disputed, got %s", rec.Status)
	}

	// Step 3
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/dashboard", nil, adminHeaders))
	var dash models.DashboardResponse
	testutil.AssertJSON(t, w, &dash)
	if len(dash.OverVotingAlerts) != 1 || dash.OverVotingAlerts[0].VotesCast != 450 {
		t.Errorf("Step 3 - expected one alert with 450 votes, got %+v", dash.OverVotingAlerts)
	}
	if dash.Version != 2 {
		t.Errorf("Step 3 - expected store version 2, got %d", dash.Version)
	}

	// Step 4
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/results/"+rec.ID+"/cancel", nil, adminHeaders))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/stats", nil, adminHeaders))
	var stats models.VoteStats
	testutil.AssertJSON(t, w, &stats)
	if stats.Cast != 0 || stats.Cancelled != 450 {
		t.Errorf("Step 4 - expected 0 cast and 450 cancelled, got %+v", stats)
	}

	// Step 5
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/metrics", nil, nil))
	body := w.Body.String()
	for _, want := range []string{
		`pollwatch_submissions_total{kind="accreditation"} 1`,
		`pollwatch_submissions_total{kind="results"} 1`,
		`pollwatch_over_voting_alerts_total 1`,
		`pollwatch_result_records{status="Cancelled"} 1`,
		`pollwatch_bulk_operations_total{op="set_status"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Step 5 - metrics missing %q", want)
		}
	}
}
