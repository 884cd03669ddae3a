// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/polling-watch/cliparse"
	"github.com/danielhkuo/polling-watch/models"
	"github.com/danielhkuo/polling-watch/testutil"
)

func newTestDeps(t *testing.T) (Deps, testutil.Services, cliparse.Config) {
	t.Helper()

	cfg := testutil.GetTestConfig()
	svc := testutil.NewTestServices(t, cfg)
	deps := Deps{
		Store:      svc.Store,
		Engine:     svc.Engine,
		Feed:       svc.Feed,
		Incidents:  svc.Incidents,
		Candidates: svc.Candidates,
		Metrics:    svc.Metrics,
		Clock:      svc.Clock,
	}
	return deps, svc, cfg
}

// submitAccreditation posts an accreditation with a valid agent token.
func submitAccreditation(t *testing.T, h *SubmissionHandler, cfg cliparse.Config, sub models.AccreditationSubmission) models.ResultRecord {
	t.Helper()

	req := testutil.MakeRequest("POST", "/submissions/accreditation", sub, testutil.AgentHeaders(cfg, sub.PollingUnit))
	w := httptest.NewRecorder()
	h.RecordAccreditation(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("accreditation for %s failed: %d - %s", sub.PollingUnit, w.Code, w.Body.String())
	}
	var rec models.ResultRecord
	testutil.AssertJSON(t, w, &rec)
	return rec
}

// submitResults posts candidate scores with a valid agent token.
func submitResults(t *testing.T, h *SubmissionHandler, cfg cliparse.Config, sub models.ResultsSubmission) models.ResultRecord {
	t.Helper()

	req := testutil.MakeRequest("POST", "/submissions/results", sub, testutil.AgentHeaders(cfg, sub.PollingUnit))
	w := httptest.NewRecorder()
	h.RecordResults(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("results for %s failed: %d - %s", sub.PollingUnit, w.Code, w.Body.String())
	}
	var rec models.ResultRecord
	testutil.AssertJSON(t, w, &rec)
	return rec
}

func scores(votes ...int) []models.CandidateScore {
	out := make([]models.CandidateScore, len(votes))
	for i, v := range votes {
		out[i] = models.CandidateScore{CandidateID: testutil.TestCandidates[i].ID, Score: v}
	}
	return out
}
