// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package reconcile merges accreditation and results submissions into one
result record per polling unit and applies the over-voting rule.

# Submissions

	eng := reconcile.New(st, reconcile.WithNotifier(feed), reconcile.WithMetrics(m))

	eng.RecordAccreditation(models.AccreditationSubmission{
		PollingUnit: "PU 001, Kofar Fada", RegisteredVoters: 1000, AccreditedVoters: 800,
	})
	eng.RecordResults(models.ResultsSubmission{
		PollingUnit:     "PU 001, Kofar Fada",
		CandidateScores: []models.CandidateScore{{CandidateID: "1", Score: 500}},
	})

Either submission may arrive first. The first one creates a Pending record;
later ones update it in place. Negative counts are stored as 0. VotesCast is
always the sum of the candidate scores, and scores for unknown candidates are
kept as submitted.

# Status Rule

After every write of accredited voters or votes cast:

	accredited > 0 && cast > accredited  ->  Disputed, alert sent
	otherwise, if Disputed               ->  Pending
	otherwise                            ->  unchanged

Alerts go to the Notifier after the store lock is released.

# Manual Edits

EditRecord replaces a record wholesale like store.UpdateSingle, but it
recomputes VotesCast from the scores and runs the status rule.
*/
package reconcile
