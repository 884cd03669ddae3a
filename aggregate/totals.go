// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package aggregate

import (
	"sort"
	"strings"

	"github.com/danielhkuo/polling-watch/models"
)

// Filter returns the records matching every non-empty field of f, in order.
func Filter(records []models.ResultRecord, f models.ResultFilter) []models.ResultRecord {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := []models.ResultRecord{}
	for _, r := range records {
		if f.Date != "" && !strings.HasPrefix(r.Timestamp.Format("2006-01-02"), f.Date) {
			continue
		}
		if f.LGA != "" && r.LGA != f.LGA {
			continue
		}
		if f.Ward != "" && r.Ward != f.Ward {
			continue
		}
		if query != "" && !matchesQuery(r, query) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesQuery(r models.ResultRecord, query string) bool {
	for _, field := range []string{r.PollingUnit, r.Ward, r.LGA, r.AgentName} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// CandidateTotals sums each known candidate's score across records, in
// candidate order. Scores for unknown candidate IDs are ignored.
func CandidateTotals(records []models.ResultRecord, candidates []models.Candidate) []models.CandidateTotal {
	totals := make([]models.CandidateTotal, len(candidates))
	index := make(map[string]int, len(candidates))
	for i, c := range candidates {
		totals[i] = models.CandidateTotal{CandidateID: c.ID, Name: c.Name, Party: c.Party}
		index[c.ID] = i
	}

	for _, r := range records {
		for _, s := range r.CandidateScores {
			if i, ok := index[s.CandidateID]; ok {
				totals[i].Votes += s.Score
			}
		}
	}
	return totals
}

// Totals computes the footer row for a filtered results table.
func Totals(records []models.ResultRecord, candidates []models.Candidate) models.ResultTotals {
	t := models.ResultTotals{Candidates: CandidateTotals(records, candidates)}
	for _, r := range records {
		t.RegisteredVoters += r.RegisteredVoters
		t.AccreditedVoters += r.AccreditedVoters
		t.VotesCast += r.VotesCast
		t.VotesCancelled += r.VotesCancelled
	}
	return t
}

// Distribution ranks candidates by votes for one LGA, or for all records when
// lga is empty. Candidates without votes are dropped.
func Distribution(records []models.ResultRecord, candidates []models.Candidate, lga string) models.VoteDistribution {
	dist := models.VoteDistribution{LGA: lga, LGAs: []string{}, Candidates: []models.CandidateTotal{}}

	seen := make(map[string]bool)
	var selected []models.ResultRecord
	for _, r := range records {
		if !seen[r.LGA] {
			seen[r.LGA] = true
			dist.LGAs = append(dist.LGAs, r.LGA)
		}
		if lga == "" || r.LGA == lga {
			selected = append(selected, r)
		}
	}

	for _, ct := range CandidateTotals(selected, candidates) {
		dist.TotalVotes += ct.Votes
		if ct.Votes > 0 {
			dist.Candidates = append(dist.Candidates, ct)
		}
	}

	sort.SliceStable(dist.Candidates, func(i, j int) bool {
		return dist.Candidates[i].Votes > dist.Candidates[j].Votes
	})
	return dist
}
