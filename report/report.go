// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/danielhkuo/polling-watch/aggregate"
	"github.com/danielhkuo/polling-watch/models"
)

// Data is everything a report shows.
type Data struct {
	Election    string
	GeneratedAt time.Time
	Summary     models.Summary
	Candidates  []models.CandidateTotal
	Records     int
	Incidents   int
}

// Build assembles report data from the session's records and their summary.
func Build(election string, at time.Time, records []models.ResultRecord, summary models.Summary, candidates []models.Candidate, incidents int) Data {
	return Data{
		Election:    election,
		GeneratedAt: at,
		Summary:     summary,
		Candidates:  aggregate.CandidateTotals(records, candidates),
		Records:     len(records),
		Incidents:   incidents,
	}
}

// Render writes the report as text tables. Section headings are colored only
// when colorize is true.
func Render(w io.Writer, d Data, colorize bool) error {
	heading := color.New(color.FgYellow, color.Bold)
	alert := color.New(color.FgRed)
	if colorize {
		heading.EnableColor()
		alert.EnableColor()
	} else {
		heading.DisableColor()
		alert.DisableColor()
	}

	if _, err := heading.Fprintf(w, "Election Report: %s\n", d.Election); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}
	fmt.Fprintf(w, "Generated %s, %s result records, %s incidents\n",
		d.GeneratedAt.Format(time.RFC1123), humanize.Comma(int64(d.Records)), humanize.Comma(int64(d.Incidents)))

	stats := d.Summary.Stats
	heading.Fprintln(w, "\nVote Statistics")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Count", "Share"})
	table.Append([]string{"Registered voters", humanize.Comma(int64(stats.Registered)), ""})
	table.Append([]string{"Accredited voters", humanize.Comma(int64(stats.Accredited)), pct(stats.Accredited, stats.Registered) + " of registered"})
	table.Append([]string{"Votes cast", humanize.Comma(int64(stats.Cast)), pct(stats.Cast, stats.Accredited) + " of accredited"})
	table.Append([]string{"Votes cancelled", humanize.Comma(int64(stats.Cancelled)), pct(stats.Cancelled, stats.Cast+stats.Cancelled) + " of all votes"})
	table.Render()

	cov := d.Summary.Coverage
	heading.Fprintln(w, "\nPolling Unit Coverage")
	table = tablewriter.NewWriter(w)
	table.SetHeader([]string{"Total", "Reported", "Not Reported", "Cancelled", "Reported %"})
	table.Append([]string{
		strconv.Itoa(cov.Total),
		strconv.Itoa(cov.Reported),
		strconv.Itoa(cov.NotReported),
		strconv.Itoa(cov.Cancelled),
		pct(cov.Reported, cov.Total),
	})
	table.Render()

	heading.Fprintln(w, "\nCandidate Totals")
	total := 0
	for _, c := range d.Candidates {
		total += c.Votes
	}
	table = tablewriter.NewWriter(w)
	table.SetHeader([]string{"Candidate", "Party", "Votes", "Share"})
	for _, c := range d.Candidates {
		table.Append([]string{c.Name, c.Party, humanize.Comma(int64(c.Votes)), pct(c.Votes, total)})
	}
	table.SetFooter([]string{"", "Total", humanize.Comma(int64(total)), ""})
	table.Render()

	if len(d.Summary.OverVoting) > 0 {
		alert.Fprintln(w, "\nOver-voting Incidents")
		table = tablewriter.NewWriter(w)
		table.SetHeader([]string{"Polling Unit", "Votes Cast", "Accredited", "Excess"})
		for _, inc := range d.Summary.OverVoting {
			table.Append([]string{
				inc.PollingUnit,
				humanize.Comma(int64(inc.VotesCast)),
				humanize.Comma(int64(inc.AccreditedVoters)),
				humanize.Comma(int64(inc.VotesCast - inc.AccreditedVoters)),
			})
		}
		table.Render()
	}

	if len(d.Summary.CancelledVotes) > 0 {
		heading.Fprintln(w, "\nCancelled Votes")
		table = tablewriter.NewWriter(w)
		table.SetHeader([]string{"Polling Unit", "Reason", "Votes"})
		for _, cv := range d.Summary.CancelledVotes {
			table.Append([]string{cv.PollingUnit, cv.Reason, humanize.Comma(int64(cv.VotesCancelled))})
		}
		table.Render()
	}

	return nil
}

func pct(part, whole int) string {
	return strconv.Itoa(aggregate.Percent(part, whole)) + "%"
}
