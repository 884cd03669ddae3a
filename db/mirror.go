// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/polling-watch/models"
	"github.com/danielhkuo/polling-watch/store"
)

// syncTimeout bounds one mirror write triggered by a store commit.
const syncTimeout = 5 * time.Second

// Mirror copies committed store versions into the result_record table so a
// restarted server can pick the session back up.
type Mirror struct {
	db *sql.DB
}

func NewMirror(conn *sql.DB) *Mirror {
	return &Mirror{db: conn}
}

// Observe is a store subscriber. Failures are logged, never returned, so the
// in-memory store stays authoritative.
func (m *Mirror) Observe(v store.Views) {
	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	if err := m.Sync(ctx, v); err != nil {
		slog.Error("session mirror sync failed", "version", v.Version, "error", err)
	}
}

// Sync replaces the mirrored records with v.Records in one transaction.
func (m *Mirror) Sync(ctx context.Context, v store.Views) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin mirror transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM result_record`); err != nil {
		return fmt.Errorf("failed to clear mirrored records: %w", err)
	}

	for i, r := range v.Records {
		scores, err := json.Marshal(r.CandidateScores)
		if err != nil {
			return fmt.Errorf("failed to encode candidate scores: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO result_record (
				position, id, polling_unit, ward, lga,
				registered_voters, accredited_voters, votes_cast, votes_cancelled,
				agent_name, candidate_scores, result_sheet_url, status, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		`, i, r.ID, r.PollingUnit, r.Ward, r.LGA,
			r.RegisteredVoters, r.AccreditedVoters, r.VotesCast, r.VotesCancelled,
			r.AgentName, string(scores), r.ResultSheetURL, string(r.Status),
			r.Timestamp.UTC().Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("failed to mirror record %s: %w", r.ID, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO mirror_state (id, version, record_count, synced_at)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			version = excluded.version,
			record_count = excluded.record_count,
			synced_at = excluded.synced_at
	`, int64(v.Version), len(v.Records), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to update mirror state: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit mirror transaction: %w", err)
	}
	return nil
}

// Load reads the mirrored records back in store order.
func (m *Mirror) Load(ctx context.Context) ([]models.ResultRecord, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, polling_unit, ward, lga,
		       registered_voters, accredited_voters, votes_cast, votes_cancelled,
		       agent_name, candidate_scores, result_sheet_url, status, updated_at
		FROM result_record
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query mirrored records: %w", err)
	}
	defer rows.Close()

	records := []models.ResultRecord{}
	for rows.Next() {
		var (
			r         models.ResultRecord
			scores    string
			status    string
			updatedAt string
		)
		if err := rows.Scan(
			&r.ID, &r.PollingUnit, &r.Ward, &r.LGA,
			&r.RegisteredVoters, &r.AccreditedVoters, &r.VotesCast, &r.VotesCancelled,
			&r.AgentName, &scores, &r.ResultSheetURL, &status, &updatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan mirrored record: %w", err)
		}
		if err := json.Unmarshal([]byte(scores), &r.CandidateScores); err != nil {
			return nil, fmt.Errorf("failed to decode candidate scores of %s: %w", r.ID, err)
		}
		r.Status = models.ResultStatus(status)
		r.Timestamp, err = time.Parse(time.RFC3339Nano, updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp of %s: %w", r.ID, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mirrored records: %w", err)
	}
	return records, nil
}

// Version returns the last mirrored store version, or 0 when nothing has
// been mirrored yet.
func (m *Mirror) Version(ctx context.Context) (uint64, error) {
	var version int64
	err := m.db.QueryRowContext(ctx, `SELECT version FROM mirror_state WHERE id = 1`).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read mirror version: %w", err)
	}
	return uint64(version), nil
}
