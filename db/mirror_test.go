// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/danielhkuo/polling-watch/clock"
	"github.com/danielhkuo/polling-watch/directory"
	"github.com/danielhkuo/polling-watch/models"
	"github.com/danielhkuo/polling-watch/store"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := Open(TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := Migrate(conn, TypeSQLite); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return conn
}

func TestOpenRejectsUnknownType(t *testing.T) {
	if _, err := Open("mysql", "whatever"); err == nil {
		t.Error("expected error for unsupported database type")
	}
}

func TestMigrateIsRepeatable(t *testing.T) {
	conn := openTestDB(t)

	if err := Migrate(conn, TypeSQLite); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}

	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM result_record`).Scan(&n); err != nil {
		t.Fatalf("result_record table missing: %v", err)
	}
}

func TestSyncAndLoad(t *testing.T) {
	conn := openTestDB(t)
	mirror := NewMirror(conn)
	ctx := context.Background()

	stamp := time.Date(2027, 2, 18, 10, 30, 15, 123456789, time.UTC)
	views := store.Views{
		Version: 7,
		Records: []models.ResultRecord{
			{
				ID: "b", PollingUnit: "PU 005, Kofar Arewa", Ward: "Kasuwa", LGA: "Hadejia",
				RegisteredVoters: 1000, AccreditedVoters: 800, VotesCast: 900, VotesCancelled: 10,
				AgentName: "Yusuf Bala",
				CandidateScores: []models.CandidateScore{
					{CandidateID: "1", Score: 600}, {CandidateID: "ghost", Score: 300},
				},
				ResultSheetURL: "https://example.com/sheet.jpg",
				Status:         models.StatusDisputed,
				Timestamp:      stamp,
			},
			{
				ID: "a", PollingUnit: "PU 099, Sabon Gari", Ward: directory.Unknown, LGA: "Sabon Gari",
				CandidateScores: []models.CandidateScore{},
				Status:          models.StatusPending,
				Timestamp:       stamp.Add(time.Minute),
			},
		},
	}

	if err := mirror.Sync(ctx, views); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	got, err := mirror.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(views.Records, got); diff != "" {
		t.Errorf("loaded records mismatch (-want +got):\n%s", diff)
	}

	version, err := mirror.Version(ctx)
	if err != nil {
		t.Fatalf("Version failed: %v", err)
	}
	if version != 7 {
		t.Errorf("expected version 7, got %d", version)
	}

	// a later sync replaces everything
	views.Version = 8
	views.Records = views.Records[1:]
	if err := mirror.Sync(ctx, views); err != nil {
		t.Fatalf("second Sync failed: %v", err)
	}
	got, _ = mirror.Load(ctx)
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("expected only record a, got %+v", got)
	}
}

func TestVersionEmpty(t *testing.T) {
	mirror := NewMirror(openTestDB(t))

	version, err := mirror.Version(context.Background())
	if err != nil || version != 0 {
		t.Errorf("Version = (%d, %v), want (0, nil)", version, err)
	}
}

func TestObserveFollowsStore(t *testing.T) {
	conn := openTestDB(t)
	mirror := NewMirror(conn)
	ctx := context.Background()

	st := store.New(directory.Default(), store.WithClock(clock.NewFakeClock(time.Date(2027, 2, 18, 9, 0, 0, 0, time.UTC))))
	st.Subscribe(mirror.Observe)

	st.Update(func(tx *store.Tx) {
		r := tx.Create("PU 001, Kofar Fada")
		r.AccreditedVoters = 500
		tx.Touch(r)
	})
	v := st.Update(func(tx *store.Tx) {
		tx.Create("PU 002, Gidan Bera")
	})

	got, err := mirror.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(v.Records, got); diff != "" {
		t.Errorf("mirror out of step with store (-want +got):\n%s", diff)
	}

	// restore into a fresh store
	restored := store.New(directory.Default())
	rv := restored.Restore(got)
	if diff := cmp.Diff(v.Records, rv.Records); diff != "" {
		t.Errorf("restored records mismatch (-want +got):\n%s", diff)
	}
	if rv.Summary.Stats.Accredited != 500 {
		t.Errorf("expected restored stats, got %+v", rv.Summary.Stats)
	}
}
