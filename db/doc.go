// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db mirrors the in-memory result store to SQL so a session survives a
restart.

The store stays authoritative. The mirror only ever receives committed
versions and can be reloaded at start-up with -restore.

# Connecting

	conn, err := db.Open(db.TypeSQLite, "pollwatch.db")
	conn, err := db.Open(db.TypePostgres, "postgres://...")

SQLite uses modernc.org/sqlite, PostgreSQL uses lib/pq.

# Migrations

Migrate applies the embedded migrations with golang-migrate. It is safe to
run on every start:

	if err := db.Migrate(conn, db.TypeSQLite); err != nil {
		log.Fatal(err)
	}

# Tables

  - result_record: one row per result record, position keeps store order,
    candidate_scores holds JSON, updated_at holds RFC 3339 text
  - mirror_state: single row with the last mirrored store version

# Mirroring

	mirror := db.NewMirror(conn)
	st.Subscribe(mirror.Observe)

	records, err := mirror.Load(ctx)
	st.Restore(records)

Each sync rewrites the table in one transaction. Sync errors are logged by
Observe and do not affect the store.
*/
package db
