// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/fatih/color"

	"github.com/danielhkuo/polling-watch/alerts"
	"github.com/danielhkuo/polling-watch/auth"
	"github.com/danielhkuo/polling-watch/candidates"
	"github.com/danielhkuo/polling-watch/cliparse"
	"github.com/danielhkuo/polling-watch/clock"
	"github.com/danielhkuo/polling-watch/db"
	"github.com/danielhkuo/polling-watch/directory"
	"github.com/danielhkuo/polling-watch/handlers"
	"github.com/danielhkuo/polling-watch/incidents"
	"github.com/danielhkuo/polling-watch/metrics"
	"github.com/danielhkuo/polling-watch/middleware"
	"github.com/danielhkuo/polling-watch/reconcile"
	"github.com/danielhkuo/polling-watch/report"
	"github.com/danielhkuo/polling-watch/router"
	"github.com/danielhkuo/polling-watch/store"
)

func main() {
	var err error

	if err = cliparse.LoadEnv(); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Polling-unit directory
	dir := directory.Default()
	if cfg.DirectoryFile != "" {
		dir, err = directory.LoadFile(cfg.DirectoryFile)
		if err != nil {
			slog.Error("directory load failed", "error", err)
			os.Exit(1)
		}
	}
	slog.Info("Directory ready", "units", dir.Len(), "lgas", len(dir.LGAs()))

	// Session state
	st := store.New(dir)
	m := metrics.New()
	st.Subscribe(func(v store.Views) { m.ObserveRecords(v.Records) })

	feed := alerts.New(cfg.FeedLimit)
	engine := reconcile.New(st, reconcile.WithNotifier(feed), reconcile.WithMetrics(m))

	cands, err := candidates.New()
	if err != nil {
		slog.Error("candidate registry failed", "error", err)
		os.Exit(1)
	}

	// Optional database mirror
	var dbConn *sql.DB
	if cfg.MirrorEnabled() {
		dbConn, err = openMirror(cfg, st)
		if err != nil {
			slog.Error("mirror setup failed", "error", err)
			os.Exit(1)
		}
		defer dbConn.Close()
	}

	deps := handlers.Deps{
		Store:      st,
		Engine:     engine,
		Feed:       feed,
		Incidents:  incidents.New(clock.System{}),
		Candidates: cands,
		Metrics:    m,
		Clock:      clock.System{},
	}

	slog.Info("Admin key issued",
		"election", cfg.ElectionID,
		"admin_key", auth.GenerateAdminKey(cfg.ElectionID, cfg.AdminKeySalt))

	// Create router
	mux := router.NewRouter(deps, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}

	// Closing summary
	v := st.Views()
	data := report.Build(cfg.ElectionID, deps.Clock.Now(), v.Records, v.Summary, cands.List(), deps.Incidents.Len())
	if err := report.Render(os.Stdout, data, !color.NoColor); err != nil {
		slog.Error("report render failed", "error", err)
	}
}

// openMirror connects and migrates the mirror database, optionally restores
// the previous session into st, and subscribes the mirror to every commit.
func openMirror(cfg cliparse.Config, st *store.Store) (*sql.DB, error) {
	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(conn, cfg.DatabaseType); err != nil {
		conn.Close()
		return nil, err
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	mirror := db.NewMirror(conn)
	if cfg.RestoreSession {
		records, err := mirror.Load(context.Background())
		if err != nil {
			conn.Close()
			return nil, err
		}
		v := st.Restore(records)
		slog.Info("Session restored", "records", len(v.Records), "version", v.Version)
	}
	st.Subscribe(mirror.Observe)
	return conn, nil
}
