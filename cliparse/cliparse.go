// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	AdminKeySalt   string
	ElectionID     string
	DirectoryFile  string
	RestoreSession bool
	FeedLimit      int
}

// MirrorEnabled reports whether a session mirror database is configured.
func (c Config) MirrorEnabled() bool {
	return c.DatabaseURL != ""
}

// LoadEnv seeds the environment from dotenv files (".env" when none are
// given). Variables already set win, and a missing file is not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ParseFlags validates flags and falls back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("polling-watch", flag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Session mirror database URL (mirror disabled when empty)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Admin key and agent token salt (prefer env)")

	// Election setup
	fs.StringVar(&cfg.ElectionID, "election", "", "Election identifier the admin key is bound to")
	fs.StringVar(&cfg.DirectoryFile, "directory", "", "Polling unit directory CSV (built-in list when empty)")
	fs.BoolVar(&cfg.RestoreSession, "restore", false, "Reload mirrored records at start-up")
	fs.IntVar(&cfg.FeedLimit, "feed-limit", 0, "Max live feed events and notifications kept")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	// Fall back to environment variables
	if cfg.Port == 0 {
		port, err := envInt("PORT", 3318)
		if err != nil {
			return Config{}, err
		}
		cfg.Port = port
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	if cfg.AdminKeySalt == "" {
		cfg.AdminKeySalt = os.Getenv("ADMIN_KEY_SALT")
	}
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}

	if cfg.ElectionID == "" {
		cfg.ElectionID = os.Getenv("ELECTION_ID")
		if cfg.ElectionID == "" {
			cfg.ElectionID = "general"
		}
	}
	if cfg.DirectoryFile == "" {
		cfg.DirectoryFile = os.Getenv("PU_DIRECTORY_FILE")
	}

	if !set["restore"] {
		if v := os.Getenv("RESTORE_SESSION"); v != "" {
			restore, err := strconv.ParseBool(v)
			if err != nil {
				return Config{}, errors.New("invalid RESTORE_SESSION env variable")
			}
			cfg.RestoreSession = restore
		}
	}
	if cfg.RestoreSession && cfg.DatabaseURL == "" {
		return Config{}, errors.New("session restore requires a database URL (use -d or DATABASE_URL env)")
	}

	if cfg.FeedLimit == 0 {
		limit, err := envInt("FEED_LIMIT", 100)
		if err != nil {
			return Config{}, err
		}
		cfg.FeedLimit = limit
	}
	if cfg.FeedLimit < 0 {
		return Config{}, errors.New("feed limit must be positive")
	}

	return cfg, nil
}

func envInt(name string, def int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", name)
	}
	return n, nil
}
