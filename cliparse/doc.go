// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

LoadEnv seeds the environment from a .env file, then ParseFlags returns a
Config struct with all settings:

	if err := cliparse.LoadEnv(); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Session mirror connection string (mirror disabled when empty)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - AdminKeySalt: Secret for admin key and agent token HMAC (required)
  - ElectionID: Election the admin key is bound to (default: general)
  - DirectoryFile: Polling unit CSV (built-in Jigawa list when empty)
  - RestoreSession: Reload mirrored records at start-up
  - FeedLimit: Live feed and notification history size (default: 100)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-admin-salt   Admin key salt
	-election     Election ID
	-directory    Polling unit CSV
	-restore      Reload the mirrored session
	-feed-limit   Live feed size

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	DATABASE_URL      → -d
	DATABASE_TYPE     → -t
	ADMIN_KEY_SALT    → -admin-salt
	ELECTION_ID       → -election
	PU_DIRECTORY_FILE → -directory
	RESTORE_SESSION   → -restore
	FEED_LIMIT        → -feed-limit

CLI flags take precedence over environment variables, and variables already
in the environment take precedence over the .env file.

# Validation

ParseFlags returns an error if:

  - ADMIN_KEY_SALT is missing
  - the database type is not sqlite or postgres
  - restore is requested without a database URL
  - PORT, FEED_LIMIT or RESTORE_SESSION cannot be parsed
*/
package cliparse
