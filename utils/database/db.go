package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

var schema = `
CREATE TABLE IF NOT EXISTS tickets (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    guild_id TEXT NOT NULL,
    channel_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    open INTEGER NOT NULL DEFAULT 1,
    pending_close_at INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS temp_role_grants (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    guild_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    role_id TEXT NOT NULL,
    expires_at INTEGER NOT NULL,
    delete_role INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS strikes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    guild_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    count INTEGER NOT NULL,
    tokens TEXT NOT NULL DEFAULT '[]',
    next_expiry_at INTEGER NOT NULL,
    UNIQUE(guild_id, user_id)
);

CREATE TABLE IF NOT EXISTS moderation_cases (
    case_id INTEGER PRIMARY KEY AUTOINCREMENT,
    guild_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    moderator_id TEXT NOT NULL,
    type TEXT NOT NULL,
    reason TEXT NOT NULL DEFAULT '',
    active INTEGER NOT NULL DEFAULT 1,
    expires_at INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS verification_links (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    external_id TEXT NOT NULL UNIQUE,
    discord_id TEXT NOT NULL DEFAULT '',
    linked_discord_id TEXT NOT NULL DEFAULT '',
    forced INTEGER NOT NULL DEFAULT 0,
    updated INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS guild_groups (
    group_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    owner_guild_id TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS group_members (
    group_id TEXT NOT NULL,
    guild_id TEXT NOT NULL,
    manager INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (group_id, guild_id)
);

CREATE TABLE IF NOT EXISTS alert_points (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    guild_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    points INTEGER NOT NULL,
    decay_at INTEGER NOT NULL,
    UNIQUE(guild_id, user_id)
);
`

// Init opens the guardian database and ensures all tables exist.
func Init(dbPath string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return db, nil
}
