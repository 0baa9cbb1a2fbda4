package database

import (
	"context"
	"fmt"

	"go-interview-crm/core/logger"
)

// migrations are idempotent and run in order at startup. The partial unique
// indexes on reservations enforce the active-sentinel invariants: at most one
// active reservation per conversation, and at most one active reservation per
// (start_at, location_key) pair. Concurrent bookings of the same slot race on
// the second index; the loser gets a unique violation at commit.
var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,

	`CREATE TABLE IF NOT EXISTS reservations (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		public_code TEXT NOT NULL,
		conversation_id TEXT NOT NULL,
		contact_id TEXT NOT NULL,
		start_at TIMESTAMPTZ NOT NULL,
		end_at TIMESTAMPTZ NOT NULL,
		timezone TEXT NOT NULL,
		location TEXT NOT NULL,
		location_key TEXT NOT NULL,
		status TEXT NOT NULL,
		active_key TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS uq_reservations_active_conversation
		ON reservations (conversation_id) WHERE active_key = 'ACTIVE'`,

	`CREATE UNIQUE INDEX IF NOT EXISTS uq_reservations_active_slot
		ON reservations (start_at, location_key) WHERE active_key = 'ACTIVE'`,

	`CREATE INDEX IF NOT EXISTS idx_reservations_contact
		ON reservations (contact_id, created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS slot_blocks (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		start_at TIMESTAMPTZ NOT NULL,
		location TEXT NOT NULL,
		location_key TEXT NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (start_at, location_key)
	)`,

	`CREATE TABLE IF NOT EXISTS scheduling_settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		conversation_id TEXT NOT NULL,
		title TEXT NOT NULL,
		message TEXT NOT NULL,
		type TEXT NOT NULL,
		data JSONB,
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_notifications_conversation
		ON notifications (conversation_id, created_at DESC)`,
}

// RunMigrations applies the schema. Statements are idempotent so restarting
// the server is always safe.
func RunMigrations(ctx context.Context, db IDatabase) error {
	logger.Info("Running migrations...", "count", len(migrations))

	for i, stmt := range migrations {
		if err := db.ExecContext(ctx, stmt); err != nil {
			logger.Error("Migration failed", "index", i, "error", err)
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}

	logger.Info("Migrations complete")
	return nil
}
