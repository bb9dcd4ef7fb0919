package database

import (
	"database/sql"
	"fmt"
)

// schema is applied at startup. Every statement is idempotent so restarting
// the service against an existing database is safe.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'host',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS players (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		user_id BIGINT REFERENCES users(id),
		default_cut_percent DOUBLE PRECISION,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS runs (
		id BIGSERIAL PRIMARY KEY,
		run_number BIGINT NOT NULL UNIQUE,
		date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		host_id BIGINT NOT NULL REFERENCES players(id),
		essence_required INT NOT NULL DEFAULT 2,
		stone_required INT NOT NULL DEFAULT 2,
		essence_price_ws DOUBLE PRECISION NOT NULL,
		stone_price_ws DOUBLE PRECISION NOT NULL,
		total_entry_fee_ws DOUBLE PRECISION NOT NULL,
		status TEXT NOT NULL DEFAULT 'open',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS run_participants (
		run_id BIGINT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		player_id BIGINT NOT NULL REFERENCES players(id),
		share_modifier DOUBLE PRECISION NOT NULL DEFAULT 1,
		position INT NOT NULL,
		PRIMARY KEY (run_id, player_id)
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id BIGSERIAL PRIMARY KEY,
		run_id BIGINT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		total_price_ws DOUBLE PRECISION NOT NULL,
		buyer TEXT NOT NULL,
		date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		net_after_fees_ws DOUBLE PRECISION NOT NULL DEFAULT 0,
		is_settled BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS drops (
		id BIGSERIAL PRIMARY KEY,
		run_id BIGINT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		owner_player_id BIGINT NOT NULL REFERENCES players(id),
		item_type TEXT NOT NULL,
		main_roll INT NOT NULL,
		secondary_roll INT NOT NULL,
		notes TEXT,
		status TEXT NOT NULL DEFAULT 'unsold',
		sale_id BIGINT REFERENCES sales(id) ON DELETE SET NULL,
		disenchanted_into TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS sale_splits (
		id BIGSERIAL PRIMARY KEY,
		sale_id BIGINT NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
		player_id BIGINT NOT NULL REFERENCES players(id),
		amount_ws DOUBLE PRECISION NOT NULL,
		is_paid BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_drops_run ON drops(run_id)`,
	`CREATE INDEX IF NOT EXISTS idx_drops_sale ON drops(sale_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_run ON sales(run_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sale_splits_sale ON sale_splits(sale_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sale_splits_player ON sale_splits(player_id)`,
}

// Migrate creates the schema if it does not exist yet.
func Migrate(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
