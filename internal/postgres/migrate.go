package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is intentionally idempotent; Migrate runs on every startup.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id       BIGINT PRIMARY KEY,
		code     TEXT NOT NULL UNIQUE,
		category TEXT NOT NULL,
		name     TEXT NOT NULL,
		price    NUMERIC(12,2) NOT NULL,
		image    TEXT NOT NULL DEFAULT '',
		on_sale  BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		email         TEXT PRIMARY KEY,
		name          TEXT NOT NULL DEFAULT '',
		surnames      TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		birthdate     TEXT NOT NULL DEFAULT '',
		address       TEXT NOT NULL DEFAULT '',
		image         TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS cart_lines (
		user_email TEXT NOT NULL,
		product_id BIGINT NOT NULL,
		code       TEXT NOT NULL,
		name       TEXT NOT NULL,
		category   TEXT NOT NULL,
		image      TEXT NOT NULL DEFAULT '',
		unit_price NUMERIC(12,2) NOT NULL,
		on_sale    BOOLEAN NOT NULL DEFAULT FALSE,
		quantity   INT NOT NULL CHECK (quantity >= 1),
		added_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (user_email, product_id)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id               UUID PRIMARY KEY,
		user_email       TEXT NOT NULL,
		buyer_name       TEXT NOT NULL,
		buyer_email      TEXT NOT NULL,
		shipping_address TEXT NOT NULL,
		total            NUMERIC(12,2) NOT NULL,
		status           TEXT NOT NULL DEFAULT 'PLACED',
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id         BIGSERIAL PRIMARY KEY,
		order_id   UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id BIGINT NOT NULL,
		code       TEXT NOT NULL,
		name       TEXT NOT NULL,
		category   TEXT NOT NULL,
		image      TEXT NOT NULL DEFAULT '',
		unit_price NUMERIC(12,2) NOT NULL,
		quantity   INT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders (user_email, created_at DESC)`,
}

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
