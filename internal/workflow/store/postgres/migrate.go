package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS demolition_requests (
	id                        UUID PRIMARY KEY,
	request_number            TEXT NOT NULL UNIQUE,
	request_type              TEXT NOT NULL,
	status                    TEXT NOT NULL,
	priority_designation      BOOLEAN NOT NULL DEFAULT FALSE,
	priority_reason           TEXT NOT NULL DEFAULT '',
	supervisor_id             UUID,
	supervisor_name           TEXT NOT NULL DEFAULT '',
	rejection_reason          TEXT NOT NULL DEFAULT '',
	initial_rejection_reason  TEXT NOT NULL DEFAULT '',
	cancellation_reason       TEXT NOT NULL DEFAULT '',
	rejection_count           INTEGER NOT NULL DEFAULT 0,
	requested_at              TIMESTAMPTZ,
	verification_requested_at TIMESTAMPTZ,
	verification_completed_at TIMESTAMPTZ,
	assigned_at               TIMESTAMPTZ,
	completed_at              TIMESTAMPTZ,
	owned                     JSONB NOT NULL,
	version                   INTEGER NOT NULL,
	created_at                TIMESTAMPTZ NOT NULL,
	updated_at                TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_demolition_requests_status ON demolition_requests (status);

CREATE SEQUENCE IF NOT EXISTS demolition_request_seq;
`

// Migrate applies the schema. Idempotent; main runs it on startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
