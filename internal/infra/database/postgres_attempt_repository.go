package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/grelade/platinium-booker/internal/domain/reservation"
)

// PostgresAttemptRepository persists reservation attempt outcomes.
//
// Schema:
//
//	CREATE TABLE reservation_attempts (
//	    id          BIGSERIAL PRIMARY KEY,
//	    class_id    BIGINT      NOT NULL,
//	    class_name  TEXT        NOT NULL,
//	    venue_id    BIGINT      NOT NULL,
//	    class_time  TEXT        NOT NULL,
//	    target_date TIMESTAMP   NOT NULL,
//	    succeeded   BOOLEAN     NOT NULL,
//	    tries       INT         NOT NULL,
//	    reasons     TEXT[]      NOT NULL DEFAULT '{}',
//	    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type PostgresAttemptRepository struct {
	db *sql.DB
}

func NewPostgresAttemptRepository(db *sql.DB) *PostgresAttemptRepository {
	return &PostgresAttemptRepository{db: db}
}

func (r *PostgresAttemptRepository) Create(ctx context.Context, a *reservation.Attempt) error {
	query := `INSERT INTO reservation_attempts (class_id, class_name, venue_id, class_time, target_date, succeeded, tries, reasons)
               VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
               RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		a.ClassID, a.ClassName, a.VenueID, a.ClassTime, a.TargetDate,
		a.Succeeded, a.Tries, pq.Array(a.Reasons),
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating reservation attempt: %w", err)
	}
	return nil
}

func (r *PostgresAttemptRepository) ListSince(ctx context.Context, since time.Time) ([]*reservation.Attempt, error) {
	query := `SELECT id, class_id, class_name, venue_id, class_time, target_date, succeeded, tries, reasons, created_at
               FROM reservation_attempts WHERE created_at >= $1 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("error listing reservation attempts: %w", err)
	}
	defer rows.Close()

	attempts := make([]*reservation.Attempt, 0)
	for rows.Next() {
		a := &reservation.Attempt{}
		if err := rows.Scan(&a.ID, &a.ClassID, &a.ClassName, &a.VenueID, &a.ClassTime,
			&a.TargetDate, &a.Succeeded, &a.Tries, pq.Array(&a.Reasons), &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning reservation attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reservation attempts: %w", err)
	}
	return attempts, nil
}
