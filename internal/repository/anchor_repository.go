package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/lankamart/payout-engine/internal/domain"
)

// The anchor lives in a single-row table keyed by a fixed ID.
const anchorRowID = 1

type anchorRepository struct {
	db *sqlx.DB
}

func NewAnchorRepository(db *sqlx.DB) AnchorRepository {
	return &anchorRepository{db: db}
}

func (r *anchorRepository) ReadAnchor(ctx context.Context) (time.Time, error) {
	query := `
		SELECT last_payment_date
		FROM payout_state
		WHERE id = $1
	`

	var anchor time.Time
	err := r.db.GetContext(ctx, &anchor, query, anchorRowID)
	if errors.Is(err, sql.ErrNoRows) {
		// First use: seed the row with the initial anchor.
		if err := r.WriteAnchor(ctx, domain.InitialAnchor); err != nil {
			return time.Time{}, err
		}
		return domain.InitialAnchor, nil
	}
	if err != nil {
		return time.Time{}, err
	}

	return anchor, nil
}

func (r *anchorRepository) WriteAnchor(ctx context.Context, date time.Time) error {
	query := `
		INSERT INTO payout_state (id, last_payment_date, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET last_payment_date = EXCLUDED.last_payment_date, updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query, anchorRowID, date, time.Now())
	return err
}
