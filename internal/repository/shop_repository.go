package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/lankamart/payout-engine/internal/domain"
)

type shopRepository struct {
	db *sqlx.DB
}

func NewShopRepository(db *sqlx.DB) ShopRepository {
	return &shopRepository{db: db}
}

func (r *shopRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Shop, error) {
	query := `
		SELECT id, name, owner_email, created_at
		FROM shops
		WHERE id = $1
	`

	var shop domain.Shop
	err := r.db.GetContext(ctx, &shop, query, id)
	if err != nil {
		return nil, err
	}

	return &shop, nil
}

func (r *shopRepository) List(ctx context.Context) ([]*domain.Shop, error) {
	query := `
		SELECT id, name, owner_email, created_at
		FROM shops
		ORDER BY name
	`

	var shops []*domain.Shop
	err := r.db.SelectContext(ctx, &shops, query)
	if err != nil {
		return nil, err
	}

	return shops, nil
}
