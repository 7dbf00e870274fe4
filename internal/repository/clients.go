package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmehdipour/phone-canon/internal/model"
	"github.com/jmoiron/sqlx"
)

type ClientsRepository interface {
	GetByAPIKey(ctx context.Context, apiKey string) (*model.Client, error)
}

type ClientsRepositoryImpl struct {
	db *sqlx.DB
}

func NewClientsRepository(db *sqlx.DB) *ClientsRepositoryImpl {
	return &ClientsRepositoryImpl{db: db}
}

var _ ClientsRepository = (*ClientsRepositoryImpl)(nil)

// GetByAPIKey returns nil, nil when no client owns the key.
func (r *ClientsRepositoryImpl) GetByAPIKey(ctx context.Context, apiKey string) (*model.Client, error) {
	var c model.Client
	err := r.db.GetContext(ctx, &c, `
		SELECT id, name, api_key, status, rate_limit_rps, created_at, updated_at
		  FROM clients
		 WHERE api_key = ? LIMIT 1
	`, apiKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
