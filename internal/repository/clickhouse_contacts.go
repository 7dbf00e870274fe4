package repository

import (
	"context"

	"github.com/jmehdipour/phone-canon/internal/model"
	"github.com/jmoiron/sqlx"
)

// CHContactsRepository lists contacts from ClickHouse (final view).
type CHContactsRepository interface {
	ListByClient(ctx context.Context, clientID int64, countryCode string, limit, offset int) ([]model.Contact, error)
}

type chContactsRepository struct {
	ch *sqlx.DB // ClickHouse connection
}

func NewCHContactsRepository(ch *sqlx.DB) CHContactsRepository {
	return &chContactsRepository{ch: ch}
}

func (r *chContactsRepository) ListByClient(ctx context.Context, clientID int64, countryCode string, limit, offset int) ([]model.Contact, error) {
	if limit <= 0 || limit > 1000 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	q := `
		SELECT id, client_id, name, raw_phone, country_code, full_number, local_number, region, created_at, updated_at
		FROM phonecanon.contacts_latest
		WHERE client_id = ?
	`
	args := []any{clientID}

	if countryCode != "" {
		q += " AND country_code = ?"
		args = append(args, countryCode)
	}

	q += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	var rows []model.Contact
	if err := r.ch.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, err
	}
	return rows, nil
}
