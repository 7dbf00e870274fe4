package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmehdipour/phone-canon/internal/model"
	"github.com/jmoiron/sqlx"
)

// ContactsRepository persists normalized contacts. (client_id, full_number)
// is unique, so two spellings of the same number collapse into one row.
type ContactsRepository interface {
	// Upsert inserts c or refreshes the row holding the same full number and
	// returns the id of the stored row.
	Upsert(ctx context.Context, tx *sqlx.Tx, c model.Contact) (string, error)
	UpsertBatch(ctx context.Context, tx *sqlx.Tx, rows []model.Contact) error
	GetByFullNumber(ctx context.Context, clientID int64, fullNumber string) (*model.Contact, error)
}

type ContactsRepositoryImpl struct {
	db *sqlx.DB
}

func NewContactsRepository(db *sqlx.DB) *ContactsRepositoryImpl {
	return &ContactsRepositoryImpl{db: db}
}

var _ ContactsRepository = (*ContactsRepositoryImpl)(nil)

const contactColumns = `id, client_id, name, raw_phone, country_code, full_number, local_number, region`

const contactOnDuplicate = `
	ON DUPLICATE KEY UPDATE
	    name         = VALUES(name),
	    raw_phone    = VALUES(raw_phone),
	    country_code = VALUES(country_code),
	    local_number = VALUES(local_number),
	    region       = VALUES(region),
	    updated_at   = NOW()
`

func (r *ContactsRepositoryImpl) Upsert(ctx context.Context, tx *sqlx.Tx, c model.Contact) (string, error) {
	q := `INSERT INTO contacts (` + contactColumns + `, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())` + contactOnDuplicate

	var id string
	err := withTx(ctx, r.db, tx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, q,
			c.ID, c.ClientID, c.Name, c.RawPhone, c.CountryCode, c.FullNumber, c.LocalNumber, c.Region,
		); err != nil {
			return err
		}
		return tx.GetContext(ctx, &id,
			`SELECT id FROM contacts WHERE client_id = ? AND full_number = ? LIMIT 1`,
			c.ClientID, c.FullNumber,
		)
	})
	return id, err
}

// UpsertBatch writes many contacts with a single statement.
func (r *ContactsRepositoryImpl) UpsertBatch(ctx context.Context, tx *sqlx.Tx, rows []model.Contact) error {
	if len(rows) == 0 {
		return nil
	}

	var sb strings.Builder
	args := make([]any, 0, len(rows)*8)

	sb.WriteString(`INSERT INTO contacts (` + contactColumns + `, created_at, updated_at) VALUES `)
	for i, c := range rows {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString("(?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())")
		args = append(args, c.ID, c.ClientID, c.Name, c.RawPhone, c.CountryCode, c.FullNumber, c.LocalNumber, c.Region)
	}
	sb.WriteString(contactOnDuplicate)

	return withTx(ctx, r.db, tx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, sb.String(), args...)
		return err
	})
}

func (r *ContactsRepositoryImpl) GetByFullNumber(ctx context.Context, clientID int64, fullNumber string) (*model.Contact, error) {
	var c model.Contact
	err := r.db.GetContext(ctx, &c, `
		SELECT `+contactColumns+`, created_at, updated_at
		  FROM contacts
		 WHERE client_id = ? AND full_number = ? LIMIT 1
	`, clientID, fullNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
