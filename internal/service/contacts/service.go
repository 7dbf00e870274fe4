package contacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmehdipour/phone-canon/internal/metrics"
	"github.com/jmehdipour/phone-canon/internal/model"
	"github.com/jmehdipour/phone-canon/internal/repository"
	"github.com/jmehdipour/phone-canon/internal/util"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const NormalizedKafkaTopic = "contacts.normalized"

var (
	ErrInvalidPhone = errors.New("invalid phone")
	ErrNotFound     = errors.New("contact not found")
)

// Service stores canonical contacts and their outbox events atomically.
type Service struct {
	db       *sqlx.DB
	contacts repository.ContactsRepository
	outbox   repository.OutboxRepository
	log      *zap.Logger

	defaultCode string
}

// New constructs the contacts service.
func New(
	db *sqlx.DB,
	contactsRepo repository.ContactsRepository,
	outboxRepo repository.OutboxRepository,
	log *zap.Logger,
	defaultCountryCode string,
) *Service {
	return &Service{
		db:          db,
		contacts:    contactsRepo,
		outbox:      outboxRepo,
		log:         log,
		defaultCode: defaultCountryCode,
	}
}

// Save normalizes in and upserts it under clientID. A number already stored
// in any other spelling updates the existing row; created reports whether a
// new row was inserted.
func (s *Service) Save(ctx context.Context, clientID int64, in model.RawContact) (model.Contact, bool, error) {
	newID := util.NewID()

	c, outcome, err := BuildContact(newID, clientID, in, s.defaultCode)
	metrics.NormalizationsTotal.WithLabelValues(model.SourceAPI.String(), outcome.String()).Inc()
	if err != nil {
		return model.Contact{}, false, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Contact{}, false, err
	}
	defer func() { _ = tx.Rollback() }()

	storedID, err := s.contacts.Upsert(ctx, tx, c)
	if err != nil {
		return model.Contact{}, false, fmt.Errorf("upsert contact: %w", err)
	}
	c.ID = storedID
	created := storedID == newID

	payload, err := json.Marshal(model.NormalizedEvent{
		ContactID:   c.ID,
		ClientID:    clientID,
		FullNumber:  c.FullNumber,
		CountryCode: c.CountryCode,
		Created:     created,
	})
	if err != nil {
		return model.Contact{}, false, fmt.Errorf("marshal event: %w", err)
	}

	if err := s.outbox.Insert(ctx, tx, model.OutboxEvent{
		Aggregate:   "contact",
		AggregateID: c.ID,
		Topic:       NormalizedKafkaTopic,
		Payload:     payload,
	}); err != nil {
		return model.Contact{}, false, fmt.Errorf("insert outbox: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return model.Contact{}, false, err
	}

	s.log.Debug("contact saved",
		zap.String("id", c.ID),
		zap.Int64("client_id", clientID),
		zap.String("full_number", c.FullNumber),
		zap.Bool("created", created),
	)
	return c, created, nil
}

// Lookup finds the stored contact equal to (raw, code).
func (s *Service) Lookup(ctx context.Context, clientID int64, raw, code string) (*model.Contact, error) {
	n, err := Parse(raw, code, s.defaultCode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPhone, err)
	}

	c, err := s.contacts.GetByFullNumber(ctx, clientID, n.Key())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}
