package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/jmehdipour/phone-canon/internal/kafka"
	"github.com/jmehdipour/phone-canon/internal/metrics"
	"github.com/jmehdipour/phone-canon/internal/model"
	"github.com/jmehdipour/phone-canon/internal/service/contacts"
	"github.com/jmehdipour/phone-canon/internal/util"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Fetcher is the subset of kafka.Consumer the importer uses.
type Fetcher interface {
	Fetch(ctx context.Context) (kafka.Message, error)
	Commit(ctx context.Context, msgs ...kafka.Message) error
}

// ContactWriter stores a batch of contacts; a nil tx means "own transaction".
type ContactWriter interface {
	UpsertBatch(ctx context.Context, tx *sqlx.Tx, rows []model.Contact) error
}

// Importer:
// - fetches raw contacts from Kafka,
// - normalizes each phone number,
// - batches upserts into MySQL and commits offsets only after a batch is stored.
type Importer struct {
	// Dependencies
	Consumer Fetcher
	Contacts ContactWriter
	Log      *zap.Logger

	// Behavior
	Workers            int           // number of goroutines normalizing messages
	BatchSize          int           // max buffered contacts per flush
	BatchWait          time.Duration // max time to wait before flush
	DefaultCountryCode string        // applied when an event has no country code
	RetryBackoff       time.Duration // first delay after a failed upsert, doubled up to maxRetryBackoff
}

const maxRetryBackoff = 10 * time.Second

// NewImporter builds a worker with sane defaults.
func NewImporter(consumer Fetcher, contactsRepo ContactWriter, log *zap.Logger, defaultCountryCode string) *Importer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{
		Consumer:           consumer,
		Contacts:           contactsRepo,
		Log:                log,
		Workers:            8,
		BatchSize:          200,
		BatchWait:          300 * time.Millisecond,
		DefaultCountryCode: defaultCountryCode,
		RetryBackoff:       500 * time.Millisecond,
	}
}

type importItem struct {
	contact model.Contact // zero when the message is skipped
	msg     kafka.Message
}

// Run starts the worker and blocks until ctx is cancelled and the last batch is flushed.
func (w *Importer) Run(ctx context.Context) error {
	if w.Consumer == nil || w.Contacts == nil {
		return errors.New("importer: missing consumer or contacts writer")
	}
	if w.Log == nil {
		w.Log = zap.NewNop()
	}
	if w.Workers <= 0 {
		w.Workers = 8
	}
	if w.BatchSize <= 0 {
		w.BatchSize = 200
	}
	if w.BatchWait <= 0 {
		w.BatchWait = 300 * time.Millisecond
	}
	if w.RetryBackoff <= 0 {
		w.RetryBackoff = 500 * time.Millisecond
	}

	// processors → batch writer
	items := make(chan importItem, w.BatchSize*2)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		w.runBatchWriter(ctx, items)
	}()

	// fetch loop → fan-out to processors
	msgCh := make(chan kafka.Message, w.Workers*2)
	go func() {
		defer close(msgCh)
		for {
			m, err := w.Consumer.Fetch(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				w.Log.Warn("kafka fetch failed", zap.Error(err))
				select {
				case <-ctx.Done():
					return
				case <-time.After(200 * time.Millisecond):
				}
				continue
			}
			select {
			case msgCh <- m:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < w.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for m := range msgCh {
				items <- w.processOne(m)
			}
		}()
	}

	<-ctx.Done()
	wg.Wait()
	close(items)
	<-writerDone
	return nil
}

// processOne turns a Kafka message into a contact. Poison messages come back
// with a zero contact so their offset is still committed.
func (w *Importer) processOne(m kafka.Message) importItem {
	var env model.ImportEnvelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		w.Log.Warn("bad import envelope", zap.Error(err), zap.Int64("offset", m.Offset))
		return importItem{msg: m}
	}
	if env.ClientID <= 0 {
		w.Log.Warn("import envelope missing client_id", zap.String("id", env.ID), zap.Int64("offset", m.Offset))
		return importItem{msg: m}
	}

	c, outcome, err := contacts.BuildContact(util.NewID(), env.ClientID, env.Contact, w.DefaultCountryCode)
	metrics.NormalizationsTotal.WithLabelValues(model.SourceImporter.String(), outcome.String()).Inc()
	if err != nil {
		w.Log.Info("skipping contact with invalid phone",
			zap.String("id", env.ID),
			zap.Int64("client_id", env.ClientID),
			zap.Error(err),
		)
		return importItem{msg: m}
	}
	return importItem{contact: c, msg: m}
}

// dedupe keeps the last contact per (client, full number); the batch insert
// would otherwise touch the same row twice.
func dedupe(rows []model.Contact) []model.Contact {
	idx := make(map[string]int, len(rows))
	out := rows[:0:0]
	for _, c := range rows {
		key := strconv.FormatInt(c.ClientID, 10) + "|" + c.FullNumber
		if i, ok := idx[key]; ok {
			out[i] = c
			continue
		}
		idx[key] = len(out)
		out = append(out, c)
	}
	return out
}

// runBatchWriter does size/time-based flushes until in is closed.
func (w *Importer) runBatchWriter(ctx context.Context, in <-chan importItem) {
	tick := time.NewTicker(w.BatchWait)
	defer tick.Stop()

	// offsets and the final flush must survive shutdown
	bg := context.WithoutCancel(ctx)

	var rows []model.Contact
	var msgs []kafka.Message

	// set once a batch is given up on; committing anything after it would
	// move the partition offset past the unstored contacts
	abandoned := false

	flush := func() {
		if len(msgs) == 0 {
			return
		}
		defer func() {
			rows = rows[:0]
			msgs = msgs[:0]
		}()
		if abandoned {
			return
		}

		batch := dedupe(rows)
		if !w.upsertWithRetry(ctx, bg, batch) {
			abandoned = true
			w.Log.Warn("importer stopped before batch was stored; offsets left uncommitted",
				zap.Int("contacts", len(batch)),
				zap.Int64("first_offset", msgs[0].Offset),
			)
			return
		}
		metrics.ContactsFlushedTotal.WithLabelValues("ok").Add(float64(len(batch)))

		if err := w.Consumer.Commit(bg, msgs...); err != nil {
			w.Log.Error("kafka commit failed", zap.Int("messages", len(msgs)), zap.Error(err))
			return
		}

		w.Log.Info("importer flushed",
			zap.Int("contacts", len(batch)),
			zap.Int("messages", len(msgs)),
		)
	}

	for {
		select {
		case it, ok := <-in:
			if !ok {
				flush()
				return
			}
			if it.contact.FullNumber != "" {
				rows = append(rows, it.contact)
			}
			msgs = append(msgs, it.msg)

			if len(msgs) >= w.BatchSize {
				flush()
			}

		case <-tick.C:
			flush()
		}
	}
}

// upsertWithRetry stores batch, retrying with exponential backoff while ctx is
// live. The writer holds the batch meanwhile, so no later offset is committed.
// It reports false when ctx ends before the batch is stored.
func (w *Importer) upsertWithRetry(ctx, writeCtx context.Context, batch []model.Contact) bool {
	delay := w.RetryBackoff
	for {
		err := w.Contacts.UpsertBatch(writeCtx, nil, batch)
		if err == nil {
			return true
		}
		metrics.ContactsFlushedTotal.WithLabelValues("error").Add(float64(len(batch)))
		w.Log.Error("contacts batch upsert failed",
			zap.Int("contacts", len(batch)),
			zap.Duration("retry_in", delay),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return false
		case <-time.After(delay):
		}
		delay = min(delay*2, maxRetryBackoff)
	}
}
