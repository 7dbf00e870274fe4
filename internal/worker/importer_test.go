package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jmehdipour/phone-canon/internal/kafka"
	"github.com/jmehdipour/phone-canon/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConsumer struct {
	mu        sync.Mutex
	queue     []kafka.Message
	committed []int64
}

func (f *fakeConsumer) Fetch(ctx context.Context) (kafka.Message, error) {
	f.mu.Lock()
	if len(f.queue) > 0 {
		m := f.queue[0]
		f.queue = f.queue[1:]
		f.mu.Unlock()
		return m, nil
	}
	f.mu.Unlock()

	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (f *fakeConsumer) Commit(_ context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range msgs {
		f.committed = append(f.committed, m.Offset)
	}
	return nil
}

func (f *fakeConsumer) committedOffsets() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.committed...)
}

func (f *fakeConsumer) committedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.committed)
}

type fakeWriter struct {
	mu        sync.Mutex
	batches   [][]model.Contact
	fail      error
	failFirst int // calls that fail before the writer recovers
	calls     int
}

func (f *fakeWriter) UpsertBatch(_ context.Context, _ *sqlx.Tx, rows []model.Contact) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fail != nil {
		return f.fail
	}
	if f.calls <= f.failFirst {
		return errors.New("deadlock found when trying to get lock")
	}
	f.batches = append(f.batches, append([]model.Contact(nil), rows...))
	return nil
}

func (f *fakeWriter) stored() ([][]model.Contact, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]model.Contact(nil), f.batches...), f.calls
}

func (f *fakeWriter) all() map[string]model.Contact {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[string]model.Contact{}
	for _, b := range f.batches {
		for _, c := range b {
			out[c.FullNumber] = c
		}
	}
	return out
}

func envelope(t *testing.T, offset int64, clientID int64, phone, code string) kafka.Message {
	t.Helper()
	b, err := json.Marshal(model.ImportEnvelope{
		ID:       "evt",
		ClientID: clientID,
		Contact:  model.RawContact{Name: "n", Phone: phone, CountryCode: code},
	})
	require.NoError(t, err)
	return kafka.Message{Offset: offset, Value: b}
}

func runImporter(t *testing.T, w *Importer) (stop func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	return func() {
		cancel()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("importer did not stop")
		}
	}
}

func TestImporter_NormalizesAndCommits(t *testing.T) {
	consumer := &fakeConsumer{queue: []kafka.Message{
		envelope(t, 1, 7, "012-345 6789", "+60"),
		envelope(t, 2, 7, "+389 777 988 881", ""),
		{Offset: 3, Value: []byte("{not json")},
		envelope(t, 4, 7, "--", ""),
		envelope(t, 5, 0, "0123456789", ""),
		envelope(t, 6, 7, "0123456789", "60"),
	}}
	writer := &fakeWriter{}

	w := NewImporter(consumer, writer, nil, "")
	w.Workers = 2
	w.BatchSize = 100
	w.BatchWait = 10 * time.Millisecond

	stop := runImporter(t, w)
	assert.Eventually(t, func() bool { return consumer.committedCount() == 6 }, 2*time.Second, 5*time.Millisecond)
	stop()

	stored := writer.all()
	assert.Len(t, stored, 2)
	assert.Equal(t, "123456789", stored["+60123456789"].LocalNumber)
	assert.Equal(t, int64(7), stored["+60123456789"].ClientID)
	assert.Equal(t, "389", stored["+389777988881"].CountryCode)
	assert.NotEmpty(t, stored["+389777988881"].ID)
}

func TestImporter_FailedFlushKeepsOffsets(t *testing.T) {
	consumer := &fakeConsumer{queue: []kafka.Message{
		envelope(t, 1, 7, "0123456789", ""),
	}}
	writer := &fakeWriter{fail: errors.New("mysql gone")}

	w := NewImporter(consumer, writer, nil, "")
	w.Workers = 1
	w.BatchWait = 10 * time.Millisecond

	stop := runImporter(t, w)
	time.Sleep(50 * time.Millisecond)
	stop()

	assert.Zero(t, consumer.committedCount())
}

func TestImporter_FailedFlushIsRetriedBeforeLaterCommits(t *testing.T) {
	consumer := &fakeConsumer{queue: []kafka.Message{
		envelope(t, 0, 7, "0123456789", ""),
		envelope(t, 1, 7, "+389 777 988 881", ""),
	}}
	writer := &fakeWriter{failFirst: 2}

	w := NewImporter(consumer, writer, nil, "")
	w.Workers = 1
	w.BatchSize = 1
	w.BatchWait = time.Hour
	w.RetryBackoff = 5 * time.Millisecond

	stop := runImporter(t, w)
	assert.Eventually(t, func() bool { return consumer.committedCount() == 2 }, 2*time.Second, 5*time.Millisecond)
	stop()

	// offset 0 is committed first and only once its contact was stored
	assert.Equal(t, []int64{0, 1}, consumer.committedOffsets())

	batches, calls := writer.stored()
	assert.Equal(t, 4, calls)
	require.Len(t, batches, 2)
	require.Len(t, batches[0], 1)
	assert.Equal(t, "+60123456789", batches[0][0].FullNumber)
	assert.Equal(t, "+389777988881", batches[1][0].FullNumber)
}

func TestImporter_AbandonedBatchBlocksLaterCommits(t *testing.T) {
	consumer := &fakeConsumer{queue: []kafka.Message{
		envelope(t, 0, 7, "0123456789", ""),
		envelope(t, 1, 7, "+389 777 988 881", ""),
		envelope(t, 2, 7, "+44 20 7946 0018", ""),
	}}
	writer := &fakeWriter{fail: errors.New("mysql gone")}

	w := NewImporter(consumer, writer, nil, "")
	w.Workers = 1
	w.BatchSize = 1
	w.BatchWait = time.Hour
	w.RetryBackoff = time.Hour

	stop := runImporter(t, w)
	assert.Eventually(t, func() bool {
		_, calls := writer.stored()
		return calls == 1
	}, 2*time.Second, time.Millisecond)

	// the writer recovers while the first batch waits out its backoff; the
	// batch is abandoned at shutdown and the later ones must not commit
	writer.mu.Lock()
	writer.fail = nil
	writer.mu.Unlock()
	stop()

	assert.Empty(t, consumer.committedOffsets())
	_, calls := writer.stored()
	assert.Equal(t, 1, calls)
}

func TestImporter_FlushesOnShutdown(t *testing.T) {
	consumer := &fakeConsumer{queue: []kafka.Message{
		envelope(t, 1, 3, "0123456789", ""),
	}}
	writer := &fakeWriter{}

	w := NewImporter(consumer, writer, nil, "")
	w.Workers = 1
	w.BatchWait = time.Hour

	stop := runImporter(t, w)
	time.Sleep(50 * time.Millisecond)
	stop()

	assert.Equal(t, 1, consumer.committedCount())
	assert.Contains(t, writer.all(), "+60123456789")
}

func TestProcessOne_DefaultCountryCode(t *testing.T) {
	w := NewImporter(&fakeConsumer{}, &fakeWriter{}, nil, "44")

	it := w.processOne(envelope(t, 9, 2, "20 7946 0018", ""))
	assert.Equal(t, "+442079460018", it.contact.FullNumber)
	assert.Equal(t, int64(9), it.msg.Offset)

	it = w.processOne(envelope(t, 10, 2, "0123456789", "+60"))
	assert.Equal(t, "+60123456789", it.contact.FullNumber)

	it = w.processOne(envelope(t, 11, 2, "", ""))
	assert.Empty(t, it.contact.FullNumber)
	assert.Equal(t, int64(11), it.msg.Offset)
}

func TestDedupe(t *testing.T) {
	rows := []model.Contact{
		{ClientID: 1, FullNumber: "+60123456789", Name: "a"},
		{ClientID: 2, FullNumber: "+60123456789", Name: "b"},
		{ClientID: 1, FullNumber: "+60123456789", Name: "c"},
	}

	out := dedupe(rows)
	require.Len(t, out, 2)
	assert.Equal(t, "c", out[0].Name)
	assert.Equal(t, "b", out[1].Name)
	assert.Equal(t, "a", rows[0].Name)
}

func TestImporter_RunRequiresDeps(t *testing.T) {
	err := (&Importer{}).Run(context.Background())
	assert.Error(t, err)
}
