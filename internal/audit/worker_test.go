package audit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type fakeSource struct {
	mu        sync.Mutex
	pending   []OutboxEntry
	published []uuid.UUID
}

func (f *fakeSource) FetchUnpublished(_ context.Context, limit int) ([]OutboxEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.pending) == 0 {
		return nil, nil
	}
	n := min(limit, len(f.pending))
	return append([]OutboxEntry{}, f.pending[:n]...), nil
}

func (f *fakeSource) MarkPublished(_ context.Context, ids []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	marked := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		marked[id] = true
		f.published = append(f.published, id)
	}
	remaining := f.pending[:0]
	for _, entry := range f.pending {
		if !marked[entry.ID] {
			remaining = append(remaining, entry)
		}
	}
	f.pending = remaining
	return nil
}

type fakeProducer struct {
	mu      sync.Mutex
	keys    []string
	failFor map[string]error
}

func (f *fakeProducer) Produce(_ context.Context, key string, _ []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failFor[key]; err != nil {
		return err
	}
	f.keys = append(f.keys, key)
	return nil
}

type WorkerSuite struct {
	suite.Suite
	source   *fakeSource
	producer *fakeProducer
	worker   *Worker
}

func TestWorkerSuite(t *testing.T) {
	suite.Run(t, new(WorkerSuite))
}

func (s *WorkerSuite) SetupTest() {
	s.source = &fakeSource{}
	s.producer = &fakeProducer{failFor: map[string]error{}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.worker = NewWorker(s.source, s.producer, logger, time.Second, 10)
}

func entry(key string) OutboxEntry {
	return OutboxEntry{ID: uuid.New(), Key: key, Payload: []byte(`{}`), CreatedAt: time.Now()}
}

func (s *WorkerSuite) TestDrainPublishesAndMarks() {
	first := entry("case-1")
	second := entry("case-2")
	s.source.pending = []OutboxEntry{first, second}

	s.Require().NoError(s.worker.drain(context.Background()))

	s.Equal([]string{"case-1", "case-2"}, s.producer.keys)
	s.ElementsMatch([]uuid.UUID{first.ID, second.ID}, s.source.published)
	s.Empty(s.source.pending)
}

func (s *WorkerSuite) TestDrainStopsAtFirstPublishFailure() {
	ok := entry("case-1")
	failing := entry("case-2")
	after := entry("case-3")
	s.source.pending = []OutboxEntry{ok, failing, after}
	s.producer.failFor["case-2"] = errors.New("broker unavailable")

	s.Require().NoError(s.worker.drain(context.Background()))

	// The entry before the failure is marked; the failing entry and
	// everything behind it stay pending for the next tick.
	s.Equal([]uuid.UUID{ok.ID}, s.source.published)
	s.Len(s.source.pending, 2)
	s.Equal(failing.ID, s.source.pending[0].ID)
}

func (s *WorkerSuite) TestDrainEmptyOutboxIsNoOp() {
	s.Require().NoError(s.worker.drain(context.Background()))
	s.Empty(s.producer.keys)
}

func (s *WorkerSuite) TestRunStopsOnContextCancel() {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.worker.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		s.ErrorIs(err, context.Canceled)
	case <-time.After(2 * time.Second):
		s.Fail("worker did not stop on cancel")
	}
}
