package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// OutboxEntry is one unpublished audit event row.
type OutboxEntry struct {
	ID        uuid.UUID
	Key       string
	Payload   []byte
	CreatedAt time.Time
}

// OutboxSource drains the outbox table backing the store.
type OutboxSource interface {
	FetchUnpublished(ctx context.Context, limit int) ([]OutboxEntry, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID) error
}

// Producer ships serialized events to the downstream broker.
type Producer interface {
	Produce(ctx context.Context, key string, payload []byte) error
}

// Worker drains the audit outbox and publishes entries to the broker. The
// store row is the source of truth; a publish failure leaves the entry
// unpublished and it is retried on the next tick.
type Worker struct {
	source    OutboxSource
	producer  Producer
	logger    *slog.Logger
	interval  time.Duration
	batchSize int
}

func NewWorker(source OutboxSource, producer Producer, logger *slog.Logger, interval time.Duration, batchSize int) *Worker {
	if interval <= 0 {
		interval = time.Second
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Worker{source: source, producer: producer, logger: logger, interval: interval, batchSize: batchSize}
}

func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.drain(ctx); err != nil {
				w.logger.ErrorContext(ctx, "audit outbox drain failed", "error", err)
			}
		}
	}
}

func (w *Worker) drain(ctx context.Context) error {
	for {
		entries, err := w.source.FetchUnpublished(ctx, w.batchSize)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}

		published := make([]uuid.UUID, 0, len(entries))
		for _, entry := range entries {
			if err := w.producer.Produce(ctx, entry.Key, entry.Payload); err != nil {
				w.logger.WarnContext(ctx, "audit publish failed, will retry",
					"outbox_id", entry.ID,
					"error", err,
				)
				break
			}
			published = append(published, entry.ID)
		}
		if len(published) > 0 {
			if err := w.source.MarkPublished(ctx, published); err != nil {
				return err
			}
		}
		if len(published) < len(entries) {
			// Stop on the first publish failure; order within the outbox
			// is preserved for the next attempt.
			return nil
		}
	}
}
