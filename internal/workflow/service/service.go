// Package service implements the workflow core operations: pipeline
// aggregation, queue reads, single transitions and bulk transitions. It
// keeps orchestration out of handlers and delegates persistence to the
// entity store collaborator.
package service

import (
	"fmt"
	"log/slog"

	"sgc/internal/workflow/evaluator"
	"sgc/internal/workflow/metrics"
	"sgc/internal/workflow/ports"
	"sgc/internal/workflow/registry"
)

const defaultBulkFanOut = 8

type Service struct {
	store          ports.EntityStore
	registry       *registry.Registry
	evaluator      *evaluator.Evaluator
	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher ports.AuditPublisher
	historyReader  ports.HistoryReader
	summaryCache   ports.SummaryCache
	bulkFanOut     int
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher ports.AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithHistoryReader(reader ports.HistoryReader) Option {
	return func(s *Service) {
		s.historyReader = reader
	}
}

func WithSummaryCache(cache ports.SummaryCache) Option {
	return func(s *Service) {
		s.summaryCache = cache
	}
}

// WithBulkFanOut bounds how many per-item store calls a bulk operation may
// have in flight at once.
func WithBulkFanOut(width int) Option {
	return func(s *Service) {
		if width > 0 {
			s.bulkFanOut = width
		}
	}
}

func New(store ports.EntityStore, reg *registry.Registry, eval *evaluator.Evaluator, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("entity store is required")
	}
	if reg == nil {
		return nil, fmt.Errorf("registry is required")
	}
	if eval == nil {
		return nil, fmt.Errorf("evaluator is required")
	}

	svc := &Service{
		store:      store,
		registry:   reg,
		evaluator:  eval,
		bulkFanOut: defaultBulkFanOut,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}
