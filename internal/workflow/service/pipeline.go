package service

import (
	"context"

	"sgc/internal/workflow/models"
	dErrors "sgc/pkg/domain-errors"
)

// DashboardSummary fetches the per-module aggregate statistics, serving a
// cached snapshot when one is fresh. The cache is best effort: a miss or a
// cache error falls through to the store.
func (s *Service) DashboardSummary(ctx context.Context) (models.DashboardSummary, error) {
	if s.summaryCache != nil {
		if cached, ok := s.summaryCache.Get(ctx); ok {
			if s.metrics != nil {
				s.metrics.IncrementSummaryCacheHit()
			}
			return *cached, nil
		}
		if s.metrics != nil {
			s.metrics.IncrementSummaryCacheMiss()
		}
	}

	summary := models.DashboardSummary{Modules: make(map[models.Module]models.ModuleSummary, len(models.AllModules))}
	for _, module := range models.AllModules {
		moduleSummary, err := s.store.AggregateCountsByState(ctx, module)
		if err != nil {
			return models.DashboardSummary{}, dErrors.Wrap(err, dErrors.CodeStoreFailure, "failed to aggregate counts for "+string(module))
		}
		summary.Modules[module] = moduleSummary
		summary.GrandTotal += moduleSummary.Total
	}

	if s.summaryCache != nil {
		s.summaryCache.Set(ctx, summary)
	}
	return summary, nil
}

// Pipelines builds the ordered stage view for every module. Stage counts
// come from the canonical sequence only; the module total covers all
// reported states, so excluded terminal-failure states still count toward
// it. SampleItems stays empty here; item detail is the queue's job.
func (s *Service) Pipelines(ctx context.Context) ([]models.ModulePipeline, error) {
	summary, err := s.DashboardSummary(ctx)
	if err != nil {
		return nil, err
	}

	pipelines := make([]models.ModulePipeline, 0, len(models.AllModules))
	for _, module := range models.AllModules {
		moduleSummary := summary.Modules[module]
		sequence := s.registry.StageSequence(module)
		stages := make([]models.PipelineStage, 0, len(sequence))
		for _, state := range sequence {
			stages = append(stages, models.PipelineStage{
				State:       state,
				Count:       moduleSummary.ByState[state],
				SampleItems: []models.WorkflowItem{},
			})
		}
		pipelines = append(pipelines, models.ModulePipeline{
			Module: module,
			Stages: stages,
			Total:  moduleSummary.Total,
		})
	}

	if s.metrics != nil {
		s.metrics.IncrementPipelineBuilds()
	}
	return pipelines, nil
}

// BadgeCounts sums the items sitting in each module's actionable states.
// The actionable lists are curated separately from the pipeline stage
// sequences and the two are not interchangeable.
func (s *Service) BadgeCounts(ctx context.Context) (map[models.Module]int, error) {
	summary, err := s.DashboardSummary(ctx)
	if err != nil {
		return nil, err
	}

	badges := make(map[models.Module]int, len(models.AllModules))
	for _, module := range models.AllModules {
		moduleSummary := summary.Modules[module]
		count := 0
		for _, state := range s.registry.ActionableStates(module) {
			count += moduleSummary.ByState[state]
		}
		badges[module] = count
	}
	return badges, nil
}
