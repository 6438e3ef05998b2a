package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"sgc/internal/workflow/models"
)

type QueueSuite struct {
	suite.Suite
	ctx context.Context
}

func TestQueueSuite(t *testing.T) {
	suite.Run(t, new(QueueSuite))
}

func (s *QueueSuite) SetupSuite() {
	s.ctx = context.Background()
}

func (s *QueueSuite) TestListItemsDecoratesWithLegalTransitions() {
	f := newFixture(s.T())
	f.seed(models.ModuleVisas, "SUBMETIDO", 1)

	page, err := f.service.ListItems(s.ctx, models.ModuleVisas, "", 0, 20)
	s.Require().NoError(err)
	s.Require().Len(page.Content, 1)

	item := page.Content[0]
	s.Equal(models.ModuleVisas, item.Module)
	s.Equal(models.State("SUBMETIDO"), item.State)
	s.Equal([]models.State{"EM_ANALISE", "CANCELADO"}, item.AllowedTransitions)
}

func (s *QueueSuite) TestListItemsStateFilter() {
	f := newFixture(s.T())
	f.seed(models.ModuleVisas, "SUBMETIDO", 2)
	f.seed(models.ModuleVisas, "EM_ANALISE", 3)

	page, err := f.service.ListItems(s.ctx, models.ModuleVisas, "EM_ANALISE", 0, 20)
	s.Require().NoError(err)
	s.Equal(3, page.TotalElements)
	for _, item := range page.Content {
		s.Equal(models.State("EM_ANALISE"), item.State)
	}
}

func (s *QueueSuite) TestListItemsPagination() {
	f := newFixture(s.T())
	f.seed(models.ModuleAgendamentos, "PENDENTE", 5)

	first, err := f.service.ListItems(s.ctx, models.ModuleAgendamentos, "", 0, 2)
	s.Require().NoError(err)
	s.Len(first.Content, 2)
	s.Equal(5, first.TotalElements)
	s.Equal(3, first.TotalPages)
	s.False(first.Last)

	last, err := f.service.ListItems(s.ctx, models.ModuleAgendamentos, "", 2, 2)
	s.Require().NoError(err)
	s.Len(last.Content, 1)
	s.True(last.Last)
}

func (s *QueueSuite) TestUnknownModuleReturnsEmptyPage() {
	// The module set is closed; a stale identifier from cached UI state
	// degrades to an empty page instead of erroring.
	f := newFixture(s.T())

	page, err := f.service.ListItems(s.ctx, models.Module("processos"), "", 0, 20)
	s.Require().NoError(err)
	s.Empty(page.Content)
	s.NotNil(page.Content)
	s.True(page.Last)
}

func (s *QueueSuite) TestItemInRetiredStateStillRenders() {
	f := newFixture(s.T())
	f.seed(models.ModuleVisas, "ESTADO_ANTIGO", 1)

	page, err := f.service.ListItems(s.ctx, models.ModuleVisas, "", 0, 20)
	s.Require().NoError(err)
	s.Require().Len(page.Content, 1)
	s.Empty(page.Content[0].AllowedTransitions)
}

func (s *QueueSuite) TestPageSizeClamping() {
	f := newFixture(s.T())
	f.seed(models.ModuleVisas, "SUBMETIDO", 1)

	page, err := f.service.ListItems(s.ctx, models.ModuleVisas, "", -1, 0)
	s.Require().NoError(err)
	s.Equal(0, page.Page)
	s.Equal(defaultPageSize, page.Size)

	page, err = f.service.ListItems(s.ctx, models.ModuleVisas, "", 0, 10_000)
	s.Require().NoError(err)
	s.Equal(maxPageSize, page.Size)
}

func (s *QueueSuite) TestCommonTransitions() {
	f := newFixture(s.T())

	common := f.service.CommonTransitions(s.ctx, models.ModuleVisas,
		[]models.State{"SUBMETIDO", "DOCUMENTOS_PENDENTES"})
	s.Equal([]models.State{"EM_ANALISE", "CANCELADO"}, common)

	s.Empty(f.service.CommonTransitions(s.ctx, models.Module("processos"),
		[]models.State{"SUBMETIDO"}))
}
