package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"sgc/internal/audit"
	"sgc/internal/workflow/models"
	id "sgc/pkg/domain"
	dErrors "sgc/pkg/domain-errors"
)

type TransitionSuite struct {
	suite.Suite
	ctx context.Context
}

func TestTransitionSuite(t *testing.T) {
	suite.Run(t, new(TransitionSuite))
}

func (s *TransitionSuite) SetupSuite() {
	s.ctx = context.Background()
}

func (s *TransitionSuite) TestLegalTransitionPersistsAndAudits() {
	f := newFixture(s.T())
	caseID := f.seed(models.ModuleVisas, "SUBMETIDO", 1)[0]

	item, err := f.service.ApplyTransition(s.ctx, models.ModuleVisas, caseID, "EM_ANALISE", "consul.silva", "documentação completa")
	s.Require().NoError(err)
	s.Equal(models.State("EM_ANALISE"), item.State)
	s.Equal([]models.State{"APROVADO", "REJEITADO", "DOCUMENTOS_PENDENTES", "CANCELADO"}, item.AllowedTransitions)

	// Re-reading the entity yields the target state.
	stored, err := f.store.GetByID(s.ctx, models.ModuleVisas, caseID)
	s.Require().NoError(err)
	s.Equal(models.State("EM_ANALISE"), stored.State)

	events := f.auditStore.All()
	s.Require().Len(events, 1)
	s.Equal(audit.ActionStateChanged, events[0].Action)
	s.Equal(models.State("SUBMETIDO"), events[0].PreviousState)
	s.Equal(models.State("EM_ANALISE"), events[0].NewState)
	s.Equal("consul.silva", events[0].Actor)
	s.Equal("documentação completa", events[0].Comment)
}

func (s *TransitionSuite) TestIllegalTransitionLeavesStateUntouched() {
	f := newFixture(s.T())
	caseID := f.seed(models.ModuleVisas, "RASCUNHO", 1)[0]

	_, err := f.service.ApplyTransition(s.ctx, models.ModuleVisas, caseID, "EMITIDO", "consul.silva", "")
	s.Require().Error(err)
	s.True(dErrors.Is(err, dErrors.CodeIllegalTransition))
	// The error names the rejected edge.
	s.Contains(err.Error(), "RASCUNHO")
	s.Contains(err.Error(), "EMITIDO")

	stored, err := f.store.GetByID(s.ctx, models.ModuleVisas, caseID)
	s.Require().NoError(err)
	s.Equal(models.State("RASCUNHO"), stored.State)

	events := f.auditStore.All()
	s.Require().Len(events, 1)
	s.Equal(audit.ActionTransitionRejected, events[0].Action)
}

func (s *TransitionSuite) TestLegalityIsCheckedAgainstStoredState() {
	// The caller may hold a stale read; legality follows the store.
	f := newFixture(s.T())
	caseID := f.seed(models.ModuleVisas, "SUBMETIDO", 1)[0]

	// Another actor cancels before our transition runs.
	_, err := f.store.UpdateState(s.ctx, models.ModuleVisas, caseID, "CANCELADO", "outro.actor", "")
	s.Require().NoError(err)

	_, err = f.service.ApplyTransition(s.ctx, models.ModuleVisas, caseID, "EM_ANALISE", "consul.silva", "")
	s.True(dErrors.Is(err, dErrors.CodeIllegalTransition))
}

func (s *TransitionSuite) TestMissingCase() {
	f := newFixture(s.T())

	_, err := f.service.ApplyTransition(s.ctx, models.ModuleVisas, id.NewCaseID(), "SUBMETIDO", "consul.silva", "")
	s.True(dErrors.Is(err, dErrors.CodeNotFound))
}

func (s *TransitionSuite) TestUnknownModule() {
	f := newFixture(s.T())

	_, err := f.service.ApplyTransition(s.ctx, models.Module("processos"), id.NewCaseID(), "SUBMETIDO", "consul.silva", "")
	s.True(dErrors.Is(err, dErrors.CodeNotFound))
}

func (s *TransitionSuite) TestCancelIsAnOrdinaryEdge() {
	f := newFixture(s.T())
	caseID := f.seed(models.ModuleAgendamentos, "CONFIRMADO", 1)[0]

	item, err := f.service.ApplyTransition(s.ctx, models.ModuleAgendamentos, caseID, "CANCELADO", "admin.costa", "pedido do cidadão")
	s.Require().NoError(err)
	s.Equal(models.State("CANCELADO"), item.State)
	s.Empty(item.AllowedTransitions)
}

func (s *TransitionSuite) TestHistoryReadPath() {
	f := newFixture(s.T())
	caseID := f.seed(models.ModuleVisas, "SUBMETIDO", 1)[0]

	_, err := f.service.ApplyTransition(s.ctx, models.ModuleVisas, caseID, "EM_ANALISE", "consul.silva", "ok")
	s.Require().NoError(err)
	_, err = f.service.ApplyTransition(s.ctx, models.ModuleVisas, caseID, "APROVADO", "consul.silva", "")
	s.Require().NoError(err)

	// A rejected attempt is audited but never part of the entity history.
	_, err = f.service.ApplyTransition(s.ctx, models.ModuleVisas, caseID, "RASCUNHO", "consul.silva", "")
	s.Require().Error(err)

	history, err := f.service.History(s.ctx, models.ModuleVisas, caseID)
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	s.Equal(models.State("SUBMETIDO"), history[0].PreviousState)
	s.Equal(models.State("EM_ANALISE"), history[0].NewState)
	s.Equal(models.State("APROVADO"), history[1].NewState)
}
