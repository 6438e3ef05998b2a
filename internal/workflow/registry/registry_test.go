package registry

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"sgc/internal/workflow/models"
)

type RegistrySuite struct {
	suite.Suite
	registry *Registry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupSuite() {
	var err error
	s.registry, err = New()
	s.Require().NoError(err)
}

// =============================================================================
// Construction / table integrity
// =============================================================================

func (s *RegistrySuite) TestNewValidatesCompiledTables() {
	s.Run("compiled tables pass validation", func() {
		r, err := New()
		s.NoError(err)
		s.NotNil(r)
	})

	s.Run("dangling transition target fails", func() {
		bad := map[models.Module]map[models.State][]models.State{
			models.ModuleVisas: {
				"RASCUNHO": {"SUBMETIDO"},
			},
		}
		_, err := build(bad, nil, nil)
		s.Error(err)
		s.Contains(err.Error(), "no table entry")
	})

	s.Run("self-loop fails", func() {
		bad := map[models.Module]map[models.State][]models.State{
			models.ModuleVisas: {
				"RASCUNHO": {"RASCUNHO"},
			},
		}
		_, err := build(bad, nil, nil)
		s.Error(err)
		s.Contains(err.Error(), "itself")
	})

	s.Run("stage sequence with unknown state fails", func() {
		transitions := map[models.Module]map[models.State][]models.State{
			models.ModuleVisas: {
				"RASCUNHO":  {"SUBMETIDO"},
				"SUBMETIDO": {},
			},
		}
		stages := map[models.Module][]models.State{
			models.ModuleVisas: {"RASCUNHO", "INEXISTENTE"},
		}
		_, err := build(transitions, stages, nil)
		s.Error(err)
		s.Contains(err.Error(), "unknown state")
	})

	s.Run("actionable list with unknown state fails", func() {
		transitions := map[models.Module]map[models.State][]models.State{
			models.ModuleVisas: {
				"RASCUNHO": {},
			},
		}
		badges := map[models.Module][]models.State{
			models.ModuleVisas: {"SUBMETIDO"},
		}
		_, err := build(transitions, nil, badges)
		s.Error(err)
		s.Contains(err.Error(), "unknown state")
	})
}

// =============================================================================
// Lookups
// =============================================================================

func (s *RegistrySuite) TestAllowedNextStates() {
	s.Run("returns table order", func() {
		next := s.registry.AllowedNextStates(models.ModuleVisas, "EM_ANALISE")
		s.Equal([]models.State{"APROVADO", "REJEITADO", "DOCUMENTOS_PENDENTES", "CANCELADO"}, next)
	})

	s.Run("terminal state yields empty list", func() {
		s.Empty(s.registry.AllowedNextStates(models.ModuleVisas, "EMITIDO"))
	})

	s.Run("unknown state yields empty list", func() {
		s.Empty(s.registry.AllowedNextStates(models.ModuleVisas, "DESCONHECIDO"))
	})

	s.Run("unknown module yields empty list", func() {
		s.Empty(s.registry.AllowedNextStates(models.Module("processos"), "RASCUNHO"))
	})

	s.Run("returned slice is a copy", func() {
		next := s.registry.AllowedNextStates(models.ModuleVisas, "RASCUNHO")
		next[0] = "MUTADO"
		s.Equal([]models.State{"SUBMETIDO", "CANCELADO"}, s.registry.AllowedNextStates(models.ModuleVisas, "RASCUNHO"))
	})
}

func (s *RegistrySuite) TestNoSelfLoopsInAnyTable() {
	for _, module := range models.AllModules {
		for _, state := range s.registry.StageSequence(module) {
			for _, target := range s.registry.AllowedNextStates(module, state) {
				s.NotEqual(state, target, "module %s state %s", module, state)
			}
		}
	}
}

func (s *RegistrySuite) TestTerminalStates() {
	s.True(s.registry.IsTerminal(models.ModuleVisas, "EMITIDO"))
	s.True(s.registry.IsTerminal(models.ModuleAgendamentos, "NAO_COMPARECEU"))
	s.False(s.registry.IsTerminal(models.ModuleVisas, "RASCUNHO"))
	s.False(s.registry.IsTerminal(models.ModuleVisas, "DESCONHECIDO"))
}

func (s *RegistrySuite) TestStageSequencesExcludeFailureStates() {
	for _, module := range models.AllModules {
		sequence := s.registry.StageSequence(module)
		s.NotEmpty(sequence)
		s.NotContains(sequence, models.State("REJEITADO"))
		s.NotContains(sequence, models.State("CANCELADO"))
	}
}

func (s *RegistrySuite) TestActionableStatesStayDistinctFromStages() {
	// Badge lists and stage sequences are separate curated subsets; the
	// dashboard relies on them not being substituted for one another.
	badges := s.registry.ActionableStates(models.ModuleVisas)
	s.Equal([]models.State{"SUBMETIDO", "EM_ANALISE", "DOCUMENTOS_PENDENTES", "APROVADO"}, badges)
	s.NotEqual(s.registry.StageSequence(models.ModuleVisas), badges)
}
