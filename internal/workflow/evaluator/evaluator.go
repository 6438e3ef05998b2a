// Package evaluator decides transition legality on top of the registry
// tables. It is pure: no side effects, no store access.
package evaluator

import (
	"sgc/internal/workflow/models"
	"sgc/internal/workflow/registry"
)

type Evaluator struct {
	registry *registry.Registry
}

func New(reg *registry.Registry) *Evaluator {
	return &Evaluator{registry: reg}
}

// IsLegalTransition reports whether from -> to is an edge in the module's
// table. Self-loops are never legal; the registry rejects them at load.
func (e *Evaluator) IsLegalTransition(module models.Module, from, to models.State) bool {
	for _, next := range e.registry.AllowedNextStates(module, from) {
		if next == to {
			return true
		}
	}
	return false
}

// LegalTransitions returns the legal targets from the given state in table
// order. The ordering is stable and feeds UI menus directly.
func (e *Evaluator) LegalTransitions(module models.Module, from models.State) []models.State {
	return e.registry.AllowedNextStates(module, from)
}

// CommonTransitions intersects the legal targets across a selection of
// current states, preserving the table order of the first state. An empty
// selection has no common targets.
func (e *Evaluator) CommonTransitions(module models.Module, states []models.State) []models.State {
	if len(states) == 0 {
		return []models.State{}
	}
	common := e.LegalTransitions(module, states[0])
	for _, state := range states[1:] {
		if len(common) == 0 {
			break
		}
		allowed := make(map[models.State]bool)
		for _, next := range e.LegalTransitions(module, state) {
			allowed[next] = true
		}
		filtered := common[:0]
		for _, next := range common {
			if allowed[next] {
				filtered = append(filtered, next)
			}
		}
		common = filtered
	}
	return common
}
