// Package registry owns the per-module transition tables and the curated
// pipeline/badge state lists. Tables are build-time constants: loaded once,
// validated at construction, read-only afterwards, so lookups need no
// synchronization.
package registry

import (
	"fmt"

	"sgc/internal/workflow/models"
)

// Registry answers transition-table and stage-sequence lookups for every
// module. Construct via New; a validation failure means the compiled tables
// are malformed and the process must not serve requests.
type Registry struct {
	transitions map[models.Module]map[models.State][]models.State
	stages      map[models.Module][]models.State
	actionable  map[models.Module][]models.State
}

// New builds the registry from the compiled tables and fails fast on any
// integrity violation: a transition target missing from its module's key
// set, a self-loop, or a stage/badge list naming an unknown state.
func New() (*Registry, error) {
	return build(moduleTransitions, stageSequences, actionableStates)
}

func build(
	transitions map[models.Module]map[models.State][]models.State,
	stages map[models.Module][]models.State,
	actionable map[models.Module][]models.State,
) (*Registry, error) {
	for module, table := range transitions {
		for from, targets := range table {
			for _, to := range targets {
				if to == from {
					return nil, fmt.Errorf("module %s: state %s lists itself as a transition target", module, from)
				}
				if _, ok := table[to]; !ok {
					return nil, fmt.Errorf("module %s: transition %s -> %s targets a state with no table entry", module, from, to)
				}
			}
		}
	}
	for module, sequence := range stages {
		table := transitions[module]
		for _, state := range sequence {
			if _, ok := table[state]; !ok {
				return nil, fmt.Errorf("module %s: stage sequence references unknown state %s", module, state)
			}
		}
	}
	for module, states := range actionable {
		table := transitions[module]
		for _, state := range states {
			if _, ok := table[state]; !ok {
				return nil, fmt.Errorf("module %s: actionable list references unknown state %s", module, state)
			}
		}
	}
	return &Registry{transitions: transitions, stages: stages, actionable: actionable}, nil
}

// AllowedNextStates returns the legal targets from the given state in table
// order. Unknown modules, unknown states and terminal states all yield an
// empty list. The returned slice is a copy.
func (r *Registry) AllowedNextStates(module models.Module, state models.State) []models.State {
	table, ok := r.transitions[module]
	if !ok {
		return []models.State{}
	}
	return append([]models.State{}, table[state]...)
}

// KnownState reports whether the state has a table entry for the module.
func (r *Registry) KnownState(module models.Module, state models.State) bool {
	table, ok := r.transitions[module]
	if !ok {
		return false
	}
	_, ok = table[state]
	return ok
}

// IsTerminal reports whether the state is known and has no outgoing edges.
func (r *Registry) IsTerminal(module models.Module, state models.State) bool {
	table, ok := r.transitions[module]
	if !ok {
		return false
	}
	targets, ok := table[state]
	return ok && len(targets) == 0
}

// StageSequence returns the canonical pipeline ordering for the module.
func (r *Registry) StageSequence(module models.Module) []models.State {
	return append([]models.State{}, r.stages[module]...)
}

// ActionableStates returns the badge state list for the module.
func (r *Registry) ActionableStates(module models.Module) []models.State {
	return append([]models.State{}, r.actionable[module]...)
}
