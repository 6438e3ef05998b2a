// Package models defines the workflow domain types shared by the registry,
// evaluator, services, stores and handlers.
package models

import (
	"time"

	id "sgc/pkg/domain"
	dErrors "sgc/pkg/domain-errors"
)

// Module identifies a case-type with its own independent state space.
// The set is closed and compiled in; states are never shared across modules
// even when names coincide.
type Module string

const (
	ModuleVisas             Module = "visas"
	ModuleRegistosCivis     Module = "registosCivis"
	ModuleServicosNotariais Module = "servicosNotariais"
	ModuleAgendamentos      Module = "agendamentos"
)

// AllModules lists the modules in their canonical display order.
var AllModules = []Module{
	ModuleVisas,
	ModuleRegistosCivis,
	ModuleServicosNotariais,
	ModuleAgendamentos,
}

var validModules = map[Module]bool{
	ModuleVisas:             true,
	ModuleRegistosCivis:     true,
	ModuleServicosNotariais: true,
	ModuleAgendamentos:      true,
}

func (m Module) IsValid() bool {
	return validModules[m]
}

// ParseModule constructs a Module from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
// Callers that must degrade to empty results for stale module identifiers
// should check Module.IsValid instead of treating this as fatal.
func ParseModule(s string) (Module, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "module cannot be empty")
	}
	m := Module(s)
	if !m.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unsupported module: "+s)
	}
	return m, nil
}

// State is a status value scoped to one module's lifecycle.
type State string

// RawCase is the collaborator store's projection of a case entity. The
// store owns persistence and the audit trail; this core only reads it and
// requests state changes.
type RawCase struct {
	ID          id.CaseID
	CitizenName string
	Number      string
	Type        string
	State       State
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// WorkflowItem is the queue-display projection of a case. AllowedTransitions
// is derived by the evaluator at read time and never persisted.
type WorkflowItem struct {
	ID                 id.CaseID `json:"id"`
	Module             Module    `json:"module"`
	CitizenName        string    `json:"cidadaoNome"`
	Number             string    `json:"numero"`
	Type               string    `json:"tipo"`
	State              State     `json:"estado"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
	AllowedTransitions []State   `json:"allowedTransitions"`
}

// ItemPage is one page of queue items.
type ItemPage struct {
	Content       []WorkflowItem `json:"content"`
	Page          int            `json:"page"`
	Size          int            `json:"size"`
	TotalElements int            `json:"totalElements"`
	TotalPages    int            `json:"totalPages"`
	Last          bool           `json:"last"`
}

// EmptyPage returns a well-formed page with no content, used as the
// defensive default for unrecognized modules.
func EmptyPage(page, size int) ItemPage {
	return ItemPage{Content: []WorkflowItem{}, Page: page, Size: size, Last: true}
}

// PipelineStage is a snapshot of one canonical stage. SampleItems stays
// empty in aggregate calls; item detail is fetched lazily via the queue.
type PipelineStage struct {
	State       State          `json:"estado"`
	Count       int            `json:"count"`
	SampleItems []WorkflowItem `json:"items"`
}

// ModulePipeline is the ordered stage view for one module. Total covers all
// reported states, including terminal-failure states excluded from the
// stage sequence, so it may exceed the sum of stage counts.
type ModulePipeline struct {
	Module Module          `json:"module"`
	Stages []PipelineStage `json:"stages"`
	Total  int             `json:"total"`
}

// ModuleSummary mirrors the store's aggregate statistics for one module.
type ModuleSummary struct {
	Total   int            `json:"total"`
	ByState map[State]int  `json:"porEstado"`
	ByType  map[string]int `json:"porTipo"`
}

// DashboardSummary is the cross-module aggregate feeding the pipeline view.
type DashboardSummary struct {
	Modules    map[Module]ModuleSummary `json:"modules"`
	GrandTotal int                      `json:"totalGeral"`
}

// BulkResult reports per-item outcomes of a bulk transition. Partial
// failure is not an error: every input id lands in exactly one slice.
type BulkResult struct {
	Succeeded []id.CaseID `json:"success"`
	Failed    []id.CaseID `json:"failed"`
}

// HistoryEntry is one audit trail row for a case, produced by the store on
// every state change and read back for detail views.
type HistoryEntry struct {
	PreviousState State     `json:"estadoAnterior"`
	NewState      State     `json:"estadoNovo"`
	Actor         string    `json:"actor"`
	Comment       string    `json:"comentario"`
	Timestamp     time.Time `json:"dataHora"`
}
