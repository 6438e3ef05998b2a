package registry

import "sgc/internal/workflow/models"

// Static per-module tables. Terminal states carry an explicit empty entry so
// every state reachable in a table is also a key; construction enforces this.

var moduleTransitions = map[models.Module]map[models.State][]models.State{
	models.ModuleVisas: {
		"RASCUNHO":             {"SUBMETIDO", "CANCELADO"},
		"SUBMETIDO":            {"EM_ANALISE", "CANCELADO"},
		"EM_ANALISE":           {"APROVADO", "REJEITADO", "DOCUMENTOS_PENDENTES", "CANCELADO"},
		"DOCUMENTOS_PENDENTES": {"EM_ANALISE", "CANCELADO"},
		"APROVADO":             {"EMITIDO", "CANCELADO"},
		"EMITIDO":              {},
		"REJEITADO":            {},
		"CANCELADO":            {},
	},
	models.ModuleRegistosCivis: {
		"RASCUNHO":            {"SUBMETIDO", "CANCELADO"},
		"SUBMETIDO":           {"EM_VERIFICACAO", "CANCELADO"},
		"EM_VERIFICACAO":      {"VERIFICADO", "REJEITADO"},
		"VERIFICADO":          {"CERTIFICADO_EMITIDO", "CANCELADO"},
		"CERTIFICADO_EMITIDO": {},
		"REJEITADO":           {},
		"CANCELADO":           {},
	},
	models.ModuleServicosNotariais: {
		"RASCUNHO":         {"SUBMETIDO", "CANCELADO"},
		"SUBMETIDO":        {"EM_PROCESSAMENTO", "CANCELADO"},
		"EM_PROCESSAMENTO": {"CONCLUIDO", "REJEITADO"},
		"CONCLUIDO":        {},
		"REJEITADO":        {},
		"CANCELADO":        {},
	},
	models.ModuleAgendamentos: {
		"PENDENTE":       {"CONFIRMADO", "CANCELADO"},
		"CONFIRMADO":     {"REAGENDADO", "CANCELADO", "COMPLETADO", "NAO_COMPARECEU"},
		"REAGENDADO":     {"CONFIRMADO", "CANCELADO"},
		"COMPLETADO":     {},
		"NAO_COMPARECEU": {},
		"CANCELADO":      {},
	},
}

// stageSequences is the hand-curated pipeline ordering per module. Terminal
// failure states (REJEITADO, CANCELADO, NAO_COMPARECEU) are deliberately
// excluded; they still count toward module totals.
var stageSequences = map[models.Module][]models.State{
	models.ModuleVisas:             {"RASCUNHO", "SUBMETIDO", "EM_ANALISE", "DOCUMENTOS_PENDENTES", "APROVADO", "EMITIDO"},
	models.ModuleRegistosCivis:     {"RASCUNHO", "SUBMETIDO", "EM_VERIFICACAO", "VERIFICADO", "CERTIFICADO_EMITIDO"},
	models.ModuleServicosNotariais: {"RASCUNHO", "SUBMETIDO", "EM_PROCESSAMENTO", "CONCLUIDO"},
	models.ModuleAgendamentos:      {"PENDENTE", "CONFIRMADO", "REAGENDADO", "COMPLETADO"},
}

// actionableStates backs the dashboard badge counts. Kept separate from
// stageSequences on purpose: the two subsets differ and unifying them would
// change displayed counts.
var actionableStates = map[models.Module][]models.State{
	models.ModuleVisas:             {"SUBMETIDO", "EM_ANALISE", "DOCUMENTOS_PENDENTES", "APROVADO"},
	models.ModuleRegistosCivis:     {"SUBMETIDO", "EM_VERIFICACAO", "VERIFICADO"},
	models.ModuleServicosNotariais: {"SUBMETIDO", "EM_PROCESSAMENTO"},
	models.ModuleAgendamentos:      {"PENDENTE", "CONFIRMADO", "REAGENDADO"},
}
