package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"sgc/internal/platform/metrics"
	"sgc/internal/platform/middleware"
	"sgc/internal/transport/http/shared"
	"sgc/internal/workflow/models"
	id "sgc/pkg/domain"
	dErrors "sgc/pkg/domain-errors"
)

// Roles permitted to read workflow views and to change state. Role checks
// live here, in the layer wrapping the core; the services assume an
// authorized caller and check state legality only.
var (
	readRoles  = []string{"ADMIN", "CONSUL", "OFICIAL"}
	writeRoles = []string{"ADMIN", "CONSUL"}
)

// Service defines the interface for workflow operations.
type Service interface {
	DashboardSummary(ctx context.Context) (models.DashboardSummary, error)
	Pipelines(ctx context.Context) ([]models.ModulePipeline, error)
	BadgeCounts(ctx context.Context) (map[models.Module]int, error)
	ListItems(ctx context.Context, module models.Module, stateFilter models.State, page, size int) (models.ItemPage, error)
	ApplyTransition(ctx context.Context, module models.Module, caseID id.CaseID, targetState models.State, actor, comment string) (models.WorkflowItem, error)
	BulkApply(ctx context.Context, module models.Module, ids []id.CaseID, targetState models.State, actor, comment string) (models.BulkResult, error)
	History(ctx context.Context, module models.Module, caseID id.CaseID) ([]models.HistoryEntry, error)
	CommonTransitions(ctx context.Context, module models.Module, caseStates []models.State) []models.State
}

// Handler handles the workflow endpoints.
type Handler struct {
	logger       *slog.Logger
	workflow     Service
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
}

// New creates a new workflow Handler.
func New(
	workflow Service,
	logger *slog.Logger,
	metrics *metrics.Metrics,
	jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		workflow:     workflow,
		metrics:      metrics,
		jwtValidator: jwtValidator,
	}
}

// Register registers the workflow routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	workflowRouter := chi.NewRouter()
	workflowRouter.Use(middleware.Recovery(h.logger))
	workflowRouter.Use(middleware.RequestID)
	workflowRouter.Use(middleware.Logger(h.logger))
	workflowRouter.Use(middleware.Timeout(30 * time.Second))
	workflowRouter.Use(middleware.ContentTypeJSON)
	workflowRouter.Use(middleware.LatencyMiddleware(h.metrics))
	workflowRouter.Use(middleware.RequireAuth(h.jwtValidator, h.logger))

	workflowRouter.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(h.logger, readRoles...))
		r.Get("/workflow/pipeline", h.handlePipeline)
		r.Get("/workflow/badges", h.handleBadges)
		r.Get("/workflow/{module}/queue", h.handleQueue)
		r.Get("/workflow/{module}/{id}/historico", h.handleHistory)
		r.Post("/workflow/{module}/transicoes-comuns", h.handleCommonTransitions)
	})

	workflowRouter.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(h.logger, writeRoles...))
		r.Patch("/workflow/{module}/{id}/estado", h.handleTransition)
		r.Post("/workflow/{module}/bulk-estado", h.handleBulkTransition)
	})

	r.Mount("/", workflowRouter)
}

// handlePipeline returns the dashboard summary alongside the per-module
// stage views derived from it.
func (h *Handler) handlePipeline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summary, err := h.workflow.DashboardSummary(ctx)
	if err != nil {
		h.logError(ctx, "failed to load dashboard summary", err)
		shared.WriteError(w, err)
		return
	}
	pipelines, err := h.workflow.Pipelines(ctx)
	if err != nil {
		h.logError(ctx, "failed to build pipelines", err)
		shared.WriteError(w, err)
		return
	}

	shared.WriteData(w, http.StatusOK, pipelineResponse{
		Dashboard: summary,
		Pipelines: pipelines,
	})
}

func (h *Handler) handleBadges(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	badges, err := h.workflow.BadgeCounts(ctx)
	if err != nil {
		h.logError(ctx, "failed to compute badge counts", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteData(w, http.StatusOK, badges)
}

func (h *Handler) handleQueue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	module := models.Module(chi.URLParam(r, "module"))
	stateFilter := models.State(r.URL.Query().Get("estado"))
	page := queryInt(r, "page", 0)
	size := queryInt(r, "size", 20)

	// Unknown modules intentionally fall through: the service answers
	// with an empty page for stale client state.
	itemPage, err := h.workflow.ListItems(ctx, module, stateFilter, page, size)
	if err != nil {
		h.logError(ctx, "failed to list queue items", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteData(w, http.StatusOK, itemPage)
}

func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	module, err := models.ParseModule(chi.URLParam(r, "module"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	caseID, err := id.ParseCaseID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var req models.TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid transition request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		shared.WriteError(w, err)
		return
	}

	item, err := h.workflow.ApplyTransition(ctx, module, caseID, req.State, h.actor(ctx), req.Comment)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeIllegalTransition) || dErrors.Is(err, dErrors.CodeNotFound) {
			h.logger.WarnContext(ctx, "transition rejected",
				"request_id", middleware.GetRequestID(ctx),
				"module", string(module),
				"case_id", caseID.String(),
				"error", err.Error(),
			)
			shared.WriteError(w, err)
			return
		}
		h.logError(ctx, "failed to apply transition", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteData(w, http.StatusOK, item)
}

func (h *Handler) handleBulkTransition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	module, err := models.ParseModule(chi.URLParam(r, "module"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var req models.BulkTransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		shared.WriteError(w, err)
		return
	}

	ids := make([]id.CaseID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		caseID, err := id.ParseCaseID(raw)
		if err != nil {
			shared.WriteError(w, err)
			return
		}
		ids = append(ids, caseID)
	}

	// Partial failure is a 200 with both id sets; only a total failure
	// (validation, store outage before dispatch) is an error status.
	result, err := h.workflow.BulkApply(ctx, module, ids, req.State, h.actor(ctx), req.Comment)
	if err != nil {
		h.logError(ctx, "bulk transition failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteData(w, http.StatusOK, result)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	module, err := models.ParseModule(chi.URLParam(r, "module"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	caseID, err := id.ParseCaseID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	history, err := h.workflow.History(ctx, module, caseID)
	if err != nil {
		h.logError(ctx, "failed to read case history", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteData(w, http.StatusOK, history)
}

// handleCommonTransitions answers with the targets legal for every state in
// the selection, so the bulk UI offers only transitions that can succeed
// everywhere.
func (h *Handler) handleCommonTransitions(w http.ResponseWriter, r *http.Request) {
	module, err := models.ParseModule(chi.URLParam(r, "module"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var req models.CommonTransitionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	targets := h.workflow.CommonTransitions(r.Context(), module, req.States)
	shared.WriteData(w, http.StatusOK, targets)
}

func (h *Handler) actor(ctx context.Context) string {
	if username := middleware.GetUsername(ctx); username != "" {
		return username
	}
	return middleware.GetUserID(ctx)
}

func (h *Handler) logError(ctx context.Context, msg string, err error) {
	h.logger.ErrorContext(ctx, msg,
		"request_id", middleware.GetRequestID(ctx),
		"error", err.Error(),
	)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

type pipelineResponse struct {
	Dashboard models.DashboardSummary `json:"dashboard"`
	Pipelines []models.ModulePipeline `json:"pipelines"`
}
