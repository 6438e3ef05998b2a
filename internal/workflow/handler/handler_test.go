package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"sgc/internal/platform/middleware"
	"sgc/internal/workflow/handler/mocks"
	"sgc/internal/workflow/models"
	id "sgc/pkg/domain"
	dErrors "sgc/pkg/domain-errors"
	"sgc/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/workflow-mocks.go -package=mocks Service
type WorkflowHandlerSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *WorkflowHandlerSuite) SetupSuite() {
	s.ctx = context.Background()
}

func TestWorkflowHandlerSuite(t *testing.T) {
	suite.Run(t, new(WorkflowHandlerSuite))
}

func newTestHandler(t *testing.T) (*Handler, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := New(mockService, logger, nil, stubValidator{})
	return handler, mockService
}

// stubValidator accepts any token and grants the consul role. Route-level
// auth behavior is covered by the registered-router tests below.
type stubValidator struct{}

func (stubValidator) ValidateToken(string) (*middleware.JWTClaims, error) {
	return &middleware.JWTClaims{UserID: "user-1", Username: "consul.silva", Roles: []string{"CONSUL"}}, nil
}

// primeRequest attaches the chi route params and the authenticated caller
// that the middleware chain would normally provide.
func primeRequest(req *http.Request, params map[string]string) *http.Request {
	req = testutil.WithUser(req, "user-1", "consul.silva", "CONSUL")
	routeCtx := chi.NewRouteContext()
	for key, value := range params {
		routeCtx.URLParams.Add(key, value)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	return req.WithContext(ctx)
}

func (s *WorkflowHandlerSuite) TestHandlePipeline() {
	handler, mockService := newTestHandler(s.T())
	mockService.EXPECT().DashboardSummary(gomock.Any()).Return(models.DashboardSummary{
		Modules: map[models.Module]models.ModuleSummary{
			models.ModuleVisas: {Total: 3, ByState: map[models.State]int{"SUBMETIDO": 3}},
		},
		GrandTotal: 3,
	}, nil)
	mockService.EXPECT().Pipelines(gomock.Any()).Return([]models.ModulePipeline{
		{Module: models.ModuleVisas, Stages: []models.PipelineStage{
			{State: "RASCUNHO", Count: 0, SampleItems: []models.WorkflowItem{}},
			{State: "SUBMETIDO", Count: 3, SampleItems: []models.WorkflowItem{}},
		}, Total: 3},
	}, nil)

	req := primeRequest(httptest.NewRequest(http.MethodGet, "/workflow/pipeline", nil), nil)
	w := httptest.NewRecorder()
	handler.handlePipeline(w, req)

	s.Equal(http.StatusOK, w.Code)
	var resp map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]any)
	dashboard := data["dashboard"].(map[string]any)
	s.Equal(float64(3), dashboard["totalGeral"])
	pipelines := data["pipelines"].([]any)
	s.Require().Len(pipelines, 1)
	stages := pipelines[0].(map[string]any)["stages"].([]any)
	s.Len(stages, 2)
}

func (s *WorkflowHandlerSuite) TestHandlePipelineServiceError() {
	handler, mockService := newTestHandler(s.T())
	mockService.EXPECT().DashboardSummary(gomock.Any()).
		Return(models.DashboardSummary{}, dErrors.New(dErrors.CodeStoreFailure, "aggregate query failed"))

	req := primeRequest(httptest.NewRequest(http.MethodGet, "/workflow/pipeline", nil), nil)
	w := httptest.NewRecorder()
	handler.handlePipeline(w, req)

	s.Equal(http.StatusBadGateway, w.Code)
}

func (s *WorkflowHandlerSuite) TestHandleBadges() {
	handler, mockService := newTestHandler(s.T())
	mockService.EXPECT().BadgeCounts(gomock.Any()).Return(map[models.Module]int{
		models.ModuleVisas:        4,
		models.ModuleAgendamentos: 1,
	}, nil)

	req := primeRequest(httptest.NewRequest(http.MethodGet, "/workflow/badges", nil), nil)
	w := httptest.NewRecorder()
	handler.handleBadges(w, req)

	s.Equal(http.StatusOK, w.Code)
	var resp map[string]map[string]float64
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(float64(4), resp["data"]["visas"])
	s.Equal(float64(1), resp["data"]["agendamentos"])
}

func (s *WorkflowHandlerSuite) TestHandleQueuePassesFilters() {
	handler, mockService := newTestHandler(s.T())
	itemID := id.NewCaseID()
	mockService.EXPECT().
		ListItems(gomock.Any(), models.ModuleVisas, models.State("SUBMETIDO"), 2, 50).
		Return(models.ItemPage{
			Content: []models.WorkflowItem{{
				ID:                 itemID,
				Module:             models.ModuleVisas,
				State:              "SUBMETIDO",
				AllowedTransitions: []models.State{"EM_ANALISE", "CANCELADO"},
			}},
			Page: 2, Size: 50, TotalElements: 101, TotalPages: 3,
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/workflow/visas/queue?estado=SUBMETIDO&page=2&size=50", nil)
	req = primeRequest(req, map[string]string{"module": "visas"})
	w := httptest.NewRecorder()
	handler.handleQueue(w, req)

	s.Equal(http.StatusOK, w.Code)
	var resp map[string]models.ItemPage
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	page := resp["data"]
	s.Require().Len(page.Content, 1)
	s.Equal(itemID, page.Content[0].ID)
	s.Equal([]models.State{"EM_ANALISE", "CANCELADO"}, page.Content[0].AllowedTransitions)
	s.Equal(101, page.TotalElements)
}

func (s *WorkflowHandlerSuite) TestHandleQueueDefaultsPaging() {
	handler, mockService := newTestHandler(s.T())
	mockService.EXPECT().
		ListItems(gomock.Any(), models.ModuleAgendamentos, models.State(""), 0, 20).
		Return(models.EmptyPage(0, 20), nil)

	req := httptest.NewRequest(http.MethodGet, "/workflow/agendamentos/queue", nil)
	req = primeRequest(req, map[string]string{"module": "agendamentos"})
	w := httptest.NewRecorder()
	handler.handleQueue(w, req)

	s.Equal(http.StatusOK, w.Code)
}

func (s *WorkflowHandlerSuite) TestHandleTransition() {
	handler, mockService := newTestHandler(s.T())
	caseID := id.NewCaseID()
	mockService.EXPECT().
		ApplyTransition(gomock.Any(), models.ModuleVisas, caseID, models.State("EM_ANALISE"), "consul.silva", "documentação completa").
		Return(models.WorkflowItem{
			ID:                 caseID,
			Module:             models.ModuleVisas,
			State:              "EM_ANALISE",
			UpdatedAt:          time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC),
			AllowedTransitions: []models.State{"APROVADO", "REJEITADO", "DOCUMENTOS_PENDENTES", "CANCELADO"},
		}, nil)

	body, err := json.Marshal(models.TransitionRequest{State: "EM_ANALISE", Comment: "documentação completa"})
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPatch, "/workflow/visas/"+caseID.String()+"/estado", bytes.NewReader(body))
	req = primeRequest(req, map[string]string{"module": "visas", "id": caseID.String()})
	w := httptest.NewRecorder()
	handler.handleTransition(w, req)

	s.Equal(http.StatusOK, w.Code)
	var resp map[string]models.WorkflowItem
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(models.State("EM_ANALISE"), resp["data"].State)
	s.Len(resp["data"].AllowedTransitions, 4)
}

func (s *WorkflowHandlerSuite) TestHandleTransitionIllegal() {
	handler, mockService := newTestHandler(s.T())
	caseID := id.NewCaseID()
	mockService.EXPECT().
		ApplyTransition(gomock.Any(), models.ModuleVisas, caseID, models.State("EMITIDO"), "consul.silva", "").
		Return(models.WorkflowItem{}, dErrors.New(dErrors.CodeIllegalTransition, "visas: RASCUNHO -> EMITIDO is not a legal transition"))

	body, err := json.Marshal(models.TransitionRequest{State: "EMITIDO"})
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPatch, "/workflow/visas/"+caseID.String()+"/estado", bytes.NewReader(body))
	req = primeRequest(req, map[string]string{"module": "visas", "id": caseID.String()})
	w := httptest.NewRecorder()
	handler.handleTransition(w, req)

	s.Equal(http.StatusConflict, w.Code)
	var resp map[string]string
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Contains(resp["message"], "EMITIDO")
}

func (s *WorkflowHandlerSuite) TestHandleTransitionBadInput() {
	handler, _ := newTestHandler(s.T())
	caseID := id.NewCaseID()

	s.Run("malformed body", func() {
		req := httptest.NewRequest(http.MethodPatch, "/workflow/visas/"+caseID.String()+"/estado", bytes.NewReader([]byte("{")))
		req = primeRequest(req, map[string]string{"module": "visas", "id": caseID.String()})
		w := httptest.NewRecorder()
		handler.handleTransition(w, req)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("missing target state", func() {
		body, err := json.Marshal(models.TransitionRequest{Comment: "sem estado"})
		s.Require().NoError(err)
		req := httptest.NewRequest(http.MethodPatch, "/workflow/visas/"+caseID.String()+"/estado", bytes.NewReader(body))
		req = primeRequest(req, map[string]string{"module": "visas", "id": caseID.String()})
		w := httptest.NewRecorder()
		handler.handleTransition(w, req)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("unknown module", func() {
		body, err := json.Marshal(models.TransitionRequest{State: "SUBMETIDO"})
		s.Require().NoError(err)
		req := httptest.NewRequest(http.MethodPatch, "/workflow/processos/"+caseID.String()+"/estado", bytes.NewReader(body))
		req = primeRequest(req, map[string]string{"module": "processos", "id": caseID.String()})
		w := httptest.NewRecorder()
		handler.handleTransition(w, req)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("malformed case id", func() {
		body, err := json.Marshal(models.TransitionRequest{State: "SUBMETIDO"})
		s.Require().NoError(err)
		req := httptest.NewRequest(http.MethodPatch, "/workflow/visas/not-a-uuid/estado", bytes.NewReader(body))
		req = primeRequest(req, map[string]string{"module": "visas", "id": "not-a-uuid"})
		w := httptest.NewRecorder()
		handler.handleTransition(w, req)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *WorkflowHandlerSuite) TestHandleBulkTransitionPartialFailure() {
	handler, mockService := newTestHandler(s.T())
	okID, failedID := id.NewCaseID(), id.NewCaseID()
	mockService.EXPECT().
		BulkApply(gomock.Any(), models.ModuleVisas, []id.CaseID{okID, failedID}, models.State("EM_ANALISE"), "consul.silva", "triagem").
		Return(models.BulkResult{Succeeded: []id.CaseID{okID}, Failed: []id.CaseID{failedID}}, nil)

	body, err := json.Marshal(models.BulkTransitionRequest{
		IDs:     []string{okID.String(), failedID.String()},
		State:   "EM_ANALISE",
		Comment: "triagem",
	})
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, "/workflow/visas/bulk-estado", bytes.NewReader(body))
	req = primeRequest(req, map[string]string{"module": "visas"})
	w := httptest.NewRecorder()
	handler.handleBulkTransition(w, req)

	// Partial failure still answers 200 with both id sets.
	s.Equal(http.StatusOK, w.Code)
	var resp map[string]models.BulkResult
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal([]id.CaseID{okID}, resp["data"].Succeeded)
	s.Equal([]id.CaseID{failedID}, resp["data"].Failed)
}

func (s *WorkflowHandlerSuite) TestHandleBulkTransitionRejectsMalformedIDs() {
	handler, _ := newTestHandler(s.T())

	body, err := json.Marshal(models.BulkTransitionRequest{
		IDs:   []string{id.NewCaseID().String(), "not-a-uuid"},
		State: "EM_ANALISE",
	})
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, "/workflow/visas/bulk-estado", bytes.NewReader(body))
	req = primeRequest(req, map[string]string{"module": "visas"})
	w := httptest.NewRecorder()
	handler.handleBulkTransition(w, req)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *WorkflowHandlerSuite) TestHandleHistory() {
	handler, mockService := newTestHandler(s.T())
	caseID := id.NewCaseID()
	mockService.EXPECT().
		History(gomock.Any(), models.ModuleVisas, caseID).
		Return([]models.HistoryEntry{
			{PreviousState: "SUBMETIDO", NewState: "EM_ANALISE", Actor: "consul.silva", Timestamp: time.Date(2026, 1, 5, 14, 0, 0, 0, time.UTC)},
			{PreviousState: "EM_ANALISE", NewState: "APROVADO", Actor: "consul.silva", Timestamp: time.Date(2026, 1, 8, 10, 0, 0, 0, time.UTC)},
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/workflow/visas/"+caseID.String()+"/historico", nil)
	req = primeRequest(req, map[string]string{"module": "visas", "id": caseID.String()})
	w := httptest.NewRecorder()
	handler.handleHistory(w, req)

	s.Equal(http.StatusOK, w.Code)
	var resp map[string][]models.HistoryEntry
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Require().Len(resp["data"], 2)
	s.Equal(models.State("APROVADO"), resp["data"][1].NewState)
}

func (s *WorkflowHandlerSuite) TestHandleCommonTransitions() {
	handler, mockService := newTestHandler(s.T())
	mockService.EXPECT().
		CommonTransitions(gomock.Any(), models.ModuleVisas, []models.State{"SUBMETIDO", "EM_ANALISE"}).
		Return([]models.State{"CANCELADO"})

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/workflow/visas/transicoes-comuns",
		models.CommonTransitionsRequest{States: []models.State{"SUBMETIDO", "EM_ANALISE"}})
	req = primeRequest(req, map[string]string{"module": "visas"})
	w := httptest.NewRecorder()
	handler.handleCommonTransitions(w, req)

	s.Equal(http.StatusOK, w.Code)
	var resp map[string][]models.State
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal([]models.State{"CANCELADO"}, resp["data"])
}

// ============================================================
// Registered-router tests: auth and role gating end to end
// ============================================================

type roleValidator struct {
	roles []string
}

func (v roleValidator) ValidateToken(token string) (*middleware.JWTClaims, error) {
	if token == "bad" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	return &middleware.JWTClaims{UserID: "user-1", Username: "oficial.moreira", Roles: v.roles}, nil
}

func newRegisteredRouter(t *testing.T, roles []string) (chi.Router, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := New(mockService, logger, nil, roleValidator{roles: roles})
	r := chi.NewRouter()
	handler.Register(r)
	return r, mockService
}

func (s *WorkflowHandlerSuite) TestRegisterRequiresAuth() {
	r, _ := newRegisteredRouter(s.T(), []string{"OFICIAL"})

	req := httptest.NewRequest(http.MethodGet, "/workflow/pipeline", nil)
	s.Equal(http.StatusUnauthorized, testutil.DoRequest(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/workflow/pipeline", nil)
	req.Header.Set("Authorization", "Bearer bad")
	s.Equal(http.StatusUnauthorized, testutil.DoRequest(r, req).Code)
}

func (s *WorkflowHandlerSuite) TestRegisterReadRoleCanReadButNotWrite() {
	r, mockService := newRegisteredRouter(s.T(), []string{"OFICIAL"})
	mockService.EXPECT().BadgeCounts(gomock.Any()).Return(map[models.Module]int{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/workflow/badges", nil)
	req.Header.Set("Authorization", "Bearer ok")
	s.Equal(http.StatusOK, testutil.DoRequest(r, req).Code)

	req = testutil.NewJSONRequest(s.T(), http.MethodPatch,
		"/workflow/visas/"+id.NewCaseID().String()+"/estado",
		models.TransitionRequest{State: "EM_ANALISE"})
	req.Header.Set("Authorization", "Bearer ok")
	s.Equal(http.StatusForbidden, testutil.DoRequest(r, req).Code)
}

func (s *WorkflowHandlerSuite) TestRegisterWriteRoleReachesService() {
	r, mockService := newRegisteredRouter(s.T(), []string{"CONSUL"})
	caseID := id.NewCaseID()
	mockService.EXPECT().
		ApplyTransition(gomock.Any(), models.ModuleVisas, caseID, models.State("EM_ANALISE"), "oficial.moreira", "").
		Return(models.WorkflowItem{ID: caseID, Module: models.ModuleVisas, State: "EM_ANALISE"}, nil)

	req := testutil.NewJSONRequest(s.T(), http.MethodPatch,
		"/workflow/visas/"+caseID.String()+"/estado",
		models.TransitionRequest{State: "EM_ANALISE"})
	req.Header.Set("Authorization", "Bearer ok")
	s.Equal(http.StatusOK, testutil.DoRequest(r, req).Code)
}
