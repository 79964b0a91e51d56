package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"razeflow/internal/platform/middleware"
	"razeflow/internal/workflow/candidates"
	"razeflow/internal/workflow/models"
	"razeflow/internal/workflow/service"
	id "razeflow/pkg/domain"
	dErrors "razeflow/pkg/domain-errors"
	"razeflow/pkg/platform/httputil"
)

// Service is the workflow surface the handler needs. Kept as an interface so
// handler tests can run against the real service over a memory store.
type Service interface {
	CreateRequest(ctx context.Context, actor models.Actor, input service.CreateInput) (*models.DemolitionRequest, error)
	UpdateRequest(ctx context.Context, actor models.Actor, requestID id.RequestID, input service.CreateInput) (*models.DemolitionRequest, error)
	CancelRequest(ctx context.Context, actor models.Actor, requestID id.RequestID, reason string) (*models.DemolitionRequest, error)
	InitialReject(ctx context.Context, actor models.Actor, requestID id.RequestID, reason string) (*models.DemolitionRequest, error)
	PreRecommend(ctx context.Context, actor models.Actor, requestID id.RequestID) (*models.DemolitionRequest, error)
	RequestVerification(ctx context.Context, actor models.Actor, requestID id.RequestID) (*models.DemolitionRequest, error)
	CompleteVerification(ctx context.Context, actor models.Actor, requestID id.RequestID) (*models.DemolitionRequest, error)
	RejectVerification(ctx context.Context, actor models.Actor, requestID id.RequestID, reason string) (*models.DemolitionRequest, error)
	CompleteRecommendation(ctx context.Context, actor models.Actor, requestID id.RequestID) (*models.DemolitionRequest, error)
	AssignSupervisor(ctx context.Context, actor models.Actor, requestID id.RequestID, input service.AssignInput) (*models.DemolitionRequest, error)
	SubmitSettlement(ctx context.Context, actor models.Actor, requestID id.RequestID, input service.SettlementInput) (*models.DemolitionRequest, error)
	SubmitCompletion(ctx context.Context, actor models.Actor, requestID id.RequestID, attachments []string, narrative string) (*models.DemolitionRequest, error)
	AddPriorityCandidate(ctx context.Context, actor models.Actor, requestID id.RequestID, candidate models.PriorityCandidate) (*models.DemolitionRequest, error)
	RemovePriorityCandidate(ctx context.Context, actor models.Actor, requestID id.RequestID, order int) (*models.DemolitionRequest, error)
	MovePriorityCandidate(ctx context.Context, actor models.Actor, requestID id.RequestID, order int, direction candidates.Direction) (*models.DemolitionRequest, error)
	GetRequest(ctx context.Context, requestID id.RequestID) (*models.DemolitionRequest, error)
	GetAssignmentHistory(ctx context.Context, requestID id.RequestID) ([]models.AssignmentEvent, error)
}

type Handler struct {
	logger       *slog.Logger
	workflow     Service
	jwtValidator middleware.JWTValidator
}

func New(workflow Service, logger *slog.Logger, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		workflow:     workflow,
		jwtValidator: jwtValidator,
	}
}

// Register mounts the workflow routes with the standard middleware stack.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(middleware.Recovery(h.logger))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(h.logger))
	router.Use(middleware.Timeout(30 * time.Second))
	router.Use(middleware.ContentTypeJSON)
	router.Use(middleware.RequireAuth(h.jwtValidator, h.logger))

	router.Post("/requests", h.handleCreate)
	router.Get("/requests/{requestID}", h.handleGet)
	router.Put("/requests/{requestID}", h.handleUpdate)
	router.Get("/requests/{requestID}/history", h.handleHistory)
	router.Post("/requests/{requestID}/cancel", h.handleCancel)
	router.Post("/requests/{requestID}/initial-reject", h.handleInitialReject)
	router.Post("/requests/{requestID}/pre-recommend", h.handlePreRecommend)
	router.Post("/requests/{requestID}/request-verification", h.handleRequestVerification)
	router.Post("/requests/{requestID}/complete-verification", h.handleCompleteVerification)
	router.Post("/requests/{requestID}/reject-verification", h.handleRejectVerification)
	router.Post("/requests/{requestID}/complete-recommendation", h.handleCompleteRecommendation)
	router.Post("/requests/{requestID}/assign", h.handleAssign)
	router.Post("/requests/{requestID}/settlement", h.handleSettlement)
	router.Post("/requests/{requestID}/completion", h.handleCompletion)
	router.Post("/requests/{requestID}/candidates", h.handleAddCandidate)
	router.Delete("/requests/{requestID}/candidates/{order}", h.handleRemoveCandidate)
	router.Post("/requests/{requestID}/candidates/{order}/move", h.handleMoveCandidate)

	r.Mount("/", router)
}

func (h *Handler) requestID(r *http.Request) (id.RequestID, error) {
	return id.ParseRequestID(chi.URLParam(r, "requestID"))
}

func (h *Handler) candidateOrder(r *http.Request) (int, error) {
	order, err := strconv.Atoi(chi.URLParam(r, "order"))
	if err != nil {
		return 0, dErrors.Validation("order", "must be an integer")
	}
	return order, nil
}

func decode[T any](r *http.Request) (T, error) {
	var body T
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return body, dErrors.New(dErrors.CodeBadRequest, "invalid request body")
	}
	return body, nil
}

// respond logs rejected operations at warn and internal failures at error,
// then writes the envelope.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, request *models.DemolitionRequest, err error, status int) {
	if err != nil {
		ctx := r.Context()
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "workflow operation failed",
				"path", r.URL.Path,
				"error", err.Error(),
				"request_id", middleware.GetRequestID(ctx),
			)
		} else {
			h.logger.WarnContext(ctx, "workflow operation rejected",
				"path", r.URL.Path,
				"error", err.Error(),
				"request_id", middleware.GetRequestID(ctx),
			)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, status, toRequestResponse(request))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	body, err := decode[createRequestBody](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	actor := middleware.GetActor(r.Context())
	request, err := h.workflow.CreateRequest(r.Context(), actor, body.toInput())
	h.respond(w, r, request, err, http.StatusCreated)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID, err := h.requestID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	request, err := h.workflow.GetRequest(r.Context(), requestID)
	h.respond(w, r, request, err, http.StatusOK)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID, err := h.requestID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	body, err := decode[createRequestBody](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	actor := middleware.GetActor(r.Context())
	request, err := h.workflow.UpdateRequest(r.Context(), actor, requestID, body.toInput())
	h.respond(w, r, request, err, http.StatusOK)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	requestID, err := h.requestID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	history, err := h.workflow.GetAssignmentHistory(r.Context(), requestID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, historyResponse{Events: history})
}

// reasoned wraps the transitions whose body is a single reason field.
func (h *Handler) reasoned(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, actor models.Actor, requestID id.RequestID, reason string) (*models.DemolitionRequest, error)) {
	requestID, err := h.requestID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	body, err := decode[reasonBody](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	actor := middleware.GetActor(r.Context())
	request, err := fn(r.Context(), actor, requestID, body.Reason)
	h.respond(w, r, request, err, http.StatusOK)
}

// plain wraps the transitions that carry no body.
func (h *Handler) plain(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, actor models.Actor, requestID id.RequestID) (*models.DemolitionRequest, error)) {
	requestID, err := h.requestID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	actor := middleware.GetActor(r.Context())
	request, err := fn(r.Context(), actor, requestID)
	h.respond(w, r, request, err, http.StatusOK)
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	h.reasoned(w, r, h.workflow.CancelRequest)
}

func (h *Handler) handleInitialReject(w http.ResponseWriter, r *http.Request) {
	h.reasoned(w, r, h.workflow.InitialReject)
}

func (h *Handler) handleRejectVerification(w http.ResponseWriter, r *http.Request) {
	h.reasoned(w, r, h.workflow.RejectVerification)
}

func (h *Handler) handlePreRecommend(w http.ResponseWriter, r *http.Request) {
	h.plain(w, r, h.workflow.PreRecommend)
}

func (h *Handler) handleRequestVerification(w http.ResponseWriter, r *http.Request) {
	h.plain(w, r, h.workflow.RequestVerification)
}

func (h *Handler) handleCompleteVerification(w http.ResponseWriter, r *http.Request) {
	h.plain(w, r, h.workflow.CompleteVerification)
}

func (h *Handler) handleCompleteRecommendation(w http.ResponseWriter, r *http.Request) {
	h.plain(w, r, h.workflow.CompleteRecommendation)
}

func (h *Handler) handleAssign(w http.ResponseWriter, r *http.Request) {
	requestID, err := h.requestID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	body, err := decode[assignBody](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	input, err := body.toInput()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	actor := middleware.GetActor(r.Context())
	request, err := h.workflow.AssignSupervisor(r.Context(), actor, requestID, input)
	h.respond(w, r, request, err, http.StatusOK)
}

func (h *Handler) handleSettlement(w http.ResponseWriter, r *http.Request) {
	requestID, err := h.requestID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	body, err := decode[settlementBody](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	actor := middleware.GetActor(r.Context())
	request, err := h.workflow.SubmitSettlement(r.Context(), actor, requestID, body.toInput())
	h.respond(w, r, request, err, http.StatusOK)
}

func (h *Handler) handleCompletion(w http.ResponseWriter, r *http.Request) {
	requestID, err := h.requestID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	body, err := decode[completionBody](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	actor := middleware.GetActor(r.Context())
	request, err := h.workflow.SubmitCompletion(r.Context(), actor, requestID, body.Attachments, body.SupervisionContent)
	h.respond(w, r, request, err, http.StatusOK)
}

func (h *Handler) handleAddCandidate(w http.ResponseWriter, r *http.Request) {
	requestID, err := h.requestID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	body, err := decode[candidateBody](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	candidate, err := body.toCandidate()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	actor := middleware.GetActor(r.Context())
	request, err := h.workflow.AddPriorityCandidate(r.Context(), actor, requestID, candidate)
	h.respond(w, r, request, err, http.StatusCreated)
}

func (h *Handler) handleRemoveCandidate(w http.ResponseWriter, r *http.Request) {
	requestID, err := h.requestID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	order, err := h.candidateOrder(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	actor := middleware.GetActor(r.Context())
	request, err := h.workflow.RemovePriorityCandidate(r.Context(), actor, requestID, order)
	h.respond(w, r, request, err, http.StatusOK)
}

func (h *Handler) handleMoveCandidate(w http.ResponseWriter, r *http.Request) {
	requestID, err := h.requestID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	order, err := h.candidateOrder(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	body, err := decode[moveBody](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	actor := middleware.GetActor(r.Context())
	request, err := h.workflow.MovePriorityCandidate(r.Context(), actor, requestID, order, candidates.Direction(body.Direction))
	h.respond(w, r, request, err, http.StatusOK)
}
