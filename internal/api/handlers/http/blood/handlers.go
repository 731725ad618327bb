package blood

import (
	"context"
	"log/slog"
	"net/http"

	"lifeline/internal/domain"
	"lifeline/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go

// TransferCoordinator runs the inter-hospital blood request lifecycle.
type TransferCoordinator interface {
	CreateRequest(ctx context.Context, req domain.CreateBloodRequestRequest) (*domain.CreateBloodRequestResponse, error)
	AcceptRequest(ctx context.Context, requestID, donorHospitalID uuid.UUID) (*domain.BloodRequest, error)
	CompleteTransfer(ctx context.Context, requestID uuid.UUID) (*domain.BloodRequest, error)
	RejectRequest(ctx context.Context, requestID uuid.UUID, reason string) (*domain.BloodRequest, error)
}

type Handler struct {
	logger    *slog.Logger
	Transfers TransferCoordinator
}

func NewHandler(logger *slog.Logger, transfers TransferCoordinator) *Handler {
	return &Handler{logger: logger, Transfers: transfers}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateBloodRequestRequest
	if err := middleware.DecodeValid(r, &req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	resp, err := h.Transfers.CreateRequest(r.Context(), req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.log(r).Info("blood request created",
		slog.String("request_id", resp.Request.ID.String()),
		slog.String("blood_type", string(resp.Request.BloodType)),
		slog.Int("units", resp.Request.UnitsNeeded),
		slog.Int("candidates", len(resp.Candidates)),
	)
	h.writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	requestID, ok := h.requestID(w, r)
	if !ok {
		return
	}

	var req domain.AcceptBloodRequestRequest
	if err := middleware.DecodeValid(r, &req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	updated, err := h.Transfers.AcceptRequest(r.Context(), requestID, req.DonorHospitalID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.log(r).Info("blood request accepted",
		slog.String("request_id", requestID.String()),
		slog.String("donor_hospital_id", req.DonorHospitalID.String()),
	)
	h.writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	requestID, ok := h.requestID(w, r)
	if !ok {
		return
	}

	updated, err := h.Transfers.CompleteTransfer(r.Context(), requestID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.log(r).Info("blood transfer completed", slog.String("request_id", requestID.String()))
	h.writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	requestID, ok := h.requestID(w, r)
	if !ok {
		return
	}

	var req domain.RejectBloodRequestRequest
	if err := middleware.DecodeValid(r, &req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	updated, err := h.Transfers.RejectRequest(r.Context(), requestID, req.Reason)
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) requestID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request id"})
		return uuid.Nil, false
	}
	return id, true
}
