package fleet

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

// TripController covers the crew-driven leg of the dispatch state machine.
type TripController interface {
	AcceptAssignment(ctx context.Context, ambulanceID, accidentID uuid.UUID) (*domain.NearestAmbulance, error)
	ArriveAtScene(ctx context.Context, ambulanceID uuid.UUID) error
	StartTransport(ctx context.Context, ambulanceID, hospitalID uuid.UUID) error
	CompleteTransport(ctx context.Context, ambulanceID uuid.UUID) error
	UpdateAmbulanceStatus(ctx context.Context, ambulanceID uuid.UUID, req domain.UpdateAmbulanceStatusRequest) error
}

type Handler struct {
	logger *slog.Logger
	Trips  TripController
}

func NewHandler(logger *slog.Logger, trips TripController) *Handler {
	return &Handler{logger: logger, Trips: trips}
}

func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	ambulanceID, ok := h.ambulanceID(w, r)
	if !ok {
		return
	}

	var req domain.AcceptAssignmentRequest
	if err := middleware.DecodeValid(r, &req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	resp, err := h.Trips.AcceptAssignment(r.Context(), ambulanceID, req.AccidentID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.log(r).Info("assignment accepted",
		slog.String("ambulance_id", ambulanceID.String()),
		slog.String("accident_id", req.AccidentID.String()),
	)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"distance_km": resp.DistanceKm,
		"eta_minutes": resp.EtaMinutes,
	})
}

func (h *Handler) Arrive(w http.ResponseWriter, r *http.Request) {
	ambulanceID, ok := h.ambulanceID(w, r)
	if !ok {
		return
	}

	if err := h.Trips.ArriveAtScene(r.Context(), ambulanceID); err != nil {
		h.handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) StartTransport(w http.ResponseWriter, r *http.Request) {
	ambulanceID, ok := h.ambulanceID(w, r)
	if !ok {
		return
	}

	var req domain.StartTransportRequest
	if err := middleware.DecodeValid(r, &req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.Trips.StartTransport(r.Context(), ambulanceID, req.HospitalID); err != nil {
		h.handleError(w, err)
		return
	}

	h.log(r).Info("transport started",
		slog.String("ambulance_id", ambulanceID.String()),
		slog.String("hospital_id", req.HospitalID.String()),
	)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CompleteTransport(w http.ResponseWriter, r *http.Request) {
	ambulanceID, ok := h.ambulanceID(w, r)
	if !ok {
		return
	}

	if err := h.Trips.CompleteTransport(r.Context(), ambulanceID); err != nil {
		h.handleError(w, err)
		return
	}

	h.log(r).Info("transport completed", slog.String("ambulance_id", ambulanceID.String()))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ambulanceID, ok := h.ambulanceID(w, r)
	if !ok {
		return
	}

	var req domain.UpdateAmbulanceStatusRequest
	if err := middleware.DecodeValid(r, &req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.Trips.UpdateAmbulanceStatus(r.Context(), ambulanceID, req); err != nil {
		h.handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ambulanceID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid ambulance id"})
		return uuid.Nil, false
	}
	return id, true
}
