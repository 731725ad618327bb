package admin

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

// HospitalRegistry serves the operator-facing hospital views.
type HospitalRegistry interface {
	ListHospitals(ctx context.Context) ([]*domain.Hospital, error)
	RankHospitals(ctx context.Context, need domain.CasualtyNeed, from domain.Location) ([]domain.RankedHospital, error)
}

// AccidentController exposes the operator overrides on accidents.
type AccidentController interface {
	UpdateAccidentStatus(ctx context.Context, accidentID uuid.UUID, status domain.AccidentStatus) error
	CancelAccident(ctx context.Context, accidentID uuid.UUID) error
}

type Handler struct {
	logger    *slog.Logger
	Registry  HospitalRegistry
	Accidents AccidentController
}

func NewHandler(logger *slog.Logger, registry HospitalRegistry, accidents AccidentController) *Handler {
	return &Handler{logger: logger, Registry: registry, Accidents: accidents}
}

func (h *Handler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	hospitals, err := h.Registry.ListHospitals(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"hospitals": hospitals})
}

func (h *Handler) RankHospitals(w http.ResponseWriter, r *http.Request) {
	var req domain.RankHospitalsRequest
	if err := middleware.DecodeValid(r, &req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	need := domain.CasualtyNeed{
		InjuryType:       req.InjuryType,
		BloodType:        req.BloodType,
		BloodUnitsNeeded: req.BloodUnitsNeeded,
	}
	ranked, err := h.Registry.RankHospitals(r.Context(), need, domain.Location{Lat: req.Lat, Lng: req.Lng})
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"hospitals": ranked})
}

func (h *Handler) UpdateAccidentStatus(w http.ResponseWriter, r *http.Request) {
	accidentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid accident id"})
		return
	}

	var req domain.UpdateAccidentStatusRequest
	if err := middleware.DecodeValid(r, &req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.Accidents.UpdateAccidentStatus(r.Context(), accidentID, req.Status); err != nil {
		h.handleError(w, err)
		return
	}

	h.log(r).Info("accident status overridden",
		slog.String("accident_id", accidentID.String()),
		slog.String("status", string(req.Status)),
	)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CancelAccident(w http.ResponseWriter, r *http.Request) {
	accidentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid accident id"})
		return
	}

	if err := h.Accidents.CancelAccident(r.Context(), accidentID); err != nil {
		h.handleError(w, err)
		return
	}

	h.log(r).Info("accident cancelled", slog.String("accident_id", accidentID.String()))
	w.WriteHeader(http.StatusNoContent)
}
