package public

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

// AccidentReporter is the slice of the dispatch service the public intake
// needs: reporting accidents and registering casualties.
type AccidentReporter interface {
	ReportAccident(ctx context.Context, req domain.ReportAccidentRequest) (*domain.ReportAccidentResponse, error)
	AddCasualty(ctx context.Context, accidentID uuid.UUID, req domain.AddCasualtyRequest) (*domain.AddCasualtyResponse, error)
}

type Handler struct {
	logger   *slog.Logger
	Dispatch AccidentReporter
}

func NewHandler(logger *slog.Logger, dispatch AccidentReporter) *Handler {
	return &Handler{logger: logger, Dispatch: dispatch}
}

func (h *Handler) ReportAccident(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	var req domain.ReportAccidentRequest
	if err := middleware.DecodeValid(r, &req); err != nil {
		l.Warn("invalid accident report", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	l.Info("accident reported",
		slog.Float64("lat", req.Lat),
		slog.Float64("lng", req.Lng),
	)

	resp, err := h.Dispatch.ReportAccident(r.Context(), req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, toAccidentReportView(resp))
}

func (h *Handler) AddCasualty(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	accidentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid accident id"})
		return
	}

	var req domain.AddCasualtyRequest
	if err := middleware.DecodeValid(r, &req); err != nil {
		l.Warn("invalid casualty payload", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	resp, err := h.Dispatch.AddCasualty(r.Context(), accidentID, req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	l.Info("casualty added",
		slog.String("accident_id", accidentID.String()),
		slog.Bool("assigned", resp.Match != nil),
	)
	h.writeJSON(w, http.StatusCreated, resp)
}
