package public

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"lifeline/internal/domain"
	"lifeline/pkg/e"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// AccidentReportView is the safe projection of a dispatch result; the
// ambulance block omits everything but what a caller needs to expect.
type AccidentReportView struct {
	Accident *domain.Accident `json:"accident"`
	Dispatch *DispatchView    `json:"dispatch,omitempty"`
}

type DispatchView struct {
	AmbulanceID uuid.UUID `json:"ambulance_id"`
	CallSign    string    `json:"call_sign"`
	DistanceKm  float64   `json:"distance_km"`
	EtaMinutes  int       `json:"eta_minutes"`
}

func toAccidentReportView(resp *domain.ReportAccidentResponse) AccidentReportView {
	view := AccidentReportView{Accident: resp.Accident}
	if resp.Dispatch != nil {
		view.Dispatch = &DispatchView{
			AmbulanceID: resp.Dispatch.Ambulance.ID,
			CallSign:    resp.Dispatch.Ambulance.CallSign,
			DistanceKm:  resp.Dispatch.DistanceKm,
			EtaMinutes:  resp.Dispatch.EtaMinutes,
		}
	}
	return view
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, e.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, e.ErrValidation), errors.Is(err, e.ErrInvalidCoordinates):
		status = http.StatusBadRequest
	case errors.Is(err, e.ErrInvalidState), errors.Is(err, e.ErrInsufficientResource):
		status = http.StatusConflict
	case errors.Is(err, e.ErrConflict):
		status = http.StatusServiceUnavailable
	default:
		status = http.StatusInternalServerError
	}
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("json encode failed", slog.Any("error", err))
	}
}
