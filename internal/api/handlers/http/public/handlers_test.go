package public_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"lifeline/internal/api/handlers/http/public"
	mock_public "lifeline/internal/api/handlers/http/public/mocks"
	"lifeline/internal/domain"
	"lifeline/pkg/e"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v, body=%s", err, rr.Body.String())
	}
	return out
}

func TestReportAccident_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_public.NewMockAccidentReporter(ctrl)
	h := public.NewHandler(newTestLogger(), svc)

	reqBody := `{"title":"collision on ring road","lat":28.21,"lng":83.99}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accidents", bytes.NewBufferString(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	wantReq := domain.ReportAccidentRequest{
		Title: "collision on ring road",
		Lat:   28.21,
		Lng:   83.99,
	}
	ambID := uuid.New()
	resp := &domain.ReportAccidentResponse{
		Accident: &domain.Accident{ID: uuid.New(), Status: domain.AccidentDispatched},
		Dispatch: &domain.NearestAmbulance{
			Ambulance:  domain.Ambulance{ID: ambID, CallSign: "AMB-1"},
			DistanceKm: 1.46,
			EtaMinutes: 3,
		},
	}

	svc.EXPECT().
		ReportAccident(gomock.Any(), wantReq).
		Return(resp, nil).
		Times(1)

	h.ReportAccident(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected %d got %d body=%s", http.StatusCreated, rr.Code, rr.Body.String())
	}

	got := decodeJSON[map[string]json.RawMessage](t, rr)
	if _, ok := got["accident"]; !ok {
		t.Fatalf("response missing accident: %s", rr.Body.String())
	}
	var dispatch struct {
		AmbulanceID uuid.UUID `json:"ambulance_id"`
		CallSign    string    `json:"call_sign"`
	}
	if err := json.Unmarshal(got["dispatch"], &dispatch); err != nil {
		t.Fatalf("invalid dispatch block: %v", err)
	}
	if dispatch.AmbulanceID != ambID || dispatch.CallSign != "AMB-1" {
		t.Fatalf("unexpected dispatch view: %+v", dispatch)
	}
}

func TestReportAccident_InvalidJSON_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_public.NewMockAccidentReporter(ctrl)
	h := public.NewHandler(newTestLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accidents", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()

	h.ReportAccident(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestReportAccident_ErrorMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid coordinates", e.ErrInvalidCoordinates, http.StatusBadRequest},
		{"conflict", fmt.Errorf("dispatch: %w", e.ErrConflict), http.StatusServiceUnavailable},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := mock_public.NewMockAccidentReporter(ctrl)
			h := public.NewHandler(newTestLogger(), svc)

			svc.EXPECT().
				ReportAccident(gomock.Any(), gomock.Any()).
				Return(nil, tc.err).
				Times(1)

			reqBody := `{"title":"collision","lat":28.21,"lng":83.99}`
			req := httptest.NewRequest(http.MethodPost, "/api/v1/accidents", bytes.NewBufferString(reqBody))
			rr := httptest.NewRecorder()

			h.ReportAccident(rr, req)

			if rr.Code != tc.want {
				t.Fatalf("expected %d got %d body=%s", tc.want, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestAddCasualty_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_public.NewMockAccidentReporter(ctrl)
	h := public.NewHandler(newTestLogger(), svc)

	accID := uuid.New()
	reqBody := `{"name":"John Doe","age":34,"injury_type":"fracture","severity":"moderate"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accidents/"+accID.String()+"/casualties", bytes.NewBufferString(reqBody))
	req = withURLParam(req, "id", accID.String())
	rr := httptest.NewRecorder()

	wantReq := domain.AddCasualtyRequest{
		Name:       "John Doe",
		Age:        34,
		InjuryType: "fracture",
		Severity:   domain.SeverityModerate,
	}
	resp := &domain.AddCasualtyResponse{
		Casualty: &domain.Casualty{ID: uuid.New(), AccidentID: accID, Status: domain.CasualtyHospitalAssigned},
		Match:    &domain.RankedHospital{HospitalID: uuid.New(), HospitalName: "City Hospital"},
	}

	svc.EXPECT().
		AddCasualty(gomock.Any(), accID, wantReq).
		Return(resp, nil).
		Times(1)

	h.AddCasualty(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected %d got %d body=%s", http.StatusCreated, rr.Code, rr.Body.String())
	}
}

func TestAddCasualty_BadAccidentID_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_public.NewMockAccidentReporter(ctrl)
	h := public.NewHandler(newTestLogger(), svc)

	reqBody := `{"name":"John Doe","injury_type":"fracture","severity":"moderate"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accidents/not-a-uuid/casualties", bytes.NewBufferString(reqBody))
	req = withURLParam(req, "id", "not-a-uuid")
	rr := httptest.NewRecorder()

	h.AddCasualty(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestAddCasualty_NotFound_404(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_public.NewMockAccidentReporter(ctrl)
	h := public.NewHandler(newTestLogger(), svc)

	accID := uuid.New()
	svc.EXPECT().
		AddCasualty(gomock.Any(), accID, gomock.Any()).
		Return(nil, fmt.Errorf("accident: %w", e.ErrNotFound)).
		Times(1)

	reqBody := `{"name":"John Doe","injury_type":"fracture","severity":"moderate"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accidents/"+accID.String()+"/casualties", bytes.NewBufferString(reqBody))
	req = withURLParam(req, "id", accID.String())
	rr := httptest.NewRecorder()

	h.AddCasualty(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected %d got %d", http.StatusNotFound, rr.Code)
	}
}
