package admin_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"lifeline/internal/api/handlers/http/admin"
	mock_admin "lifeline/internal/api/handlers/http/admin/mocks"
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

func TestListHospitals_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := mock_admin.NewMockHospitalRegistry(ctrl)
	h := admin.NewHandler(newTestLogger(), registry, mock_admin.NewMockAccidentController(ctrl))

	registry.EXPECT().
		ListHospitals(gomock.Any()).
		Return([]*domain.Hospital{
			{ID: uuid.New(), Name: "Gandaki Provincial", BedsAvailable: 12, IsAvailable: true},
			{ID: uuid.New(), Name: "Metro City", BedsAvailable: 3, IsAvailable: true},
		}, nil).
		Times(1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/hospitals", nil)
	rr := httptest.NewRecorder()

	h.ListHospitals(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}

	var resp struct {
		Hospitals []*domain.Hospital `json:"hospitals"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Hospitals) != 2 {
		t.Fatalf("hospitals: got=%d want=2", len(resp.Hospitals))
	}
	if resp.Hospitals[0].Name != "Gandaki Provincial" {
		t.Fatalf("unexpected first hospital: %s", resp.Hospitals[0].Name)
	}
}

func TestRankHospitals_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := mock_admin.NewMockHospitalRegistry(ctrl)
	h := admin.NewHandler(newTestLogger(), registry, mock_admin.NewMockAccidentController(ctrl))

	want := domain.CasualtyNeed{InjuryType: "head injury", BloodType: domain.BloodOPos, BloodUnitsNeeded: 2}
	registry.EXPECT().
		RankHospitals(gomock.Any(), want, domain.Location{Lat: 28.21, Lng: 83.99}).
		Return([]domain.RankedHospital{
			{HospitalID: uuid.New(), HospitalName: "Gandaki Provincial", Score: domain.HospitalScore{Total: 70.0}, RequiredSpecialist: "Neurologist"},
		}, nil).
		Times(1)

	body := `{"lat":28.21,"lng":83.99,"injury_type":"head injury","blood_type":"O+","blood_units_needed":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/hospitals/rank", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	h.RankHospitals(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}

	var resp struct {
		Hospitals []domain.RankedHospital `json:"hospitals"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Hospitals) != 1 || resp.Hospitals[0].Score.Total != 70.0 {
		t.Fatalf("unexpected ranking: %+v", resp.Hospitals)
	}
}

func TestRankHospitals_BadBody(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := admin.NewHandler(newTestLogger(),
		mock_admin.NewMockHospitalRegistry(ctrl),
		mock_admin.NewMockAccidentController(ctrl))

	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{"lat":`},
		{"lat out of range", `{"lat":120.0,"lng":83.99,"injury_type":"burn"}`},
		{"missing injury type", `{"lat":28.21,"lng":83.99}`},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/hospitals/rank", bytes.NewBufferString(tc.body))
			rr := httptest.NewRecorder()

			h.RankHospitals(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected %d got %d body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestUpdateAccidentStatus_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accidents := mock_admin.NewMockAccidentController(ctrl)
	h := admin.NewHandler(newTestLogger(), mock_admin.NewMockHospitalRegistry(ctrl), accidents)

	accID := uuid.New()
	accidents.EXPECT().
		UpdateAccidentStatus(gomock.Any(), accID, domain.AccidentCancelled).
		Return(nil).
		Times(1)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/accidents/"+accID.String()+"/status",
		bytes.NewBufferString(`{"status":"cancelled"}`))
	req = withURLParam(req, "id", accID.String())
	rr := httptest.NewRecorder()

	h.UpdateAccidentStatus(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected %d got %d body=%s", http.StatusNoContent, rr.Code, rr.Body.String())
	}
}

func TestUpdateAccidentStatus_InvalidState(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accidents := mock_admin.NewMockAccidentController(ctrl)
	h := admin.NewHandler(newTestLogger(), mock_admin.NewMockHospitalRegistry(ctrl), accidents)

	accID := uuid.New()
	accidents.EXPECT().
		UpdateAccidentStatus(gomock.Any(), accID, domain.AccidentCompleted).
		Return(fmt.Errorf("service.UpdateAccidentStatus: %w", e.ErrInvalidState)).
		Times(1)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/accidents/"+accID.String()+"/status",
		bytes.NewBufferString(`{"status":"completed"}`))
	req = withURLParam(req, "id", accID.String())
	rr := httptest.NewRecorder()

	h.UpdateAccidentStatus(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected %d got %d body=%s", http.StatusConflict, rr.Code, rr.Body.String())
	}
}

func TestCancelAccident_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accidents := mock_admin.NewMockAccidentController(ctrl)
	h := admin.NewHandler(newTestLogger(), mock_admin.NewMockHospitalRegistry(ctrl), accidents)

	accID := uuid.New()
	accidents.EXPECT().
		CancelAccident(gomock.Any(), accID).
		Return(nil).
		Times(1)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/accidents/"+accID.String(), nil)
	req = withURLParam(req, "id", accID.String())
	rr := httptest.NewRecorder()

	h.CancelAccident(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected %d got %d body=%s", http.StatusNoContent, rr.Code, rr.Body.String())
	}
}

func TestCancelAccident_BadID(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := admin.NewHandler(newTestLogger(),
		mock_admin.NewMockHospitalRegistry(ctrl),
		mock_admin.NewMockAccidentController(ctrl))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/accidents/not-a-uuid", nil)
	req = withURLParam(req, "id", "not-a-uuid")
	rr := httptest.NewRecorder()

	h.CancelAccident(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
}
