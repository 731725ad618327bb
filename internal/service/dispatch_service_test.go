package service_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"log/slog"

	"github.com/google/uuid"

	"lifeline/internal/domain"
	"lifeline/internal/service"
	"lifeline/internal/storage/memory"
	"lifeline/pkg/e"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

// capturingQueue records emitted events for assertions.
type capturingQueue struct {
	mu     sync.Mutex
	events []domain.DispatchEvent
}

func (q *capturingQueue) Enqueue(_ context.Context, ev domain.DispatchEvent) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, ev)
	return nil
}

func (q *capturingQueue) types() []domain.EventType {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]domain.EventType, 0, len(q.events))
	for _, ev := range q.events {
		out = append(out, ev.Type)
	}
	return out
}

type dispatchFixture struct {
	store *memory.Store
	queue *capturingQueue
	svc   service.DispatchService
}

func newDispatchFixture(t *testing.T, strict bool) *dispatchFixture {
	t.Helper()
	store := memory.NewStore()
	queue := &capturingQueue{}
	svc := service.NewDispatchService(service.DispatchDeps{
		Ambulances:        store.Ambulances(),
		Hospitals:         store.Hospitals(),
		Accidents:         store.Accidents(),
		Casualties:        store.Casualties(),
		Reservations:      store.Reservations(),
		Events:            queue,
		Geocoder:          service.NoopGeocoder{},
		Geo:               service.NewGeo(service.DefaultSlackKm, service.DefaultAvgSpeedKmh),
		Logger:            newTestLogger(),
		StrictReservation: strict,
	})
	return &dispatchFixture{store: store, queue: queue, svc: svc}
}

func seedAmbulance(f *dispatchFixture, callSign string, lat, lng float64) uuid.UUID {
	amb := &domain.Ambulance{
		ID:       uuid.New(),
		CallSign: callSign,
		Location: domain.Location{Lat: lat, Lng: lng},
		Status:   domain.AmbulanceAvailable,
	}
	f.store.PutAmbulance(amb)
	return amb.ID
}

func seedHospital(f *dispatchFixture, name string, lat, lng float64, beds int) uuid.UUID {
	h := &domain.Hospital{
		ID:            uuid.New(),
		Name:          name,
		Location:      domain.Location{Lat: lat, Lng: lng},
		BedsAvailable: beds,
		StaffCount:    map[string]int{"Emergency Medicine Specialist": 3},
		BloodInventory: domain.BloodInventory{
			domain.BloodOPos: 10,
		},
		IsAvailable: true,
	}
	f.store.PutHospital(h)
	return h.ID
}

func TestDispatch_ReportAccident_DispatchesNearest(t *testing.T) {
	t.Parallel()

	f := newDispatchFixture(t, false)
	ctx := context.Background()

	nearID := seedAmbulance(f, "AMB-1", 28.20, 83.98)
	seedAmbulance(f, "AMB-2", 27.70, 85.32)

	resp, err := f.svc.ReportAccident(ctx, domain.ReportAccidentRequest{
		Title: "collision on ring road",
		Lat:   28.21,
		Lng:   83.99,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.Dispatch == nil {
		t.Fatal("expected a dispatch")
	}
	if resp.Dispatch.Ambulance.ID != nearID {
		t.Fatalf("wrong unit dispatched: %s", resp.Dispatch.Ambulance.CallSign)
	}
	if resp.Accident.Status != domain.AccidentDispatched {
		t.Fatalf("accident status: got=%s", resp.Accident.Status)
	}
	if resp.Accident.AssignedAmbulance == nil || resp.Accident.AssignedAmbulance.ID != nearID {
		t.Fatal("assignment snapshot missing")
	}

	amb, err := f.store.Ambulances().Get(ctx, nearID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if amb.Status != domain.AmbulanceDispatched {
		t.Fatalf("ambulance status: got=%s", amb.Status)
	}
	if amb.CurrentAccidentID == nil || *amb.CurrentAccidentID != resp.Accident.ID {
		t.Fatal("ambulance not linked to accident")
	}
}

func TestDispatch_ReportAccident_NoFleet_StaysPending(t *testing.T) {
	t.Parallel()

	f := newDispatchFixture(t, false)
	ctx := context.Background()

	resp, err := f.svc.ReportAccident(ctx, domain.ReportAccidentRequest{
		Title: "collision",
		Lat:   28.21,
		Lng:   83.99,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.Dispatch != nil {
		t.Fatalf("expected no dispatch, got %+v", resp.Dispatch)
	}
	if resp.Accident.Status != domain.AccidentPending {
		t.Fatalf("accident status: got=%s", resp.Accident.Status)
	}
}

func TestDispatch_ReportAccident_InvalidCoordinates(t *testing.T) {
	t.Parallel()

	f := newDispatchFixture(t, false)

	_, err := f.svc.ReportAccident(context.Background(), domain.ReportAccidentRequest{
		Title: "bad",
		Lat:   91,
		Lng:   0,
	})
	if !errors.Is(err, e.ErrInvalidCoordinates) {
		t.Fatalf("want ErrInvalidCoordinates, got %v", err)
	}
}

// Full trip: report, accept, arrive, casualty, transport, complete.
func TestDispatch_FullTrip(t *testing.T) {
	t.Parallel()

	f := newDispatchFixture(t, false)
	ctx := context.Background()

	ambID := seedAmbulance(f, "AMB-1", 28.20, 83.98)
	hospID := seedHospital(f, "City Hospital", 28.22, 84.00, 12)

	resp, err := f.svc.ReportAccident(ctx, domain.ReportAccidentRequest{
		Title: "collision",
		Lat:   28.21,
		Lng:   83.99,
	})
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	accID := resp.Accident.ID

	if _, err := f.svc.AcceptAssignment(ctx, ambID, accID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if err := f.svc.ArriveAtScene(ctx, ambID); err != nil {
		t.Fatalf("arrive: %v", err)
	}

	casResp, err := f.svc.AddCasualty(ctx, accID, domain.AddCasualtyRequest{
		Name:       "John Doe",
		Age:        34,
		InjuryType: "fracture",
		Severity:   domain.SeverityModerate,
	})
	if err != nil {
		t.Fatalf("add casualty: %v", err)
	}
	if casResp.Match == nil || casResp.Match.HospitalID != hospID {
		t.Fatalf("expected match with %s, got %+v", hospID, casResp.Match)
	}
	if casResp.Casualty.Status != domain.CasualtyHospitalAssigned {
		t.Fatalf("casualty status: got=%s", casResp.Casualty.Status)
	}

	// bed consumed at assignment time
	h, _ := f.store.Hospitals().Get(ctx, hospID)
	if h.BedsAvailable != 11 {
		t.Fatalf("beds after reservation: got=%d want=11", h.BedsAvailable)
	}

	if err := f.svc.StartTransport(ctx, ambID, hospID); err != nil {
		t.Fatalf("start transport: %v", err)
	}
	amb, _ := f.store.Ambulances().Get(ctx, ambID)
	if amb.Status != domain.AmbulanceTransporting {
		t.Fatalf("ambulance status: got=%s", amb.Status)
	}
	if amb.DestinationHospitalID == nil || *amb.DestinationHospitalID != hospID {
		t.Fatal("destination not recorded")
	}

	if err := f.svc.CompleteTransport(ctx, ambID); err != nil {
		t.Fatalf("complete transport: %v", err)
	}

	acc, _ := f.store.Accidents().Get(ctx, accID)
	if acc.Status != domain.AccidentCompleted {
		t.Fatalf("accident status: got=%s", acc.Status)
	}
	if acc.CompletedAt == nil {
		t.Fatal("completedAt not set")
	}

	amb, _ = f.store.Ambulances().Get(ctx, ambID)
	if amb.Status != domain.AmbulanceAvailable {
		t.Fatalf("ambulance status: got=%s", amb.Status)
	}
	if amb.CurrentAccidentID != nil || amb.DestinationHospitalID != nil {
		t.Fatal("assignment not cleared on completion")
	}

	cas, _ := f.store.Casualties().Get(ctx, casResp.Casualty.ID)
	if cas.Status != domain.CasualtyAdmitted {
		t.Fatalf("casualty status: got=%s", cas.Status)
	}

	types := f.queue.types()
	want := []domain.EventType{domain.EventTripArrived, domain.EventTripStarted}
	if len(types) != len(want) {
		t.Fatalf("events: got=%v want=%v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("events: got=%v want=%v", types, want)
		}
	}
}

func TestDispatch_ArriveAtScene_NoAssignment(t *testing.T) {
	t.Parallel()

	f := newDispatchFixture(t, false)
	ambID := seedAmbulance(f, "AMB-1", 28.20, 83.98)

	err := f.svc.ArriveAtScene(context.Background(), ambID)
	if !errors.Is(err, e.ErrInvalidState) {
		t.Fatalf("want ErrInvalidState, got %v", err)
	}
}

func TestDispatch_CompleteTransport_BeforeTransportStarts(t *testing.T) {
	t.Parallel()

	f := newDispatchFixture(t, false)
	ctx := context.Background()

	ambID := seedAmbulance(f, "AMB-1", 28.20, 83.98)

	resp, err := f.svc.ReportAccident(ctx, domain.ReportAccidentRequest{
		Title: "collision",
		Lat:   28.21,
		Lng:   83.99,
	})
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	accID := resp.Accident.ID

	if _, err := f.svc.AcceptAssignment(ctx, ambID, accID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if err := f.svc.ArriveAtScene(ctx, ambID); err != nil {
		t.Fatalf("arrive: %v", err)
	}

	err = f.svc.CompleteTransport(ctx, ambID)
	if !errors.Is(err, e.ErrInvalidState) {
		t.Fatalf("want ErrInvalidState, got %v", err)
	}
	if errors.Is(err, e.ErrConflict) {
		t.Fatalf("completing out of order must not read as a transient conflict: %v", err)
	}

	acc, err := f.store.Accidents().Get(ctx, accID)
	if err != nil {
		t.Fatalf("get accident: %v", err)
	}
	if acc.Status != domain.AccidentAmbulanceArrived {
		t.Fatalf("accident status: got=%s want=%s", acc.Status, domain.AccidentAmbulanceArrived)
	}
	if acc.CompletedAt != nil {
		t.Fatal("accident must not be marked completed")
	}
}

func TestDispatch_AddCasualty_NoBeds_LeftPending(t *testing.T) {
	t.Parallel()

	f := newDispatchFixture(t, false)
	ctx := context.Background()

	seedHospital(f, "Full House", 28.22, 84.00, 0)

	resp, err := f.svc.ReportAccident(ctx, domain.ReportAccidentRequest{
		Title: "collision",
		Lat:   28.21,
		Lng:   83.99,
	})
	if err != nil {
		t.Fatalf("report: %v", err)
	}

	casResp, err := f.svc.AddCasualty(ctx, resp.Accident.ID, domain.AddCasualtyRequest{
		Name:       "Jane Doe",
		InjuryType: "burn",
		Severity:   domain.SeveritySevere,
	})
	if err != nil {
		t.Fatalf("add casualty: %v", err)
	}
	if casResp.Match != nil {
		t.Fatalf("expected no match, got %+v", casResp.Match)
	}
	if casResp.Casualty.Status != domain.CasualtyPending {
		t.Fatalf("casualty status: got=%s", casResp.Casualty.Status)
	}
}

func TestDispatch_AddCasualty_InvalidSeverity(t *testing.T) {
	t.Parallel()

	f := newDispatchFixture(t, false)
	ctx := context.Background()

	resp, err := f.svc.ReportAccident(ctx, domain.ReportAccidentRequest{
		Title: "collision",
		Lat:   28.21,
		Lng:   83.99,
	})
	if err != nil {
		t.Fatalf("report: %v", err)
	}

	_, err = f.svc.AddCasualty(ctx, resp.Accident.ID, domain.AddCasualtyRequest{
		Name:       "X",
		InjuryType: "burn",
		Severity:   "catastrophic",
	})
	if !errors.Is(err, e.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
}

func TestDispatch_CancelAccident_RestoresBedAndFleet(t *testing.T) {
	t.Parallel()

	f := newDispatchFixture(t, false)
	ctx := context.Background()

	ambID := seedAmbulance(f, "AMB-1", 28.20, 83.98)
	hospID := seedHospital(f, "City Hospital", 28.22, 84.00, 5)

	resp, err := f.svc.ReportAccident(ctx, domain.ReportAccidentRequest{
		Title: "collision",
		Lat:   28.21,
		Lng:   83.99,
	})
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	accID := resp.Accident.ID

	if _, err := f.svc.AcceptAssignment(ctx, ambID, accID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if err := f.svc.ArriveAtScene(ctx, ambID); err != nil {
		t.Fatalf("arrive: %v", err)
	}
	casResp, err := f.svc.AddCasualty(ctx, accID, domain.AddCasualtyRequest{
		Name:       "John Doe",
		InjuryType: "fracture",
		Severity:   domain.SeverityModerate,
	})
	if err != nil {
		t.Fatalf("add casualty: %v", err)
	}

	h, _ := f.store.Hospitals().Get(ctx, hospID)
	if h.BedsAvailable != 4 {
		t.Fatalf("beds after reservation: got=%d want=4", h.BedsAvailable)
	}

	if err := f.svc.CancelAccident(ctx, accID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	acc, _ := f.store.Accidents().Get(ctx, accID)
	if acc.Status != domain.AccidentCancelled {
		t.Fatalf("accident status: got=%s", acc.Status)
	}

	h, _ = f.store.Hospitals().Get(ctx, hospID)
	if h.BedsAvailable != 5 {
		t.Fatalf("bed not restored: got=%d want=5", h.BedsAvailable)
	}

	cas, _ := f.store.Casualties().Get(ctx, casResp.Casualty.ID)
	if cas.Status != domain.CasualtyPending || cas.AssignedHospital != nil {
		t.Fatalf("casualty not reset: status=%s", cas.Status)
	}

	amb, _ := f.store.Ambulances().Get(ctx, ambID)
	if amb.Status != domain.AmbulanceAvailable {
		t.Fatalf("ambulance not released: got=%s", amb.Status)
	}

	// cancelling twice hits the terminal-state guard
	if err := f.svc.CancelAccident(ctx, accID); !errors.Is(err, e.ErrInvalidState) {
		t.Fatalf("want ErrInvalidState on double cancel, got %v", err)
	}
}

// Concurrent casualty intake against a single free bed must assign exactly
// one casualty and never drive the bed count negative.
func TestDispatch_AddCasualty_ConcurrentBedContention(t *testing.T) {
	t.Parallel()

	f := newDispatchFixture(t, false)
	ctx := context.Background()

	hospID := seedHospital(f, "One Bed", 28.22, 84.00, 1)

	resp, err := f.svc.ReportAccident(ctx, domain.ReportAccidentRequest{
		Title: "pileup",
		Lat:   28.21,
		Lng:   83.99,
	})
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	accID := resp.Accident.ID

	const workers = 8
	results := make(chan domain.CasualtyStatus, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			casResp, err := f.svc.AddCasualty(ctx, accID, domain.AddCasualtyRequest{
				Name:       "casualty",
				InjuryType: "fracture",
				Severity:   domain.SeverityModerate,
			})
			if err != nil {
				t.Errorf("add casualty: %v", err)
				return
			}
			results <- casResp.Casualty.Status
		}()
	}
	wg.Wait()
	close(results)

	assigned := 0
	for st := range results {
		if st == domain.CasualtyHospitalAssigned {
			assigned++
		}
	}
	if assigned != 1 {
		t.Fatalf("exactly one casualty must win the bed, got %d", assigned)
	}

	h, _ := f.store.Hospitals().Get(ctx, hospID)
	if h.BedsAvailable != 0 {
		t.Fatalf("beds: got=%d want=0", h.BedsAvailable)
	}
}

func TestDispatch_AddCasualty_StrictReservation_Fails(t *testing.T) {
	t.Parallel()

	f := newDispatchFixture(t, true)
	ctx := context.Background()

	hospID := seedHospital(f, "One Bed", 28.22, 84.00, 1)

	resp, err := f.svc.ReportAccident(ctx, domain.ReportAccidentRequest{
		Title: "pileup",
		Lat:   28.21,
		Lng:   83.99,
	})
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	accID := resp.Accident.ID

	if _, err := f.svc.AddCasualty(ctx, accID, domain.AddCasualtyRequest{
		Name:       "first",
		InjuryType: "fracture",
		Severity:   domain.SeverityModerate,
	}); err != nil {
		t.Fatalf("first casualty: %v", err)
	}

	// matcher filters the now bedless hospital, leaving no match rather
	// than a reservation failure
	second, err := f.svc.AddCasualty(ctx, accID, domain.AddCasualtyRequest{
		Name:       "second",
		InjuryType: "fracture",
		Severity:   domain.SeverityModerate,
	})
	if err != nil {
		t.Fatalf("second casualty: %v", err)
	}
	if second.Match != nil {
		t.Fatalf("expected no match for second casualty, got %+v", second.Match)
	}

	h, _ := f.store.Hospitals().Get(ctx, hospID)
	if h.BedsAvailable != 0 {
		t.Fatalf("beds: got=%d want=0", h.BedsAvailable)
	}
}

func TestDispatch_UpdateAmbulanceStatus(t *testing.T) {
	t.Parallel()

	f := newDispatchFixture(t, false)
	ctx := context.Background()
	ambID := seedAmbulance(f, "AMB-1", 28.20, 83.98)

	lat, lng := 28.25, 84.01
	err := f.svc.UpdateAmbulanceStatus(ctx, ambID, domain.UpdateAmbulanceStatusRequest{
		Status: domain.AmbulanceOffline,
		Lat:    &lat,
		Lng:    &lng,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	amb, _ := f.store.Ambulances().Get(ctx, ambID)
	if amb.Status != domain.AmbulanceOffline {
		t.Fatalf("status: got=%s", amb.Status)
	}
	if amb.Location.Lat != lat || amb.Location.Lng != lng {
		t.Fatalf("location not updated: %+v", amb.Location)
	}

	err = f.svc.UpdateAmbulanceStatus(ctx, ambID, domain.UpdateAmbulanceStatusRequest{Status: "warp"})
	if !errors.Is(err, e.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
}

func TestDispatch_UpdateAccidentStatus_CancelDelegates(t *testing.T) {
	t.Parallel()

	f := newDispatchFixture(t, false)
	ctx := context.Background()

	resp, err := f.svc.ReportAccident(ctx, domain.ReportAccidentRequest{
		Title: "collision",
		Lat:   28.21,
		Lng:   83.99,
	})
	if err != nil {
		t.Fatalf("report: %v", err)
	}

	if err := f.svc.UpdateAccidentStatus(ctx, resp.Accident.ID, domain.AccidentCancelled); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	acc, _ := f.store.Accidents().Get(ctx, resp.Accident.ID)
	if acc.Status != domain.AccidentCancelled {
		t.Fatalf("status: got=%s", acc.Status)
	}

	types := f.queue.types()
	if len(types) != 1 || types[0] != domain.EventTripCancelled {
		t.Fatalf("events: got=%v", types)
	}
}
