package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"lifeline/internal/domain"
	"lifeline/pkg/e"

	"github.com/google/uuid"
)

// conflictRetries bounds the internal retry loop on lost atomic commits
// before e.ErrConflict surfaces to the caller.
const conflictRetries = 3

// bedReservationTTL is advisory; the sweeper worker releases reservations
// past it, the core never does.
const bedReservationTTL = 2 * time.Hour

type dispatchService struct {
	ambulances   AmbulanceRepository
	hospitals    HospitalRepository
	accidents    AccidentRepository
	casualties   CasualtyRepository
	reservations ReservationRepository
	events       EventQueue
	geocoder     Geocoder
	geo          *Geo
	locator      *Locator
	matcher      *Matcher
	logger       *slog.Logger

	// strictReservation fails AddCasualty outright when no bed can be
	// reserved instead of leaving the casualty pending.
	strictReservation bool
}

type DispatchDeps struct {
	Ambulances   AmbulanceRepository
	Hospitals    HospitalRepository
	Accidents    AccidentRepository
	Casualties   CasualtyRepository
	Reservations ReservationRepository
	Events       EventQueue
	Geocoder     Geocoder
	Geo          *Geo
	Logger       *slog.Logger

	StrictReservation bool
}

func NewDispatchService(d DispatchDeps) DispatchService {
	geo := d.Geo
	if geo == nil {
		geo = NewGeo(DefaultSlackKm, DefaultAvgSpeedKmh)
	}
	scorer := NewScorer()
	return &dispatchService{
		ambulances:        d.Ambulances,
		hospitals:         d.Hospitals,
		accidents:         d.Accidents,
		casualties:        d.Casualties,
		reservations:      d.Reservations,
		events:            d.Events,
		geocoder:          d.Geocoder,
		geo:               geo,
		locator:           NewLocator(geo),
		matcher:           NewMatcher(geo, scorer),
		logger:            d.Logger,
		strictReservation: d.StrictReservation,
	}
}

func (s *dispatchService) ReportAccident(ctx context.Context, req domain.ReportAccidentRequest) (*domain.ReportAccidentResponse, error) {
	loc := domain.Location{Lat: req.Lat, Lng: req.Lng}
	if !loc.Valid() {
		return nil, e.ErrInvalidCoordinates
	}
	if loc.Lat == 0 && loc.Lng == 0 && req.Address != "" && s.geocoder != nil {
		resolved, err := s.geocoder.Resolve(ctx, req.Address)
		if err != nil {
			// no resolution is not fatal; the report stays at (0,0)
			s.logger.Warn("geocoding failed", slog.String("address", req.Address), slog.Any("error", err))
		} else if resolved != nil {
			loc = *resolved
		}
	}

	acc := &domain.Accident{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Location:    loc,
		Status:      domain.AccidentPending,
		CasualtyIDs: []uuid.UUID{},
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.accidents.Create(ctx, acc); err != nil {
		return nil, err
	}

	dispatch, err := s.dispatchNearest(ctx, acc)
	if err != nil {
		return nil, err
	}

	s.logger.Info("accident reported",
		slog.String("accident_id", acc.ID.String()),
		slog.Bool("dispatched", dispatch != nil),
	)
	return &domain.ReportAccidentResponse{Accident: acc, Dispatch: dispatch}, nil
}

// dispatchNearest claims the closest available ambulance. A lost claim race
// re-runs the search against fresh state; the accident stays pending when
// the fleet is exhausted.
func (s *dispatchService) dispatchNearest(ctx context.Context, acc *domain.Accident) (*domain.NearestAmbulance, error) {
	for attempt := 0; attempt <= conflictRetries; attempt++ {
		available, err := s.ambulances.ListAvailable(ctx)
		if err != nil {
			return nil, err
		}
		nearest, err := s.locator.FindNearest(acc.Location, available)
		if err != nil {
			return nil, err
		}
		if nearest == nil {
			return nil, nil
		}

		accID := acc.ID
		err = s.ambulances.Transition(ctx, nearest.Ambulance.ID,
			domain.AmbulanceAvailable, domain.AmbulanceDispatched,
			&AmbulanceAssignment{AccidentID: &accID})
		if errors.Is(err, e.ErrConflict) {
			continue // someone else claimed this unit
		}
		if err != nil {
			return nil, err
		}

		acc.Status = domain.AccidentDispatched
		acc.AssignedAmbulance = &domain.AssignedAmbulance{
			ID:         nearest.Ambulance.ID,
			CallSign:   nearest.Ambulance.CallSign,
			DistanceKm: nearest.DistanceKm,
			EtaMinutes: nearest.EtaMinutes,
		}
		if err := s.accidents.Update(ctx, acc, domain.AccidentPending); err != nil {
			return nil, err
		}
		return nearest, nil
	}
	return nil, fmt.Errorf("dispatch ambulance: %w", e.ErrConflict)
}

func (s *dispatchService) AcceptAssignment(ctx context.Context, ambulanceID, accidentID uuid.UUID) (*domain.NearestAmbulance, error) {
	amb, err := s.ambulances.Get(ctx, ambulanceID)
	if err != nil {
		return nil, err
	}
	acc, err := s.accidents.Get(ctx, accidentID)
	if err != nil {
		return nil, err
	}

	dist, err := s.geo.DistanceKm(amb.Location, acc.Location)
	if err != nil {
		return nil, err
	}
	eta := s.geo.EtaMinutes(dist)

	if err := s.transitionAmbulance(ctx, ambulanceID, domain.AmbulanceDispatched, domain.AmbulanceEnRoute, nil); err != nil {
		return nil, err
	}

	acc.Status = domain.AccidentAmbulanceEnRoute
	if acc.AssignedAmbulance != nil {
		acc.AssignedAmbulance.DistanceKm = dist
		acc.AssignedAmbulance.EtaMinutes = eta
	}
	if err := s.accidents.Update(ctx, acc, domain.AccidentDispatched); err != nil {
		return nil, err
	}

	return &domain.NearestAmbulance{Ambulance: *amb, DistanceKm: dist, EtaMinutes: eta}, nil
}

func (s *dispatchService) ArriveAtScene(ctx context.Context, ambulanceID uuid.UUID) error {
	amb, err := s.ambulances.Get(ctx, ambulanceID)
	if err != nil {
		return err
	}
	if amb.CurrentAccidentID == nil {
		return fmt.Errorf("ambulance %s has no assigned accident: %w", ambulanceID, e.ErrInvalidState)
	}

	if err := s.transitionAmbulance(ctx, ambulanceID, domain.AmbulanceEnRoute, domain.AmbulanceAtScene, nil); err != nil {
		return err
	}

	acc, err := s.accidents.Get(ctx, *amb.CurrentAccidentID)
	if err != nil {
		return err
	}
	acc.Status = domain.AccidentAmbulanceArrived
	if err := s.accidents.Update(ctx, acc, domain.AccidentAmbulanceEnRoute); err != nil {
		return err
	}

	s.emit(ctx, domain.DispatchEvent{
		Type:        domain.EventTripArrived,
		AccidentID:  &acc.ID,
		AmbulanceID: &ambulanceID,
		OccurredAt:  time.Now().UTC(),
	})
	return nil
}

func (s *dispatchService) AddCasualty(ctx context.Context, accidentID uuid.UUID, req domain.AddCasualtyRequest) (*domain.AddCasualtyResponse, error) {
	acc, err := s.accidents.Get(ctx, accidentID)
	if err != nil {
		return nil, err
	}
	if !req.Severity.Valid() {
		return nil, fmt.Errorf("severity %q: %w", req.Severity, e.ErrValidation)
	}
	if req.BloodType != "" && !req.BloodType.Valid() {
		return nil, fmt.Errorf("blood type %q: %w", req.BloodType, e.ErrValidation)
	}
	if req.BloodUnitsNeeded < 0 {
		return nil, fmt.Errorf("blood units %d: %w", req.BloodUnitsNeeded, e.ErrValidation)
	}

	cas := &domain.Casualty{
		ID:               uuid.New(),
		AccidentID:       acc.ID,
		Name:             req.Name,
		Age:              req.Age,
		Gender:           req.Gender,
		InjuryType:       req.InjuryType,
		Severity:         req.Severity,
		BloodType:        req.BloodType,
		BloodUnitsNeeded: req.BloodUnitsNeeded,
		Status:           domain.CasualtyPending,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.casualties.Create(ctx, cas); err != nil {
		return nil, err
	}
	if err := s.appendCasualty(ctx, acc.ID, cas.ID); err != nil {
		return nil, err
	}

	hospitals, err := s.hospitals.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	need := domain.CasualtyNeed{
		InjuryType:       req.InjuryType,
		BloodType:        req.BloodType,
		BloodUnitsNeeded: req.BloodUnitsNeeded,
	}
	best, err := s.matcher.FindBest(hospitals, need, acc.Location, true)
	if err != nil {
		return nil, err
	}
	if best == nil {
		// no usable hospital; the casualty stays pending for manual retry
		return &domain.AddCasualtyResponse{Casualty: cas}, nil
	}

	if err := s.hospitals.ReserveBed(ctx, best.HospitalID); err != nil {
		if errors.Is(err, e.ErrInsufficientResource) && !s.strictReservation {
			s.logger.Warn("bed reservation lost, casualty left pending",
				slog.String("casualty_id", cas.ID.String()),
				slog.String("hospital_id", best.HospitalID.String()),
			)
			return &domain.AddCasualtyResponse{Casualty: cas}, nil
		}
		return nil, err
	}

	expires := time.Now().UTC().Add(bedReservationTTL)
	if err := s.reservations.Create(ctx, &domain.Reservation{
		ID:         uuid.New(),
		Kind:       domain.ReservationBed,
		HospitalID: best.HospitalID,
		SubjectID:  cas.ID,
		Quantity:   1,
		CreatedAt:  time.Now().UTC(),
		ExpiresAt:  &expires,
	}); err != nil {
		return nil, err
	}

	cas.Status = domain.CasualtyHospitalAssigned
	cas.AssignedHospital = &domain.AssignedHospital{
		ID:         best.HospitalID,
		Name:       best.HospitalName,
		DistanceKm: best.DistanceKm,
		EtaMinutes: best.EtaMinutes,
	}
	if err := s.casualties.Update(ctx, cas); err != nil {
		return nil, err
	}

	s.logger.Info("casualty assigned",
		slog.String("casualty_id", cas.ID.String()),
		slog.String("hospital_id", best.HospitalID.String()),
		slog.Float64("score", best.Score.Total),
	)
	return &domain.AddCasualtyResponse{Casualty: cas, Match: best}, nil
}

func (s *dispatchService) StartTransport(ctx context.Context, ambulanceID, hospitalID uuid.UUID) error {
	if _, err := s.hospitals.Get(ctx, hospitalID); err != nil {
		return err
	}
	amb, err := s.ambulances.Get(ctx, ambulanceID)
	if err != nil {
		return err
	}
	if amb.CurrentAccidentID == nil {
		return fmt.Errorf("ambulance %s has no assigned accident: %w", ambulanceID, e.ErrInvalidState)
	}

	accID := *amb.CurrentAccidentID
	hospID := hospitalID
	if err := s.transitionAmbulance(ctx, ambulanceID, domain.AmbulanceAtScene, domain.AmbulanceTransporting,
		&AmbulanceAssignment{AccidentID: &accID, DestinationHospitalID: &hospID}); err != nil {
		return err
	}

	acc, err := s.accidents.Get(ctx, accID)
	if err != nil {
		return err
	}
	acc.Status = domain.AccidentInTransit
	if err := s.accidents.Update(ctx, acc, domain.AccidentAmbulanceArrived); err != nil {
		return err
	}

	if err := s.moveCasualties(ctx, accID, domain.CasualtyHospitalAssigned, domain.CasualtyInTransit); err != nil {
		return err
	}

	s.emit(ctx, domain.DispatchEvent{
		Type:        domain.EventTripStarted,
		AccidentID:  &accID,
		AmbulanceID: &ambulanceID,
		HospitalID:  &hospID,
		OccurredAt:  time.Now().UTC(),
	})
	return nil
}

func (s *dispatchService) CompleteTransport(ctx context.Context, ambulanceID uuid.UUID) error {
	amb, err := s.ambulances.Get(ctx, ambulanceID)
	if err != nil {
		return err
	}
	if amb.CurrentAccidentID == nil {
		return fmt.Errorf("ambulance %s has no assigned accident: %w", ambulanceID, e.ErrInvalidState)
	}
	accID := *amb.CurrentAccidentID

	acc, err := s.accidents.Get(ctx, accID)
	if err != nil {
		return err
	}
	if acc.Status != domain.AccidentInTransit {
		return fmt.Errorf("accident %s is %s, want %s: %w",
			accID, acc.Status, domain.AccidentInTransit, e.ErrInvalidState)
	}
	now := time.Now().UTC()
	acc.Status = domain.AccidentCompleted
	acc.CompletedAt = &now
	if err := s.transitionAccident(ctx, acc, domain.AccidentInTransit); err != nil {
		return err
	}

	if err := s.moveCasualties(ctx, accID, domain.CasualtyInTransit, domain.CasualtyAdmitted); err != nil {
		return err
	}

	// back in the pool; assignment columns cleared
	if err := s.transitionAmbulance(ctx, ambulanceID, domain.AmbulanceTransporting, domain.AmbulanceAvailable,
		&AmbulanceAssignment{}); err != nil {
		return err
	}

	s.logger.Info("transport completed",
		slog.String("accident_id", accID.String()),
		slog.String("ambulance_id", ambulanceID.String()),
	)
	return nil
}

func (s *dispatchService) CancelAccident(ctx context.Context, accidentID uuid.UUID) error {
	acc, err := s.accidents.Get(ctx, accidentID)
	if err != nil {
		return err
	}
	if acc.Status.Terminal() {
		return fmt.Errorf("accident %s is %s: %w", accidentID, acc.Status, e.ErrInvalidState)
	}

	from := acc.Status
	acc.Status = domain.AccidentCancelled
	if err := s.accidents.Update(ctx, acc, from); err != nil {
		return err
	}

	// reverse every unfulfilled bed reservation tied to this accident
	list, err := s.casualties.ListByAccident(ctx, accidentID)
	if err != nil {
		return err
	}
	for _, cas := range list {
		if cas.AssignedHospital == nil || cas.Status == domain.CasualtyAdmitted || cas.Status == domain.CasualtyDischarged {
			continue
		}
		res, err := s.reservations.FindActiveBySubject(ctx, cas.ID)
		if err != nil && !errors.Is(err, e.ErrNotFound) {
			return err
		}
		if res != nil {
			if err := s.hospitals.ReleaseBed(ctx, res.HospitalID); err != nil {
				return err
			}
			if err := s.reservations.Release(ctx, res.ID, time.Now().UTC()); err != nil {
				return err
			}
		}
		cas.Status = domain.CasualtyPending
		cas.AssignedHospital = nil
		if err := s.casualties.Update(ctx, cas); err != nil {
			return err
		}
	}

	if acc.AssignedAmbulance != nil {
		if err := s.ambulances.SetStatus(ctx, acc.AssignedAmbulance.ID, domain.AmbulanceAvailable); err != nil && !errors.Is(err, e.ErrNotFound) {
			return err
		}
	}

	s.emit(ctx, domain.DispatchEvent{
		Type:       domain.EventTripCancelled,
		AccidentID: &accidentID,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

func (s *dispatchService) UpdateAccidentStatus(ctx context.Context, accidentID uuid.UUID, status domain.AccidentStatus) error {
	if !status.Valid() {
		return fmt.Errorf("accident status %q: %w", status, e.ErrValidation)
	}
	if status == domain.AccidentCancelled {
		return s.CancelAccident(ctx, accidentID)
	}

	var lastErr error
	for attempt := 0; attempt <= conflictRetries; attempt++ {
		acc, err := s.accidents.Get(ctx, accidentID)
		if err != nil {
			return err
		}
		from := acc.Status
		acc.Status = status
		lastErr = s.accidents.Update(ctx, acc, from)
		if !errors.Is(lastErr, e.ErrConflict) {
			return lastErr
		}
	}
	return lastErr
}

func (s *dispatchService) UpdateAmbulanceStatus(ctx context.Context, ambulanceID uuid.UUID, req domain.UpdateAmbulanceStatusRequest) error {
	if !req.Status.Valid() {
		return fmt.Errorf("ambulance status %q: %w", req.Status, e.ErrValidation)
	}
	if req.Lat != nil && req.Lng != nil {
		loc := domain.Location{Lat: *req.Lat, Lng: *req.Lng}
		if !loc.Valid() {
			return e.ErrInvalidCoordinates
		}
		if err := s.ambulances.UpdateLocation(ctx, ambulanceID, loc); err != nil {
			return err
		}
	}
	return s.ambulances.SetStatus(ctx, ambulanceID, req.Status)
}

// transitionAmbulance wraps the repo-level conditional update, translating a
// conflict caused by a genuinely different state into ErrInvalidState and
// retrying only true commit races.
func (s *dispatchService) transitionAmbulance(ctx context.Context, id uuid.UUID, from, to domain.AmbulanceStatus, assign *AmbulanceAssignment) error {
	var lastErr error
	for attempt := 0; attempt <= conflictRetries; attempt++ {
		lastErr = s.ambulances.Transition(ctx, id, from, to, assign)
		if !errors.Is(lastErr, e.ErrConflict) {
			return lastErr
		}
		amb, err := s.ambulances.Get(ctx, id)
		if err != nil {
			return err
		}
		if amb.Status != from {
			return fmt.Errorf("ambulance %s is %s, want %s: %w", id, amb.Status, from, e.ErrInvalidState)
		}
	}
	return lastErr
}

// transitionAccident mirrors transitionAmbulance for the accident record: a
// conflict from a genuinely different status is an invalid state, not a
// retryable race.
func (s *dispatchService) transitionAccident(ctx context.Context, acc *domain.Accident, from domain.AccidentStatus) error {
	err := s.accidents.Update(ctx, acc, from)
	if !errors.Is(err, e.ErrConflict) {
		return err
	}
	cur, gerr := s.accidents.Get(ctx, acc.ID)
	if gerr != nil {
		return gerr
	}
	if cur.Status != from {
		return fmt.Errorf("accident %s is %s, want %s: %w", acc.ID, cur.Status, from, e.ErrInvalidState)
	}
	return err
}

func (s *dispatchService) appendCasualty(ctx context.Context, accidentID, casualtyID uuid.UUID) error {
	var lastErr error
	for attempt := 0; attempt <= conflictRetries; attempt++ {
		acc, err := s.accidents.Get(ctx, accidentID)
		if err != nil {
			return err
		}
		acc.CasualtyIDs = append(acc.CasualtyIDs, casualtyID)
		lastErr = s.accidents.Update(ctx, acc, acc.Status)
		if !errors.Is(lastErr, e.ErrConflict) {
			return lastErr
		}
	}
	return lastErr
}

func (s *dispatchService) moveCasualties(ctx context.Context, accidentID uuid.UUID, from, to domain.CasualtyStatus) error {
	list, err := s.casualties.ListByAccident(ctx, accidentID)
	if err != nil {
		return err
	}
	for _, cas := range list {
		if cas.Status != from {
			continue
		}
		cas.Status = to
		if err := s.casualties.Update(ctx, cas); err != nil {
			return err
		}
	}
	return nil
}

// emit never fails the calling operation.
func (s *dispatchService) emit(ctx context.Context, ev domain.DispatchEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Enqueue(ctx, ev); err != nil {
		s.logger.Error("event enqueue failed",
			slog.String("type", string(ev.Type)),
			slog.Any("error", err),
		)
	}
}
