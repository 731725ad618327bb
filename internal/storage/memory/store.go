// Package memory implements the repository contracts over in-process maps.
// Every mutation runs under the store mutex, which makes each operation the
// atomic check-and-update primitive the coordinators rely on. Used by unit
// tests and local runs without postgres.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"lifeline/internal/domain"
	"lifeline/internal/service"
	"lifeline/pkg/e"

	"github.com/google/uuid"
)

type Store struct {
	mu           sync.Mutex
	ambulances   map[uuid.UUID]*domain.Ambulance
	hospitals    map[uuid.UUID]*domain.Hospital
	accidents    map[uuid.UUID]*domain.Accident
	casualties   map[uuid.UUID]*domain.Casualty
	requests     map[uuid.UUID]*domain.BloodRequest
	reservations map[uuid.UUID]*domain.Reservation

	hospitalOrder []uuid.UUID
	ambOrder      []uuid.UUID
}

func NewStore() *Store {
	return &Store{
		ambulances:   make(map[uuid.UUID]*domain.Ambulance),
		hospitals:    make(map[uuid.UUID]*domain.Hospital),
		accidents:    make(map[uuid.UUID]*domain.Accident),
		casualties:   make(map[uuid.UUID]*domain.Casualty),
		requests:     make(map[uuid.UUID]*domain.BloodRequest),
		reservations: make(map[uuid.UUID]*domain.Reservation),
	}
}

func (s *Store) Ambulances() service.AmbulanceRepository     { return (*ambulanceRepo)(s) }
func (s *Store) Hospitals() service.HospitalRepository       { return (*hospitalRepo)(s) }
func (s *Store) Accidents() service.AccidentRepository       { return (*accidentRepo)(s) }
func (s *Store) Casualties() service.CasualtyRepository      { return (*casualtyRepo)(s) }
func (s *Store) BloodRequests() service.BloodRequestRepository {
	return (*bloodRequestRepo)(s)
}
func (s *Store) Reservations() service.ReservationRepository { return (*reservationRepo)(s) }

// PutAmbulance and PutHospital seed fleet and roster records, which are
// registered outside the dispatch core.
func (s *Store) PutAmbulance(a *domain.Ambulance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *a
	if _, ok := s.ambulances[a.ID]; !ok {
		s.ambOrder = append(s.ambOrder, a.ID)
	}
	s.ambulances[a.ID] = &cp
}

func (s *Store) PutHospital(h *domain.Hospital) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.hospitals[h.ID]; !ok {
		s.hospitalOrder = append(s.hospitalOrder, h.ID)
	}
	s.hospitals[h.ID] = h.Clone()
}

// --- ambulances ---

type ambulanceRepo Store

func (r *ambulanceRepo) Get(_ context.Context, id uuid.UUID) (*domain.Ambulance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.ambulances[id]
	if !ok {
		return nil, fmt.Errorf("ambulance %s: %w", id, e.ErrNotFound)
	}
	cp := *a
	return &cp, nil
}

func (r *ambulanceRepo) ListAvailable(_ context.Context) ([]domain.Ambulance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Ambulance, 0, len(r.ambulances))
	for _, id := range r.ambOrder {
		a := r.ambulances[id]
		if a.Status == domain.AmbulanceAvailable {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *ambulanceRepo) Transition(_ context.Context, id uuid.UUID, from, to domain.AmbulanceStatus, assign *service.AmbulanceAssignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.ambulances[id]
	if !ok {
		return fmt.Errorf("ambulance %s: %w", id, e.ErrNotFound)
	}
	if a.Status != from {
		return fmt.Errorf("ambulance %s is %s, want %s: %w", id, a.Status, from, e.ErrConflict)
	}
	a.Status = to
	if assign != nil {
		a.CurrentAccidentID = assign.AccidentID
		a.DestinationHospitalID = assign.DestinationHospitalID
	}
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *ambulanceRepo) SetStatus(_ context.Context, id uuid.UUID, to domain.AmbulanceStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.ambulances[id]
	if !ok {
		return fmt.Errorf("ambulance %s: %w", id, e.ErrNotFound)
	}
	a.Status = to
	if to == domain.AmbulanceAvailable {
		a.CurrentAccidentID = nil
		a.DestinationHospitalID = nil
	}
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *ambulanceRepo) UpdateLocation(_ context.Context, id uuid.UUID, loc domain.Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.ambulances[id]
	if !ok {
		return fmt.Errorf("ambulance %s: %w", id, e.ErrNotFound)
	}
	a.Location = loc
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// --- hospitals ---

type hospitalRepo Store

func (r *hospitalRepo) Get(_ context.Context, id uuid.UUID) (*domain.Hospital, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.hospitals[id]
	if !ok {
		return nil, fmt.Errorf("hospital %s: %w", id, e.ErrNotFound)
	}
	return h.Clone(), nil
}

func (r *hospitalRepo) ListActive(_ context.Context) ([]*domain.Hospital, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Hospital, 0, len(r.hospitals))
	for _, id := range r.hospitalOrder {
		h := r.hospitals[id]
		if h.IsAvailable {
			out = append(out, h.Clone())
		}
	}
	return out, nil
}

func (r *hospitalRepo) ReserveBed(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.hospitals[id]
	if !ok {
		return fmt.Errorf("hospital %s: %w", id, e.ErrNotFound)
	}
	if h.BedsAvailable <= 0 {
		return fmt.Errorf("hospital %s has no beds: %w", id, e.ErrInsufficientResource)
	}
	h.BedsAvailable--
	h.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *hospitalRepo) ReleaseBed(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.hospitals[id]
	if !ok {
		return fmt.Errorf("hospital %s: %w", id, e.ErrNotFound)
	}
	h.BedsAvailable++
	h.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *hospitalRepo) WithdrawBlood(_ context.Context, id uuid.UUID, bloodType domain.BloodType, units int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.hospitals[id]
	if !ok {
		return fmt.Errorf("hospital %s: %w", id, e.ErrNotFound)
	}
	if units <= 0 {
		return fmt.Errorf("withdraw %d units: %w", units, e.ErrValidation)
	}
	if h.BloodInventory[bloodType] < units {
		return fmt.Errorf("hospital %s holds %d of %s: %w", id, h.BloodInventory[bloodType], bloodType, e.ErrInsufficientResource)
	}
	h.BloodInventory[bloodType] -= units
	h.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *hospitalRepo) DepositBlood(_ context.Context, id uuid.UUID, bloodType domain.BloodType, units int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.hospitals[id]
	if !ok {
		return fmt.Errorf("hospital %s: %w", id, e.ErrNotFound)
	}
	if units <= 0 {
		return fmt.Errorf("deposit %d units: %w", units, e.ErrValidation)
	}
	if h.BloodInventory == nil {
		h.BloodInventory = domain.BloodInventory{}
	}
	h.BloodInventory[bloodType] += units
	h.UpdatedAt = time.Now().UTC()
	return nil
}

// --- accidents ---

type accidentRepo Store

func (r *accidentRepo) Create(_ context.Context, acc *domain.Accident) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *acc
	cp.CasualtyIDs = append([]uuid.UUID(nil), acc.CasualtyIDs...)
	r.accidents[acc.ID] = &cp
	return nil
}

func (r *accidentRepo) Get(_ context.Context, id uuid.UUID) (*domain.Accident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc, ok := r.accidents[id]
	if !ok {
		return nil, fmt.Errorf("accident %s: %w", id, e.ErrNotFound)
	}
	cp := *acc
	cp.CasualtyIDs = append([]uuid.UUID(nil), acc.CasualtyIDs...)
	if acc.AssignedAmbulance != nil {
		snap := *acc.AssignedAmbulance
		cp.AssignedAmbulance = &snap
	}
	return &cp, nil
}

func (r *accidentRepo) Update(_ context.Context, acc *domain.Accident, from domain.AccidentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.accidents[acc.ID]
	if !ok {
		return fmt.Errorf("accident %s: %w", acc.ID, e.ErrNotFound)
	}
	if cur.Status != from {
		return fmt.Errorf("accident %s is %s, want %s: %w", acc.ID, cur.Status, from, e.ErrConflict)
	}
	cp := *acc
	cp.CasualtyIDs = append([]uuid.UUID(nil), acc.CasualtyIDs...)
	r.accidents[acc.ID] = &cp
	return nil
}

func (r *accidentRepo) FindByAmbulance(_ context.Context, ambulanceID uuid.UUID) (*domain.Accident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, acc := range r.accidents {
		if acc.AssignedAmbulance != nil && acc.AssignedAmbulance.ID == ambulanceID && !acc.Status.Terminal() {
			cp := *acc
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("accident for ambulance %s: %w", ambulanceID, e.ErrNotFound)
}

// --- casualties ---

type casualtyRepo Store

func (r *casualtyRepo) Create(_ context.Context, c *domain.Casualty) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.casualties[c.ID] = &cp
	return nil
}

func (r *casualtyRepo) Get(_ context.Context, id uuid.UUID) (*domain.Casualty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.casualties[id]
	if !ok {
		return nil, fmt.Errorf("casualty %s: %w", id, e.ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (r *casualtyRepo) Update(_ context.Context, c *domain.Casualty) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.casualties[c.ID]; !ok {
		return fmt.Errorf("casualty %s: %w", c.ID, e.ErrNotFound)
	}
	cp := *c
	r.casualties[c.ID] = &cp
	return nil
}

func (r *casualtyRepo) ListByAccident(_ context.Context, accidentID uuid.UUID) ([]*domain.Casualty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Casualty, 0, 4)
	for _, c := range r.casualties {
		if c.AccidentID == accidentID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

// --- blood requests ---

type bloodRequestRepo Store

func (r *bloodRequestRepo) Create(_ context.Context, req *domain.BloodRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

func (r *bloodRequestRepo) Get(_ context.Context, id uuid.UUID) (*domain.BloodRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, fmt.Errorf("blood request %s: %w", id, e.ErrNotFound)
	}
	cp := *req
	return &cp, nil
}

func (r *bloodRequestRepo) Update(_ context.Context, req *domain.BloodRequest, from domain.BloodRequestStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.requests[req.ID]
	if !ok {
		return fmt.Errorf("blood request %s: %w", req.ID, e.ErrNotFound)
	}
	if cur.Status != from {
		return fmt.Errorf("blood request %s is %s, want %s: %w", req.ID, cur.Status, from, e.ErrConflict)
	}
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

// --- reservations ---

type reservationRepo Store

func (r *reservationRepo) Create(_ context.Context, res *domain.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *res
	r.reservations[res.ID] = &cp
	return nil
}

func (r *reservationRepo) FindActiveBySubject(_ context.Context, subjectID uuid.UUID) (*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, res := range r.reservations {
		if res.SubjectID == subjectID && res.Active() {
			cp := *res
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("reservation for %s: %w", subjectID, e.ErrNotFound)
}

func (r *reservationRepo) Release(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.reservations[id]
	if !ok {
		return fmt.Errorf("reservation %s: %w", id, e.ErrNotFound)
	}
	res.ReleasedAt = &at
	return nil
}

func (r *reservationRepo) ListExpired(_ context.Context, now time.Time) ([]*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Reservation, 0)
	for _, res := range r.reservations {
		if res.Active() && res.ExpiresAt != nil && res.ExpiresAt.Before(now) {
			cp := *res
			out = append(out, &cp)
		}
	}
	return out, nil
}
