package service

import (
	"context"
	"time"

	"lifeline/internal/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go

// AmbulanceAssignment patches the assignment columns alongside a status
// transition. A nil pointer field clears the column.
type AmbulanceAssignment struct {
	AccidentID            *uuid.UUID
	DestinationHospitalID *uuid.UUID
}

// AmbulanceRepository is the store-side contract for the fleet. Transition is
// the atomic check-and-update primitive: it only applies when the current
// status equals from, and fails with e.ErrConflict otherwise.
type AmbulanceRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Ambulance, error)
	ListAvailable(ctx context.Context) ([]domain.Ambulance, error)
	Transition(ctx context.Context, id uuid.UUID, from, to domain.AmbulanceStatus, assign *AmbulanceAssignment) error
	SetStatus(ctx context.Context, id uuid.UUID, to domain.AmbulanceStatus) error
	UpdateLocation(ctx context.Context, id uuid.UUID, loc domain.Location) error
}

// HospitalRepository exposes hospitals plus the check-and-decrement
// primitives for beds and blood. ReserveBed and WithdrawBlood fail with
// e.ErrInsufficientResource when the precondition no longer holds at commit.
type HospitalRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Hospital, error)
	ListActive(ctx context.Context) ([]*domain.Hospital, error)
	ReserveBed(ctx context.Context, id uuid.UUID) error
	ReleaseBed(ctx context.Context, id uuid.UUID) error
	WithdrawBlood(ctx context.Context, id uuid.UUID, bloodType domain.BloodType, units int) error
	DepositBlood(ctx context.Context, id uuid.UUID, bloodType domain.BloodType, units int) error
}

// AccidentRepository owns accident rows. Update is conditional on the status
// the caller read (optimistic concurrency), failing with e.ErrConflict.
type AccidentRepository interface {
	Create(ctx context.Context, acc *domain.Accident) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Accident, error)
	Update(ctx context.Context, acc *domain.Accident, from domain.AccidentStatus) error
	FindByAmbulance(ctx context.Context, ambulanceID uuid.UUID) (*domain.Accident, error)
}

type CasualtyRepository interface {
	Create(ctx context.Context, c *domain.Casualty) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Casualty, error)
	Update(ctx context.Context, c *domain.Casualty) error
	ListByAccident(ctx context.Context, accidentID uuid.UUID) ([]*domain.Casualty, error)
}

// BloodRequestRepository persists transfer requests. Update is conditional on
// the previously read status.
type BloodRequestRepository interface {
	Create(ctx context.Context, req *domain.BloodRequest) error
	Get(ctx context.Context, id uuid.UUID) (*domain.BloodRequest, error)
	Update(ctx context.Context, req *domain.BloodRequest, from domain.BloodRequestStatus) error
}

type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) error
	FindActiveBySubject(ctx context.Context, subjectID uuid.UUID) (*domain.Reservation, error)
	Release(ctx context.Context, id uuid.UUID, at time.Time) error
	ListExpired(ctx context.Context, now time.Time) ([]*domain.Reservation, error)
}

// EventQueue receives fire-and-forget domain events for the notifier.
type EventQueue interface {
	Enqueue(ctx context.Context, ev domain.DispatchEvent) error
}

// HospitalCache holds the active-hospital snapshot used by read paths.
type HospitalCache interface {
	GetActive(ctx context.Context) ([]*domain.Hospital, error)
	SetActive(ctx context.Context, hospitals []*domain.Hospital, ttl time.Duration) error
}

// Geocoder resolves free-form addresses. A nil location with a nil error
// means "no resolution"; failures are never fatal to the caller.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (*domain.Location, error)
}

type DispatchService interface {
	ReportAccident(ctx context.Context, req domain.ReportAccidentRequest) (*domain.ReportAccidentResponse, error)
	AcceptAssignment(ctx context.Context, ambulanceID, accidentID uuid.UUID) (*domain.NearestAmbulance, error)
	ArriveAtScene(ctx context.Context, ambulanceID uuid.UUID) error
	AddCasualty(ctx context.Context, accidentID uuid.UUID, req domain.AddCasualtyRequest) (*domain.AddCasualtyResponse, error)
	StartTransport(ctx context.Context, ambulanceID, hospitalID uuid.UUID) error
	CompleteTransport(ctx context.Context, ambulanceID uuid.UUID) error
	CancelAccident(ctx context.Context, accidentID uuid.UUID) error
	UpdateAccidentStatus(ctx context.Context, accidentID uuid.UUID, status domain.AccidentStatus) error
	UpdateAmbulanceStatus(ctx context.Context, ambulanceID uuid.UUID, req domain.UpdateAmbulanceStatusRequest) error
}

type BloodService interface {
	CreateRequest(ctx context.Context, req domain.CreateBloodRequestRequest) (*domain.CreateBloodRequestResponse, error)
	AcceptRequest(ctx context.Context, requestID, donorHospitalID uuid.UUID) (*domain.BloodRequest, error)
	CompleteTransfer(ctx context.Context, requestID uuid.UUID) (*domain.BloodRequest, error)
	RejectRequest(ctx context.Context, requestID uuid.UUID, reason string) (*domain.BloodRequest, error)
}

type RegistryService interface {
	ListHospitals(ctx context.Context) ([]*domain.Hospital, error)
	RankHospitals(ctx context.Context, need domain.CasualtyNeed, from domain.Location) ([]domain.RankedHospital, error)
}

type Service struct {
	Dispatch DispatchService
	Blood    BloodService
	Registry RegistryService
}

func NewService(dispatch DispatchService, blood BloodService, registry RegistryService) *Service {
	return &Service{
		Dispatch: dispatch,
		Blood:    blood,
		Registry: registry,
	}
}
