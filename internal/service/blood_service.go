package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"lifeline/internal/domain"
	"lifeline/pkg/e"

	"github.com/google/uuid"
)

type bloodService struct {
	hospitals    HospitalRepository
	requests     BloodRequestRepository
	reservations ReservationRepository
	events       EventQueue
	geo          *Geo
	matcher      *Matcher
	logger       *slog.Logger
}

func NewBloodService(
	hospitals HospitalRepository,
	requests BloodRequestRepository,
	reservations ReservationRepository,
	events EventQueue,
	geo *Geo,
	logger *slog.Logger,
) BloodService {
	if geo == nil {
		geo = NewGeo(DefaultSlackKm, DefaultAvgSpeedKmh)
	}
	return &bloodService{
		hospitals:    hospitals,
		requests:     requests,
		reservations: reservations,
		events:       events,
		geo:          geo,
		matcher:      NewMatcher(geo, NewScorer()),
		logger:       logger,
	}
}

func (s *bloodService) CreateRequest(ctx context.Context, req domain.CreateBloodRequestRequest) (*domain.CreateBloodRequestResponse, error) {
	if !req.BloodType.Valid() {
		return nil, fmt.Errorf("blood type %q: %w", req.BloodType, e.ErrValidation)
	}
	if req.UnitsNeeded <= 0 {
		return nil, fmt.Errorf("units needed %d: %w", req.UnitsNeeded, e.ErrValidation)
	}
	if !req.Urgency.Valid() {
		return nil, fmt.Errorf("urgency %q: %w", req.Urgency, e.ErrValidation)
	}

	requester, err := s.hospitals.Get(ctx, req.RequestingHospitalID)
	if err != nil {
		return nil, err
	}

	hospitals, err := s.hospitals.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	candidates, err := s.rankDonors(requester, hospitals, req.BloodType, req.UnitsNeeded)
	if err != nil {
		return nil, err
	}

	// nothing in stock anywhere: point operators at the closest facility
	var nearest *domain.NearestDonorSuggestion
	if len(candidates) == 0 {
		nd, err := s.matcher.FindNearestDonor(hospitals, requester)
		if err != nil {
			return nil, err
		}
		if nd != nil {
			nearest = &domain.NearestDonorSuggestion{
				HospitalID:   nd.Hospital.ID,
				HospitalName: nd.Hospital.Name,
				DistanceKm:   nd.DistanceKm,
				EtaMinutes:   s.geo.EtaMinutes(nd.DistanceKm),
			}
		}
	}

	request := &domain.BloodRequest{
		ID:                   uuid.New(),
		RequestingHospitalID: requester.ID,
		BloodType:            req.BloodType,
		UnitsNeeded:          req.UnitsNeeded,
		Urgency:              req.Urgency,
		Status:               domain.BloodRequestPending,
		CreatedAt:            time.Now().UTC(),
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info("blood request created",
		slog.String("request_id", request.ID.String()),
		slog.String("blood_type", string(req.BloodType)),
		slog.Int("units", req.UnitsNeeded),
		slog.Int("candidates", len(candidates)),
	)
	return &domain.CreateBloodRequestResponse{Request: request, Candidates: candidates, NearestDonor: nearest}, nil
}

// rankDonors filters hospitals other than the requester holding any units of
// the type, full fulfillers first, then by ascending distance.
func (s *bloodService) rankDonors(requester *domain.Hospital, hospitals []*domain.Hospital, bloodType domain.BloodType, unitsNeeded int) ([]domain.DonorCandidate, error) {
	candidates := make([]domain.DonorCandidate, 0, len(hospitals))
	for _, h := range hospitals {
		if h.ID == requester.ID {
			continue
		}
		units := h.BloodInventory[bloodType]
		if units <= 0 {
			continue
		}
		dist, err := s.geo.DistanceKm(requester.Location, h.Location)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, domain.DonorCandidate{
			HospitalID:     h.ID,
			HospitalName:   h.Name,
			UnitsAvailable: units,
			CanFulfill:     units >= unitsNeeded,
			DistanceKm:     dist,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].CanFulfill != candidates[j].CanFulfill {
			return candidates[i].CanFulfill
		}
		return candidates[i].DistanceKm < candidates[j].DistanceKm
	})
	return candidates, nil
}

func (s *bloodService) AcceptRequest(ctx context.Context, requestID, donorHospitalID uuid.UUID) (*domain.BloodRequest, error) {
	request, err := s.requests.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != domain.BloodRequestPending {
		return nil, fmt.Errorf("request %s is %s: %w", requestID, request.Status, e.ErrInvalidState)
	}

	donor, err := s.hospitals.Get(ctx, donorHospitalID)
	if err != nil {
		return nil, err
	}
	if donor.BloodInventory[request.BloodType] < request.UnitsNeeded {
		return nil, fmt.Errorf("donor %s holds %d of %s, need %d: %w",
			donorHospitalID, donor.BloodInventory[request.BloodType],
			request.BloodType, request.UnitsNeeded, e.ErrInsufficientResource)
	}

	requester, err := s.hospitals.Get(ctx, request.RequestingHospitalID)
	if err != nil {
		return nil, err
	}
	dist, err := s.geo.DistanceKm(donor.Location, requester.Location)
	if err != nil {
		return nil, err
	}

	// the check-and-decrement is the commit point; losing the precondition
	// between read and here surfaces as ErrInsufficientResource
	if err := s.hospitals.WithdrawBlood(ctx, donorHospitalID, request.BloodType, request.UnitsNeeded); err != nil {
		return nil, err
	}

	request.Status = domain.BloodRequestAccepted
	request.DonorHospitalID = &donorHospitalID
	request.DeliveryEtaMinutes = s.geo.EtaMinutes(dist)
	if err := s.requests.Update(ctx, request, domain.BloodRequestPending); err != nil {
		// a concurrent accept won the request; give the units back
		if derr := s.hospitals.DepositBlood(ctx, donorHospitalID, request.BloodType, request.UnitsNeeded); derr != nil {
			s.logger.Error("restock after lost accept failed",
				slog.String("request_id", requestID.String()),
				slog.Any("error", derr),
			)
		}
		if errors.Is(err, e.ErrConflict) {
			return nil, fmt.Errorf("request %s already resolved: %w", requestID, e.ErrInvalidState)
		}
		return nil, err
	}

	if err := s.reservations.Create(ctx, &domain.Reservation{
		ID:         uuid.New(),
		Kind:       domain.ReservationBlood,
		HospitalID: donorHospitalID,
		SubjectID:  request.ID,
		BloodType:  request.BloodType,
		Quantity:   request.UnitsNeeded,
		CreatedAt:  time.Now().UTC(),
	}); err != nil {
		return nil, err
	}

	s.emit(ctx, domain.DispatchEvent{
		Type:       domain.EventBloodAccepted,
		HospitalID: &donorHospitalID,
		RequestID:  &request.ID,
		OccurredAt: time.Now().UTC(),
	})
	return request, nil
}

func (s *bloodService) CompleteTransfer(ctx context.Context, requestID uuid.UUID) (*domain.BloodRequest, error) {
	request, err := s.requests.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != domain.BloodRequestAccepted {
		return nil, fmt.Errorf("request %s is %s: %w", requestID, request.Status, e.ErrInvalidState)
	}

	now := time.Now().UTC()
	request.Status = domain.BloodRequestCompleted
	request.ResolvedAt = &now
	if err := s.requests.Update(ctx, request, domain.BloodRequestAccepted); err != nil {
		if errors.Is(err, e.ErrConflict) {
			return nil, fmt.Errorf("request %s already resolved: %w", requestID, e.ErrInvalidState)
		}
		return nil, err
	}

	if err := s.hospitals.DepositBlood(ctx, request.RequestingHospitalID, request.BloodType, request.UnitsNeeded); err != nil {
		return nil, err
	}

	res, err := s.reservations.FindActiveBySubject(ctx, request.ID)
	if err != nil && !errors.Is(err, e.ErrNotFound) {
		return nil, err
	}
	if res != nil {
		if err := s.reservations.Release(ctx, res.ID, now); err != nil {
			return nil, err
		}
	}

	s.emit(ctx, domain.DispatchEvent{
		Type:       domain.EventBloodCompleted,
		HospitalID: &request.RequestingHospitalID,
		RequestID:  &request.ID,
		OccurredAt: now,
	})
	return request, nil
}

func (s *bloodService) RejectRequest(ctx context.Context, requestID uuid.UUID, reason string) (*domain.BloodRequest, error) {
	request, err := s.requests.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != domain.BloodRequestPending {
		return nil, fmt.Errorf("request %s is %s: %w", requestID, request.Status, e.ErrInvalidState)
	}

	now := time.Now().UTC()
	request.Status = domain.BloodRequestRejected
	request.RejectReason = reason
	request.ResolvedAt = &now
	if err := s.requests.Update(ctx, request, domain.BloodRequestPending); err != nil {
		if errors.Is(err, e.ErrConflict) {
			return nil, fmt.Errorf("request %s already resolved: %w", requestID, e.ErrInvalidState)
		}
		return nil, err
	}
	return request, nil
}

func (s *bloodService) emit(ctx context.Context, ev domain.DispatchEvent) {
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
