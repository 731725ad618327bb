package domain

import (
	"time"

	"github.com/google/uuid"
)

type BloodUrgency string

const (
	UrgencyNormal   BloodUrgency = "normal"
	UrgencyUrgent   BloodUrgency = "urgent"
	UrgencyCritical BloodUrgency = "critical"
)

func (u BloodUrgency) Valid() bool {
	switch u {
	case UrgencyNormal, UrgencyUrgent, UrgencyCritical:
		return true
	}
	return false
}

type BloodRequestStatus string

const (
	BloodRequestPending   BloodRequestStatus = "pending"
	BloodRequestAccepted  BloodRequestStatus = "accepted"
	BloodRequestCompleted BloodRequestStatus = "completed"
	BloodRequestRejected  BloodRequestStatus = "rejected"
)

type BloodRequest struct {
	ID                   uuid.UUID          `json:"id"`
	RequestingHospitalID uuid.UUID          `json:"requesting_hospital_id"`
	BloodType            BloodType          `json:"blood_type"`
	UnitsNeeded          int                `json:"units_needed"`
	Urgency              BloodUrgency       `json:"urgency"`
	Status               BloodRequestStatus `json:"status"`
	DonorHospitalID      *uuid.UUID         `json:"donor_hospital_id,omitempty"`
	DeliveryEtaMinutes   int                `json:"delivery_eta_minutes,omitempty"`
	RejectReason         string             `json:"reject_reason,omitempty"`
	CreatedAt            time.Time          `json:"created_at"`
	ResolvedAt           *time.Time         `json:"resolved_at,omitempty"`
}

// DonorCandidate is informational output of request creation: hospitals that
// hold any units of the requested type, full fulfillers ranked first.
type DonorCandidate struct {
	HospitalID     uuid.UUID `json:"hospital_id"`
	HospitalName   string    `json:"hospital_name"`
	UnitsAvailable int       `json:"units_available"`
	CanFulfill     bool      `json:"can_fulfill"`
	DistanceKm     float64   `json:"distance_km"`
}

// NearestDonorSuggestion names the closest other facility when no candidate
// holds the requested type, so operators have a starting point for manual
// escalation.
type NearestDonorSuggestion struct {
	HospitalID   uuid.UUID `json:"hospital_id"`
	HospitalName string    `json:"hospital_name"`
	DistanceKm   float64   `json:"distance_km"`
	EtaMinutes   int       `json:"eta_minutes"`
}
