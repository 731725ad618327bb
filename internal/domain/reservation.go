package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReservationKind string

const (
	ReservationBed   ReservationKind = "bed"
	ReservationBlood ReservationKind = "blood"
)

// Reservation ties a consumption event to the exact quantity taken so a
// cancellation can restore precisely what was reserved. ExpiresAt is
// advisory; the sweeper worker releases reservations past it.
type Reservation struct {
	ID         uuid.UUID       `json:"id"`
	Kind       ReservationKind `json:"kind"`
	HospitalID uuid.UUID       `json:"hospital_id"`
	SubjectID  uuid.UUID       `json:"subject_id"` // casualty or blood request
	BloodType  BloodType       `json:"blood_type,omitempty"`
	Quantity   int             `json:"quantity"`
	CreatedAt  time.Time       `json:"created_at"`
	ExpiresAt  *time.Time      `json:"expires_at,omitempty"`
	ReleasedAt *time.Time      `json:"released_at,omitempty"`
}

func (r *Reservation) Active() bool {
	return r.ReleasedAt == nil
}
