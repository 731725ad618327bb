package domain

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventTripStarted    EventType = "trip:started"
	EventTripArrived    EventType = "trip:arrived"
	EventTripCancelled  EventType = "trip:cancelled"
	EventBloodAccepted  EventType = "blood:accepted"
	EventBloodCompleted EventType = "blood:completed"
)

// DispatchEvent is a fire-and-forget notification. Delivery failure never
// rolls back the state transition that produced it.
type DispatchEvent struct {
	Type        EventType  `json:"type"`
	AccidentID  *uuid.UUID `json:"accident_id,omitempty"`
	AmbulanceID *uuid.UUID `json:"ambulance_id,omitempty"`
	HospitalID  *uuid.UUID `json:"hospital_id,omitempty"`
	RequestID   *uuid.UUID `json:"request_id,omitempty"`
	OccurredAt  time.Time  `json:"occurred_at"`
}
