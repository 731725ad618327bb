package domain

import (
	"time"

	"github.com/google/uuid"
)

type AccidentStatus string

const (
	AccidentPending          AccidentStatus = "pending"
	AccidentDispatched       AccidentStatus = "ambulance_dispatched"
	AccidentAmbulanceEnRoute AccidentStatus = "ambulance_en_route"
	AccidentAmbulanceArrived AccidentStatus = "ambulance_arrived"
	AccidentInTransit        AccidentStatus = "in_transit"
	AccidentCompleted        AccidentStatus = "completed"
	AccidentCancelled        AccidentStatus = "cancelled"
)

func (s AccidentStatus) Valid() bool {
	switch s {
	case AccidentPending, AccidentDispatched, AccidentAmbulanceEnRoute,
		AccidentAmbulanceArrived, AccidentInTransit, AccidentCompleted,
		AccidentCancelled:
		return true
	}
	return false
}

func (s AccidentStatus) Terminal() bool {
	return s == AccidentCompleted || s == AccidentCancelled
}

// AssignedAmbulance is a denormalized snapshot taken at dispatch time so the
// accident record stays meaningful even after the ambulance moves on.
type AssignedAmbulance struct {
	ID         uuid.UUID `json:"id"`
	CallSign   string    `json:"call_sign"`
	DistanceKm float64   `json:"distance_km"`
	EtaMinutes int       `json:"eta_minutes"`
}

type Accident struct {
	ID                uuid.UUID          `json:"id"`
	Title             string             `json:"title"`
	Description       string             `json:"description"`
	Location          Location           `json:"location"`
	Status            AccidentStatus     `json:"status"`
	AssignedAmbulance *AssignedAmbulance `json:"assigned_ambulance,omitempty"`
	CasualtyIDs       []uuid.UUID        `json:"casualty_ids"`
	CreatedAt         time.Time          `json:"created_at"`
	CompletedAt       *time.Time         `json:"completed_at,omitempty"`
}
