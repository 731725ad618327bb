package domain

import (
	"time"

	"github.com/google/uuid"
)

type AmbulanceStatus string

const (
	AmbulanceAvailable    AmbulanceStatus = "available"
	AmbulanceDispatched   AmbulanceStatus = "dispatched"
	AmbulanceEnRoute      AmbulanceStatus = "en_route"
	AmbulanceAtScene      AmbulanceStatus = "at_scene"
	AmbulanceTransporting AmbulanceStatus = "transporting"
	AmbulanceAtHospital   AmbulanceStatus = "at_hospital"
	AmbulanceOffline      AmbulanceStatus = "offline"
)

func (s AmbulanceStatus) Valid() bool {
	switch s {
	case AmbulanceAvailable, AmbulanceDispatched, AmbulanceEnRoute,
		AmbulanceAtScene, AmbulanceTransporting, AmbulanceAtHospital,
		AmbulanceOffline:
		return true
	}
	return false
}

type Ambulance struct {
	ID                    uuid.UUID       `json:"id"`
	CallSign              string          `json:"call_sign"`
	DriverName            string          `json:"driver_name"`
	PasswordHash          string          `json:"-"`
	Location              Location        `json:"location"`
	Status                AmbulanceStatus `json:"status"`
	CurrentAccidentID     *uuid.UUID      `json:"current_accident_id,omitempty"`
	DestinationHospitalID *uuid.UUID      `json:"destination_hospital_id,omitempty"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// NearestAmbulance is the locator result: the chosen unit plus the distance
// that won it the assignment.
type NearestAmbulance struct {
	Ambulance  Ambulance `json:"ambulance"`
	DistanceKm float64   `json:"distance_km"`
	EtaMinutes int       `json:"eta_minutes"`
}
