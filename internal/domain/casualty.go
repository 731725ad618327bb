package domain

import (
	"time"

	"github.com/google/uuid"
)

type CasualtySeverity string

const (
	SeverityMild     CasualtySeverity = "mild"
	SeverityModerate CasualtySeverity = "moderate"
	SeveritySevere   CasualtySeverity = "severe"
	SeverityCritical CasualtySeverity = "critical"
)

func (s CasualtySeverity) Valid() bool {
	switch s {
	case SeverityMild, SeverityModerate, SeveritySevere, SeverityCritical:
		return true
	}
	return false
}

type CasualtyStatus string

const (
	CasualtyPending          CasualtyStatus = "pending"
	CasualtyHospitalAssigned CasualtyStatus = "hospital_assigned"
	CasualtyInTransit        CasualtyStatus = "in_transit"
	CasualtyAdmitted         CasualtyStatus = "admitted"
	CasualtyDischarged       CasualtyStatus = "discharged"
)

func (s CasualtyStatus) Valid() bool {
	switch s {
	case CasualtyPending, CasualtyHospitalAssigned, CasualtyInTransit,
		CasualtyAdmitted, CasualtyDischarged:
		return true
	}
	return false
}

// AssignedHospital snapshots the matcher's pick at assignment time.
type AssignedHospital struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	DistanceKm float64   `json:"distance_km"`
	EtaMinutes int       `json:"eta_minutes"`
}

type Casualty struct {
	ID               uuid.UUID         `json:"id"`
	AccidentID       uuid.UUID         `json:"accident_id"`
	Name             string            `json:"name"`
	Age              int               `json:"age"`
	Gender           string            `json:"gender"`
	InjuryType       string            `json:"injury_type"`
	Severity         CasualtySeverity  `json:"severity"`
	BloodType        BloodType         `json:"blood_type,omitempty"`
	BloodUnitsNeeded int               `json:"blood_units_needed"`
	Status           CasualtyStatus    `json:"status"`
	AssignedHospital *AssignedHospital `json:"assigned_hospital,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}
