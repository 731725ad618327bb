package domain

import "github.com/google/uuid"

// CasualtyNeed is what the scorer works from: the injury text plus the blood
// requirement, if any.
type CasualtyNeed struct {
	InjuryType       string
	BloodType        BloodType
	BloodUnitsNeeded int
}

// HospitalScore holds the four sub-scores and the triage-weighted total.
// Weights: blood 40%, specialist 30%, distance 20%, beds 10%.
type HospitalScore struct {
	Blood      int     `json:"blood"`
	Specialist int     `json:"specialist"`
	Distance   int     `json:"distance"`
	Beds       int     `json:"beds"`
	Total      float64 `json:"total"`
}

// RankedHospital is one entry of the matcher output.
type RankedHospital struct {
	HospitalID         uuid.UUID     `json:"hospital_id"`
	HospitalName       string        `json:"hospital_name"`
	Location           Location      `json:"location"`
	BedsAvailable      int           `json:"beds_available"`
	Score              HospitalScore `json:"score"`
	DistanceKm         float64       `json:"distance_km"`
	EtaMinutes         int           `json:"eta_minutes"`
	RequiredSpecialist string        `json:"required_specialist"`
}
