package domain

import "github.com/google/uuid"

type ReportAccidentRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Lat         float64 `json:"lat" validate:"lat"`
	Lng         float64 `json:"lng" validate:"lng"`
	Address     string  `json:"address"` // optional; geocoded when coordinates are absent
}

// ReportAccidentResponse carries the created accident plus dispatch info when
// an ambulance was available. Dispatch is nil when the accident stays pending.
type ReportAccidentResponse struct {
	Accident *Accident         `json:"accident"`
	Dispatch *NearestAmbulance `json:"dispatch,omitempty"`
}

type AddCasualtyRequest struct {
	Name             string           `json:"name" validate:"required"`
	Age              int              `json:"age" validate:"gte=0,lte=150"`
	Gender           string           `json:"gender"`
	InjuryType       string           `json:"injury_type" validate:"required"`
	Severity         CasualtySeverity `json:"severity" validate:"severity"`
	BloodType        BloodType        `json:"blood_type" validate:"omitempty,bloodtype"`
	BloodUnitsNeeded int              `json:"blood_units_needed" validate:"gte=0"`
}

type AddCasualtyResponse struct {
	Casualty *Casualty       `json:"casualty"`
	Match    *RankedHospital `json:"match,omitempty"`
}

type AcceptAssignmentRequest struct {
	AccidentID uuid.UUID `json:"accident_id" validate:"required"`
}

type StartTransportRequest struct {
	HospitalID uuid.UUID `json:"hospital_id" validate:"required"`
}

type UpdateAmbulanceStatusRequest struct {
	Status AmbulanceStatus `json:"status" validate:"required"`
	Lat    *float64        `json:"lat,omitempty" validate:"omitempty,lat"`
	Lng    *float64        `json:"lng,omitempty" validate:"omitempty,lng"`
}

type UpdateAccidentStatusRequest struct {
	Status AccidentStatus `json:"status" validate:"required"`
}

type CreateBloodRequestRequest struct {
	RequestingHospitalID uuid.UUID    `json:"requesting_hospital_id" validate:"required"`
	BloodType            BloodType    `json:"blood_type" validate:"bloodtype"`
	UnitsNeeded          int          `json:"units_needed" validate:"gt=0"`
	Urgency              BloodUrgency `json:"urgency" validate:"urgency"`
}

type CreateBloodRequestResponse struct {
	Request      *BloodRequest           `json:"request"`
	Candidates   []DonorCandidate        `json:"candidates"`
	NearestDonor *NearestDonorSuggestion `json:"nearest_donor,omitempty"`
}

type AcceptBloodRequestRequest struct {
	DonorHospitalID uuid.UUID `json:"donor_hospital_id" validate:"required"`
}

type RejectBloodRequestRequest struct {
	Reason string `json:"reason"`
}

type RankHospitalsRequest struct {
	Lat              float64   `json:"lat" validate:"lat"`
	Lng              float64   `json:"lng" validate:"lng"`
	InjuryType       string    `json:"injury_type" validate:"required"`
	BloodType        BloodType `json:"blood_type" validate:"omitempty,bloodtype"`
	BloodUnitsNeeded int       `json:"blood_units_needed" validate:"gte=0"`
}
