package service

import (
	"math"
	"strings"

	"lifeline/internal/domain"
)

// Triage weights. Blood availability dominates, then specialist access, then
// proximity, then raw capacity.
const (
	weightBlood      = 0.4
	weightSpecialist = 0.3
	weightDistance   = 0.2
	weightBeds       = 0.1
)

const FallbackSpecialist = "Emergency Medicine Specialist"

// specialtyRule maps an injury keyword to the specialist it calls for.
// Ordered; the first keyword found in the injury description wins.
type specialtyRule struct {
	keyword    string
	specialist string
}

var specialtyRules = []specialtyRule{
	{"head", "Neurologist"},
	{"brain", "Neurologist"},
	{"cardiac", "Cardiologist"},
	{"heart", "Cardiologist"},
	{"chest", "Cardiologist"},
	{"burn", "Plastic Surgeon"},
	{"fracture", "Orthopedic Surgeon"},
	{"bone", "Orthopedic Surgeon"},
	{"spine", "Orthopedic Surgeon"},
	{"eye", "Ophthalmologist"},
	{"pregnan", "Gynecologist"},
	{"child", "Pediatrician"},
	{"poison", "Toxicologist"},
	{"breath", "Pulmonologist"},
	{"lung", "Pulmonologist"},
	{"abdom", "General Surgeon"},
	{"internal", "General Surgeon"},
}

// RequiredSpecialist resolves an injury description to a specialty by
// case-insensitive substring match, falling back to emergency medicine.
func RequiredSpecialist(injuryType string) string {
	injury := strings.ToLower(injuryType)
	for _, rule := range specialtyRules {
		if strings.Contains(injury, rule.keyword) {
			return rule.specialist
		}
	}
	return FallbackSpecialist
}

// Scorer computes the weighted suitability of a hospital for a casualty.
type Scorer struct{}

func NewScorer() *Scorer {
	return &Scorer{}
}

// Score computes the four sub-scores and the weighted total. distanceKm is
// supplied by the caller so the matcher computes it once per hospital.
func (s *Scorer) Score(h *domain.Hospital, need domain.CasualtyNeed, distanceKm float64) domain.HospitalScore {
	blood := s.bloodScore(h, need)
	specialist := s.specialistScore(h, need)
	distance := s.distanceScore(distanceKm)
	beds := s.bedsScore(h.BedsAvailable)

	total := float64(blood)*weightBlood +
		float64(specialist)*weightSpecialist +
		float64(distance)*weightDistance +
		float64(beds)*weightBeds

	return domain.HospitalScore{
		Blood:      blood,
		Specialist: specialist,
		Distance:   distance,
		Beds:       beds,
		Total:      math.Round(total*100) / 100,
	}
}

func (s *Scorer) bloodScore(h *domain.Hospital, need domain.CasualtyNeed) int {
	if need.BloodUnitsNeeded <= 0 {
		return 100
	}
	available := h.BloodInventory[need.BloodType]
	switch {
	case available >= need.BloodUnitsNeeded:
		return 100
	case available == 0:
		return 0
	default:
		return int(math.Round(float64(available) / float64(need.BloodUnitsNeeded) * 100))
	}
}

func (s *Scorer) specialistScore(h *domain.Hospital, need domain.CasualtyNeed) int {
	count := h.StaffCount[RequiredSpecialist(need.InjuryType)]
	switch {
	case count >= 3:
		return 100
	case count == 2:
		return 80
	case count == 1:
		return 50
	default:
		return 0
	}
}

func (s *Scorer) distanceScore(distanceKm float64) int {
	switch {
	case distanceKm <= 1:
		return 100
	case distanceKm >= 50:
		return 0
	default:
		return int(math.Round(100 - distanceKm/50*100))
	}
}

func (s *Scorer) bedsScore(beds int) int {
	switch {
	case beds >= 20:
		return 100
	case beds >= 10:
		return 70
	case beds >= 5:
		return 40
	case beds >= 1:
		return 20
	default:
		return 0
	}
}
