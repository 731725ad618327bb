package service

import (
	"sort"

	"lifeline/internal/domain"
)

// Matcher ranks hospitals for a casualty and locates donor hospitals for
// blood transfers. Pure over its inputs; no store access.
type Matcher struct {
	geo    *Geo
	scorer *Scorer
}

func NewMatcher(geo *Geo, scorer *Scorer) *Matcher {
	return &Matcher{geo: geo, scorer: scorer}
}

// Rank scores every usable hospital against the need and returns them sorted
// by total score descending. The sort is stable: ties keep input order.
// requireBed additionally filters hospitals with no free beds (the
// dispatch-bound variant).
func (m *Matcher) Rank(hospitals []*domain.Hospital, need domain.CasualtyNeed, from domain.Location, requireBed bool) ([]domain.RankedHospital, error) {
	specialist := RequiredSpecialist(need.InjuryType)

	ranked := make([]domain.RankedHospital, 0, len(hospitals))
	for _, h := range hospitals {
		if h == nil || !h.IsAvailable {
			continue
		}
		if requireBed && h.BedsAvailable == 0 {
			continue
		}
		dist, err := m.geo.DistanceKm(from, h.Location)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, domain.RankedHospital{
			HospitalID:         h.ID,
			HospitalName:       h.Name,
			Location:           h.Location,
			BedsAvailable:      h.BedsAvailable,
			Score:              m.scorer.Score(h, need, dist),
			DistanceKm:         dist,
			EtaMinutes:         m.geo.EtaMinutes(dist),
			RequiredSpecialist: specialist,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.Total > ranked[j].Score.Total
	})
	return ranked, nil
}

// FindBest returns the top-ranked hospital or nil when nothing qualifies.
func (m *Matcher) FindBest(hospitals []*domain.Hospital, need domain.CasualtyNeed, from domain.Location, requireBed bool) (*domain.RankedHospital, error) {
	ranked, err := m.Rank(hospitals, need, from, requireBed)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return nil, nil
	}
	return &ranked[0], nil
}

// NearestDonor is a hospital able to send blood plus its distance from the
// requesting hospital.
type NearestDonor struct {
	Hospital   *domain.Hospital
	DistanceKm float64
}

// FindNearestDonor returns the hospital nearest to the reference, excluding
// the reference itself. Nil when the list holds no other hospital.
func (m *Matcher) FindNearestDonor(hospitals []*domain.Hospital, reference *domain.Hospital) (*NearestDonor, error) {
	var best *NearestDonor
	for _, h := range hospitals {
		if h == nil || h.ID == reference.ID {
			continue
		}
		dist, err := m.geo.DistanceKm(reference.Location, h.Location)
		if err != nil {
			return nil, err
		}
		if best == nil || dist < best.DistanceKm {
			best = &NearestDonor{Hospital: h, DistanceKm: dist}
		}
	}
	return best, nil
}
