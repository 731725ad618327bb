package service

import (
	"lifeline/internal/domain"
)

// Locator picks the nearest available ambulance to a point. Side-effect free;
// the caller transitions the chosen unit transactionally afterwards.
type Locator struct {
	geo *Geo
}

func NewLocator(geo *Geo) *Locator {
	return &Locator{geo: geo}
}

// FindNearest returns the closest ambulance with status available, or nil if
// none qualifies. Ties keep the first encountered unit.
func (l *Locator) FindNearest(target domain.Location, ambulances []domain.Ambulance) (*domain.NearestAmbulance, error) {
	var best *domain.NearestAmbulance

	for i := range ambulances {
		amb := ambulances[i]
		if amb.Status != domain.AmbulanceAvailable {
			continue
		}
		dist, err := l.geo.DistanceKm(amb.Location, target)
		if err != nil {
			return nil, err
		}
		if best == nil || dist < best.DistanceKm {
			best = &domain.NearestAmbulance{
				Ambulance:  amb,
				DistanceKm: dist,
				EtaMinutes: l.geo.EtaMinutes(dist),
			}
		}
	}

	return best, nil
}
