package service

import (
	"math"

	"lifeline/internal/domain"
	"lifeline/pkg/e"
)

const (
	earthRadiusKm = 6371.0

	// Both constants are tunable via config; the defaults reproduce the
	// behavior the fleet is calibrated against.
	DefaultSlackKm     = 0.02 // positional slack compensating GPS noise
	DefaultAvgSpeedKmh = 40.0
)

// Geo computes great-circle distances and ETAs. Pure; safe for concurrent use.
type Geo struct {
	SlackKm     float64
	AvgSpeedKmh float64
}

func NewGeo(slackKm, avgSpeedKmh float64) *Geo {
	if avgSpeedKmh <= 0 {
		avgSpeedKmh = DefaultAvgSpeedKmh
	}
	if slackKm < 0 {
		slackKm = DefaultSlackKm
	}
	return &Geo{SlackKm: slackKm, AvgSpeedKmh: avgSpeedKmh}
}

// DistanceKm returns the haversine distance between a and b reduced by the
// positional slack, floored at zero.
func (g *Geo) DistanceKm(a, b domain.Location) (float64, error) {
	if !a.Valid() || !b.Valid() {
		return 0, e.ErrInvalidCoordinates
	}

	dLat := deg2rad(b.Lat - a.Lat)
	dLng := deg2rad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(a.Lat))*math.Cos(deg2rad(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	d := earthRadiusKm*c - g.SlackKm
	if d < 0 {
		d = 0
	}
	return d, nil
}

// EtaMinutes converts a distance into whole minutes at the assumed average
// speed, rounded up.
func (g *Geo) EtaMinutes(distanceKm float64) int {
	if distanceKm <= 0 {
		return 0
	}
	return int(math.Ceil(distanceKm / g.AvgSpeedKmh * 60))
}

func deg2rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}
