// Package geo provides the pure great-circle geometry used by the
// driver location subsystem: haversine distance and a coarse ETA
// estimate. All functions are stateless.
package geo

import (
	"fmt"
	"math"

	"github.com/taxi24/location-service/internal/domain/entity"
)

const (
	// EarthRadiusKm is the mean Earth radius used by the haversine formula.
	EarthRadiusKm = 6371.0

	// DefaultAvgSpeedKmh is the assumed urban driving speed for ETA estimates.
	DefaultAvgSpeedKmh = 30.0
)

// DistanceKm returns the great-circle distance in kilometers between two
// points given in signed degrees, rounded to two decimal places.
func DistanceKm(lat1, lon1, lat2, lon2 float64) (float64, error) {
	for _, v := range [...]float64{lat1, lon1, lat2, lon2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: coordinate is not a finite number", entity.ErrInvalidArgument)
		}
	}

	lat1Rad := toRadians(lat1)
	lat2Rad := toRadians(lat2)
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return round2(EarthRadiusKm * c), nil
}

// ETAMinutes estimates travel time in whole minutes for distanceKm at
// avgSpeedKmh. A non-positive or non-finite speed is an invalid argument,
// never a silent division by zero.
func ETAMinutes(distanceKm, avgSpeedKmh float64) (int, error) {
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) || distanceKm < 0 {
		return 0, fmt.Errorf("%w: distance must be a finite non-negative number", entity.ErrInvalidArgument)
	}
	if math.IsNaN(avgSpeedKmh) || math.IsInf(avgSpeedKmh, 0) || avgSpeedKmh <= 0 {
		return 0, fmt.Errorf("%w: average speed must be a positive number", entity.ErrInvalidArgument)
	}
	return int(math.Round(distanceKm / avgSpeedKmh * 60)), nil
}

func toRadians(deg float64) float64 {
	return deg * (math.Pi / 180)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
