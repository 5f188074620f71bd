package entity

import (
	"math"
	"time"
)

// DriverLocation is the single tracked record per driver: current
// coordinates plus the two status flags. IsActive means the driver is
// logged into the system; IsFree means the driver is not engaged in a
// trip and is the flag availability queries filter on.
type DriverLocation struct {
	DriverID  string    `json:"driverId"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	IsActive  bool      `json:"isActive"`
	IsFree    bool      `json:"isFree"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewDriverLocation(driverID string, lat, lon float64, isActive, isFree bool) (*DriverLocation, error) {
	loc := &DriverLocation{
		DriverID:  driverID,
		Latitude:  lat,
		Longitude: lon,
		IsActive:  isActive,
		IsFree:    isFree,
		UpdatedAt: time.Now().UTC(),
	}

	if err := loc.Validate(); err != nil {
		return nil, err
	}
	return loc, nil
}

func (l *DriverLocation) Validate() error {
	if l.DriverID == "" {
		return ErrDriverIDRequired
	}
	if err := ValidateCoordinates(l.Latitude, l.Longitude); err != nil {
		return err
	}
	return nil
}

// ValidateCoordinates enforces the signed-degree ranges and rejects
// NaN/Inf, which Redis would otherwise accept as garbage geo members.
func ValidateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return ErrCoordinateNotFinite
	}
	if lat < -90 || lat > 90 {
		return ErrLatitudeOutOfRange
	}
	if lon < -180 || lon > 180 {
		return ErrLongitudeOutOfRange
	}
	return nil
}
