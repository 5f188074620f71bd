package location

import "time"

// Input

type UpdateInput struct {
	DriverID    string  `json:"driverId"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	IsAvailable bool    `json:"isAvailable"`
}

type NearestInput struct {
	Longitude     float64 `json:"longitude"`
	Latitude      float64 `json:"latitude"`
	Limit         int     `json:"limit"`
	OnlyAvailable bool    `json:"onlyAvailable"`
}

type AvailabilityInput struct {
	DriverID    string `json:"driverId"`
	IsAvailable bool   `json:"isAvailable"`
}

type StatusInput struct {
	DriverID string `json:"driverId"`
	IsActive bool   `json:"isActive"`
	IsFree   bool   `json:"isFree"`
}

// Output

type LocationOutput struct {
	DriverID  string    `json:"driverId"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	IsActive  bool      `json:"isActive"`
	IsFree    bool      `json:"isFree"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type NearestOutput struct {
	LocationOutput
	DistanceKm float64 `json:"distanceKm"`
	EtaMinutes int     `json:"etaMinutes"`
}
