package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/taxi24/location-service/internal/application/usecase/location"
	"github.com/taxi24/location-service/internal/domain/entity"
	"github.com/taxi24/location-service/pkg/logger"
)

// DriverLocation exposes the location core over HTTP. Responses use the
// `{"success": ..., "data"|"message": ...}` envelope the mobile clients
// already parse.
type DriverLocation struct {
	Update       location.UpdateUseCase
	Nearest      location.NearestUseCase
	Get          location.GetUseCase
	Availability location.AvailabilityUseCase
	Status       location.StatusUseCase
	Remove       location.RemoveUseCase
	Logger       logger.Logger
}

func NewDriverLocationHandler(
	update location.UpdateUseCase,
	nearest location.NearestUseCase,
	get location.GetUseCase,
	availability location.AvailabilityUseCase,
	status location.StatusUseCase,
	remove location.RemoveUseCase,
	log logger.Logger,
) *DriverLocation {
	return &DriverLocation{
		Update:       update,
		Nearest:      nearest,
		Get:          get,
		Availability: availability,
		Status:       status,
		Remove:       remove,
		Logger:       log,
	}
}

// Routes mounts the handler under /driver-location.
func (h *DriverLocation) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/nearest", h.FindNearest)
	r.Get("/{driverId}/location", h.GetLocation)
	r.Put("/{driverId}/location", h.UpdateLocation)
	r.Patch("/{driverId}/availability", h.UpdateAvailability)
	r.Patch("/{driverId}/status", h.UpdateStatus)
	r.Delete("/{driverId}", h.RemoveDriver)
	return r
}

type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func (h *DriverLocation) respond(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (h *DriverLocation) respondError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, entity.ErrInvalidArgument):
		h.respond(w, http.StatusBadRequest, envelope{Success: false, Message: err.Error()})
	case errors.Is(err, entity.ErrDriverNotFound):
		h.respond(w, http.StatusNotFound, envelope{Success: false, Message: "driver location not found"})
	case errors.Is(err, entity.ErrStoreUnavailable):
		h.Logger.Error(r.Context(), msg, logger.WithError(err))
		h.respond(w, http.StatusServiceUnavailable, envelope{Success: false, Message: "location store unavailable"})
	default:
		h.Logger.Error(r.Context(), msg, logger.WithError(err))
		h.respond(w, http.StatusInternalServerError, envelope{Success: false, Message: msg})
	}
}

// FindNearest handles GET /driver-location/nearest.
// An empty result is 200 with an empty list; 404 stays reserved for
// resources identified by a path segment.
func (h *DriverLocation) FindNearest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("longitude") == "" || q.Get("latitude") == "" {
		h.respond(w, http.StatusBadRequest, envelope{Success: false, Message: "longitude and latitude are required"})
		return
	}
	lon, err := strconv.ParseFloat(q.Get("longitude"), 64)
	if err != nil {
		h.respond(w, http.StatusBadRequest, envelope{Success: false, Message: "invalid longitude value"})
		return
	}
	lat, err := strconv.ParseFloat(q.Get("latitude"), 64)
	if err != nil {
		h.respond(w, http.StatusBadRequest, envelope{Success: false, Message: "invalid latitude value"})
		return
	}

	limit := location.DefaultNearestLimit
	if raw := q.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			h.respond(w, http.StatusBadRequest, envelope{Success: false, Message: "invalid limit value"})
			return
		}
	}

	onlyAvailable := true
	if raw := q.Get("onlyAvailable"); raw != "" {
		onlyAvailable = raw == "true"
	}

	drivers, err := h.Nearest.Execute(r.Context(), location.NearestInput{
		Longitude:     lon,
		Latitude:      lat,
		Limit:         limit,
		OnlyAvailable: onlyAvailable,
	})
	if err != nil {
		h.respondError(w, r, err, "error finding nearest drivers")
		return
	}

	if drivers == nil {
		drivers = []location.NearestOutput{}
	}
	h.respond(w, http.StatusOK, envelope{Success: true, Data: drivers})
}

// GetLocation handles GET /driver-location/{driverId}/location.
func (h *DriverLocation) GetLocation(w http.ResponseWriter, r *http.Request) {
	driverID := chi.URLParam(r, "driverId")

	out, err := h.Get.Execute(r.Context(), driverID)
	if err != nil {
		h.respondError(w, r, err, "error getting driver location")
		return
	}
	h.respond(w, http.StatusOK, envelope{Success: true, Data: out})
}

// UpdateLocation handles PUT /driver-location/{driverId}/location.
func (h *DriverLocation) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Latitude    *float64 `json:"latitude"`
		Longitude   *float64 `json:"longitude"`
		IsAvailable *bool    `json:"isAvailable"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.respond(w, http.StatusBadRequest, envelope{Success: false, Message: "invalid request body"})
		return
	}
	if body.Latitude == nil || body.Longitude == nil || body.IsAvailable == nil {
		h.respond(w, http.StatusBadRequest, envelope{Success: false, Message: "latitude, longitude and isAvailable are required"})
		return
	}

	err := h.Update.Execute(r.Context(), location.UpdateInput{
		DriverID:    chi.URLParam(r, "driverId"),
		Latitude:    *body.Latitude,
		Longitude:   *body.Longitude,
		IsAvailable: *body.IsAvailable,
	})
	if err != nil {
		h.respondError(w, r, err, "error updating driver location")
		return
	}
	h.respond(w, http.StatusOK, envelope{Success: true, Message: "driver location updated successfully"})
}

// UpdateAvailability handles PATCH /driver-location/{driverId}/availability.
func (h *DriverLocation) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IsAvailable *bool `json:"isAvailable"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.IsAvailable == nil {
		h.respond(w, http.StatusBadRequest, envelope{Success: false, Message: "isAvailable must be a boolean value"})
		return
	}

	err := h.Availability.Execute(r.Context(), location.AvailabilityInput{
		DriverID:    chi.URLParam(r, "driverId"),
		IsAvailable: *body.IsAvailable,
	})
	if err != nil {
		h.respondError(w, r, err, "error updating driver availability")
		return
	}
	h.respond(w, http.StatusOK, envelope{Success: true, Message: "driver availability updated successfully"})
}

// UpdateStatus handles PATCH /driver-location/{driverId}/status.
func (h *DriverLocation) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IsActive *bool `json:"isActive"`
		IsFree   *bool `json:"isFree"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.IsActive == nil || body.IsFree == nil {
		h.respond(w, http.StatusBadRequest, envelope{Success: false, Message: "isActive and isFree must be boolean values"})
		return
	}

	err := h.Status.Execute(r.Context(), location.StatusInput{
		DriverID: chi.URLParam(r, "driverId"),
		IsActive: *body.IsActive,
		IsFree:   *body.IsFree,
	})
	if err != nil {
		h.respondError(w, r, err, "error updating driver status")
		return
	}
	h.respond(w, http.StatusOK, envelope{Success: true, Message: "driver status updated successfully"})
}

// RemoveDriver handles DELETE /driver-location/{driverId}.
func (h *DriverLocation) RemoveDriver(w http.ResponseWriter, r *http.Request) {
	err := h.Remove.Execute(r.Context(), chi.URLParam(r, "driverId"))
	if err != nil {
		h.respondError(w, r, err, "error removing driver")
		return
	}
	h.respond(w, http.StatusOK, envelope{Success: true, Message: "driver removed successfully"})
}
