package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taxi24/location-service/internal/application/usecase/location"
	"github.com/taxi24/location-service/internal/domain/entity"
	"github.com/taxi24/location-service/pkg/logger"
)

type stubUseCases struct {
	updateErr       error
	updateCalled    *location.UpdateInput
	nearestOut      []location.NearestOutput
	nearestErr      error
	getOut          location.LocationOutput
	getErr          error
	availabilityErr error
	statusErr       error
	removeErr       error
}

func (s *stubUseCases) Execute(_ context.Context, input location.UpdateInput) error {
	s.updateCalled = &input
	return s.updateErr
}

type stubNearest struct{ s *stubUseCases }

func (n stubNearest) Execute(context.Context, location.NearestInput) ([]location.NearestOutput, error) {
	return n.s.nearestOut, n.s.nearestErr
}

type stubGet struct{ s *stubUseCases }

func (g stubGet) Execute(context.Context, string) (location.LocationOutput, error) {
	return g.s.getOut, g.s.getErr
}

type stubAvailability struct{ s *stubUseCases }

func (a stubAvailability) Execute(context.Context, location.AvailabilityInput) error {
	return a.s.availabilityErr
}

type stubStatus struct{ s *stubUseCases }

func (st stubStatus) Execute(context.Context, location.StatusInput) error { return st.s.statusErr }

type stubRemove struct{ s *stubUseCases }

func (r stubRemove) Execute(context.Context, string) error { return r.s.removeErr }

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...logger.Field) {}
func (nopLogger) Info(context.Context, string, ...logger.Field)  {}
func (nopLogger) Warn(context.Context, string, ...logger.Field)  {}
func (nopLogger) Error(context.Context, string, ...logger.Field) {}
func (n nopLogger) With(...logger.Field) logger.Logger           { return n }

func newTestHandler(s *stubUseCases) http.Handler {
	h := NewDriverLocationHandler(s, stubNearest{s}, stubGet{s}, stubAvailability{s}, stubStatus{s}, stubRemove{s}, nopLogger{})
	return h.Routes()
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestFindNearest_MissingCoordinatesIs400(t *testing.T) {
	router := newTestHandler(&stubUseCases{})

	req := httptest.NewRequest(http.MethodGet, "/nearest?latitude=40.4", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFindNearest_EmptyResultIs200WithEmptyList(t *testing.T) {
	router := newTestHandler(&stubUseCases{})

	req := httptest.NewRequest(http.MethodGet, "/nearest?longitude=-3.7&latitude=40.4", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, []interface{}{}, body["data"])
}

func TestFindNearest_InvalidLimitIs400(t *testing.T) {
	s := &stubUseCases{nearestErr: entity.ErrLimitMustBePos}
	router := newTestHandler(s)

	req := httptest.NewRequest(http.MethodGet, "/nearest?longitude=-3.7&latitude=40.4&limit=0", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFindNearest_StoreUnavailableIs503(t *testing.T) {
	s := &stubUseCases{nearestErr: entity.ErrStoreUnavailable}
	router := newTestHandler(s)

	req := httptest.NewRequest(http.MethodGet, "/nearest?longitude=-3.7&latitude=40.4", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetLocation_NotFoundIs404(t *testing.T) {
	s := &stubUseCases{getErr: entity.ErrDriverNotFound}
	router := newTestHandler(s)

	req := httptest.NewRequest(http.MethodGet, "/ghost/location", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetLocation_ReturnsRecord(t *testing.T) {
	s := &stubUseCases{getOut: location.LocationOutput{DriverID: "driver-1", Latitude: 40.4168, Longitude: -3.7038, IsActive: true, IsFree: true}}
	router := newTestHandler(s)

	req := httptest.NewRequest(http.MethodGet, "/driver-1/location", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "driver-1", data["driverId"])
	assert.Equal(t, 40.4168, data["latitude"])
}

func TestUpdateLocation_MissingFieldsIs400(t *testing.T) {
	router := newTestHandler(&stubUseCases{})

	tests := []struct {
		name string
		body string
	}{
		{"missing latitude", `{"longitude": -3.7, "isAvailable": true}`},
		{"missing longitude", `{"latitude": 40.4, "isAvailable": true}`},
		{"missing isAvailable", `{"latitude": 40.4, "longitude": -3.7}`},
		{"malformed json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/driver-1/location", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestUpdateLocation_DelegatesToUseCase(t *testing.T) {
	s := &stubUseCases{}
	router := newTestHandler(s)

	req := httptest.NewRequest(http.MethodPut, "/driver-1/location",
		strings.NewReader(`{"latitude": 40.4168, "longitude": -3.7038, "isAvailable": true}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, s.updateCalled)
	assert.Equal(t, "driver-1", s.updateCalled.DriverID)
	assert.Equal(t, 40.4168, s.updateCalled.Latitude)
	assert.True(t, s.updateCalled.IsAvailable)
}

func TestUpdateLocation_OutOfRangeCoordinatesIs400(t *testing.T) {
	s := &stubUseCases{updateErr: entity.ErrLatitudeOutOfRange}
	router := newTestHandler(s)

	req := httptest.NewRequest(http.MethodPut, "/driver-1/location",
		strings.NewReader(`{"latitude": 95.0, "longitude": -3.7, "isAvailable": true}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateStatus_WrongTypedFieldsIs400(t *testing.T) {
	router := newTestHandler(&stubUseCases{})

	req := httptest.NewRequest(http.MethodPatch, "/driver-1/status",
		strings.NewReader(`{"isActive": "yes", "isFree": true}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateStatus_UnknownDriverIs404(t *testing.T) {
	s := &stubUseCases{statusErr: entity.ErrDriverNotFound}
	router := newTestHandler(s)

	req := httptest.NewRequest(http.MethodPatch, "/ghost/status",
		strings.NewReader(`{"isActive": true, "isFree": true}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateAvailability_Delegates(t *testing.T) {
	router := newTestHandler(&stubUseCases{})

	req := httptest.NewRequest(http.MethodPatch, "/driver-1/availability",
		strings.NewReader(`{"isAvailable": false}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRemoveDriver_AlwaysSucceeds(t *testing.T) {
	router := newTestHandler(&stubUseCases{})

	req := httptest.NewRequest(http.MethodDelete, "/driver-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
