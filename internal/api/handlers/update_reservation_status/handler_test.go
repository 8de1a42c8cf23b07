package update_reservation_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/service/reservations"
	"github.com/m04kA/SMC-ScheduleService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
)

type fakeService struct {
	got *models.UpdateStatusRequest
	err error
}

func (f *fakeService) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReservationResponse{ID: id, Status: req.Status}, nil
}

func serve(svc *fakeService, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/reservations/{reservationId}/status", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/reservations/4/status", strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserID, "10")
	req.Header.Set(middleware.HeaderUserRole, "stylist")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_OK(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, `{"status":"completed"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "completed", svc.got.Status)
	assert.Equal(t, int64(10), svc.got.ActorID)
	assert.Contains(t, rec.Body.String(), `"status":"completed"`)
}

func TestHandler_UnknownField(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, `{"state":"completed"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.got)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{err: reservations.ErrReservationNotFound, status: http.StatusNotFound},
		{err: reservations.ErrAccessDenied, status: http.StatusForbidden},
		{err: reservations.ErrInvalidInput, status: http.StatusBadRequest},
		{err: reservations.ErrInvalidTransition, status: http.StatusConflict},
		{err: reservations.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, `{"status":"no_show"}`)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
