package cancel_reservation

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
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/reservations"
	"github.com/m04kA/SMC-ScheduleService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
)

type fakeService struct {
	got *models.CancelRequest
	err error
}

func (f *fakeService) Cancel(ctx context.Context, id int64, req *models.CancelRequest) (*models.ReservationResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReservationResponse{ID: id, Status: "canceled"}, nil
}

func serve(svc *fakeService, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/reservations/{reservationId}/cancel", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/reservations/9/cancel", strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserID, "3")
	req.Header.Set(middleware.HeaderUserRole, "stylist")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_WithReason(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, `{"reason":"заболел"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got.Reason)
	assert.Equal(t, "заболел", *svc.got.Reason)
	assert.Equal(t, int64(3), svc.got.ActorID)
	assert.Equal(t, domain.ActorStylist, svc.got.ActorRole)
}

func TestHandler_EmptyBody(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.got.Reason)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{err: reservations.ErrReservationNotFound, status: http.StatusNotFound},
		{err: reservations.ErrAccessDenied, status: http.StatusForbidden},
		{err: reservations.ErrCannotCancel, status: http.StatusConflict},
		{err: reservations.ErrInvalidInput, status: http.StatusBadRequest},
		{err: reservations.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, "")
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
