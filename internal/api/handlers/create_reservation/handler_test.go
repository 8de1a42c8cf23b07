package create_reservation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type fakeUseCase struct {
	got *createReservation.Request
	err error
}

func (f *fakeUseCase) Execute(ctx context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &createReservation.Response{
		ID:              7,
		StylistID:       req.StylistID,
		CustomerID:      req.CustomerID,
		CustomerName:    req.CustomerName,
		Date:            req.Date,
		StartTime:       req.StartTime,
		EndTime:         types.MustTimeString("11:00"),
		DurationMinutes: 60,
		Status:          "pending",
		ServiceIDs:      req.ServiceIDs,
		ServiceNames:    []string{"Стрижка"},
		CreatedAt:       time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
		UpdatedAt:       time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
	}, nil
}

func serve(t *testing.T, uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()

	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/stylists/{stylistId}/reservations", NewHandler(uc, logger.Nop()).Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/stylists/1/reservations", strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserID, "42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const validBody = `{"customerName":"Анна","date":"2025-03-12","startTime":"10:00","serviceIds":[1]}`

func TestHandler_Created(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(t, uc, validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(1), uc.got.StylistID)
	assert.Equal(t, int64(42), uc.got.CustomerID)
	assert.Equal(t, "10:00", uc.got.StartTime.String())

	var resp ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "2025-03-12", resp.Date)
	assert.Equal(t, "11:00", resp.EndTime)
}

func TestHandler_BadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "не JSON", body: `{`},
		{name: "плохая дата", body: `{"customerName":"Анна","date":"12.03.2025","startTime":"10:00","serviceIds":[1]}`},
		{name: "плохое время", body: `{"customerName":"Анна","date":"2025-03-12","startTime":"25:00","serviceIds":[1]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			rec := serve(t, uc, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{err: createReservation.ErrCapacityExceeded, status: http.StatusConflict},
		{err: createReservation.ErrBusy, status: http.StatusConflict},
		{err: createReservation.ErrServiceNotFound, status: http.StatusNotFound},
		{err: createReservation.ErrNoServices, status: http.StatusBadRequest},
		{err: createReservation.ErrHoliday, status: http.StatusBadRequest},
		{err: createReservation.ErrStartBeforeOpening, status: http.StatusBadRequest},
		{err: createReservation.ErrEndAfterClosing, status: http.StatusBadRequest},
		{err: createReservation.ErrPastCutoff, status: http.StatusBadRequest},
		{err: fmt.Errorf("%w: name too long", createReservation.ErrInvalidInput), status: http.StatusBadRequest},
		{err: createReservation.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := serve(t, &fakeUseCase{err: tt.err}, validBody)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandler_Unauthorized(t *testing.T) {
	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/stylists/{stylistId}/reservations", NewHandler(&fakeUseCase{}, logger.Nop()).Handle)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/stylists/1/reservations", strings.NewReader(validBody)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
