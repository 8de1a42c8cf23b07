package get_day_schedule

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	getDaySchedule "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_day_schedule"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// today дата, которую use case подставляет вместо пустой или некорректной
var today = time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

type fakeUseCase struct {
	got *getDaySchedule.Request
	err error
}

func (f *fakeUseCase) Execute(ctx context.Context, req *getDaySchedule.Request) (*getDaySchedule.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		date = today
	}
	open := types.MustTimeString("10:00")
	closing := types.MustTimeString("11:00")
	return &getDaySchedule.Response{
		StylistID:   req.StylistID,
		Date:        date,
		OpeningTime: &open,
		ClosingTime: &closing,
		Slots: []getDaySchedule.SlotInfo{
			{
				Slot: domain.MustSlot("10:00"), Time: open, Count: 1, Limit: 2, Remaining: 1,
				Reservations: []getDaySchedule.ReservationInfo{
					{ID: 5, CustomerName: "Анна", StartTime: open, EndTime: closing, Status: "pending"},
				},
			},
			{Slot: domain.MustSlot("10:30"), Time: types.MustTimeString("10:30"), Count: 1, Limit: 2, Remaining: 1},
			{Slot: domain.MustSlot("19:00"), Time: types.MustTimeString("19:00"), Limit: 2, Remaining: 2, OutsideHours: true},
		},
	}, nil
}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/stylists/{stylistId}/schedule", NewHandler(uc, logger.Nop()).Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set(middleware.HeaderUserID, "8")
	req.Header.Set(middleware.HeaderUserRole, "stylist")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_OK(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "/stylists/8/schedule?date=2025-03-12")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(8), uc.got.ActorID)

	var resp DayScheduleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-03-12", resp.Date)
	require.Len(t, resp.Slots, 3)
	assert.Equal(t, 20, resp.Slots[0].Slot)
	require.Len(t, resp.Slots[0].Reservations, 1)
	assert.Equal(t, "Анна", resp.Slots[0].Reservations[0].CustomerName)
	assert.Equal(t, []string{}, resp.Slots[0].Reservations[0].ServiceNames)
	assert.Empty(t, resp.Slots[1].Reservations)
	assert.NotNil(t, resp.Slots[1].Reservations)
	assert.False(t, resp.Slots[0].OutsideHours)
	assert.True(t, resp.Slots[2].OutsideHours)
}

func TestHandler_DateFallsBackToToday(t *testing.T) {
	tests := []struct {
		name   string
		target string
		raw    string
	}{
		{name: "missing", target: "/stylists/8/schedule", raw: ""},
		{name: "unparseable", target: "/stylists/8/schedule?date=12.03.2025", raw: "12.03.2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			rec := serve(uc, tt.target)

			require.Equal(t, http.StatusOK, rec.Code)
			require.NotNil(t, uc.got)
			assert.Equal(t, tt.raw, uc.got.Date)

			var resp DayScheduleResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, domain.DateKey(today), resp.Date)
		})
	}
}

func TestHandler_ErrorMapping(t *testing.T) {
	rec := serve(&fakeUseCase{err: getDaySchedule.ErrAccessDenied}, "/stylists/9/schedule?date=2025-03-12")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(&fakeUseCase{err: getDaySchedule.ErrInternal}, "/stylists/8/schedule?date=2025-03-12")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
