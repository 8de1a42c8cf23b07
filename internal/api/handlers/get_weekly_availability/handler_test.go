package get_weekly_availability

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

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	getWeeklyAvailability "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_weekly_availability"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type fakeUseCase struct {
	got *getWeeklyAvailability.Request
	err error
}

func (f *fakeUseCase) Execute(ctx context.Context, req *getWeeklyAvailability.Request) (*getWeeklyAvailability.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	open := types.MustTimeString("09:00")
	closing := types.MustTimeString("18:00")
	return &getWeeklyAvailability.Response{
		StylistID:       req.StylistID,
		WeekStart:       monday,
		NextWeek:        monday.AddDate(0, 0, 7),
		DurationMinutes: 60,
		SlotCount:       2,
		Days: []getWeeklyAvailability.Day{
			{
				Date:        monday,
				OpeningTime: &open,
				ClosingTime: &closing,
				Cells: []getWeeklyAvailability.Cell{
					{Slot: domain.MustSlot("09:00"), Time: open, Marker: domain.MarkerOpen},
					{Slot: domain.MustSlot("09:30"), Time: types.MustTimeString("09:30"), Marker: domain.MarkerLastAvailable},
				},
			},
			{Date: monday.AddDate(0, 0, 1), IsHoliday: true, Cells: []getWeeklyAvailability.Cell{}},
		},
	}, nil
}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/stylists/{stylistId}/availability", NewHandler(uc, logger.Nop()).Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_OK(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "/stylists/4/availability?date=2025-03-12&serviceIds=1,2&duration=60")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int64{1, 2}, uc.got.ServiceIDs)
	assert.Equal(t, "2025-03-12", uc.got.Date)
	require.NotNil(t, uc.got.DurationMinutes)
	assert.Equal(t, 60, *uc.got.DurationMinutes)

	var resp WeeklyAvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-03-10", resp.WeekStart)
	assert.Nil(t, resp.PrevWeek)
	assert.Equal(t, "2025-03-17", resp.NextWeek)
	require.Len(t, resp.Days, 2)
	assert.Equal(t, "LAST_AVAILABLE", resp.Days[0].Cells[1].Marker)
	assert.Equal(t, 19, resp.Days[0].Cells[1].Slot)
	require.NotNil(t, resp.Days[0].OpeningTime)
	assert.Equal(t, "09:00", *resp.Days[0].OpeningTime)
	assert.True(t, resp.Days[1].IsHoliday)
	assert.Nil(t, resp.Days[1].OpeningTime)
}

func TestHandler_BadParams(t *testing.T) {
	for _, target := range []string{
		"/stylists/x/availability",
		"/stylists/4/availability?serviceIds=a",
		"/stylists/4/availability?duration=-5",
	} {
		t.Run(target, func(t *testing.T) {
			uc := &fakeUseCase{}
			rec := serve(uc, target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandler_ErrorMapping(t *testing.T) {
	rec := serve(&fakeUseCase{err: getWeeklyAvailability.ErrServiceNotFound}, "/stylists/4/availability?serviceIds=9")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(&fakeUseCase{err: getWeeklyAvailability.ErrInvalidInput}, "/stylists/4/availability")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(&fakeUseCase{err: getWeeklyAvailability.ErrInternal}, "/stylists/4/availability?serviceIds=1")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
