package get_weekly_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ScheduleService/internal/schedule"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type fakeStore struct {
	rules        domain.RuleSet
	reservations []*domain.Reservation
	ruleCalls    int
	listCalls    int
	lastFilter   domain.ReservationFilter
}

func (s *fakeStore) GetRuleSet(ctx context.Context, stylistID int64, from, to *time.Time) (*domain.RuleSet, error) {
	s.ruleCalls++
	set := s.rules
	set.StylistID = stylistID
	return &set, nil
}

func (s *fakeStore) ListByStylist(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	s.listCalls++
	s.lastFilter = filter
	return s.reservations, nil
}

type fakeCatalog struct{}

func (fakeCatalog) GetServices(ctx context.Context, stylistID int64, ids []int64) ([]catalogservice.Service, error) {
	result := make([]catalogservice.Service, 0, len(ids))
	for _, id := range ids {
		if id != 1 {
			return nil, catalogservice.ErrServiceNotFound
		}
		result = append(result, catalogservice.Service{ID: 1, Name: "Стрижка", DurationMinutes: 60})
	}
	return result, nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var now = time.Date(2025, 3, 12, 8, 0, 0, 0, time.UTC) // среда

func newUseCase(store *fakeStore) *UseCase {
	uc := NewUseCase(store, store, fakeCatalog{}, nil, schedule.DefaultOptions(), logger.Nop())
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func markerAt(t *testing.T, day Day, slot domain.Slot) domain.AvailabilityMarker {
	t.Helper()
	for _, c := range day.Cells {
		if c.Slot == slot {
			return c.Marker
		}
	}
	t.Fatalf("no cell for slot %s", slot)
	return ""
}

func TestUseCase_Execute_Markers(t *testing.T) {
	store := &fakeStore{
		rules: domain.RuleSet{Capacities: []domain.CapacityRule{{MaxReservations: 1}}},
		reservations: []*domain.Reservation{{
			ID: 1, StylistID: 1, Date: time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC), Status: domain.StatusPending,
			StartTime: types.MustTimeString("10:00"), EndTime: types.MustTimeString("11:00"),
		}},
	}

	resp, err := newUseCase(store).Execute(context.Background(), &Request{StylistID: 1, Date: "2025-03-13", ServiceIDs: []int64{1}})
	require.NoError(t, err)

	assert.Equal(t, 1, store.ruleCalls)
	assert.Equal(t, 1, store.listCalls)
	assert.Equal(t, "2025-03-16", domain.DateKey(store.lastFilter.To))

	assert.Equal(t, "2025-03-10", domain.DateKey(resp.WeekStart))
	assert.Nil(t, resp.PrevWeek)
	assert.Equal(t, "2025-03-17", domain.DateKey(resp.NextWeek))
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, 2, resp.SlotCount)
	require.Len(t, resp.Days, 7)

	// понедельник уже прошел
	monday := resp.Days[0]
	require.NotEmpty(t, monday.Cells)
	for _, c := range monday.Cells {
		assert.Equal(t, domain.MarkerBlocked, c.Marker)
	}

	thursday := resp.Days[3]
	assert.Len(t, thursday.Cells, 17)
	assert.Equal(t, domain.MarkerBlocked, markerAt(t, thursday, domain.MustSlot("10:00")))
	assert.Equal(t, domain.MarkerBlocked, markerAt(t, thursday, domain.MustSlot("09:30")))
	assert.Equal(t, domain.MarkerLastAvailable, markerAt(t, thursday, domain.MustSlot("09:00")))
	assert.Equal(t, domain.MarkerLastAvailable, markerAt(t, thursday, domain.MustSlot("11:00")))
}

func TestUseCase_Execute_OpenWithCapacityTwo(t *testing.T) {
	store := &fakeStore{rules: domain.RuleSet{Capacities: []domain.CapacityRule{{MaxReservations: 2}}}}
	resp, err := newUseCase(store).Execute(context.Background(), &Request{StylistID: 1, Date: "2025-03-13"})
	require.NoError(t, err)

	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, domain.MarkerOpen, markerAt(t, resp.Days[3], domain.MustSlot("10:00")))
}

func TestUseCase_Execute_FloorCapacityIsLastAvailable(t *testing.T) {
	resp, err := newUseCase(&fakeStore{}).Execute(context.Background(), &Request{StylistID: 1, Date: "2025-03-13"})
	require.NoError(t, err)

	assert.Equal(t, domain.MarkerLastAvailable, markerAt(t, resp.Days[3], domain.MustSlot("10:00")))
}

func TestUseCase_Execute_Navigation(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		weekStart string
		prevWeek  *string
	}{
		{name: "прошлая неделя прижимается к текущей", date: "2025-03-03", weekStart: "2025-03-10"},
		{name: "некорректная дата - сегодня", date: "12.03.2025", weekStart: "2025-03-10"},
		{name: "пустая дата - сегодня", date: "", weekStart: "2025-03-10"},
		{name: "следующая неделя", date: "2025-03-19", weekStart: "2025-03-17", prevWeek: ptr.Ptr("2025-03-10")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := newUseCase(&fakeStore{}).Execute(context.Background(), &Request{StylistID: 1, Date: tt.date, DurationMinutes: ptr.Ptr(30)})
			require.NoError(t, err)
			assert.Equal(t, tt.weekStart, domain.DateKey(resp.WeekStart))
			if tt.prevWeek == nil {
				assert.Nil(t, resp.PrevWeek)
			} else {
				require.NotNil(t, resp.PrevWeek)
				assert.Equal(t, *tt.prevWeek, domain.DateKey(*resp.PrevWeek))
			}
		})
	}
}

func TestUseCase_Execute_Errors(t *testing.T) {
	uc := newUseCase(&fakeStore{})

	_, err := uc.Execute(context.Background(), &Request{StylistID: 1, ServiceIDs: []int64{7}})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = uc.Execute(context.Background(), &Request{StylistID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{StylistID: 1, DurationMinutes: ptr.Ptr(0)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
