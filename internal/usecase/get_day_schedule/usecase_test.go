package get_day_schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/schedule"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type fakeStore struct {
	rules        domain.RuleSet
	reservations []*domain.Reservation
	err          error
}

func (s *fakeStore) GetRuleSet(ctx context.Context, stylistID int64, from, to *time.Time) (*domain.RuleSet, error) {
	if s.err != nil {
		return nil, s.err
	}
	set := s.rules
	set.StylistID = stylistID
	return &set, nil
}

func (s *fakeStore) ListByStylist(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	return s.reservations, nil
}

var day = time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

const dayKey = "2025-03-12"

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func reservation(id int64, start, end string, created time.Time) *domain.Reservation {
	return &domain.Reservation{
		ID: id, StylistID: 1, CustomerName: "Клиент", Date: day, Status: domain.StatusPending,
		StartTime: types.MustTimeString(start), EndTime: types.MustTimeString(end), CreatedAt: created,
	}
}

func TestUseCase_Execute(t *testing.T) {
	early := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	store := &fakeStore{
		rules: domain.RuleSet{
			WorkingHours: []domain.WorkingHourRule{{
				Start: types.MustTimeString("10:00"),
				End:   types.MustTimeString("12:00"),
			}},
			Capacities: []domain.CapacityRule{{MaxReservations: 2}},
		},
		reservations: []*domain.Reservation{
			reservation(2, "10:00", "11:00", early.Add(time.Hour)),
			reservation(1, "10:00", "10:30", early),
		},
	}
	uc := NewUseCase(store, store, nil, schedule.DefaultOptions(), logger.Nop())

	resp, err := uc.Execute(context.Background(), &Request{StylistID: 1, ActorID: 1, Date: dayKey})
	require.NoError(t, err)

	assert.False(t, resp.IsHoliday)
	require.NotNil(t, resp.OpeningTime)
	assert.Equal(t, "10:00", resp.OpeningTime.String())
	require.Len(t, resp.Slots, 4)

	first := resp.Slots[0]
	assert.Equal(t, domain.Slot(20), first.Slot)
	assert.Equal(t, 2, first.Count)
	assert.Equal(t, 2, first.Limit)
	assert.Equal(t, 0, first.Remaining)
	require.Len(t, first.Reservations, 2)
	assert.Equal(t, int64(1), first.Reservations[0].ID, "раньше созданная бронь идет первой")

	assert.Equal(t, 1, resp.Slots[1].Count)
	assert.Equal(t, 0, resp.Slots[2].Count)
}

func TestUseCase_Execute_Holiday(t *testing.T) {
	store := &fakeStore{rules: domain.RuleSet{Holidays: []domain.HolidayRule{{Date: ptr.Ptr(day), IsHoliday: true}}}}
	uc := NewUseCase(store, store, nil, schedule.DefaultOptions(), logger.Nop())

	resp, err := uc.Execute(context.Background(), &Request{StylistID: 1, ActorID: 1, Date: dayKey})
	require.NoError(t, err)
	assert.True(t, resp.IsHoliday)
	assert.True(t, resp.IsClosed)
	assert.Empty(t, resp.Slots)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	store := &fakeStore{}
	uc := NewUseCase(store, store, nil, schedule.DefaultOptions(), logger.Nop())

	_, err := uc.Execute(context.Background(), &Request{StylistID: 1, ActorID: 2, Date: dayKey})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = uc.Execute(context.Background(), &Request{StylistID: 0, ActorID: 0, Date: dayKey})
	assert.ErrorIs(t, err, ErrInvalidInput)

	store.err = errors.New("db down")
	_, err = uc.Execute(context.Background(), &Request{StylistID: 1, ActorID: 1, Date: dayKey})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUseCase_Execute_DateFallsBackToToday(t *testing.T) {
	msk := time.FixedZone("MSK", 3*60*60)

	// 23:30 UTC 11 марта - уже 12 марта по Москве
	now := time.Date(2025, 3, 11, 23, 30, 0, 0, time.UTC).In(msk)

	tests := []struct {
		name string
		date string
		want string
	}{
		{name: "empty", date: "", want: dayKey},
		{name: "unparseable", date: "12.03.2025", want: dayKey},
		{name: "valid", date: "2025-03-20", want: "2025-03-20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			uc := NewUseCase(store, store, nil, schedule.DefaultOptions(), logger.Nop())
			uc.timeProvider = fixedTime{now: now}

			resp, err := uc.Execute(context.Background(), &Request{StylistID: 1, ActorID: 1, Date: tt.date})
			require.NoError(t, err)
			assert.Equal(t, tt.want, domain.DateKey(resp.Date))
		})
	}
}

func TestUseCase_Execute_ListsReservationsOutsideHours(t *testing.T) {
	early := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	store := &fakeStore{
		rules: domain.RuleSet{WorkingHours: []domain.WorkingHourRule{{
			Start: types.MustTimeString("10:00"),
			End:   types.MustTimeString("11:00"),
		}}},
		reservations: []*domain.Reservation{
			reservation(1, "09:00", "09:30", early),
			reservation(2, "10:00", "10:30", early),
			reservation(3, "15:00", "16:00", early),
		},
	}

	uc := NewUseCase(store, store, nil, schedule.DefaultOptions(), logger.Nop())
	resp, err := uc.Execute(context.Background(), &Request{StylistID: 1, ActorID: 1, Date: dayKey})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 4)
	got := make([]domain.Slot, len(resp.Slots))
	for i, s := range resp.Slots {
		got[i] = s.Slot
	}
	assert.Equal(t, []domain.Slot{18, 20, 21, 30}, got)

	assert.True(t, resp.Slots[0].OutsideHours)
	require.Len(t, resp.Slots[0].Reservations, 1)
	assert.Equal(t, int64(1), resp.Slots[0].Reservations[0].ID)
	assert.False(t, resp.Slots[1].OutsideHours)
	assert.False(t, resp.Slots[2].OutsideHours)
	assert.True(t, resp.Slots[3].OutsideHours)
	assert.Equal(t, int64(3), resp.Slots[3].Reservations[0].ID)
}

func TestUseCase_Execute_ClosedDayKeepsReservations(t *testing.T) {
	early := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	store := &fakeStore{
		rules:        domain.RuleSet{Holidays: []domain.HolidayRule{{Date: ptr.Ptr(day), IsHoliday: true}}},
		reservations: []*domain.Reservation{reservation(7, "10:00", "11:00", early)},
	}

	uc := NewUseCase(store, store, nil, schedule.DefaultOptions(), logger.Nop())
	resp, err := uc.Execute(context.Background(), &Request{StylistID: 1, ActorID: 1, Date: dayKey})
	require.NoError(t, err)

	assert.True(t, resp.IsHoliday)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, domain.Slot(20), resp.Slots[0].Slot)
	assert.True(t, resp.Slots[0].OutsideHours)
	assert.Equal(t, int64(7), resp.Slots[0].Reservations[0].ID)
}
