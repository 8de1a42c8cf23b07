package apply_shift_settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type fakeStore struct {
	reservations []*domain.Reservation
	written      [][]domain.ShiftDay
	filter       domain.ReservationFilter
}

func (s *fakeStore) ListByStylist(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	s.filter = filter
	return s.reservations, nil
}

func (s *fakeStore) ReplaceDayRules(ctx context.Context, stylistID int64, days []domain.ShiftDay) error {
	s.written = append(s.written, days)
	return nil
}

type noTx struct{}

func (noTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type countingMetrics struct {
	byType map[string]int
}

func (m *countingMetrics) ObserveShiftConflict(conflictType string) {
	if m.byType == nil {
		m.byType = make(map[string]int)
	}
	m.byType[conflictType]++
}

func april(day int) time.Time {
	return time.Date(2025, 4, day, 0, 0, 0, 0, time.UTC)
}

func workday(day int, start, end string) DayInput {
	return DayInput{
		Date:            april(day),
		StartTime:       types.MustTimeString(start),
		EndTime:         types.MustTimeString(end),
		MaxReservations: 2,
	}
}

func bookedStore() *fakeStore {
	return &fakeStore{reservations: []*domain.Reservation{{
		ID: 7, StylistID: 1, CustomerName: "Анна", Date: april(1), Status: domain.StatusPending,
		StartTime: types.MustTimeString("10:00"), EndTime: types.MustTimeString("11:00"),
	}}}
}

func holidayRequest() *Request {
	return &Request{
		StylistID: 1,
		ActorID:   1,
		Month:     "2025-04",
		Days: map[int]DayInput{
			1: {Date: april(1), IsHoliday: true, MaxReservations: 2},
			2: workday(2, "10:00", "18:00"),
		},
	}
}

func newUseCase(store *fakeStore) *UseCase {
	return NewUseCase(store, store, noTx{}, domain.DefaultMaxCapacity, logger.Nop())
}

func TestUseCase_Execute_HolidayConflictWritesNothing(t *testing.T) {
	store := bookedStore()
	metrics := &countingMetrics{}

	_, err := newUseCase(store).WithMetrics(metrics).Execute(context.Background(), holidayRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflicts)

	var conflictErr *ConflictError
	require.True(t, errors.As(err, &conflictErr))
	require.Len(t, conflictErr.Conflicts, 1)

	c := conflictErr.Conflicts[0]
	assert.Equal(t, domain.ConflictHoliday, c.Type)
	assert.Equal(t, int64(7), c.ReservationID)
	assert.Equal(t, "Анна", c.CustomerName)
	assert.Equal(t, "10:00", c.Start.String())

	assert.Empty(t, store.written)
	assert.Equal(t, 1, metrics.byType["HOLIDAY"])
	assert.Equal(t, []domain.ReservationStatus{domain.StatusCanceled}, store.filter.ExcludeStatuses)
}

func TestUseCase_Execute_DryRun(t *testing.T) {
	store := bookedStore()
	req := holidayRequest()
	req.DryRun = true

	resp, err := newUseCase(store).Execute(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.Applied)
	assert.Len(t, resp.Conflicts, 1)
	assert.Empty(t, store.written)
}

func TestUseCase_Execute_ForceWritesNormalizedDays(t *testing.T) {
	store := bookedStore()
	req := holidayRequest()
	req.Force = true

	resp, err := newUseCase(store).Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Applied)
	assert.Len(t, resp.Conflicts, 1)

	require.Len(t, store.written, 1)
	days := store.written[0]
	require.Len(t, days, 2)
	assert.True(t, days[0].IsHoliday)
	assert.Equal(t, "00:00", days[0].Start.String())
	assert.Equal(t, 0, days[0].MaxReservations)
	assert.Equal(t, "10:00", days[1].Start.String())
}

func TestUseCase_Execute_OutOfHours(t *testing.T) {
	store := bookedStore()
	req := &Request{
		StylistID: 1,
		ActorID:   1,
		Month:     "2025-04",
		Days:      map[int]DayInput{1: workday(1, "10:30", "18:00")},
	}

	_, err := newUseCase(store).Execute(context.Background(), req)

	var conflictErr *ConflictError
	require.True(t, errors.As(err, &conflictErr))
	require.Len(t, conflictErr.Conflicts, 1)
	c := conflictErr.Conflicts[0]
	assert.Equal(t, domain.ConflictOutOfHours, c.Type)
	require.NotNil(t, c.ProposedStart)
	assert.Equal(t, "10:30", c.ProposedStart.String())
}

func TestUseCase_Execute_NoConflicts(t *testing.T) {
	store := bookedStore()
	req := &Request{
		StylistID: 1,
		ActorID:   1,
		Month:     "2025-04",
		Days:      map[int]DayInput{1: workday(1, "09:00", "12:00")},
	}

	resp, err := newUseCase(store).Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Applied)
	assert.Empty(t, resp.Conflicts)
	assert.Len(t, store.written, 1)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		err  error
	}{
		{name: "плохой месяц", req: Request{StylistID: 1, ActorID: 1, Month: "2025/04", Days: map[int]DayInput{1: workday(1, "10:00", "18:00")}}, err: ErrInvalidInput},
		{name: "нет дней", req: Request{StylistID: 1, ActorID: 1, Month: "2025-04"}, err: ErrInvalidInput},
		{name: "дата другого месяца", req: Request{StylistID: 1, ActorID: 1, Month: "2025-05", Days: map[int]DayInput{1: workday(1, "10:00", "18:00")}}, err: ErrInvalidInput},
		{name: "ключ не совпадает с датой", req: Request{StylistID: 1, ActorID: 1, Month: "2025-04", Days: map[int]DayInput{2: workday(1, "10:00", "18:00")}}, err: ErrInvalidInput},
		{name: "конец раньше начала", req: Request{StylistID: 1, ActorID: 1, Month: "2025-04", Days: map[int]DayInput{1: workday(1, "18:00", "10:00")}}, err: ErrInvalidInput},
		{name: "чужой мастер", req: Request{StylistID: 1, ActorID: 2, Month: "2025-04", Days: map[int]DayInput{1: workday(1, "10:00", "18:00")}}, err: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			_, err := newUseCase(store).Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.err)
			assert.Empty(t, store.written)
		})
	}
}

func TestValidateRequest_Capacity(t *testing.T) {
	in := workday(3, "10:00", "18:00")
	in.MaxReservations = domain.DefaultMaxCapacity + 1

	_, _, err := validateRequest(&Request{StylistID: 1, Month: "2025-04", Days: map[int]DayInput{3: in}}, domain.DefaultMaxCapacity)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
