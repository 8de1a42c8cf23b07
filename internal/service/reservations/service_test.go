package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ScheduleService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type fakeRepo struct {
	items    map[int64]*domain.Reservation
	filter   domain.ReservationFilter
	canceled []int64
	listErr  error
}

func (r *fakeRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, ok := r.items[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	cp := *res
	return &cp, nil
}

func (r *fakeRepo) ListByStylist(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	r.filter = filter
	if r.listErr != nil {
		return nil, r.listErr
	}
	list := make([]*domain.Reservation, 0)
	for _, res := range r.items {
		cp := *res
		list = append(list, &cp)
	}
	return list, nil
}

func (r *fakeRepo) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	r.items[id].Status = status
	return nil
}

func (r *fakeRepo) Cancel(ctx context.Context, id int64, canceledBy domain.ActorRole, reason *string) error {
	res := r.items[id]
	res.Status = domain.StatusCanceled
	res.CanceledBy = &canceledBy
	res.CancellationReason = reason
	r.canceled = append(r.canceled, id)
	return nil
}

type noTx struct{}

func (noTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeNotifier struct {
	canceled []domain.ActorRole
}

func (n *fakeNotifier) NotifyCancellation(r *domain.Reservation, canceledBy domain.ActorRole) {
	n.canceled = append(n.canceled, canceledBy)
}

func newFixture(status domain.ReservationStatus) (*Service, *fakeRepo, *fakeNotifier) {
	repo := &fakeRepo{items: map[int64]*domain.Reservation{
		7: {
			ID:           7,
			StylistID:    1,
			CustomerID:   42,
			CustomerName: "Анна",
			Date:         time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
			StartTime:    types.MustTimeString("10:00"),
			EndTime:      types.MustTimeString("11:00"),
			Status:       status,
		},
	}}
	notifier := &fakeNotifier{}
	return NewService(repo, noTx{}, notifier, logger.Nop()), repo, notifier
}

func TestService_GetByID(t *testing.T) {
	svc, _, _ := newFixture(domain.StatusPending)

	resp, err := svc.GetByID(context.Background(), 7, 42)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-12", resp.Date)
	assert.Equal(t, "11:00", resp.EndTime)
	assert.Equal(t, []int64{}, resp.ServiceIDs)

	_, err = svc.GetByID(context.Background(), 7, 1)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 7, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), 8, 42)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestService_Cancel(t *testing.T) {
	tests := []struct {
		name   string
		status domain.ReservationStatus
		req    models.CancelRequest
		err    error
	}{
		{name: "клиент отменяет свою бронь", status: domain.StatusPending, req: models.CancelRequest{ActorID: 42, ActorRole: domain.ActorCustomer}},
		{name: "мастер отменяет с причиной", status: domain.StatusPending, req: models.CancelRequest{ActorID: 1, ActorRole: domain.ActorStylist, Reason: ptr.Ptr("заболел")}},
		{name: "чужой клиент", status: domain.StatusPending, req: models.CancelRequest{ActorID: 43, ActorRole: domain.ActorCustomer}, err: ErrAccessDenied},
		{name: "клиент в роли мастера", status: domain.StatusPending, req: models.CancelRequest{ActorID: 42, ActorRole: domain.ActorStylist}, err: ErrAccessDenied},
		{name: "уже выполнена", status: domain.StatusCompleted, req: models.CancelRequest{ActorID: 42, ActorRole: domain.ActorCustomer}, err: ErrCannotCancel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, notifier := newFixture(tt.status)

			resp, err := svc.Cancel(context.Background(), 7, &tt.req)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.Empty(t, repo.canceled)
				assert.Empty(t, notifier.canceled)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "canceled", resp.Status)
			require.NotNil(t, resp.CanceledBy)
			assert.Equal(t, string(tt.req.ActorRole), *resp.CanceledBy)
			assert.Equal(t, tt.req.Reason, resp.CancellationReason)
			assert.Equal(t, []int64{7}, repo.canceled)
			assert.Equal(t, []domain.ActorRole{tt.req.ActorRole}, notifier.canceled)
		})
	}
}

func TestService_UpdateStatus(t *testing.T) {
	svc, repo, _ := newFixture(domain.StatusPending)

	_, err := svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{ActorID: 42, Status: "completed"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{ActorID: 1, Status: "pending"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	resp, err := svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{ActorID: 1, Status: "no_show"})
	require.NoError(t, err)
	assert.Equal(t, "no_show", resp.Status)
	assert.Equal(t, domain.StatusNoShow, repo.items[7].Status)

	_, err = svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{ActorID: 1, Status: "completed"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_ListByStylist(t *testing.T) {
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("только мастер", func(t *testing.T) {
		svc, _, _ := newFixture(domain.StatusPending)
		_, err := svc.ListByStylist(context.Background(), &models.ListRequest{StylistID: 1, ActorID: 42, From: from, To: from})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("период", func(t *testing.T) {
		svc, _, _ := newFixture(domain.StatusPending)
		_, err := svc.ListByStylist(context.Background(), &models.ListRequest{StylistID: 1, ActorID: 1, From: from, To: from.AddDate(0, 0, -1)})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = svc.ListByStylist(context.Background(), &models.ListRequest{StylistID: 1, ActorID: 1, From: from, To: from.AddDate(1, 0, 0)})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("отмененные исключаются", func(t *testing.T) {
		svc, repo, _ := newFixture(domain.StatusPending)
		resp, err := svc.ListByStylist(context.Background(), &models.ListRequest{StylistID: 1, ActorID: 1, From: from, To: from.AddDate(0, 0, 6)})
		require.NoError(t, err)
		assert.Len(t, resp.Reservations, 1)
		assert.Equal(t, []domain.ReservationStatus{domain.StatusCanceled}, repo.filter.ExcludeStatuses)
	})

	t.Run("фильтр по статусу", func(t *testing.T) {
		svc, _, _ := newFixture(domain.StatusPending)
		resp, err := svc.ListByStylist(context.Background(), &models.ListRequest{StylistID: 1, ActorID: 1, From: from, To: from, Status: ptr.Ptr("completed")})
		require.NoError(t, err)
		assert.Empty(t, resp.Reservations)

		_, err = svc.ListByStylist(context.Background(), &models.ListRequest{StylistID: 1, ActorID: 1, From: from, To: from, Status: ptr.Ptr("done")})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("ошибка репозитория", func(t *testing.T) {
		svc, repo, _ := newFixture(domain.StatusPending)
		repo.listErr = errors.New("db down")
		_, err := svc.ListByStylist(context.Background(), &models.ListRequest{StylistID: 1, ActorID: 1, From: from, To: from})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
