package update_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/reservation"
	catalogClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ScheduleService/internal/schedule"
	"github.com/m04kA/SMC-ScheduleService/pkg/redislock"
)

const metricsOperation = "update"

// UseCase use case для изменения даты, времени или услуг брони
type UseCase struct {
	reservationRepo ReservationRepository
	rulesRepo       RulesRepository
	catalog         CatalogClient
	calendar        Calendar
	txManager       TransactionManager
	notifier        Notifier
	locker          Locker
	metrics         MetricsObserver
	opts            schedule.Options
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	rulesRepo RulesRepository,
	catalog CatalogClient,
	calendar Calendar,
	txManager TransactionManager,
	notifier Notifier,
	opts schedule.Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		rulesRepo:       rulesRepo,
		catalog:         catalog,
		calendar:        calendar,
		txManager:       txManager,
		notifier:        notifier,
		opts:            opts,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithLocker включает распределенную блокировку дня мастера
func (uc *UseCase) WithLocker(locker Locker) *UseCase {
	uc.locker = locker
	return uc
}

// WithMetrics включает учет исходов в метриках
func (uc *UseCase) WithMetrics(metrics MetricsObserver) *UseCase {
	uc.metrics = metrics
	return uc
}

// WithLocation задает рабочий часовой пояс
func (uc *UseCase) WithLocation(loc *time.Location) *UseCase {
	uc.timeProvider = &RealTimeProvider{Location: loc}
	return uc
}

// Execute выполняет use case изменения брони.
// Редактируемая бронь не учитывается при проверке вместимости.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	defer func() {
		if uc.metrics != nil {
			uc.metrics.ObserveReservation(metricsOperation, outcomeOf(err))
		}
	}()

	uc.logger.Info("UpdateReservation: id=%d, actor=%s:%d, date=%s, time=%s, services=%v",
		req.ReservationID, req.ActorRole, req.ActorID, req.Date.Format(domain.DateFormat), req.StartTime, req.ServiceIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущая бронь: нужен мастер для каталога и проверка доступа
	current, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("UpdateReservation: reservation id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("UpdateReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	if err := checkAccess(current, req.ActorID, req.ActorRole); err != nil {
		uc.logger.Warn("UpdateReservation: %s id=%d has no access to reservation id=%d", req.ActorRole, req.ActorID, req.ReservationID)
		return nil, err
	}

	// 3. Услуги из каталога
	services, err := uc.catalog.GetServices(ctx, current.StylistID, req.ServiceIDs)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("UpdateReservation: services %v not found for stylist=%d", req.ServiceIDs, current.StylistID)
			return nil, fmt.Errorf("%w: %v", ErrServiceNotFound, err)
		}
		uc.logger.Error("UpdateReservation: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	duration := catalogClient.TotalDuration(services)
	if req.DurationMinutes != nil {
		duration = *req.DurationMinutes
	}

	now := uc.timeProvider.Now()
	date := domain.DateOnly(req.Date)
	excludeID := req.ReservationID

	var (
		result  *domain.Reservation
		changes domain.ChangeSet
	)

	// 4. Проверка и запись в сериализуемой транзакции
	edit := func(ctx context.Context) error {
		return uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			// 4.1. Перечитываем бронь с блокировкой
			locked, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
			if err != nil {
				if errors.Is(err, reservationRepo.ErrReservationNotFound) {
					return ErrReservationNotFound
				}
				uc.logger.Error("UpdateReservation: failed to lock reservation id=%d: %v", req.ReservationID, err)
				return fmt.Errorf("%w: failed to lock reservation: %w", ErrInternal, err)
			}

			if !locked.CanBeEdited() {
				uc.logger.Warn("UpdateReservation: reservation id=%d has status %s", locked.ID, locked.Status)
				return fmt.Errorf("%w: status is %s", ErrNotEditable, locked.Status)
			}

			// 4.2. Правила и брони на новую дату без редактируемой брони
			rules, err := uc.rulesRepo.GetRuleSet(txCtx, locked.StylistID, &date, &date)
			if err != nil {
				uc.logger.Error("UpdateReservation: failed to get rules: %v", err)
				return fmt.Errorf("%w: failed to get rules: %w", ErrInternal, err)
			}

			reservations, err := uc.reservationRepo.ListByStylist(txCtx, domain.ReservationFilter{
				StylistID:       locked.StylistID,
				From:            date,
				To:              date,
				ExcludeStatuses: domain.UncountedStatuses,
				ExcludeID:       &excludeID,
			})
			if err != nil {
				uc.logger.Error("UpdateReservation: failed to get reservations: %v", err)
				return fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
			}

			// 4.3. Проверка расписания
			view := schedule.NewResolver(rules, uc.calendar, uc.opts).Day(date, reservations)
			end, err := schedule.Validate(view, schedule.Candidate{
				Date:            date,
				Start:           req.StartTime,
				DurationMinutes: duration,
				ServiceCount:    len(services),
			}, now, uc.opts.BookingLead)
			if err != nil {
				uc.logger.Warn("UpdateReservation: rejected: %v", err)
				return mapScheduleError(err)
			}

			// 4.4. Применяем изменения
			updated := *locked
			updated.Date = date
			updated.StartTime = req.StartTime
			updated.EndTime = end
			updated.DurationMinutes = duration
			updated.ServiceIDs = req.ServiceIDs
			updated.ServiceNames = catalogClient.Names(services)

			changes = diff(locked, &updated)
			if changes.Empty() {
				result = locked
				return nil
			}

			saved, err := uc.reservationRepo.Update(txCtx, &updated)
			if err != nil {
				uc.logger.Error("UpdateReservation: failed to update reservation id=%d: %v", locked.ID, err)
				return fmt.Errorf("%w: failed to update reservation: %w", ErrInternal, err)
			}

			result = saved
			return nil
		})
	}

	if uc.locker != nil {
		err = uc.locker.WithLock(ctx, lockKey(current.StylistID, domain.DateKey(date)), edit)
		if errors.Is(err, redislock.ErrLockUnavailable) {
			uc.logger.Warn("UpdateReservation: lock unavailable, continuing without it: %v", err)
			err = edit(ctx)
		}
	} else {
		err = edit(ctx)
	}
	if err != nil {
		return nil, normalizeError(err)
	}

	if changes.Empty() {
		uc.logger.Info("UpdateReservation: reservation id=%d unchanged", result.ID)
	} else {
		uc.logger.Info("UpdateReservation: reservation id=%d updated, %d changes", result.ID, len(changes))
		uc.notifier.NotifyUpdate(result, changes)
	}

	return &Response{
		ID:              result.ID,
		StylistID:       result.StylistID,
		CustomerID:      result.CustomerID,
		CustomerName:    result.CustomerName,
		Date:            result.Date,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceIDs:      result.ServiceIDs,
		ServiceNames:    result.ServiceNames,
		Changes:         changes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
