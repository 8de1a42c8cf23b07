package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	catalogClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ScheduleService/internal/schedule"
	"github.com/m04kA/SMC-ScheduleService/pkg/redislock"
)

const metricsOperation = "create"

// UseCase use case для создания брони
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

// Execute выполняет use case создания брони.
// Проверка вместимости и запись выполняются в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	defer func() {
		if uc.metrics != nil {
			uc.metrics.ObserveReservation(metricsOperation, outcomeOf(err))
		}
	}()

	uc.logger.Info("CreateReservation: stylist=%d, customer=%d, date=%s, time=%s, services=%v",
		req.StylistID, req.CustomerID, req.Date.Format(domain.DateFormat), req.StartTime, req.ServiceIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услуги из каталога
	services, err := uc.catalog.GetServices(ctx, req.StylistID, req.ServiceIDs)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateReservation: services %v not found for stylist=%d", req.ServiceIDs, req.StylistID)
			return nil, fmt.Errorf("%w: %v", ErrServiceNotFound, err)
		}
		uc.logger.Error("CreateReservation: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	// 3. Длительность: явная или сумма длительностей услуг
	duration := catalogClient.TotalDuration(services)
	if req.DurationMinutes != nil {
		duration = *req.DurationMinutes
	}

	now := uc.timeProvider.Now()
	date := domain.DateOnly(req.Date)

	candidate := schedule.Candidate{
		Date:            date,
		Start:           req.StartTime,
		DurationMinutes: duration,
		ServiceCount:    len(services),
	}

	var result *domain.Reservation

	// 4. Проверка и запись в сериализуемой транзакции
	book := func(ctx context.Context) error {
		return uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			// 4.1. Правила мастера на дату (FOR UPDATE)
			rules, err := uc.rulesRepo.GetRuleSet(txCtx, req.StylistID, &date, &date)
			if err != nil {
				uc.logger.Error("CreateReservation: failed to get rules: %v", err)
				return fmt.Errorf("%w: failed to get rules: %w", ErrInternal, err)
			}

			// 4.2. Активные брони на дату (FOR UPDATE)
			reservations, err := uc.reservationRepo.ListByStylist(txCtx, domain.ReservationFilter{
				StylistID:       req.StylistID,
				From:            date,
				To:              date,
				ExcludeStatuses: domain.UncountedStatuses,
			})
			if err != nil {
				uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
				return fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
			}

			// 4.3. Проверяем часы, выходной, запас времени и вместимость каждого слота
			view := schedule.NewResolver(rules, uc.calendar, uc.opts).Day(date, reservations)
			if _, ok := view.Hours(); !ok {
				uc.logger.Warn("CreateReservation: no working hours resolved for stylist=%d on %s", req.StylistID, domain.DateKey(date))
			}

			end, err := schedule.Validate(view, candidate, now, uc.opts.BookingLead)
			if err != nil {
				uc.logger.Warn("CreateReservation: rejected: %v", err)
				return mapScheduleError(err)
			}

			// 4.4. Сохраняем бронь
			created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
				StylistID:       req.StylistID,
				CustomerID:      req.CustomerID,
				CustomerName:    req.CustomerName,
				Date:            date,
				StartTime:       req.StartTime,
				EndTime:         end,
				DurationMinutes: duration,
				Status:          domain.StatusPending,
				ServiceIDs:      req.ServiceIDs,
				ServiceNames:    catalogClient.Names(services),
			})
			if err != nil {
				uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
				return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
			}

			result = created
			return nil
		})
	}

	if uc.locker != nil {
		err = uc.locker.WithLock(ctx, lockKey(req.StylistID, domain.DateKey(date)), book)
		if errors.Is(err, redislock.ErrLockUnavailable) {
			uc.logger.Warn("CreateReservation: lock unavailable, continuing without it: %v", err)
			err = book(ctx)
		}
	} else {
		err = book(ctx)
	}
	if err != nil {
		return nil, normalizeError(err)
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	// 5. Уведомление не влияет на результат
	uc.notifier.NotifyConfirmation(result)

	return toResponse(result), nil
}

func toResponse(r *domain.Reservation) *Response {
	return &Response{
		ID:              r.ID,
		StylistID:       r.StylistID,
		CustomerID:      r.CustomerID,
		CustomerName:    r.CustomerName,
		Date:            r.Date,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		DurationMinutes: r.DurationMinutes,
		Status:          string(r.Status),
		ServiceIDs:      r.ServiceIDs,
		ServiceNames:    r.ServiceNames,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
