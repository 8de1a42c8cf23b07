package apply_shift_settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/schedule"
)

// UseCase use case массового изменения смен мастера на месяц
type UseCase struct {
	reservationRepo ReservationRepository
	rulesRepo       RulesRepository
	txManager       TransactionManager
	metrics         MetricsObserver
	maxCapacity     int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	rulesRepo RulesRepository,
	txManager TransactionManager,
	maxCapacity int,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		rulesRepo:       rulesRepo,
		txManager:       txManager,
		maxCapacity:     maxCapacity,
		logger:          logger,
	}
}

// WithMetrics включает учет конфликтов в метриках
func (uc *UseCase) WithMetrics(metrics MetricsObserver) *UseCase {
	uc.metrics = metrics
	return uc
}

// Execute проверяет конфликты с бронями месяца и записывает правила дней.
// Проверка и запись выполняются в одной сериализуемой транзакции.
// При конфликтах без Force ничего не записывается и возвращается *ConflictError.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ApplyShiftSettings: stylist=%d, month=%s, days=%d, dry_run=%t, force=%t",
		req.StylistID, req.Month, len(req.Days), req.DryRun, req.Force)

	days, month, err := validateRequest(req, uc.maxCapacity)
	if err != nil {
		uc.logger.Warn("ApplyShiftSettings: validation failed: %v", err)
		return nil, err
	}

	if req.ActorID != req.StylistID {
		uc.logger.Warn("ApplyShiftSettings: user=%d cannot change shifts of stylist=%d", req.ActorID, req.StylistID)
		return nil, ErrAccessDenied
	}

	resp := &Response{
		StylistID: req.StylistID,
		Month:     req.Month,
		Days:      len(days),
	}

	from := days[0].Date
	to := days[len(days)-1].Date

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		resp.Applied = false

		// Брони месяца с блокировкой строк
		reservations, err := uc.reservationRepo.ListByStylist(txCtx, domain.ReservationFilter{
			StylistID:       req.StylistID,
			From:            from,
			To:              to,
			ExcludeStatuses: []domain.ReservationStatus{domain.StatusCanceled},
		})
		if err != nil {
			uc.logger.Error("ApplyShiftSettings: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
		}

		resp.Conflicts = schedule.FindConflicts(days, reservations)

		if len(resp.Conflicts) > 0 && !req.Force && !req.DryRun {
			uc.logger.Warn("ApplyShiftSettings: %d conflicts for stylist=%d in %s", len(resp.Conflicts), req.StylistID, month.Format(domain.MonthFormat))
			return &ConflictError{Conflicts: resp.Conflicts}
		}

		if req.DryRun {
			return nil
		}

		if len(resp.Conflicts) > 0 {
			uc.logger.Warn("ApplyShiftSettings: overriding %d conflicts for stylist=%d", len(resp.Conflicts), req.StylistID)
		}

		if err := uc.rulesRepo.ReplaceDayRules(txCtx, req.StylistID, days); err != nil {
			uc.logger.Error("ApplyShiftSettings: failed to write day rules: %v", err)
			return fmt.Errorf("%w: failed to write day rules: %w", ErrInternal, err)
		}

		resp.Applied = true
		return nil
	})

	uc.observeConflicts(resp.Conflicts)

	if err != nil {
		var conflictErr *ConflictError
		if errors.As(err, &conflictErr) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("ApplyShiftSettings: stylist=%d, month=%s, applied=%t, conflicts=%d",
		req.StylistID, req.Month, resp.Applied, len(resp.Conflicts))

	return resp, nil
}

func (uc *UseCase) observeConflicts(conflicts []domain.ShiftConflict) {
	if uc.metrics == nil {
		return
	}
	for _, c := range conflicts {
		uc.metrics.ObserveShiftConflict(string(c.Type))
	}
}
