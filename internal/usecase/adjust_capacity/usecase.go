package adjust_capacity

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	rulesRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/rules"
	"github.com/m04kA/SMC-ScheduleService/internal/schedule"
)

// UseCase use case изменения вместимости слота на дату на единицу
type UseCase struct {
	rulesRepo RulesRepository
	calendar  schedule.Calendar
	txManager TransactionManager
	opts      schedule.Options
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(rulesRepo RulesRepository, calendar schedule.Calendar, txManager TransactionManager, opts schedule.Options, logger Logger) *UseCase {
	return &UseCase{
		rulesRepo: rulesRepo,
		calendar:  calendar,
		txManager: txManager,
		opts:      opts,
		logger:    logger,
	}
}

// Execute атомарно читает и меняет правило вместимости (дата, слот).
// Если правила нет, оно создается от текущей вычисленной вместимости.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AdjustCapacity: stylist=%d, date=%s, slot=%s, direction=%s",
		req.StylistID, req.Date.Format(domain.DateFormat), req.Slot, req.Direction)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AdjustCapacity: validation failed: %v", err)
		return nil, err
	}

	if req.ActorID != req.StylistID {
		uc.logger.Warn("AdjustCapacity: user=%d cannot change capacity of stylist=%d", req.ActorID, req.StylistID)
		return nil, ErrAccessDenied
	}

	date := domain.DateOnly(req.Date)
	slot := req.Slot
	resp := &Response{StylistID: req.StylistID, Date: date, Slot: slot, Time: slot.Start()}

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Правило (дата, слот) с блокировкой строки
		rule, err := uc.rulesRepo.GetCapacityRule(txCtx, req.StylistID, date, &slot)
		if err != nil && !errors.Is(err, rulesRepo.ErrRuleNotFound) {
			uc.logger.Error("AdjustCapacity: failed to get capacity rule: %v", err)
			return fmt.Errorf("%w: failed to get capacity rule: %w", ErrInternal, err)
		}

		var current int
		if rule != nil {
			current = rule.MaxReservations
		} else {
			rules, err := uc.rulesRepo.GetRuleSet(txCtx, req.StylistID, &date, &date)
			if err != nil {
				uc.logger.Error("AdjustCapacity: failed to get rules: %v", err)
				return fmt.Errorf("%w: failed to get rules: %w", ErrInternal, err)
			}
			current = schedule.NewResolver(rules, uc.calendar, uc.opts).Limit(date, slot)
		}

		next, changed := nextLimit(current, uc.opts.MaxCapacity, req.Direction)
		resp.Previous = current
		resp.Limit = next
		resp.Changed = changed

		if !changed {
			uc.logger.Info("AdjustCapacity: limit %d is already at the bound, nothing to do", current)
			return nil
		}

		if rule != nil {
			if err := uc.rulesRepo.UpdateCapacityLimit(txCtx, rule.ID, next); err != nil {
				uc.logger.Error("AdjustCapacity: failed to update rule id=%d: %v", rule.ID, err)
				return fmt.Errorf("%w: failed to update capacity rule: %w", ErrInternal, err)
			}
			return nil
		}

		if _, err := uc.rulesRepo.CreateCapacityRule(txCtx, &domain.CapacityRule{
			StylistID:       req.StylistID,
			Date:            &date,
			Slot:            &slot,
			MaxReservations: next,
		}); err != nil {
			uc.logger.Error("AdjustCapacity: failed to create capacity rule: %v", err)
			return fmt.Errorf("%w: failed to create capacity rule: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("AdjustCapacity: slot %s on %s: %d -> %d", slot, domain.DateKey(date), resp.Previous, resp.Limit)
	return resp, nil
}
