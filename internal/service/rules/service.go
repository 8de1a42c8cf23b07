package rules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	rulesRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/rules"
	"github.com/m04kA/SMC-ScheduleService/internal/service/rules/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Service сервис настройки правил расписания мастера
type Service struct {
	rulesRepo   RulesRepository
	maxCapacity int
	logger      Logger
}

// NewService создает новый экземпляр сервиса правил
func NewService(rulesRepo RulesRepository, maxCapacity int, logger Logger) *Service {
	return &Service{
		rulesRepo:   rulesRepo,
		maxCapacity: maxCapacity,
		logger:      logger,
	}
}

// List возвращает все правила мастера. Публичный метод.
func (s *Service) List(ctx context.Context, stylistID int64) (*models.RuleListResponse, error) {
	s.logger.Info("List: fetching rules for stylist=%d", stylistID)

	set, err := s.rulesRepo.GetRuleSet(ctx, stylistID, nil, nil)
	if err != nil {
		s.logger.Error("List: repository error for stylist=%d: %v", stylistID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromRuleSet(set), nil
}

// Upsert создает правило или заменяет правило с той же областью действия.
// Доступно только самому мастеру.
func (s *Service) Upsert(ctx context.Context, req *models.UpsertRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("Upsert: kind=%s for stylist=%d by user=%d", req.Kind, req.StylistID, req.ActorID)

	if req.ActorID != req.StylistID {
		s.logger.Warn("Upsert: user=%d cannot change rules of stylist=%d", req.ActorID, req.StylistID)
		return nil, ErrAccessDenied
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	var weekday *domain.WeekdayClass
	if req.Weekday != nil {
		w := domain.WeekdayClass(*req.Weekday)
		weekday = &w
	}

	var resp models.RuleResponse
	switch req.Kind {
	case domain.RuleWorkingHours:
		resp, err = s.upsertWorkingHours(ctx, req, date, weekday)
	case domain.RuleHoliday:
		resp, err = s.upsertHoliday(ctx, req, date, weekday)
	case domain.RuleCapacity:
		resp, err = s.upsertCapacity(ctx, req, date)
	default:
		s.logger.Warn("Upsert: unknown rule kind=%s", req.Kind)
		return nil, ErrUnknownKind
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("Upsert: saved %s rule id=%d (%s) for stylist=%d", req.Kind, resp.ID, resp.Scope, req.StylistID)
	return &resp, nil
}

// Delete удаляет правило мастера. Доступно только самому мастеру.
func (s *Service) Delete(ctx context.Context, req *models.DeleteRuleRequest) error {
	s.logger.Info("Delete: kind=%s id=%d for stylist=%d by user=%d", req.Kind, req.RuleID, req.StylistID, req.ActorID)

	if req.ActorID != req.StylistID {
		s.logger.Warn("Delete: user=%d cannot change rules of stylist=%d", req.ActorID, req.StylistID)
		return ErrAccessDenied
	}

	kind, ok := domain.ParseRuleKind(req.Kind)
	if !ok {
		return ErrUnknownKind
	}

	if err := s.rulesRepo.Delete(ctx, kind, req.StylistID, req.RuleID); err != nil {
		if errors.Is(err, rulesRepo.ErrRuleNotFound) {
			s.logger.Warn("Delete: %s rule id=%d not found for stylist=%d", kind, req.RuleID, req.StylistID)
			return ErrRuleNotFound
		}
		s.logger.Error("Delete: repository error: %v", err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: removed %s rule id=%d", kind, req.RuleID)
	return nil
}

func (s *Service) upsertWorkingHours(ctx context.Context, req *models.UpsertRuleRequest, date *time.Time, weekday *domain.WeekdayClass) (models.RuleResponse, error) {
	if req.Slot != nil {
		return models.RuleResponse{}, fmt.Errorf("%w: working hours cannot target a slot", ErrUnsupportedScope)
	}

	rule := &domain.WorkingHourRule{
		StylistID: req.StylistID,
		Date:      date,
		Weekday:   weekday,
		IsClosed:  req.IsClosed,
	}

	if req.StartTime != nil {
		rule.Start = *req.StartTime
	}
	if req.EndTime != nil {
		rule.End = *req.EndTime
	}
	if rule.IsClosed {
		// Часы закрытого правила не используются
		zero := types.MustTimeString("00:00")
		rule.Start, rule.End = zero, zero
	}

	if err := mapRuleError(rule.Validate()); err != nil {
		s.logger.Warn("Upsert: invalid working hours rule: %v", err)
		return models.RuleResponse{}, err
	}

	saved, err := s.rulesRepo.UpsertWorkingHourRule(ctx, rule)
	if err != nil {
		s.logger.Error("Upsert: repository error: %v", err)
		return models.RuleResponse{}, fmt.Errorf("%w: UpsertWorkingHourRule - repository error: %v", ErrInternal, err)
	}
	return models.FromWorkingHourRule(saved), nil
}

func (s *Service) upsertHoliday(ctx context.Context, req *models.UpsertRuleRequest, date *time.Time, weekday *domain.WeekdayClass) (models.RuleResponse, error) {
	if req.Slot != nil {
		return models.RuleResponse{}, fmt.Errorf("%w: holidays cannot target a slot", ErrUnsupportedScope)
	}
	if req.IsHoliday == nil {
		return models.RuleResponse{}, fmt.Errorf("%w: isHoliday is required", ErrInvalidInput)
	}

	rule := &domain.HolidayRule{
		StylistID: req.StylistID,
		Date:      date,
		Weekday:   weekday,
		IsHoliday: *req.IsHoliday,
	}

	if err := mapRuleError(rule.Validate()); err != nil {
		s.logger.Warn("Upsert: invalid holiday rule: %v", err)
		return models.RuleResponse{}, err
	}

	saved, err := s.rulesRepo.UpsertHolidayRule(ctx, rule)
	if err != nil {
		s.logger.Error("Upsert: repository error: %v", err)
		return models.RuleResponse{}, fmt.Errorf("%w: UpsertHolidayRule - repository error: %v", ErrInternal, err)
	}
	return models.FromHolidayRule(saved), nil
}

func (s *Service) upsertCapacity(ctx context.Context, req *models.UpsertRuleRequest, date *time.Time) (models.RuleResponse, error) {
	if req.Weekday != nil {
		return models.RuleResponse{}, fmt.Errorf("%w: capacity cannot target a weekday", ErrUnsupportedScope)
	}
	if req.MaxReservations == nil {
		return models.RuleResponse{}, fmt.Errorf("%w: maxReservations is required", ErrInvalidInput)
	}

	rule := &domain.CapacityRule{
		StylistID:       req.StylistID,
		Date:            date,
		MaxReservations: *req.MaxReservations,
	}
	if req.Slot != nil {
		slot := domain.Slot(*req.Slot)
		rule.Slot = &slot
	}

	if err := mapRuleError(rule.Validate(s.maxCapacity)); err != nil {
		s.logger.Warn("Upsert: invalid capacity rule: %v", err)
		return models.RuleResponse{}, err
	}

	saved, err := s.rulesRepo.UpsertCapacityRule(ctx, rule)
	if err != nil {
		s.logger.Error("Upsert: repository error: %v", err)
		return models.RuleResponse{}, fmt.Errorf("%w: UpsertCapacityRule - repository error: %v", ErrInternal, err)
	}
	return models.FromCapacityRule(saved), nil
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	d, err := time.Parse(domain.DateFormat, *s)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return &d, nil
}

// mapRuleError переводит ошибки доменных инвариантов в ошибки сервиса
func mapRuleError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrUnsupportedScope):
		return fmt.Errorf("%w: %v", ErrUnsupportedScope, err)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
}
