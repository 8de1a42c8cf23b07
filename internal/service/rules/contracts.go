package rules

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// RulesRepository интерфейс репозитория правил расписания
type RulesRepository interface {
	GetRuleSet(ctx context.Context, stylistID int64, from, to *time.Time) (*domain.RuleSet, error)
	UpsertWorkingHourRule(ctx context.Context, rule *domain.WorkingHourRule) (*domain.WorkingHourRule, error)
	UpsertHolidayRule(ctx context.Context, rule *domain.HolidayRule) (*domain.HolidayRule, error)
	UpsertCapacityRule(ctx context.Context, rule *domain.CapacityRule) (*domain.CapacityRule, error)
	Delete(ctx context.Context, kind domain.RuleKind, stylistID, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
