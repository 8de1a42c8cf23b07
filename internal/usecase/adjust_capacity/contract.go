package adjust_capacity

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// RulesRepository интерфейс репозитория правил расписания
type RulesRepository interface {
	GetRuleSet(ctx context.Context, stylistID int64, from, to *time.Time) (*domain.RuleSet, error)
	GetCapacityRule(ctx context.Context, stylistID int64, date time.Time, slot *domain.Slot) (*domain.CapacityRule, error)
	CreateCapacityRule(ctx context.Context, rule *domain.CapacityRule) (*domain.CapacityRule, error)
	UpdateCapacityLimit(ctx context.Context, id int64, maxReservations int) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
