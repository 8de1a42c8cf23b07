package apply_shift_settings

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	ListByStylist(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
}

// RulesRepository интерфейс репозитория правил расписания
type RulesRepository interface {
	ReplaceDayRules(ctx context.Context, stylistID int64, days []domain.ShiftDay) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsObserver учитывает найденные конфликты
type MetricsObserver interface {
	ObserveShiftConflict(conflictType string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
