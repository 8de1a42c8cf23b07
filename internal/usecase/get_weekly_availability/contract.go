package get_weekly_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/catalogservice"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	ListByStylist(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
}

// RulesRepository интерфейс репозитория правил расписания
type RulesRepository interface {
	GetRuleSet(ctx context.Context, stylistID int64, from, to *time.Time) (*domain.RuleSet, error)
}

// CatalogClient интерфейс клиента CatalogService
type CatalogClient interface {
	GetServices(ctx context.Context, stylistID int64, ids []int64) ([]catalogservice.Service, error)
}

// Calendar календарь государственных праздников
type Calendar interface {
	IsNationalHoliday(date time.Time) bool
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct {
	Location *time.Location
}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	if p.Location == nil {
		return time.Now()
	}
	return time.Now().In(p.Location)
}
