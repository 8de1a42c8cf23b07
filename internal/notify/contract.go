package notify

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/integrations/notificationservice"
)

// Sender отправляет уведомление во внешний сервис
type Sender interface {
	Send(ctx context.Context, n notificationservice.Notification) error
}

// MetricsObserver учитывает исход отправки уведомлений
type MetricsObserver interface {
	ObserveNotification(kind, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type nopMetrics struct{}

func (nopMetrics) ObserveNotification(string, string) {}
