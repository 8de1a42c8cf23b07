package get_day_schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StylistID <= 0 {
		return fmt.Errorf("%w: stylistID must be positive", ErrInvalidInput)
	}
	return nil
}

// parseDate разбирает дату навигации; при ошибке возвращает сегодняшнюю дату
func parseDate(raw string, now time.Time) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.DateOnly(now), false
	}
	date, err := time.ParseInLocation(domain.DateFormat, raw, now.Location())
	if err != nil {
		return domain.DateOnly(now), false
	}
	return date, true
}
