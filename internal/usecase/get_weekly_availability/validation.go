package get_weekly_availability

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

	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: service id must be positive", ErrInvalidInput)
		}
	}

	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 || *req.DurationMinutes > domain.MaxReservationDurationHours*60 {
			return fmt.Errorf("%w: duration must be in (0, %d] minutes", ErrInvalidInput, domain.MaxReservationDurationHours*60)
		}
	}

	return nil
}

// parseAnchor разбирает дату навигации; при ошибке возвращает сегодняшнюю дату
func parseAnchor(raw string, now time.Time) (time.Time, bool) {
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
