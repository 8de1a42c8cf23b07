package list_stylist_reservations

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/reservations/models"
)

// defaultPeriodDays длина периода, если to не указан
const defaultPeriodDays = 7

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	stylistID int64,
	userID int64,
	fromStr string,
	toStr string,
	statusStr string,
	includeCanceledStr string,
) (*models.ListRequest, error) {
	if fromStr == "" {
		return nil, fmt.Errorf("from is required")
	}

	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		return nil, fmt.Errorf("invalid from: %w", err)
	}

	to := from.AddDate(0, 0, defaultPeriodDays-1)
	if toStr != "" {
		to, err = time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, fmt.Errorf("invalid to: %w", err)
		}
	}

	includeCanceled, err := handlers.ParseBool(includeCanceledStr)
	if err != nil {
		return nil, fmt.Errorf("invalid includeCanceled: %w", err)
	}

	req := &models.ListRequest{
		StylistID:       stylistID,
		ActorID:         userID,
		From:            from,
		To:              to,
		IncludeCanceled: includeCanceled,
	}
	if statusStr != "" {
		req.Status = &statusStr
	}

	return req, nil
}
