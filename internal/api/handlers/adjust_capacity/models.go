package adjust_capacity

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	adjustCapacity "github.com/m04kA/SMC-ScheduleService/internal/usecase/adjust_capacity"
)

// AdjustCapacityRequest HTTP request model
type AdjustCapacityRequest struct {
	Direction string `json:"direction"` // up | down
}

// CapacityResponse HTTP response model
type CapacityResponse struct {
	StylistID int64  `json:"stylistId"`
	Date      string `json:"date"`
	Slot      int    `json:"slot"`
	Time      string `json:"time"`
	Previous  int    `json:"previous"`
	Limit     int    `json:"limit"`
	Changed   bool   `json:"changed"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AdjustCapacityRequest) ToUseCaseRequest(stylistID, actorID int64, dateStr, slotStr string) (*adjustCapacity.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	slot, err := strconv.Atoi(slotStr)
	if err != nil {
		return nil, fmt.Errorf("invalid slot: %w", err)
	}

	return &adjustCapacity.Request{
		StylistID: stylistID,
		ActorID:   actorID,
		Date:      date,
		Slot:      domain.Slot(slot),
		Direction: adjustCapacity.Direction(r.Direction),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *adjustCapacity.Response) *CapacityResponse {
	return &CapacityResponse{
		StylistID: resp.StylistID,
		Date:      domain.DateKey(resp.Date),
		Slot:      int(resp.Slot),
		Time:      resp.Time.String(),
		Previous:  resp.Previous,
		Limit:     resp.Limit,
		Changed:   resp.Changed,
	}
}
