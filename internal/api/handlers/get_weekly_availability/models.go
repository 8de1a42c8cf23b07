package get_weekly_availability

import (
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	getWeeklyAvailability "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_weekly_availability"
)

// WeeklyAvailabilityResponse HTTP response model
type WeeklyAvailabilityResponse struct {
	StylistID       int64             `json:"stylistId"`
	WeekStart       string            `json:"weekStart"`
	PrevWeek        *string           `json:"prevWeek"` // null, если неделя текущая
	NextWeek        string            `json:"nextWeek"`
	DurationMinutes int               `json:"durationMinutes"`
	SlotCount       int               `json:"slotCount"`
	Days            []DayAvailability `json:"days"`
}

// DayAvailability доступность одного дня
type DayAvailability struct {
	Date        string  `json:"date"`
	IsHoliday   bool    `json:"isHoliday"`
	OpeningTime *string `json:"openingTime,omitempty"`
	ClosingTime *string `json:"closingTime,omitempty"`
	Cells       []Cell  `json:"cells"`
}

// Cell отметка диапазона, начинающегося в слоте
type Cell struct {
	Slot   int    `json:"slot"`
	Time   string `json:"time"`
	Marker string `json:"marker"` // BLOCKED | LAST_AVAILABLE | OPEN
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(stylistID int64, dateStr, serviceIDsStr, durationStr string) (*getWeeklyAvailability.Request, error) {
	serviceIDs, err := handlers.ParseIDList(serviceIDsStr)
	if err != nil {
		return nil, err
	}

	req := &getWeeklyAvailability.Request{
		StylistID:  stylistID,
		Date:       dateStr,
		ServiceIDs: serviceIDs,
	}

	if durationStr != "" {
		duration, err := strconv.Atoi(durationStr)
		if err != nil || duration <= 0 {
			return nil, fmt.Errorf("invalid duration %q", durationStr)
		}
		req.DurationMinutes = &duration
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getWeeklyAvailability.Response) *WeeklyAvailabilityResponse {
	days := make([]DayAvailability, len(resp.Days))
	for i, d := range resp.Days {
		cells := make([]Cell, len(d.Cells))
		for j, c := range d.Cells {
			cells[j] = Cell{
				Slot:   int(c.Slot),
				Time:   c.Time.String(),
				Marker: string(c.Marker),
			}
		}

		day := DayAvailability{
			Date:      domain.DateKey(d.Date),
			IsHoliday: d.IsHoliday,
			Cells:     cells,
		}
		if d.OpeningTime != nil {
			open := d.OpeningTime.String()
			day.OpeningTime = &open
		}
		if d.ClosingTime != nil {
			closing := d.ClosingTime.String()
			day.ClosingTime = &closing
		}
		days[i] = day
	}

	result := &WeeklyAvailabilityResponse{
		StylistID:       resp.StylistID,
		WeekStart:       domain.DateKey(resp.WeekStart),
		NextWeek:        domain.DateKey(resp.NextWeek),
		DurationMinutes: resp.DurationMinutes,
		SlotCount:       resp.SlotCount,
		Days:            days,
	}
	if resp.PrevWeek != nil {
		prev := domain.DateKey(*resp.PrevWeek)
		result.PrevWeek = &prev
	}
	return result
}
