package get_day_schedule

import (
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	getDaySchedule "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_day_schedule"
)

// DayScheduleResponse HTTP response model
type DayScheduleResponse struct {
	StylistID   int64          `json:"stylistId"`
	Date        string         `json:"date"`
	IsHoliday   bool           `json:"isHoliday"`
	IsClosed    bool           `json:"isClosed"`
	OpeningTime *string        `json:"openingTime,omitempty"`
	ClosingTime *string        `json:"closingTime,omitempty"`
	Slots       []SlotResponse `json:"slots"`
}

// SlotResponse состояние слота
type SlotResponse struct {
	Slot         int                   `json:"slot"`
	Time         string                `json:"time"`
	Count        int                   `json:"count"`
	Limit        int                   `json:"limit"`
	Remaining    int                   `json:"remaining"`
	OutsideHours bool                  `json:"outsideHours"`
	Reservations []ReservationResponse `json:"reservations"`
}

// ReservationResponse бронь, начинающаяся в слоте
type ReservationResponse struct {
	ID           int64    `json:"id"`
	CustomerID   int64    `json:"customerId"`
	CustomerName string   `json:"customerName"`
	StartTime    string   `json:"startTime"`
	EndTime      string   `json:"endTime"`
	Status       string   `json:"status"`
	ServiceNames []string `json:"serviceNames"`
}

// ToUseCaseRequest создает запрос use case. Дату разбирает use case.
func ToUseCaseRequest(stylistID, actorID int64, dateStr string) *getDaySchedule.Request {
	return &getDaySchedule.Request{
		StylistID: stylistID,
		ActorID:   actorID,
		Date:      dateStr,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDaySchedule.Response) *DayScheduleResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		reservations := make([]ReservationResponse, len(s.Reservations))
		for j, r := range s.Reservations {
			names := r.ServiceNames
			if names == nil {
				names = []string{}
			}
			reservations[j] = ReservationResponse{
				ID:           r.ID,
				CustomerID:   r.CustomerID,
				CustomerName: r.CustomerName,
				StartTime:    r.StartTime.String(),
				EndTime:      r.EndTime.String(),
				Status:       r.Status,
				ServiceNames: names,
			}
		}

		slots[i] = SlotResponse{
			Slot:         int(s.Slot),
			Time:         s.Time.String(),
			Count:        s.Count,
			Limit:        s.Limit,
			Remaining:    s.Remaining,
			OutsideHours: s.OutsideHours,
			Reservations: reservations,
		}
	}

	result := &DayScheduleResponse{
		StylistID: resp.StylistID,
		Date:      domain.DateKey(resp.Date),
		IsHoliday: resp.IsHoliday,
		IsClosed:  resp.IsClosed,
		Slots:     slots,
	}
	if resp.OpeningTime != nil {
		open := resp.OpeningTime.String()
		result.OpeningTime = &open
	}
	if resp.ClosingTime != nil {
		closing := resp.ClosingTime.String()
		result.ClosingTime = &closing
	}
	return result
}
