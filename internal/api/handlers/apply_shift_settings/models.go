package apply_shift_settings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	applyShiftSettings "github.com/m04kA/SMC-ScheduleService/internal/usecase/apply_shift_settings"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// ShiftSettingsRequest HTTP request model.
// Ключ days - номер дня месяца ("1".."31").
type ShiftSettingsRequest struct {
	Days map[string]DayRequest `json:"days"`
}

// DayRequest настройки одного дня
type DayRequest struct {
	Date            string           `json:"date"` // "2025-04-01"
	IsHoliday       bool             `json:"isHoliday"`
	StartTime       types.TimeString `json:"startTime"`
	EndTime         types.TimeString `json:"endTime"`
	MaxReservations int              `json:"maxReservations"`
}

// ShiftSettingsResponse HTTP response model
type ShiftSettingsResponse struct {
	StylistID int64              `json:"stylistId"`
	Month     string             `json:"month"`
	Applied   bool               `json:"applied"`
	Days      int                `json:"days"`
	Conflicts []ConflictResponse `json:"conflicts"`
}

// ConflictsErrorResponse ответ 409 со списком конфликтов
type ConflictsErrorResponse struct {
	Error     string             `json:"error"`
	Conflicts []ConflictResponse `json:"conflicts"`
}

// ConflictResponse бронь, которая станет недействительной
type ConflictResponse struct {
	Type          string  `json:"type"` // HOLIDAY | OUT_OF_HOURS
	Date          string  `json:"date"`
	ReservationID int64   `json:"reservationId"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	CustomerName  string  `json:"customerName"`
	ProposedStart *string `json:"proposedStart,omitempty"`
	ProposedEnd   *string `json:"proposedEnd,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ShiftSettingsRequest) ToUseCaseRequest(stylistID, actorID int64, month string, dryRun, force bool) (*applyShiftSettings.Request, error) {
	days := make(map[int]applyShiftSettings.DayInput, len(r.Days))
	for key, d := range r.Days {
		day, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("invalid day key %q", key)
		}

		date, err := time.Parse(domain.DateFormat, d.Date)
		if err != nil {
			return nil, fmt.Errorf("day %s: invalid date %q", key, d.Date)
		}

		days[day] = applyShiftSettings.DayInput{
			Date:            date,
			IsHoliday:       d.IsHoliday,
			StartTime:       d.StartTime,
			EndTime:         d.EndTime,
			MaxReservations: d.MaxReservations,
		}
	}

	return &applyShiftSettings.Request{
		StylistID: stylistID,
		ActorID:   actorID,
		Month:     month,
		Days:      days,
		DryRun:    dryRun,
		Force:     force,
	}, nil
}

// FromConflicts конвертирует конфликты в HTTP модель
func FromConflicts(conflicts []domain.ShiftConflict) []ConflictResponse {
	result := make([]ConflictResponse, len(conflicts))
	for i, c := range conflicts {
		item := ConflictResponse{
			Type:          string(c.Type),
			Date:          domain.DateKey(c.Date),
			ReservationID: c.ReservationID,
			StartTime:     c.Start.String(),
			EndTime:       c.End.String(),
			CustomerName:  c.CustomerName,
		}
		if c.ProposedStart != nil {
			start := c.ProposedStart.String()
			item.ProposedStart = &start
		}
		if c.ProposedEnd != nil {
			end := c.ProposedEnd.String()
			item.ProposedEnd = &end
		}
		result[i] = item
	}
	return result
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *applyShiftSettings.Response) *ShiftSettingsResponse {
	return &ShiftSettingsResponse{
		StylistID: resp.StylistID,
		Month:     resp.Month,
		Applied:   resp.Applied,
		Days:      resp.Days,
		Conflicts: FromConflicts(resp.Conflicts),
	}
}
