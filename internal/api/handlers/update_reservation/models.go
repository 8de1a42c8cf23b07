package update_reservation

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	updateReservation "github.com/m04kA/SMC-ScheduleService/internal/usecase/update_reservation"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid start time")
)

// UpdateReservationRequest HTTP request model
type UpdateReservationRequest struct {
	Date            string  `json:"date"`      // "2025-10-15"
	StartTime       string  `json:"startTime"` // "10:00"
	ServiceIDs      []int64 `json:"serviceIds"`
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
}

// ChangeResponse одно изменение поля
type ChangeResponse struct {
	Field  string `json:"field"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64            `json:"id"`
	StylistID       int64            `json:"stylistId"`
	CustomerID      int64            `json:"customerId"`
	CustomerName    string           `json:"customerName"`
	Date            string           `json:"date"`
	StartTime       string           `json:"startTime"`
	EndTime         string           `json:"endTime"`
	DurationMinutes int              `json:"durationMinutes"`
	Status          string           `json:"status"`
	ServiceIDs      []int64          `json:"serviceIds"`
	ServiceNames    []string         `json:"serviceNames"`
	Changes         []ChangeResponse `json:"changes"`
	UpdatedAt       string           `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateReservationRequest) ToUseCaseRequest(reservationID, actorID int64, role domain.ActorRole) (*updateReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	return &updateReservation.Request{
		ReservationID:   reservationID,
		ActorID:         actorID,
		ActorRole:       role,
		Date:            date,
		StartTime:       startTime,
		ServiceIDs:      r.ServiceIDs,
		DurationMinutes: r.DurationMinutes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *updateReservation.Response) *ReservationResponse {
	changes := make([]ChangeResponse, 0, len(resp.Changes))
	for _, c := range resp.Changes {
		changes = append(changes, ChangeResponse{Field: string(c.Field), Before: c.Before, After: c.After})
	}

	return &ReservationResponse{
		ID:              resp.ID,
		StylistID:       resp.StylistID,
		CustomerID:      resp.CustomerID,
		CustomerName:    resp.CustomerName,
		Date:            domain.DateKey(resp.Date),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceIDs:      resp.ServiceIDs,
		ServiceNames:    resp.ServiceNames,
		Changes:         changes,
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
