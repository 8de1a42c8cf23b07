package create_reservation

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	createReservation "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	CustomerName    string  `json:"customerName"`
	Date            string  `json:"date"`      // "2025-10-15"
	StartTime       string  `json:"startTime"` // "10:00"
	ServiceIDs      []int64 `json:"serviceIds"`
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64    `json:"id"`
	StylistID       int64    `json:"stylistId"`
	CustomerID      int64    `json:"customerId"`
	CustomerName    string   `json:"customerName"`
	Date            string   `json:"date"`
	StartTime       string   `json:"startTime"`
	EndTime         string   `json:"endTime"`
	DurationMinutes int      `json:"durationMinutes"`
	Status          string   `json:"status"`
	ServiceIDs      []int64  `json:"serviceIds"`
	ServiceNames    []string `json:"serviceNames"`
	CreatedAt       string   `json:"createdAt"`
	UpdatedAt       string   `json:"updatedAt"`
}

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid start time")
)

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(stylistID, customerID int64) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	return &createReservation.Request{
		StylistID:       stylistID,
		CustomerID:      customerID,
		CustomerName:    r.CustomerName,
		Date:            date,
		StartTime:       startTime,
		ServiceIDs:      r.ServiceIDs,
		DurationMinutes: r.DurationMinutes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
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
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
