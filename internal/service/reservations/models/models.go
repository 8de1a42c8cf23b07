package models

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Request модели

// CancelRequest запрос на отмену брони
type CancelRequest struct {
	ActorID   int64
	ActorRole domain.ActorRole
	Reason    *string
}

// UpdateStatusRequest запрос на смену статуса брони мастером
type UpdateStatusRequest struct {
	ActorID int64
	Status  string
}

// ListRequest запрос списка броней мастера за период
type ListRequest struct {
	StylistID       int64
	ActorID         int64
	From            time.Time
	To              time.Time
	Status          *string // Фильтр по статусу (опционально)
	IncludeCanceled bool
}

// Response модели

// ReservationResponse ответ с данными брони
type ReservationResponse struct {
	ID              int64    `json:"id"`
	StylistID       int64    `json:"stylistId"`
	CustomerID      int64    `json:"customerId"`
	CustomerName    string   `json:"customerName"`
	Date            string   `json:"date"`      // "2025-10-15"
	StartTime       string   `json:"startTime"` // "10:00"
	EndTime         string   `json:"endTime"`
	DurationMinutes int      `json:"durationMinutes"`
	Status          string   `json:"status"`
	ServiceIDs      []int64  `json:"serviceIds"`
	ServiceNames    []string `json:"serviceNames"`

	CanceledBy         *string `json:"canceledBy,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CanceledAt         *string `json:"canceledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком броней
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		StylistID:          r.StylistID,
		CustomerID:         r.CustomerID,
		CustomerName:       r.CustomerName,
		Date:               domain.DateKey(r.Date),
		StartTime:          r.StartTime.String(),
		EndTime:            r.EndTime.String(),
		DurationMinutes:    r.DurationMinutes,
		Status:             string(r.Status),
		ServiceIDs:         r.ServiceIDs,
		ServiceNames:       r.ServiceNames,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if resp.ServiceIDs == nil {
		resp.ServiceIDs = []int64{}
	}
	if resp.ServiceNames == nil {
		resp.ServiceNames = []string{}
	}

	if r.CanceledBy != nil {
		by := string(*r.CanceledBy)
		resp.CanceledBy = &by
	}

	if r.CanceledAt != nil {
		canceledStr := r.CanceledAt.Format(time.RFC3339)
		resp.CanceledAt = &canceledStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(list []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(list)),
	}

	for _, r := range list {
		if item := FromDomainReservation(r); item != nil {
			resp.Reservations = append(resp.Reservations, *item)
		}
	}

	return resp
}
