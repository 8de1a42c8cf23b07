package domain

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// ReservationStatus статус брони
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusCompleted ReservationStatus = "completed"
	StatusCanceled  ReservationStatus = "canceled"
	StatusNoShow    ReservationStatus = "no_show"
)

// ActorRole кто совершил действие над бронью
type ActorRole string

const (
	ActorCustomer ActorRole = "customer"
	ActorStylist  ActorRole = "stylist"
)

// Reservation бронь клиента у мастера.
// Занимает слоты [ToSlot(StartTime), ceil(EndTime)).
type Reservation struct {
	ID              int64
	StylistID       int64
	CustomerID      int64
	CustomerName    string
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          ReservationStatus

	// Денормализованные данные услуг
	ServiceIDs   []int64
	ServiceNames []string

	CanceledBy         *ActorRole
	CancellationReason *string
	CanceledAt         *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CountsAgainstCapacity возвращает true, если бронь занимает место в слотах
func (r *Reservation) CountsAgainstCapacity() bool {
	return r.Status != StatusCanceled && r.Status != StatusNoShow
}

// IsCanceled возвращает true для отмененной брони
func (r *Reservation) IsCanceled() bool {
	return r.Status == StatusCanceled
}

// CanBeCanceled отмена возможна только из pending
func (r *Reservation) CanBeCanceled() bool {
	return r.Status == StatusPending
}

// CanBeEdited редактировать можно только pending бронь
func (r *Reservation) CanBeEdited() bool {
	return r.Status == StatusPending
}

// CanTransitionTo проверяет допустимость перехода статуса.
// Переходы односторонние: pending -> completed | no_show | canceled.
func (r *Reservation) CanTransitionTo(next ReservationStatus) bool {
	if r.Status != StatusPending {
		return false
	}
	switch next {
	case StatusCompleted, StatusNoShow, StatusCanceled:
		return true
	default:
		return false
	}
}

// Slots возвращает слоты, занятые бронью
func (r *Reservation) Slots() []Slot {
	return SlotRange(r.StartTime, r.EndTime)
}

// FirstSlot возвращает первый занятый слот
func (r *Reservation) FirstSlot() Slot {
	return ToSlot(r.StartTime)
}

// ParseReservationStatus проверяет строку статуса
func ParseReservationStatus(s string) (ReservationStatus, bool) {
	switch ReservationStatus(s) {
	case StatusPending, StatusCompleted, StatusCanceled, StatusNoShow:
		return ReservationStatus(s), true
	default:
		return "", false
	}
}

// ReservationFilter фильтр выборки броней мастера за период
type ReservationFilter struct {
	StylistID       int64
	From            time.Time           // Дата начала периода (включительно)
	To              time.Time           // Дата конца периода (включительно)
	ExcludeStatuses []ReservationStatus // Статусы, которые не нужно возвращать
	ExcludeID       *int64              // Исключить бронь (при редактировании)
}

// ChangeField поле брони, изменение которого попадает в уведомление
type ChangeField string

const (
	ChangeDate     ChangeField = "date"
	ChangeTime     ChangeField = "time"
	ChangeServices ChangeField = "services"
)

// FieldChange одно изменение поля
type FieldChange struct {
	Field  ChangeField `json:"field"`
	Before string      `json:"before"`
	After  string      `json:"after"`
}

// ChangeSet набор изменений брони
type ChangeSet []FieldChange

// Empty возвращает true, если изменений нет
func (c ChangeSet) Empty() bool {
	return len(c) == 0
}
