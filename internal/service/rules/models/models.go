package models

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Request модели

// UpsertRuleRequest запрос на создание или изменение правила.
// Область действия задается полями date, weekday и slot; набор значимых полей зависит от вида правила.
type UpsertRuleRequest struct {
	StylistID int64           `json:"-"`
	ActorID   int64           `json:"-"`
	Kind      domain.RuleKind `json:"-"`

	Date    *string `json:"date,omitempty"`    // "2025-10-15", NULL = не на конкретную дату
	Weekday *int    `json:"weekday,omitempty"` // 0..6 (воскресенье = 0), 7 = государственный праздник
	Slot    *int    `json:"slot,omitempty"`    // 0..47, только для вместимости

	StartTime       *types.TimeString `json:"startTime,omitempty"`
	EndTime         *types.TimeString `json:"endTime,omitempty"`
	IsClosed        bool              `json:"isClosed,omitempty"`
	IsHoliday       *bool             `json:"isHoliday,omitempty"`
	MaxReservations *int              `json:"maxReservations,omitempty"`
}

// DeleteRuleRequest запрос на удаление правила
type DeleteRuleRequest struct {
	StylistID int64
	ActorID   int64
	Kind      string
	RuleID    int64
}

// Response модели

// RuleResponse правило любого вида
type RuleResponse struct {
	ID        int64   `json:"id"`
	StylistID int64   `json:"stylistId"`
	Kind      string  `json:"kind"`
	Scope     string  `json:"scope"`
	Date      *string `json:"date,omitempty"`
	Weekday   *int    `json:"weekday,omitempty"`
	Slot      *int    `json:"slot,omitempty"`

	StartTime       *string `json:"startTime,omitempty"`
	EndTime         *string `json:"endTime,omitempty"`
	IsClosed        *bool   `json:"isClosed,omitempty"`
	IsHoliday       *bool   `json:"isHoliday,omitempty"`
	MaxReservations *int    `json:"maxReservations,omitempty"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// RuleListResponse все правила мастера по видам
type RuleListResponse struct {
	StylistID    int64          `json:"stylistId"`
	WorkingHours []RuleResponse `json:"workingHours"`
	Holidays     []RuleResponse `json:"holidays"`
	Capacities   []RuleResponse `json:"capacities"`
}

// Методы конвертации

// FromWorkingHourRule конвертирует правило рабочих часов в DTO
func FromWorkingHourRule(r *domain.WorkingHourRule) RuleResponse {
	scope, _ := r.Scope()
	start, end := r.Start.String(), r.End.String()
	closed := r.IsClosed
	return RuleResponse{
		ID:        r.ID,
		StylistID: r.StylistID,
		Kind:      string(domain.RuleWorkingHours),
		Scope:     string(scope),
		Date:      dateString(r.Date),
		Weekday:   weekdayInt(r.Weekday),
		StartTime: &start,
		EndTime:   &end,
		IsClosed:  &closed,
		UpdatedAt: r.UpdatedAt,
	}
}

// FromHolidayRule конвертирует правило выходного в DTO
func FromHolidayRule(r *domain.HolidayRule) RuleResponse {
	scope, _ := r.Scope()
	holiday := r.IsHoliday
	return RuleResponse{
		ID:        r.ID,
		StylistID: r.StylistID,
		Kind:      string(domain.RuleHoliday),
		Scope:     string(scope),
		Date:      dateString(r.Date),
		Weekday:   weekdayInt(r.Weekday),
		IsHoliday: &holiday,
		UpdatedAt: r.UpdatedAt,
	}
}

// FromCapacityRule конвертирует правило вместимости в DTO
func FromCapacityRule(r *domain.CapacityRule) RuleResponse {
	scope, _ := r.Scope()
	limit := r.MaxReservations
	resp := RuleResponse{
		ID:              r.ID,
		StylistID:       r.StylistID,
		Kind:            string(domain.RuleCapacity),
		Scope:           string(scope),
		Date:            dateString(r.Date),
		MaxReservations: &limit,
		UpdatedAt:       r.UpdatedAt,
	}
	if r.Slot != nil {
		slot := int(*r.Slot)
		resp.Slot = &slot
	}
	return resp
}

// FromRuleSet конвертирует набор правил в DTO
func FromRuleSet(set *domain.RuleSet) *RuleListResponse {
	resp := &RuleListResponse{
		StylistID:    set.StylistID,
		WorkingHours: make([]RuleResponse, 0, len(set.WorkingHours)),
		Holidays:     make([]RuleResponse, 0, len(set.Holidays)),
		Capacities:   make([]RuleResponse, 0, len(set.Capacities)),
	}
	for i := range set.WorkingHours {
		resp.WorkingHours = append(resp.WorkingHours, FromWorkingHourRule(&set.WorkingHours[i]))
	}
	for i := range set.Holidays {
		resp.Holidays = append(resp.Holidays, FromHolidayRule(&set.Holidays[i]))
	}
	for i := range set.Capacities {
		resp.Capacities = append(resp.Capacities, FromCapacityRule(&set.Capacities[i]))
	}
	return resp
}

func dateString(d *time.Time) *string {
	if d == nil {
		return nil
	}
	s := domain.DateKey(*d)
	return &s
}

func weekdayInt(w *domain.WeekdayClass) *int {
	if w == nil {
		return nil
	}
	v := int(*w)
	return &v
}
