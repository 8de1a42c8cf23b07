package get_day_schedule

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/schedule"
)

// UseCase use case получения расписания мастера на день
type UseCase struct {
	reservationRepo ReservationRepository
	rulesRepo       RulesRepository
	calendar        Calendar
	opts            schedule.Options
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	rulesRepo RulesRepository,
	calendar Calendar,
	opts schedule.Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		rulesRepo:       rulesRepo,
		calendar:        calendar,
		opts:            opts,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithLocation задает рабочий часовой пояс
func (uc *UseCase) WithLocation(loc *time.Location) *UseCase {
	uc.timeProvider = &RealTimeProvider{Location: loc}
	return uc
}

// Execute строит расписание дня: рабочие часы, занятость и брони по слотам
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if req.ActorID != req.StylistID {
		uc.logger.Warn("GetDaySchedule: user=%d requested schedule of stylist=%d", req.ActorID, req.StylistID)
		return nil, ErrAccessDenied
	}

	date, ok := parseDate(req.Date, uc.timeProvider.Now())
	if !ok && req.Date != "" {
		uc.logger.Warn("GetDaySchedule: invalid date %q, using today", req.Date)
	}

	rules, err := uc.rulesRepo.GetRuleSet(ctx, req.StylistID, &date, &date)
	if err != nil {
		uc.logger.Error("GetDaySchedule: failed to get rules for stylist=%d: %v", req.StylistID, err)
		return nil, fmt.Errorf("%w: failed to get rules: %v", ErrInternal, err)
	}

	reservations, err := uc.reservationRepo.ListByStylist(ctx, domain.ReservationFilter{
		StylistID:       req.StylistID,
		From:            date,
		To:              date,
		ExcludeStatuses: []domain.ReservationStatus{domain.StatusCanceled},
	})
	if err != nil {
		uc.logger.Error("GetDaySchedule: failed to get reservations for stylist=%d: %v", req.StylistID, err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	view := schedule.NewResolver(rules, uc.calendar, uc.opts).Day(date, reservations)

	resp := &Response{
		StylistID: req.StylistID,
		Date:      date,
		IsHoliday: view.IsHoliday(),
		IsClosed:  view.IsClosed(),
		Slots:     make([]SlotInfo, 0),
	}

	hours, ok := view.Hours()
	if !ok {
		uc.logger.Warn("GetDaySchedule: no working hours resolved for stylist=%d on %s", req.StylistID, domain.DateKey(date))
	} else {
		resp.OpeningTime = &hours.Start
		resp.ClosingTime = &hours.End
	}

	// Брони вне текущих часов (после смены часов или закрытия дня) тоже показываем
	outside := make(map[domain.Slot]bool)
	for _, s := range view.StartsOutsideHours() {
		outside[s] = true
	}
	if len(outside) > 0 {
		uc.logger.Warn("GetDaySchedule: reservations outside working hours in %d slot(s) for stylist=%d on %s",
			len(outside), req.StylistID, domain.DateKey(date))
	}

	slots := append(view.Slots(), view.StartsOutsideHours()...)
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })

	for _, s := range slots {
		info := SlotInfo{
			Slot:         s,
			Time:         s.Start(),
			Count:        view.CountAt(s),
			Limit:        view.LimitAt(s),
			Remaining:    view.Remaining(s),
			OutsideHours: outside[s],
			Reservations: make([]ReservationInfo, 0),
		}
		for _, r := range view.ReservationsStartingAt(s) {
			info.Reservations = append(info.Reservations, ReservationInfo{
				ID:           r.ID,
				CustomerID:   r.CustomerID,
				CustomerName: r.CustomerName,
				StartTime:    r.StartTime,
				EndTime:      r.EndTime,
				Status:       string(r.Status),
				ServiceNames: r.ServiceNames,
			})
		}
		resp.Slots = append(resp.Slots, info)
	}

	return resp, nil
}

