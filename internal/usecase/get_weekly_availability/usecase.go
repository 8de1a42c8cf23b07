package get_weekly_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	catalogClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ScheduleService/internal/schedule"
)

// UseCase use case построения сетки доступности мастера на неделю
type UseCase struct {
	reservationRepo ReservationRepository
	rulesRepo       RulesRepository
	catalog         CatalogClient
	calendar        Calendar
	opts            schedule.Options
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	rulesRepo RulesRepository,
	catalog CatalogClient,
	calendar Calendar,
	opts schedule.Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		rulesRepo:       rulesRepo,
		catalog:         catalog,
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

// Execute строит сетку на 7 дней с понедельника недели даты навигации.
// Неделя не может начинаться раньше текущей.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetWeeklyAvailability: stylist=%d, date=%q, services=%v", req.StylistID, req.Date, req.ServiceIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetWeeklyAvailability: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Дата навигации и начало недели
	anchor, ok := parseAnchor(req.Date, now)
	if !ok && req.Date != "" {
		uc.logger.Warn("GetWeeklyAvailability: invalid date %q, using today", req.Date)
	}
	weekStart := schedule.ClampWeekStart(anchor, now)
	weekEnd := weekStart.AddDate(0, 0, schedule.DaysPerWeek-1)

	// 3. Длительность
	duration, err := uc.resolveDuration(ctx, req)
	if err != nil {
		return nil, err
	}

	// 4. Правила и брони за неделю, по одному запросу
	rules, err := uc.rulesRepo.GetRuleSet(ctx, req.StylistID, &weekStart, &weekEnd)
	if err != nil {
		uc.logger.Error("GetWeeklyAvailability: failed to get rules for stylist=%d: %v", req.StylistID, err)
		return nil, fmt.Errorf("%w: failed to get rules: %v", ErrInternal, err)
	}

	reservations, err := uc.reservationRepo.ListByStylist(ctx, domain.ReservationFilter{
		StylistID:       req.StylistID,
		From:            weekStart,
		To:              weekEnd,
		ExcludeStatuses: domain.UncountedStatuses,
	})
	if err != nil {
		uc.logger.Error("GetWeeklyAvailability: failed to get reservations for stylist=%d: %v", req.StylistID, err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 5. Сетка
	week := schedule.NewResolver(rules, uc.calendar, uc.opts).Week(weekStart, duration, reservations, now)

	resp := &Response{
		StylistID:       req.StylistID,
		WeekStart:       week.WeekStart,
		NextWeek:        weekStart.AddDate(0, 0, schedule.DaysPerWeek),
		DurationMinutes: week.DurationMinutes,
		SlotCount:       week.SlotCount,
		Days:            make([]Day, 0, len(week.Days)),
	}

	current := schedule.ClampWeekStart(now, now)
	if weekStart.After(current) {
		prev := weekStart.AddDate(0, 0, -schedule.DaysPerWeek)
		resp.PrevWeek = &prev
	}

	for _, d := range week.Days {
		day := Day{
			Date:      d.Date,
			IsHoliday: d.IsHoliday,
			Cells:     make([]Cell, len(d.Cells)),
		}
		if d.Hours != nil {
			day.OpeningTime = &d.Hours.Start
			day.ClosingTime = &d.Hours.End
		} else {
			uc.logger.Warn("GetWeeklyAvailability: no working hours resolved for stylist=%d on %s", req.StylistID, domain.DateKey(d.Date))
		}
		for i, c := range d.Cells {
			day.Cells[i] = Cell{Slot: c.Start, Time: c.Start.Start(), Marker: c.Marker}
		}
		resp.Days = append(resp.Days, day)
	}

	return resp, nil
}

// resolveDuration возвращает длительность: явную, сумму услуг или один слот
func (uc *UseCase) resolveDuration(ctx context.Context, req *Request) (int, error) {
	if req.DurationMinutes != nil {
		return *req.DurationMinutes, nil
	}

	if len(req.ServiceIDs) == 0 {
		return domain.SlotMinutes, nil
	}

	services, err := uc.catalog.GetServices(ctx, req.StylistID, req.ServiceIDs)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetWeeklyAvailability: services %v not found for stylist=%d", req.ServiceIDs, req.StylistID)
			return 0, fmt.Errorf("%w: %v", ErrServiceNotFound, err)
		}
		uc.logger.Error("GetWeeklyAvailability: failed to get services: %v", err)
		return 0, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	return catalogClient.TotalDuration(services), nil
}
