package rules

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

// Цели ON CONFLICT совпадают с частичными уникальными индексами миграции
var (
	workingHoursConflicts = map[domain.ScopeKind]string{
		domain.ScopeDate:    "(stylist_id, rule_date) WHERE rule_date IS NOT NULL",
		domain.ScopeWeekday: "(stylist_id, weekday) WHERE rule_date IS NULL AND weekday IS NOT NULL",
		domain.ScopeDefault: "(stylist_id) WHERE rule_date IS NULL AND weekday IS NULL",
	}
	holidayConflicts = map[domain.ScopeKind]string{
		domain.ScopeDate:    "(stylist_id, rule_date) WHERE rule_date IS NOT NULL",
		domain.ScopeWeekday: "(stylist_id, weekday) WHERE weekday IS NOT NULL",
	}
	capacityConflicts = map[domain.ScopeKind]string{
		domain.ScopeDateSlot: "(stylist_id, rule_date, slot) WHERE rule_date IS NOT NULL AND slot IS NOT NULL",
		domain.ScopeDate:     "(stylist_id, rule_date) WHERE rule_date IS NOT NULL AND slot IS NULL",
		domain.ScopeDefault:  "(stylist_id) WHERE rule_date IS NULL AND slot IS NULL",
	}
)

// UpsertWorkingHourRule создает правило рабочих часов или обновляет правило с той же областью действия
func (r *Repository) UpsertWorkingHourRule(ctx context.Context, rule *domain.WorkingHourRule) (*domain.WorkingHourRule, error) {
	scope, err := rule.Scope()
	if err != nil {
		return nil, err
	}

	builder := psqlbuilder.Insert(workingHoursTable).
		Columns("stylist_id", "rule_date", "weekday", "start_time", "end_time", "is_closed").
		Values(rule.StylistID, nullableDate(rule.Date), nullableWeekday(rule.Weekday), rule.Start, rule.End, rule.IsClosed)

	createdAt, updatedAt, err := r.upsert(ctx, "UpsertWorkingHourRule", builder, workingHoursConflicts, scope,
		"start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time, is_closed = EXCLUDED.is_closed", &rule.ID)
	if err != nil {
		return nil, err
	}

	rule.CreatedAt = createdAt
	rule.UpdatedAt = updatedAt
	return rule, nil
}

// UpsertHolidayRule создает правило выходного или обновляет правило с той же областью действия
func (r *Repository) UpsertHolidayRule(ctx context.Context, rule *domain.HolidayRule) (*domain.HolidayRule, error) {
	scope, err := rule.Scope()
	if err != nil {
		return nil, err
	}

	builder := psqlbuilder.Insert(holidaysTable).
		Columns("stylist_id", "rule_date", "weekday", "is_holiday").
		Values(rule.StylistID, nullableDate(rule.Date), nullableWeekday(rule.Weekday), rule.IsHoliday)

	createdAt, updatedAt, err := r.upsert(ctx, "UpsertHolidayRule", builder, holidayConflicts, scope,
		"is_holiday = EXCLUDED.is_holiday", &rule.ID)
	if err != nil {
		return nil, err
	}

	rule.CreatedAt = createdAt
	rule.UpdatedAt = updatedAt
	return rule, nil
}

// UpsertCapacityRule создает правило вместимости или обновляет правило с той же областью действия
func (r *Repository) UpsertCapacityRule(ctx context.Context, rule *domain.CapacityRule) (*domain.CapacityRule, error) {
	scope, err := rule.Scope()
	if err != nil {
		return nil, err
	}

	builder := psqlbuilder.Insert(capacityTable).
		Columns("stylist_id", "rule_date", "slot", "max_reservations").
		Values(rule.StylistID, nullableDate(rule.Date), nullableSlot(rule.Slot), rule.MaxReservations)

	createdAt, updatedAt, err := r.upsert(ctx, "UpsertCapacityRule", builder, capacityConflicts, scope,
		"max_reservations = EXCLUDED.max_reservations", &rule.ID)
	if err != nil {
		return nil, err
	}

	rule.CreatedAt = createdAt
	rule.UpdatedAt = updatedAt
	return rule, nil
}

// upsert выполняет INSERT ... ON CONFLICT одним запросом: конкурентные вызовы
// с одной областью действия не падают на уникальном индексе
func (r *Repository) upsert(
	ctx context.Context,
	op string,
	builder squirrel.InsertBuilder,
	targets map[domain.ScopeKind]string,
	scope domain.ScopeKind,
	set string,
	id *int64,
) (time.Time, time.Time, error) {
	target, ok := targets[scope]
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s - scope %s", domain.ErrUnsupportedScope, op, scope)
	}

	query, args, err := builder.
		Suffix("ON CONFLICT " + target + " DO UPDATE SET " + set + ", updated_at = NOW()").
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s - build query: %w", ErrBuildQuery, op, err)
	}

	var createdAt, updatedAt sql.NullTime
	executor := dbmetrics.GetExecutor(ctx, r.db)
	if err := executor.QueryRowContext(ctx, query, args...).Scan(id, &createdAt, &updatedAt); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, op, err)
	}

	return createdAt.Time, updatedAt.Time, nil
}

// CreateCapacityRule создает правило вместимости
func (r *Repository) CreateCapacityRule(ctx context.Context, rule *domain.CapacityRule) (*domain.CapacityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(capacityTable).
		Columns("stylist_id", "rule_date", "slot", "max_reservations").
		Values(rule.StylistID, nullableDate(rule.Date), nullableSlot(rule.Slot), rule.MaxReservations).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateCapacityRule - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateCapacityRule - execute insert: %w", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time
	return rule, nil
}

// UpdateCapacityLimit обновляет вместимость правила
func (r *Repository) UpdateCapacityLimit(ctx context.Context, id int64, maxReservations int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(capacityTable).
		Set("max_reservations", maxReservations).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateCapacityLimit - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateCapacityLimit - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateCapacityLimit - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

// Delete удаляет правило мастера по виду и ID
func (r *Repository) Delete(ctx context.Context, kind domain.RuleKind, stylistID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	table, err := tableFor(kind)
	if err != nil {
		return err
	}

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id, "stylist_id": stylistID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

// ReplaceDayRules заменяет правила на конкретные даты для каждого дня:
// рабочие часы, флаг выходного и вместимость на весь день.
// Правила на отдельные слоты этих дат сохраняются.
// Вызывается внутри транзакции, чтобы месяц применялся целиком.
func (r *Repository) ReplaceDayRules(ctx context.Context, stylistID int64, days []domain.ShiftDay) error {
	if len(days) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	dates := make([]string, len(days))
	for i, d := range days {
		dates[i] = domain.DateKey(d.Date)
	}

	deletes := []squirrel.DeleteBuilder{
		psqlbuilder.Delete(workingHoursTable).Where(squirrel.Eq{"stylist_id": stylistID, "rule_date": dates}),
		psqlbuilder.Delete(holidaysTable).Where(squirrel.Eq{"stylist_id": stylistID, "rule_date": dates}),
		psqlbuilder.Delete(capacityTable).Where(squirrel.Eq{"stylist_id": stylistID, "rule_date": dates, "slot": nil}),
	}

	for _, del := range deletes {
		query, args, err := del.ToSql()
		if err != nil {
			return fmt.Errorf("%w: ReplaceDayRules - build delete query: %w", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: ReplaceDayRules - execute delete: %w", ErrExecQuery, err)
		}
	}

	hours := psqlbuilder.Insert(workingHoursTable).
		Columns("stylist_id", "rule_date", "start_time", "end_time", "is_closed")
	holidays := psqlbuilder.Insert(holidaysTable).
		Columns("stylist_id", "rule_date", "is_holiday")
	capacities := psqlbuilder.Insert(capacityTable).
		Columns("stylist_id", "rule_date", "max_reservations")

	for i, d := range days {
		hours = hours.Values(stylistID, dates[i], d.Start, d.End, d.IsHoliday)
		holidays = holidays.Values(stylistID, dates[i], d.IsHoliday)
		capacities = capacities.Values(stylistID, dates[i], d.MaxReservations)
	}

	for _, ins := range []squirrel.InsertBuilder{hours, holidays, capacities} {
		query, args, err := ins.ToSql()
		if err != nil {
			return fmt.Errorf("%w: ReplaceDayRules - build insert query: %w", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: ReplaceDayRules - execute insert: %w", ErrExecQuery, err)
		}
	}

	return nil
}

func tableFor(kind domain.RuleKind) (string, error) {
	switch kind {
	case domain.RuleWorkingHours:
		return workingHoursTable, nil
	case domain.RuleHoliday:
		return holidaysTable, nil
	case domain.RuleCapacity:
		return capacityTable, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
