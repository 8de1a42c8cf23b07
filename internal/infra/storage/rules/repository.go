package rules

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

const (
	workingHoursTable = "working_hour_rules"
	holidaysTable     = "holiday_rules"
	capacityTable     = "capacity_rules"
)

// Repository репозиторий правил расписания мастера:
// рабочие часы, выходные и вместимость слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetRuleSet загружает все правила мастера.
// Если from и to заданы, правила на конкретные даты ограничиваются периодом [from, to],
// правила на дни недели и общие правила загружаются всегда.
// Внутри транзакции строки блокируются (FOR UPDATE).
func (r *Repository) GetRuleSet(ctx context.Context, stylistID int64, from, to *time.Time) (*domain.RuleSet, error) {
	set := &domain.RuleSet{StylistID: stylistID}

	var err error
	if set.WorkingHours, err = r.listWorkingHours(ctx, stylistID, from, to); err != nil {
		return nil, err
	}
	if set.Holidays, err = r.listHolidays(ctx, stylistID, from, to); err != nil {
		return nil, err
	}
	if set.Capacities, err = r.listCapacities(ctx, stylistID, from, to); err != nil {
		return nil, err
	}

	return set, nil
}

func (r *Repository) listWorkingHours(ctx context.Context, stylistID int64, from, to *time.Time) ([]domain.WorkingHourRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.selectRules(ctx, workingHoursTable, stylistID, from, to,
		"id", "stylist_id", "rule_date", "weekday", "start_time", "end_time", "is_closed", "created_at", "updated_at",
	).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listWorkingHours - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listWorkingHours - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.WorkingHourRule, 0)
	for rows.Next() {
		var (
			rule                 domain.WorkingHourRule
			date                 sql.NullTime
			weekday              sql.NullInt64
			createdAt, updatedAt sql.NullTime
		)
		if err := rows.Scan(
			&rule.ID,
			&rule.StylistID,
			&date,
			&weekday,
			&rule.Start,
			&rule.End,
			&rule.IsClosed,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: listWorkingHours - scan row: %w", ErrScanRow, err)
		}
		rule.Date = nullDate(date)
		rule.Weekday = nullWeekday(weekday)
		rule.CreatedAt = createdAt.Time
		rule.UpdatedAt = updatedAt.Time
		result = append(result, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listWorkingHours - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

func (r *Repository) listHolidays(ctx context.Context, stylistID int64, from, to *time.Time) ([]domain.HolidayRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.selectRules(ctx, holidaysTable, stylistID, from, to,
		"id", "stylist_id", "rule_date", "weekday", "is_holiday", "created_at", "updated_at",
	).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listHolidays - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listHolidays - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.HolidayRule, 0)
	for rows.Next() {
		var (
			rule                 domain.HolidayRule
			date                 sql.NullTime
			weekday              sql.NullInt64
			createdAt, updatedAt sql.NullTime
		)
		if err := rows.Scan(
			&rule.ID,
			&rule.StylistID,
			&date,
			&weekday,
			&rule.IsHoliday,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: listHolidays - scan row: %w", ErrScanRow, err)
		}
		rule.Date = nullDate(date)
		rule.Weekday = nullWeekday(weekday)
		rule.CreatedAt = createdAt.Time
		rule.UpdatedAt = updatedAt.Time
		result = append(result, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listHolidays - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

func (r *Repository) listCapacities(ctx context.Context, stylistID int64, from, to *time.Time) ([]domain.CapacityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.selectRules(ctx, capacityTable, stylistID, from, to,
		"id", "stylist_id", "rule_date", "slot", "max_reservations", "created_at", "updated_at",
	).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listCapacities - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listCapacities - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.CapacityRule, 0)
	for rows.Next() {
		rule, err := scanCapacityRule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: listCapacities - scan row: %w", ErrScanRow, err)
		}
		result = append(result, *rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listCapacities - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// GetCapacityRule получает правило вместимости для (дата, слот).
// slot == nil ищет правило на всю дату. Внутри транзакции строка блокируется.
func (r *Repository) GetCapacityRule(ctx context.Context, stylistID int64, date time.Time, slot *domain.Slot) (*domain.CapacityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "stylist_id", "rule_date", "slot", "max_reservations", "created_at", "updated_at").
		From(capacityTable).
		Where(squirrel.Eq{"stylist_id": stylistID}).
		Where(dateScope(&date)).
		Where(slotScope(slot))

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCapacityRule - build select query: %w", ErrBuildQuery, err)
	}

	rule, err := scanCapacityRule(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCapacityRule - scan rule: %w", ErrScanRow, err)
	}

	return rule, nil
}

// selectRules строит выборку правил мастера с ограничением по периоду
func (r *Repository) selectRules(ctx context.Context, table string, stylistID int64, from, to *time.Time, columns ...string) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"stylist_id": stylistID})

	if from != nil && to != nil {
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Eq{"rule_date": nil},
			squirrel.And{
				squirrel.GtOrEq{"rule_date": domain.DateKey(*from)},
				squirrel.LtOrEq{"rule_date": domain.DateKey(*to)},
			},
		})
	}

	selectBuilder = selectBuilder.OrderBy("id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return selectBuilder
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCapacityRule(row rowScanner) (*domain.CapacityRule, error) {
	var (
		rule                 domain.CapacityRule
		date                 sql.NullTime
		slot                 sql.NullInt64
		createdAt, updatedAt sql.NullTime
	)
	if err := row.Scan(
		&rule.ID,
		&rule.StylistID,
		&date,
		&slot,
		&rule.MaxReservations,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	rule.Date = nullDate(date)
	if slot.Valid {
		s := domain.Slot(slot.Int64)
		rule.Slot = &s
	}
	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}

func nullDate(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	d := v.Time
	return &d
}

func nullWeekday(v sql.NullInt64) *domain.WeekdayClass {
	if !v.Valid {
		return nil
	}
	c := domain.WeekdayClass(v.Int64)
	return &c
}

// dateScope условие на колонку rule_date; nil означает "без даты"
func dateScope(date *time.Time) squirrel.Eq {
	if date == nil {
		return squirrel.Eq{"rule_date": nil}
	}
	return squirrel.Eq{"rule_date": domain.DateKey(*date)}
}

func slotScope(slot *domain.Slot) squirrel.Eq {
	if slot == nil {
		return squirrel.Eq{"slot": nil}
	}
	return squirrel.Eq{"slot": int(*slot)}
}

func nullableDate(date *time.Time) interface{} {
	if date == nil {
		return nil
	}
	return domain.DateKey(*date)
}

func nullableWeekday(weekday *domain.WeekdayClass) interface{} {
	if weekday == nil {
		return nil
	}
	return int(*weekday)
}

func nullableSlot(slot *domain.Slot) interface{} {
	if slot == nil {
		return nil
	}
	return int(*slot)
}
