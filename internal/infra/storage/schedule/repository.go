package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
	"github.com/Radi03825/PlaySpot-sub000/pkg/dbmetrics"
	"github.com/Radi03825/PlaySpot-sub000/pkg/psqlbuilder"
)

// Repository репозиторий часов работы и ценовых интервалов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetSchedule получает расписание объекта по всем типам дней.
// Для объекта без расписания возвращается пустое расписание.
func (r *Repository) GetSchedule(ctx context.Context, facilityID int64) (*domain.FacilitySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Время читается как текст: 24:00 не помещается в time.Time
	query, args, err := psqlbuilder.Select(
		"facility_id",
		"day_type",
		"is_open",
		"open_time::text",
		"close_time::text",
		"updated_at",
	).
		From("working_hours").
		Where(squirrel.Eq{"facility_id": facilityID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSchedule - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSchedule - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	schedule := domain.NewFacilitySchedule(facilityID)
	for rows.Next() {
		var wh domain.WorkingHours
		var updatedAt sql.NullTime
		if err := rows.Scan(&wh.FacilityID, &wh.DayType, &wh.IsOpen, &wh.Open, &wh.Close, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: GetSchedule - scan working hours: %v", ErrScanRow, err)
		}
		wh.UpdatedAt = updatedAt.Time
		schedule.Days[wh.DayType] = &domain.DaySchedule{WorkingHours: wh}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetSchedule - rows error: %v", ErrScanRow, err)
	}

	if len(schedule.Days) == 0 {
		return schedule, nil
	}

	intervals, err := r.getIntervals(ctx, executor, squirrel.Eq{"facility_id": facilityID})
	if err != nil {
		return nil, err
	}
	for _, iv := range intervals {
		if day, ok := schedule.Days[iv.DayType]; ok {
			day.Intervals = append(day.Intervals, iv)
		}
	}

	return schedule, nil
}

// GetDay получает расписание одного типа дня
func (r *Repository) GetDay(ctx context.Context, facilityID int64, dayType domain.DayType) (*domain.DaySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"facility_id",
		"day_type",
		"is_open",
		"open_time::text",
		"close_time::text",
		"updated_at",
	).
		From("working_hours").
		Where(squirrel.Eq{"facility_id": facilityID, "day_type": dayType})

	// Правка расписания читает и перезаписывает день в одной транзакции
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDay - build select query: %v", ErrBuildQuery, err)
	}

	var wh domain.WorkingHours
	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&wh.FacilityID, &wh.DayType, &wh.IsOpen, &wh.Open, &wh.Close, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDay - scan working hours: %w", ErrScanRow, err)
	}
	wh.UpdatedAt = updatedAt.Time

	intervals, err := r.getIntervals(ctx, executor, squirrel.Eq{"facility_id": facilityID, "day_type": dayType})
	if err != nil {
		return nil, err
	}

	return &domain.DaySchedule{WorkingHours: wh, Intervals: intervals}, nil
}

// SaveDay сохраняет часы работы и заменяет ценовые интервалы типа дня.
// Выполняется только в транзакции, чтобы читатели не увидели частично записанную сетку.
func (r *Repository) SaveDay(ctx context.Context, day *domain.DaySchedule) error {
	tx, ok := dbmetrics.TxFromContext(ctx)
	if !ok {
		return fmt.Errorf("%w: SaveDay - requires a transaction", ErrTransaction)
	}

	wh := day.WorkingHours

	// 1. Upsert часов работы
	query, args, err := psqlbuilder.Insert("working_hours").
		Columns("facility_id", "day_type", "is_open", "open_time", "close_time").
		Values(wh.FacilityID, wh.DayType, wh.IsOpen, wh.Open, wh.Close).
		Suffix(`ON CONFLICT (facility_id, day_type) DO UPDATE SET
			is_open = EXCLUDED.is_open,
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			updated_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveDay - build upsert query: %v", ErrBuildQuery, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveDay - upsert working hours: %w", ErrExecQuery, err)
	}

	// 2. Удаляем старую сетку
	query, args, err = psqlbuilder.Delete("pricing_intervals").
		Where(squirrel.Eq{"facility_id": wh.FacilityID, "day_type": wh.DayType}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveDay - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveDay - delete intervals: %w", ErrExecQuery, err)
	}

	if len(day.Intervals) == 0 {
		return nil
	}

	// 3. Вставляем новую сетку одним запросом
	insert := psqlbuilder.Insert("pricing_intervals").
		Columns("facility_id", "day_type", "start_time", "end_time", "price_per_hour")
	for _, iv := range day.Intervals {
		insert = insert.Values(wh.FacilityID, wh.DayType, iv.Start, iv.End, iv.PricePerHour)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveDay - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveDay - insert intervals: %w", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) getIntervals(ctx context.Context, executor DBExecutor, where squirrel.Eq) ([]domain.PricingInterval, error) {
	query, args, err := psqlbuilder.Select(
		"facility_id",
		"day_type",
		"start_time::text",
		"end_time::text",
		"price_per_hour",
	).
		From("pricing_intervals").
		Where(where).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getIntervals - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getIntervals - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]domain.PricingInterval, 0)
	for rows.Next() {
		var iv domain.PricingInterval
		if err := rows.Scan(&iv.FacilityID, &iv.DayType, &iv.Start, &iv.End, &iv.PricePerHour); err != nil {
			return nil, fmt.Errorf("%w: getIntervals - scan interval: %v", ErrScanRow, err)
		}
		intervals = append(intervals, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getIntervals - rows error: %v", ErrScanRow, err)
	}

	return intervals, nil
}
