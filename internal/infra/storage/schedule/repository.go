package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/igestaos-eng/barbearia-inicio/internal/domain"
	"github.com/igestaos-eng/barbearia-inicio/pkg/dbmetrics"
	"github.com/igestaos-eng/barbearia-inicio/pkg/psqlbuilder"
)

// Repository репозиторий расписания барберов
// Расписание двухуровневое: недельный шаблон (working_hours) и
// точечные переопределения на дату (schedule_overrides)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListWindowsForDate возвращает рабочие окна барбера на дату
//
// Иерархия разрешения: сначала переопределения на конкретную дату,
// при их отсутствии недельный шаблон по дню недели
// Переопределение с is_available = false полностью закрывает день
func (r *Repository) ListWindowsForDate(ctx context.Context, barberID int64, date time.Time) ([]domain.WorkingWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if err := r.checkBarberExists(ctx, executor, barberID); err != nil {
		return nil, err
	}

	overrides, err := r.listOverrides(ctx, executor, barberID, date)
	if err != nil {
		return nil, err
	}

	if len(overrides) > 0 {
		windows := make([]domain.WorkingWindow, 0, len(overrides))
		for _, o := range overrides {
			windows = append(windows, o.Window())
		}
		return windows, nil
	}

	hours, err := r.listWeeklyForDay(ctx, executor, barberID, date.Weekday())
	if err != nil {
		return nil, err
	}

	windows := make([]domain.WorkingWindow, 0, len(hours))
	for _, h := range hours {
		windows = append(windows, h.Window())
	}

	return windows, nil
}

// GetWeekly возвращает полный недельный шаблон барбера
func (r *Repository) GetWeekly(ctx context.Context, barberID int64) ([]domain.WorkingHour, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if err := r.checkBarberExists(ctx, executor, barberID); err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Select(
		"id",
		"barber_id",
		"day_of_week",
		"start_time",
		"end_time",
		"is_working_day",
	).
		From("working_hours").
		Where(squirrel.Eq{"barber_id": barberID}).
		OrderBy("day_of_week ASC", "start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeekly - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeekly - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make([]domain.WorkingHour, 0)
	for rows.Next() {
		var h domain.WorkingHour
		var dayOfWeek int

		err := rows.Scan(
			&h.ID,
			&h.BarberID,
			&dayOfWeek,
			&h.StartTime,
			&h.EndTime,
			&h.IsWorkingDay,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWeekly - scan row: %v", ErrScanRow, err)
		}

		h.DayOfWeek = time.Weekday(dayOfWeek)
		hours = append(hours, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeekly - rows error: %v", ErrScanRow, err)
	}

	return hours, nil
}

// ReplaceWeekly атомарно заменяет недельный шаблон барбера
// Должен вызываться внутри транзакции: удаление и вставка идут одной операцией
func (r *Repository) ReplaceWeekly(ctx context.Context, barberID int64, hours []domain.WorkingHour) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if err := r.checkBarberExists(ctx, executor, barberID); err != nil {
		return err
	}

	for _, h := range hours {
		if h.IsWorkingDay && !h.Window().IsValid() {
			return fmt.Errorf("%w: ReplaceWeekly - day %d: start %s is not before end %s",
				ErrInvalidWindow, h.DayOfWeek, h.StartTime, h.EndTime)
		}
	}

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("working_hours").
		Where(squirrel.Eq{"barber_id": barberID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceWeekly - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWeekly - execute delete: %v", ErrExecQuery, err)
	}

	if len(hours) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("working_hours").
		Columns("barber_id", "day_of_week", "start_time", "end_time", "is_working_day")

	for _, h := range hours {
		insertBuilder = insertBuilder.Values(
			barberID,
			int(h.DayOfWeek),
			h.StartTime,
			h.EndTime,
			h.IsWorkingDay,
		)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeekly - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWeekly - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// UpsertOverride добавляет или обновляет переопределение расписания на дату
func (r *Repository) UpsertOverride(ctx context.Context, override domain.ScheduleOverride) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if err := r.checkBarberExists(ctx, executor, override.BarberID); err != nil {
		return err
	}

	if override.IsAvailable && !override.Window().IsValid() {
		return fmt.Errorf("%w: UpsertOverride - start %s is not before end %s",
			ErrInvalidWindow, override.StartTime, override.EndTime)
	}

	query, args, err := psqlbuilder.Insert("schedule_overrides").
		Columns("barber_id", "override_date", "start_time", "end_time", "is_available").
		Values(
			override.BarberID,
			override.Date.Format(domain.DateFormat),
			override.StartTime,
			override.EndTime,
			override.IsAvailable,
		).
		Suffix("ON CONFLICT (barber_id, override_date, start_time) DO UPDATE SET end_time = EXCLUDED.end_time, is_available = EXCLUDED.is_available").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertOverride - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertOverride - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteOverrides удаляет все переопределения барбера на дату
func (r *Repository) DeleteOverrides(ctx context.Context, barberID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_overrides").
		Where(squirrel.Eq{"barber_id": barberID}).
		Where(squirrel.Eq{"override_date": date.Format(domain.DateFormat)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteOverrides - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteOverrides - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) listOverrides(ctx context.Context, executor DBExecutor, barberID int64, date time.Time) ([]domain.ScheduleOverride, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"barber_id",
		"override_date",
		"start_time",
		"end_time",
		"is_available",
	).
		From("schedule_overrides").
		Where(squirrel.Eq{"barber_id": barberID}).
		Where(squirrel.Eq{"override_date": date.Format(domain.DateFormat)}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: listOverrides - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listOverrides - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]domain.ScheduleOverride, 0)
	for rows.Next() {
		var o domain.ScheduleOverride

		err := rows.Scan(
			&o.ID,
			&o.BarberID,
			&o.Date,
			&o.StartTime,
			&o.EndTime,
			&o.IsAvailable,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: listOverrides - scan row: %v", ErrScanRow, err)
		}

		overrides = append(overrides, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listOverrides - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

func (r *Repository) listWeeklyForDay(ctx context.Context, executor DBExecutor, barberID int64, day time.Weekday) ([]domain.WorkingHour, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"barber_id",
		"day_of_week",
		"start_time",
		"end_time",
		"is_working_day",
	).
		From("working_hours").
		Where(squirrel.Eq{"barber_id": barberID}).
		Where(squirrel.Eq{"day_of_week": int(day)}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: listWeeklyForDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listWeeklyForDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make([]domain.WorkingHour, 0)
	for rows.Next() {
		var h domain.WorkingHour
		var dayOfWeek int

		err := rows.Scan(
			&h.ID,
			&h.BarberID,
			&dayOfWeek,
			&h.StartTime,
			&h.EndTime,
			&h.IsWorkingDay,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: listWeeklyForDay - scan row: %v", ErrScanRow, err)
		}

		h.DayOfWeek = time.Weekday(dayOfWeek)
		hours = append(hours, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listWeeklyForDay - rows error: %v", ErrScanRow, err)
	}

	return hours, nil
}

func (r *Repository) checkBarberExists(ctx context.Context, executor DBExecutor, barberID int64) error {
	query, args, err := psqlbuilder.Select("1").
		From("barbers").
		Where(squirrel.Eq{"id": barberID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: checkBarberExists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrBarberNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: checkBarberExists - execute query: %v", ErrExecQuery, err)
	}

	return nil
}
