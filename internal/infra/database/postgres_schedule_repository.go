package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"feeding_notification_bot/internal/domain/schedule"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Custom errors
var ErrScheduleNotFound = fmt.Errorf("feeding schedule not found")

type PostgresScheduleRepository struct {
	db *sql.DB
}

func NewPostgresScheduleRepository(db *sql.DB) *PostgresScheduleRepository {
	return &PostgresScheduleRepository{db: db}
}

const scheduleColumns = `id, animal_id, frequency, time_of_day, day_of_week, hours_interval, next_due, created_at, updated_at`

func (r *PostgresScheduleRepository) Create(ctx context.Context, s *schedule.FeedingSchedule) error {
	query := `INSERT INTO feeding_schedules (animal_id, frequency, time_of_day, day_of_week, hours_interval, next_due)
               VALUES ($1, $2, $3, $4, $5, $6)
               RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		s.AnimalID, s.Frequency, timeOfDayArg(s.TimeOfDay), weekdayArg(s.DayOfWeek), intervalArg(s.HoursInterval), s.NextDue,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating feeding schedule: %w", err)
	}
	return nil
}

func (r *PostgresScheduleRepository) GetByID(ctx context.Context, id int64) (*schedule.FeedingSchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM feeding_schedules WHERE id = $1`
	s, err := scanSchedule(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrScheduleNotFound
		}
		return nil, fmt.Errorf("error getting feeding schedule by ID: %w", err)
	}
	return s, nil
}

func (r *PostgresScheduleRepository) Update(ctx context.Context, s *schedule.FeedingSchedule) error {
	query := `UPDATE feeding_schedules
               SET frequency = $1, time_of_day = $2, day_of_week = $3, hours_interval = $4, next_due = $5, updated_at = NOW()
               WHERE id = $6
               RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		s.Frequency, timeOfDayArg(s.TimeOfDay), weekdayArg(s.DayOfWeek), intervalArg(s.HoursInterval), s.NextDue, s.ID,
	).Scan(&s.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrScheduleNotFound
		}
		return fmt.Errorf("error updating feeding schedule: %w", err)
	}
	return nil
}

func (r *PostgresScheduleRepository) ListDue(ctx context.Context, now time.Time) ([]*schedule.FeedingSchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM feeding_schedules WHERE next_due <= $1 ORDER BY next_due`

	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("error listing due feeding schedules: %w", err)
	}
	defer rows.Close()
	return collectSchedules(rows)
}

func (r *PostgresScheduleRepository) ListByAnimal(ctx context.Context, animalID int64) ([]*schedule.FeedingSchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM feeding_schedules WHERE animal_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, animalID)
	if err != nil {
		return nil, fmt.Errorf("error listing feeding schedules by animal: %w", err)
	}
	defer rows.Close()
	return collectSchedules(rows)
}

func (r *PostgresScheduleRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM feeding_schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting feeding schedule: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrScheduleNotFound
	}
	return nil
}

// --- scan helpers ---

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSchedule(row rowScanner) (*schedule.FeedingSchedule, error) {
	s := &schedule.FeedingSchedule{}
	var (
		tod      sql.NullString
		dow      sql.NullString
		interval sql.NullInt64
	)
	if err := row.Scan(&s.ID, &s.AnimalID, &s.Frequency, &tod, &dow, &interval, &s.NextDue, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if tod.Valid {
		parsed, err := schedule.ParseTimeOfDay(tod.String)
		if err != nil {
			return nil, fmt.Errorf("schedule %d: %w", s.ID, err)
		}
		s.TimeOfDay = &parsed
	}
	if dow.Valid {
		w := schedule.Weekday(dow.String)
		s.DayOfWeek = &w
	}
	if interval.Valid {
		s.HoursInterval = int(interval.Int64)
	}
	return s, nil
}

func collectSchedules(rows *sql.Rows) ([]*schedule.FeedingSchedule, error) {
	schedules := make([]*schedule.FeedingSchedule, 0)
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning feeding schedule: %w", err)
		}
		schedules = append(schedules, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feeding schedules: %w", err)
	}
	return schedules, nil
}

func timeOfDayArg(t *schedule.TimeOfDay) interface{} {
	if t == nil {
		return nil
	}
	return *t
}

func weekdayArg(w *schedule.Weekday) interface{} {
	if w == nil {
		return nil
	}
	return string(*w)
}

func intervalArg(hours int) interface{} {
	if hours <= 0 {
		return nil
	}
	return hours
}
