package database

import (
	"context"
	"database/sql"
	"fmt"

	"feeding_notification_bot/internal/domain/feedlog"

	_ "github.com/lib/pq" // PostgreSQL driver
)

type PostgresFeedLogRepository struct {
	db *sql.DB
}

func NewPostgresFeedLogRepository(db *sql.DB) *PostgresFeedLogRepository {
	return &PostgresFeedLogRepository{db: db}
}

func (r *PostgresFeedLogRepository) Create(ctx context.Context, e *feedlog.Entry) error {
	query := `INSERT INTO care_log_entries (owner_id, animal_id, food_id, log_type, description, amount_fed, unit)
               VALUES ($1, $2, $3, $4, $5, $6, $7)
               RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		e.OwnerID, e.AnimalID, e.FoodID, e.Type, e.Description, e.AmountFed, e.Unit,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating care log entry: %w", err)
	}
	return nil
}

func (r *PostgresFeedLogRepository) ListByAnimal(ctx context.Context, animalID int64) ([]*feedlog.Entry, error) {
	query := `SELECT id, owner_id, animal_id, food_id, log_type, description, amount_fed, unit, created_at
               FROM care_log_entries WHERE animal_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, animalID)
	if err != nil {
		return nil, fmt.Errorf("error listing care log entries by animal: %w", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

func (r *PostgresFeedLogRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*feedlog.Entry, error) {
	query := `SELECT id, owner_id, animal_id, food_id, log_type, description, amount_fed, unit, created_at
               FROM care_log_entries WHERE owner_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing care log entries by owner: %w", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

func collectEntries(rows *sql.Rows) ([]*feedlog.Entry, error) {
	entries := make([]*feedlog.Entry, 0)
	for rows.Next() {
		e := &feedlog.Entry{}
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.AnimalID, &e.FoodID, &e.Type, &e.Description, &e.AmountFed, &e.Unit, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning care log entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating care log entries: %w", err)
	}
	return entries, nil
}
