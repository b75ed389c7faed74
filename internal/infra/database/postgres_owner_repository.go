package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"feeding_notification_bot/internal/domain/owner"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Custom errors
var ErrOwnerNotFound = fmt.Errorf("owner not found")
var ErrDuplicateTelegramID = fmt.Errorf("owner with this Telegram ID already exists")

type PostgresOwnerRepository struct {
	db *sql.DB
}

func NewPostgresOwnerRepository(db *sql.DB) *PostgresOwnerRepository {
	return &PostgresOwnerRepository{db: db}
}

func (r *PostgresOwnerRepository) Create(ctx context.Context, o *owner.Owner) error {
	query := `INSERT INTO owners (name, telegram_id, is_active)
               VALUES ($1, $2, $3)
               RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, o.Name, o.TelegramID, o.IsActive).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "unique constraint") && strings.Contains(err.Error(), "owners_telegram_id_key") {
			return ErrDuplicateTelegramID
		}
		return fmt.Errorf("error creating owner: %w", err)
	}
	return nil
}

func (r *PostgresOwnerRepository) GetByID(ctx context.Context, id int64) (*owner.Owner, error) {
	query := `SELECT id, name, telegram_id, is_active, created_at, updated_at
               FROM owners WHERE id = $1`
	o := &owner.Owner{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.Name, &o.TelegramID, &o.IsActive, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOwnerNotFound
		}
		return nil, fmt.Errorf("error getting owner by ID: %w", err)
	}
	return o, nil
}

func (r *PostgresOwnerRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*owner.Owner, error) {
	query := `SELECT id, name, telegram_id, is_active, created_at, updated_at
               FROM owners WHERE telegram_id = $1`
	o := &owner.Owner{}
	err := r.db.QueryRowContext(ctx, query, telegramID).Scan(&o.ID, &o.Name, &o.TelegramID, &o.IsActive, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOwnerNotFound
		}
		return nil, fmt.Errorf("error getting owner by Telegram ID: %w", err)
	}
	return o, nil
}

func (r *PostgresOwnerRepository) Update(ctx context.Context, o *owner.Owner) error {
	query := `UPDATE owners
               SET name = $1, telegram_id = $2, is_active = $3, updated_at = NOW()
               WHERE id = $4
               RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query, o.Name, o.TelegramID, o.IsActive, o.ID).Scan(&o.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrOwnerNotFound
		}
		return fmt.Errorf("error updating owner: %w", err)
	}
	return nil
}

func (r *PostgresOwnerRepository) ListActive(ctx context.Context) ([]*owner.Owner, error) {
	query := `SELECT id, name, telegram_id, is_active, created_at, updated_at
               FROM owners WHERE is_active = TRUE ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing active owners: %w", err)
	}
	defer rows.Close()

	owners := make([]*owner.Owner, 0)
	for rows.Next() {
		o := &owner.Owner{}
		if err := rows.Scan(&o.ID, &o.Name, &o.TelegramID, &o.IsActive, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning active owner: %w", err)
		}
		owners = append(owners, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating active owners: %w", err)
	}
	return owners, nil
}
