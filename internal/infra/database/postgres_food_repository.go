package database

import (
	"context"
	"database/sql"
	"fmt"

	"feeding_notification_bot/internal/domain/food"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Custom errors
var ErrFoodNotFound = fmt.Errorf("food not found")

type PostgresFoodRepository struct {
	db *sql.DB
}

func NewPostgresFoodRepository(db *sql.DB) *PostgresFoodRepository {
	return &PostgresFoodRepository{db: db}
}

func (r *PostgresFoodRepository) Create(ctx context.Context, f *food.Food) error {
	query := `INSERT INTO foods (owner_id, name, amount, unit)
               VALUES ($1, $2, $3, $4)
               RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, f.OwnerID, f.Name, f.Amount, f.Unit).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating food: %w", err)
	}
	return nil
}

func (r *PostgresFoodRepository) GetByID(ctx context.Context, id int64) (*food.Food, error) {
	query := `SELECT id, owner_id, name, amount, unit, created_at, updated_at
               FROM foods WHERE id = $1`
	f := &food.Food{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&f.ID, &f.OwnerID, &f.Name, &f.Amount, &f.Unit, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrFoodNotFound
		}
		return nil, fmt.Errorf("error getting food by ID: %w", err)
	}
	return f, nil
}

func (r *PostgresFoodRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*food.Food, error) {
	query := `SELECT id, owner_id, name, amount, unit, created_at, updated_at
               FROM foods WHERE owner_id = $1 ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing foods by owner: %w", err)
	}
	defer rows.Close()

	foods := make([]*food.Food, 0)
	for rows.Next() {
		f := &food.Food{}
		if err := rows.Scan(&f.ID, &f.OwnerID, &f.Name, &f.Amount, &f.Unit, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning food: %w", err)
		}
		foods = append(foods, f)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating foods: %w", err)
	}
	return foods, nil
}

func (r *PostgresFoodRepository) Update(ctx context.Context, f *food.Food) error {
	query := `UPDATE foods
               SET name = $1, amount = $2, unit = $3, updated_at = NOW()
               WHERE id = $4
               RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query, f.Name, f.Amount, f.Unit, f.ID).Scan(&f.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrFoodNotFound
		}
		return fmt.Errorf("error updating food: %w", err)
	}
	return nil
}

func (r *PostgresFoodRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM foods WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting food: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrFoodNotFound
	}
	return nil
}
