package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"feeding_notification_bot/internal/domain/animal"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Custom errors
var ErrAnimalNotFound = fmt.Errorf("animal not found")

type PostgresAnimalRepository struct {
	db *sql.DB
}

func NewPostgresAnimalRepository(db *sql.DB) *PostgresAnimalRepository {
	return &PostgresAnimalRepository{db: db}
}

const animalColumns = `id, owner_id, name, species, age, weight_lb, weight_oz, last_fed, created_at, updated_at`

func (r *PostgresAnimalRepository) Create(ctx context.Context, a *animal.Animal) error {
	query := `INSERT INTO animals (owner_id, name, species, age, weight_lb, weight_oz)
               VALUES ($1, $2, $3, $4, $5, $6)
               RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, a.OwnerID, a.Name, a.Species, a.Age, a.WeightLb, a.WeightOz).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating animal: %w", err)
	}
	return nil
}

func (r *PostgresAnimalRepository) GetByID(ctx context.Context, id int64) (*animal.Animal, error) {
	query := `SELECT ` + animalColumns + ` FROM animals WHERE id = $1`
	a := &animal.Animal{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&a.ID, &a.OwnerID, &a.Name, &a.Species, &a.Age, &a.WeightLb, &a.WeightOz, &a.LastFed, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAnimalNotFound
		}
		return nil, fmt.Errorf("error getting animal by ID: %w", err)
	}
	return a, nil
}

func (r *PostgresAnimalRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*animal.Animal, error) {
	query := `SELECT ` + animalColumns + ` FROM animals WHERE owner_id = $1 ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing animals by owner: %w", err)
	}
	defer rows.Close()

	animals := make([]*animal.Animal, 0)
	for rows.Next() {
		a := &animal.Animal{}
		if err := rows.Scan(&a.ID, &a.OwnerID, &a.Name, &a.Species, &a.Age, &a.WeightLb, &a.WeightOz, &a.LastFed, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning animal: %w", err)
		}
		animals = append(animals, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating animals: %w", err)
	}
	return animals, nil
}

func (r *PostgresAnimalRepository) Update(ctx context.Context, a *animal.Animal) error {
	query := `UPDATE animals
               SET name = $1, species = $2, age = $3, weight_lb = $4, weight_oz = $5, updated_at = NOW()
               WHERE id = $6
               RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query, a.Name, a.Species, a.Age, a.WeightLb, a.WeightOz, a.ID).Scan(&a.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrAnimalNotFound
		}
		return fmt.Errorf("error updating animal: %w", err)
	}
	return nil
}

func (r *PostgresAnimalRepository) SetLastFed(ctx context.Context, id int64, fedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE animals SET last_fed = $1, updated_at = NOW() WHERE id = $2`, fedAt, id)
	if err != nil {
		return fmt.Errorf("error setting last fed: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrAnimalNotFound
	}
	return nil
}

func (r *PostgresAnimalRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM animals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting animal: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrAnimalNotFound
	}
	return nil
}
