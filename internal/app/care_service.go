package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"feeding_notification_bot/internal/domain/animal"
	"feeding_notification_bot/internal/domain/feedlog"
	"feeding_notification_bot/internal/domain/food"
	"feeding_notification_bot/internal/domain/schedule"

	"github.com/sirupsen/logrus"
)

// Custom application-level errors for the care service
var ErrNotOwned = fmt.Errorf("record does not belong to this owner")
var ErrInsufficientFood = fmt.Errorf("not enough food in stock for this feeding")
var ErrInvalidAmount = fmt.Errorf("amount must be positive")
var ErrInvalidUnit = fmt.Errorf("unknown food unit")

// CareService covers the record-keeping side: animals, food stocks and the
// care log. The feeding engine only reads what this service writes.
type CareService struct {
	animalRepo   animal.Repository
	foodRepo     food.Repository
	logRepo      feedlog.Repository
	scheduleRepo schedule.Repository
	logger       *logrus.Entry
}

func NewCareService(
	ar animal.Repository,
	fr food.Repository,
	lr feedlog.Repository,
	sr schedule.Repository,
	logger *logrus.Entry,
) *CareService {
	return &CareService{
		animalRepo:   ar,
		foodRepo:     fr,
		logRepo:      lr,
		scheduleRepo: sr,
		logger:       logger,
	}
}

// RegisterAnimal adds a new animal to an owner's inventory.
func (s *CareService) RegisterAnimal(ctx context.Context, ownerID int64, name, species string, age int) (*animal.Animal, error) {
	if name == "" || species == "" {
		return nil, fmt.Errorf("animal name and species are required")
	}
	a := &animal.Animal{
		OwnerID: ownerID,
		Name:    name,
		Species: species,
		Age:     age,
	}
	if err := s.animalRepo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create animal: %w", err)
	}
	return a, nil
}

// AddFood adds a new food stock for an owner.
func (s *CareService) AddFood(ctx context.Context, ownerID int64, name string, amount float64, unit food.Unit) (*food.Food, error) {
	if amount < 0 {
		return nil, ErrInvalidAmount
	}
	if !unit.IsValid() {
		return nil, ErrInvalidUnit
	}
	f := &food.Food{
		OwnerID: ownerID,
		Name:    name,
		Amount:  amount,
		Unit:    unit,
	}
	if err := s.foodRepo.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("create food: %w", err)
	}
	return f, nil
}

// RecordFeeding records that an animal was fed a given amount of a food
// stock: the stock is decremented, the animal's LastFed is stamped, and a
// feeding entry is appended to the care log. The amount is in the stock's
// own unit; no conversion is performed.
func (s *CareService) RecordFeeding(ctx context.Context, ownerID, animalID, foodID int64, amount float64) (*feedlog.Entry, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	a, err := s.animalRepo.GetByID(ctx, animalID)
	if err != nil {
		return nil, fmt.Errorf("get animal %d: %w", animalID, err)
	}
	if a.OwnerID != ownerID {
		return nil, ErrNotOwned
	}

	f, err := s.foodRepo.GetByID(ctx, foodID)
	if err != nil {
		return nil, fmt.Errorf("get food %d: %w", foodID, err)
	}
	if f.OwnerID != ownerID {
		return nil, ErrNotOwned
	}
	if f.Amount < amount {
		return nil, ErrInsufficientFood
	}

	f.Amount -= amount
	if err := s.foodRepo.Update(ctx, f); err != nil {
		return nil, fmt.Errorf("decrement food stock: %w", err)
	}

	now := time.Now()
	if err := s.animalRepo.SetLastFed(ctx, a.ID, now); err != nil {
		// The stock already moved; keep going so the log still reflects
		// the feeding, but surface the inconsistency.
		s.logger.WithError(err).WithField("animal_id", a.ID).Error("Failed to stamp LastFed after feeding")
	}

	entry := &feedlog.Entry{
		OwnerID:     ownerID,
		AnimalID:    a.ID,
		FoodID:      sql.NullInt64{Int64: f.ID, Valid: true},
		Type:        feedlog.TypeFeeding,
		Description: fmt.Sprintf("Fed %s %.2f %s of %s", a.Name, amount, f.Unit, f.Name),
		AmountFed:   sql.NullFloat64{Float64: amount, Valid: true},
		Unit:        string(f.Unit),
	}
	if err := s.logRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create feeding log entry: %w", err)
	}
	return entry, nil
}

// RecordWeight updates an animal's weight and logs the change.
func (s *CareService) RecordWeight(ctx context.Context, ownerID, animalID int64, weightLb, weightOz int) error {
	if weightLb < 0 || weightOz < 0 {
		return ErrInvalidAmount
	}
	a, err := s.animalRepo.GetByID(ctx, animalID)
	if err != nil {
		return fmt.Errorf("get animal %d: %w", animalID, err)
	}
	if a.OwnerID != ownerID {
		return ErrNotOwned
	}

	a.WeightLb = weightLb
	a.WeightOz = weightOz
	if err := s.animalRepo.Update(ctx, a); err != nil {
		return fmt.Errorf("update animal weight: %w", err)
	}

	entry := &feedlog.Entry{
		OwnerID:     ownerID,
		AnimalID:    a.ID,
		Type:        feedlog.TypeWeightUpdate,
		Description: fmt.Sprintf("%s now weighs %d lb %d oz", a.Name, weightLb, weightOz),
	}
	if err := s.logRepo.Create(ctx, entry); err != nil {
		return fmt.Errorf("create weight log entry: %w", err)
	}
	return nil
}

// RemoveAnimal deletes an animal together with its feeding schedules, so
// no orphaned schedule keeps firing for an animal that is gone.
func (s *CareService) RemoveAnimal(ctx context.Context, ownerID, animalID int64) error {
	a, err := s.animalRepo.GetByID(ctx, animalID)
	if err != nil {
		return fmt.Errorf("get animal %d: %w", animalID, err)
	}
	if a.OwnerID != ownerID {
		return ErrNotOwned
	}

	schedules, err := s.scheduleRepo.ListByAnimal(ctx, animalID)
	if err != nil {
		return fmt.Errorf("list schedules for animal %d: %w", animalID, err)
	}
	for _, sched := range schedules {
		if err := s.scheduleRepo.Delete(ctx, sched.ID); err != nil {
			return fmt.Errorf("delete schedule %d: %w", sched.ID, err)
		}
	}
	if err := s.animalRepo.Delete(ctx, animalID); err != nil {
		return fmt.Errorf("delete animal %d: %w", animalID, err)
	}
	s.logger.WithFields(logrus.Fields{"animal_id": animalID, "schedules_removed": len(schedules)}).
		Info("Animal and its feeding schedules removed")
	return nil
}
