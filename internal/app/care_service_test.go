package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"feeding_notification_bot/internal/domain/animal"
	"feeding_notification_bot/internal/domain/feedlog"
	"feeding_notification_bot/internal/domain/food"
	"feeding_notification_bot/internal/domain/schedule"
)

type careFixture struct {
	animals   *fakeAnimalRepo
	foods     *fakeFoodRepo
	logs      *fakeFeedLogRepo
	schedules *fakeScheduleRepo
	svc       *CareService
}

func newCareFixture() *careFixture {
	f := &careFixture{
		animals:   newFakeAnimalRepo(),
		foods:     newFakeFoodRepo(),
		logs:      &fakeFeedLogRepo{},
		schedules: newFakeScheduleRepo(),
	}
	f.svc = NewCareService(f.animals, f.foods, f.logs, f.schedules, discardLogger())
	return f
}

func (f *careFixture) addFood(ownerID int64, name string, amount float64, unit food.Unit) *food.Food {
	stock := &food.Food{OwnerID: ownerID, Name: name, Amount: amount, Unit: unit}
	_ = f.foods.Create(context.Background(), stock)
	return stock
}

func TestRecordFeeding(t *testing.T) {
	f := newCareFixture()
	billy := f.animals.add(&animal.Animal{OwnerID: 1, Name: "Billy", Species: "goat"})
	kibble := f.addFood(1, "kibble", 10, food.UnitPound)

	entry, err := f.svc.RecordFeeding(context.Background(), 1, billy.ID, kibble.ID, 2.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := f.foods.byID[kibble.ID].Amount; got != 7.5 {
		t.Fatalf("stock after feeding = %v, want 7.5", got)
	}
	if !f.animals.byID[billy.ID].LastFed.Valid {
		t.Fatal("LastFed was not stamped")
	}
	if entry.Type != feedlog.TypeFeeding {
		t.Fatalf("entry type = %q, want feeding", entry.Type)
	}
	if !entry.AmountFed.Valid || entry.AmountFed.Float64 != 2.5 {
		t.Fatalf("entry amount = %+v, want 2.5", entry.AmountFed)
	}
	if len(f.logs.entries) != 1 {
		t.Fatalf("logged %d entries, want 1", len(f.logs.entries))
	}
}

func TestRecordFeeding_InsufficientStock(t *testing.T) {
	f := newCareFixture()
	billy := f.animals.add(&animal.Animal{OwnerID: 1, Name: "Billy", Species: "goat"})
	kibble := f.addFood(1, "kibble", 1, food.UnitPound)

	_, err := f.svc.RecordFeeding(context.Background(), 1, billy.ID, kibble.ID, 2)
	if !errors.Is(err, ErrInsufficientFood) {
		t.Fatalf("error = %v, want ErrInsufficientFood", err)
	}
	if got := f.foods.byID[kibble.ID].Amount; got != 1 {
		t.Fatalf("stock = %v, must be untouched after a rejected feeding", got)
	}
	if len(f.logs.entries) != 0 {
		t.Fatal("no entry must be logged for a rejected feeding")
	}
}

func TestRecordFeeding_WrongOwner(t *testing.T) {
	f := newCareFixture()
	billy := f.animals.add(&animal.Animal{OwnerID: 1, Name: "Billy", Species: "goat"})
	kibble := f.addFood(2, "kibble", 10, food.UnitPound) // someone else's stock

	if _, err := f.svc.RecordFeeding(context.Background(), 2, billy.ID, kibble.ID, 1); !errors.Is(err, ErrNotOwned) {
		t.Fatalf("feeding another owner's animal: error = %v, want ErrNotOwned", err)
	}
	if _, err := f.svc.RecordFeeding(context.Background(), 1, billy.ID, kibble.ID, 1); !errors.Is(err, ErrNotOwned) {
		t.Fatalf("feeding from another owner's stock: error = %v, want ErrNotOwned", err)
	}
}

func TestRecordFeeding_InvalidAmount(t *testing.T) {
	f := newCareFixture()
	billy := f.animals.add(&animal.Animal{OwnerID: 1, Name: "Billy", Species: "goat"})
	kibble := f.addFood(1, "kibble", 10, food.UnitPound)

	for _, amount := range []float64{0, -1} {
		if _, err := f.svc.RecordFeeding(context.Background(), 1, billy.ID, kibble.ID, amount); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("amount %v: error = %v, want ErrInvalidAmount", amount, err)
		}
	}
}

func TestAddFood_InvalidUnit(t *testing.T) {
	f := newCareFixture()
	if _, err := f.svc.AddFood(context.Background(), 1, "mystery", 5, food.Unit("bushel")); !errors.Is(err, ErrInvalidUnit) {
		t.Fatalf("error = %v, want ErrInvalidUnit", err)
	}
	if _, err := f.svc.AddFood(context.Background(), 1, "kibble", -1, food.UnitPound); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("error = %v, want ErrInvalidAmount", err)
	}
}

func TestRecordWeight(t *testing.T) {
	f := newCareFixture()
	billy := f.animals.add(&animal.Animal{OwnerID: 1, Name: "Billy", Species: "goat"})

	if err := f.svc.RecordWeight(context.Background(), 1, billy.ID, 12, 6); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored := f.animals.byID[billy.ID]
	if stored.WeightLb != 12 || stored.WeightOz != 6 {
		t.Fatalf("weight = %d lb %d oz, want 12 lb 6 oz", stored.WeightLb, stored.WeightOz)
	}
	if len(f.logs.entries) != 1 || f.logs.entries[0].Type != feedlog.TypeWeightUpdate {
		t.Fatal("expected one weight_update log entry")
	}
}

func TestRemoveAnimal_CascadesSchedules(t *testing.T) {
	f := newCareFixture()
	billy := f.animals.add(&animal.Animal{OwnerID: 1, Name: "Billy", Species: "goat"})
	clover := f.animals.add(&animal.Animal{OwnerID: 1, Name: "Clover", Species: "goat"})

	f.schedules.add(&schedule.FeedingSchedule{AnimalID: billy.ID, Frequency: schedule.FrequencyEveryXHours, HoursInterval: 6, NextDue: time.Now()})
	f.schedules.add(&schedule.FeedingSchedule{AnimalID: billy.ID, Frequency: schedule.FrequencyEveryXHours, HoursInterval: 12, NextDue: time.Now()})
	keep := f.schedules.add(&schedule.FeedingSchedule{AnimalID: clover.ID, Frequency: schedule.FrequencyEveryXHours, HoursInterval: 6, NextDue: time.Now()})

	if err := f.svc.RemoveAnimal(context.Background(), 1, billy.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := f.animals.byID[billy.ID]; ok {
		t.Fatal("animal was not deleted")
	}
	if len(f.schedules.byID) != 1 {
		t.Fatalf("%d schedules remain, want only Clover's", len(f.schedules.byID))
	}
	if _, ok := f.schedules.byID[keep.ID]; !ok {
		t.Fatal("another animal's schedule was deleted")
	}
}

func TestRemoveAnimal_WrongOwner(t *testing.T) {
	f := newCareFixture()
	billy := f.animals.add(&animal.Animal{OwnerID: 1, Name: "Billy", Species: "goat"})

	if err := f.svc.RemoveAnimal(context.Background(), 2, billy.ID); !errors.Is(err, ErrNotOwned) {
		t.Fatalf("error = %v, want ErrNotOwned", err)
	}
	if _, ok := f.animals.byID[billy.ID]; !ok {
		t.Fatal("animal must survive a rejected removal")
	}
}
