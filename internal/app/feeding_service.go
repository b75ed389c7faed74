package app

import (
	"context"
	"fmt"
	"time"

	"feeding_notification_bot/internal/domain/animal"
	"feeding_notification_bot/internal/domain/notification"
	"feeding_notification_bot/internal/domain/owner"
	"feeding_notification_bot/internal/domain/schedule"
	domainTelegram "feeding_notification_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
)

// FeedingService defines the operations of the feeding-schedule engine.
type FeedingService interface {
	// ProcessDueSchedules runs one scan: every schedule due at or before
	// now gets one notification and a recomputed NextDue. This is the
	// poller's tick body.
	ProcessDueSchedules(ctx context.Context, now time.Time) (TickSummary, error)
	// CreateSchedule validates a new schedule and seeds its NextDue, so a
	// fresh schedule fires without waiting for an edit or a missed tick.
	CreateSchedule(ctx context.Context, params ScheduleParams) (*schedule.FeedingSchedule, error)
	// UpdateSchedule applies frequency-affecting edits and reseeds NextDue
	// the same way the engine's recomputation step would.
	UpdateSchedule(ctx context.Context, scheduleID int64, params ScheduleParams) (*schedule.FeedingSchedule, error)
}

// TickSummary reports what one scan did, for logging and tests.
type TickSummary struct {
	Due      int // schedules the store returned as due
	Notified int // notifications appended
	Advanced int // schedules whose NextDue was persisted
	Failed   int // schedules skipped this tick after a store/sink error
}

// ScheduleParams carries the user-editable fields of a feeding schedule.
type ScheduleParams struct {
	AnimalID      int64
	Frequency     schedule.Frequency
	TimeOfDay     *schedule.TimeOfDay
	DayOfWeek     *schedule.Weekday
	HoursInterval int
}

// FeedingServiceImpl implements FeedingService over the store repositories.
type FeedingServiceImpl struct {
	scheduleRepo   schedule.Repository
	animalRepo     animal.Repository
	ownerRepo      owner.Repository
	notifRepo      notification.Repository
	telegramClient domainTelegram.Client // nil means inbox-only delivery
	loc            *time.Location
	logger         *logrus.Entry
}

func NewFeedingService(
	sr schedule.Repository,
	ar animal.Repository,
	or owner.Repository,
	nr notification.Repository,
	tc domainTelegram.Client,
	loc *time.Location,
	logger *logrus.Entry,
) *FeedingServiceImpl {
	if loc == nil {
		loc = time.UTC
	}
	return &FeedingServiceImpl{
		scheduleRepo:   sr,
		animalRepo:     ar,
		ownerRepo:      or,
		notifRepo:      nr,
		telegramClient: tc,
		loc:            loc,
		logger:         logger,
	}
}

// ProcessDueSchedules fetches every due schedule and processes each one
// independently. A failure on one schedule is logged and skipped; its
// NextDue stays put so the next tick retries it. Only the initial store
// fetch can fail the scan as a whole.
func (s *FeedingServiceImpl) ProcessDueSchedules(ctx context.Context, now time.Time) (TickSummary, error) {
	var sum TickSummary

	due, err := s.scheduleRepo.ListDue(ctx, now)
	if err != nil {
		return sum, fmt.Errorf("list due schedules: %w", err)
	}
	sum.Due = len(due)

	// Each schedule fires at most once per tick, however far overdue it
	// is and whatever the store handed back.
	seen := make(map[int64]struct{}, len(due))
	for _, sched := range due {
		if _, dup := seen[sched.ID]; dup {
			continue
		}
		seen[sched.ID] = struct{}{}

		if err := s.processOne(ctx, sched, now, &sum); err != nil {
			sum.Failed++
			s.logger.WithError(err).WithField("schedule_id", sched.ID).
				Error("Failed to process due schedule; it will be retried on the next tick")
		}
	}
	return sum, nil
}

// processOne performs the notify-then-advance step for a single schedule.
// The notification append must land before NextDue moves: a crash between
// the two re-delivers the occurrence instead of silently dropping it.
func (s *FeedingServiceImpl) processOne(ctx context.Context, sched *schedule.FeedingSchedule, now time.Time, sum *TickSummary) error {
	a, err := s.animalRepo.GetByID(ctx, sched.AnimalID)
	if err != nil {
		return fmt.Errorf("resolve animal %d: %w", sched.AnimalID, err)
	}

	n := &notification.Notification{
		OwnerID: a.OwnerID,
		Message: fmt.Sprintf("It's time to feed %s", a.Name),
	}
	if err := s.notifRepo.Create(ctx, n); err != nil {
		return fmt.Errorf("append notification: %w", err)
	}
	sum.Notified++

	s.pushToTelegram(ctx, a.OwnerID, n.Message)

	next, cfgErr := schedule.ComputeNext(*sched, now, s.loc)
	if cfgErr != nil {
		s.logger.WithError(cfgErr).WithField("schedule_id", sched.ID).
			Warn("Schedule misconfigured; falling back to a 24h interval")
	}
	sched.NextDue = next
	if err := s.scheduleRepo.Update(ctx, sched); err != nil {
		return fmt.Errorf("advance next due: %w", err)
	}
	sum.Advanced++
	return nil
}

// pushToTelegram is best-effort: the inbox row is the delivery of record,
// a push failure must never fail the occurrence.
func (s *FeedingServiceImpl) pushToTelegram(ctx context.Context, ownerID int64, message string) {
	if s.telegramClient == nil {
		return
	}
	o, err := s.ownerRepo.GetByID(ctx, ownerID)
	if err != nil {
		s.logger.WithError(err).WithField("owner_id", ownerID).Warn("Could not resolve owner for Telegram push")
		return
	}
	if !o.TelegramID.Valid {
		return
	}
	if err := s.telegramClient.SendMessage(ctx, o.TelegramID.Int64, message, nil); err != nil {
		s.logger.WithError(err).WithField("owner_id", ownerID).Warn("Telegram push failed; notification remains in inbox")
	}
}

func (s *FeedingServiceImpl) CreateSchedule(ctx context.Context, params ScheduleParams) (*schedule.FeedingSchedule, error) {
	now := time.Now().In(s.loc)

	sched := &schedule.FeedingSchedule{
		AnimalID:      params.AnimalID,
		Frequency:     params.Frequency,
		TimeOfDay:     params.TimeOfDay,
		DayOfWeek:     params.DayOfWeek,
		HoursInterval: params.HoursInterval,
		NextDue:       now, // interval schedules anchor their grid here
	}
	if err := sched.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.animalRepo.GetByID(ctx, params.AnimalID); err != nil {
		return nil, fmt.Errorf("resolve animal %d: %w", params.AnimalID, err)
	}

	next, cfgErr := schedule.ComputeNext(*sched, now, s.loc)
	if cfgErr != nil { // Validate passed, so this should not happen
		return nil, cfgErr
	}
	sched.NextDue = next

	if err := s.scheduleRepo.Create(ctx, sched); err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"schedule_id": sched.ID,
		"animal_id":   sched.AnimalID,
		"frequency":   sched.Frequency,
		"next_due":    sched.NextDue,
	}).Info("Feeding schedule created")
	return sched, nil
}

func (s *FeedingServiceImpl) UpdateSchedule(ctx context.Context, scheduleID int64, params ScheduleParams) (*schedule.FeedingSchedule, error) {
	now := time.Now().In(s.loc)

	sched, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("get schedule %d: %w", scheduleID, err)
	}

	sched.Frequency = params.Frequency
	sched.TimeOfDay = params.TimeOfDay
	sched.DayOfWeek = params.DayOfWeek
	sched.HoursInterval = params.HoursInterval
	if err := sched.Validate(); err != nil {
		return nil, err
	}

	// Reseed from now so the edit takes effect immediately; the old grid
	// is meaningless under a new configuration.
	sched.NextDue = now
	next, cfgErr := schedule.ComputeNext(*sched, now, s.loc)
	if cfgErr != nil {
		return nil, cfgErr
	}
	sched.NextDue = next

	if err := s.scheduleRepo.Update(ctx, sched); err != nil {
		return nil, fmt.Errorf("update schedule %d: %w", scheduleID, err)
	}
	s.logger.WithFields(logrus.Fields{
		"schedule_id": sched.ID,
		"frequency":   sched.Frequency,
		"next_due":    sched.NextDue,
	}).Info("Feeding schedule updated")
	return sched, nil
}
