package scheduler

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"feeding_notification_bot/internal/app"
	"feeding_notification_bot/internal/domain/schedule"

	"github.com/sirupsen/logrus"
)

type stubFeedingService struct {
	mu      sync.Mutex
	calls   int
	lastNow time.Time
	summary app.TickSummary
	err     error
}

func (s *stubFeedingService) ProcessDueSchedules(ctx context.Context, now time.Time) (app.TickSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastNow = now
	return s.summary, s.err
}

func (s *stubFeedingService) CreateSchedule(ctx context.Context, params app.ScheduleParams) (*schedule.FeedingSchedule, error) {
	return nil, errors.New("not implemented")
}

func (s *stubFeedingService) UpdateSchedule(ctx context.Context, scheduleID int64, params app.ScheduleParams) (*schedule.FeedingSchedule, error) {
	return nil, errors.New("not implemented")
}

func (s *stubFeedingService) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func TestRunScan_InvokesServiceWithCurrentTime(t *testing.T) {
	svc := &stubFeedingService{summary: app.TickSummary{Due: 2, Notified: 2, Advanced: 2}}
	p := NewFeedingPoller(svc, testLogger(), time.Minute, time.UTC)

	before := time.Now()
	p.runScan()
	after := time.Now()

	if got := svc.callCount(); got != 1 {
		t.Fatalf("service called %d times, want 1", got)
	}
	if svc.lastNow.Before(before) || svc.lastNow.After(after) {
		t.Fatalf("scan time %v is not the wall clock at tick time", svc.lastNow)
	}
}

func TestRunScan_ServiceErrorDoesNotPanic(t *testing.T) {
	svc := &stubFeedingService{err: errors.New("store down")}
	p := NewFeedingPoller(svc, testLogger(), time.Minute, time.UTC)

	p.runScan() // must log and return, leaving the loop alive
	p.runScan()

	if got := svc.callCount(); got != 2 {
		t.Fatalf("service called %d times, want 2 (the loop must survive failures)", got)
	}
}

func TestPoller_StartAndStop(t *testing.T) {
	svc := &stubFeedingService{}
	p := NewFeedingPoller(svc, testLogger(), time.Hour, time.UTC)

	if err := p.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	// With an hour-long interval nothing fires during the test; Stop must
	// return promptly with no scan in flight.
	p.Stop()

	if got := svc.callCount(); got != 0 {
		t.Fatalf("service called %d times before the first interval elapsed, want 0", got)
	}
}

func TestPoller_NilLocationDefaultsToUTC(t *testing.T) {
	p := NewFeedingPoller(&stubFeedingService{}, testLogger(), time.Minute, nil)
	if p.loc != time.UTC {
		t.Fatalf("location = %v, want UTC", p.loc)
	}
}
