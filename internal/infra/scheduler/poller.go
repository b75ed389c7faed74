package scheduler

import (
	"context"
	"fmt"
	"time"

	"feeding_notification_bot/internal/app"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// FeedingPoller drives the feeding engine on a fixed cadence. It is an
// explicitly constructed instance started and stopped by the process
// lifecycle, so tests can run it zero or finite times.
//
// Ticks never overlap: a tick arriving while a scan is still running is
// skipped, and the overdue schedules are simply caught by the next one.
type FeedingPoller struct {
	cronEngine     *cron.Cron
	feedingService app.FeedingService // Using the interface
	logger         *logrus.Entry
	interval       time.Duration
	loc            *time.Location
	scanTimeout    time.Duration
}

func NewFeedingPoller(
	feedingService app.FeedingService,
	logger *logrus.Entry,
	interval time.Duration, // e.g. time.Minute: one scan per minute
	loc *time.Location,
) *FeedingPoller {
	if loc == nil {
		loc = time.UTC
	}
	p := &FeedingPoller{
		feedingService: feedingService,
		logger:         logger,
		interval:       interval,
		loc:            loc,
		// A scan must finish well before it could pile up behind the
		// next tick; the skip wrapper covers the rest.
		scanTimeout: 5 * time.Minute,
	}
	p.cronEngine = cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	return p
}

// Start registers the scan job and begins ticking. It returns an error
// instead of running zero ticks silently if the interval is unusable.
func (p *FeedingPoller) Start() error {
	spec := fmt.Sprintf("@every %s", p.interval)
	_, err := p.cronEngine.AddFunc(spec, p.runScan)
	if err != nil {
		return fmt.Errorf("could not add feeding scan job (%s): %w", spec, err)
	}
	p.cronEngine.Start()
	p.logger.WithField("interval", p.interval.String()).Info("Feeding poller started")
	return nil
}

// runScan is one tick: Idle -> Scanning -> Idle. A failed scan is logged
// and the poller returns to idle to retry on the next tick; nothing here
// stops the loop.
func (p *FeedingPoller) runScan() {
	ctx, cancel := context.WithTimeout(context.Background(), p.scanTimeout)
	defer cancel()

	now := time.Now().In(p.loc)
	scanLogger := p.logger.WithField("scan_id", uuid.NewString())

	summary, err := p.feedingService.ProcessDueSchedules(ctx, now)
	if err != nil {
		scanLogger.WithError(err).Error("Feeding scan failed; will retry on next tick")
		return
	}
	if summary.Due == 0 {
		scanLogger.Debug("Feeding scan found nothing due")
		return
	}
	scanLogger.WithFields(logrus.Fields{
		"due":      summary.Due,
		"notified": summary.Notified,
		"advanced": summary.Advanced,
		"failed":   summary.Failed,
	}).Info("Feeding scan complete")
}

// Stop halts new ticks and waits for an in-flight scan to finish.
func (p *FeedingPoller) Stop() {
	p.logger.Info("Stopping feeding poller...")
	ctx := p.cronEngine.Stop()
	<-ctx.Done()
	p.logger.Info("Feeding poller gracefully stopped")
}
