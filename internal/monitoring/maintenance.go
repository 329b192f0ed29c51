package monitoring

import (
	"context"
	"time"

	"github.com/isdelr/exercise-tracker-be/internal/metrics"
	"github.com/isdelr/exercise-tracker-be/internal/store"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Maintenance runs store housekeeping on a cron schedule.
type Maintenance struct {
	target   store.Maintainer
	schedule cron.Schedule
	interval time.Duration
	timeout  time.Duration
	now      func() time.Time
	nextRun  time.Time
	done     chan struct{}
	stopped  chan struct{}
}

// NewMaintenance creates a maintenance job for target using a standard
// five-field cron expression.
func NewMaintenance(target store.Maintainer, expr string) (*Maintenance, error) {
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, err
	}
	m := &Maintenance{
		target:   target,
		schedule: schedule,
		interval: time.Minute,
		timeout:  30 * time.Second,
		now:      time.Now,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	m.nextRun = schedule.Next(m.now())
	return m, nil
}

// Run starts the maintenance ticking loop.
func (m *Maintenance) Run() {
	defer close(m.stopped)
	log.Info().Time("next_run", m.nextRun).Msg("Starting store maintenance scheduler...")
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			log.Info().Msg("Stopping store maintenance scheduler.")
			return
		case <-ticker.C:
			m.checkAndRun()
		}
	}
}

// Stop halts the loop and waits for it to exit.
func (m *Maintenance) Stop() {
	close(m.done)
	<-m.stopped
}

// checkAndRun runs maintenance if the scheduled time has passed.
func (m *Maintenance) checkAndRun() bool {
	now := m.now()
	if now.Before(m.nextRun) {
		return false
	}
	m.nextRun = m.schedule.Next(now)

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	start := time.Now()
	if err := m.target.Maintain(ctx); err != nil {
		metrics.RecordMaintenance(false)
		log.Error().Err(err).Time("next_run", m.nextRun).Msg("Store maintenance failed")
		return true
	}
	metrics.RecordMaintenance(true)
	log.Info().Dur("took", time.Since(start)).Time("next_run", m.nextRun).Msg("Store maintenance completed")
	return true
}
