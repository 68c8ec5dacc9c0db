package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/mkarlsen/skycast/internal/weather"
)

// Scheduler periodically re-runs the last committed search so the dashboard
// stays fresh without user interaction.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	interval  time.Duration
}

// New creates a new Scheduler. A non-positive interval disables it.
func New(interval time.Duration, service *weather.Service) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		interval:  interval,
	}
}

// Start schedules the periodic refresh job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: refresh disabled; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		query, ok := s.service.LastQuery()
		if !ok {
			return
		}

		log.Printf("scheduler: refreshing weather for %q", query)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := s.service.Search(ctx, query); err != nil {
			log.Printf("scheduler: refresh failed for %q: %v", query, err)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
