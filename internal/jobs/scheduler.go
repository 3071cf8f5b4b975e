package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/rentwheels/car-rental-backend/internal/booking"
)

const expireJobTimeout = 30 * time.Second

// Scheduler runs the periodic maintenance jobs. Today that is a single
// job: cancelling pending bookings whose pickup day has passed without
// an owner decision.
type Scheduler struct {
	cron           *cron.Cron
	bookingService booking.Service
}

func NewScheduler(bookingService booking.Service) *Scheduler {
	return &Scheduler{
		cron:           cron.New(),
		bookingService: bookingService,
	}
}

// Start registers the jobs and launches the cron loop. The expiry job
// also runs once at startup so a restarted server catches up
// immediately.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@daily", s.expireStalePending); err != nil {
		return err
	}

	go s.expireStalePending()

	s.cron.Start()
	return nil
}

// Stop halts the cron loop and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) expireStalePending() {
	ctx, cancel := context.WithTimeout(context.Background(), expireJobTimeout)
	defer cancel()

	n, err := s.bookingService.ExpireStalePending(ctx)
	if err != nil {
		log.Printf("expire stale pending bookings failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("cancelled %d stale pending bookings", n)
	}
}
