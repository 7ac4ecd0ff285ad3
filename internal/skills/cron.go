package skills

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Refresher rebuilds the skills cache on a schedule so the reference data
// never serves stale entries for more than a day.
type Refresher struct {
	svc *Service
}

func NewRefresher(svc *Service) *Refresher {
	return &Refresher{svc: svc}
}

// Start initializes the cron task (nightly at 3:00 AM).
func (r *Refresher) Start() {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc("0 0 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := r.svc.Refresh(ctx); err != nil {
			log.Printf("skills cache refresh failed: %v", err)
			return
		}
		log.Println("skills cache refreshed")
	})
	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Println("Cron scheduler started (skills cache refresh nightly at 3:00AM)")
	c.Start()
}
