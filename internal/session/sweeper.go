package session

import (
	"context"

	"github.com/robfig/cron/v3"
)

// Sweeper periodically revalidates the held token so an expired session is
// cleared even while the dashboard sits idle.
type Sweeper struct {
	cron  *cron.Cron
	store *Store
}

// NewSweeper schedules Validate on the given cron spec (e.g. "@every 1m").
func NewSweeper(store *Store, spec string) (*Sweeper, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		store.Validate(context.Background())
	}); err != nil {
		return nil, err
	}
	return &Sweeper{cron: c, store: store}, nil
}

// Start begins the sweep schedule.
func (s *Sweeper) Start() {
	s.cron.Start()
}

// Stop halts the schedule, waiting for a running sweep to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
