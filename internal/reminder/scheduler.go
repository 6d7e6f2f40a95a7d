// Package reminder wires up the cron job that scans for applications whose
// follow-up date has arrived and publishes a notification event for each.
package reminder

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jobtrackr/jobtrackr/internal/events"
	"github.com/jobtrackr/jobtrackr/internal/model"
)

// FollowUpSource yields the open applications with a due follow-up date.
type FollowUpSource interface {
	ListDueFollowUps(today string) ([]model.Application, error)
}

// Scheduler wraps robfig/cron and manages the follow-up scan loop.
type Scheduler struct {
	cron   *cron.Cron
	apps   FollowUpSource
	events events.Publisher
	spec   string
}

// New creates a Scheduler that scans on the given cron spec, e.g. "@every 1h".
func New(apps FollowUpSource, publisher events.Publisher, spec string) *Scheduler {
	if spec == "" {
		spec = "@every 1h"
	}
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(cron.DefaultLogger)),
		apps:   apps,
		events: publisher,
		spec:   spec,
	}
}

// Start registers the scan and starts the scheduler. One scan runs
// immediately so due reminders are not delayed by the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.Scan(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("[reminder] cron started with spec %s", s.spec)

	go s.Scan(ctx)
	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[reminder] Cron stopped")
}

// Scan publishes one follow-up-due event per open application whose follow-up
// date is on or before today. Rejected and Ghosted applications never
// produce reminders.
func (s *Scheduler) Scan(ctx context.Context) {
	today := time.Now().Format("2006-01-02")
	due, err := s.apps.ListDueFollowUps(today)
	if err != nil {
		log.Printf("[reminder] scan: %v", err)
		return
	}
	if len(due) == 0 {
		return
	}

	log.Printf("[reminder] %d follow-up(s) due", len(due))
	for _, app := range due {
		followUp := ""
		if app.FollowUpDate != nil {
			followUp = *app.FollowUpDate
		}
		payload, _ := json.Marshal(events.FollowUpDue{
			Type:          "EVENT_FOLLOW_UP_DUE",
			ApplicationID: app.ID.String(),
			UserID:        app.UserID.String(),
			CompanyName:   app.CompanyName,
			FollowUpDate:  followUp,
		})
		if err := s.events.Publish(ctx, events.ChannelFollowUpDue, payload); err != nil {
			log.Printf("[reminder] publish for %s: %v", app.ID, err)
		}
	}
}
