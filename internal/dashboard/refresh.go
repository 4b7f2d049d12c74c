package dashboard

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// startRefresh reloads the snapshot on schedule until ctx is cancelled.
func (s *Server) startRefresh(ctx context.Context, schedule string) error {
	c := cron.New(cron.WithParser(cronParser))
	_, err := c.AddFunc(schedule, func() {
		if _, err := s.Refresh(); err != nil {
			log.Printf("dashboard: refresh: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("dashboard: refresh schedule %q: %w", schedule, err)
	}
	c.Start()

	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
	}()
	return nil
}

// nextRefreshIn parses a 5-field cron expression and returns the duration
// until it next fires. Returns 0 on parse error.
func nextRefreshIn(expr string, now time.Time) time.Duration {
	sched, err := cronParser.Parse(expr)
	if err != nil {
		return 0
	}
	d := sched.Next(now).Sub(now)
	if d < 0 {
		return 0
	}
	return d
}
