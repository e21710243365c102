package server

import (
	"context"
	"fmt"
	"time"

	cronlib "github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/paymanai/payman-docs-mcp/pkg/docs"
)

// RefreshService re-fetches every registered topic on a cron schedule so
// cached entries stay inside their TTL.
type RefreshService struct {
	docs     *docs.Service
	log      zerolog.Logger
	schedule string
	runner   *cronlib.Cron
}

func NewRefreshService(service *docs.Service, log zerolog.Logger, schedule string) *RefreshService {
	return &RefreshService{
		docs:     service,
		log:      log,
		schedule: schedule,
		runner:   cronlib.New(),
	}
}

// Start begins the scheduled refresh. The schedule uses standard cron
// syntax, including descriptors like @hourly.
func (rs *RefreshService) Start(ctx context.Context) error {
	_, err := rs.runner.AddFunc(rs.schedule, func() {
		rs.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", rs.schedule, err)
	}
	rs.runner.Start()
	rs.log.Info().Str("schedule", rs.schedule).Msg("Scheduled documentation refresh")
	return nil
}

// RunOnce refreshes all topics immediately and logs the outcome. Fetch
// failures leave the previous cache entries in place.
func (rs *RefreshService) RunOnce(ctx context.Context) {
	start := time.Now()
	refreshed, failed := rs.docs.RefreshAll(ctx)
	rs.log.Info().
		Int("refreshed", refreshed).
		Int("failed", failed).
		Int64("took_ms", time.Since(start).Milliseconds()).
		Msg("Documentation refresh finished")
}

// Stop halts the schedule and waits for an in-flight refresh to finish.
func (rs *RefreshService) Stop() {
	<-rs.runner.Stop().Done()
}
