package jobs

import (
	"fmt"

	"mealroute/internal/core/ports"
	"mealroute/internal/metrics"

	"go.uber.org/zap"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	routeSnapshotJob *RouteSnapshotJob
	logger           *zap.Logger
}

// NewJobManager creates a new job manager. An empty snapshotSchedule leaves
// the route snapshot job disabled.
func NewJobManager(
	rebuilder RouteRebuilder,
	stats StatsReader,
	clock ports.Clock,
	m *metrics.Metrics,
	snapshotSchedule string,
	logger *zap.Logger,
) *JobManager {
	jm := &JobManager{logger: logger}
	if snapshotSchedule != "" {
		jm.routeSnapshotJob = NewRouteSnapshotJob(rebuilder, stats, clock, m, snapshotSchedule, logger)
	}
	return jm
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if jm.routeSnapshotJob == nil {
		jm.logger.Info("Route snapshot job disabled")
		return nil
	}

	if err := jm.routeSnapshotJob.Start(); err != nil {
		return fmt.Errorf("failed to start route snapshot job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.routeSnapshotJob != nil {
		jm.routeSnapshotJob.Stop()
	}
}
