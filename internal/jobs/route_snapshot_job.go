package jobs

import (
	"context"
	"errors"
	"time"

	"mealroute/internal/core/application/usecases/commands"
	"mealroute/internal/core/application/usecases/queries"
	"mealroute/internal/core/domain/services"
	"mealroute/internal/core/ports"
	"mealroute/internal/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RouteRebuilder runs a route rebuild.
type RouteRebuilder interface {
	Handle(ctx context.Context, cmd commands.RebuildRouteCommand) ([]services.TourStop, error)
}

// StatsReader computes delivery stats.
type StatsReader interface {
	Handle(ctx context.Context, query queries.GetDeliveryStatsQuery) (services.DeliveryStats, error)
}

// RouteSnapshotJob periodically rebuilds the tour and logs the resulting
// stats. It runs on a timer only; lifecycle transitions never trigger it.
type RouteSnapshotJob struct {
	rebuilder RouteRebuilder
	stats     StatsReader
	clock     ports.Clock
	metrics   *metrics.Metrics
	schedule  string
	timeout   time.Duration
	cron      *cron.Cron
	logger    *zap.Logger
}

// NewRouteSnapshotJob creates the job. schedule is a six-field cron
// expression (with seconds), for example "0 */5 * * * *".
func NewRouteSnapshotJob(
	rebuilder RouteRebuilder,
	stats StatsReader,
	clock ports.Clock,
	m *metrics.Metrics,
	schedule string,
	logger *zap.Logger,
) *RouteSnapshotJob {
	return &RouteSnapshotJob{
		rebuilder: rebuilder,
		stats:     stats,
		clock:     clock,
		metrics:   m,
		schedule:  schedule,
		timeout:   30 * time.Second,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With(zap.String("component", "route_snapshot_job")),
	}
}

// Start registers the schedule and starts the scheduler.
func (j *RouteSnapshotJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Route snapshot job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop stops the scheduler and waits for a running snapshot to finish.
func (j *RouteSnapshotJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Route snapshot job stopped")
}

func (j *RouteSnapshotJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	j.Snapshot(ctx)
}

// Snapshot performs one rebuild followed by a stats read. A rebuild conflict
// means another rebuild is committing the same tour and is logged at debug.
func (j *RouteSnapshotJob) Snapshot(ctx context.Context) {
	start := time.Now()
	stops, err := j.rebuilder.Handle(ctx, commands.NewRebuildRouteCommand())
	j.metrics.RecordRouteRebuild(time.Since(start), len(stops), err)

	if err != nil {
		if errors.Is(err, ports.ErrRouteRebuildConflict) {
			j.logger.Debug("Route snapshot skipped, rebuild in progress", zap.Error(err))
			return
		}
		j.logger.Error("Route rebuild failed", zap.Error(err))
		return
	}

	query, err := queries.NewGetDeliveryStatsQuery(j.clock.Now())
	if err != nil {
		j.logger.Error("Delivery stats query invalid", zap.Error(err))
		return
	}

	stats, err := j.stats.Handle(ctx, query)
	if err != nil {
		j.logger.Error("Delivery stats failed", zap.Error(err))
		return
	}

	j.logger.Info("Route snapshot",
		zap.Int("tour_length", len(stops)),
		zap.Int("ready", stats.ReadyCount),
		zap.Int("out_for_delivery", stats.OutForDeliveryCount),
		zap.Int("delivered_today", stats.DeliveredToday),
		zap.Float64("average_distance_km", stats.AverageDistanceKm),
	)
}
