// Package jobs provides scheduled background tasks.
//
// Jobs use github.com/robfig/cron/v3 with second precision and never overlap
// with themselves.
//
// # Available Jobs
//
// RouteSnapshotJob rebuilds the delivery tour on a fixed schedule and logs
// the delivery stats that follow. It is a pull on a timer; transitions such
// as marking an order ready never start a rebuild.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(rebuildHandler, statsHandler, clock.System{}, m, "0 */5 * * * *", logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A rebuild conflict means a concurrent rebuild is committing the same tour;
// the snapshot is skipped and logged at debug. Other failures are logged as
// errors and the next tick runs normally.
package jobs
