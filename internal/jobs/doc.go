// Package jobs implements background job processing for the SafeHaven API.
//
// The jobs package contains scheduled tasks that run independently of HTTP
// request handling.
//
// # Job Types
//
// Available background jobs:
//
//   - MatchRefresher: re-scores open applications after profile edits
//   - TokenCleanup: expired refresh token removal
//
// # Lifecycle
//
// Each job runs its own ticker goroutine:
//
//	refresher := jobs.NewMatchRefresher(applicationService, time.Hour)
//	refresher.Start()
//	defer refresher.Stop()
//
// # Error Handling
//
// Jobs log errors but don't crash the application. A failed run is retried
// on the next tick.
package jobs
