// Package loader imports a set of named modules concurrently and replays
// their outcomes on the calling goroutine.
//
// [RunAll] starts one goroutine per name, lets every goroutine call the
// shared [Executor], and blocks until all of them have recorded an
// [Outcome]. Successes and failures are buffered in two [Queue] values so
// that nothing is written to a sink while imports are still running.
// [Flush] drains both queues once, successes first, after the join.
//
// [Import] combines the two phases and returns a [Summary].
package loader
