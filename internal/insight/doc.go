// Package insight implements the analytics engines that turn a transaction
// ledger snapshot into summaries, recurring-expense candidates, statistical
// anomaly flags, and a short-horizon forecast.
//
// Every function in this package is a pure transformation over the snapshot
// it is handed: no shared state, no locking, safe for concurrent use from
// any number of goroutines.
//
// Known limitation: the recurrence detector only recognizes roughly monthly
// cadence (average gap between 25 and 40 days). Weekly, quarterly, and
// annual recurring expenses are invisible to it by construction.
package insight
