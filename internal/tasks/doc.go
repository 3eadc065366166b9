// Package tasks runs long-lived watchlist jobs with real-time progress reporting.
//
// # Bulk Export
//
// [BulkExport] renders every user's watchlist into its own file using a
// fixed-size worker pool:
//
//  1. A producer resolves each user's titles against the catalog and queues a job
//  2. Workers render the job with the formatter and write it atomically
//  3. Results are collected, sorted by username, and summarized in a JSON manifest
//
// A failed user does not abort the run; it is counted in [BulkExportResult.Failed].
//
// # Progress Reporting
//
// [ProgressUpdate] carries a phase, step counters, and a display message.
// Updates are sent with select/default so a slow reader never stalls the workers.
package tasks
