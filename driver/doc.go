// Package driver runs resumable searches on a schedule.
//
// A Driver owns the cadence for one search: every Tick advances it by
// exactly one step, and Run ticks on a time.Ticker until the search
// resolves or the context ends. A Scheduler does the same for many
// independent searches, one step each per tick, in registration order.
//
// Nothing runs in the background: cancelling a search means no longer
// ticking it (Scheduler.Remove, or cancelling Run's context) and dropping it.
//
// Metrics are exported through Prometheus when WithMetrics is supplied, and
// Run opens one OpenTelemetry span per call.
package driver
