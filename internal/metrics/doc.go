// Package metrics aggregates latency and outcome statistics of REDCap API
// calls.
//
// A [Collector] is plugged into the transport as an observer and records
// every call:
//
//	collector := metrics.NewCollector()
//	client, err := transport.New(url, token, transport.WithObserver(collector))
//	...
//	report := collector.Report()
//
// Latencies go into HDR histograms, one overall and one per resource, so the
// report carries P50, P90 and P99 next to min, mean and max. Failures are
// broken down by [ErrorLabel] and by resource and status code.
package metrics
