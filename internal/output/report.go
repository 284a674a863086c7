package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/torosent/redcaplite/internal/metrics"
)

// PrintReport outputs a human-readable summary of the calls made.
func PrintReport(w io.Writer, r metrics.Report) {
	stats := r.Overall
	fmt.Fprintln(w, "\n--- REDCap API Calls ---")
	fmt.Fprintf(w, "Total Calls:       %d\n", stats.Total)
	fmt.Fprintf(w, "Successful:        %d\n", stats.Successes)
	fmt.Fprintf(w, "Failed:            %d\n", stats.Failures)
	fmt.Fprintf(w, "Duration:          %s\n", stats.Duration)
	fmt.Fprintln(w, "\nLatency:")
	fmt.Fprintf(w, "  Min:             %s\n", stats.MinLatency)
	fmt.Fprintf(w, "  Max:             %s\n", stats.MaxLatency)
	fmt.Fprintf(w, "  Mean:            %s\n", stats.MeanLatency)
	fmt.Fprintf(w, "  P50:             %s\n", stats.P50Latency)
	fmt.Fprintf(w, "  P90:             %s\n", stats.P90Latency)
	fmt.Fprintf(w, "  P99:             %s\n", stats.P99Latency)

	if len(r.ByContent) > 0 {
		fmt.Fprintln(w, "\nBy Resource:")
		rows := append([]metrics.ContentStats(nil), r.ByContent...)
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Total > rows[j].Total
		})
		for _, row := range rows {
			fmt.Fprintf(
				w,
				"  - %s: total=%d, successes=%d, failures=%d, mean=%s, p99=%s\n",
				row.Content,
				row.Total,
				row.Successes,
				row.Failures,
				row.MeanLatency,
				row.P99Latency,
			)
		}
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "\nErrors:")
		labels := make([]string, 0, len(r.Errors))
		for label := range r.Errors {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		for _, label := range labels {
			fmt.Fprintf(w, "  %s: %d\n", label, r.Errors[label])
		}
	}

	if len(r.Statuses) > 0 {
		fmt.Fprintln(w, "\nFailed Statuses:")
		writeStatusBuckets(w, r.Statuses, "  ")
	}
}

// PrintJSONReport outputs a JSON-formatted report.
func PrintJSONReport(w io.Writer, r metrics.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func writeStatusBuckets(w io.Writer, rows []metrics.StatusBucket, indent string) {
	for _, row := range rows {
		fmt.Fprintf(w, "%s%s %s: %d\n", indent, row.Content, row.Code, row.Count)
	}
}
