package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/torosent/redcaplite/internal/metrics"
)

func sampleReport() metrics.Report {
	return metrics.Report{
		Overall: metrics.Stats{
			Total:       4,
			Successes:   3,
			Failures:    1,
			Duration:    2 * time.Second,
			MeanLatency: 15 * time.Millisecond,
		},
		ByContent: []metrics.ContentStats{
			{Content: "arm", Stats: metrics.Stats{Total: 1, Successes: 1}},
			{Content: "record", Stats: metrics.Stats{Total: 3, Successes: 2, Failures: 1}},
		},
		Errors:   map[string]int{"Forbidden (HTTP 403)": 1},
		Statuses: []metrics.StatusBucket{{Content: "record", Code: "403", Count: 1}},
	}
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	PrintReport(&buf, sampleReport())
	out := buf.String()

	for _, want := range []string{
		"Total Calls:       4",
		"Successful:        3",
		"Failed:            1",
		"By Resource:",
		"Forbidden (HTTP 403): 1",
		"record 403: 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "- record:") > strings.Index(out, "- arm:") {
		t.Errorf("resources should be ordered by call count:\n%s", out)
	}
}

func TestPrintReportOmitsEmptySections(t *testing.T) {
	var buf bytes.Buffer
	PrintReport(&buf, metrics.Report{Overall: metrics.Stats{Total: 1, Successes: 1}})
	out := buf.String()
	for _, unwanted := range []string{"By Resource:", "Errors:", "Failed Statuses:"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("unexpected section %q:\n%s", unwanted, out)
		}
	}
}

func TestPrintJSONReport(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintJSONReport(&buf, sampleReport()); err != nil {
		t.Fatalf("PrintJSONReport() error = %v", err)
	}
	var decoded struct {
		Overall struct {
			Total int `json:"total"`
		} `json:"overall"`
		ByContent []struct {
			Content string `json:"content"`
			Total   int    `json:"total"`
		} `json:"by_content"`
		Errors map[string]int `json:"errors"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if decoded.Overall.Total != 4 || len(decoded.ByContent) != 2 || decoded.Errors["Forbidden (HTTP 403)"] != 1 {
		t.Errorf("unexpected report %+v", decoded)
	}
}
