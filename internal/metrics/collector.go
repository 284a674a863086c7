package metrics

import (
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/torosent/redcaplite/transport"
)

// Collector aggregates finished API calls, overall and per resource. It
// implements transport.Observer and is safe for concurrent use.
type Collector struct {
	mu        sync.Mutex
	overall   *series
	byContent map[string]*series
	errors    map[string]int64
	statuses  map[string]map[string]int
	start     time.Time
}

// series is the latency and outcome record of one group of calls.
type series struct {
	hist       *hdrhistogram.Histogram
	successes  int64
	failures   int64
	minLatency time.Duration
	maxLatency time.Duration
	sumLatency time.Duration
}

// Stats represents aggregated metrics.
type Stats struct {
	Total          int64         `json:"total"`
	Successes      int64         `json:"successes"`
	Failures       int64         `json:"failures"`
	MinLatency     time.Duration `json:"-"`
	MaxLatency     time.Duration `json:"-"`
	MeanLatency    time.Duration `json:"-"`
	P50Latency     time.Duration `json:"-"`
	P90Latency     time.Duration `json:"-"`
	P99Latency     time.Duration `json:"-"`
	Duration       time.Duration `json:"-"`
	RequestsPerSec float64       `json:"requests_per_sec"`

	// JSON-friendly millisecond fields.
	MinLatencyMs  float64 `json:"min_latency_ms"`
	MaxLatencyMs  float64 `json:"max_latency_ms"`
	MeanLatencyMs float64 `json:"mean_latency_ms"`
	P50LatencyMs  float64 `json:"p50_latency_ms"`
	P90LatencyMs  float64 `json:"p90_latency_ms"`
	P99LatencyMs  float64 `json:"p99_latency_ms"`
	DurationMs    float64 `json:"duration_ms"`
}

// Report is a full snapshot of the collector.
type Report struct {
	Overall   Stats          `json:"overall"`
	ByContent []ContentStats `json:"by_content,omitempty"`
	Errors    map[string]int `json:"errors,omitempty"`
	Statuses  []StatusBucket `json:"statuses,omitempty"`
}

// ContentStats is the Stats of the calls to one resource.
type ContentStats struct {
	Content string `json:"content"`
	Stats
}

func NewCollector() *Collector {
	return &Collector{
		overall:   newSeries(),
		byContent: make(map[string]*series),
		errors:    make(map[string]int64),
		statuses:  make(map[string]map[string]int),
		start:     time.Now(),
	}
}

func newSeries() *series {
	// Track latencies from 1µs up to 5 minutes with 3 significant figures.
	return &series{hist: hdrhistogram.New(1, 300_000_000, 3)}
}

// Observe records one finished call.
func (c *Collector) Observe(call transport.Call) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.overall.record(call.Duration, call.Err)

	content := call.Content
	if content == "" {
		content = "unknown"
	}
	s, ok := c.byContent[content]
	if !ok {
		s = newSeries()
		c.byContent[content] = s
	}
	s.record(call.Duration, call.Err)

	if call.Err != nil {
		c.errors[ErrorLabel(call.Err)]++
		code := "none"
		if call.Status > 0 {
			code = strconv.Itoa(call.Status)
		}
		if c.statuses[content] == nil {
			c.statuses[content] = make(map[string]int)
		}
		c.statuses[content][code]++
	}
}

// RecordRequest records a call that is not tied to a resource.
func (c *Collector) RecordRequest(latency time.Duration, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.overall.record(latency, err)
	if err != nil {
		c.errors[ErrorLabel(err)]++
	}
}

func (s *series) record(latency time.Duration, err error) {
	if latency > 0 {
		us := latency.Microseconds()
		if us < s.hist.LowestTrackableValue() {
			us = s.hist.LowestTrackableValue()
		}
		if us > s.hist.HighestTrackableValue() {
			us = s.hist.HighestTrackableValue()
		}
		_ = s.hist.RecordValue(us)
	}
	s.sumLatency += latency

	if s.minLatency == 0 || latency < s.minLatency {
		s.minLatency = latency
	}
	if latency > s.maxLatency {
		s.maxLatency = latency
	}
	if err == nil {
		s.successes++
	} else {
		s.failures++
	}
}

func (s *series) stats(elapsed time.Duration) Stats {
	total := s.successes + s.failures
	stats := Stats{
		Total:      total,
		Successes:  s.successes,
		Failures:   s.failures,
		MinLatency: s.minLatency,
		MaxLatency: s.maxLatency,
	}
	if total > 0 {
		stats.MeanLatency = time.Duration(int64(s.sumLatency) / total)
	}
	if s.hist.TotalCount() > 0 {
		stats.P50Latency = time.Duration(s.hist.ValueAtQuantile(50)) * time.Microsecond
		stats.P90Latency = time.Duration(s.hist.ValueAtQuantile(90)) * time.Microsecond
		stats.P99Latency = time.Duration(s.hist.ValueAtQuantile(99)) * time.Microsecond
	}

	stats.MinLatencyMs = ms(stats.MinLatency)
	stats.MaxLatencyMs = ms(stats.MaxLatency)
	stats.MeanLatencyMs = ms(stats.MeanLatency)
	stats.P50LatencyMs = ms(stats.P50Latency)
	stats.P90LatencyMs = ms(stats.P90Latency)
	stats.P99LatencyMs = ms(stats.P99Latency)

	stats.Duration = elapsed
	stats.DurationMs = ms(elapsed)
	if elapsed > 0 && total > 0 {
		stats.RequestsPerSec = float64(total) / elapsed.Seconds()
	}
	return stats
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Stats computes the overall statistics.
func (c *Collector) Stats(elapsed time.Duration) Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.overall.stats(elapsed)
}

// Report snapshots everything collected since NewCollector.
func (c *Collector) Report() Report {
	c.mu.Lock()
	defer c.mu.Unlock()

	elapsed := time.Since(c.start)
	r := Report{Overall: c.overall.stats(elapsed)}

	contents := make([]string, 0, len(c.byContent))
	for content := range c.byContent {
		contents = append(contents, content)
	}
	sort.Strings(contents)
	for _, content := range contents {
		r.ByContent = append(r.ByContent, ContentStats{
			Content: content,
			Stats:   c.byContent[content].stats(elapsed),
		})
	}

	if len(c.errors) > 0 {
		r.Errors = make(map[string]int, len(c.errors))
		for k, v := range c.errors {
			r.Errors[k] = int(v)
		}
	}
	r.Statuses = FlattenStatusBuckets(c.statuses)
	return r
}
