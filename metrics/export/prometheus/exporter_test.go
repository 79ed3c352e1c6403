package prometheus

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/MrEthical07/wttp"
)

type fakeSource struct {
	snapshot wttp.MetricsSnapshot
}

func (f fakeSource) MetricsSnapshot() wttp.MetricsSnapshot { return f.snapshot }

func TestCollectEmptyWhenMetricsDisabled(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: wttp.MetricsSnapshot{
			Counters:   map[wttp.MetricID]uint64{},
			Histograms: map[wttp.MetricID][]uint64{},
		},
	})

	if n := testutil.CollectAndCount(exp); n != 0 {
		t.Fatalf("expected no metrics for disabled source, got %d", n)
	}
}

func TestCollectCountersAndHistogram(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: wttp.MetricsSnapshot{
			Counters: map[wttp.MetricID]uint64{
				wttp.MetricResourceHit: 7,
			},
			Histograms: map[wttp.MetricID][]uint64{
				wttp.MetricStoreLatency: {1, 2, 3, 4, 5, 6, 7, 8},
			},
		},
	})

	expected := `
# HELP wttp_resource_hit_total Lookups served from a stored record.
# TYPE wttp_resource_hit_total counter
wttp_resource_hit_total 7
`
	if err := testutil.CollectAndCompare(exp, strings.NewReader(expected), "wttp_resource_hit_total"); err != nil {
		t.Fatalf("unexpected counter: %v", err)
	}

	rec := httptest.NewRecorder()
	exp.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	out := rec.Body.String()
	for _, want := range []string{
		"wttp_resource_hit_total 7",
		`wttp_store_latency_seconds_bucket{le="0.005"} 1`,
		`wttp_store_latency_seconds_bucket{le="+Inf"} 36`,
		"wttp_store_latency_seconds_count 36",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestExporterReadsLiveSite(t *testing.T) {
	site, err := wttp.New().WithMetricsEnabled(true).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	exp := NewPrometheusExporter(site)

	if _, err := site.Head(t.Context(), "/missing"); err != nil {
		t.Fatalf("Head: %v", err)
	}

	expected := `
# HELP wttp_resource_miss_total Lookups served from site defaults.
# TYPE wttp_resource_miss_total counter
wttp_resource_miss_total 1
`
	if err := testutil.CollectAndCompare(exp, strings.NewReader(expected), "wttp_resource_miss_total"); err != nil {
		t.Fatalf("unexpected counter: %v", err)
	}
}
