package internaldefs

import (
	"github.com/MrEthical07/wttp"
)

// CounterDef names one exported counter.
type CounterDef struct {
	ID   wttp.MetricID
	Name string
	Help string
}

// HistogramDef names one exported histogram.
type HistogramDef struct {
	ID   wttp.MetricID
	Name string
	Help string
}

var CounterDefs = []CounterDef{
	{ID: wttp.MetricHeaderDefined, Name: "wttp_header_defined_total", Help: "Headers written with Define."},
	{ID: wttp.MetricMetadataDescribed, Name: "wttp_metadata_described_total", Help: "Metadata written with Describe."},
	{ID: wttp.MetricResourceDeleted, Name: "wttp_resource_deleted_total", Help: "Resources removed."},
	{ID: wttp.MetricResourceHit, Name: "wttp_resource_hit_total", Help: "Lookups served from a stored record."},
	{ID: wttp.MetricResourceMiss, Name: "wttp_resource_miss_total", Help: "Lookups served from site defaults."},
	{ID: wttp.MetricMethodAllowed, Name: "wttp_method_allowed_total", Help: "Authorization checks that passed."},
	{ID: wttp.MetricMethodDenied, Name: "wttp_method_denied_total", Help: "Requests for methods outside the resource method mask."},
	{ID: wttp.MetricRoleDenied, Name: "wttp_role_denied_total", Help: "Requests rejected for a missing role."},
	{ID: wttp.MetricStoreError, Name: "wttp_store_error_total", Help: "Store backend failures."},
	{ID: wttp.MetricRateLimited, Name: "wttp_rate_limited_total", Help: "Writes refused by the per-client write limiter."},
}

var HistogramDefs = []HistogramDef{
	{ID: wttp.MetricStoreLatency, Name: "wttp_store_latency_seconds", Help: "Store round-trip latency."},
}

// HistogramBounds are the upper bounds in seconds of the first seven
// buckets; the eighth bucket is +Inf.
var HistogramBounds = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5}

// HistogramBoundSuffix renders each bucket bound for use in an instrument name.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets copies raw into a fixed array, zero-filling or truncating.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into running totals.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
