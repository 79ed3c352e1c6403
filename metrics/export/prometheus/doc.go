// Package prometheus exposes site metrics as a Prometheus collector.
//
// [NewPrometheusExporter] wraps a [wttp.Site] in a prometheus.Collector that
// reads [wttp.Site.MetricsSnapshot] on every scrape. Counter names are
// prefixed wttp_*_total; the single histogram is wttp_store_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in the global Prometheus registry. Handler uses a
//     private registry; callers that want their own call Register.
//   - Mutate site state.
package prometheus
