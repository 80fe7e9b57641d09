/*
Package observability provides Prometheus metrics for the marker engine.

Metrics.Hooks returns marker.Hooks that count marks and removed empty
spans per pass; the HTTP adapter records render durations and cache
lookups on the same collectors.
*/
package observability
