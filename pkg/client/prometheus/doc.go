// Package prometheus looks up firing alerts in the alerting rules listing of a
// Prometheus compatible API (Prometheus, Thanos querier).
package prometheus
