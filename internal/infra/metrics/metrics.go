// Package metrics holds the Prometheus instruments shared by the server and
// the outbox poller. Everything is registered with the default registry and
// served on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_builder_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "site_builder_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"})

	PagesRenderedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_builder_pages_rendered_total",
			Help: "Pages rendered to HTML, by template and mode (public, preview, snapshot).",
		}, []string{"template", "mode"})

	OutboxEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_builder_outbox_events_total",
			Help: "Outbox events handled, by event and resulting status.",
		}, []string{"event", "status"})

	AIGenerationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_builder_ai_generations_total",
			Help: "AI content generations by outcome (ok, upstream_error, invalid_output).",
		}, []string{"outcome"})

	AssetsUploadedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_builder_assets_uploaded_total",
			Help: "Assets uploaded, by MIME type.",
		}, []string{"mime_type"})

	SitesPublishedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "site_builder_sites_published_total",
			Help: "Snapshots written for published sites.",
		})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		PagesRenderedTotal,
		OutboxEventsTotal,
		AIGenerationsTotal,
		AssetsUploadedTotal,
		SitesPublishedTotal,
	)
}

// Middleware records count and latency per matched route, so path params
// don't explode label cardinality.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else if status < 400 {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		HTTPRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		HTTPRequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
