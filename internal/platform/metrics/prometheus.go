package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Classification outcomes used as the "outcome" label.
const (
	OutcomeSuccess     = "success"
	OutcomeUnavailable = "unavailable"
	OutcomeMalformed   = "malformed"
)

// MetricsManager holds the service's Prometheus collectors.
type MetricsManager struct {
	Registry             *prometheus.Registry
	ListingsCreatedTotal prometheus.Counter
	ListingUpdatesTotal  prometheus.Counter
	ListingDeletesTotal  prometheus.Counter
	ClassificationsTotal *prometheus.CounterVec
	UploadFailuresTotal  *prometheus.CounterVec
	APIErrorsTotal       *prometheus.CounterVec
	APILatency           *prometheus.HistogramVec
}

// NewMetricsManager creates and registers the collectors on a private registry.
func NewMetricsManager(namespace string) *MetricsManager {
	registry := prometheus.NewRegistry()

	m := &MetricsManager{
		Registry: registry,
		ListingsCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listings_created_total",
			Help:      "Total number of waste listings created.",
		}),
		ListingUpdatesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listing_updates_total",
			Help:      "Total number of waste listings updated by their owner.",
		}),
		ListingDeletesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listing_deletes_total",
			Help:      "Total number of waste listings deleted by their owner.",
		}),
		ClassificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifications_total",
			Help:      "Classifier calls by outcome.",
		}, []string{"outcome"}),
		UploadFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "image_upload_failures_total",
			Help:      "Image uploads that degraded to a listing without image, by failing stage.",
		}, []string{"stage"}),
		APIErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_errors_total",
			Help:      "Total number of API errors by method.",
		}, []string{"method", "error_type"}),
		APILatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_latency_seconds",
			Help:      "Latency of API requests by method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}

	registry.MustRegister(
		m.ListingsCreatedTotal,
		m.ListingUpdatesTotal,
		m.ListingDeletesTotal,
		m.ClassificationsTotal,
		m.UploadFailuresTotal,
		m.APIErrorsTotal,
		m.APILatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// StartMetricsServer serves /metrics until ctx is cancelled.
func StartMetricsServer(ctx context.Context, port string, appLogger *logger.Logger, registry *prometheus.Registry) error {
	if port == "" {
		appLogger.Info("Prometheus metrics server port not configured, server will not start.")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("Failed to shut down metrics server", zap.Error(err))
		}
	}()

	appLogger.Info("Prometheus metrics server starting", zap.String("port", port), zap.String("path", "/metrics"))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
