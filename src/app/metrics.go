package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewInstrumentedClient returns an HTTP client whose requests to the asset
// server are counted and timed on registerer.
func NewInstrumentedClient(timeout time.Duration, registerer prometheus.Registerer) (*http.Client, error) {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: `assetmapper_client_requests_total`,
		Help: `A counter of requests sent to the asset server`,
	}, []string{`code`, `method`})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    `assetmapper_client_request_duration_seconds`,
		Help:    `A histogram of asset server request duration`,
		Buckets: []float64{.25, .5, 1, 2.5, 5, 10},
	}, []string{`method`})

	for _, collector := range []prometheus.Collector{counter, duration} {
		if err := registerer.Register(collector); err != nil {
			return nil, fmt.Errorf("register client metrics: %w", err)
		}
	}

	transport := &http.Transport{
		Proxy:              http.ProxyFromEnvironment,
		MaxIdleConns:       10,
		IdleConnTimeout:    timeout,
		DisableCompression: true,
	}
	return &http.Client{
		Timeout: timeout,
		Transport: promhttp.InstrumentRoundTripperCounter(counter,
			promhttp.InstrumentRoundTripperDuration(duration, transport)),
	}, nil
}
