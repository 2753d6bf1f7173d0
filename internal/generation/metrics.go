package generation

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	textGenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gameforge_text_generation_duration_seconds",
			Help:    "Duration of narrative text generation requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider", "status"},
	)

	imageGenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gameforge_image_generation_duration_seconds",
			Help:    "Duration of illustrative image generation requests.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60},
		},
		[]string{"status"},
	)

	generationFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gameforge_generation_fallbacks_total",
			Help: "Count of generation steps served from canned fallback content.",
		},
		[]string{"kind"},
	)
)

func observeTextGeneration(provider string, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	textGenerationDuration.WithLabelValues(provider, status).Observe(d.Seconds())
}

func observeImageGeneration(d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	imageGenerationDuration.WithLabelValues(status).Observe(d.Seconds())
}

func countFallback(kind string) {
	generationFallbacksTotal.WithLabelValues(kind).Inc()
}
