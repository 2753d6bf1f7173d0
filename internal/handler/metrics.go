package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	conceptsGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gameforge_concepts_generated_total",
			Help: "Count of successfully generated concepts.",
		},
		[]string{"mode"}, // brief or explore
	)

	favoriteTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gameforge_favorite_toggles_total",
			Help: "Count of favorite toggle operations by resulting state.",
		},
		[]string{"state"},
	)

	pdfExportsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gameforge_pdf_exports_total",
			Help: "Count of concept PDF downloads.",
		},
	)

	httpErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gameforge_http_errors_total",
			Help: "Count of error responses by error code.",
		},
		[]string{"code"},
	)
)

func countHTTPError(code string) {
	httpErrorsTotal.WithLabelValues(code).Inc()
}
