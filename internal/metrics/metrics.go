// Package metrics exposes Prometheus instrumentation for the workflow engine.
// Dashboard counts are keyed by the same status-bucket names the API reports.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/OpenProcure/procure/internal/workflow/model"
)

const (
	DirectionAdvance = "advance"
	DirectionRetreat = "retreat"
	DirectionBranch  = "branch"
)

var (
	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "procure_workflow_transitions_total",
		Help: "Workflow item transitions, by product type and direction",
	}, []string{"product_type", "direction"})

	validationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "procure_workflow_validation_failures_total",
		Help: "Rejected step completions, by step id",
	}, []string{"step"})

	itemsByStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "procure_items_by_status",
		Help: "Current workflow items per status bucket",
	}, []string{"product_type", "status"})
)

// RecordTransition counts a successful advance/retreat/branch transition.
func RecordTransition(productType model.ProductType, direction string) {
	transitionsTotal.WithLabelValues(string(productType), direction).Inc()
}

// RecordValidationFailure counts a step completion rejected by the validator.
func RecordValidationFailure(stepID model.StepID) {
	validationFailuresTotal.WithLabelValues(string(stepID)).Inc()
}

// SetItemsByStatus updates the per-bucket item gauge for one product type.
func SetItemsByStatus(productType model.ProductType, bucket model.StatusBucket, count int64) {
	itemsByStatus.WithLabelValues(string(productType), string(bucket)).Set(float64(count))
}
