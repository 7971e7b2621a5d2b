package service

import (
	"log/slog"

	"github.com/OpenProcure/procure/internal/workflow/model"
)

var impStatusBuckets = map[model.StepID]model.StatusBucket{
	model.StepPayPI:              model.StatusAwaitingPIPayment,
	model.StepSendLabel:          model.StatusAwaitingShippingLabel,
	model.StepShipDecision:       model.StatusAwaitingShippingCoordination,
	model.StepPayAirFreight:      model.StatusAwaitingShippingCoordination,
	model.StepPaySeaFreight:      model.StatusAwaitingShippingCoordination,
	model.StepCoordinateShipping: model.StatusAwaitingShippingCoordination,
	model.StepPayCustomsDuty:     model.StatusAwaitingCustomsPayment,
	model.StepReceived:           model.StatusReceived,
}

var clStatusBuckets = map[model.StepID]model.StatusBucket{
	model.StepRequestQuote:              model.StatusAwaitingQuoteRequest,
	model.StepPayQuote:                  model.StatusAwaitingQuotePayment,
	model.StepCoordinateShippingFreight: model.StatusAwaitingShippingCoordination,
	model.StepReceived:                  model.StatusReceived,
}

// MapStatus reduces a step id to the coarse dashboard bucket for its product
// type. An unrecognized step id is logged and mapped to the earliest bucket,
// so the item still shows up as pending instead of disappearing from totals.
func MapStatus(productType model.ProductType, stepID model.StepID) model.StatusBucket {
	var bucket model.StatusBucket
	var fallback model.StatusBucket
	var ok bool

	switch productType {
	case model.ProductTypeIMP:
		bucket, ok = impStatusBuckets[stepID]
		fallback = model.StatusAwaitingPIPayment
	case model.ProductTypeCL:
		bucket, ok = clStatusBuckets[stepID]
		fallback = model.StatusAwaitingQuoteRequest
	default:
		// LU and anything else never enter this workflow; report the IMP
		// default so a stray record is at least visible.
		fallback = model.StatusAwaitingPIPayment
	}

	if !ok {
		err := &UnknownStepError{ProductType: productType, StepID: stepID}
		slog.Warn("status mapping fell back to default bucket",
			"error", err,
			"product_type", productType,
			"step_id", stepID,
			"bucket", fallback,
		)
		return fallback
	}
	return bucket
}

// StatusBucketForItem maps an item's current step to its dashboard bucket.
func StatusBucketForItem(item *model.WorkflowItem) model.StatusBucket {
	return MapStatus(item.ProductType, item.CurrentStepID)
}
