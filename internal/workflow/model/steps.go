package model

// ProductType determines which step catalog a workflow item follows.
type ProductType string

const (
	ProductTypeLU  ProductType = "LU"  // Local unit, tracked outside this workflow
	ProductTypeCL  ProductType = "CL"  // Quotation flow: request quote -> pay -> ship -> receipt
	ProductTypeIMP ProductType = "IMP" // Import flow: supplier payment -> freight -> customs -> receipt
)

// BranchChoice selects the freight leg of an IMP workflow. Empty until the
// shipping decision step is completed.
type BranchChoice string

const (
	BranchUnset BranchChoice = ""
	BranchAir   BranchChoice = "air"
	BranchSea   BranchChoice = "sea"
)

// StepID identifies a single step in a workflow catalog.
type StepID string

// IMP step ids.
const (
	StepPayPI              StepID = "pay_pi"
	StepSendLabel          StepID = "send_label"
	StepShipDecision       StepID = "ship_decision"
	StepPayAirFreight      StepID = "pay_air_freight"
	StepPaySeaFreight      StepID = "pay_sea_freight"
	StepCoordinateShipping StepID = "coordinate_shipping"
	StepPayCustomsDuty     StepID = "pay_customs_duty"
	StepReceived           StepID = "received"
)

// CL step ids. StepReceived is shared between both catalogs.
const (
	StepRequestQuote              StepID = "request_quote"
	StepPayQuote                  StepID = "pay_quote"
	StepCoordinateShippingFreight StepID = "coordinate_shipping_freight"
)

// StatusBucket is the coarse dashboard category derived from the current step.
// Bucket names are a cross-boundary contract consumed by dashboard aggregation
// and must not change.
type StatusBucket string

const (
	StatusAwaitingPIPayment            StatusBucket = "awaiting_pi_payment"
	StatusAwaitingShippingLabel        StatusBucket = "awaiting_shipping_label"
	StatusAwaitingShippingCoordination StatusBucket = "awaiting_shipping_coordination"
	StatusAwaitingCustomsPayment       StatusBucket = "awaiting_customs_payment"
	StatusAwaitingQuoteRequest         StatusBucket = "awaiting_quote_request"
	StatusAwaitingQuotePayment         StatusBucket = "awaiting_quote_payment"
	StatusReceived                     StatusBucket = "received"
)

// BucketsForProductType returns every bucket a product type can report,
// so dashboards always see a stable key set even when counts are zero.
func BucketsForProductType(productType ProductType) []StatusBucket {
	switch productType {
	case ProductTypeIMP:
		return []StatusBucket{
			StatusAwaitingPIPayment,
			StatusAwaitingShippingLabel,
			StatusAwaitingShippingCoordination,
			StatusAwaitingCustomsPayment,
			StatusReceived,
		}
	case ProductTypeCL:
		return []StatusBucket{
			StatusAwaitingQuoteRequest,
			StatusAwaitingQuotePayment,
			StatusAwaitingShippingCoordination,
			StatusReceived,
		}
	default:
		return nil
	}
}
