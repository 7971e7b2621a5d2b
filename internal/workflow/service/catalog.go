package service

import (
	"github.com/OpenProcure/procure/internal/workflow/model"
)

// FieldRuleKind selects the constraint applied to a required field.
type FieldRuleKind int

const (
	// RuleTextPresent requires a non-empty descriptive field on the item.
	RuleTextPresent FieldRuleKind = iota
	// RuleAmountPositive requires a recorded monetary amount > 0.
	RuleAmountPositive
	// RuleQuantityAtLeastOne requires the item quantity >= 1.
	RuleQuantityAtLeastOne
	// RuleBranchChosen requires the branch choice to be air or sea.
	RuleBranchChosen
)

// FieldRule is one required-field entry of a catalog step.
type FieldRule struct {
	Field string
	Rule  FieldRuleKind
}

// Step is the static catalog description of a single workflow step.
type Step struct {
	ID          model.StepID
	Title       string
	BranchPoint bool // Completing this step determines which later steps exist
	Terminal    bool // No outgoing transitions
	Requires    []FieldRule
}

// Step catalogs per product type. The catalogs are data: per-step validation
// walks the Requires table, so adding a step is a catalog edit.
var (
	impSteps = map[model.StepID]Step{
		model.StepPayPI: {
			ID:    model.StepPayPI,
			Title: "Pay proforma invoice",
			Requires: []FieldRule{
				{Field: model.FieldProductName, Rule: RuleTextPresent},
				{Field: model.FieldSupplierName, Rule: RuleTextPresent},
				{Field: model.FieldQuantity, Rule: RuleQuantityAtLeastOne},
				{Field: model.FieldPIAmount, Rule: RuleAmountPositive},
			},
		},
		model.StepSendLabel: {
			ID:    model.StepSendLabel,
			Title: "Send shipping label",
		},
		model.StepShipDecision: {
			ID:          model.StepShipDecision,
			Title:       "Choose air or sea freight",
			BranchPoint: true,
			Requires: []FieldRule{
				{Field: model.FieldBranchChoice, Rule: RuleBranchChosen},
			},
		},
		model.StepPayAirFreight: {
			ID:    model.StepPayAirFreight,
			Title: "Pay air freight",
			Requires: []FieldRule{
				{Field: model.FieldAirFreightCost, Rule: RuleAmountPositive},
			},
		},
		model.StepPaySeaFreight: {
			ID:    model.StepPaySeaFreight,
			Title: "Pay sea freight",
			Requires: []FieldRule{
				{Field: model.FieldSeaFreightCost, Rule: RuleAmountPositive},
			},
		},
		model.StepCoordinateShipping: {
			ID:    model.StepCoordinateShipping,
			Title: "Coordinate shipping",
		},
		model.StepPayCustomsDuty: {
			ID:    model.StepPayCustomsDuty,
			Title: "Pay customs duty",
			Requires: []FieldRule{
				{Field: model.FieldCustomsDutyAmount, Rule: RuleAmountPositive},
			},
		},
		model.StepReceived: {
			ID:       model.StepReceived,
			Title:    "Received",
			Terminal: true,
		},
	}

	clSteps = map[model.StepID]Step{
		model.StepRequestQuote: {
			ID:    model.StepRequestQuote,
			Title: "Request quotation",
			Requires: []FieldRule{
				{Field: model.FieldProductName, Rule: RuleTextPresent},
				{Field: model.FieldSupplierName, Rule: RuleTextPresent},
				{Field: model.FieldQuantity, Rule: RuleQuantityAtLeastOne},
			},
		},
		model.StepPayQuote: {
			ID:    model.StepPayQuote,
			Title: "Pay quotation",
			Requires: []FieldRule{
				{Field: model.FieldQuoteAmount, Rule: RuleAmountPositive},
			},
		},
		model.StepCoordinateShippingFreight: {
			ID:    model.StepCoordinateShippingFreight,
			Title: "Coordinate shipping and freight",
		},
		model.StepReceived: {
			ID:       model.StepReceived,
			Title:    "Received",
			Terminal: true,
		},
	}
)

// CatalogStep looks up the catalog entry for a step of a product type.
func CatalogStep(productType model.ProductType, stepID model.StepID) (Step, bool) {
	switch productType {
	case model.ProductTypeIMP:
		step, ok := impSteps[stepID]
		return step, ok
	case model.ProductTypeCL:
		step, ok := clSteps[stepID]
		return step, ok
	default:
		return Step{}, false
	}
}
