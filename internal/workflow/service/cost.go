package service

import (
	"github.com/OpenProcure/procure/internal/workflow/model"
)

// TotalCost sums the monetary fields captured so far. Unset amounts count as
// zero, so partial totals are meaningful mid-flow. Only the freight term of
// the chosen branch contributes; switching the branch before a freight cost
// is recorded drops the other term. All amounts share one currency.
func TotalCost(item *model.WorkflowItem) float64 {
	data := item.StepData

	switch item.ProductType {
	case model.ProductTypeIMP:
		total := amountOrZero(data.PIAmount)
		switch item.BranchChoice {
		case model.BranchAir:
			total += amountOrZero(data.AirFreightCost)
		case model.BranchSea:
			total += amountOrZero(data.SeaFreightCost)
		}
		return total + amountOrZero(data.CustomsDutyAmount)
	case model.ProductTypeCL:
		return amountOrZero(data.QuoteAmount)
	default:
		return 0
	}
}

func amountOrZero(amount *float64) float64 {
	if amount == nil {
		return 0
	}
	return *amount
}
