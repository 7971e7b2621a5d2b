package service

import (
	"fmt"

	"github.com/OpenProcure/procure/internal/workflow/model"
)

// ResolvePath computes the ordered step list for a product type and branch
// choice. For IMP items with no branch chosen yet, only the steps resolvable
// without knowing the branch are returned; choosing a branch extends the path.
// The CL catalog is strictly linear and ignores any branch input.
func ResolvePath(productType model.ProductType, branch model.BranchChoice) ([]model.StepID, error) {
	switch productType {
	case model.ProductTypeIMP:
		return impPath(branch), nil
	case model.ProductTypeCL:
		return []model.StepID{
			model.StepRequestQuote,
			model.StepPayQuote,
			model.StepCoordinateShippingFreight,
			model.StepReceived,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProductType, productType)
	}
}

func impPath(branch model.BranchChoice) []model.StepID {
	head := []model.StepID{
		model.StepPayPI,
		model.StepSendLabel,
		model.StepShipDecision,
	}
	switch branch {
	case model.BranchAir:
		return append(head,
			model.StepPayAirFreight,
			model.StepPayCustomsDuty,
			model.StepReceived,
		)
	case model.BranchSea:
		return append(head,
			model.StepPaySeaFreight,
			model.StepCoordinateShipping,
			model.StepPayCustomsDuty,
			model.StepReceived,
		)
	default:
		return head
	}
}

// PathForItem resolves the step list for an item's product type and current
// branch choice.
func PathForItem(item *model.WorkflowItem) ([]model.StepID, error) {
	return ResolvePath(item.ProductType, item.BranchChoice)
}

// stepIndex returns the position of a step in a path, or -1 when the step is
// not part of it.
func stepIndex(path []model.StepID, stepID model.StepID) int {
	for i, id := range path {
		if id == stepID {
			return i
		}
	}
	return -1
}
