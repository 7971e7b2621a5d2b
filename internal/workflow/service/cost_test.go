package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/OpenProcure/procure/internal/workflow/model"
)

func TestTotalCost(t *testing.T) {
	t.Run("IMP Sums PI Plus Chosen Freight Plus Customs", func(t *testing.T) {
		item := newIMPItem()
		item.BranchChoice = model.BranchAir
		item.StepData.PIAmount = amt(100)
		item.StepData.AirFreightCost = amt(50)
		item.StepData.CustomsDutyAmount = amt(25)

		assert.Equal(t, 175.0, TotalCost(item))
	})

	t.Run("Only Chosen Branch Freight Contributes", func(t *testing.T) {
		item := newIMPItem()
		item.BranchChoice = model.BranchSea
		item.StepData.PIAmount = amt(100)
		item.StepData.AirFreightCost = amt(50)
		item.StepData.SeaFreightCost = amt(30)

		assert.Equal(t, 130.0, TotalCost(item))
	})

	t.Run("Unset Amounts Count As Zero", func(t *testing.T) {
		item := newIMPItem()
		item.StepData.PIAmount = amt(100)

		assert.Equal(t, 100.0, TotalCost(item))
		assert.Equal(t, 0.0, TotalCost(newIMPItem()))
	})

	t.Run("No Branch Chosen Drops Both Freight Terms", func(t *testing.T) {
		item := newIMPItem()
		item.StepData.PIAmount = amt(100)
		item.StepData.AirFreightCost = amt(50)

		assert.Equal(t, 100.0, TotalCost(item))
	})

	t.Run("CL Total Is The Quote Amount", func(t *testing.T) {
		item := newCLItem()
		item.StepData.QuoteAmount = amt(420)

		assert.Equal(t, 420.0, TotalCost(item))
	})

	t.Run("Unsupported Product Type Totals Zero", func(t *testing.T) {
		item := &model.WorkflowItem{ProductType: model.ProductTypeLU}
		item.StepData.PIAmount = amt(100)

		assert.Equal(t, 0.0, TotalCost(item))
	})
}
