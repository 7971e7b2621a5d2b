package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/OpenProcure/procure/internal/workflow/model"
)

func TestResolvePath(t *testing.T) {
	t.Run("IMP Branch Unset", func(t *testing.T) {
		path, err := ResolvePath(model.ProductTypeIMP, model.BranchUnset)
		assert.NoError(t, err)
		assert.Equal(t, []model.StepID{
			model.StepPayPI,
			model.StepSendLabel,
			model.StepShipDecision,
		}, path)
	})

	t.Run("IMP Air Has Six Steps Ending In Received", func(t *testing.T) {
		path, err := ResolvePath(model.ProductTypeIMP, model.BranchAir)
		assert.NoError(t, err)
		assert.Len(t, path, 6)
		assert.Equal(t, model.StepReceived, path[len(path)-1])
		assert.Contains(t, path, model.StepPayAirFreight)
		assert.NotContains(t, path, model.StepPaySeaFreight)
		assert.NotContains(t, path, model.StepCoordinateShipping)
	})

	t.Run("IMP Sea Has Seven Steps Ending In Received", func(t *testing.T) {
		path, err := ResolvePath(model.ProductTypeIMP, model.BranchSea)
		assert.NoError(t, err)
		assert.Len(t, path, 7)
		assert.Equal(t, model.StepReceived, path[len(path)-1])
		assert.Contains(t, path, model.StepPaySeaFreight)
		assert.Contains(t, path, model.StepCoordinateShipping)
		assert.NotContains(t, path, model.StepPayAirFreight)
	})

	t.Run("CL Is Fixed Regardless Of Branch Input", func(t *testing.T) {
		expected := []model.StepID{
			model.StepRequestQuote,
			model.StepPayQuote,
			model.StepCoordinateShippingFreight,
			model.StepReceived,
		}
		for _, branch := range []model.BranchChoice{model.BranchUnset, model.BranchAir, model.BranchSea} {
			path, err := ResolvePath(model.ProductTypeCL, branch)
			assert.NoError(t, err)
			assert.Equal(t, expected, path)
		}
	})

	t.Run("LU Has No Catalog", func(t *testing.T) {
		_, err := ResolvePath(model.ProductTypeLU, model.BranchUnset)
		assert.ErrorIs(t, err, ErrUnsupportedProductType)
	})
}

func TestStepIndex(t *testing.T) {
	path, _ := ResolvePath(model.ProductTypeIMP, model.BranchSea)
	assert.Equal(t, 0, stepIndex(path, model.StepPayPI))
	assert.Equal(t, 4, stepIndex(path, model.StepCoordinateShipping))
	assert.Equal(t, -1, stepIndex(path, model.StepPayAirFreight))
}
