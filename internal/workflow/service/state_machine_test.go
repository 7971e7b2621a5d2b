package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/OpenProcure/procure/internal/workflow/model"
)

func TestWorkflowStateMachine_Advance(t *testing.T) {
	sm := NewWorkflowStateMachine()

	t.Run("Moves To Next Step When Valid", func(t *testing.T) {
		item := newIMPItem()
		item.StepData.PIAmount = amt(100)

		err := sm.Advance(item)
		assert.NoError(t, err)
		assert.Equal(t, model.StepSendLabel, item.CurrentStepID)
	})

	t.Run("Validation Failure Leaves Item Unchanged", func(t *testing.T) {
		item := newIMPItem()
		item.StepData.PIAmount = amt(0)

		err := sm.Advance(item)

		var valErr *ValidationError
		assert.ErrorAs(t, err, &valErr)
		assert.Equal(t, model.StepPayPI, valErr.StepID)
		assert.Len(t, valErr.Fields, 1)
		assert.Equal(t, model.FieldPIAmount, valErr.Fields[0].Field)
		assert.Equal(t, model.StepPayPI, item.CurrentStepID)
	})

	t.Run("Ship Decision Without Branch Is Rejected", func(t *testing.T) {
		item := newIMPItem()
		item.CurrentStepID = model.StepShipDecision

		err := sm.Advance(item)

		var branchErr *InvalidBranchError
		assert.ErrorAs(t, err, &branchErr)
		assert.Equal(t, model.StepShipDecision, item.CurrentStepID)
	})

	t.Run("Ship Decision With Branch Enters Branch Steps", func(t *testing.T) {
		item := newIMPItem()
		item.CurrentStepID = model.StepShipDecision
		item.BranchChoice = model.BranchAir

		err := sm.Advance(item)
		assert.NoError(t, err)
		assert.Equal(t, model.StepPayAirFreight, item.CurrentStepID)
	})

	t.Run("Full Sea Flow Reaches Received", func(t *testing.T) {
		item := newIMPItem()
		item.BranchChoice = model.BranchSea
		item.StepData.PIAmount = amt(100)
		item.StepData.SeaFreightCost = amt(30)
		item.StepData.CustomsDutyAmount = amt(25)

		for !item.Received() {
			assert.NoError(t, sm.Advance(item))
		}
		assert.Equal(t, model.StepReceived, item.CurrentStepID)
		assert.Equal(t, 155.0, TotalCost(item))
	})

	t.Run("Terminal Item Cannot Advance", func(t *testing.T) {
		item := newIMPItem()
		item.CurrentStepID = model.StepReceived

		assert.ErrorIs(t, sm.Advance(item), ErrTerminalItem)
	})

	t.Run("Step Outside Resolved Path Is Unknown", func(t *testing.T) {
		item := newIMPItem()
		item.BranchChoice = model.BranchAir
		item.CurrentStepID = model.StepPaySeaFreight

		var unknownErr *UnknownStepError
		assert.ErrorAs(t, sm.Advance(item), &unknownErr)
	})

	t.Run("Nil Item Is Rejected", func(t *testing.T) {
		assert.Error(t, sm.Advance(nil))
	})
}

func TestWorkflowStateMachine_Retreat(t *testing.T) {
	sm := NewWorkflowStateMachine()

	t.Run("Moves One Step Back Without Validation", func(t *testing.T) {
		item := newIMPItem()
		item.CurrentStepID = model.StepSendLabel
		// No PI amount recorded; backwards moves never validate.

		err := sm.Retreat(item)
		assert.NoError(t, err)
		assert.Equal(t, model.StepPayPI, item.CurrentStepID)
	})

	t.Run("First Step Has No Predecessor", func(t *testing.T) {
		item := newIMPItem()
		assert.ErrorIs(t, sm.Retreat(item), ErrNoPreviousStep)
	})

	t.Run("Terminal Item Cannot Retreat", func(t *testing.T) {
		item := newCLItem()
		item.CurrentStepID = model.StepReceived
		assert.ErrorIs(t, sm.Retreat(item), ErrTerminalItem)
	})

	t.Run("Retreat Then Advance Returns To Same Step", func(t *testing.T) {
		item := newIMPItem()
		item.BranchChoice = model.BranchSea
		item.CurrentStepID = model.StepPaySeaFreight
		item.StepData.PIAmount = amt(100)

		assert.NoError(t, sm.Retreat(item))
		assert.Equal(t, model.StepShipDecision, item.CurrentStepID)
		assert.NoError(t, sm.Advance(item))
		assert.Equal(t, model.StepPaySeaFreight, item.CurrentStepID)
	})
}

func TestWorkflowStateMachine_ChooseBranch(t *testing.T) {
	sm := NewWorkflowStateMachine()

	t.Run("Records Choice Before The Decision Step", func(t *testing.T) {
		item := newIMPItem()

		err := sm.ChooseBranch(item, model.BranchAir)
		assert.NoError(t, err)
		assert.Equal(t, model.BranchAir, item.BranchChoice)
		assert.Equal(t, model.StepPayPI, item.CurrentStepID)
	})

	t.Run("Switching Unlocked Branch Clamps To Decision Step", func(t *testing.T) {
		item := newIMPItem()
		item.BranchChoice = model.BranchAir
		item.CurrentStepID = model.StepPayAirFreight

		err := sm.ChooseBranch(item, model.BranchSea)
		assert.NoError(t, err)
		assert.Equal(t, model.BranchSea, item.BranchChoice)
		assert.Equal(t, model.StepShipDecision, item.CurrentStepID)
	})

	t.Run("Branch Is Locked After Freight Recorded", func(t *testing.T) {
		item := newIMPItem()
		item.BranchChoice = model.BranchAir
		item.CurrentStepID = model.StepPayAirFreight
		item.StepData.AirFreightCost = amt(50)

		var branchErr *InvalidBranchError
		assert.ErrorAs(t, sm.ChooseBranch(item, model.BranchSea), &branchErr)
		assert.Equal(t, model.BranchAir, item.BranchChoice)
	})

	t.Run("Reaffirming Locked Branch Is Allowed", func(t *testing.T) {
		item := newIMPItem()
		item.BranchChoice = model.BranchSea
		item.CurrentStepID = model.StepCoordinateShipping
		item.StepData.SeaFreightCost = amt(30)

		err := sm.ChooseBranch(item, model.BranchSea)
		assert.NoError(t, err)
		assert.Equal(t, model.StepCoordinateShipping, item.CurrentStepID)
	})

	t.Run("CL Items Have No Branch", func(t *testing.T) {
		var branchErr *InvalidBranchError
		assert.ErrorAs(t, sm.ChooseBranch(newCLItem(), model.BranchAir), &branchErr)
	})

	t.Run("Choice Must Be Air Or Sea", func(t *testing.T) {
		var branchErr *InvalidBranchError
		assert.ErrorAs(t, sm.ChooseBranch(newIMPItem(), model.BranchUnset), &branchErr)
		assert.ErrorAs(t, sm.ChooseBranch(newIMPItem(), model.BranchChoice("rail")), &branchErr)
	})

	t.Run("Terminal Item Keeps Its Branch", func(t *testing.T) {
		item := newIMPItem()
		item.BranchChoice = model.BranchAir
		item.CurrentStepID = model.StepReceived
		assert.ErrorIs(t, sm.ChooseBranch(item, model.BranchSea), ErrTerminalItem)
	})
}
