package service

import (
	"fmt"

	"github.com/OpenProcure/procure/internal/workflow/model"
)

// WorkflowStateMachine drives a single workflow item through its resolved step
// path. All transitions are synchronous and operate on the in-memory item; the
// item service wraps them in a database transaction. An item is mutated only
// when the transition succeeds.
type WorkflowStateMachine struct{}

// NewWorkflowStateMachine creates a new instance of WorkflowStateMachine.
func NewWorkflowStateMachine() *WorkflowStateMachine {
	return &WorkflowStateMachine{}
}

// Advance validates the current step and moves the item one step forward in
// its resolved path. A failed validation returns a *ValidationError and leaves
// the item unchanged; the shipping decision without a chosen branch returns a
// *InvalidBranchError.
func (sm *WorkflowStateMachine) Advance(item *model.WorkflowItem) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}
	if item.Received() {
		return ErrTerminalItem
	}

	path, err := PathForItem(item)
	if err != nil {
		return err
	}
	idx := stepIndex(path, item.CurrentStepID)
	if idx < 0 {
		return &UnknownStepError{ProductType: item.ProductType, StepID: item.CurrentStepID}
	}

	step, _ := CatalogStep(item.ProductType, item.CurrentStepID)
	if step.BranchPoint && item.BranchChoice == model.BranchUnset {
		return &InvalidBranchError{Reason: "shipping decision requires a branch choice"}
	}

	if fieldErrors := Validate(item.CurrentStepID, item); len(fieldErrors) > 0 {
		return &ValidationError{StepID: item.CurrentStepID, Fields: fieldErrors}
	}

	if idx+1 >= len(path) {
		// The branch point is the last resolvable step until a branch is
		// chosen; with the branch validated above this only happens for a
		// malformed catalog.
		return fmt.Errorf("step %s has no successor in the resolved path", item.CurrentStepID)
	}

	item.CurrentStepID = path[idx+1]
	return nil
}

// Retreat moves the item one step back in its resolved path. No validation is
// required to go backwards. Terminal items are not mutated.
func (sm *WorkflowStateMachine) Retreat(item *model.WorkflowItem) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}
	if item.Received() {
		return ErrTerminalItem
	}

	path, err := PathForItem(item)
	if err != nil {
		return err
	}
	idx := stepIndex(path, item.CurrentStepID)
	if idx < 0 {
		return &UnknownStepError{ProductType: item.ProductType, StepID: item.CurrentStepID}
	}
	if idx == 0 {
		return ErrNoPreviousStep
	}

	item.CurrentStepID = path[idx-1]
	return nil
}

// ChooseBranch records the air/sea freight decision of an IMP item and
// re-derives the step path. Changing the choice is allowed until a freight
// cost has been recorded. The current step is clamped to the highest index
// still valid in the new path, so the item never points at a step that no
// longer exists for the chosen branch.
func (sm *WorkflowStateMachine) ChooseBranch(item *model.WorkflowItem, choice model.BranchChoice) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}
	if item.ProductType != model.ProductTypeIMP {
		return &InvalidBranchError{Reason: fmt.Sprintf("product type %s has no freight branch", item.ProductType)}
	}
	if choice != model.BranchAir && choice != model.BranchSea {
		return &InvalidBranchError{Reason: fmt.Sprintf("choice must be air or sea, got %q", choice)}
	}
	if item.Received() {
		return ErrTerminalItem
	}
	if item.BranchChoice == choice {
		return nil
	}
	if item.StepData.FreightRecorded() {
		return &InvalidBranchError{Reason: "branch is locked once a freight cost has been recorded"}
	}

	oldPath, err := PathForItem(item)
	if err != nil {
		return err
	}
	currentIdx := stepIndex(oldPath, item.CurrentStepID)

	item.BranchChoice = choice

	newPath, err := PathForItem(item)
	if err != nil {
		return err
	}
	decisionIdx := stepIndex(newPath, model.StepShipDecision)
	if currentIdx < 0 || currentIdx > decisionIdx {
		currentIdx = decisionIdx
	}
	item.CurrentStepID = newPath[currentIdx]
	return nil
}
