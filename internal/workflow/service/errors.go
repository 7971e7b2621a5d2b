package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/OpenProcure/procure/internal/workflow/model"
)

// Sentinel errors for conditions callers branch on.
var (
	// ErrItemNotFound — no workflow item with the requested ID.
	ErrItemNotFound = errors.New("workflow item not found")

	// ErrTerminalItem — the item has reached "received" and is no longer mutated.
	ErrTerminalItem = errors.New("workflow item already received")

	// ErrNoPreviousStep — retreat was requested at the first step of the path.
	ErrNoPreviousStep = errors.New("no previous step to retreat to")

	// ErrUnsupportedProductType — the product type has no step catalog (LU).
	ErrUnsupportedProductType = errors.New("product type has no workflow catalog")
)

// FieldError names one offending field on the active step.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError rejects a transition because the active step's required
// fields are missing or invalid. The instance is left unchanged; the caller
// retries with corrected input.
type ValidationError struct {
	StepID model.StepID
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field
	}
	return fmt.Sprintf("step %s validation failed: %s", e.StepID, strings.Join(names, ", "))
}

// InvalidBranchError rejects a branch-related operation: reaching the shipping
// decision without a choice, choosing a branch on a non-IMP item, or changing
// the branch after a freight cost has been recorded.
type InvalidBranchError struct {
	Reason string
}

func (e *InvalidBranchError) Error() string {
	return "invalid branch choice: " + e.Reason
}

// UnknownStepError marks a step id that is not part of the catalog for the
// product type. The status mapper logs it and falls back to the earliest
// bucket so the item stays visible as pending instead of vanishing from
// dashboard totals.
type UnknownStepError struct {
	ProductType model.ProductType
	StepID      model.StepID
}

func (e *UnknownStepError) Error() string {
	return fmt.Sprintf("unknown step %q for product type %s", e.StepID, e.ProductType)
}
