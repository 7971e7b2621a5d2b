package service

import (
	"strings"

	"github.com/OpenProcure/procure/internal/workflow/model"
)

// Validate checks the accumulated data of an item against the required-field
// table of a catalog step. It returns one FieldError per offending field and
// an empty slice when the step may be completed. Unknown or extra step data
// fields are ignored, never rejected.
func Validate(stepID model.StepID, item *model.WorkflowItem) []FieldError {
	step, ok := CatalogStep(item.ProductType, stepID)
	if !ok {
		return []FieldError{{Field: "currentStepId", Message: "unknown step " + string(stepID)}}
	}

	var fieldErrors []FieldError
	for _, rule := range step.Requires {
		if fe := checkRule(rule, item); fe != nil {
			fieldErrors = append(fieldErrors, *fe)
		}
	}
	return fieldErrors
}

func checkRule(rule FieldRule, item *model.WorkflowItem) *FieldError {
	switch rule.Rule {
	case RuleTextPresent:
		if strings.TrimSpace(textField(rule.Field, item)) == "" {
			return &FieldError{Field: rule.Field, Message: "is required"}
		}
	case RuleQuantityAtLeastOne:
		if item.Quantity < 1 {
			return &FieldError{Field: rule.Field, Message: "must be at least 1"}
		}
	case RuleAmountPositive:
		amount := item.StepData.Amount(rule.Field)
		if amount == nil {
			return &FieldError{Field: rule.Field, Message: "is required"}
		}
		if *amount <= 0 {
			return &FieldError{Field: rule.Field, Message: "must be greater than 0"}
		}
	case RuleBranchChosen:
		if item.BranchChoice != model.BranchAir && item.BranchChoice != model.BranchSea {
			return &FieldError{Field: rule.Field, Message: "must be air or sea"}
		}
	}
	return nil
}

func textField(field string, item *model.WorkflowItem) string {
	switch field {
	case model.FieldProductName:
		return item.ProductName
	case model.FieldSupplierName:
		return item.SupplierName
	default:
		return ""
	}
}
