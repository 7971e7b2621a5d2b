package model

import "github.com/google/uuid"

// CreateWorkflowItemDTO is the request body for creating a workflow item.
// LU products are rejected by the service; they are tracked outside this workflow.
type CreateWorkflowItemDTO struct {
	ProjectID       string      `json:"projectId" binding:"required,uuid"`
	ProductType     ProductType `json:"productType" binding:"required,oneof=CL IMP LU"`
	ProductName     string      `json:"productName" binding:"required"`
	Quantity        int         `json:"quantity" binding:"required,min=1"`
	SupplierName    string      `json:"supplierName" binding:"required"`
	SupplierContact string      `json:"supplierContact"`
	CreatedBy       string      `json:"createdBy"`
}

// StepDataPatchDTO carries the figures captured while completing a step.
// Nil fields are left untouched; step data never shrinks.
type StepDataPatchDTO struct {
	PIAmount          *float64 `json:"piAmount,omitempty"`
	AirFreightCost    *float64 `json:"airFreightCost,omitempty"`
	SeaFreightCost    *float64 `json:"seaFreightCost,omitempty"`
	CustomsDutyAmount *float64 `json:"customsDutyAmount,omitempty"`
	QuoteAmount       *float64 `json:"quoteAmount,omitempty"`
	Note              *string  `json:"note,omitempty"` // Attached to the step being completed
}

// ChooseBranchDTO selects the freight leg for an IMP item at the shipping decision.
type ChooseBranchDTO struct {
	BranchChoice BranchChoice `json:"branchChoice" binding:"required,oneof=air sea"`
}

// WorkflowItemResponseDTO is a workflow item enriched with the derived figures
// dashboards need: the resolved path, the status bucket and the running total.
type WorkflowItemResponseDTO struct {
	ID              uuid.UUID    `json:"id"`
	ProjectID       uuid.UUID    `json:"projectId"`
	ProductType     ProductType  `json:"productType"`
	ProductName     string       `json:"productName"`
	Quantity        int          `json:"quantity"`
	SupplierName    string       `json:"supplierName"`
	SupplierContact string       `json:"supplierContact,omitempty"`
	CurrentStepID   StepID       `json:"currentStepId"`
	BranchChoice    BranchChoice `json:"branchChoice,omitempty"`
	StepData        StepData     `json:"stepData"`
	Path            []StepID     `json:"path"`
	StatusBucket    StatusBucket `json:"statusBucket"`
	TotalCost       float64      `json:"totalCost"`
	CreatedBy       string       `json:"createdBy,omitempty"`
	CreatedAt       string       `json:"createdAt"`
	UpdatedAt       string       `json:"updatedAt"`
}

// ProjectStatusSummaryDTO is the aggregate bucket count for one project,
// the contract consumed by dashboard/metrics collaborators.
type ProjectStatusSummaryDTO struct {
	ProjectID uuid.UUID              `json:"projectId"`
	Counts    map[StatusBucket]int64 `json:"counts"`
	Total     int64                  `json:"total"`
}
