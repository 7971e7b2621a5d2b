package model

import (
	"github.com/google/uuid"
)

// StepData is the open bag of monetary figures and notes accumulated while an
// item moves through its workflow. Amounts use pointer fields so "not yet
// recorded" is distinguishable from zero. Stored as a jsonb column.
type StepData struct {
	PIAmount          *float64          `json:"piAmount,omitempty"`          // Proforma invoice amount, recorded at pay_pi
	AirFreightCost    *float64          `json:"airFreightCost,omitempty"`    // Only when branch is air
	SeaFreightCost    *float64          `json:"seaFreightCost,omitempty"`    // Only when branch is sea
	CustomsDutyAmount *float64          `json:"customsDutyAmount,omitempty"` // Recorded at pay_customs_duty
	QuoteAmount       *float64          `json:"quoteAmount,omitempty"`       // CL flow, recorded at pay_quote
	Notes             map[StepID]string `json:"notes,omitempty"`             // Free-text note per step
}

// FreightRecorded reports whether either freight amount has been captured.
// Once true the branch choice is locked in.
func (d StepData) FreightRecorded() bool {
	return d.AirFreightCost != nil || d.SeaFreightCost != nil
}

// WorkflowItem is one tracked product/transaction moving from supplier
// commitment through payment, freight, customs and receipt.
type WorkflowItem struct {
	BaseModel
	ProjectID       uuid.UUID    `gorm:"type:uuid;column:project_id;not null;index" json:"projectId"` // Owning project; project lifecycle is external
	ProductType     ProductType  `gorm:"type:varchar(10);column:product_type;not null" json:"productType"`
	ProductName     string       `gorm:"type:varchar(255);column:product_name;not null" json:"productName"`
	Quantity        int          `gorm:"column:quantity;not null" json:"quantity"`
	SupplierName    string       `gorm:"type:varchar(255);column:supplier_name;not null" json:"supplierName"`
	SupplierContact string       `gorm:"type:varchar(255);column:supplier_contact" json:"supplierContact"`
	CurrentStepID   StepID       `gorm:"type:varchar(50);column:current_step_id;not null" json:"currentStepId"`
	BranchChoice    BranchChoice `gorm:"type:varchar(10);column:branch_choice" json:"branchChoice"`
	StepData        StepData     `gorm:"type:jsonb;column:step_data;serializer:json" json:"stepData"`
	CreatedBy       string       `gorm:"type:varchar(255);column:created_by" json:"createdBy"`
}

func (wi *WorkflowItem) TableName() string {
	return "workflow_items"
}

// Received reports whether the item has reached the terminal step.
// Terminal items are never mutated by the workflow engine.
func (wi *WorkflowItem) Received() bool {
	return wi.CurrentStepID == StepReceived
}
