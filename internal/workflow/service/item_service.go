package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OpenProcure/procure/internal/metrics"
	"github.com/OpenProcure/procure/internal/workflow/model"
	"github.com/OpenProcure/procure/utils"
)

// WorkflowItemService persists workflow items and applies state machine
// transitions inside database transactions. Updates are last-writer-wins;
// there is no optimistic version check on the item row.
type WorkflowItemService struct {
	db *gorm.DB
	sm *WorkflowStateMachine
}

func NewWorkflowItemService(db *gorm.DB) *WorkflowItemService {
	return &WorkflowItemService{
		db: db,
		sm: NewWorkflowStateMachine(),
	}
}

// CreateItem creates a workflow item positioned at the first step of its
// catalog. LU products are tracked outside this workflow and are rejected.
func (s *WorkflowItemService) CreateItem(ctx context.Context, createReq *model.CreateWorkflowItemDTO) (*model.WorkflowItem, error) {
	if createReq == nil {
		return nil, fmt.Errorf("create request cannot be nil")
	}

	path, err := ResolvePath(createReq.ProductType, model.BranchUnset)
	if err != nil {
		return nil, err
	}

	projectID, err := uuid.Parse(createReq.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("invalid project ID: %w", err)
	}

	item := &model.WorkflowItem{
		ProjectID:       projectID,
		ProductType:     createReq.ProductType,
		ProductName:     createReq.ProductName,
		Quantity:        createReq.Quantity,
		SupplierName:    createReq.SupplierName,
		SupplierContact: createReq.SupplierContact,
		CurrentStepID:   path[0],
		BranchChoice:    model.BranchUnset,
		CreatedBy:       createReq.CreatedBy,
	}

	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to create workflow item: %w", err)
	}
	return item, nil
}

// GetItemByID retrieves a single workflow item.
func (s *WorkflowItemService) GetItemByID(ctx context.Context, itemID uuid.UUID) (*model.WorkflowItem, error) {
	if itemID == uuid.Nil {
		return nil, fmt.Errorf("item ID cannot be nil")
	}

	var item model.WorkflowItem
	result := s.db.WithContext(ctx).First(&item, "id = ?", itemID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
		}
		return nil, fmt.Errorf("failed to retrieve workflow item: %w", result.Error)
	}
	return &item, nil
}

// GetItemsByProjectID lists the workflow items of a project, newest first.
func (s *WorkflowItemService) GetItemsByProjectID(ctx context.Context, projectID uuid.UUID, offset *int, limit *int) ([]model.WorkflowItem, error) {
	if projectID == uuid.Nil {
		return nil, fmt.Errorf("project ID cannot be nil")
	}

	finalOffset, finalLimit := utils.GetPaginationParams(offset, limit)

	var items []model.WorkflowItem
	result := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Offset(finalOffset).
		Limit(finalLimit).
		Find(&items)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to retrieve workflow items: %w", result.Error)
	}
	return items, nil
}

// AdvanceItem applies the step data patch and moves the item forward one step.
// The patch and the transition share a transaction, so a rejected validation
// leaves the persisted instance unchanged.
func (s *WorkflowItemService) AdvanceItem(ctx context.Context, itemID uuid.UUID, patch *model.StepDataPatchDTO) (*model.WorkflowItem, error) {
	item, err := s.transitionInTx(ctx, itemID, func(item *model.WorkflowItem) error {
		if err := s.applyPatch(item, patch); err != nil {
			return err
		}
		return s.sm.Advance(item)
	})
	if err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			metrics.RecordValidationFailure(validationErr.StepID)
		}
		return nil, err
	}

	metrics.RecordTransition(item.ProductType, metrics.DirectionAdvance)
	return item, nil
}

// RetreatItem moves the item back to the previous step without validation.
func (s *WorkflowItemService) RetreatItem(ctx context.Context, itemID uuid.UUID) (*model.WorkflowItem, error) {
	item, err := s.transitionInTx(ctx, itemID, s.sm.Retreat)
	if err != nil {
		return nil, err
	}

	metrics.RecordTransition(item.ProductType, metrics.DirectionRetreat)
	return item, nil
}

// ChooseBranch records the freight decision of an IMP item, re-deriving its
// path and clamping the current step.
func (s *WorkflowItemService) ChooseBranch(ctx context.Context, itemID uuid.UUID, choice model.BranchChoice) (*model.WorkflowItem, error) {
	item, err := s.transitionInTx(ctx, itemID, func(item *model.WorkflowItem) error {
		return s.sm.ChooseBranch(item, choice)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordTransition(item.ProductType, metrics.DirectionBranch)
	return item, nil
}

// RecordStepData merges a step data patch without moving the item. Used when
// figures arrive before the operator is ready to complete the step.
func (s *WorkflowItemService) RecordStepData(ctx context.Context, itemID uuid.UUID, patch *model.StepDataPatchDTO) (*model.WorkflowItem, error) {
	return s.transitionInTx(ctx, itemID, func(item *model.WorkflowItem) error {
		return s.applyPatch(item, patch)
	})
}

// transitionInTx loads the item, runs the mutation and saves the result in one
// transaction. The save is a plain last-writer-wins update.
func (s *WorkflowItemService) transitionInTx(ctx context.Context, itemID uuid.UUID, mutate func(*model.WorkflowItem) error) (*model.WorkflowItem, error) {
	if itemID == uuid.Nil {
		return nil, fmt.Errorf("item ID cannot be nil")
	}

	var item model.WorkflowItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
			}
			return fmt.Errorf("failed to retrieve workflow item: %w", err)
		}

		if err := mutate(&item); err != nil {
			return err
		}

		if err := tx.Save(&item).Error; err != nil {
			return fmt.Errorf("failed to update workflow item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// applyPatch validates incoming figures and merges them into the item's step
// data. Amounts must be non-negative, and freight costs are only accepted for
// the chosen branch so the air/sea exclusivity invariant holds.
func (s *WorkflowItemService) applyPatch(item *model.WorkflowItem, patch *model.StepDataPatchDTO) error {
	if patch == nil {
		return nil
	}

	var fieldErrors []FieldError
	checkNonNegative := func(field string, amount *float64) {
		if amount != nil && *amount < 0 {
			fieldErrors = append(fieldErrors, FieldError{Field: field, Message: "must not be negative"})
		}
	}
	checkNonNegative(model.FieldPIAmount, patch.PIAmount)
	checkNonNegative(model.FieldAirFreightCost, patch.AirFreightCost)
	checkNonNegative(model.FieldSeaFreightCost, patch.SeaFreightCost)
	checkNonNegative(model.FieldCustomsDutyAmount, patch.CustomsDutyAmount)
	checkNonNegative(model.FieldQuoteAmount, patch.QuoteAmount)

	if patch.AirFreightCost != nil && item.BranchChoice != model.BranchAir {
		fieldErrors = append(fieldErrors, FieldError{Field: model.FieldAirFreightCost, Message: "requires branch choice air"})
	}
	if patch.SeaFreightCost != nil && item.BranchChoice != model.BranchSea {
		fieldErrors = append(fieldErrors, FieldError{Field: model.FieldSeaFreightCost, Message: "requires branch choice sea"})
	}

	if len(fieldErrors) > 0 {
		return &ValidationError{StepID: item.CurrentStepID, Fields: fieldErrors}
	}

	item.StepData.Apply(patch, item.CurrentStepID)
	return nil
}

// ProjectStatusSummary maps every item of a project to its status bucket and
// returns the aggregate counts. The full bucket set is zero-initialized so
// dashboards always receive a stable key set.
func (s *WorkflowItemService) ProjectStatusSummary(ctx context.Context, projectID uuid.UUID) (*model.ProjectStatusSummaryDTO, error) {
	if projectID == uuid.Nil {
		return nil, fmt.Errorf("project ID cannot be nil")
	}

	var items []model.WorkflowItem
	result := s.db.WithContext(ctx).Where("project_id = ?", projectID).Find(&items)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to retrieve workflow items: %w", result.Error)
	}

	counts := make(map[model.StatusBucket]int64)
	for _, productType := range []model.ProductType{model.ProductTypeIMP, model.ProductTypeCL} {
		for _, bucket := range model.BucketsForProductType(productType) {
			counts[bucket] = 0
		}
	}
	for i := range items {
		counts[StatusBucketForItem(&items[i])]++
	}

	return &model.ProjectStatusSummaryDTO{
		ProjectID: projectID,
		Counts:    counts,
		Total:     int64(len(items)),
	}, nil
}

// GlobalStatusCounts aggregates bucket counts across all projects, grouped by
// product type. Used to refresh the Prometheus status gauges.
func (s *WorkflowItemService) GlobalStatusCounts(ctx context.Context) (map[model.ProductType]map[model.StatusBucket]int64, error) {
	var items []model.WorkflowItem
	if err := s.db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve workflow items: %w", err)
	}

	counts := map[model.ProductType]map[model.StatusBucket]int64{
		model.ProductTypeIMP: {},
		model.ProductTypeCL:  {},
	}
	for productType, buckets := range counts {
		for _, bucket := range model.BucketsForProductType(productType) {
			buckets[bucket] = 0
		}
	}
	for i := range items {
		item := &items[i]
		if _, ok := counts[item.ProductType]; !ok {
			continue
		}
		counts[item.ProductType][StatusBucketForItem(item)]++
	}
	return counts, nil
}

// ToResponseDTO enriches an item with its resolved path, status bucket and
// running total.
func (s *WorkflowItemService) ToResponseDTO(item *model.WorkflowItem) *model.WorkflowItemResponseDTO {
	path, err := PathForItem(item)
	if err != nil {
		path = nil
	}

	return &model.WorkflowItemResponseDTO{
		ID:              item.ID,
		ProjectID:       item.ProjectID,
		ProductType:     item.ProductType,
		ProductName:     item.ProductName,
		Quantity:        item.Quantity,
		SupplierName:    item.SupplierName,
		SupplierContact: item.SupplierContact,
		CurrentStepID:   item.CurrentStepID,
		BranchChoice:    item.BranchChoice,
		StepData:        item.StepData,
		Path:            path,
		StatusBucket:    StatusBucketForItem(item),
		TotalCost:       TotalCost(item),
		CreatedBy:       item.CreatedBy,
		CreatedAt:       item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
