package router

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/OpenProcure/procure/internal/workflow/model"
	"github.com/OpenProcure/procure/internal/workflow/service"
)

// ItemRouter exposes the workflow item operations over HTTP.
type ItemRouter struct {
	items *service.WorkflowItemService
}

func NewItemRouter(items *service.WorkflowItemService) *ItemRouter {
	return &ItemRouter{items: items}
}

// HandleCreateItem handles POST /api/v1/items
// Request body: CreateWorkflowItemDTO
func (ir *ItemRouter) HandleCreateItem(c *gin.Context) {
	var req model.CreateWorkflowItemDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	item, err := ir.items.CreateItem(c.Request.Context(), &req)
	if err != nil {
		respondTransitionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ir.items.ToResponseDTO(item))
}

// HandleGetItem handles GET /api/v1/items/:id
func (ir *ItemRouter) HandleGetItem(c *gin.Context) {
	itemID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	item, err := ir.items.GetItemByID(c.Request.Context(), itemID)
	if err != nil {
		respondTransitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, ir.items.ToResponseDTO(item))
}

// HandleListProjectItems handles GET /api/v1/projects/:projectID/items
// Optional query filters: offset, limit
func (ir *ItemRouter) HandleListProjectItems(c *gin.Context) {
	projectID, ok := parseUUIDParam(c, "projectID")
	if !ok {
		return
	}

	offset, limit, ok := parsePagination(c)
	if !ok {
		return
	}

	items, err := ir.items.GetItemsByProjectID(c.Request.Context(), projectID, offset, limit)
	if err != nil {
		respondTransitionError(c, err)
		return
	}

	responses := make([]*model.WorkflowItemResponseDTO, len(items))
	for i := range items {
		responses[i] = ir.items.ToResponseDTO(&items[i])
	}
	c.JSON(http.StatusOK, responses)
}

// HandleProjectStatusSummary handles GET /api/v1/projects/:projectID/status-summary
// Response: ProjectStatusSummaryDTO with the per-bucket aggregate counts.
func (ir *ItemRouter) HandleProjectStatusSummary(c *gin.Context) {
	projectID, ok := parseUUIDParam(c, "projectID")
	if !ok {
		return
	}

	summary, err := ir.items.ProjectStatusSummary(c.Request.Context(), projectID)
	if err != nil {
		respondTransitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// HandleAdvanceItem handles POST /api/v1/items/:id/advance
// Request body: StepDataPatchDTO, applied before the step is validated.
func (ir *ItemRouter) HandleAdvanceItem(c *gin.Context) {
	itemID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	// The body is optional; steps without monetary fields advance bare.
	var patch model.StepDataPatchDTO
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}
	}

	item, err := ir.items.AdvanceItem(c.Request.Context(), itemID, &patch)
	if err != nil {
		respondTransitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, ir.items.ToResponseDTO(item))
}

// HandleRetreatItem handles POST /api/v1/items/:id/retreat
func (ir *ItemRouter) HandleRetreatItem(c *gin.Context) {
	itemID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	item, err := ir.items.RetreatItem(c.Request.Context(), itemID)
	if err != nil {
		respondTransitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, ir.items.ToResponseDTO(item))
}

// HandleChooseBranch handles POST /api/v1/items/:id/branch
// Request body: ChooseBranchDTO
func (ir *ItemRouter) HandleChooseBranch(c *gin.Context) {
	itemID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req model.ChooseBranchDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	item, err := ir.items.ChooseBranch(c.Request.Context(), itemID, req.BranchChoice)
	if err != nil {
		respondTransitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, ir.items.ToResponseDTO(item))
}

// HandleRecordStepData handles PATCH /api/v1/items/:id/step-data
// Records figures without completing the step.
func (ir *ItemRouter) HandleRecordStepData(c *gin.Context) {
	itemID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var patch model.StepDataPatchDTO
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	item, err := ir.items.RecordStepData(c.Request.Context(), itemID, &patch)
	if err != nil {
		respondTransitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, ir.items.ToResponseDTO(item))
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + ": " + err.Error()})
		return uuid.Nil, false
	}
	return id, true
}

func parsePagination(c *gin.Context) (*int, *int, bool) {
	var offset, limit *int
	if offsetStr := c.Query("offset"); offsetStr != "" {
		v, err := strconv.Atoi(offsetStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'offset' query parameter, must be an integer"})
			return nil, nil, false
		}
		offset = &v
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		v, err := strconv.Atoi(limitStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'limit' query parameter, must be an integer"})
			return nil, nil, false
		}
		limit = &v
	}
	return offset, limit, true
}

// respondTransitionError maps workflow errors onto HTTP statuses. Validation
// failures surface the offending field names so the caller can retry with
// corrected input.
func respondTransitionError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "step validation failed",
			"step":   validationErr.StepID,
			"fields": validationErr.Fields,
		})
		return
	}

	var branchErr *service.InvalidBranchError
	if errors.As(err, &branchErr) {
		c.JSON(http.StatusConflict, gin.H{"error": branchErr.Error()})
		return
	}

	switch {
	case errors.Is(err, service.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrTerminalItem), errors.Is(err, service.ErrNoPreviousStep):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnsupportedProductType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
