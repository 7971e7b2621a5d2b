package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OpenProcure/procure/internal/workflow/model"
	"github.com/OpenProcure/procure/internal/workflow/service"
)

// PathRouter exposes the step path resolver so UI collaborators can render
// the remaining steps for a product type and branch without duplicating the
// catalog.
type PathRouter struct{}

func NewPathRouter() *PathRouter {
	return &PathRouter{}
}

// HandleResolvePath handles GET /api/v1/paths
// Query params: productType (required, CL or IMP), branch (optional, air or sea)
func (pr *PathRouter) HandleResolvePath(c *gin.Context) {
	productType := model.ProductType(c.Query("productType"))
	if productType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter: productType"})
		return
	}
	branch := model.BranchChoice(c.Query("branch"))

	path, err := service.ResolvePath(productType, branch)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"productType": productType,
		"branch":      branch,
		"path":        path,
	})
}
