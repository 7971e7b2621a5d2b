package workflow

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/OpenProcure/procure/internal/metrics"
	"github.com/OpenProcure/procure/internal/workflow/router"
	"github.com/OpenProcure/procure/internal/workflow/service"
)

// Manager wires the workflow services and routers together and keeps the
// Prometheus status gauges in sync with the database.
type Manager struct {
	itemService     *service.WorkflowItemService
	itemRouter      *router.ItemRouter
	pathRouter      *router.PathRouter
	refreshInterval time.Duration
	ctx             context.Context
	cancel          context.CancelFunc
}

// NewManager creates a workflow manager over the given database connection.
// refreshInterval controls how often the status gauges are recomputed.
func NewManager(db *gorm.DB, refreshInterval time.Duration) *Manager {
	itemService := service.NewWorkflowItemService(db)

	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		itemService:     itemService,
		itemRouter:      router.NewItemRouter(itemService),
		pathRouter:      router.NewPathRouter(),
		refreshInterval: refreshInterval,
		ctx:             ctx,
		cancel:          cancel,
	}
}

// ItemService exposes the item service to collaborators wired in main, such as
// the attachment service which validates step membership.
func (m *Manager) ItemService() *service.WorkflowItemService {
	return m.itemService
}

// RegisterRoutes attaches the workflow endpoints to the gin engine.
func (m *Manager) RegisterRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	v1.POST("/items", m.itemRouter.HandleCreateItem)
	v1.GET("/items/:id", m.itemRouter.HandleGetItem)
	v1.POST("/items/:id/advance", m.itemRouter.HandleAdvanceItem)
	v1.POST("/items/:id/retreat", m.itemRouter.HandleRetreatItem)
	v1.POST("/items/:id/branch", m.itemRouter.HandleChooseBranch)
	v1.PATCH("/items/:id/step-data", m.itemRouter.HandleRecordStepData)

	v1.GET("/projects/:projectID/items", m.itemRouter.HandleListProjectItems)
	v1.GET("/projects/:projectID/status-summary", m.itemRouter.HandleProjectStatusSummary)

	v1.GET("/paths", m.pathRouter.HandleResolvePath)
}

// StartStatusGaugeRefresher periodically recomputes the per-bucket item
// counts and pushes them into the Prometheus gauges.
func (m *Manager) StartStatusGaugeRefresher() {
	go func() {
		ticker := time.NewTicker(m.refreshInterval)
		defer ticker.Stop()

		m.RefreshStatusGauges(m.ctx)
		for {
			select {
			case <-m.ctx.Done():
				return
			case <-ticker.C:
				m.RefreshStatusGauges(m.ctx)
			}
		}
	}()
}

// StopStatusGaugeRefresher stops the background refresher.
func (m *Manager) StopStatusGaugeRefresher() {
	m.cancel()
}

// RefreshStatusGauges recomputes the status-bucket gauges once.
func (m *Manager) RefreshStatusGauges(ctx context.Context) {
	counts, err := m.itemService.GlobalStatusCounts(ctx)
	if err != nil {
		slog.Error("failed to refresh status gauges", "error", err)
		return
	}
	for productType, buckets := range counts {
		for bucket, count := range buckets {
			metrics.SetItemsByStatus(productType, bucket, count)
		}
	}
}
