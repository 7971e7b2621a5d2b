package uploads

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/OpenProcure/procure/internal/workflow/model"
)

const maxAttachmentSize = 32 << 20 // 32MB

// HTTPHandler exposes step attachment upload and download endpoints.
type HTTPHandler struct {
	Service *AttachmentService
}

func NewHTTPHandler(service *AttachmentService) *HTTPHandler {
	return &HTTPHandler{Service: service}
}

// RegisterRoutes attaches the attachment endpoints to the gin engine.
func (h *HTTPHandler) RegisterRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")
	v1.POST("/items/:id/attachments", h.Upload)
	v1.GET("/items/:id/attachments", h.List)
	v1.GET("/attachments/:key/content", h.Download)
}

// Upload handles POST /api/v1/items/:id/attachments
// Multipart form: file (required), stepId (required), uploadedBy (optional)
func (h *HTTPHandler) Upload(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id: " + err.Error()})
		return
	}

	stepID := model.StepID(c.PostForm("stepId"))
	if stepID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stepId is required"})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if header.Size > maxAttachmentSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds maximum attachment size"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}
	defer file.Close()

	attachment, err := h.Service.Attach(
		c.Request.Context(),
		itemID,
		stepID,
		header.Filename,
		file,
		header.Size,
		header.Header.Get("Content-Type"),
		c.PostForm("uploadedBy"),
	)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "attachment upload failed", "item_id", itemID, "error", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, attachment)
}

// List handles GET /api/v1/items/:id/attachments
func (h *HTTPHandler) List(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id: " + err.Error()})
		return
	}

	attachments, err := h.Service.ListByItem(c.Request.Context(), itemID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, attachments)
}

// Download handles GET /api/v1/attachments/:key/content
func (h *HTTPHandler) Download(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key is required"})
		return
	}

	reader, contentType, err := h.Service.Download(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "attachment not found"})
		return
	}
	defer reader.Close()

	c.Header("Content-Type", contentType)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		slog.ErrorContext(c.Request.Context(), "attachment download failed", "key", key, "error", err)
	}
}
