package uploads

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OpenProcure/procure/internal/workflow/model"
	wfservice "github.com/OpenProcure/procure/internal/workflow/service"
)

// ItemProvider looks up workflow items so attachments can be validated
// against the item's resolved step path.
type ItemProvider interface {
	GetItemByID(ctx context.Context, itemID uuid.UUID) (*model.WorkflowItem, error)
}

// AttachmentService stores proof-of-payment documents for workflow steps and
// keeps their metadata in the database.
type AttachmentService struct {
	db     *gorm.DB
	driver StorageDriver
	items  ItemProvider
}

func NewAttachmentService(db *gorm.DB, driver StorageDriver, items ItemProvider) *AttachmentService {
	return &AttachmentService{db: db, driver: driver, items: items}
}

// Attach saves the document via the storage driver and records its metadata.
// The step must be part of the item's currently resolved path; attachments to
// steps of the other freight branch are rejected.
func (s *AttachmentService) Attach(ctx context.Context, itemID uuid.UUID, stepID model.StepID, filename string, reader io.Reader, size int64, mime string, uploadedBy string) (*Attachment, error) {
	item, err := s.items.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	path, err := wfservice.PathForItem(item)
	if err != nil {
		return nil, err
	}
	if !pathContains(path, stepID) {
		return nil, fmt.Errorf("step %s is not part of the resolved path for item %s", stepID, itemID)
	}

	if mime == "" {
		mime = "application/octet-stream"
	}
	key := uuid.New().String() + filepath.Ext(filename)

	if err := s.driver.Save(ctx, key, reader, mime); err != nil {
		return nil, fmt.Errorf("storage driver failed: %w", err)
	}

	url, err := s.driver.GenerateURL(ctx, key, 0)
	if err != nil {
		s.cleanupOrphan(ctx, key)
		return nil, fmt.Errorf("failed to generate URL: %w", err)
	}

	attachment := &Attachment{
		WorkflowItemID: itemID,
		StepID:         stepID,
		FileName:       filename,
		Key:            key,
		URL:            url,
		Size:           size,
		ContentType:    mime,
		UploadedBy:     uploadedBy,
	}
	if err := s.db.WithContext(ctx).Create(attachment).Error; err != nil {
		s.cleanupOrphan(ctx, key)
		return nil, fmt.Errorf("failed to record attachment metadata: %w", err)
	}

	slog.InfoContext(ctx, "step attachment stored",
		"item_id", itemID,
		"step_id", stepID,
		"key", key,
	)
	return attachment, nil
}

// ListByItem returns the attachment metadata of one workflow item.
func (s *AttachmentService) ListByItem(ctx context.Context, itemID uuid.UUID) ([]Attachment, error) {
	var attachments []Attachment
	result := s.db.WithContext(ctx).
		Where("workflow_item_id = ?", itemID).
		Order("created_at ASC").
		Find(&attachments)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to retrieve attachments: %w", result.Error)
	}
	return attachments, nil
}

// Download streams the document content and its MIME type.
func (s *AttachmentService) Download(ctx context.Context, key string) (io.ReadCloser, string, error) {
	return s.driver.Get(ctx, key)
}

func (s *AttachmentService) cleanupOrphan(ctx context.Context, key string) {
	if err := s.driver.Delete(ctx, key); err != nil {
		slog.WarnContext(ctx, "failed to cleanup orphaned attachment", "key", key, "error", err)
	}
}

func pathContains(path []model.StepID, stepID model.StepID) bool {
	for _, id := range path {
		if id == stepID {
			return true
		}
	}
	return false
}
